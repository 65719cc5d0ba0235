package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskly/internal/config"
	"taskly/internal/db"
	httpServer "taskly/internal/http"
	"taskly/internal/http/middleware"
	"taskly/internal/logger"
	"taskly/internal/repository"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	gin.SetMode(gin.ReleaseMode)

	client := db.Connect(cfg.MongoURI, cfg.ConnectTimeout)
	defer db.Disconnect(client, cfg.ConnectTimeout)

	tasks := repository.NewTaskRepository(client.Database(cfg.DBName).Collection(cfg.CollectionName), cfg.OpTimeout)
	if _, err := tasks.EnsureIndexes(context.Background()); err != nil {
		logger.Warn("failed to ensure indexes", "error", err)
	}

	limiter := middleware.NewRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer limiter.Close()

	r := httpServer.NewRouter(tasks, tasks, httpServer.Options{
		Version:        version,
		AllowedOrigins: cfg.CORSAllowedOrig,
		RateLimiter:    limiter,
		RateLimit:      cfg.APIRateLimit,
		RateWindow:     cfg.APIRateWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("server started", "port", cfg.AppPort, "version", version)
	if err := serve(srv, quit, 10*time.Second); err != nil {
		// returning lets the deferred limiter and mongo teardown run
		logger.Error("server stopped", "error", err)
		return
	}
	logger.Info("server exited")
}

// serve runs srv until it fails to listen or a signal arrives on quit, then
// shuts it down gracefully within grace.
func serve(srv *http.Server, quit <-chan os.Signal, grace time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
