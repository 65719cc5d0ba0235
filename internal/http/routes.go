package http

import (
	"time"

	"taskly/internal/http/handlers"
	"taskly/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options tunes the router. A nil RateLimiter disables limiting.
type Options struct {
	Version        string
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter
	RateLimit      int
	RateWindow     time.Duration
}

// NewRouter builds the engine with the standard middleware chain and
// registers every route.
func NewRouter(tasks handlers.TaskStore, db handlers.Pinger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.CORS(opts.AllowedOrigins),
	)
	RegisterRoutes(r, tasks, db, opts)
	return r
}

func RegisterRoutes(r *gin.Engine, tasks handlers.TaskStore, db handlers.Pinger, opts Options) {
	h := handlers.NewHandler(tasks)
	healthHandler := handlers.NewHealthHandler(db, opts.Version)

	// Health checks and metrics (no rate limiting)
	r.GET("/", h.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rateLimit := opts.RateLimit
	if rateLimit <= 0 {
		rateLimit = 60
	}
	rateWindow := opts.RateWindow
	if rateWindow <= 0 {
		rateWindow = time.Minute
	}

	api := r.Group("/tasks")
	api.Use(opts.RateLimiter.Limit(rateLimit, rateWindow))
	{
		api.POST("", h.CreateTask)
		api.GET("/:email", h.ListTasks)
		api.PUT("/:id", h.UpdateTask)
		api.DELETE("/:id", h.DeleteTask)
	}
}
