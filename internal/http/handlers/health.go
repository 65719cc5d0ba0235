package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the probe endpoints.
type HealthHandler struct {
	db        Pinger
	startTime time.Time
	version   string
}

func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse is the body of /readyz.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Liveness never touches the database.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness answers 503 while the database cannot be pinged.
func (h *HealthHandler) Readiness(c *gin.Context) {
	dbErr := h.ping(c.Request.Context(), 5*time.Second)

	resp := HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{"database": "healthy"},
	}
	code := http.StatusOK
	if dbErr != nil {
		resp.Status = "unhealthy"
		resp.Checks["database"] = "unhealthy: " + dbErr.Error()
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// Health is the short form of Readiness.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.ping(c.Request.Context(), 3*time.Second); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

func (h *HealthHandler) ping(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return h.db.Ping(ctx)
}
