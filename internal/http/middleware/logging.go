package middleware

import (
	"time"

	"taskly/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one line per request. Server errors are logged at
// error level, everything else at info.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		log := logger.WithContext(c.Request.Context())
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		if status >= 500 {
			log.Error("request", args...)
			return
		}
		log.Info("request", args...)
	}
}
