package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"taskly/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window limiter backed by Redis INCR/EXPIRE. A
// limiter without a client lets every request through.
type RateLimiter struct {
	client *redis.Client
}

// NewRedisRateLimiter connects to addr. An empty addr or a failed ping
// yields a fail-open limiter so the API stays available.
func NewRedisRateLimiter(addr, password string, db int) *RateLimiter {
	if addr == "" {
		return &RateLimiter{}
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", "addr", addr, "error", err)
		_ = client.Close()
		return &RateLimiter{}
	}
	logger.Info("redis rate limiter enabled", "addr", addr)
	return &RateLimiter{client: client}
}

// Enabled reports whether requests are actually being limited.
func (l *RateLimiter) Enabled() bool {
	return l != nil && l.client != nil
}

func (l *RateLimiter) Close() error {
	if !l.Enabled() {
		return nil
	}
	return l.client.Close()
}

// Limit allows maxRequests per window per client IP.
// key format: rl:<window_seconds>:<identifier>
func (l *RateLimiter) Limit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Enabled() {
			c.Next()
			return
		}

		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		ctx := c.Request.Context()

		val, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			// fail-open
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			if err := l.client.Expire(ctx, key, window).Err(); err != nil {
				// a counter without a TTL would block this client forever
				logger.Warn("rate limit expire failed", "key", key, "error", err)
				if err := l.client.Del(ctx, key).Err(); err != nil {
					logger.Warn("rate limit key cleanup failed", "key", key, "error", err)
				}
				c.Header("X-RateLimit-Error", "redis-error")
				c.Next()
				return
			}
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
