package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS reflects the request Origin when it is allowed. An empty allow list
// accepts every origin but never allows credentials; only origins named in
// the list get Access-Control-Allow-Credentials. Preflight requests are
// answered here.
func CORS(allowed []string) gin.HandlerFunc {
	allow := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		allow[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			_, ok := allow[origin]
			if len(allow) == 0 || ok {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				if ok {
					c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
