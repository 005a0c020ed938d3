package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/pkg/logger"
)

// Logger emits one structured line per request through the application
// logger. Server-side failures are logged at warn level so they stand out
// from ordinary traffic.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"bytes":      c.Writer.Size(),
			"ip":         c.ClientIP(),
		}

		if status >= http.StatusInternalServerError {
			logger.Warn("request failed", fields)
			return
		}
		logger.Info("request completed", fields)
	}
}
