package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"bigschedule/internal/logging"
)

// RequestLogging logs one line per request with latency and status.
func RequestLogging() gin.HandlerFunc {
	logger := logging.NewComponentLogger("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Round(time.Millisecond))
	}
}
