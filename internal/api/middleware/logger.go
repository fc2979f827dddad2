package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/benni94/mazeChromeBE/pkg/logger"
)

// Logger logs every HTTP request with latency and client address.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", c.Writer.Status(),
			"latency", latency,
			"ip", c.ClientIP(),
			"requestId", c.GetString(RequestIDKey),
		)
	}
}
