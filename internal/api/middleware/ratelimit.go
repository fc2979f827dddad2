package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/benni94/mazeChromeBE/pkg/logger"
)

// Admitter is the sliding-window contract shared by the in-memory and the
// Redis-backed limiter.
type Admitter interface {
	Admit(ctx context.Context, key string, now time.Time) (allowed bool, retryAfter int, err error)
}

// IPKeyFunc keys the limiter by originating address, honoring proxies via
// gin's ClientIP (X-Forwarded-For aware).
func IPKeyFunc(c *gin.Context) string {
	return fmt.Sprintf("ip:%s", c.ClientIP())
}

// RateLimit rejects requests over the per-source budget with 429 and a
// Retry-After hint. A limiter failure fails open: ingestion availability
// beats strict limiting, so the error is logged and the request proceeds.
func RateLimit(limiter Admitter, maxRequests int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	if keyFunc == nil {
		keyFunc = IPKeyFunc
	}

	return func(c *gin.Context) {
		key := keyFunc(c)

		allowed, retryAfter, err := limiter.Admit(c.Request.Context(), key, time.Now())
		if err != nil {
			logger.Error("Rate limiter failed, allowing request", "key", key, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))

		if !allowed {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":    false,
				"message":    "Too many submissions, please wait",
				"retryAfter": retryAfter,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
