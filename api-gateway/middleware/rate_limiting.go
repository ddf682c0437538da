package middleware

import (
	"fmt"
	"net/http"
	"time"

	"paddock-backend/shared/config"
	"paddock-backend/shared/utils/cache"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig holds the per-IP rate limit parameters
type RateLimitConfig struct {
	MaxRequests   int
	TimeWindow    time.Duration
	BlockDuration time.Duration
}

// NewRateLimitConfig builds the rate limit parameters from configuration
func NewRateLimitConfig() RateLimitConfig {
	cfg := config.GetConfig()

	return RateLimitConfig{
		MaxRequests:   cfg.GetRateLimitMaxRequests(),
		TimeWindow:    time.Duration(cfg.GetRateLimitTimeWindowSeconds()) * time.Second,
		BlockDuration: time.Duration(cfg.GetRateLimitBlockDurationMinutes()) * time.Minute,
	}
}

// RateLimitMiddleware enforces a per-IP request budget backed by Redis,
// so the limit holds across gateway replicas. Clients that exceed the
// budget are blocked for the configured duration. When Redis is down
// requests pass through; availability wins over throttling.
func RateLimitMiddleware(rlConfig RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		cm := cache.GetCacheManager()
		if cm == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		blockKey := fmt.Sprintf("ratelimit:block:%s", clientIP)
		countKey := fmt.Sprintf("ratelimit:count:%s", clientIP)

		if cm.IsBlocked(blockKey) {
			rejectRateLimited(c, rlConfig)
			return
		}

		count, err := cm.IncrementCounter(countKey, rlConfig.TimeWindow)
		if err != nil {
			c.Next()
			return
		}

		if count > int64(rlConfig.MaxRequests) {
			_ = cm.SetBlock(blockKey, rlConfig.BlockDuration)
			rejectRateLimited(c, rlConfig)
			return
		}

		c.Next()
	}
}

func rejectRateLimited(c *gin.Context, rlConfig RateLimitConfig) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":       "Rate limit exceeded",
		"message":     "Too many requests from this IP. Please try again later.",
		"retry_after": rlConfig.BlockDuration.Seconds(),
	})
	c.Abort()
}
