package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/contesthub/backend/internal/common"
)

// RateLimitPolicy is a fixed-window limit applied to one scope of routes
type RateLimitPolicy struct {
	Scope  string
	Window time.Duration
	Max    int64
}

// RateLimitMiddleware enforces a fixed-window limit per client IP, with
// counters in redis so all instances share the same windows. If redis is
// unreachable the limiter fails open: losing rate limiting is preferable to
// refusing all traffic.
func RateLimitMiddleware(rdb *redis.Client, policy RateLimitPolicy, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		window := time.Now().Unix() / int64(policy.Window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%s:%d", policy.Scope, c.ClientIP(), window)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("Rate limit counter unavailable",
				zap.String("scope", policy.Scope),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count == 1 {
			// First hit in this window; the expiry only has to outlive it
			if err := rdb.Expire(ctx, key, policy.Window+time.Second).Err(); err != nil {
				logger.Warn("Failed to set rate limit expiry", zap.Error(err))
			}
		}

		if count > policy.Max {
			common.AbortWithError(c, http.StatusTooManyRequests, "Too many requests, please try again later.")
			return
		}

		c.Next()
	}
}
