package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const rateLimitWindow = time.Minute

// RateLimit allows perMinute requests per client IP in a fixed one-minute
// window counted in Redis. Requests pass when Redis is unavailable.
func RateLimit(perMinute int, redisClient *redis.Client, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 || redisClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		pipe := redisClient.TxPipeline()
		incr := pipe.Incr(ctx, key)
		ttl := pipe.TTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.WithError(err).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		// First hit of a window: the counter has no expiry yet.
		reset := ttl.Val()
		if reset <= 0 {
			reset = rateLimitWindow
			if err := redisClient.Expire(ctx, key, rateLimitWindow).Err(); err != nil {
				logger.WithError(err).Warn("failed to set rate limit window")
			}
		}

		count := int(incr.Val())
		remaining := perMinute - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(perMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(reset).Unix(), 10))

		if count > perMinute {
			c.Header("Retry-After", strconv.Itoa(int(reset.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"code":        "RATE_LIMITED",
				"retry_after": int(reset.Seconds()),
			})
			return
		}

		c.Next()
	}
}
