package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const (
	loginAttemptLimit  = 20
	loginAttemptWindow = time.Minute
)

// LoginRateLimiter caps login attempts per client IP using a fixed redis
// window. Redis being unavailable never blocks logins.
func LoginRateLimiter(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:login:%s", c.ClientIP())

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("login rate limiter unavailable, failing open")
			c.Next()
			return
		}

		if count == 1 {
			rdb.Expire(ctx, key, loginAttemptWindow)
		}

		if count > loginAttemptLimit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too_many_login_attempts",
			})
			return
		}

		c.Next()
	}
}
