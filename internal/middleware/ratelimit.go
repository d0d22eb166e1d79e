package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter enforces a per-client fixed window limit backed by redis, so
// the limit holds across replicas. When redis is unavailable requests pass
// through: throttling is a protection, not a correctness requirement.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter builds a limiter allowing rpm requests per minute per
// client IP. A nil client or non-positive limit disables limiting.
func NewRateLimiter(rdb *redis.Client, rpm int) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: rpm, window: time.Minute}
}

// Handler returns the gin middleware.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.rdb == nil || l.limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("access:ratelimit:%s", c.ClientIP())
		current, err := rateLimitScript.Run(c.Request.Context(), l.rdb, []string{key}, l.window.Milliseconds()).Int64()
		if err != nil {
			zap.L().Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		remaining := l.limit - int(current)
		if remaining < 0 {
			remaining = 0
		}
		c.Writer.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Writer.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if current > int64(l.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests.",
				"code":  "RateLimited",
			})
			return
		}
		c.Next()
	}
}
