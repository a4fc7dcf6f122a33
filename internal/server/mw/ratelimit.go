package mw

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
)

// RateLimit caps requests per client IP per second using a fixed one-second
// window in Redis. When Redis is unreachable the request is let through.
func RateLimit(rdb *goredis.Client, rps int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rps <= 0 {
			c.Next()
			return
		}
		key := fmt.Sprintf("rl:%s:%d", c.ClientIP(), time.Now().Unix())

		n, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if n == 1 {
			rdb.Expire(c.Request.Context(), key, 2*time.Second)
		}
		if n > int64(rps) {
			c.Header("Retry-After", strconv.Itoa(1))
			resp.Error(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
