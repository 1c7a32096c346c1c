package middleware

import (
	"context"

	"pref-go/internal/utils"
	"pref-go/pkg/redis_limiter"

	"github.com/gin-gonic/gin"
)

// ConcurrencyLimit 并发限制中间件。
// 每个生成请求会触发两次上游补全调用，用Redis槽位限制同时在途的请求数。
// limiter为nil时（未配置Redis）直接放行
func ConcurrencyLimit(limiter *redis_limiter.RedisLimiter, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		if err := limiter.Acquire(c.Request.Context(), key); err != nil {
			utils.TooManyRequests(c, "并发生成请求过多，请稍后重试")
			c.Abort()
			return
		}
		// 请求上下文可能已被取消，释放槽位使用独立上下文
		defer limiter.Release(context.Background(), key)

		c.Next()
	}
}
