package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SebastianoFazzino/number-game/internal/logger"
	"github.com/SebastianoFazzino/number-game/internal/response"
	"github.com/SebastianoFazzino/number-game/internal/services"
)

// RateLimitMiddleware limits requests per client IP. A failing limiter lets
// the request through.
func RateLimitMiddleware(limiter services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		allowed, err := limiter.Allow(ctx, c.ClientIP())
		if err != nil {
			logger.WarnCtx(ctx, "rate limit check failed, allowing request", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, response.ErrRateLimited)
			return
		}

		c.Next()
	}
}
