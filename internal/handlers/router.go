package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SebastianoFazzino/number-game/internal/middleware"
	"github.com/SebastianoFazzino/number-game/internal/services"
)

const PlayRoundPath = "/v1/number-game/play-round"

// SetupRouter builds the public router. limiter may be nil to disable rate limiting.
func SetupRouter(gameHandler *GameHandler, limiter services.RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Recovery(),
		middleware.CORS(),
	)

	router.GET("/health", Health)

	game := router.Group("/v1/number-game")
	if limiter != nil {
		game.Use(middleware.RateLimitMiddleware(limiter))
	}
	{
		game.POST("/play-round", gameHandler.PlayRound)
	}

	return router
}
