package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SebastianoFazzino/number-game/internal/logger"
	"github.com/SebastianoFazzino/number-game/internal/metrics"
	"github.com/SebastianoFazzino/number-game/internal/models"
	"github.com/SebastianoFazzino/number-game/internal/response"
	"github.com/SebastianoFazzino/number-game/internal/services"
)

// RoundPlayer settles a single round.
type RoundPlayer interface {
	PlayRound(round models.Round) (*models.Result, error)
}

type GameHandler struct {
	gameEngine RoundPlayer
}

func NewGameHandler(gameEngine RoundPlayer) *GameHandler {
	return &GameHandler{gameEngine: gameEngine}
}

func (h *GameHandler) PlayRound(c *gin.Context) {
	ctx := c.Request.Context()

	var round models.Round
	if err := c.ShouldBindJSON(&round); err != nil {
		metrics.RecordRejected()
		response.Error(c, &response.NotReadableError{Err: err})
		return
	}

	logger.InfoCtx(ctx, "Playing round",
		zap.Int("selected_number", round.SelectedNumber),
		zap.Float64("placed_bet", round.PlacedBet))

	result, err := h.gameEngine.PlayRound(round)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			metrics.RecordRejected()
		} else {
			metrics.RecordError()
		}
		response.Error(c, err)
		return
	}

	metrics.RecordSettled(result.IsWin, round.PlacedBet, result.WonAmount)

	if result.IsWin {
		logger.InfoCtx(ctx, "Round won",
			zap.Int("generated_number", result.GeneratedNumber),
			zap.Float64("multiplier", services.Multiplier(round.SelectedNumber)),
			zap.Float64("won_amount", result.WonAmount))
	}

	c.JSON(http.StatusOK, result)
}
