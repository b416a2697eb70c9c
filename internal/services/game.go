package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/SebastianoFazzino/number-game/internal/models"
)

// payoutNumerator targets a 99% return to player for every selectable number.
const payoutNumerator = 99

var numerator = decimal.NewFromInt(payoutNumerator)

var ErrPayoutOverflow = errors.New("payout is not representable")

type GameEngine struct {
	drawer Drawer
}

func NewGameEngine(drawer Drawer) *GameEngine {
	return &GameEngine{drawer: drawer}
}

func (ge *GameEngine) Drawer() Drawer {
	return ge.drawer
}

// PlayRound validates the round, draws the house number and settles the bet.
// An invalid round returns a *models.ValidationError and nothing is drawn.
func (ge *GameEngine) PlayRound(round models.Round) (*models.Result, error) {
	if err := round.Validate(); err != nil {
		return nil, err
	}

	generated, err := ge.drawer.Draw()
	if err != nil {
		return nil, fmt.Errorf("failed to draw number: %w", err)
	}

	result := ComputeResult(round, generated)
	if math.IsInf(result.WonAmount, 0) || math.IsNaN(result.WonAmount) {
		return nil, fmt.Errorf("failed to settle bet of %g on %d: %w",
			round.PlacedBet, round.SelectedNumber, ErrPayoutOverflow)
	}

	return result, nil
}

// ComputeResult settles a round against a known draw. Ties lose.
func ComputeResult(round models.Round, generated int) *models.Result {
	isWin := round.SelectedNumber > generated

	wonAmount := 0.0
	if isWin {
		wonAmount = CalculatePayout(round.PlacedBet, round.SelectedNumber)
	}

	return &models.Result{
		GeneratedNumber: generated,
		IsWin:           isWin,
		WonAmount:       wonAmount,
	}
}

// CalculatePayout returns placedBet * 99 / selectedNumber. The multiplication
// runs first in decimal so round figures like 100 * 99 / 50 stay exact.
func CalculatePayout(placedBet float64, selectedNumber int) float64 {
	if selectedNumber <= 0 {
		return 0
	}

	return decimal.NewFromFloat(placedBet).
		Mul(numerator).
		Div(decimal.NewFromInt(int64(selectedNumber))).
		InexactFloat64()
}

// Multiplier is the factor applied to the bet when selectedNumber wins.
func Multiplier(selectedNumber int) float64 {
	if selectedNumber <= 0 {
		return 0
	}
	return numerator.Div(decimal.NewFromInt(int64(selectedNumber))).InexactFloat64()
}
