package simulation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebastianoFazzino/number-game/internal/services"
	"github.com/SebastianoFazzino/number-game/internal/simulation"
)

func TestExpectedRTP(t *testing.T) {
	rtp := simulation.ExpectedRTP()

	// 0.99 * (1 - H(100)/100), H being the harmonic number.
	assert.InDelta(t, 0.93865, rtp, 1e-4)
	assert.Less(t, rtp, 0.99)
}

func TestRTPForMillionRounds(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test skipped in short mode")
	}

	engine := services.NewGameEngine(services.NewFastDrawer())

	report, err := simulation.Run(context.Background(), engine, simulation.Options{
		Rounds:  1_000_000,
		Workers: 24,
		Bet:     1,
	})
	require.NoError(t, err)

	assert.Equal(t, 1_000_000, report.Rounds)
	assert.Equal(t, 1_000_000.0, report.Wagered)
	assert.Greater(t, report.Wins, 0)

	t.Logf("Total Spent: %.2f, Total Won: %.2f, RTP: %.2f%%", report.Wagered, report.Won, report.RTP*100)

	// Standard error over a million rounds is about 0.002.
	assert.InDelta(t, simulation.ExpectedRTP(), report.RTP, 0.01)
}

func TestRunSplitsUnevenRounds(t *testing.T) {
	engine := services.NewGameEngine(services.NewSecureDrawer())

	report, err := simulation.Run(context.Background(), engine, simulation.Options{
		Rounds:  1001,
		Workers: 7,
		Bet:     2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1001, report.Rounds)
	assert.Equal(t, 2002.0, report.Wagered)
	assert.LessOrEqual(t, report.Wins, report.Rounds)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := simulation.Run(ctx, services.NewGameEngine(services.NewFastDrawer()), simulation.Options{
		Rounds:  10,
		Workers: 2,
		Bet:     1,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	engine := services.NewGameEngine(services.NewFastDrawer())

	_, err := simulation.Run(context.Background(), engine, simulation.Options{Rounds: 0, Bet: 1})
	assert.Error(t, err)

	_, err = simulation.Run(context.Background(), engine, simulation.Options{Rounds: 10, Bet: 0.5})
	assert.Error(t, err, "bets below the minimum are rejected by the engine")
}
