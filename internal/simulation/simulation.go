// Package simulation plays many rounds offline and reports the observed
// return to player. Nothing is persisted.
package simulation

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/SebastianoFazzino/number-game/internal/models"
	"github.com/SebastianoFazzino/number-game/internal/services"
)

type Options struct {
	Rounds  int
	Workers int
	Bet     float64
}

type Report struct {
	Rounds  int     `json:"rounds"`
	Wins    int     `json:"wins"`
	Wagered float64 `json:"wagered"`
	Won     float64 `json:"won"`
	RTP     float64 `json:"rtp"`
}

type tally struct {
	rounds int
	wins   int
	won    float64
}

// Run plays opts.Rounds rounds on engine, choosing every selectedNumber
// uniformly with the engine's own drawer.
func Run(ctx context.Context, engine *services.GameEngine, opts Options) (*Report, error) {
	if opts.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", opts.Rounds)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Workers > opts.Rounds {
		opts.Workers = opts.Rounds
	}

	tallies := make([]tally, opts.Workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < opts.Workers; w++ {
		n := opts.Rounds / opts.Workers
		if w < opts.Rounds%opts.Workers {
			n++
		}

		t := &tallies[w]
		g.Go(func() error {
			return play(ctx, engine, opts.Bet, n, t)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Wagered: float64(opts.Rounds) * opts.Bet}
	for _, t := range tallies {
		report.Rounds += t.rounds
		report.Wins += t.wins
		report.Won += t.won
	}
	if report.Wagered > 0 {
		report.RTP = report.Won / report.Wagered
	}

	return report, nil
}

func play(ctx context.Context, engine *services.GameEngine, bet float64, n int, t *tally) error {
	drawer := engine.Drawer()

	for i := 0; i < n; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		selected, err := drawer.Draw()
		if err != nil {
			return fmt.Errorf("failed to pick selected number: %w", err)
		}

		result, err := engine.PlayRound(models.Round{SelectedNumber: selected, PlacedBet: bet})
		if err != nil {
			return err
		}

		t.rounds++
		if result.IsWin {
			t.wins++
			t.won += result.WonAmount
		}
	}

	return nil
}

// ExpectedRTP is the exact long-run return when selectedNumber is uniform over
// [1, 100]: a pick of n wins with probability (n-1)/100 and pays 99/n.
func ExpectedRTP() float64 {
	span := float64(models.MaxNumber - models.MinNumber + 1)

	total := 0.0
	for n := models.MinNumber; n <= models.MaxNumber; n++ {
		winProbability := float64(n-models.MinNumber) / span
		total += winProbability * services.Multiplier(n)
	}

	return total / span
}
