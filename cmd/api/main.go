package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SebastianoFazzino/number-game/internal/config"
	"github.com/SebastianoFazzino/number-game/internal/handlers"
	"github.com/SebastianoFazzino/number-game/internal/logger"
	"github.com/SebastianoFazzino/number-game/internal/metrics"
	"github.com/SebastianoFazzino/number-game/internal/services"
	"github.com/SebastianoFazzino/number-game/internal/simulation"
)

func main() {
	logger.Init()
	defer logger.Sync()

	app := &cli.App{
		Name:  "number-game",
		Usage: "number guessing wager service",
		Commands: []*cli.Command{
			serveCommand(),
			simulateCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	drawer, err := services.NewDrawer(cfg.RNGSource)
	if err != nil {
		return err
	}

	limiter, closeLimiter, err := newLimiter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	gameEngine := services.NewGameEngine(drawer)
	gameHandler := handlers.NewGameHandler(gameEngine)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	servers := []*http.Server{{
		Addr:    ":" + cfg.Port,
		Handler: handlers.SetupRouter(gameHandler, limiter),
	}}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		servers = append(servers, &http.Server{Addr: cfg.MetricsAddr, Handler: mux})
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			logger.Info("Server starting", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

// newLimiter returns a nil limiter when rate limiting is off.
func newLimiter(ctx context.Context, cfg *config.Config) (services.RateLimiter, func(), error) {
	noop := func() {}

	if !cfg.RateLimitEnabled() {
		return nil, noop, nil
	}

	if cfg.RedisURL == "" {
		logger.Info("Using in-process rate limiter", zap.Int("per_minute", cfg.RateLimitPerMinute))
		return services.NewLocalLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst), noop, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	redisService, err := services.NewRedisService(pingCtx, cfg)
	if err != nil {
		return nil, noop, err
	}

	logger.Info("Using Redis rate limiter",
		zap.String("redis", cfg.RedisURL),
		zap.Int("per_minute", cfg.RateLimitPerMinute))

	limiter := services.NewRedisLimiter(redisService, services.ActionPlayRound,
		cfg.RateLimitPerMinute, services.DefaultRateLimitWindow)

	return limiter, func() { redisService.Close() }, nil
}

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "play rounds offline and report the return to player",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rounds", Value: 1_000_000, Usage: "number of rounds to play"},
			&cli.IntFlag{Name: "workers", Value: 24, Usage: "concurrent workers"},
			&cli.Float64Flag{Name: "bet", Value: 1, Usage: "bet placed on every round"},
			&cli.StringFlag{Name: "rng", Value: "fast", Usage: "random source: crypto or fast"},
		},
		Action: func(c *cli.Context) error {
			drawer, err := services.NewDrawer(c.String("rng"))
			if err != nil {
				return err
			}

			started := time.Now()
			report, err := simulation.Run(c.Context, services.NewGameEngine(drawer), simulation.Options{
				Rounds:  c.Int("rounds"),
				Workers: c.Int("workers"),
				Bet:     c.Float64("bet"),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Rounds: %d, Wins: %d\n", report.Rounds, report.Wins)
			fmt.Fprintf(c.App.Writer, "Total Spent: %.2f, Total Won: %.2f\n", report.Wagered, report.Won)
			fmt.Fprintf(c.App.Writer, "RTP: %.2f%% (expected %.2f%%) in %s\n",
				report.RTP*100, simulation.ExpectedRTP()*100, time.Since(started).Round(time.Millisecond))

			return nil
		},
	}
}
