package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/dsaquiz/internal/config"
	"github.com/abhisek/dsaquiz/internal/quizbot"
	"github.com/abhisek/dsaquiz/internal/scheduler"
	"github.com/abhisek/dsaquiz/internal/telegram"
	"github.com/abhisek/dsaquiz/internal/telemetry"
)

// runBot loads configuration, wires the generator, Telegram client and
// scheduler, and runs until SIGINT or SIGTERM.
func runBot(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(envFiles(cmd)...)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := telemetry.SetupLogging(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	telegram.UseLogger(logger)

	shutdownTracing, err := telemetry.InitTracing(ctx, "dsaquiz", version, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer shutdownTracing()

	metrics := telemetry.NewMetrics()

	gen, err := newGenerator(ctx, &cfg.Generation, logger, metrics)
	if err != nil {
		return err
	}

	bot, err := telegram.NewBot(telegram.Config{
		Token:       cfg.Telegram.Token,
		ChatID:      cfg.Telegram.ChatID,
		APIEndpoint: cfg.Telegram.APIEndpoint,
		Interval:    cfg.Quiz.Interval,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	runner := quizbot.New(gen, bot,
		quizbot.WithRecorder(metrics),
		quizbot.WithLogger(logger),
	)
	sched := scheduler.New(scheduler.Config{
		FirstDelay: cfg.Quiz.FirstDelay,
		Interval:   cfg.Quiz.Interval,
		OnSkip:     metrics.TickSkipped,
		Logger:     logger,
	}, runner.Tick)

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Telemetry.MetricsAddr != "" {
		g.Go(func() error {
			if err := telemetry.Serve(ctx, cfg.Telemetry.MetricsAddr, metrics); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}
	if cfg.Telegram.Listen {
		g.Go(func() error {
			bot.Listen(ctx)
			return nil
		})
	}
	g.Go(func() error {
		sched.Run(ctx)
		return nil
	})

	logger.Info("bot started", slog.String("chat_id", cfg.Telegram.ChatID), slog.String("version", version))
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("bot shutdown complete")
	return nil
}
