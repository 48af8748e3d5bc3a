package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/dsaquiz/internal/config"
	"github.com/abhisek/dsaquiz/internal/telegram"
	"github.com/abhisek/dsaquiz/internal/telemetry"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Generate one quiz and post it right away",
	Long: `Generate a single quiz and post it to CHAT_ID, bypassing the schedule.
Unlike a scheduled tick, a failed send is reported as an error.`,
	RunE: runSend,
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFiles(cmd)...)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := telemetry.SetupLogging(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	telegram.UseLogger(logger)

	ctx := telemetry.WithCorrelation(cmd.Context(), telemetry.NewCorrelationID())
	gen, err := newGenerator(ctx, &cfg.Generation, logger, nil)
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

	res := gen.Generate(ctx, "")
	msgID, err := bot.SendQuiz(ctx, res.Quiz)
	if err != nil {
		return err
	}

	telemetry.LoggerFrom(ctx, logger).Info("quiz sent",
		slog.String("question", res.Quiz.Question),
		slog.String("source", string(res.Source())),
		slog.Int("attempts", res.Attempts),
		slog.Int("message_id", msgID),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "posted message %d (%s)\n", msgID, res.Source())
	return nil
}
