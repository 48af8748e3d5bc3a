// Package telegram posts quizzes as Telegram quiz polls and answers the
// handful of commands the bot supports.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abhisek/dsaquiz/internal/quizgen"
	"github.com/abhisek/dsaquiz/internal/telemetry"
)

const tracerName = "dsaquiz/telegram"

// Config configures the Telegram client.
type Config struct {
	Token string

	// ChatID is the destination chat: a numeric id or an @channel name.
	ChatID string

	// APIEndpoint overrides the Bot API endpoint format, which takes the
	// token and the method name, e.g. "https://api.telegram.org/bot%s/%s".
	APIEndpoint string

	// HTTPClient defaults to a client with a 70s timeout, enough for long
	// polling.
	HTTPClient *http.Client

	// Interval is reported by /info.
	Interval time.Duration

	Logger *slog.Logger
}

// Bot wraps the Bot API client and the destination chat.
type Bot struct {
	api      *tgbotapi.BotAPI
	chat     tgbotapi.BaseChat
	interval time.Duration
	logger   *slog.Logger
}

// NewBot authenticates with getMe and resolves the destination chat.
func NewBot(cfg Config) (*Bot, error) {
	chat, err := ParseChat(cfg.ChatID)
	if err != nil {
		return nil, err
	}
	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = tgbotapi.APIEndpoint
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 70 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, cfg.APIEndpoint, cfg.HTTPClient)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	logger := cfg.Logger.With(slog.String("component", "telegram"))
	logger.Info("authorized on account", slog.String("username", api.Self.UserName))

	return &Bot{
		api:      api,
		chat:     chat,
		interval: cfg.Interval,
		logger:   logger,
	}, nil
}

// ParseChat turns a CHAT_ID value into a chat target. Numeric values
// (including negative group ids) are chat ids; values starting with @ are
// public channel usernames.
func ParseChat(s string) (tgbotapi.BaseChat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return tgbotapi.BaseChat{}, errors.New("chat id is empty")
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return tgbotapi.BaseChat{ChatID: id}, nil
	}
	if strings.HasPrefix(s, "@") && len(s) > 1 {
		return tgbotapi.BaseChat{ChannelUsername: s}, nil
	}
	return tgbotapi.BaseChat{}, fmt.Errorf("chat id %q is neither a number nor an @channel", s)
}

// Username returns the bot's own username.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// SendQuiz posts q as a non-anonymous quiz poll and returns the message id.
func (b *Bot) SendQuiz(ctx context.Context, q quizgen.Quiz) (int, error) {
	_, span := telemetry.StartSpan(ctx, tracerName, "telegram.sendPoll")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	msg, err := b.api.Send(NewQuizPoll(b.chat, q))
	if err != nil {
		err = describe(err)
		telemetry.RecordError(span, err)
		return 0, fmt.Errorf("send poll: %w", err)
	}
	telemetry.SetSpanSuccess(span)
	return msg.MessageID, nil
}

// NewQuizPoll maps a quiz onto a sendPoll request.
func NewQuizPoll(chat tgbotapi.BaseChat, q quizgen.Quiz) tgbotapi.SendPollConfig {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	return tgbotapi.SendPollConfig{
		BaseChat:        chat,
		Question:        q.Question,
		Options:         options,
		IsAnonymous:     false,
		Type:            "quiz",
		CorrectOptionID: int64(q.CorrectOptionID),
		Explanation:     q.Explanation,
	}
}

// describe adds the API error code and any retry hint to Telegram errors.
func describe(err error) error {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.RetryAfter > 0 {
		return fmt.Errorf("telegram %d: %s (retry after %ds): %w", apiErr.Code, apiErr.Message, apiErr.RetryAfter, err)
	}
	return fmt.Errorf("telegram %d: %s: %w", apiErr.Code, apiErr.Message, err)
}
