// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/dsaquiz/internal/llm"
)

// Config is the configuration of the running bot.
type Config struct {
	Generation
	Telegram Telegram
}

// Generation is the subset needed to generate quizzes without posting
// them, as the preview command does.
type Generation struct {
	LLM       llm.Config
	Quiz      Quiz
	Log       Log
	Telemetry Telemetry
}

// Telegram configures the Bot API client.
type Telegram struct {
	Token  string `env:"TOKEN,required,notEmpty"`
	ChatID string `env:"CHAT_ID,required,notEmpty"`

	// APIEndpoint is a Bot API endpoint format such as
	// "https://api.telegram.org/bot%s/%s". Empty uses the public API.
	APIEndpoint string `env:"TELEGRAM_API_ENDPOINT"`

	// Listen enables the /start and /info command listener.
	Listen bool `env:"TELEGRAM_LISTEN" envDefault:"true"`
}

// Quiz configures scheduling and generation.
type Quiz struct {
	Interval    time.Duration `env:"QUIZ_INTERVAL"     envDefault:"1h"`
	FirstDelay  time.Duration `env:"QUIZ_FIRST_DELAY"  envDefault:"10s"`
	MaxAttempts int           `env:"QUIZ_MAX_ATTEMPTS" envDefault:"3"`
	Temperature float64       `env:"QUIZ_TEMPERATURE"  envDefault:"0.8"`
	MaxTokens   int           `env:"QUIZ_MAX_TOKENS"   envDefault:"250"`
}

// Log configures the process logger.
type Log struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Telemetry configures metrics and tracing. Both are off when empty.
type Telemetry struct {
	MetricsAddr  string `env:"METRICS_ADDR"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads envFiles (".env" when none are given) into the environment,
// skipping files that do not exist, then parses and validates Config.
// Variables already set in the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if err := loadDotenv(envFiles); err != nil {
		return nil, err
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Generation.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadGeneration is Load without the Telegram settings.
func LoadGeneration(envFiles ...string) (*Generation, error) {
	if err := loadDotenv(envFiles); err != nil {
		return nil, err
	}
	var cfg Generation
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotenv(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func (g Generation) validate() error {
	if err := g.LLM.Validate(); err != nil {
		return err
	}
	q := g.Quiz
	switch {
	case q.Interval <= 0:
		return fmt.Errorf("QUIZ_INTERVAL must be positive, got %s", q.Interval)
	case q.FirstDelay < 0:
		return fmt.Errorf("QUIZ_FIRST_DELAY must not be negative, got %s", q.FirstDelay)
	case q.MaxAttempts < 1:
		return fmt.Errorf("QUIZ_MAX_ATTEMPTS must be at least 1, got %d", q.MaxAttempts)
	case q.MaxTokens < 1:
		return fmt.Errorf("QUIZ_MAX_TOKENS must be at least 1, got %d", q.MaxTokens)
	case q.Temperature <= 0 || q.Temperature > 2:
		// Providers omit a zero temperature and fall back to their own default.
		return fmt.Errorf("QUIZ_TEMPERATURE must be within (0,2], got %v", q.Temperature)
	}
	return nil
}
