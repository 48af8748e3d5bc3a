package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NewProvider builds the configured provider and wraps it as
// caller → logging → instrumentation → timeout → base.
// recorder may be nil to skip metrics.
func NewProvider(ctx context.Context, cfg Config, logger *slog.Logger, recorder Recorder) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGroq:
		base, err = NewGroqProvider(OpenAIConfig{
			APIKey:         cfg.GroqAPIKey,
			Model:          cfg.Model,
			BaseURL:        cfg.BaseURL,
			ResponseFormat: cfg.ResponseFormat,
		})
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(OpenAIConfig{
			APIKey:         cfg.OpenAIAPIKey,
			Model:          cfg.Model,
			BaseURL:        cfg.BaseURL,
			ResponseFormat: cfg.ResponseFormat,
		})
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(AnthropicConfig{
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithTimeout(base, cfg.Timeout)
	if recorder != nil {
		p = WithInstrumentation(p, recorder)
	}
	return WithLogging(p, logger), nil
}
