package llm

import (
	"fmt"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// Response format modes for OpenAI-compatible providers.
const (
	FormatJSONSchema = "json_schema"
	FormatJSONObject = "json_object"
	FormatText       = "text"
)

// Config selects and configures the completion provider. Fields carry
// env tags so the process config can embed it directly.
type Config struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"groq"`

	// Model overrides the provider's default model. Friendly names from
	// the provider model maps are accepted.
	Model string `env:"LLM_MODEL"`

	// BaseURL overrides the endpoint of OpenAI-compatible providers.
	BaseURL string `env:"LLM_BASE_URL"`

	// ResponseFormat controls the response_format sent by OpenAI-compatible
	// providers. Empty picks the provider default.
	ResponseFormat string `env:"LLM_RESPONSE_FORMAT"`

	// Timeout bounds a single completion call. Zero means no deadline
	// beyond the HTTP client defaults.
	Timeout time.Duration `env:"LLM_TIMEOUT"`

	GroqAPIKey      string `env:"GROQ_API_KEY"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
}

// OpenAIConfig configures an OpenAI-compatible chat completions client.
type OpenAIConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	ResponseFormat string
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures the exponential backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// Jitter is the relative random spread applied to each wait, e.g. 0.2
	// for ±20%. Zero keeps waits exact.
	Jitter float64
}

// DefaultConfig returns the configuration used when nothing is set:
// Groq with its default model.
func DefaultConfig() Config {
	return Config{Provider: ProviderGroq}
}

// DefaultRetryConfig doubles the wait on every attempt: 1s, 2s, 4s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     30 * time.Second,
		Multiplier:  2.0,
	}
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required for the groq provider")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	switch c.ResponseFormat {
	case "", FormatJSONSchema, FormatJSONObject, FormatText:
	default:
		return fmt.Errorf("unknown LLM_RESPONSE_FORMAT %q", c.ResponseFormat)
	}
	return nil
}
