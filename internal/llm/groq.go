package llm

import "fmt"

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama3-70b-8192"
)

// groqModels maps friendly names to Groq model IDs.
var groqModels = map[string]string{
	"llama3-70b":    "llama3-70b-8192",
	"llama-3.3-70b": "llama-3.3-70b-versatile",
	"llama-3.1-8b":  "llama-3.1-8b-instant",
}

// GroqProvider talks to Groq's OpenAI-compatible endpoint. Groq models do
// not accept json_schema response formats, so json_object is the default.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg OpenAIConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGroqBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultGroqModel
	}
	if cfg.ResponseFormat == "" {
		cfg.ResponseFormat = FormatJSONObject
	}
	return &GroqProvider{OpenAIProvider: newOpenAICompatible(cfg, groqModels)}, nil
}
