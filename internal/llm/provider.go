package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over a chat-completion backend.
// A quiz generator sends one Request per attempt and gets back the raw
// JSON the model produced.
type Provider interface {
	// Generate sends a single completion request. When req.Schema is set
	// the returned Content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one completion call.
type Request struct {
	// System is the system prompt. Empty means no system message.
	System string

	// Messages is the conversation. Quiz generation always sends a
	// single user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. Providers
	// with native structured output use it; all providers validate the
	// response against it before returning.
	Schema *Schema

	// MaxTokens caps the response length (sent as max_tokens).
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message is a single turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and defines the JSON structure expected from the model.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "dsa-quiz". It doubles as
	// the cache key for compiled schemas.
	Name string

	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response holds the model output of a successful call.
type Response struct {
	// Content is the JSON object produced by the model, with surrounding
	// whitespace and markdown code fences removed.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
