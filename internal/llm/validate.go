package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateResponse checks that raw is a JSON document conforming to
// schema. A nil schema only requires valid JSON.
// Failures are returned as *ErrInvalidResponse.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}
	if schema == nil {
		return nil
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}

	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON values, not Go ints or []string.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	defParsed, err := jsonschema.UnmarshalJSON(strings.NewReader(string(defBytes)))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

// constraintKeywords are the size and range keywords that OpenAI strict
// json_schema and Anthropic structured output reject.
var constraintKeywords = map[string]bool{
	"minLength": true,
	"maxLength": true,
	"pattern":   true,
	"minItems":  true,
	"maxItems":  true,
	"minimum":   true,
	"maximum":   true,
}

// structuredOutputSchema returns a copy of def without constraintKeywords,
// for providers that enforce the schema while decoding. Responses are
// still validated locally against the full definition.
func structuredOutputSchema(def map[string]any) map[string]any {
	out := make(map[string]any, len(def))
	for k, v := range def {
		switch {
		case k == "properties":
			props, ok := v.(map[string]any)
			if !ok {
				out[k] = v
				continue
			}
			cp := make(map[string]any, len(props))
			for name, p := range props {
				cp[name] = stripConstraints(p)
			}
			out[k] = cp
		case constraintKeywords[k]:
		default:
			out[k] = stripConstraints(v)
		}
	}
	return out
}

func stripConstraints(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return structuredOutputSchema(t)
	case []any:
		cp := make([]any, len(t))
		for i, e := range t {
			cp[i] = stripConstraints(e)
		}
		return cp
	}
	return v
}

// extractJSON trims whitespace and a surrounding markdown code fence
// (```json ... ```) from model output. Models asked for "only JSON" still
// wrap it in a fence often enough to matter.
func extractJSON(text string) json.RawMessage {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "json")
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}
