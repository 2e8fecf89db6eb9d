package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider generates one completion per call. Implementations are safe for
// concurrent use.
type Provider interface {
	// Generate runs req. With req.Schema set the returned Content is JSON
	// that validated against it; otherwise it is the model's text.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output through the provider's native
	// mechanism. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in 0..1. Zero leaves the provider default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name must be stable per definition: it
// keys the compiled-schema cache and is sent as the OpenAI schema name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons, normalized across providers. Providers turn StopMaxTokens
// into *ErrMaxTokensExceeded, so callers only see it from MockProvider.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request, which may be a dated
	// snapshot of the configured one.
	Model      string
	StopReason string
}

// Text returns Content as trimmed text, for schema-less requests.
func (r *Response) Text() string {
	return strings.TrimSpace(string(r.Content))
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
