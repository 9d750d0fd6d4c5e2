package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
// One Provider is constructed at process start and shared by every tool.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its output.
	// When the request's Schema is set, the provider uses its native
	// structured output mechanism and the response Content is JSON that
	// already conforms to the schema. Otherwise Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the role preamble for the tool (e.g. "You are an
	// educational assessment expert...").
	System string

	// Messages is the conversation. Tools send a single user message
	// carrying the interpolated template.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// Set only for constrained decoding.
	Schema *Schema

	// JSONMode asks for a syntactically valid JSON object without binding
	// it to a schema. Ignored when Schema is set.
	JSONMode bool

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default in place.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
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

// UserPrompt is shorthand for the single-message conversation every tool sends.
func UserPrompt(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema, e.g. "mcq-set". Used as the OpenAI
	// schema name and as the compiled-schema cache key.
	Name string

	// Description is a human-readable description of what this schema
	// represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any

	// Strict enables OpenAI strict structured outputs. Only valid when
	// every property is required and every object is closed.
	Strict bool
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output: JSON when a Schema was provided,
	// the model's raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped: "end", "refusal",
	// "content_filter" or "safety". Truncation is never a Response; the
	// backends return ErrMaxTokensExceeded instead.
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
