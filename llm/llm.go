// Package llm provides a provider-agnostic client for text-generation
// backends. It exposes the two call shapes the digitization pipeline needs:
// a single-shot system+user generation and a multi-turn conversation. Model
// identity and generation parameters are opaque configuration passed through
// to the provider, never interpreted here.
package llm

import "context"

// Message represents one role-tagged chat turn.
type Message struct {
	Role    string `json:"role"`    // "system", "user", or "assistant"
	Content string `json:"content"` // Turn content
}

// Roles used in conversation messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Backend is the inference collaborator the pipeline depends on. Both calls
// block until the backend answers; cancellation comes from the context.
type Backend interface {
	// Generate issues a single-shot call with a system and a user prompt
	// and returns the generated text.
	Generate(ctx context.Context, system, user string) (string, error)

	// Converse issues a multi-turn call replaying the given ordered turns
	// and returns the generated text.
	Converse(ctx context.Context, messages []Message) (string, error)
}

// Params are the generation parameters carried opaquely to the backend.
// Pointer fields distinguish "unset, use the backend default" from an
// explicit zero. JSON tags match the persisted run summary format.
type Params struct {
	Temperature *float64 `json:"temperature" yaml:"temperature"`
	Seed        *int     `json:"seed" yaml:"seed"`
	RepeatLastN *int     `json:"repeat_last_n" yaml:"repeat_last_n"`
	MaxTokens   int      `json:"num_predict" yaml:"max_tokens"`
	ContextSize int      `json:"num_ctx" yaml:"context_size"`
	TopK        *int     `json:"top_k" yaml:"top_k"`
	TopP        *float64 `json:"top_p" yaml:"top_p"`
}

// Endpoint identifies one backend model behind one provider.
type Endpoint struct {
	// Provider is the registered provider name (e.g. "ollama").
	Provider string `yaml:"provider"`
	// URL is the provider base URL; empty uses the provider default.
	URL string `yaml:"url"`
	// Model is the model identifier passed to the provider.
	Model string `yaml:"model"`
}
