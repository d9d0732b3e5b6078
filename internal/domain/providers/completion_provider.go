package providers

import (
	"context"
)

// CompletionOptions controls a single language-model completion call
type CompletionOptions struct {
	// Model overrides the client's default model when non-empty
	Model string

	// SystemPrompt is prepended as the system message when non-empty
	SystemPrompt string

	// MaxTokens caps the completion length
	MaxTokens int

	// Temperature controls sampling randomness
	Temperature float64
}

// CompletionProvider defines the interface for language-model completions.
// Query parsing uses higher-temperature longer completions; match scoring
// uses low-temperature short ones.
type CompletionProvider interface {
	// Complete sends a prompt and returns the raw completion text
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}
