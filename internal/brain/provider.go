package brain

import (
	"context"
)

// Provider is the interface for generative AI backends.
type Provider interface {
	// Name returns the provider name (e.g., "gemini")
	Name() string

	// Available returns true if the provider is configured and ready
	Available() bool

	// Generate sends a prompt and returns the response
	Generate(ctx context.Context, req Request) (Response, error)
}

// Request is a prompt request to an AI provider
type Request struct {
	UserPrompt string
	MaxTokens  int  // 0 leaves the provider default
	Grounding  bool // let the model search the web and cite what it used
}

// Citation is a web document the model grounded its answer on.
type Citation struct {
	Title string
	URI   string
}

// Response is the AI provider's response
type Response struct {
	Content     string
	Model       string
	Citations   []Citation // in the order the provider reported them, duplicates included
	RawResponse string     // raw API body for debugging
}
