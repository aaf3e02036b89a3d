package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type LLMProvider interface {
	// GenerateJSON sends a prompt that describes its expected JSON output
	// shape and returns the raw JSON bytes of the model's reply. Callers own
	// prompt construction and response decoding.
	GenerateJSON(ctx context.Context, prompt string) ([]byte, error)
}
