package repositories

import "context"

// GenerationRequest holds parameters for a text-generation call.
type GenerationRequest struct {
	// System sets the assistant's role for the call.
	System string
	// Prompt is the fully rendered user prompt.
	Prompt string
	// Temperature is kept low (not zero) for faithful reshaping.
	Temperature float32
	// MaxTokens bounds the generated output length.
	MaxTokens int
}

// TextGenerator abstracts any chat/LLM provider used to reshape transcripts.
type TextGenerator interface {
	// Generate returns the model's reply for the rendered prompt.
	Generate(ctx context.Context, req GenerationRequest) (string, error)

	// Name returns the provider name (e.g. "openai", "gemini").
	Name() string
}
