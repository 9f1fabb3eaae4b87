package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain/repositories"
)

const (
	openaiModel       = "gpt-4o-mini"
	openaiCallTimeout = 2 * time.Minute
)

// chatAPI is the slice of the OpenAI client the generator uses.
type chatAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGenerator produces text completions through the OpenAI chat API.
type OpenAIGenerator struct {
	api    chatAPI
	logger *zap.Logger
	model  string
}

var _ repositories.TextGenerator = (*OpenAIGenerator)(nil)

// NewOpenAIGenerator builds a chat-completion generator.
func NewOpenAIGenerator(apiKey string, logger *zap.Logger) *OpenAIGenerator {
	return &OpenAIGenerator{
		api:    openai.NewClient(apiKey),
		logger: logger,
		model:  openaiModel,
	}
}

func (o *OpenAIGenerator) Name() string {
	return "openai"
}

// Generate runs a single system+user completion and returns the trimmed
// assistant text. An empty completion is an error so callers can fall
// back to their own degraded behavior.
func (o *OpenAIGenerator) Generate(ctx context.Context, req repositories.GenerationRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, openaiCallTimeout)
	defer cancel()

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.System},
		{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
	}

	resp, err := o.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}

	o.logger.Debug("completion generated",
		zap.String("model", o.model),
		zap.Int("characters", len(text)))

	return text, nil
}
