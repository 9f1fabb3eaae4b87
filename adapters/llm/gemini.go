package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/notavoz/notavoz/domain/repositories"
)

const (
	geminiModel       = "gemini-2.0-flash"
	geminiCallTimeout = 2 * time.Minute
)

// GeminiGenerator produces text completions through the Gemini API. It
// is the alternative reshaping backend for deployments keyed to Google.
type GeminiGenerator struct {
	client *genai.Client
	logger *zap.Logger
	model  string
}

var _ repositories.TextGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator builds a Gemini generator from an API key.
func NewGeminiGenerator(ctx context.Context, apiKey string, logger *zap.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		logger: logger,
		model:  geminiModel,
	}, nil
}

func (g *GeminiGenerator) Name() string {
	return "gemini"
}

// Generate runs a single-turn completion. The system text rides as the
// first user content because Gemini has no separate system role on this
// call path.
func (g *GeminiGenerator) Generate(ctx context.Context, req repositories.GenerationRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, geminiCallTimeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(req.System, genai.RoleUser),
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxTokens),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("generate content returned no text")
	}

	g.logger.Debug("completion generated",
		zap.String("model", g.model),
		zap.Int("characters", len(text)))

	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}
