package llm

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain/repositories"
	"github.com/notavoz/notavoz/internal/config"
)

// NewTextGenerator returns the reshaping backend named by the
// configuration.
func NewTextGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.TextGenerator, error) {
	switch cfg.LLMProvider {
	case "openai":
		return NewOpenAIGenerator(cfg.OpenAIKey, logger), nil
	case "gemini":
		return NewGeminiGenerator(ctx, os.Getenv("GEMINI_API_KEY"), logger)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
