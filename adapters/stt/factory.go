package stt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain/repositories"
	"github.com/notavoz/notavoz/internal/config"
)

// NewTranscriber returns the transcription backend named by the
// configuration.
func NewTranscriber(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.Transcriber, error) {
	switch cfg.STTProvider {
	case "whisper":
		return NewWhisperClient(WhisperConfig{
			APIKey:      cfg.OpenAIKey,
			Temperature: cfg.WhisperTemperature,
		}, logger), nil
	case "google":
		return NewGoogleClient(ctx, logger)
	default:
		return nil, fmt.Errorf("unknown stt provider: %s", cfg.STTProvider)
	}
}
