package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain"
	"github.com/notavoz/notavoz/domain/entities"
	"github.com/notavoz/notavoz/domain/repositories"
)

const (
	reshapeTemperature = 0.2
	reshapeMaxTokens   = 1500
)

// Reshaper rewrites a raw transcript into the shape the user picked.
// It never fails the flow: when the generator errors out the raw
// transcript is returned with a warning prefix, because a degraded
// answer beats losing a finished transcription.
type Reshaper struct {
	generator repositories.TextGenerator
	logger    *zap.Logger
}

// NewReshaper creates a transcript reshaping dispatcher.
func NewReshaper(generator repositories.TextGenerator, logger *zap.Logger) *Reshaper {
	return &Reshaper{
		generator: generator,
		logger:    logger,
	}
}

// Reshape returns transcript rendered in the requested shape. Raw is
// returned verbatim without touching the generator.
func (r *Reshaper) Reshape(ctx context.Context, transcript string, shape entities.OutputShape) string {
	if shape == entities.ShapeRaw {
		return transcript
	}

	prompt, ok := buildPrompt(shape, transcript)
	if !ok {
		r.logger.Warn("no prompt template for shape, returning raw transcript",
			zap.String("shape", string(shape)))
		return transcript
	}

	r.logger.Info("reshaping transcript",
		zap.String("shape", string(shape)),
		zap.String("generator", r.generator.Name()),
		zap.Int("transcript_length", len(transcript)))

	text, err := r.generator.Generate(ctx, repositories.GenerationRequest{
		System:      reshapeSystemPrompt,
		Prompt:      prompt,
		Temperature: reshapeTemperature,
		MaxTokens:   reshapeMaxTokens,
	})
	if err != nil {
		r.logger.Error("reshaping failed, degrading to raw transcript",
			zap.Error(domain.NewReshapeError(string(shape), err)))
		return fmt.Sprintf("⚠️ Erro ao gerar %s. Segue transcrição original:\n\n%s", string(shape), transcript)
	}

	return text
}
