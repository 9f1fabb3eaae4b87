package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain"
	"github.com/notavoz/notavoz/domain/entities"
	"github.com/notavoz/notavoz/domain/repositories"
	"github.com/notavoz/notavoz/internal/format"
	"github.com/notavoz/notavoz/internal/sessions"
)

// Outcome is everything the bot needs to present a finished
// transcription back to the user.
type Outcome struct {
	Result    *entities.TranscriptionResult
	FinalText string
	Shape     entities.OutputShape
	Elapsed   time.Duration
}

// TranscriptionService orchestrates the full flow for one audio: park
// it while the user picks a shape, then prepare, transcribe and reshape
// on selection. Scratch files are released on every exit path.
type TranscriptionService struct {
	preparer    *Preparer
	transcriber repositories.Transcriber
	reshaper    *Reshaper
	pending     *sessions.PendingStore
	logger      *zap.Logger
	now         func() time.Time
}

// NewTranscriptionService wires the orchestrator.
func NewTranscriptionService(
	preparer *Preparer,
	transcriber repositories.Transcriber,
	reshaper *Reshaper,
	pending *sessions.PendingStore,
	logger *zap.Logger,
) *TranscriptionService {
	return &TranscriptionService{
		preparer:    preparer,
		transcriber: transcriber,
		reshaper:    reshaper,
		pending:     pending,
		logger:      logger,
		now:         time.Now,
	}
}

// ValidateSize checks a declared attachment size against the limit.
func (s *TranscriptionService) ValidateSize(declaredSize int64) error {
	return s.preparer.ValidateSize(declaredSize)
}

// Register parks an inbound audio until the user picks an output shape.
// A newer audio from the same user replaces the parked one.
func (s *TranscriptionService) Register(userID int64, asset entities.AudioAsset) {
	s.pending.Put(userID, entities.PendingSelection{
		FileRef:      asset.FileRef,
		Filename:     asset.Filename,
		DeclaredSize: asset.DeclaredSize,
	})

	s.logger.Info("audio parked for shape selection",
		zap.String("user", format.MaskUserID(userID)),
		zap.Int64("declared_size", asset.DeclaredSize))
}

// Process consumes the user's parked audio and runs it through the
// pipeline in the requested shape. The parked entry is consumed even
// when processing fails; the user re-sends the audio to retry.
func (s *TranscriptionService) Process(ctx context.Context, userID int64, shape entities.OutputShape) (*Outcome, error) {
	selection, ok := s.pending.Take(userID)
	if !ok {
		return nil, domain.ErrSelectionExpired
	}

	started := s.now()
	s.logger.Info("processing transcription",
		zap.String("user", format.MaskUserID(userID)),
		zap.String("shape", string(shape)))

	audio, err := s.preparer.Prepare(ctx, entities.AudioAsset{
		FileRef:      selection.FileRef,
		Filename:     selection.Filename,
		DeclaredSize: selection.DeclaredSize,
	})
	if err != nil {
		return nil, err
	}
	defer s.preparer.Cleanup(audio.Path)

	result, err := s.transcriber.Transcribe(ctx, *audio)
	if err != nil {
		return nil, err
	}

	finalText := s.reshaper.Reshape(ctx, result.Text, shape)

	elapsed := s.now().Sub(started)
	s.logger.Info("transcription processed",
		zap.String("user", format.MaskUserID(userID)),
		zap.String("shape", string(shape)),
		zap.String("language", result.Language),
		zap.Duration("elapsed", elapsed))

	return &Outcome{
		Result:    result,
		FinalText: finalText,
		Shape:     shape,
		Elapsed:   elapsed,
	}, nil
}
