package repositories

import (
	"context"

	"github.com/notavoz/notavoz/domain/entities"
)

// Transcriber abstracts the speech-to-text service. Implementations own the
// timeout, retry and error-classification policy and report terminal
// failures as *domain.TranscriptionError.
type Transcriber interface {
	// Transcribe sends a canonical audio file and returns the transcript
	// with language and duration metadata.
	Transcribe(ctx context.Context, audio entities.CanonicalAudio) (*entities.TranscriptionResult, error)

	// Name returns the provider name (e.g. "whisper", "google").
	Name() string
}
