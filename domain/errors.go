package domain

import (
	"errors"
	"fmt"
)

// ErrSelectionExpired is returned when a format choice arrives after the
// pending audio was consumed or expired. The user has to resend the audio.
var ErrSelectionExpired = errors.New("pending audio selection expired or already consumed")

// ErrRateLimited is returned when a user exceeds the per-minute request budget.
var ErrRateLimited = errors.New("rate limit exceeded")

// ValidationError rejects an audio submission before any byte is transferred
// (size over the limit, extension outside the allow-list). It carries a
// sanitized message that can be sent straight back to the user, kept apart
// from the technical detail that goes to the logs.
type ValidationError struct {
	userMessage string
	detail      string
}

func NewValidationError(userMessage, detail string) *ValidationError {
	return &ValidationError{userMessage: userMessage, detail: detail}
}

func (e *ValidationError) Error() string {
	return e.detail
}

func (e *ValidationError) UserMessage() string {
	return e.userMessage
}

// ConversionError means the downloaded bytes could not be read as audio or
// the re-encode to the canonical profile failed. Recoverable by resubmitting,
// never retried automatically.
type ConversionError struct {
	userMessage string
	cause       error
}

func NewConversionError(userMessage string, cause error) *ConversionError {
	return &ConversionError{userMessage: userMessage, cause: cause}
}

func (e *ConversionError) Error() string {
	if e.cause == nil {
		return "audio conversion failed"
	}
	return fmt.Sprintf("audio conversion failed: %v", e.cause)
}

func (e *ConversionError) Unwrap() error {
	return e.cause
}

func (e *ConversionError) UserMessage() string {
	return e.userMessage
}

// TranscriptionErrorKind classifies a failed speech-to-text call.
type TranscriptionErrorKind string

const (
	// TranscriptionTimeout means the call exceeded the configured ceiling.
	TranscriptionTimeout TranscriptionErrorKind = "timeout"
	// TranscriptionUpstream means the service answered with an error status.
	TranscriptionUpstream TranscriptionErrorKind = "upstream"
	// TranscriptionUnknown covers everything else (transport faults, etc).
	TranscriptionUnknown TranscriptionErrorKind = "unknown"
)

// TranscriptionError is the terminal failure of a transcription call, surfaced
// only after the retry policy is exhausted or a definitive client error occurs.
type TranscriptionError struct {
	Kind TranscriptionErrorKind
	// Retryable records whether the retry policy applied to this failure.
	// 4xx statuses other than 429 are definitive and never retried.
	Retryable bool
	// Status is the upstream HTTP status when Kind is TranscriptionUpstream.
	Status int

	userMessage string
	cause       error
}

func NewTranscriptionError(kind TranscriptionErrorKind, userMessage string, cause error) *TranscriptionError {
	return &TranscriptionError{Kind: kind, userMessage: userMessage, cause: cause}
}

func (e *TranscriptionError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("transcription failed (%s)", e.Kind)
	}
	return fmt.Sprintf("transcription failed (%s): %v", e.Kind, e.cause)
}

func (e *TranscriptionError) Unwrap() error {
	return e.cause
}

func (e *TranscriptionError) UserMessage() string {
	return e.userMessage
}

// ReshapeError reports a failed post-processing call. Callers degrade to the
// raw transcript instead of propagating it, so it only ever reaches the logs.
type ReshapeError struct {
	Shape string
	cause error
}

func NewReshapeError(shape string, cause error) *ReshapeError {
	return &ReshapeError{Shape: shape, cause: cause}
}

func (e *ReshapeError) Error() string {
	return fmt.Sprintf("reshape to %q failed: %v", e.Shape, e.cause)
}

func (e *ReshapeError) Unwrap() error {
	return e.cause
}

// UserFacing is implemented by every error in the taxonomy that carries a
// message safe to deliver to the end user.
type UserFacing interface {
	UserMessage() string
}

// UserMessageFor extracts the sanitized user message from err, falling back
// to a generic notice so upstream internals never leak into chat replies.
func UserMessageFor(err error) string {
	var uf UserFacing
	if errors.As(err, &uf) && uf.UserMessage() != "" {
		return uf.UserMessage()
	}
	return "❌ Ocorreu um erro inesperado.\n💡 Tente novamente em alguns instantes."
}
