package stt

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain"
	"github.com/notavoz/notavoz/domain/entities"
	"github.com/notavoz/notavoz/domain/repositories"
)

const (
	// whisperModel is pinned; newer models change segment semantics.
	whisperModel = "whisper-1"

	defaultCallTimeout = 5 * time.Minute
	defaultMaxAttempts = 3
	defaultBaseDelay   = 2 * time.Second
)

const (
	msgTranscriptionTimeout = "⏱️ O processamento excedeu o tempo limite (5 minutos).\n" +
		"💡 Tente enviar um áudio menor."
	msgTranscriptionFailed = "❌ Erro ao transcrever o áudio.\n" +
		"💡 Tente novamente em alguns instantes."
)

// whisperAPI is the slice of the OpenAI client the adapter uses.
type whisperAPI interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// WhisperConfig carries tunables for the Whisper transcription client.
type WhisperConfig struct {
	APIKey      string
	Temperature float32
	CallTimeout time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
}

// WhisperClient transcribes audio files through the OpenAI Whisper API.
// Transient failures are retried with exponential backoff; definitive
// client errors short-circuit the retry loop.
type WhisperClient struct {
	api    whisperAPI
	logger *zap.Logger
	config WhisperConfig
	sleep  func(time.Duration)
}

var _ repositories.Transcriber = (*WhisperClient)(nil)

// NewWhisperClient builds a Whisper transcriber from config. Zero-valued
// tunables fall back to the defaults above.
func NewWhisperClient(config WhisperConfig, logger *zap.Logger) *WhisperClient {
	if config.CallTimeout == 0 {
		config.CallTimeout = defaultCallTimeout
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = defaultMaxAttempts
	}
	if config.BaseDelay == 0 {
		config.BaseDelay = defaultBaseDelay
	}

	return &WhisperClient{
		api:    openai.NewClient(config.APIKey),
		logger: logger,
		config: config,
		sleep:  time.Sleep,
	}
}

func (w *WhisperClient) Name() string {
	return "whisper"
}

// Transcribe sends the canonical audio file to Whisper and returns the
// transcript with detected-language metadata. The language parameter is
// deliberately left unset so the model auto-detects, and temperature
// stays at zero for deterministic output.
func (w *WhisperClient) Transcribe(ctx context.Context, audio entities.CanonicalAudio) (*entities.TranscriptionResult, error) {
	var lastErr error
	attempts := 0

	for attempt := 1; attempt <= w.config.MaxAttempts; attempt++ {
		attempts = attempt
		w.logger.Info("starting transcription attempt",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", w.config.MaxAttempts),
			zap.String("path", audio.Path))

		result, err := w.callOnce(ctx, audio)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if isDefinitive(err) {
			w.logger.Error("transcription failed with non-retryable error",
				zap.Int("attempt", attempt),
				zap.Error(err))
			break
		}

		w.logger.Warn("transcription attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < w.config.MaxAttempts {
			delay := w.config.BaseDelay * (1 << (attempt - 1))
			w.logger.Info("waiting before retry", zap.Duration("delay", delay))
			w.sleep(delay)
		}
	}

	w.logger.Error("all transcription attempts failed",
		zap.Int("attempts", attempts),
		zap.Error(lastErr))

	if isTimeout(lastErr) {
		return nil, domain.NewTranscriptionError(domain.TranscriptionTimeout, msgTranscriptionTimeout, lastErr)
	}

	var apiErr *openai.APIError
	if errors.As(lastErr, &apiErr) {
		terr := domain.NewTranscriptionError(domain.TranscriptionUpstream, msgTranscriptionFailed, lastErr)
		terr.Status = apiErr.HTTPStatusCode
		terr.Retryable = !isDefinitive(lastErr)
		return nil, terr
	}
	return nil, domain.NewTranscriptionError(domain.TranscriptionUnknown, msgTranscriptionFailed, lastErr)
}

func (w *WhisperClient) callOnce(ctx context.Context, audio entities.CanonicalAudio) (*entities.TranscriptionResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, w.config.CallTimeout)
	defer cancel()

	resp, err := w.api.CreateTranscription(callCtx, openai.AudioRequest{
		Model:       whisperModel,
		FilePath:    audio.Path,
		Format:      openai.AudioResponseFormatVerboseJSON,
		Temperature: w.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("whisper request: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	language := resp.Language
	if language == "" {
		language = "unknown"
	}

	// whisper-1 reports a single language for the whole file; segments
	// carry no per-segment language, so the union collapses to it.
	result := entities.NewTranscriptionResult(text, language, nil, resp.Duration)

	w.logger.Info("transcription completed",
		zap.String("language", result.Language),
		zap.Float64("duration_seconds", result.Duration),
		zap.Int("characters", len(result.Text)),
		zap.Bool("multilingual", result.IsMultilingual))

	return result, nil
}

// isDefinitive reports whether err is a client-side API error that no
// amount of retrying will fix. 429 stays retryable.
func isDefinitive(err error) bool {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	status := apiErr.HTTPStatusCode
	return status >= 400 && status < 500 && status != 429
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return errors.Is(err, os.ErrDeadlineExceeded)
}
