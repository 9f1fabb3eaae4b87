package usecase

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/notavoz/notavoz/domain"
	"github.com/notavoz/notavoz/domain/entities"
	"github.com/notavoz/notavoz/internal/sessions"
)

type fakeTranscriber struct {
	result   *entities.TranscriptionResult
	err      error
	gotAudio entities.CanonicalAudio
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio entities.CanonicalAudio) (*entities.TranscriptionResult, error) {
	f.gotAudio = audio
	return f.result, f.err
}

func (f *fakeTranscriber) Name() string { return "fake" }

func newTestService(t *testing.T, transcriber *fakeTranscriber, gen *fakeGenerator) (*TranscriptionService, string) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	dir := t.TempDir()

	preparer := NewPreparer(&fakeFetcher{}, &fakeConverter{probeDuration: 30}, 25*1024*1024, dir, logger)
	reshaper := NewReshaper(gen, logger)
	pending := sessions.NewPendingStore(time.Hour)

	return NewTranscriptionService(preparer, transcriber, reshaper, pending, logger), dir
}

func TestProcessFullFlow(t *testing.T) {
	transcriber := &fakeTranscriber{
		result: entities.NewTranscriptionResult("olá mundo", "pt", nil, 30),
	}
	gen := &fakeGenerator{text: "RESUMO: olá"}
	service, dir := newTestService(t, transcriber, gen)

	service.Register(9, entities.AudioAsset{FileRef: "ref-1", DeclaredSize: 1000})

	outcome, err := service.Process(context.Background(), 9, entities.ShapeSummary)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if outcome.FinalText != "RESUMO: olá" {
		t.Errorf("FinalText = %q", outcome.FinalText)
	}
	if outcome.Result.Language != "pt" {
		t.Errorf("Language = %q", outcome.Result.Language)
	}
	if outcome.Shape != entities.ShapeSummary {
		t.Errorf("Shape = %q", outcome.Shape)
	}

	// All scratch files are released after the flow completes.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("scratch dir not empty: %v", entries)
	}
}

func TestProcessWithoutPendingAudio(t *testing.T) {
	service, _ := newTestService(t, &fakeTranscriber{}, &fakeGenerator{})

	_, err := service.Process(context.Background(), 9, entities.ShapeRaw)
	if !errors.Is(err, domain.ErrSelectionExpired) {
		t.Errorf("err = %v, want ErrSelectionExpired", err)
	}
}

func TestProcessConsumesPendingOnce(t *testing.T) {
	transcriber := &fakeTranscriber{
		result: entities.NewTranscriptionResult("texto", "pt", nil, 5),
	}
	service, _ := newTestService(t, transcriber, &fakeGenerator{text: "x"})

	service.Register(9, entities.AudioAsset{FileRef: "ref-1", DeclaredSize: 100})

	if _, err := service.Process(context.Background(), 9, entities.ShapeRaw); err != nil {
		t.Fatalf("first Process() error = %v", err)
	}
	if _, err := service.Process(context.Background(), 9, entities.ShapeRaw); !errors.Is(err, domain.ErrSelectionExpired) {
		t.Errorf("second Process() err = %v, want ErrSelectionExpired", err)
	}
}

func TestProcessConsumesPendingEvenOnFailure(t *testing.T) {
	transcriber := &fakeTranscriber{
		err: domain.NewTranscriptionError(domain.TranscriptionUpstream, "erro", errors.New("boom")),
	}
	service, dir := newTestService(t, transcriber, &fakeGenerator{})

	service.Register(9, entities.AudioAsset{FileRef: "ref-1", DeclaredSize: 100})

	if _, err := service.Process(context.Background(), 9, entities.ShapeRaw); err == nil {
		t.Fatal("Process() succeeded despite transcriber failure")
	}

	// Failure consumed the slot and released the scratch files.
	if _, err := service.Process(context.Background(), 9, entities.ShapeRaw); !errors.Is(err, domain.ErrSelectionExpired) {
		t.Errorf("retry err = %v, want ErrSelectionExpired", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("scratch dir not empty after failure: %v", entries)
	}
}

func TestProcessRawSkipsReshaping(t *testing.T) {
	transcriber := &fakeTranscriber{
		result: entities.NewTranscriptionResult("texto cru", "pt", nil, 5),
	}
	gen := &fakeGenerator{}
	service, _ := newTestService(t, transcriber, gen)

	service.Register(9, entities.AudioAsset{FileRef: "ref-1", DeclaredSize: 100})

	outcome, err := service.Process(context.Background(), 9, entities.ShapeRaw)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if outcome.FinalText != "texto cru" {
		t.Errorf("FinalText = %q", outcome.FinalText)
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", gen.calls)
	}
}
