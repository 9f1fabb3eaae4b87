package stt

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain"
	"github.com/notavoz/notavoz/domain/entities"
	"github.com/notavoz/notavoz/domain/repositories"
)

// googleSampleRateHertz matches the canonical MP3 the preparation
// pipeline produces.
const googleSampleRateHertz = 16000

// googleCallTimeout caps a single batch recognition end to end,
// submission and wait included.
const googleCallTimeout = 5 * time.Minute

// recognizeFunc submits a batch recognition job and blocks until it
// finishes or the context expires.
type recognizeFunc func(ctx context.Context, req *speechpb.LongRunningRecognizeRequest) (*speechpb.LongRunningRecognizeResponse, error)

// GoogleClient transcribes audio through Google Cloud Speech-to-Text.
// It is the alternative backend for deployments that cannot use the
// default one; the batch API caps inline content around ten megabytes,
// which the canonical 64 kbps MP3 reaches after roughly twenty minutes
// of audio.
type GoogleClient struct {
	client      *speech.Client
	recognize   recognizeFunc
	logger      *zap.Logger
	language    string
	alternate   []string
	callTimeout time.Duration
}

var _ repositories.Transcriber = (*GoogleClient)(nil)

// NewGoogleClient builds a Cloud Speech transcriber. Credentials come
// from the ambient GOOGLE_APPLICATION_CREDENTIALS setup.
func NewGoogleClient(ctx context.Context, logger *zap.Logger) (*GoogleClient, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}

	g := &GoogleClient{
		client:      client,
		logger:      logger,
		language:    "pt-BR",
		alternate:   []string{"en-US", "es-ES"},
		callTimeout: googleCallTimeout,
	}
	g.recognize = g.recognizeOnce
	return g, nil
}

func (g *GoogleClient) Name() string {
	return "google"
}

// Close releases the underlying gRPC connection.
func (g *GoogleClient) Close() error {
	return g.client.Close()
}

func (g *GoogleClient) recognizeOnce(ctx context.Context, req *speechpb.LongRunningRecognizeRequest) (*speechpb.LongRunningRecognizeResponse, error) {
	op, err := g.client.LongRunningRecognize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("start recognition: %w", err)
	}
	return op.Wait(ctx)
}

// Transcribe reads the canonical file and runs a long-running batch
// recognition over it, capped at googleCallTimeout. A batch job is not
// resubmitted on failure: the generated client already retries
// transient RPCs internally, so a surfaced error means the job itself
// failed or the ceiling was hit.
func (g *GoogleClient) Transcribe(ctx context.Context, audio entities.CanonicalAudio) (*entities.TranscriptionResult, error) {
	content, err := os.ReadFile(audio.Path)
	if err != nil {
		return nil, domain.NewTranscriptionError(domain.TranscriptionUnknown, msgTranscriptionFailed,
			fmt.Errorf("read audio file: %w", err))
	}

	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	resp, err := g.recognize(callCtx, &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_MP3,
			SampleRateHertz:            googleSampleRateHertz,
			LanguageCode:               g.language,
			AlternativeLanguageCodes:   g.alternate,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: content},
		},
	})
	if err != nil {
		if callCtx.Err() != nil {
			return nil, domain.NewTranscriptionError(domain.TranscriptionTimeout, msgTranscriptionTimeout,
				fmt.Errorf("recognize: %w", err))
		}
		return nil, domain.NewTranscriptionError(domain.TranscriptionUpstream, msgTranscriptionFailed,
			fmt.Errorf("recognize: %w", err))
	}

	text, primary, segmentLanguages := collectRecognition(resp.GetResults())
	if primary == "" {
		primary = shortLanguageCode(g.language)
	}

	result := entities.NewTranscriptionResult(text, primary, segmentLanguages, audio.Duration)

	g.logger.Info("transcription completed",
		zap.String("provider", g.Name()),
		zap.String("language", result.Language),
		zap.Int("characters", len(result.Text)))

	return result, nil
}

// collectRecognition joins the best alternative of each result and
// gathers the per-result language codes Cloud Speech reports.
func collectRecognition(results []*speechpb.SpeechRecognitionResult) (text, primary string, languages []string) {
	var parts []string
	for _, r := range results {
		if len(r.GetAlternatives()) == 0 {
			continue
		}
		parts = append(parts, strings.TrimSpace(r.GetAlternatives()[0].GetTranscript()))

		code := shortLanguageCode(r.GetLanguageCode())
		if code == "" {
			continue
		}
		if primary == "" {
			primary = code
		}
		languages = append(languages, code)
	}
	return strings.TrimSpace(strings.Join(parts, " ")), primary, languages
}

// shortLanguageCode maps BCP-47 tags like "pt-BR" to the bare language
// code the rest of the system speaks.
func shortLanguageCode(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexByte(tag, '-'); i > 0 {
		return tag[:i]
	}
	return tag
}
