package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain"
	"github.com/notavoz/notavoz/domain/entities"
	"github.com/notavoz/notavoz/domain/repositories"
	"github.com/notavoz/notavoz/internal/format"
)

// supportedFormats are the extensions the transcription backend accepts.
var supportedFormats = map[string]struct{}{
	"mp3": {}, "mp4": {}, "mpeg": {}, "mpga": {}, "m4a": {},
	"wav": {}, "webm": {}, "ogg": {}, "oga": {}, "flac": {},
	"aac": {}, "opus": {}, "wma": {}, "amr": {},
}

// defaultExtension is assumed for voice notes, which carry no filename.
const defaultExtension = "ogg"

// Preparer turns an inbound platform audio reference into a local
// canonical MP3 ready for transcription: validate, fetch, probe,
// normalize. Every file it creates is removed on failure; on success
// the caller owns the returned path and releases it with Cleanup.
type Preparer struct {
	fetcher   repositories.FileFetcher
	converter repositories.AudioConverter
	logger    *zap.Logger
	maxBytes  int64
	tempDir   string
}

// NewPreparer creates an audio preparation pipeline.
func NewPreparer(fetcher repositories.FileFetcher, converter repositories.AudioConverter, maxBytes int64, tempDir string, logger *zap.Logger) *Preparer {
	return &Preparer{
		fetcher:   fetcher,
		converter: converter,
		logger:    logger,
		maxBytes:  maxBytes,
		tempDir:   tempDir,
	}
}

// ValidateSize checks the platform-declared size against the limit. It
// runs at intake and again before transfer so oversized files cost no
// bandwidth.
func (p *Preparer) ValidateSize(declaredSize int64) error {
	if declaredSize <= p.maxBytes {
		return nil
	}
	return domain.NewValidationError(
		fmt.Sprintf("❌ Arquivo muito grande (%s).\n📏 Limite: %s.\n💡 Tente comprimir o áudio ou enviar um trecho menor.",
			format.FileSize(declaredSize), format.FileSize(p.maxBytes)),
		fmt.Sprintf("declared size %d exceeds limit %d", declaredSize, p.maxBytes),
	)
}

// Prepare runs the full pipeline over asset.
func (p *Preparer) Prepare(ctx context.Context, asset entities.AudioAsset) (*entities.CanonicalAudio, error) {
	if err := p.ValidateSize(asset.DeclaredSize); err != nil {
		return nil, err
	}

	ext := fileExtension(asset.Filename)
	if ext == "" {
		ext = defaultExtension
	}
	if _, ok := supportedFormats[ext]; !ok {
		return nil, domain.NewValidationError(
			fmt.Sprintf("❌ Formato '.%s' não suportado.\n📋 Formatos aceitos: MP3, OGG, WAV, M4A, FLAC, AAC, OPUS, WebM", ext),
			fmt.Sprintf("unsupported extension %q", ext),
		)
	}

	if err := os.MkdirAll(p.tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	downloadPath := filepath.Join(p.tempDir, uuid.NewString()+"."+ext)

	p.logger.Info("fetching audio file",
		zap.String("extension", ext),
		zap.Int64("declared_size", asset.DeclaredSize))

	if err := p.fetcher.FetchFile(ctx, asset.FileRef, downloadPath); err != nil {
		p.Cleanup(downloadPath)
		return nil, domain.NewValidationError(
			"❌ Erro ao baixar o áudio do Telegram.\n💡 Tente enviar novamente.",
			fmt.Sprintf("fetch file: %v", err),
		)
	}

	// Probing doubles as validation: a file that is not decodable audio
	// fails here before reaching the transcription backend.
	duration, err := p.converter.Probe(ctx, downloadPath)
	if err != nil {
		p.Cleanup(downloadPath)
		return nil, err
	}

	if ext == "mp3" {
		p.logger.Info("audio already canonical", zap.Float64("duration_seconds", duration))
		return &entities.CanonicalAudio{Path: downloadPath, Duration: duration}, nil
	}

	canonicalPath := strings.TrimSuffix(downloadPath, "."+ext) + ".mp3"
	if err := p.converter.Normalize(ctx, downloadPath, canonicalPath); err != nil {
		p.Cleanup(downloadPath)
		p.Cleanup(canonicalPath)
		return nil, err
	}
	p.Cleanup(downloadPath)

	p.logger.Info("audio normalized",
		zap.String("from_extension", ext),
		zap.Float64("duration_seconds", duration))

	return &entities.CanonicalAudio{Path: canonicalPath, Duration: duration}, nil
}

// Cleanup removes a scratch file, tolerating its absence.
func (p *Preparer) Cleanup(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.logger.Warn("failed to remove scratch file",
			zap.String("path", path),
			zap.Error(err))
	}
}

// fileExtension extracts a sanitized lowercase extension from a
// filename. Path separators and non-alphanumeric characters are
// stripped so platform-supplied names cannot traverse directories.
func fileExtension(filename string) string {
	if filename == "" {
		return ""
	}
	base := filepath.Base(filename)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))

	var b strings.Builder
	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
