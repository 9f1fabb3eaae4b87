package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain"
	"github.com/notavoz/notavoz/domain/repositories"
)

// Converter shells out to ffmpeg and ffprobe to inspect and normalize
// audio files. Binaries must be present on PATH.
type Converter struct {
	logger       *zap.Logger
	ffmpegBin    string
	ffprobeBin   string
	sampleRate   int
	channels     int
	audioBitrate string
}

var _ repositories.AudioConverter = (*Converter)(nil)

const (
	msgInvalidAudio = "❌ O arquivo enviado não é um áudio válido ou está corrompido.\n" +
		"💡 Tente enviar o áudio novamente."
	msgConversionFailed = "❌ Erro ao processar o áudio.\n" +
		"💡 O formato pode não ser suportado. Tente enviar em MP3, M4A ou WAV."
)

// NewConverter returns a converter targeting mono 16 kHz 64 kbps MP3,
// the canonical form the transcription backend expects.
func NewConverter(logger *zap.Logger) *Converter {
	return &Converter{
		logger:       logger,
		ffmpegBin:    "ffmpeg",
		ffprobeBin:   "ffprobe",
		sampleRate:   16000,
		channels:     1,
		audioBitrate: "64k",
	}
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe returns the duration of the file at path in seconds. A failure
// here means the file is not decodable audio.
func (c *Converter) Probe(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.ffprobeBin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		c.logger.Warn("ffprobe failed",
			zap.String("path", path),
			zap.String("stderr", stderr.String()),
			zap.Error(err))
		return 0, domain.NewConversionError(msgInvalidAudio, fmt.Errorf("ffprobe: %w: %s", err, stderr.String()))
	}

	var out probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return 0, domain.NewConversionError(msgInvalidAudio, fmt.Errorf("parse ffprobe output: %w", err))
	}

	duration, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return 0, domain.NewConversionError(msgInvalidAudio, fmt.Errorf("parse duration %q: %w", out.Format.Duration, err))
	}

	return duration, nil
}

// Normalize transcodes src into dst as mono 16 kHz MP3. dst is
// overwritten if it already exists.
func (c *Converter) Normalize(ctx context.Context, src, dst string) error {
	args := c.normalizeArgs(src, dst)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.ffmpegBin, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		c.logger.Warn("ffmpeg transcode failed",
			zap.String("src", src),
			zap.String("stderr", stderr.String()),
			zap.Error(err))
		return domain.NewConversionError(msgConversionFailed, fmt.Errorf("ffmpeg: %w: %s", err, stderr.String()))
	}

	c.logger.Debug("audio normalized",
		zap.String("src", src),
		zap.String("dst", dst))
	return nil
}

func (c *Converter) normalizeArgs(src, dst string) []string {
	return []string{
		"-y",
		"-i", src,
		"-ac", strconv.Itoa(c.channels),
		"-ar", strconv.Itoa(c.sampleRate),
		"-b:a", c.audioBitrate,
		"-f", "mp3",
		dst,
	}
}
