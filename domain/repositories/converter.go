package repositories

import "context"

// AudioConverter probes and normalizes audio files on disk. It is the only
// collaborator that touches raw media bytes.
type AudioConverter interface {
	// Probe reads basic metadata from the file and returns the duration in
	// seconds. A probe failure means the bytes are not valid audio.
	Probe(ctx context.Context, path string) (float64, error)

	// Normalize re-encodes src into the canonical speech profile (mono,
	// 16 kHz, 16-bit, 64 kbps MP3) at dst.
	Normalize(ctx context.Context, src, dst string) error
}
