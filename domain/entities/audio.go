package entities

// AudioAsset describes an inbound audio attachment before any byte has been
// transferred. DeclaredSize and DurationHint come from the messaging platform
// and are not trusted beyond the pre-download size check.
type AudioAsset struct {
	FileRef      string
	DeclaredSize int64
	Filename     string
	DurationHint int
}

// CanonicalAudio is a prepared audio file in the single encoding the
// transcription service is guaranteed to accept: mono, 16 kHz, 16-bit,
// 64 kbps MP3. The path points at a scratch file owned by the caller,
// which must remove it once the transcription call completes.
type CanonicalAudio struct {
	Path string
	// Duration in seconds as probed from the actual bytes, 0 if unknown.
	Duration float64
}
