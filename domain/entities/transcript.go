package entities

// TranscriptionResult is the immutable outcome of a successful
// speech-to-text call.
type TranscriptionResult struct {
	// Text is the full transcript.
	Text string
	// Language is the dominant language code reported upstream (ISO 639-1).
	Language string
	// LanguageName is the human-readable label derived from Language.
	LanguageName string
	// DetectedLanguages lists every language seen in the clip, dominant
	// first, without duplicates. Usually a singleton: the upstream service
	// reports one language for the whole clip, and per-segment codes are
	// only unioned in when the response actually carries them.
	DetectedLanguages []string
	// IsMultilingual is set when DetectedLanguages has more than one member.
	IsMultilingual bool
	// Duration is the audio duration in seconds, 0 meaning unknown.
	Duration float64
}

// NewTranscriptionResult assembles a result from the upstream response.
// segmentLanguages may be empty; when present they are unioned with the
// primary language, primary kept first.
func NewTranscriptionResult(text, language string, segmentLanguages []string, duration float64) *TranscriptionResult {
	detected := []string{}
	if language != "" {
		detected = append(detected, language)
	}
	for _, lang := range segmentLanguages {
		if lang == "" || contains(detected, lang) {
			continue
		}
		detected = append(detected, lang)
	}

	if duration < 0 {
		duration = 0
	}

	return &TranscriptionResult{
		Text:              text,
		Language:          language,
		LanguageName:      LanguageName(language),
		DetectedLanguages: detected,
		IsMultilingual:    len(detected) > 1,
		Duration:          duration,
	}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
