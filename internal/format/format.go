// Package format holds presentation helpers shared by the usecases and
// the bot runtime.
package format

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxMessageLength is the platform text-message cap, minus slack for
// the part counter prefix.
const maxMessageLength = 4000

// Duration renders a second count as "45s", "2min 30s" or "1h 1min 1s".
func Duration(seconds float64) string {
	total := int(seconds)

	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}

	minutes, secs := total/60, total%60
	if minutes < 60 {
		if secs == 0 {
			return fmt.Sprintf("%dmin", minutes)
		}
		return fmt.Sprintf("%dmin %ds", minutes, secs)
	}

	hours, mins := minutes/60, minutes%60
	parts := []string{fmt.Sprintf("%dh", hours)}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dmin", mins))
	}
	if secs > 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	return strings.Join(parts, " ")
}

// FileSize renders a byte count as "512B", "12.3KB" or "2.5MB".
func FileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%dB", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1fKB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1fMB", float64(bytes)/(1024*1024))
	}
}

// MaskUserID hides the middle digits of a user ID for logs.
func MaskUserID(userID int64) string {
	s := fmt.Sprintf("%d", userID)
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

// ChunkMessage splits text into platform-sized pieces, breaking on
// newlines where possible, then on spaces, so paragraphs and words
// stay intact. A hard cut always lands on a rune boundary.
func ChunkMessage(text string) []string {
	if len(text) <= maxMessageLength {
		return []string{text}
	}

	var chunks []string
	remaining := text
	for len(remaining) > maxMessageLength {
		cut := chunkBoundary(remaining)
		chunks = append(chunks, strings.TrimRight(remaining[:cut], "\n "))
		remaining = strings.TrimLeft(remaining[cut:], "\n ")
	}
	if remaining != "" {
		chunks = append(chunks, remaining)
	}
	return chunks
}

// chunkBoundary picks the split offset for the next chunk: the last
// newline in the window, then the last space, then the cap backed up
// to the start of a rune. Boundaries in the first half of the window
// are ignored so chunks never degenerate.
func chunkBoundary(s string) int {
	window := s[:maxMessageLength]
	if i := strings.LastIndexByte(window, '\n'); i > maxMessageLength/2 {
		return i
	}
	if i := strings.LastIndexByte(window, ' '); i > maxMessageLength/2 {
		return i
	}
	cut := maxMessageLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		return maxMessageLength
	}
	return cut
}
