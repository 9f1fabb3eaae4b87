package ffmpeg

import (
	"encoding/json"
	"reflect"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestNormalizeArgs(t *testing.T) {
	c := NewConverter(zaptest.NewLogger(t))

	got := c.normalizeArgs("/tmp/in.oga", "/tmp/out.mp3")
	want := []string{
		"-y",
		"-i", "/tmp/in.oga",
		"-ac", "1",
		"-ar", "16000",
		"-b:a", "64k",
		"-f", "mp3",
		"/tmp/out.mp3",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeArgs() = %v, want %v", got, want)
	}
}

func TestProbeOutputParsing(t *testing.T) {
	// ffprobe -of json emits duration as a string.
	raw := []byte(`{"format":{"duration":"12.483000"}}`)

	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Format.Duration != "12.483000" {
		t.Errorf("duration = %q, want 12.483000", out.Format.Duration)
	}
}
