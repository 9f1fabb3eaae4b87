package entities

import "testing"

func TestNewTranscriptionResultSingleLanguage(t *testing.T) {
	result := NewTranscriptionResult("olá mundo", "pt", nil, 42.5)

	if result.Language != "pt" {
		t.Errorf("Expected language pt, got %s", result.Language)
	}

	if result.LanguageName != "🇧🇷 Português" {
		t.Errorf("Expected Portuguese label, got %s", result.LanguageName)
	}

	if len(result.DetectedLanguages) != 1 || result.DetectedLanguages[0] != "pt" {
		t.Errorf("Expected detected languages [pt], got %v", result.DetectedLanguages)
	}

	if result.IsMultilingual {
		t.Error("Single-language result should not be multilingual")
	}

	if result.Duration != 42.5 {
		t.Errorf("Expected duration 42.5, got %f", result.Duration)
	}
}

func TestNewTranscriptionResultUnionsSegmentLanguages(t *testing.T) {
	result := NewTranscriptionResult("hello olá", "en", []string{"pt", "en", "pt"}, 10)

	if len(result.DetectedLanguages) != 2 {
		t.Fatalf("Expected 2 detected languages, got %v", result.DetectedLanguages)
	}

	// Primary language stays first, duplicates removed
	if result.DetectedLanguages[0] != "en" || result.DetectedLanguages[1] != "pt" {
		t.Errorf("Expected [en pt], got %v", result.DetectedLanguages)
	}

	if !result.IsMultilingual {
		t.Error("Result with two languages should be multilingual")
	}
}

func TestNewTranscriptionResultNegativeDuration(t *testing.T) {
	result := NewTranscriptionResult("text", "en", nil, -3)

	if result.Duration != 0 {
		t.Errorf("Negative duration should normalize to 0, got %f", result.Duration)
	}
}

func TestLanguageNameFallback(t *testing.T) {
	if name := LanguageName("pt"); name != "🇧🇷 Português" {
		t.Errorf("Expected mapped label for pt, got %s", name)
	}

	if name := LanguageName("xyz"); name != "XYZ" {
		t.Errorf("Expected uppercased fallback XYZ, got %s", name)
	}
}

func TestParseOutputShape(t *testing.T) {
	valid := []string{"raw", "summary", "minutes", "corrected"}
	for _, value := range valid {
		shape, ok := ParseOutputShape(value)
		if !ok {
			t.Errorf("Expected %q to parse", value)
		}
		if string(shape) != value {
			t.Errorf("Expected shape %q, got %q", value, shape)
		}
	}

	if _, ok := ParseOutputShape("poetry"); ok {
		t.Error("Unknown shape should not parse")
	}
}

func TestOutputShapeTitle(t *testing.T) {
	cases := map[OutputShape]string{
		ShapeRaw:       "Transcrição Crua",
		ShapeSummary:   "Resumo Executivo",
		ShapeMinutes:   "Ata Profissional",
		ShapeCorrected: "Texto Corrigido",
	}

	for shape, want := range cases {
		if got := shape.Title(); got != want {
			t.Errorf("Expected title %q for %s, got %q", want, shape, got)
		}
	}
}
