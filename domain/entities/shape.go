package entities

// OutputShape selects how the transcript is presented back to the user.
type OutputShape string

const (
	// ShapeRaw returns the transcript exactly as transcribed.
	ShapeRaw OutputShape = "raw"
	// ShapeSummary condenses the transcript into an executive summary.
	ShapeSummary OutputShape = "summary"
	// ShapeMinutes structures the transcript as corporate meeting minutes.
	ShapeMinutes OutputShape = "minutes"
	// ShapeCorrected fixes orthography, punctuation and paragraphing only.
	ShapeCorrected OutputShape = "corrected"
)

// ParseOutputShape validates a user-provided shape value.
func ParseOutputShape(value string) (OutputShape, bool) {
	switch OutputShape(value) {
	case ShapeRaw, ShapeSummary, ShapeMinutes, ShapeCorrected:
		return OutputShape(value), true
	}
	return "", false
}

// Title returns the header used when delivering a result in this shape.
func (s OutputShape) Title() string {
	switch s {
	case ShapeSummary:
		return "Resumo Executivo"
	case ShapeMinutes:
		return "Ata Profissional"
	case ShapeCorrected:
		return "Texto Corrigido"
	case ShapeRaw:
		return "Transcrição Crua"
	}
	return "Resultado"
}
