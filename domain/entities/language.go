package entities

import "strings"

// languageNames maps ISO 639-1 codes reported by the transcription service
// to labels the user understands. Focused on the main audiences plus the
// common long tail; anything unmapped falls back to the uppercased code.
var languageNames = map[string]string{
	"pt": "🇧🇷 Português",
	"en": "🇺🇸 Inglês",
	"es": "🇪🇸 Espanhol",
	"fr": "🇫🇷 Francês",
	"de": "🇩🇪 Alemão",
	"it": "🇮🇹 Italiano",
	"ja": "🇯🇵 Japonês",
	"ko": "🇰🇷 Coreano",
	"zh": "🇨🇳 Chinês",
	"ru": "🇷🇺 Russo",
	"ar": "🇸🇦 Árabe",
	"hi": "🇮🇳 Hindi",
	"nl": "🇳🇱 Holandês",
	"pl": "🇵🇱 Polonês",
	"tr": "🇹🇷 Turco",
	"uk": "🇺🇦 Ucraniano",
	"sv": "🇸🇪 Sueco",
	"da": "🇩🇰 Dinamarquês",
	"fi": "🇫🇮 Finlandês",
	"no": "🇳🇴 Norueguês",
}

// LanguageName converts a language code to a readable label. Unmapped codes
// return the code uppercased so the result is never empty for a known code.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}
