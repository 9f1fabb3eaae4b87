package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds every setting the bot reads from the environment. Required
// variables are validated at startup so a misconfigured deploy fails
// immediately with a clear message instead of failing later mid-request.
type Config struct {
	// TelegramToken authenticates the bot against the messaging platform.
	TelegramToken string
	// OpenAIKey authenticates both the Whisper and chat-completion calls.
	OpenAIKey string
	// BotPassword gates access; users authenticate via /start <password>.
	BotPassword string

	// MaxAudioSizeMB caps inbound attachments before any download happens.
	MaxAudioSizeMB int
	// WhisperTemperature is kept at zero for deterministic transcripts.
	WhisperTemperature float32

	// STTProvider selects the transcription backend ("whisper", "google").
	STTProvider string
	// LLMProvider selects the reshaping backend ("openai", "gemini").
	LLMProvider string
	// AuthStore selects authorized-user persistence ("file", "mongo").
	AuthStore string

	// DataDir holds the authorized-users file when AuthStore is "file".
	DataDir string
	// TempDir holds scratch audio files during preparation.
	TempDir string

	// ServerAddr is the listen address of the health-check HTTP server.
	ServerAddr string
}

// Load reads and validates the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		BotPassword:        os.Getenv("BOT_PASSWORD"),
		MaxAudioSizeMB:     getEnvInt("MAX_AUDIO_SIZE_MB", 25),
		WhisperTemperature: getEnvFloat32("WHISPER_TEMPERATURE", 0),
		STTProvider:        strings.ToLower(getEnv("STT_PROVIDER", "whisper")),
		LLMProvider:        strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		AuthStore:          strings.ToLower(getEnv("AUTH_STORE", "file")),
		DataDir:            getEnv("DATA_DIR", "data"),
		TempDir:            getEnv("TEMP_DIR", "temp"),
		ServerAddr:         getEnv("SERVER_ADDR", ":8080"),
	}

	var missing []string
	if cfg.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if cfg.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if cfg.BotPassword == "" {
		missing = append(missing, "BOT_PASSWORD")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if cfg.MaxAudioSizeMB <= 0 {
		return nil, fmt.Errorf("MAX_AUDIO_SIZE_MB must be positive, got %d", cfg.MaxAudioSizeMB)
	}

	return cfg, nil
}

// MaxAudioSizeBytes returns the attachment cap in bytes for direct
// comparison against platform-declared sizes.
func (c *Config) MaxAudioSizeBytes() int64 {
	return int64(c.MaxAudioSizeMB) * 1024 * 1024
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat32(key string, fallback float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}
