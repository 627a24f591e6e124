package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Voice reply kinds. "note" uses the voice-note endpoint (round playback
// bubble on the client), "audio" uses the generic audio endpoint.
const (
	VoiceKindNote  = "note"
	VoiceKindAudio = "audio"
)

type Config struct {
	TelegramToken string
	GroqAPIKey    string

	WordPressBaseURL string

	VoiceReplies  bool
	VoiceLanguage string
	VoiceKind     string
	TTSBaseURL    string

	Port     string
	DataDir  string
	LogLevel string
}

func Load() (*Config, error) {
	// .env is optional — env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		WordPressBaseURL: os.Getenv("WORDPRESS_BASE_URL"),
		VoiceReplies:     os.Getenv("VOICE_REPLIES") == "true",
		VoiceLanguage:    os.Getenv("VOICE_LANGUAGE"),
		VoiceKind:        os.Getenv("VOICE_KIND"),
		TTSBaseURL:       os.Getenv("TTS_BASE_URL"),
		Port:             os.Getenv("PORT"),
		DataDir:          os.Getenv("DATA_DIR"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}

	if cfg.WordPressBaseURL == "" {
		cfg.WordPressBaseURL = "https://www.tshealthstore.in"
	}

	if cfg.VoiceLanguage == "" {
		cfg.VoiceLanguage = "en"
	}

	if cfg.VoiceKind == "" {
		cfg.VoiceKind = VoiceKindNote
	}
	if cfg.VoiceKind != VoiceKindNote && cfg.VoiceKind != VoiceKindAudio {
		return nil, fmt.Errorf("VOICE_KIND must be %q or %q, got %q", VoiceKindNote, VoiceKindAudio, cfg.VoiceKind)
	}

	if cfg.TTSBaseURL == "" {
		cfg.TTSBaseURL = "https://translate.google.com"
	}

	for _, req := range []struct {
		name, val string
	}{
		{"TELEGRAM_TOKEN", cfg.TelegramToken},
		{"GROQ_API_KEY", cfg.GroqAPIKey},
	} {
		if req.val == "" {
			return nil, fmt.Errorf("required env var %s is not set", req.name)
		}
	}

	return cfg, nil
}
