package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all server configuration
type Config struct {
	Port string

	// OpenAI provider settings
	OpenAIAPIKey  string
	OpenAIBaseURL string

	// Backend selection. The OpenAI provider serves every capability by
	// default; chat and transcription can be pointed at Google backends.
	ChatBackend string // "openai" or "gemini"
	STTBackend  string // "openai" or "google"

	GeminiAPIKey string

	// Model overrides
	ChatModel          string
	AudioChatModel     string
	TranscriptionModel string

	RequestTimeoutSeconds int
}

const (
	defaultPort               = "8080"
	defaultOpenAIBaseURL      = "https://api.openai.com/v1"
	defaultChatModel          = "gpt-4-turbo-preview"
	defaultAudioChatModel     = "gpt-4o-audio-preview"
	defaultTranscriptionModel = "whisper-1"
	defaultTimeoutSeconds     = 90
)

// Load reads configuration from environment variables with defaults.
// A .env file at the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  defaultPort,
		OpenAIBaseURL:         defaultOpenAIBaseURL,
		ChatBackend:           "openai",
		STTBackend:            "openai",
		ChatModel:             defaultChatModel,
		AudioChatModel:        defaultAudioChatModel,
		TranscriptionModel:    defaultTranscriptionModel,
		RequestTimeoutSeconds: defaultTimeoutSeconds,
	}

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.OpenAIBaseURL = baseURL
	}

	if backend := os.Getenv("CHAT_BACKEND"); backend != "" {
		switch backend {
		case "openai", "gemini":
			cfg.ChatBackend = backend
		default:
			return nil, fmt.Errorf("invalid CHAT_BACKEND: must be 'openai' or 'gemini'")
		}
	}

	if backend := os.Getenv("STT_BACKEND"); backend != "" {
		switch backend {
		case "openai", "google":
			cfg.STTBackend = backend
		default:
			return nil, fmt.Errorf("invalid STT_BACKEND: must be 'openai' or 'google'")
		}
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.ChatBackend == "gemini" && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required when CHAT_BACKEND is 'gemini'")
	}

	if model := os.Getenv("CHAT_MODEL"); model != "" {
		cfg.ChatModel = model
	}

	if model := os.Getenv("AUDIO_CHAT_MODEL"); model != "" {
		cfg.AudioChatModel = model
	}

	if model := os.Getenv("TRANSCRIPTION_MODEL"); model != "" {
		cfg.TranscriptionModel = model
	}

	if timeout := os.Getenv("REQUEST_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil || t <= 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %s", timeout)
		}
		cfg.RequestTimeoutSeconds = t
	}

	return cfg, nil
}
