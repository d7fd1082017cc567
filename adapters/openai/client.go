// Package openai adapts the external completion, transcription, and
// speech synthesis HTTP API behind the domain repository interfaces.
// Each exported method performs exactly one outbound call.
package openai

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/englishbuddy/server/domain"
)

const (
	defaultBaseURL            = "https://api.openai.com/v1"
	defaultChatModel          = "gpt-4-turbo-preview"
	defaultAudioChatModel     = "gpt-4o-audio-preview"
	defaultTranscriptionModel = "whisper-1"
	defaultTimeout            = 90 * time.Second

	// Reply length cap applied to every completion call
	maxCompletionTokens = 500
)

// Config holds configuration for the OpenAI provider client
// Required fields:
// - APIKey: Your OpenAI API key
// Optional fields with defaults:
// - BaseURL: API base URL (default: "https://api.openai.com/v1")
// - ChatModel: text chat model (default: "gpt-4-turbo-preview")
// - AudioChatModel: multimodal chat model (default: "gpt-4o-audio-preview")
// - TranscriptionModel: speech recognition model (default: "whisper-1")
// - Timeout: per-request HTTP timeout (default: 90s)
type Config struct {
	APIKey             string
	BaseURL            string
	ChatModel          string
	AudioChatModel     string
	TranscriptionModel string
	Timeout            time.Duration
}

// Client is a stateless adapter over the provider HTTP API, safe for
// concurrent independent invocations.
type Client struct {
	apiKey             string
	baseURL            string
	chatModel          string
	audioChatModel     string
	transcriptionModel string
	httpClient         *http.Client
	logger             *zap.Logger
}

// ValidateConfig validates the provider client configuration
func ValidateConfig(config Config) error {
	if config.APIKey == "" {
		return fmt.Errorf("openai API key is required")
	}
	if config.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got %v", config.Timeout)
	}
	return nil
}

// NewClient creates a new provider client instance
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
		logger.Info("Using default API base URL", zap.String("baseURL", baseURL))
	}

	chatModel := config.ChatModel
	if chatModel == "" {
		chatModel = defaultChatModel
	}

	audioChatModel := config.AudioChatModel
	if audioChatModel == "" {
		audioChatModel = defaultAudioChatModel
	}

	transcriptionModel := config.TranscriptionModel
	if transcriptionModel == "" {
		transcriptionModel = defaultTranscriptionModel
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		apiKey:             config.APIKey,
		baseURL:            strings.TrimSuffix(baseURL, "/"),
		chatModel:          chatModel,
		audioChatModel:     audioChatModel,
		transcriptionModel: transcriptionModel,
		httpClient:         &http.Client{Timeout: timeout},
		logger:             logger,
	}, nil
}

// post sends one request to the provider and returns the response body.
// Network failures and non-success statuses are reported as
// TransportError; response interpretation is left to the caller.
func (c *Client) post(req *http.Request, op string) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Provider returned error status",
			zap.String("op", op),
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", truncate(string(body), 512)))
		return nil, &domain.TransportError{
			Op:  op,
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 512)),
		}
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
