package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/englishbuddy/server/domain/repositories"
)

// Ensure Client implements the SpeechSynthesizer interface
var _ repositories.SpeechSynthesizer = (*Client)(nil)

type speechRequest struct {
	Model string  `json:"model"`
	Input string  `json:"input"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
}

// Synthesize converts text to audio bytes using the provider's speech
// endpoint. The response body is the raw encoded audio.
func (c *Client) Synthesize(ctx context.Context, text string, settings repositories.VoiceSettings) ([]byte, error) {
	const op = "speech synthesis"

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	request := speechRequest{
		Model: settings.Model,
		Input: text,
		Voice: settings.Voice,
		Speed: settings.Speed,
	}
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	audio, err := c.post(httpReq, op)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Speech synthesis completed",
		zap.String("model", settings.Model),
		zap.String("voice", settings.Voice),
		zap.Float64("speed", settings.Speed),
		zap.Int("audioBytes", len(audio)))

	return audio, nil
}
