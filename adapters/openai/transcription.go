package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/englishbuddy/server/domain"
	"github.com/englishbuddy/server/domain/repositories"
	"github.com/englishbuddy/server/internal/codec"
)

// Ensure Client implements the Transcriber interface
var _ repositories.Transcriber = (*Client)(nil)

type transcriptionResponse struct {
	Text *string `json:"text"`
}

// Transcribe converts audio data to text by uploading it as a
// multipart form to the provider's transcription endpoint.
func (c *Client) Transcribe(ctx context.Context, audioData []byte, opts repositories.TranscriptionOptions) (string, error) {
	const op = "transcription"

	if len(audioData) == 0 {
		return "", domain.NewValidationError("audio data cannot be empty")
	}

	filename := opts.Filename
	if filename == "" {
		filename = "audio.wav"
	}

	fields := map[string]string{"model": c.transcriptionModel}
	if opts.Prompt != "" {
		fields["prompt"] = opts.Prompt
	}
	if opts.Language != "" {
		fields["language"] = opts.Language
	}

	var body bytes.Buffer
	contentType, err := codec.MultipartAudio(&body, "file", filename, bytes.NewReader(audioData), fields)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	responseBody, err := c.post(httpReq, op)
	if err != nil {
		return "", err
	}

	var response transcriptionResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return "", &domain.ShapeError{Op: op, Missing: "parseable JSON body"}
	}
	if response.Text == nil {
		return "", &domain.ShapeError{Op: op, Missing: "text field"}
	}

	c.logger.Info("Transcription completed",
		zap.String("model", c.transcriptionModel),
		zap.Int("audioBytes", len(audioData)),
		zap.Int("transcriptLength", len(*response.Text)))

	return *response.Text, nil
}
