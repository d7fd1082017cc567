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
)

// Ensure Client implements the completion interfaces
var (
	_ repositories.ChatCompleter  = (*Client)(nil)
	_ repositories.AudioCompleter = (*Client)(nil)
)

// Sampling temperature used for tutor conversations
const chatTemperature = 0.7

// chatRequest is the provider chat completion payload
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Modalities  []string      `json:"modalities,omitempty"`
	Audio       *audioParams  `json:"audio,omitempty"`
}

// chatMessage carries either a plain string or a multimodal part list
// in Content, matching the provider's union encoding.
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	InputAudio *inputAudio `json:"input_audio,omitempty"`
}

type inputAudio struct {
	Data   string `json:"data"`
	Format string `json:"format"`
}

type audioParams struct {
	Voice  string `json:"voice"`
	Format string `json:"format"`
}

// chatResponse is the minimal response shape the adapter validates:
// at least one choice carrying a message object.
type chatResponse struct {
	Choices []struct {
		Message *struct {
			Role    string `json:"role"`
			Content string `json:"content"`
			Audio   *struct {
				Data string `json:"data"`
			} `json:"audio"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the message sequence to the text chat model and
// returns the assistant's reply.
func (c *Client) Complete(ctx context.Context, messages []repositories.ChatMessage) (repositories.ChatMessage, error) {
	const op = "chat completion"

	temperature := chatTemperature
	request := chatRequest{
		Model:       c.chatModel,
		Messages:    make([]chatMessage, 0, len(messages)),
		Temperature: &temperature,
		MaxTokens:   maxCompletionTokens,
	}
	for _, m := range messages {
		request.Messages = append(request.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	response, err := c.completion(ctx, op, request)
	if err != nil {
		return repositories.ChatMessage{}, err
	}

	message := response.Choices[0].Message
	c.logger.Info("Chat completion received",
		zap.String("model", c.chatModel),
		zap.Int("messages", len(messages)))

	return repositories.ChatMessage{
		Role:    repositories.AssistantRole,
		Content: message.Content,
	}, nil
}

// CompleteWithAudio requests a multimodal text+audio completion. The
// user prompt is either plain text or an input_audio part built from
// bare base64.
func (c *Client) CompleteWithAudio(ctx context.Context, req repositories.AudioCompletionRequest) (repositories.AudioCompletion, error) {
	const op = "audio completion"

	voice := req.Voice
	if voice == "" {
		voice = repositories.DefaultVoice
	}
	format := req.AudioFormat
	if format == "" {
		format = "wav"
	}

	request := chatRequest{
		Model:      c.audioChatModel,
		Modalities: []string{"text", "audio"},
		Audio:      &audioParams{Voice: voice, Format: "wav"},
		MaxTokens:  maxCompletionTokens,
	}

	if req.SystemPrompt != "" {
		request.Messages = append(request.Messages, chatMessage{
			Role:    string(repositories.SystemRole),
			Content: req.SystemPrompt,
		})
	}

	if req.AudioBase64 != "" {
		parts := []contentPart{}
		if req.Text != "" {
			parts = append(parts, contentPart{Type: "text", Text: req.Text})
		}
		parts = append(parts, contentPart{
			Type:       "input_audio",
			InputAudio: &inputAudio{Data: req.AudioBase64, Format: format},
		})
		request.Messages = append(request.Messages, chatMessage{
			Role:    string(repositories.UserRole),
			Content: parts,
		})
	} else {
		request.Messages = append(request.Messages, chatMessage{
			Role:    string(repositories.UserRole),
			Content: req.Text,
		})
	}

	response, err := c.completion(ctx, op, request)
	if err != nil {
		return repositories.AudioCompletion{}, err
	}

	message := response.Choices[0].Message
	completion := repositories.AudioCompletion{Text: message.Content}
	if message.Audio != nil {
		completion.AudioBase64 = message.Audio.Data
	}

	c.logger.Info("Audio completion received",
		zap.String("model", c.audioChatModel),
		zap.Bool("hasAudio", completion.AudioBase64 != ""),
		zap.Int("audioBase64Length", len(completion.AudioBase64)))

	return completion, nil
}

// completion performs one chat completions call and validates the
// minimal response shape shared by both modes.
func (c *Client) completion(ctx context.Context, op string, request chatRequest) (*chatResponse, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	body, err := c.post(httpReq, op)
	if err != nil {
		return nil, err
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &domain.ShapeError{Op: op, Missing: "parseable JSON body"}
	}
	if len(response.Choices) == 0 {
		return nil, &domain.ShapeError{Op: op, Missing: "completion choice"}
	}
	if response.Choices[0].Message == nil {
		return nil, &domain.ShapeError{Op: op, Missing: "message object"}
	}

	return &response, nil
}
