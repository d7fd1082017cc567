// Package gemini provides an alternative chat completion backend on
// Google's Gemini API, selected with CHAT_BACKEND=gemini. Only the text
// chat capability is served here; audio paths stay on the default
// provider.
package gemini

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/englishbuddy/server/domain"
	"github.com/englishbuddy/server/domain/repositories"
)

const (
	defaultModel       = "gemini-2.0-flash"
	defaultTemperature = 0.7
	maxOutputTokens    = 500
)

// Ensure Client implements the ChatCompleter interface
var _ repositories.ChatCompleter = (*Client)(nil)

// Client implements the ChatCompleter interface using the Gemini API
type Client struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a new Gemini chat backend
func NewClient(ctx context.Context, apiKey string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  defaultModel,
		logger: logger,
	}, nil
}

// Complete sends the message sequence and returns the model's reply.
func (g *Client) Complete(ctx context.Context, messages []repositories.ChatMessage) (repositories.ChatMessage, error) {
	const op = "gemini chat completion"

	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := genai.Role(genai.RoleUser)
		if msg.Role == repositories.AssistantRole {
			role = genai.RoleModel
		}
		// System messages are carried as user content; Gemini has no
		// separate system role in the content list.
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(defaultTemperature)),
		MaxOutputTokens: maxOutputTokens,
	}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return repositories.ChatMessage{}, &domain.TransportError{Op: op, Err: err}
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return repositories.ChatMessage{}, &domain.ShapeError{Op: op, Missing: "completion candidate"}
	}

	var responseText string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			responseText += part.Text
		}
	}
	if responseText == "" {
		return repositories.ChatMessage{}, &domain.ShapeError{Op: op, Missing: "text content"}
	}

	g.logger.Info("Gemini completion received",
		zap.String("model", g.model),
		zap.Int("messages", len(messages)),
		zap.Int("replyLength", len(responseText)))

	return repositories.ChatMessage{
		Role:    repositories.AssistantRole,
		Content: responseText,
	}, nil
}
