package api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/englishbuddy/server/domain"
	"github.com/englishbuddy/server/domain/repositories"
	"github.com/englishbuddy/server/internal/ws"
	"github.com/englishbuddy/server/usecase"
)

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, exchange *usecase.ExchangeService, gateway *ws.Gateway, logger *zap.Logger) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "english-buddy-server",
		})
	})

	e.POST("/chat", func(c echo.Context) error {
		return chat(c, exchange, logger)
	})
	e.POST("/speech", func(c echo.Context) error {
		return speech(c, exchange, logger)
	})
	e.POST("/text-to-speech", func(c echo.Context) error {
		return textToSpeech(c, exchange, logger)
	})
	e.POST("/speech-to-speech", func(c echo.Context) error {
		return speechToSpeech(c, exchange, logger)
	})
	e.POST("/audio-conversation", func(c echo.Context) error {
		return audioConversation(c, exchange, logger)
	})

	// Live conversation gateway
	e.GET("/ws", gateway.Handle)
}

// chat runs one tutor turn over the supplied message history.
func chat(c echo.Context, exchange *usecase.ExchangeService, logger *zap.Logger) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
	}
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Messages are required"})
	}

	reply, err := exchange.Chat(c.Request().Context(), req.Messages)
	if err != nil {
		return providerFailure(c, logger, "Failed to generate response", err)
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Role:    repositories.AssistantRole,
		Content: reply.Content,
	})
}

// speech synthesizes text with per-request voice settings.
func speech(c echo.Context, exchange *usecase.ExchangeService, logger *zap.Logger) error {
	var req SpeechRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
	}

	audio, err := exchange.Speak(c.Request().Context(), req.Text, repositories.VoiceSettings{
		Voice: req.Voice,
		Model: req.Model,
		Speed: req.Speed,
	})
	if err != nil {
		return providerFailure(c, logger, "Failed to generate speech", err)
	}

	return c.JSON(http.StatusOK, SpeechResponse{Audio: audio})
}

// textToSpeech requests a multimodal text+audio completion for a prompt.
func textToSpeech(c echo.Context, exchange *usecase.ExchangeService, logger *zap.Logger) error {
	var req TextToSpeechRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
	}

	result, err := exchange.TextToAudio(c.Request().Context(), req.Prompt)
	if err != nil {
		return providerFailure(c, logger, "Failed to generate audio", err)
	}

	return c.JSON(http.StatusOK, TextToSpeechResponse{
		AudioData: optional(result.AudioBase64),
		Text:      optional(result.Text),
	})
}

// speechToSpeech accepts one multipart audio upload, transcribes it,
// and returns the spoken tutor reply with the transcript.
func speechToSpeech(c echo.Context, exchange *usecase.ExchangeService, logger *zap.Logger) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request - audio file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded audio", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request - audio file is required"})
	}
	defer file.Close()

	audioData, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded audio", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process audio"})
	}

	format := strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
	transcription, result, err := exchange.SpeechToSpeech(c.Request().Context(), audioData, format)
	if err != nil {
		return providerFailure(c, logger, "Failed to process audio", err)
	}

	return c.JSON(http.StatusOK, SpeechToSpeechResponse{
		AudioData:     optional(result.AudioBase64),
		Transcription: transcription,
	})
}

// audioConversation forwards a recording straight to the multimodal
// model, stripping any data URL prefix first.
func audioConversation(c echo.Context, exchange *usecase.ExchangeService, logger *zap.Logger) error {
	var req AudioConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
	}
	if req.AudioData == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No audio data provided"})
	}

	result, err := exchange.AudioConversation(c.Request().Context(), req.AudioData)
	if err != nil {
		return providerFailure(c, logger, "Failed to process audio conversation", err)
	}

	return c.JSON(http.StatusOK, AudioConversationResponse{
		Text:      optional(result.Text),
		AudioData: optional(result.AudioBase64),
	})
}

// providerFailure converts pipeline errors into structured responses:
// validation problems become 400s that never reached the provider,
// everything else is a 500 carrying a human-readable cause.
func providerFailure(c echo.Context, logger *zap.Logger, message string, err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Message})
	}

	var shapeErr *domain.ShapeError
	var transportErr *domain.TransportError
	switch {
	case errors.As(err, &shapeErr):
		logger.Error("Provider returned unexpected response", zap.String("endpoint", c.Path()), zap.Error(err))
	case errors.As(err, &transportErr):
		logger.Error("Provider unreachable", zap.String("endpoint", c.Path()), zap.Error(err))
	default:
		logger.Error("Request failed", zap.String("endpoint", c.Path()), zap.Error(err))
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   message,
		Details: err.Error(),
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
