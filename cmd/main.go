package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/englishbuddy/server/adapters/gemini"
	"github.com/englishbuddy/server/adapters/openai"
	"github.com/englishbuddy/server/adapters/stt"
	"github.com/englishbuddy/server/config"
	"github.com/englishbuddy/server/domain/repositories"
	"github.com/englishbuddy/server/internal/api"
	"github.com/englishbuddy/server/internal/ws"
	"github.com/englishbuddy/server/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// The provider client is constructed once and injected into every
	// handler; there is no package-level instance.
	provider, err := openai.NewClient(openai.Config{
		APIKey:             cfg.OpenAIAPIKey,
		BaseURL:            cfg.OpenAIBaseURL,
		ChatModel:          cfg.ChatModel,
		AudioChatModel:     cfg.AudioChatModel,
		TranscriptionModel: cfg.TranscriptionModel,
		Timeout:            time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create provider client", zap.Error(err))
	}

	var completer repositories.ChatCompleter = provider
	if cfg.ChatBackend == "gemini" {
		completer, err = gemini.NewClient(context.Background(), cfg.GeminiAPIKey, logger)
		if err != nil {
			logger.Fatal("Failed to create Gemini backend", zap.Error(err))
		}
		logger.Info("Using Gemini chat backend")
	}

	var transcriber repositories.Transcriber = provider
	if cfg.STTBackend == "google" {
		transcriber = stt.NewGoogleSpeechToText()
		logger.Info("Using Google transcription backend")
	}

	// Initialize usecase service
	exchange := usecase.NewExchangeService(completer, provider, transcriber, provider, logger)

	// Initialize conversation gateway
	gateway := ws.NewGateway(exchange, logger)

	// Initialize API routes
	api.InitRoutes(e, exchange, gateway, logger)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
