// Package usecase orchestrates one request/response cycle per
// conversation mode. All four modes share a single exchange pipeline:
// decode the inbound payload, make exactly one provider round trip per
// capability, and encode the reply. No state is retained between calls
// and nothing is retried or cached.
package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/englishbuddy/server/domain"
	"github.com/englishbuddy/server/domain/repositories"
	"github.com/englishbuddy/server/internal/codec"
)

// ExchangeService routes text and audio between the caller and the
// provider. All provider capabilities are injected explicitly; the
// service holds no hidden shared state.
type ExchangeService struct {
	completer   repositories.ChatCompleter
	audio       repositories.AudioCompleter
	transcriber repositories.Transcriber
	synthesizer repositories.SpeechSynthesizer
	logger      *zap.Logger
}

// NewExchangeService creates a new exchange service
func NewExchangeService(
	completer repositories.ChatCompleter,
	audio repositories.AudioCompleter,
	transcriber repositories.Transcriber,
	synthesizer repositories.SpeechSynthesizer,
	logger *zap.Logger,
) *ExchangeService {
	return &ExchangeService{
		completer:   completer,
		audio:       audio,
		transcriber: transcriber,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// Chat runs one tutor chat turn: the fixed system prompt is prepended
// to the supplied history, in order, and only the assistant reply is
// returned. The system prompt never appears in the returned sequence.
func (s *ExchangeService) Chat(ctx context.Context, messages []repositories.ChatMessage) (repositories.ChatMessage, error) {
	if len(messages) == 0 {
		return repositories.ChatMessage{}, domain.NewValidationError("messages are required")
	}

	outbound := make([]repositories.ChatMessage, 0, len(messages)+1)
	outbound = append(outbound, repositories.ChatMessage{
		Role:    repositories.SystemRole,
		Content: TutorSystemPrompt,
	})
	outbound = append(outbound, messages...)

	reply, err := s.completer.Complete(ctx, outbound)
	if err != nil {
		return repositories.ChatMessage{}, err
	}

	s.logger.Info("Chat turn completed",
		zap.Int("historyLength", len(messages)),
		zap.Int("replyLength", len(reply.Content)))

	return reply, nil
}

// Speak synthesizes text with the given voice settings and returns the
// audio as bare base64. Zero-valued settings get the standard defaults;
// out-of-range speed is rejected before the provider is called.
func (s *ExchangeService) Speak(ctx context.Context, text string, settings repositories.VoiceSettings) (string, error) {
	if text == "" {
		return "", domain.NewValidationError("text is required")
	}

	settings = settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return "", err
	}

	audio, err := s.synthesizer.Synthesize(ctx, text, settings)
	if err != nil {
		return "", err
	}

	return codec.EncodeBase64Audio(audio), nil
}
