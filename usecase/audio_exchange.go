package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/englishbuddy/server/domain"
	"github.com/englishbuddy/server/domain/repositories"
	"github.com/englishbuddy/server/internal/codec"
)

// TextToAudio requests a multimodal completion for a free-form prompt
// and returns both the textual reply and the synthesized audio.
func (s *ExchangeService) TextToAudio(ctx context.Context, prompt string) (domain.AudioExchange, error) {
	if prompt == "" {
		return domain.AudioExchange{}, domain.NewValidationError("prompt is required")
	}

	completion, err := s.audio.CompleteWithAudio(ctx, repositories.AudioCompletionRequest{
		Text:  prompt,
		Voice: repositories.DefaultVoice,
	})
	if err != nil {
		return domain.AudioExchange{}, err
	}

	return domain.AudioExchange{
		Text:        completion.Text,
		AudioBase64: completion.AudioBase64,
	}, nil
}

// SpeechToSpeech runs the strictly sequential two-step pipeline:
// transcribe the recording, then feed the transcript to the tutor
// persona configured for audio output. A transcription failure aborts
// before the completion call is made. Format is the recording's
// container tag, e.g. "wav" or "webm"; empty means wav.
func (s *ExchangeService) SpeechToSpeech(ctx context.Context, audioData []byte, format string) (string, domain.AudioExchange, error) {
	if len(audioData) == 0 {
		return "", domain.AudioExchange{}, domain.NewValidationError("audio data is required")
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "wav"
	}

	transcription, err := s.transcriber.Transcribe(ctx, audioData, repositories.TranscriptionOptions{
		Filename: "audio." + format,
		Prompt:   TranscriptionHint,
	})
	if err != nil {
		return "", domain.AudioExchange{}, err
	}

	s.logger.Info("Transcription step completed", zap.String("transcription", transcription))

	completion, err := s.audio.CompleteWithAudio(ctx, repositories.AudioCompletionRequest{
		SystemPrompt: AudioTutorSystemPrompt,
		Text:         transcription,
		Voice:        repositories.DefaultVoice,
	})
	if err != nil {
		// The transcript is discarded from the failure path; callers
		// get an overall failure, never a partial success.
		return "", domain.AudioExchange{}, err
	}

	return transcription, domain.AudioExchange{
		Text:        completion.Text,
		AudioBase64: completion.AudioBase64,
	}, nil
}

// AudioConversation sends a recording straight to the multimodal model
// with a fixed text part. The inbound payload may be a data URL or bare
// base64; the prefix is stripped before transmission.
func (s *ExchangeService) AudioConversation(ctx context.Context, audioData string) (domain.AudioExchange, error) {
	if audioData == "" {
		return domain.AudioExchange{}, domain.NewValidationError("no audio data provided")
	}

	cleanBase64 := codec.StripDataURLPrefix(audioData)

	completion, err := s.audio.CompleteWithAudio(ctx, repositories.AudioCompletionRequest{
		Text:        audioConversationText,
		AudioBase64: cleanBase64,
		AudioFormat: "wav",
		Voice:       repositories.DefaultVoice,
	})
	if err != nil {
		return domain.AudioExchange{}, err
	}

	return domain.AudioExchange{
		Text:        completion.Text,
		AudioBase64: completion.AudioBase64,
	}, nil
}
