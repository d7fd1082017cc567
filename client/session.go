// Package client models the per-tab conversation state held by the
// browser UI: the message history, the recording flag, and the voice
// settings. Nothing here survives a page reload; the whole session dies
// with its owner.
package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/englishbuddy/server/domain"
	"github.com/englishbuddy/server/domain/repositories"
)

// State is the session's position in its lifecycle
type State string

const (
	StateIdle             State = "idle"
	StateRecording        State = "recording"
	StateAwaitingResponse State = "awaiting_response"
)

// ChatFunc performs one round trip to the tutor backend with the full
// message history and returns the assistant reply.
type ChatFunc func(ctx context.Context, messages []repositories.ChatMessage) (repositories.ChatMessage, error)

// Session is the in-memory UI state for one page load. It is owned by
// a single tab and mutated only by its own event handlers; the mutex
// guards against the recognizer callbacks, which arrive asynchronously.
type Session struct {
	ID string

	mu         sync.Mutex
	state      State
	recording  bool
	continuous bool
	messages   []repositories.ChatMessage
	input      string
	settings   repositories.VoiceSettings

	recognizer Recognizer
	chat       ChatFunc
	logger     *zap.Logger
}

// NewSession creates a session with the chat screen's default voice
// settings.
func NewSession(recognizer Recognizer, chat ChatFunc, logger *zap.Logger) *Session {
	s := &Session{
		ID:    uuid.NewString(),
		state: StateIdle,
		settings: repositories.VoiceSettings{
			Voice: "nova",
			Model: repositories.DefaultTTSModel,
			Speed: repositories.DefaultSpeed,
		},
		recognizer: recognizer,
		chat:       chat,
		logger:     logger,
	}
	if recognizer != nil {
		recognizer.SetHandlers(s.handleResult, s.handleEnd)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the conversation history.
func (s *Session) Messages() []repositories.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repositories.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Input returns the live dictation transcript.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Settings returns the current voice settings.
func (s *Session) Settings() repositories.VoiceSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetSettings replaces the voice settings used for playback requests.
func (s *Session) SetSettings(settings repositories.VoiceSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// StartRecording arms the recognizer. Continuous mode keeps dictation
// alive across recognition runs until StopRecording is called.
func (s *Session) StartRecording(continuous bool) error {
	s.mu.Lock()
	if s.recognizer == nil {
		s.mu.Unlock()
		return domain.NewValidationError("speech recognition is not available")
	}
	s.recording = true
	s.continuous = continuous
	s.state = StateRecording
	s.mu.Unlock()

	return s.recognizer.Start()
}

// StopRecording disarms the recognizer and returns to idle.
func (s *Session) StopRecording() {
	s.mu.Lock()
	recognizer := s.recognizer
	s.recording = false
	s.state = StateIdle
	s.mu.Unlock()

	if recognizer != nil {
		recognizer.Stop()
	}
}

// handleResult stores the latest transcript as the pending input.
func (s *Session) handleResult(transcript string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = transcript
}

// handleEnd realizes the best-effort "keep listening" behavior: while
// continuous dictation is active and the recording flag is still set,
// an unexpectedly ended recognition run is restarted; otherwise the
// flag is cleared. Gapless capture is not guaranteed.
func (s *Session) handleEnd() {
	s.mu.Lock()
	restart := s.recording && s.continuous
	if !restart {
		s.recording = false
		if s.state == StateRecording {
			s.state = StateIdle
		}
	}
	recognizer := s.recognizer
	s.mu.Unlock()

	if restart {
		if err := recognizer.Start(); err != nil {
			s.logger.Warn("Failed to restart recognition", zap.Error(err))
			s.mu.Lock()
			s.recording = false
			s.state = StateIdle
			s.mu.Unlock()
		}
	}
}

// Submit appends the user turn, performs the chat round trip, and
// appends the assistant reply. The UI assumes at most one request in
// flight; a second submission while one is pending is a known race and
// is not queued or rejected here.
func (s *Session) Submit(ctx context.Context, text string) (repositories.ChatMessage, error) {
	if text == "" {
		return repositories.ChatMessage{}, domain.NewValidationError("message text is required")
	}

	s.mu.Lock()
	if s.state == StateAwaitingResponse {
		s.logger.Warn("Submission while a response is pending", zap.String("sessionID", s.ID))
	}
	s.messages = append(s.messages, repositories.ChatMessage{
		Role:    repositories.UserRole,
		Content: text,
	})
	history := make([]repositories.ChatMessage, len(s.messages))
	copy(history, s.messages)
	s.input = ""
	s.state = StateAwaitingResponse
	s.mu.Unlock()

	reply, err := s.chat(ctx, history)

	s.mu.Lock()
	s.state = StateIdle
	if err == nil {
		s.messages = append(s.messages, reply)
	}
	s.mu.Unlock()

	if err != nil {
		return repositories.ChatMessage{}, err
	}
	return reply, nil
}
