package client

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/englishbuddy/server/domain"
	"github.com/englishbuddy/server/domain/repositories"
)

// fakeRecognizer records Start/Stop calls and lets tests drive the
// result and end callbacks by hand.
type fakeRecognizer struct {
	starts   int
	stops    int
	startErr error
	onResult func(string)
	onEnd    func()
}

func (f *fakeRecognizer) Start() error {
	f.starts++
	return f.startErr
}

func (f *fakeRecognizer) Stop() {
	f.stops++
}

func (f *fakeRecognizer) SetHandlers(onResult func(string), onEnd func()) {
	f.onResult = onResult
	f.onEnd = onEnd
}

func echoChat(reply string) ChatFunc {
	return func(ctx context.Context, messages []repositories.ChatMessage) (repositories.ChatMessage, error) {
		return repositories.ChatMessage{Role: repositories.AssistantRole, Content: reply}, nil
	}
}

func TestNewSession_Defaults(t *testing.T) {
	session := NewSession(&fakeRecognizer{}, echoChat("hi"), zaptest.NewLogger(t))

	if session.State() != StateIdle {
		t.Errorf("Expected idle state, got %v", session.State())
	}
	settings := session.Settings()
	if settings.Voice != "nova" || settings.Model != repositories.DefaultTTSModel || settings.Speed != repositories.DefaultSpeed {
		t.Errorf("Unexpected default settings: %+v", settings)
	}
	if session.ID == "" {
		t.Error("Expected a generated session ID")
	}
}

func TestSession_RecordingLifecycle(t *testing.T) {
	recognizer := &fakeRecognizer{}
	session := NewSession(recognizer, echoChat("hi"), zaptest.NewLogger(t))

	if err := session.StartRecording(false); err != nil {
		t.Fatalf("StartRecording failed: %v", err)
	}
	if session.State() != StateRecording {
		t.Errorf("Expected recording state, got %v", session.State())
	}
	if recognizer.starts != 1 {
		t.Errorf("Expected 1 start, got %d", recognizer.starts)
	}

	recognizer.onResult("hello there")
	if session.Input() != "hello there" {
		t.Errorf("Transcript not stored: %q", session.Input())
	}

	session.StopRecording()
	if session.State() != StateIdle {
		t.Errorf("Expected idle after stop, got %v", session.State())
	}
	if recognizer.stops != 1 {
		t.Errorf("Expected 1 stop, got %d", recognizer.stops)
	}
}

func TestSession_StartRecording_NoRecognizer(t *testing.T) {
	session := NewSession(nil, echoChat("hi"), zaptest.NewLogger(t))

	err := session.StartRecording(false)
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestSession_ContinuousRestartsOnEnd(t *testing.T) {
	recognizer := &fakeRecognizer{}
	session := NewSession(recognizer, echoChat("hi"), zaptest.NewLogger(t))

	if err := session.StartRecording(true); err != nil {
		t.Fatalf("StartRecording failed: %v", err)
	}

	// The engine ending a run mid-dictation restarts it
	recognizer.onEnd()
	if recognizer.starts != 2 {
		t.Errorf("Expected restart, got %d starts", recognizer.starts)
	}
	if session.State() != StateRecording {
		t.Errorf("Expected recording state after restart, got %v", session.State())
	}

	// Once stopped, a trailing end event must not restart
	session.StopRecording()
	recognizer.onEnd()
	if recognizer.starts != 2 {
		t.Errorf("Restarted after explicit stop: %d starts", recognizer.starts)
	}
	if session.State() != StateIdle {
		t.Errorf("Expected idle after stop, got %v", session.State())
	}
}

func TestSession_SingleShotDoesNotRestart(t *testing.T) {
	recognizer := &fakeRecognizer{}
	session := NewSession(recognizer, echoChat("hi"), zaptest.NewLogger(t))

	if err := session.StartRecording(false); err != nil {
		t.Fatalf("StartRecording failed: %v", err)
	}

	recognizer.onEnd()
	if recognizer.starts != 1 {
		t.Errorf("Single-shot run restarted: %d starts", recognizer.starts)
	}
	if session.State() != StateIdle {
		t.Errorf("Expected idle after run ended, got %v", session.State())
	}
}

func TestSession_ContinuousRestartFailureGoesIdle(t *testing.T) {
	recognizer := &fakeRecognizer{}
	session := NewSession(recognizer, echoChat("hi"), zaptest.NewLogger(t))

	if err := session.StartRecording(true); err != nil {
		t.Fatalf("StartRecording failed: %v", err)
	}

	recognizer.startErr = errors.New("microphone revoked")
	recognizer.onEnd()

	if session.State() != StateIdle {
		t.Errorf("Expected idle after failed restart, got %v", session.State())
	}
}

func TestSession_Submit(t *testing.T) {
	var gotHistory []repositories.ChatMessage
	chat := func(ctx context.Context, messages []repositories.ChatMessage) (repositories.ChatMessage, error) {
		gotHistory = messages
		return repositories.ChatMessage{Role: repositories.AssistantRole, Content: "Good, thanks!"}, nil
	}
	session := NewSession(&fakeRecognizer{}, chat, zaptest.NewLogger(t))

	reply, err := session.Submit(context.Background(), "How are you?")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if reply.Content != "Good, thanks!" {
		t.Errorf("Unexpected reply: %+v", reply)
	}

	if len(gotHistory) != 1 || gotHistory[0].Content != "How are you?" {
		t.Errorf("Unexpected outbound history: %+v", gotHistory)
	}

	messages := session.Messages()
	if len(messages) != 2 {
		t.Fatalf("Expected user turn plus reply, got %d messages", len(messages))
	}
	if messages[0].Role != repositories.UserRole || messages[1].Role != repositories.AssistantRole {
		t.Errorf("Unexpected roles: %v, %v", messages[0].Role, messages[1].Role)
	}
	if session.State() != StateIdle {
		t.Errorf("Expected idle after round trip, got %v", session.State())
	}
}

func TestSession_SubmitClearsPendingInput(t *testing.T) {
	recognizer := &fakeRecognizer{}
	session := NewSession(recognizer, echoChat("ok"), zaptest.NewLogger(t))

	recognizer.onResult("dictated text")
	if _, err := session.Submit(context.Background(), "dictated text"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if session.Input() != "" {
		t.Errorf("Pending input not cleared: %q", session.Input())
	}
}

func TestSession_SubmitFailureKeepsUserTurn(t *testing.T) {
	chat := func(ctx context.Context, messages []repositories.ChatMessage) (repositories.ChatMessage, error) {
		return repositories.ChatMessage{}, errors.New("backend down")
	}
	session := NewSession(&fakeRecognizer{}, chat, zaptest.NewLogger(t))

	if _, err := session.Submit(context.Background(), "hello"); err == nil {
		t.Fatal("Expected error from failing backend")
	}

	// The user turn stays in history; no assistant turn is appended
	messages := session.Messages()
	if len(messages) != 1 || messages[0].Role != repositories.UserRole {
		t.Errorf("Unexpected history after failure: %+v", messages)
	}
	if session.State() != StateIdle {
		t.Errorf("Expected idle after failure, got %v", session.State())
	}
}

func TestSession_SubmitEmptyText(t *testing.T) {
	session := NewSession(&fakeRecognizer{}, echoChat("hi"), zaptest.NewLogger(t))

	_, err := session.Submit(context.Background(), "")
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if len(session.Messages()) != 0 {
		t.Error("Empty submission must not enter history")
	}
}
