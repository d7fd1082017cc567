package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/englishbuddy/server/domain"
	"github.com/englishbuddy/server/domain/repositories"
)

func TestNewClient(t *testing.T) {
	logger := zaptest.NewLogger(t)

	// Missing API key is rejected
	_, err := NewClient(Config{}, logger)
	if err == nil {
		t.Error("Expected error when API key is not set")
	}

	client, err := NewClient(Config{APIKey: "test-api-key"}, logger)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	if client.baseURL != defaultBaseURL {
		t.Errorf("Expected default base URL %q, got %q", defaultBaseURL, client.baseURL)
	}
	if client.chatModel != defaultChatModel {
		t.Errorf("Expected default chat model %q, got %q", defaultChatModel, client.chatModel)
	}
	if client.transcriptionModel != defaultTranscriptionModel {
		t.Errorf("Expected default transcription model %q, got %q", defaultTranscriptionModel, client.transcriptionModel)
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "boom"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Complete(context.Background(), []repositories.ChatMessage{
		{Role: repositories.UserRole, Content: "hello"},
	})
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}

	var transportErr *domain.TransportError
	if !errors.As(err, &transportErr) {
		t.Errorf("Expected TransportError, got %T: %v", err, err)
	}
}

func TestClient_ShapeError_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Complete(context.Background(), []repositories.ChatMessage{
		{Role: repositories.UserRole, Content: "hello"},
	})
	if err == nil {
		t.Fatal("Expected error for response without choices")
	}

	var shapeErr *domain.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Expected ShapeError, got %T: %v", err, err)
	}
	if shapeErr.Missing != "completion choice" {
		t.Errorf("Expected missing 'completion choice', got %q", shapeErr.Missing)
	}
}

func TestClient_ShapeError_NoMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Complete(context.Background(), []repositories.ChatMessage{
		{Role: repositories.UserRole, Content: "hello"},
	})

	var shapeErr *domain.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Expected ShapeError, got %T: %v", err, err)
	}
	if shapeErr.Missing != "message object" {
		t.Errorf("Expected missing 'message object', got %q", shapeErr.Missing)
	}
}

// newTestClient builds a client pointed at a test server.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{APIKey: "test-api-key", BaseURL: baseURL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}
