package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/englishbuddy/server/domain"
	"github.com/englishbuddy/server/domain/repositories"
)

func TestClient_Transcribe(t *testing.T) {
	audio := []byte{0x52, 0x49, 0x46, 0x46}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Request is not multipart: %v", err)
		}
		if got := r.FormValue("model"); got != defaultTranscriptionModel {
			t.Errorf("Expected model %q, got %q", defaultTranscriptionModel, got)
		}
		if got := r.FormValue("prompt"); got != "বাংলা, English" {
			t.Errorf("Expected bilingual prompt, got %q", got)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("Missing file field: %v", err)
		}
		defer file.Close()
		if header.Filename != "audio.wav" {
			t.Errorf("Expected filename audio.wav, got %q", header.Filename)
		}
		uploaded, _ := io.ReadAll(file)
		if len(uploaded) != len(audio) {
			t.Errorf("Uploaded %d bytes, expected %d", len(uploaded), len(audio))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "hello there"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	text, err := client.Transcribe(context.Background(), audio, repositories.TranscriptionOptions{
		Filename: "audio.wav",
		Prompt:   "বাংলা, English",
	})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "hello there" {
		t.Errorf("Expected transcript 'hello there', got %q", text)
	}
}

func TestClient_Transcribe_MissingTextField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"language": "en"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Transcribe(context.Background(), []byte{0x01}, repositories.TranscriptionOptions{})
	if err == nil {
		t.Fatal("Expected error for response without text field")
	}

	var shapeErr *domain.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Errorf("Expected ShapeError, got %T: %v", err, err)
	}
}

func TestClient_Transcribe_EmptyAudio(t *testing.T) {
	client := newTestClient(t, "http://localhost:0")

	_, err := client.Transcribe(context.Background(), nil, repositories.TranscriptionOptions{})
	if err == nil {
		t.Fatal("Expected error for empty audio")
	}

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError, got %T: %v", err, err)
	}
}
