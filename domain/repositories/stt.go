package repositories

import "context"

// Transcriber abstracts speech recognition services
type Transcriber interface {
	// Transcribe converts audio data to text
	Transcribe(ctx context.Context, audioData []byte, opts TranscriptionOptions) (string, error)
}

// TranscriptionOptions represents configuration for one transcription call
type TranscriptionOptions struct {
	// Filename hints the container format to the provider, e.g. "audio.wav"
	Filename string `json:"filename"`
	// Prompt biases recognition, e.g. a bilingual vocabulary hint
	Prompt string `json:"prompt"`
	// Language is a BCP-47 code for backends that require one
	Language string `json:"language"`
	// SampleRate and Encoding are used by raw PCM backends
	SampleRate int    `json:"sample_rate"`
	Encoding   string `json:"encoding"`
}
