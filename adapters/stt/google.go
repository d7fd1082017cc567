// Package stt provides an alternative transcription backend on Google
// Cloud Speech-to-Text, selected with STT_BACKEND=google.
package stt

import (
	"context"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/englishbuddy/server/domain"
	"github.com/englishbuddy/server/domain/repositories"
)

const (
	defaultLanguage   = "en-US"
	defaultSampleRate = 16000
)

// Ensure GoogleSpeechToText implements the Transcriber interface
var _ repositories.Transcriber = (*GoogleSpeechToText)(nil)

// GoogleSpeechToText implements Transcriber for Google Cloud.
// Credentials are resolved through the standard application default
// credentials chain.
type GoogleSpeechToText struct{}

// NewGoogleSpeechToText creates a new Google transcription backend
func NewGoogleSpeechToText() *GoogleSpeechToText {
	return &GoogleSpeechToText{}
}

// Transcribe converts audio data to text using the synchronous
// recognition API. A response with no result is a shape error, not a
// transport failure.
func (g *GoogleSpeechToText) Transcribe(ctx context.Context, audioData []byte, opts repositories.TranscriptionOptions) (string, error) {
	const op = "google transcription"

	if len(audioData) == 0 {
		return "", domain.NewValidationError("audio data cannot be empty")
	}

	client, err := speech.NewClient(ctx)
	if err != nil {
		return "", &domain.TransportError{Op: op, Err: fmt.Errorf("failed to create speech client: %w", err)}
	}
	defer client.Close()

	encoding, err := audioEncoding(opts.Encoding)
	if err != nil {
		return "", domain.NewValidationError("unsupported audio encoding: %s", opts.Encoding)
	}

	sampleRate := opts.SampleRate
	if sampleRate == 0 {
		sampleRate = defaultSampleRate
	}
	language := opts.Language
	if language == "" {
		language = defaultLanguage
	}

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        encoding,
			SampleRateHertz: int32(sampleRate),
			LanguageCode:    language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		return "", &domain.TransportError{Op: op, Err: err}
	}

	var transcription string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcription += result.Alternatives[0].Transcript
		}
	}
	if transcription == "" {
		return "", &domain.ShapeError{Op: op, Missing: "transcription result"}
	}

	return transcription, nil
}

// audioEncoding converts an encoding tag to the Speech API enum
func audioEncoding(encoding string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch encoding {
	case "", "WAV", "LINEAR16":
		return speechpb.RecognitionConfig_LINEAR16, nil
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC, nil
	case "MULAW":
		return speechpb.RecognitionConfig_MULAW, nil
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS, nil
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}
