package api

import "github.com/englishbuddy/server/domain/repositories"

// ChatRequest carries the prior message sequence plus the new user turn
type ChatRequest struct {
	Messages []repositories.ChatMessage `json:"messages"`
}

// ChatResponse is the assistant reply appended to the client history
type ChatResponse struct {
	Role    repositories.Role `json:"role"`
	Content string            `json:"content"`
}

// SpeechRequest represents a standalone synthesis request. Omitted
// fields default to voice=alloy, model=tts-1, speed=1.0.
type SpeechRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice"`
	Model string  `json:"model"`
	Speed float64 `json:"speed"`
}

// SpeechResponse carries the synthesized audio as bare base64
type SpeechResponse struct {
	Audio string `json:"audio"`
}

// TextToSpeechRequest carries a free-form prompt for a multimodal reply
type TextToSpeechRequest struct {
	Prompt string `json:"prompt"`
}

// TextToSpeechResponse carries both modalities of the reply; either may
// be null when the provider omitted it
type TextToSpeechResponse struct {
	AudioData *string `json:"audioData"`
	Text      *string `json:"text"`
}

// SpeechToSpeechResponse pairs the transcript with the spoken reply
type SpeechToSpeechResponse struct {
	AudioData     *string `json:"audioData"`
	Transcription string  `json:"transcription"`
}

// AudioConversationRequest carries a recording as a data URL or bare
// base64 string
type AudioConversationRequest struct {
	AudioData string `json:"audioData"`
}

// AudioConversationResponse mirrors TextToSpeechResponse with the text
// field first, matching the raw conversation endpoint's contract
type AudioConversationResponse struct {
	Text      *string `json:"text"`
	AudioData *string `json:"audioData"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
