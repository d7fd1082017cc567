package repositories

import "context"

// ChatCompleter abstracts any text chat completion provider
type ChatCompleter interface {
	// Complete sends the full message sequence and returns the
	// assistant's reply. Message order is preserved as given.
	Complete(ctx context.Context, messages []ChatMessage) (ChatMessage, error)
}

// AudioCompleter abstracts multimodal completion providers that can
// reply with synthesized audio alongside text
type AudioCompleter interface {
	CompleteWithAudio(ctx context.Context, req AudioCompletionRequest) (AudioCompletion, error)
}

// ChatMessage represents a single message in a conversation
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role defines the type of message sender
type Role string

const (
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
	SystemRole    Role = "system"
)

// AudioCompletionRequest carries one multimodal completion intent.
// Exactly one of Text or AudioBase64 is expected as the user prompt;
// AudioBase64 must be bare base64 with any data URL prefix already
// stripped.
type AudioCompletionRequest struct {
	SystemPrompt string
	Text         string
	AudioBase64  string
	AudioFormat  string // input audio encoding tag, e.g. "wav"
	Voice        string // output voice, e.g. "alloy"
}

// AudioCompletion is the provider's multimodal reply. AudioBase64 is
// bare base64 and may be empty when the provider returned text only.
type AudioCompletion struct {
	Text        string
	AudioBase64 string
}
