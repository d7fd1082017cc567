package ws

// MessageType defines the type of WebSocket message
type MessageType string

// Supported message types
const (
	MessageTypeAudioChunk MessageType = "audio_chunk"
	MessageTypeAIResponse MessageType = "ai_response"
	MessageTypePing       MessageType = "ping"
	MessageTypePong       MessageType = "pong"
	MessageTypeError      MessageType = "error"
)

// BaseMessage defines the common structure for all WebSocket messages
type BaseMessage struct {
	Type      MessageType `json:"type"`
	MessageID string      `json:"message_id,omitempty"`
}

// AudioChunkMessage carries one recording from the client. AudioData is
// base64 and may carry a data URL prefix, which is stripped before the
// pipeline runs.
type AudioChunkMessage struct {
	BaseMessage
	AudioData string `json:"audio_data"`
	Encoding  string `json:"encoding,omitempty"`
}

// AIResponseMessage carries the tutor's reply for one recording
type AIResponseMessage struct {
	BaseMessage
	Transcription string `json:"transcription,omitempty"`
	Text          string `json:"response_text,omitempty"`
	AudioData     string `json:"audio_data,omitempty"` // base64 encoded
}

// ErrorMessage reports a failed exchange without closing the connection
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"error_code"`
	Message string `json:"message"`
}
