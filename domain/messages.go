package domain

// AudioExchange is the result of a provider round trip that may carry
// both a textual reply and synthesized audio. AudioBase64 is bare
// base64 with no data URL prefix; either field may be empty when the
// provider omits that modality.
type AudioExchange struct {
	Text        string
	AudioBase64 string
}
