package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/englishbuddy/server/domain"
)

func TestStripDataURLPrefix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "wav data URL",
			input: "data:audio/wav;base64,SGVsbG8=",
			want:  "SGVsbG8=",
		},
		{
			name:  "mp3 data URL",
			input: "data:audio/mp3;base64,SGVsbG8=",
			want:  "SGVsbG8=",
		},
		{
			name:  "webm data URL",
			input: "data:audio/webm;base64,SGVsbG8=",
			want:  "SGVsbG8=",
		},
		{
			name:  "already clean input passes through",
			input: "SGVsbG8=",
			want:  "SGVsbG8=",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "non-audio data URL is untouched",
			input: "data:image/png;base64,SGVsbG8=",
			want:  "data:image/png;base64,SGVsbG8=",
		},
		{
			name:  "prefix not at start is untouched",
			input: "xdata:audio/wav;base64,SGVsbG8=",
			want:  "xdata:audio/wav;base64,SGVsbG8=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripDataURLPrefix(tt.input)
			if got != tt.want {
				t.Errorf("StripDataURLPrefix(%q) = %q, want %q", tt.input, got, tt.want)
			}

			// Stripping must be idempotent
			if again := StripDataURLPrefix(got); again != got {
				t.Errorf("StripDataURLPrefix is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestDecodeBase64Audio_RoundTrip(t *testing.T) {
	original := []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x01, 0x02, 0x03}

	encoded := EncodeBase64Audio(original)
	withPrefix := "data:audio/wav;base64," + encoded

	decoded, err := DecodeBase64Audio(StripDataURLPrefix(withPrefix))
	if err != nil {
		t.Fatalf("DecodeBase64Audio failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Errorf("round trip mismatch: got %v, want %v", decoded, original)
	}
}

func TestDecodeBase64Audio_Malformed(t *testing.T) {
	_, err := DecodeBase64Audio("not-!!!-base64")
	if err == nil {
		t.Fatal("Expected error for malformed base64")
	}

	var decodeErr *domain.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("Expected DecodeError, got %T: %v", err, err)
	}
}

func TestMultipartAudio(t *testing.T) {
	var body bytes.Buffer
	audio := []byte{0x01, 0x02, 0x03}

	contentType, err := MultipartAudio(&body, "audio", "recording.wav", bytes.NewReader(audio), map[string]string{
		"model": "whisper-1",
	})
	if err != nil {
		t.Fatalf("MultipartAudio failed: %v", err)
	}

	if !strings.HasPrefix(contentType, "multipart/form-data; boundary=") {
		t.Errorf("Unexpected content type: %q", contentType)
	}

	payload := body.String()
	if !strings.Contains(payload, `name="audio"; filename="recording.wav"`) {
		t.Errorf("Missing audio file part in body:\n%s", payload)
	}
	if !strings.Contains(payload, `name="model"`) || !strings.Contains(payload, "whisper-1") {
		t.Errorf("Missing model field in body:\n%s", payload)
	}
}
