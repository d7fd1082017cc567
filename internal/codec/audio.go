// Package codec holds the pure payload transformations shared by every
// conversation mode: data URL prefix stripping, base64 audio decoding,
// and multipart wrapping for binary uploads.
package codec

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"

	"github.com/englishbuddy/server/domain"
)

// Matches the inline data URL header the browser produces when a
// recording is read through a FileReader, e.g. "data:audio/wav;base64,".
var dataURLPrefix = regexp.MustCompile(`^data:audio/[\w.+-]+;base64,`)

// StripDataURLPrefix removes a leading data:audio/...;base64, header if
// present and returns the input unchanged otherwise. Idempotent: input
// that is already bare base64 passes through untouched.
func StripDataURLPrefix(input string) string {
	return dataURLPrefix.ReplaceAllString(input, "")
}

// DecodeBase64Audio decodes bare base64 audio into raw bytes. Any data
// URL prefix must be stripped first. Malformed input yields a
// DecodeError, never a panic.
func DecodeBase64Audio(input string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(input)
	if err != nil {
		return nil, &domain.DecodeError{Err: err}
	}
	return data, nil
}

// EncodeBase64Audio encodes raw audio bytes as bare base64, the
// transport representation used toward the provider and the client.
func EncodeBase64Audio(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// MultipartAudio writes the audio blob as a named form file plus any
// accompanying string fields into w, returning the multipart content
// type to send with the request. Used only by upload paths.
func MultipartAudio(w io.Writer, fieldName, filename string, audio io.Reader, fields map[string]string) (string, error) {
	mw := multipart.NewWriter(w)

	part, err := mw.CreateFormFile(fieldName, filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to write audio part: %w", err)
	}

	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return mw.FormDataContentType(), nil
}
