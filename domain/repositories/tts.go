package repositories

import (
	"context"
	"slices"

	"github.com/englishbuddy/server/domain"
)

// SpeechSynthesizer abstracts standalone text to speech services
type SpeechSynthesizer interface {
	// Synthesize converts text to audio bytes using the given settings.
	// Settings must already have defaults applied and be validated.
	Synthesize(ctx context.Context, text string, settings VoiceSettings) ([]byte, error)
}

// Synthesis defaults and bounds
const (
	DefaultVoice    = "alloy"
	DefaultTTSModel = "tts-1"
	DefaultSpeed    = 1.0

	MinSpeed = 0.25
	MaxSpeed = 4.0
)

// Voices supported by the synthesis backend
var KnownVoices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}

// VoiceSettings is the per-request synthesis configuration, passed by
// value into each call
type VoiceSettings struct {
	Voice string  `json:"voice"`
	Model string  `json:"model"`
	Speed float64 `json:"speed"`
}

// ApplyDefaults fills zero-valued fields with the standard defaults.
func (v VoiceSettings) ApplyDefaults() VoiceSettings {
	if v.Voice == "" {
		v.Voice = DefaultVoice
	}
	if v.Model == "" {
		v.Model = DefaultTTSModel
	}
	if v.Speed == 0 {
		v.Speed = DefaultSpeed
	}
	return v
}

// Validate checks the settings against the supported voices and
// ranges. Defaults must already be applied.
func (v VoiceSettings) Validate() error {
	if !slices.Contains(KnownVoices, v.Voice) {
		return domain.NewValidationError("unsupported voice: %s", v.Voice)
	}
	if v.Speed < MinSpeed || v.Speed > MaxSpeed {
		return domain.NewValidationError("speed must be between %v and %v, got %v", MinSpeed, MaxSpeed, v.Speed)
	}
	return nil
}
