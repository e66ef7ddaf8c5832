package providers

import (
	"context"

	"echominds-server-go/internal/domain/text"
)

// Transcriber turns recorded audio into text.
type Transcriber interface {
	// Transcribe accepts WAV bytes and returns the recognized text.
	Transcribe(ctx context.Context, audioData []byte, lang text.Language) (string, error)
}

// Voice describes a cloned voice held by a provider.
type Voice struct {
	ID          string            `json:"voice_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// Cloner creates and manages voice clones from sample audio.
type Cloner interface {
	// Clone builds a new voice from one or more WAV samples and returns
	// its provider-assigned ID.
	Clone(ctx context.Context, name, description string, samples [][]byte) (string, error)
	ListVoices(ctx context.Context) ([]Voice, error)
	GetVoice(ctx context.Context, voiceID string) (*Voice, error)
	DeleteVoice(ctx context.Context, voiceID string) error
}

// Translator converts text between languages.
type Translator interface {
	// Translate returns the translated text. Source may be text.LangAuto.
	Translate(ctx context.Context, content string, source, target text.Language) (string, error)
	// Detect identifies the language of the content.
	Detect(ctx context.Context, content string) (text.Language, error)
}

// SynthesisOptions tunes voice rendering. Stability and Similarity are
// clamped to [0, 1] by providers.
type SynthesisOptions struct {
	Stability  float64
	Similarity float64
	Model      string
}

// Synthesizer renders text as speech in a given voice.
type Synthesizer interface {
	// Synthesize returns encoded audio (MP3 unless the provider says
	// otherwise).
	Synthesize(ctx context.Context, content, voiceID string, opts SynthesisOptions) ([]byte, error)
}
