package edge

import (
	"context"
	"time"

	"github.com/wujunwei928/edge-tts-go/edge_tts"

	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/platform/errors"
	"echominds-server-go/internal/platform/logging"
)

// Provider is the keyless fallback synthesizer. It speaks in stock
// neural voices, so voiceID selects an Edge voice name rather than a
// clone; stability and similarity options are ignored.
type Provider struct {
	voice  string
	logger *logging.Logger
}

func NewProvider(voice string, logger *logging.Logger) *Provider {
	if voice == "" {
		voice = "en-US-AriaNeural"
	}
	return &Provider{voice: voice, logger: logger}
}

func (p *Provider) Synthesize(ctx context.Context, content, voiceID string, opts providers.SynthesisOptions) ([]byte, error) {
	if content == "" {
		return nil, errors.New(errors.KindProvider, "synthesize", "empty text")
	}

	voice := voiceID
	if voice == "" {
		voice = p.voice
	}

	communicate, err := edge_tts.NewCommunicate(content, edge_tts.SetVoice(voice))
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "synthesize",
			"failed to create edge tts communicator", err)
	}

	start := time.Now()
	audio, err := communicate.Stream()
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "synthesize", "edge tts synthesis failed", err)
	}
	if len(audio) == 0 {
		return nil, errors.New(errors.KindProvider, "synthesize", "edge tts returned no audio")
	}

	if p.logger != nil {
		p.logger.DebugTag("TTS", "edge synthesized %d chars to %d bytes in %v",
			len(content), len(audio), time.Since(start))
	}
	return audio, nil
}
