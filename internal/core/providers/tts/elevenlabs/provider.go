package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/platform/errors"
	"echominds-server-go/internal/platform/logging"
)

// Provider renders speech with the ElevenLabs text-to-speech API, using
// cloned voices by ID.
type Provider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *logging.Logger
}

func NewProvider(apiKey, baseURL, model string, timeout time.Duration, logger *logging.Logger) *Provider {
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	if model == "" {
		model = providers.ModelMultilingualV2
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Synthesize returns MP3 audio for the text in the given voice.
func (p *Provider) Synthesize(ctx context.Context, content, voiceID string, opts providers.SynthesisOptions) ([]byte, error) {
	if content == "" {
		return nil, errors.New(errors.KindProvider, "synthesize", "empty text")
	}
	if voiceID == "" {
		return nil, errors.New(errors.KindProvider, "synthesize", "missing voice ID")
	}

	model := opts.Model
	if model == "" {
		model = p.model
	}

	payload, err := json.Marshal(synthesisRequest{
		Text:    content,
		ModelID: model,
		VoiceSettings: voiceSettings{
			Stability:       clamp(opts.Stability),
			SimilarityBoost: clamp(opts.Similarity),
		},
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "synthesize", "failed to build request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/text-to-speech/"+voiceID, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "synthesize", "failed to build request", err)
	}
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "synthesize", "synthesis request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, errors.New(errors.KindProvider, "synthesize",
			fmt.Sprintf("synthesis request returned %d: %.200s", resp.StatusCode, string(data)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "synthesize", "failed to read audio", err)
	}
	if len(audio) == 0 {
		return nil, errors.New(errors.KindProvider, "synthesize", "provider returned no audio")
	}

	if p.logger != nil {
		p.logger.DebugTag("TTS", "synthesized %d chars to %d bytes in %v",
			len(content), len(audio), time.Since(start))
	}
	return audio, nil
}
