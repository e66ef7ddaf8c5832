package openai

import (
	"bytes"
	"context"

	openai "github.com/sashabaranov/go-openai"

	"echominds-server-go/internal/domain/text"
	"echominds-server-go/internal/platform/errors"
	"echominds-server-go/internal/platform/logging"
)

// Provider transcribes audio with the Whisper API. It is the alternate
// transcriber for deployments without ElevenLabs speech-to-text access.
type Provider struct {
	client *openai.Client
	model  string
	logger *logging.Logger
}

func NewProvider(apiKey, baseURL, model string, logger *logging.Logger) *Provider {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}
}

func (p *Provider) Transcribe(ctx context.Context, audioData []byte, lang text.Language) (string, error) {
	if len(audioData) == 0 {
		return "", errors.New(errors.KindProvider, "transcribe", "empty audio payload")
	}

	req := openai.AudioRequest{
		Model:    p.model,
		Reader:   bytes.NewReader(audioData),
		FilePath: "audio.wav",
	}
	if lang != "" && lang != text.LangAuto {
		req.Language = string(lang)
	}

	resp, err := p.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", errors.Wrap(errors.KindProvider, "transcribe", "whisper request failed", err)
	}

	if p.logger != nil {
		p.logger.DebugTag("STT", "whisper transcribed %d bytes", len(audioData))
	}
	return resp.Text, nil
}
