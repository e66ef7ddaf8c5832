package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"echominds-server-go/internal/domain/text"
	"echominds-server-go/internal/platform/errors"
	"echominds-server-go/internal/platform/logging"
)

// Provider transcribes audio through the ElevenLabs speech-to-text API.
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
		model = "scribe_v1"
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

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe sends WAV bytes and returns the recognized text. The language
// hint is passed through when it is not the detection sentinel.
func (p *Provider) Transcribe(ctx context.Context, audioData []byte, lang text.Language) (string, error) {
	if len(audioData) == 0 {
		return "", errors.New(errors.KindProvider, "transcribe", "empty audio payload")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("model_id", p.model); err != nil {
		return "", errors.Wrap(errors.KindProvider, "transcribe", "failed to build request", err)
	}
	if lang != "" && lang != text.LangAuto {
		if err := writer.WriteField("language_code", string(lang)); err != nil {
			return "", errors.Wrap(errors.KindProvider, "transcribe", "failed to build request", err)
		}
	}
	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", errors.Wrap(errors.KindProvider, "transcribe", "failed to build request", err)
	}
	if _, err := part.Write(audioData); err != nil {
		return "", errors.Wrap(errors.KindProvider, "transcribe", "failed to build request", err)
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(errors.KindProvider, "transcribe", "failed to build request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/speech-to-text", &body)
	if err != nil {
		return "", errors.Wrap(errors.KindProvider, "transcribe", "failed to build request", err)
	}
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return "", errors.Wrap(errors.KindProvider, "transcribe", "transcription request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", errors.New(errors.KindProvider, "transcribe",
			fmt.Sprintf("transcription request returned %d: %s", resp.StatusCode, truncate(data)))
	}

	var result transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(errors.KindProvider, "transcribe", "failed to decode response", err)
	}

	if p.logger != nil {
		p.logger.DebugTag("STT", "transcribed %d bytes in %v", len(audioData), time.Since(start))
	}
	return result.Text, nil
}

func truncate(data []byte) string {
	const max = 200
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
