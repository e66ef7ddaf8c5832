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

	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/platform/errors"
	"echominds-server-go/internal/platform/logging"
)

// Provider clones voices through the ElevenLabs instant cloning API.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *logging.Logger
}

func NewProvider(apiKey, baseURL string, timeout time.Duration, logger *logging.Logger) *Provider {
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type addVoiceResponse struct {
	VoiceID string `json:"voice_id"`
}

type voiceResponse struct {
	VoiceID     string            `json:"voice_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Labels      map[string]string `json:"labels"`
}

type listVoicesResponse struct {
	Voices []voiceResponse `json:"voices"`
}

// Clone uploads WAV samples and returns the new voice ID.
func (p *Provider) Clone(ctx context.Context, name, description string, samples [][]byte) (string, error) {
	if len(samples) == 0 {
		return "", errors.New(errors.KindProvider, "clone", "no audio samples provided")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("name", name); err != nil {
		return "", errors.Wrap(errors.KindProvider, "clone", "failed to build request", err)
	}
	if description != "" {
		if err := writer.WriteField("description", description); err != nil {
			return "", errors.Wrap(errors.KindProvider, "clone", "failed to build request", err)
		}
	}
	for i, sample := range samples {
		part, err := writer.CreateFormFile("files", fmt.Sprintf("sample_%d.wav", i))
		if err != nil {
			return "", errors.Wrap(errors.KindProvider, "clone", "failed to build request", err)
		}
		if _, err := part.Write(sample); err != nil {
			return "", errors.Wrap(errors.KindProvider, "clone", "failed to build request", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(errors.KindProvider, "clone", "failed to build request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/voices/add", &body)
	if err != nil {
		return "", errors.Wrap(errors.KindProvider, "clone", "failed to build request", err)
	}
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errors.Wrap(errors.KindProvider, "clone", "clone request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", errors.New(errors.KindProvider, "clone",
			fmt.Sprintf("clone request returned %d: %s", resp.StatusCode, truncate(data)))
	}

	var result addVoiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(errors.KindProvider, "clone", "failed to decode response", err)
	}
	if result.VoiceID == "" {
		return "", errors.New(errors.KindProvider, "clone", "response missing voice_id")
	}

	if p.logger != nil {
		p.logger.InfoTag("Clone", "voice %q cloned as %s", name, result.VoiceID)
	}
	return result.VoiceID, nil
}

func (p *Provider) ListVoices(ctx context.Context) ([]providers.Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/voices", nil)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "list_voices", "failed to build request", err)
	}
	req.Header.Set("xi-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "list_voices", "list request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, errors.New(errors.KindProvider, "list_voices",
			fmt.Sprintf("list request returned %d: %s", resp.StatusCode, truncate(data)))
	}

	var result listVoicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(errors.KindProvider, "list_voices", "failed to decode response", err)
	}

	voices := make([]providers.Voice, len(result.Voices))
	for i, v := range result.Voices {
		voices[i] = providers.Voice{
			ID:          v.VoiceID,
			Name:        v.Name,
			Description: v.Description,
			Labels:      v.Labels,
		}
	}
	return voices, nil
}

func (p *Provider) GetVoice(ctx context.Context, voiceID string) (*providers.Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/v1/voices/"+voiceID, nil)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "get_voice", "failed to build request", err)
	}
	req.Header.Set("xi-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "get_voice", "get request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, errors.New(errors.KindProvider, "get_voice",
			fmt.Sprintf("get request returned %d: %s", resp.StatusCode, truncate(data)))
	}

	var v voiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, errors.Wrap(errors.KindProvider, "get_voice", "failed to decode response", err)
	}
	return &providers.Voice{
		ID:          v.VoiceID,
		Name:        v.Name,
		Description: v.Description,
		Labels:      v.Labels,
	}, nil
}

func (p *Provider) DeleteVoice(ctx context.Context, voiceID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		p.baseURL+"/v1/voices/"+voiceID, nil)
	if err != nil {
		return errors.Wrap(errors.KindProvider, "delete_voice", "failed to build request", err)
	}
	req.Header.Set("xi-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.KindProvider, "delete_voice", "delete request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return errors.New(errors.KindProvider, "delete_voice",
			fmt.Sprintf("delete request returned %d: %s", resp.StatusCode, truncate(data)))
	}

	if p.logger != nil {
		p.logger.InfoTag("Clone", "voice %s deleted", voiceID)
	}
	return nil
}

func truncate(data []byte) string {
	const max = 200
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
