package googlefree

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"echominds-server-go/internal/domain/text"
	"echominds-server-go/internal/platform/errors"
	"echominds-server-go/internal/platform/logging"
)

// Provider translates through the unauthenticated Google Translate
// endpoint. Good enough for personal use; not an SLA-backed service.
type Provider struct {
	baseURL string
	client  *http.Client
	logger  *logging.Logger
}

func NewProvider(baseURL string, timeout time.Duration, logger *logging.Logger) *Provider {
	if baseURL == "" {
		baseURL = "https://translate.googleapis.com"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// request performs one translate_a/single call and returns the raw
// response array.
func (p *Provider) request(ctx context.Context, content string, source, target text.Language) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", string(source))
	params.Set("tl", string(target))
	params.Set("dt", "t")
	params.Set("q", content)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/translate_a/single?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "translate", "failed to build request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.KindProvider, "translate", "translate request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, errors.New(errors.KindProvider, "translate",
			fmt.Sprintf("translate request returned %d: %.200s", resp.StatusCode, string(data)))
	}

	var outer []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&outer); err != nil {
		return nil, errors.Wrap(errors.KindProvider, "translate", "failed to decode response", err)
	}
	return outer, nil
}

// Translate returns the translated text. The endpoint answers with a
// nested array whose first element holds segment pairs.
func (p *Provider) Translate(ctx context.Context, content string, source, target text.Language) (string, error) {
	outer, err := p.request(ctx, content, source, target)
	if err != nil {
		return "", err
	}
	if len(outer) == 0 {
		return "", errors.New(errors.KindProvider, "translate", "empty response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(outer[0], &segments); err != nil {
		return "", errors.Wrap(errors.KindProvider, "translate", "unexpected response shape", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(seg[0], &piece); err != nil {
			continue
		}
		sb.WriteString(piece)
	}
	return sb.String(), nil
}

// Detect identifies the content language via an auto-source request; the
// detected code comes back as the third response element.
func (p *Provider) Detect(ctx context.Context, content string) (text.Language, error) {
	outer, err := p.request(ctx, content, text.LangAuto, text.LangEnglish)
	if err != nil {
		return "", err
	}
	if len(outer) < 3 {
		return "", errors.New(errors.KindProvider, "detect", "response missing language field")
	}

	var code string
	if err := json.Unmarshal(outer[2], &code); err != nil {
		return "", errors.Wrap(errors.KindProvider, "detect", "unexpected response shape", err)
	}

	lang, err := text.ParseLanguage(code)
	if err != nil {
		return "", errors.Wrap(errors.KindProvider, "detect", "detected unsupported language", err)
	}
	return lang, nil
}
