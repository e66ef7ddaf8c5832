package translate

import (
	"context"
	"strings"

	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/domain/text"
	"echominds-server-go/internal/platform/errors"
	"echominds-server-go/internal/platform/logging"
)

// Options configures a translation Service.
type Options struct {
	MaxChunkSize int
	Cache        *Cache
	Logger       *logging.Logger
}

// Service wraps a translator provider with language resolution, chunking
// for long texts and optional caching.
type Service struct {
	provider providers.Translator
	opts     Options
}

func NewService(provider providers.Translator, opts Options) *Service {
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = 1000
	}
	return &Service{provider: provider, opts: opts}
}

// Translate converts content into the target language. When source and
// target resolve to the same language the content is returned unchanged
// without calling the provider. Texts longer than the chunk limit are
// split sentence-wise and translated piece by piece.
func (s *Service) Translate(ctx context.Context, content string, source, target text.Language) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", errors.New(errors.KindPipeline, "translate", "empty input text")
	}

	if source == text.LangAuto {
		detected, err := s.provider.Detect(ctx, content)
		if err != nil || !detected.Supported() {
			if s.opts.Logger != nil {
				s.opts.Logger.WarnTag("Translate", "language detection failed, assuming English")
			}
			detected = text.LangEnglish
		}
		source = detected
	}

	if source == target {
		return content, nil
	}

	if len(content) <= s.opts.MaxChunkSize {
		return s.translateOne(ctx, content, source, target)
	}
	return s.translateChunks(ctx, content, source, target)
}

func (s *Service) translateOne(ctx context.Context, content string, source, target text.Language) (string, error) {
	if s.opts.Cache != nil {
		if cached, ok := s.opts.Cache.Get(ctx, content, source, target); ok {
			return cached, nil
		}
	}

	translated, err := s.provider.Translate(ctx, content, source, target)
	if err != nil {
		return "", errors.Wrap(errors.KindProvider, "translate", "translation request failed", err)
	}
	if strings.TrimSpace(translated) == "" {
		return "", errors.New(errors.KindProvider, "translate", "provider returned empty translation")
	}

	if s.opts.Cache != nil {
		s.opts.Cache.Set(ctx, content, source, target, translated)
	}
	return translated, nil
}

// translateChunks translates each chunk independently. Chunks whose
// translation fails are skipped so one bad segment does not sink the
// whole text.
func (s *Service) translateChunks(ctx context.Context, content string, source, target text.Language) (string, error) {
	chunks := text.Split(content, s.opts.MaxChunkSize)
	if len(chunks) == 0 {
		return "", errors.New(errors.KindPipeline, "translate", "no translatable sentences found")
	}

	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		translated, err := s.translateOne(ctx, chunk.Content, source, target)
		if err != nil {
			if s.opts.Logger != nil {
				s.opts.Logger.WarnTag("Translate", "chunk %d failed, skipping: %v", chunk.Index, err)
			}
			continue
		}
		parts = append(parts, translated)
	}

	if len(parts) == 0 {
		return "", errors.New(errors.KindProvider, "translate", "all chunks failed to translate")
	}
	return text.Join(parts), nil
}
