package openai

import (
	"fmt"

	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/logging"
)

func init() {
	providers.RegisterTranscriber("openai", func(cfg *config.Config, logger *logging.Logger) (providers.Transcriber, error) {
		if cfg.Providers.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai transcriber requires an API key")
		}
		return NewProvider(
			cfg.Providers.OpenAI.APIKey,
			cfg.Providers.OpenAI.BaseURL,
			cfg.Providers.OpenAI.Model,
			logger,
		), nil
	})
}
