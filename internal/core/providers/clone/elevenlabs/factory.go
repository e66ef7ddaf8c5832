package elevenlabs

import (
	"fmt"

	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/logging"
)

func init() {
	providers.RegisterCloner("elevenlabs", func(cfg *config.Config, logger *logging.Logger) (providers.Cloner, error) {
		if cfg.Providers.ElevenLabs.APIKey == "" {
			return nil, fmt.Errorf("elevenlabs cloner requires an API key")
		}
		return NewProvider(
			cfg.Providers.ElevenLabs.APIKey,
			cfg.Providers.ElevenLabs.BaseURL,
			cfg.Server.RequestTimeout,
			logger,
		), nil
	})
}
