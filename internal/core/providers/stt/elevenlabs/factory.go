package elevenlabs

import (
	"fmt"

	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/logging"
)

func init() {
	providers.RegisterTranscriber("elevenlabs", func(cfg *config.Config, logger *logging.Logger) (providers.Transcriber, error) {
		if cfg.Providers.ElevenLabs.APIKey == "" {
			return nil, fmt.Errorf("elevenlabs transcriber requires an API key")
		}
		return NewProvider(
			cfg.Providers.ElevenLabs.APIKey,
			cfg.Providers.ElevenLabs.BaseURL,
			cfg.Providers.ElevenLabs.STTModel,
			cfg.Server.RequestTimeout,
			logger,
		), nil
	})
}
