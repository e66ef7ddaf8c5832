package edge

import (
	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/logging"
)

func init() {
	providers.RegisterSynthesizer("edge", func(cfg *config.Config, logger *logging.Logger) (providers.Synthesizer, error) {
		return NewProvider(cfg.Providers.EdgeTTS.Voice, logger), nil
	})
}
