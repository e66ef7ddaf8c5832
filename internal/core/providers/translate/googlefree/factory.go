package googlefree

import (
	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/logging"
)

func init() {
	providers.RegisterTranslator("googlefree", func(cfg *config.Config, logger *logging.Logger) (providers.Translator, error) {
		return NewProvider(
			cfg.Providers.Google.BaseURL,
			cfg.Server.RequestTimeout,
			logger,
		), nil
	})
}
