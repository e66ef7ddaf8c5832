package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"echominds-server-go/internal/platform/errors"
)

// Loader reads configuration from an optional YAML file and the environment.
type Loader struct {
	useDotEnv bool
	path      string
}

func NewLoader() *Loader {
	return &Loader{
		useDotEnv: true,
		path:      ".config.yaml",
	}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithPath overrides the config file location (useful for tests).
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// Result captures the loaded configuration and its origin path.
type Result struct {
	Config *Config
	Path   string
}

// Load builds the configuration in three layers: defaults, the YAML file
// when present, then environment variable overrides. The result is validated
// before it is returned.
func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file found, using system environment")
		}
	}

	cfg := DefaultConfig()
	path := ""

	if data, err := os.ReadFile(l.path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.KindConfig, "load",
				fmt.Sprintf("failed to parse %s", l.path), err)
		}
		path = l.path
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Result{
		Config: cfg,
		Path:   path,
	}, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ELEVENLABS_API_KEY"); v != "" {
		cfg.Providers.ElevenLabs.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Providers.OpenAI.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Translate.Cache.Addr = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (cfg *Config) validate() error {
	if cfg.Providers.ElevenLabs.APIKey == "" {
		return errors.New(errors.KindConfig, "validate",
			"ELEVENLABS_API_KEY is required")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New(errors.KindConfig, "validate",
			fmt.Sprintf("invalid server port %d", cfg.Server.Port))
	}
	if cfg.Audio.SampleRate <= 0 {
		return errors.New(errors.KindConfig, "validate",
			fmt.Sprintf("invalid sample rate %d", cfg.Audio.SampleRate))
	}
	if cfg.Audio.Channels < 1 || cfg.Audio.Channels > 2 {
		return errors.New(errors.KindConfig, "validate",
			fmt.Sprintf("invalid channel count %d", cfg.Audio.Channels))
	}
	if cfg.Capture.MinDuration <= 0 || cfg.Capture.MaxDuration < cfg.Capture.MinDuration {
		return errors.New(errors.KindConfig, "validate",
			"capture duration bounds are inconsistent")
	}
	if cfg.Capture.PollInterval <= 0 {
		return errors.New(errors.KindConfig, "validate",
			"capture poll interval must be positive")
	}
	if cfg.Synthesis.Stability < 0 || cfg.Synthesis.Stability > 1 {
		return errors.New(errors.KindConfig, "validate",
			fmt.Sprintf("stability %.2f out of range [0, 1]", cfg.Synthesis.Stability))
	}
	if cfg.Synthesis.Similarity < 0 || cfg.Synthesis.Similarity > 1 {
		return errors.New(errors.KindConfig, "validate",
			fmt.Sprintf("similarity %.2f out of range [0, 1]", cfg.Synthesis.Similarity))
	}
	if cfg.Translate.MaxChunkSize <= 0 {
		return errors.New(errors.KindConfig, "validate",
			"translate max chunk size must be positive")
	}
	return nil
}
