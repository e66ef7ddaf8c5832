package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"echominds-server-go/internal/platform/errors"
)

func TestLoader_Defaults(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "test-key")

	result, err := NewLoader().
		WithDotEnv(false).
		WithPath(filepath.Join(t.TempDir(), "missing.yaml")).
		Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	cfg := result.Config
	if cfg.Audio.SampleRate != 44100 {
		t.Errorf("default sample rate = %d, expected 44100", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Channels != 1 {
		t.Errorf("default channels = %d, expected 1", cfg.Audio.Channels)
	}
	if cfg.Capture.MinDuration != 3*time.Second {
		t.Errorf("default min duration = %v, expected 3s", cfg.Capture.MinDuration)
	}
	if cfg.Capture.MaxDuration != 600*time.Second {
		t.Errorf("default max duration = %v, expected 600s", cfg.Capture.MaxDuration)
	}
	if cfg.Providers.ElevenLabs.APIKey != "test-key" {
		t.Errorf("api key not picked up from environment")
	}
	if result.Path != "" {
		t.Errorf("expected empty path for missing config file, got %q", result.Path)
	}
}

func TestLoader_FileOverridesDefaults(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: 9000
audio:
  sample_rate: 22050
translate:
  default_target: tr
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	result, err := NewLoader().WithDotEnv(false).WithPath(path).Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	cfg := result.Config
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, expected 9000", cfg.Server.Port)
	}
	if cfg.Audio.SampleRate != 22050 {
		t.Errorf("sample rate = %d, expected 22050", cfg.Audio.SampleRate)
	}
	if cfg.Translate.DefaultTarget != "tr" {
		t.Errorf("default target = %q, expected tr", cfg.Translate.DefaultTarget)
	}
	// Untouched sections keep their defaults.
	if cfg.Capture.MinDuration != 3*time.Second {
		t.Errorf("min duration = %v, expected default 3s", cfg.Capture.MinDuration)
	}
	if result.Path != path {
		t.Errorf("result path = %q, expected %q", result.Path, path)
	}
}

func TestLoader_MissingAPIKey(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "")

	_, err := NewLoader().
		WithDotEnv(false).
		WithPath(filepath.Join(t.TempDir(), "missing.yaml")).
		Load()
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if !errors.IsKind(err, errors.KindConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "test-key")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")

	result, err := NewLoader().
		WithDotEnv(false).
		WithPath(filepath.Join(t.TempDir(), "missing.yaml")).
		Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if result.Config.Server.Port != 9999 {
		t.Errorf("port = %d, expected 9999", result.Config.Server.Port)
	}
	if result.Config.Log.Level != "debug" {
		t.Errorf("log level = %q, expected debug", result.Config.Log.Level)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Providers.ElevenLabs.APIKey = "key"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid port",
			mutate:  func(cfg *Config) { cfg.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "three channels",
			mutate:  func(cfg *Config) { cfg.Audio.Channels = 3 },
			wantErr: true,
		},
		{
			name:    "max below min duration",
			mutate:  func(cfg *Config) { cfg.Capture.MaxDuration = time.Second },
			wantErr: true,
		},
		{
			name:    "stability above one",
			mutate:  func(cfg *Config) { cfg.Synthesis.Stability = 1.5 },
			wantErr: true,
		},
		{
			name:    "negative similarity",
			mutate:  func(cfg *Config) { cfg.Synthesis.Similarity = -0.1 },
			wantErr: true,
		},
		{
			name:    "zero chunk size",
			mutate:  func(cfg *Config) { cfg.Translate.MaxChunkSize = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
