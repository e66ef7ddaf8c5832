package config

import "time"

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			IP:             "0.0.0.0",
			Port:           8080,
			RequestTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "logs",
			File:  "server.log",
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			Channels:   1,
			Format:     "wav",
		},
		Capture: CaptureConfig{
			MinDuration:     3 * time.Second,
			MaxDuration:     600 * time.Second,
			DefaultDuration: 10 * time.Second,
			PollInterval:    100 * time.Millisecond,
		},
		Paths: PathsConfig{
			TempDir:   "temp",
			OutputDir: "output",
			VoicesDir: "voices",
			DataDir:   "data",
		},
		Cleanup: CleanupConfig{
			Enabled:  true,
			MaxAge:   24 * time.Hour,
			Interval: time.Hour,
		},
		Synthesis: SynthesisConfig{
			Stability:  0.5,
			Similarity: 0.75,
			Model:      "eleven_multilingual_v2",
		},
		Translate: TranslateConfig{
			DefaultSource: "auto",
			DefaultTarget: "en",
			MaxTextLength: 5000,
			MaxChunkSize:  1000,
			Cache: CacheConfig{
				Enabled: false,
				Addr:    "localhost:6379",
				DB:      0,
				TTL:     3600 * time.Second,
			},
		},
		Providers: ProvidersConfig{
			ElevenLabs: ElevenLabsConfig{
				BaseURL:  "https://api.elevenlabs.io",
				STTModel: "scribe_v1",
			},
			OpenAI: OpenAIConfig{
				Model: "whisper-1",
			},
			EdgeTTS: EdgeTTSConfig{
				Voice: "en-US-AriaNeural",
			},
			Google: GoogleConfig{
				BaseURL: "https://translate.googleapis.com",
			},
		},
		Selected: SelectedConfig{
			STT:       "elevenlabs",
			Clone:     "elevenlabs",
			Translate: "googlefree",
			TTS:       "elevenlabs",
		},
	}
}
