package config

import "time"

type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Audio     AudioConfig     `yaml:"audio" mapstructure:"audio"`
	Capture   CaptureConfig   `yaml:"capture" mapstructure:"capture"`
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	Cleanup   CleanupConfig   `yaml:"cleanup" mapstructure:"cleanup"`
	Synthesis SynthesisConfig `yaml:"synthesis" mapstructure:"synthesis"`
	Translate TranslateConfig `yaml:"translate" mapstructure:"translate"`
	Providers ProvidersConfig `yaml:"providers" mapstructure:"providers"`
	Selected  SelectedConfig  `yaml:"selected_provider" mapstructure:"selected_provider"`
}

type ServerConfig struct {
	IP             string        `yaml:"ip" mapstructure:"ip"`
	Port           int           `yaml:"port" mapstructure:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

type LogConfig struct {
	Level string `yaml:"log_level" mapstructure:"log_level"`
	Dir   string `yaml:"log_dir" mapstructure:"log_dir"`
	File  string `yaml:"log_file" mapstructure:"log_file"`
}

// AudioConfig describes the expected format of captured audio.
type AudioConfig struct {
	SampleRate int    `yaml:"sample_rate" mapstructure:"sample_rate"`
	Channels   int    `yaml:"channels" mapstructure:"channels"`
	Format     string `yaml:"format" mapstructure:"format"`
}

// CaptureConfig bounds recording sessions.
type CaptureConfig struct {
	MinDuration     time.Duration `yaml:"min_duration" mapstructure:"min_duration"`
	MaxDuration     time.Duration `yaml:"max_duration" mapstructure:"max_duration"`
	DefaultDuration time.Duration `yaml:"default_duration" mapstructure:"default_duration"`
	PollInterval    time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
}

type PathsConfig struct {
	TempDir   string `yaml:"temp_dir" mapstructure:"temp_dir"`
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	VoicesDir string `yaml:"voices_dir" mapstructure:"voices_dir"`
	DataDir   string `yaml:"data_dir" mapstructure:"data_dir"`
}

// CleanupConfig controls removal of stale temporary audio files.
type CleanupConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxAge   time.Duration `yaml:"max_age" mapstructure:"max_age"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// SynthesisConfig carries default voice settings for speech synthesis.
type SynthesisConfig struct {
	Stability  float64 `yaml:"stability" mapstructure:"stability"`
	Similarity float64 `yaml:"similarity" mapstructure:"similarity"`
	Model      string  `yaml:"model" mapstructure:"model"`
}

type TranslateConfig struct {
	DefaultSource string      `yaml:"default_source" mapstructure:"default_source"`
	DefaultTarget string      `yaml:"default_target" mapstructure:"default_target"`
	MaxTextLength int         `yaml:"max_text_length" mapstructure:"max_text_length"`
	MaxChunkSize  int         `yaml:"max_chunk_size" mapstructure:"max_chunk_size"`
	Cache         CacheConfig `yaml:"cache" mapstructure:"cache"`
}

// CacheConfig enables the redis-backed translation cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Addr    string        `yaml:"addr" mapstructure:"addr"`
	DB      int           `yaml:"db" mapstructure:"db"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type ProvidersConfig struct {
	ElevenLabs ElevenLabsConfig `yaml:"elevenlabs" mapstructure:"elevenlabs"`
	OpenAI     OpenAIConfig     `yaml:"openai" mapstructure:"openai"`
	EdgeTTS    EdgeTTSConfig    `yaml:"edge_tts" mapstructure:"edge_tts"`
	Google     GoogleConfig     `yaml:"google" mapstructure:"google"`
}

type ElevenLabsConfig struct {
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"url" mapstructure:"url"`
	STTModel string `yaml:"stt_model" mapstructure:"stt_model"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"url" mapstructure:"url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

type EdgeTTSConfig struct {
	Voice string `yaml:"voice" mapstructure:"voice"`
}

type GoogleConfig struct {
	BaseURL string `yaml:"url" mapstructure:"url"`
}

// SelectedConfig names the provider adapter used for each pipeline stage.
type SelectedConfig struct {
	STT       string `yaml:"STT" mapstructure:"STT"`
	Clone     string `yaml:"Clone" mapstructure:"Clone"`
	Translate string `yaml:"Translate" mapstructure:"Translate"`
	TTS       string `yaml:"TTS" mapstructure:"TTS"`
}
