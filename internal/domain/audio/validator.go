package audio

import "fmt"

// Reason explains why an asset was rejected.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonTooShort        Reason = "too_short"
	ReasonTooLong         Reason = "too_long"
	ReasonSampleRateLow   Reason = "sample_rate_too_low"
	ReasonTooManyChannels Reason = "too_many_channels"
)

// Profile bounds what a downstream consumer accepts. Durations are in
// seconds; boundary values are accepted.
type Profile struct {
	Name          string
	MinDuration   float64
	MaxDuration   float64
	MinSampleRate int
	MaxChannels   int
}

// CloningProfile covers voice cloning input, which needs enough clean
// material to model a voice.
func CloningProfile() Profile {
	return Profile{
		Name:          "cloning",
		MinDuration:   3,
		MaxDuration:   600,
		MinSampleRate: 16000,
		MaxChannels:   2,
	}
}

// TranscriptionProfile covers speech-to-text input, which tolerates
// shorter and lower-quality recordings.
func TranscriptionProfile() Profile {
	return Profile{
		Name:          "transcription",
		MinDuration:   0.5,
		MaxDuration:   300,
		MinSampleRate: 8000,
		MaxChannels:   2,
	}
}

// ValidationResult reports the outcome of checking an asset against a profile.
type ValidationResult struct {
	OK     bool
	Reason Reason
	Detail string
}

// Validate checks one asset against one profile. The first violated
// constraint wins; checks run in duration, rate, channel order.
func Validate(asset *Asset, profile Profile) ValidationResult {
	seconds := asset.Seconds()

	if seconds < profile.MinDuration {
		return ValidationResult{
			Reason: ReasonTooShort,
			Detail: fmt.Sprintf("duration %.2fs below minimum %.2fs", seconds, profile.MinDuration),
		}
	}
	if seconds > profile.MaxDuration {
		return ValidationResult{
			Reason: ReasonTooLong,
			Detail: fmt.Sprintf("duration %.2fs above maximum %.2fs", seconds, profile.MaxDuration),
		}
	}
	if asset.SampleRate < profile.MinSampleRate {
		return ValidationResult{
			Reason: ReasonSampleRateLow,
			Detail: fmt.Sprintf("sample rate %d below minimum %d", asset.SampleRate, profile.MinSampleRate),
		}
	}
	if asset.Channels > profile.MaxChannels {
		return ValidationResult{
			Reason: ReasonTooManyChannels,
			Detail: fmt.Sprintf("channel count %d above maximum %d", asset.Channels, profile.MaxChannels),
		}
	}

	return ValidationResult{OK: true}
}
