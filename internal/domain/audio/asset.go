package audio

import "time"

// Asset is an immutable in-memory recording: interleaved PCM-16 samples
// plus the format they were captured in.
type Asset struct {
	SampleRate int
	Channels   int
	Samples    []int16
}

// NewAsset builds an asset from interleaved PCM-16 samples.
func NewAsset(samples []int16, sampleRate, channels int) *Asset {
	return &Asset{
		SampleRate: sampleRate,
		Channels:   channels,
		Samples:    samples,
	}
}

// Frames returns the number of sample frames (one sample per channel).
func (a *Asset) Frames() int {
	if a.Channels <= 0 {
		return 0
	}
	return len(a.Samples) / a.Channels
}

// Duration derives playback length from frame count and sample rate.
func (a *Asset) Duration() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}
	seconds := float64(a.Frames()) / float64(a.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// Seconds returns the duration as a float for threshold comparisons.
func (a *Asset) Seconds() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(a.Frames()) / float64(a.SampleRate)
}
