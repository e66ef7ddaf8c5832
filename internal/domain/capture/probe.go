package capture

import "echominds-server-go/internal/domain/audio"

// signalThreshold is the normalized peak amplitude below which a probe
// capture counts as silent.
const signalThreshold = 0.001

// ProbeResult reports whether a short test capture carried any signal.
type ProbeResult struct {
	Peak   float64 `json:"peak_amplitude"`
	Signal bool    `json:"signal"`
}

// Probe measures the peak amplitude of a capture, normalized to [0, 1].
// Clients use it to verify their input source before a real recording.
func Probe(asset *audio.Asset) ProbeResult {
	var peak int32
	for _, sample := range asset.Samples {
		abs := int32(sample)
		if abs < 0 {
			abs = -abs
		}
		if abs > peak {
			peak = abs
		}
	}
	normalized := float64(peak) / 32768.0
	return ProbeResult{
		Peak:   normalized,
		Signal: normalized > signalThreshold,
	}
}
