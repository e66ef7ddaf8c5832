package capture

import (
	"testing"

	"echominds-server-go/internal/domain/audio"
)

func TestProbe_SilentCapture(t *testing.T) {
	asset := audio.NewAsset(make([]int16, 44100), 44100, 1)

	result := Probe(asset)
	if result.Signal {
		t.Fatal("expected silent capture to report no signal")
	}
	if result.Peak != 0 {
		t.Fatalf("expected zero peak, got %f", result.Peak)
	}
}

func TestProbe_DetectsSignal(t *testing.T) {
	samples := make([]int16, 44100)
	samples[100] = -16384

	result := Probe(asset(samples))
	if !result.Signal {
		t.Fatal("expected signal to be detected")
	}
	if result.Peak < 0.49 || result.Peak > 0.51 {
		t.Fatalf("expected peak near 0.5, got %f", result.Peak)
	}
}

func asset(samples []int16) *audio.Asset {
	return audio.NewAsset(samples, 44100, 1)
}
