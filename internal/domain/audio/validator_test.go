package audio

import "testing"

// assetOf builds a silent mono asset with the given duration and rate.
func assetOf(seconds float64, sampleRate, channels int) *Asset {
	frames := int(seconds * float64(sampleRate))
	return NewAsset(make([]int16, frames*channels), sampleRate, channels)
}

func TestValidate_CloningProfile(t *testing.T) {
	tests := []struct {
		name       string
		asset      *Asset
		wantOK     bool
		wantReason Reason
	}{
		{
			name:       "just below minimum duration",
			asset:      assetOf(2.99, 44100, 1),
			wantOK:     false,
			wantReason: ReasonTooShort,
		},
		{
			name:   "exactly minimum duration",
			asset:  assetOf(3.0, 44100, 1),
			wantOK: true,
		},
		{
			name:   "exactly maximum duration",
			asset:  assetOf(600.0, 16000, 1),
			wantOK: true,
		},
		{
			name:       "just above maximum duration",
			asset:      assetOf(600.01, 16000, 1),
			wantOK:     false,
			wantReason: ReasonTooLong,
		},
		{
			name:       "sample rate below floor",
			asset:      assetOf(10, 8000, 1),
			wantOK:     false,
			wantReason: ReasonSampleRateLow,
		},
		{
			name:   "stereo accepted",
			asset:  assetOf(10, 44100, 2),
			wantOK: true,
		},
		{
			name:       "three channels rejected",
			asset:      assetOf(10, 44100, 3),
			wantOK:     false,
			wantReason: ReasonTooManyChannels,
		},
	}

	profile := CloningProfile()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.asset, profile)
			if result.OK != tt.wantOK {
				t.Errorf("Validate() ok = %v, expected %v (%s)", result.OK, tt.wantOK, result.Detail)
			}
			if !tt.wantOK && result.Reason != tt.wantReason {
				t.Errorf("Validate() reason = %q, expected %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidate_TranscriptionProfile(t *testing.T) {
	profile := TranscriptionProfile()

	short := Validate(assetOf(0.4, 16000, 1), profile)
	if short.OK || short.Reason != ReasonTooShort {
		t.Errorf("0.4s should be too short, got %+v", short)
	}

	ok := Validate(assetOf(0.5, 8000, 1), profile)
	if !ok.OK {
		t.Errorf("0.5s at 8kHz should pass, got %+v", ok)
	}

	long := Validate(assetOf(300.5, 16000, 1), profile)
	if long.OK || long.Reason != ReasonTooLong {
		t.Errorf("300.5s should be too long, got %+v", long)
	}
}

func TestValidate_DurationChecksPrecedeFormat(t *testing.T) {
	// A recording that is both too short and under-sampled reports the
	// duration violation first.
	result := Validate(assetOf(1, 4000, 1), CloningProfile())
	if result.Reason != ReasonTooShort {
		t.Errorf("expected too_short to win, got %q", result.Reason)
	}
}
