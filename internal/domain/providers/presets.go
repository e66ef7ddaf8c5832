package providers

import "fmt"

// Synthesis model identifiers.
const (
	ModelMonolingualV1  = "eleven_monolingual_v1"
	ModelMultilingualV2 = "eleven_multilingual_v2"
	ModelTurboV2        = "eleven_turbo_v2"
)

// Preset names a tuned stability/similarity pair.
type Preset string

const (
	PresetStable     Preset = "stable"
	PresetBalanced   Preset = "balanced"
	PresetExpressive Preset = "expressive"
)

// presetOptions holds the tuning behind each preset.
var presetOptions = map[Preset]SynthesisOptions{
	PresetStable:     {Stability: 0.75, Similarity: 0.75, Model: ModelMultilingualV2},
	PresetBalanced:   {Stability: 0.5, Similarity: 0.75, Model: ModelMultilingualV2},
	PresetExpressive: {Stability: 0.3, Similarity: 0.8, Model: ModelMultilingualV2},
}

// ParsePreset resolves a preset name to its synthesis options.
func ParsePreset(name string) (SynthesisOptions, error) {
	opts, ok := presetOptions[Preset(name)]
	if !ok {
		return SynthesisOptions{}, fmt.Errorf("unknown synthesis preset %q", name)
	}
	return opts, nil
}

// Presets lists the available preset names.
func Presets() []Preset {
	return []Preset{PresetStable, PresetBalanced, PresetExpressive}
}
