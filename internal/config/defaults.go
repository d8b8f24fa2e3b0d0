package config

import (
	_ "embed"
)

//go:embed defaults/sweetswap.yaml
var defaultSweetSwapYAML []byte

// DefaultSweetSwapConfig returns the built-in Sweet Swap configuration.
func DefaultSweetSwapConfig() SweetSwapConfig {
	return SweetSwapConfig{
		Board: BoardConfig{
			Width:   8,
			Height:  8,
			Palette: []string{"red", "orange", "yellow", "green", "blue", "purple"},
		},
		Moves: MovesConfig{
			Base:  30,
			Min:   10,
			Decay: 1,
		},
		Specials: SpecialsConfig{
			StripedLevel:    5,
			WrappedLevel:    7,
			BombLevel:       10,
			RainbowLevel:    12,
			WrappedMinCells: 5,
		},
		Resolution: ResolutionConfig{
			MaxChainSteps: 64,
		},
		Pacing: PacingConfig{
			StepTicks:  6,
			ShakeTicks: 8,
		},
		Audio: AudioConfig{
			Enabled:    false,
			SampleRate: 44100,
			Volume:     0.3,
		},
	}
}
