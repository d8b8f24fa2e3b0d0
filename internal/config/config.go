// Package config provides configuration structures for Sweet Swap.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid")

// SweetSwapConfig holds all configurable parameters for Sweet Swap.
type SweetSwapConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Moves      MovesConfig      `yaml:"moves"`
	Specials   SpecialsConfig   `yaml:"specials"`
	Resolution ResolutionConfig `yaml:"resolution"`
	Pacing     PacingConfig     `yaml:"pacing"`
	Audio      AudioConfig      `yaml:"audio"`
}

// BoardConfig defines board dimensions and the color palette.
type BoardConfig struct {
	Width   int      `yaml:"width"`
	Height  int      `yaml:"height"`
	Palette []string `yaml:"palette"` // color names, e.g. red, orange
}

// MovesConfig defines the move allowance per level.
type MovesConfig struct {
	Base  int `yaml:"base"`  // Moves at level 1
	Min   int `yaml:"min"`   // Floor for later levels
	Decay int `yaml:"decay"` // Moves removed per level
}

// SpecialsConfig defines at which level each special piece unlocks.
type SpecialsConfig struct {
	StripedLevel    int `yaml:"striped_level"`
	WrappedLevel    int `yaml:"wrapped_level"`
	BombLevel       int `yaml:"bomb_level"`
	RainbowLevel    int `yaml:"rainbow_level"`
	WrappedMinCells int `yaml:"wrapped_min_cells"`
}

// ResolutionConfig bounds the automatic resolution loop.
type ResolutionConfig struct {
	MaxChainSteps int `yaml:"max_chain_steps"`
}

// PacingConfig controls how the terminal game plays back a move.
// Values are in simulation ticks.
type PacingConfig struct {
	StepTicks  int `yaml:"step_ticks"`
	ShakeTicks int `yaml:"shake_ticks"`
}

// AudioConfig controls sound cues.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // 0..1
}

// Validate checks that the configuration can drive a game.
func (c SweetSwapConfig) Validate() error {
	switch {
	case c.Board.Width < 3 || c.Board.Height < 3:
		return fmt.Errorf("%w: board must be at least 3x3, got %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	case len(c.Board.Palette) < 3:
		return fmt.Errorf("%w: palette needs at least 3 colors, got %d", ErrInvalidConfig, len(c.Board.Palette))
	case c.Moves.Base <= 0 || c.Moves.Min <= 0:
		return fmt.Errorf("%w: moves must be positive", ErrInvalidConfig)
	case c.Moves.Decay < 0:
		return fmt.Errorf("%w: moves decay cannot be negative", ErrInvalidConfig)
	case c.Resolution.MaxChainSteps < 1:
		return fmt.Errorf("%w: max_chain_steps must be at least 1", ErrInvalidConfig)
	case c.Pacing.StepTicks < 0 || c.Pacing.ShakeTicks < 0:
		return fmt.Errorf("%w: pacing ticks cannot be negative", ErrInvalidConfig)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio volume must be within [0, 1]", ErrInvalidConfig)
	}
	return nil
}
