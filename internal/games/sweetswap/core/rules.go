package core

import (
	"errors"
	"fmt"
)

// ErrInvalidRules is returned when a Rules value cannot drive a session.
var ErrInvalidRules = errors.New("sweetswap: invalid rules")

// Rules holds the tunable parameters of a session.
type Rules struct {
	Width   int
	Height  int
	Palette []Color

	BaseMoves     int // moves at level 1
	MinMoves      int // floor for later levels
	MovesDecay    int // moves removed per level; 0 keeps every level at BaseMoves
	MaxChainSteps int // resolution loop cap per move

	StripedLevel    int
	WrappedLevel    int
	BombLevel       int
	RainbowLevel    int
	WrappedMinCells int
}

// DefaultRules returns the standard 8x8 six-color rules.
func DefaultRules() Rules {
	return Rules{
		Width:           8,
		Height:          8,
		Palette:         DefaultPalette(),
		BaseMoves:       30,
		MinMoves:        10,
		MovesDecay:      1,
		MaxChainSteps:   64,
		StripedLevel:    5,
		WrappedLevel:    7,
		BombLevel:       10,
		RainbowLevel:    12,
		WrappedMinCells: 5,
	}
}

// Validate checks the rules for values a session cannot use.
func (r Rules) Validate() error {
	if r.Width < MinMatch || r.Height < MinMatch {
		return fmt.Errorf("%w: board %dx%d is smaller than %dx%d", ErrInvalidRules, r.Width, r.Height, MinMatch, MinMatch)
	}
	if len(r.Palette) < 3 {
		return fmt.Errorf("%w: palette needs at least 3 colors, got %d", ErrInvalidRules, len(r.Palette))
	}
	seen := make(map[Color]bool)
	for _, c := range r.Palette {
		if c == ColorNone || c >= ColorCount {
			return fmt.Errorf("%w: palette color %v is not a piece color", ErrInvalidRules, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: palette color %v repeated", ErrInvalidRules, c)
		}
		seen[c] = true
	}
	if r.BaseMoves < 1 || r.MinMoves < 1 {
		return fmt.Errorf("%w: moves must be positive", ErrInvalidRules)
	}
	if r.MovesDecay < 0 {
		return fmt.Errorf("%w: moves decay must not be negative", ErrInvalidRules)
	}
	if r.MaxChainSteps < 1 {
		return fmt.Errorf("%w: max chain steps must be positive", ErrInvalidRules)
	}
	return nil
}

// MovesForLevel returns the move allowance at the start of level.
func (r Rules) MovesForLevel(level int) int {
	moves := r.BaseMoves - r.MovesDecay*(level-1)
	if moves < r.MinMoves {
		moves = r.MinMoves
	}
	return moves
}
