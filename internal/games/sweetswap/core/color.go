package core

import (
	"fmt"
	"strings"
)

// Color is a piece color. Bomb and rainbow pieces carry ColorNone.
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
	ColorCount // Sentinel value for iteration
)

// DefaultPalette returns the six standard piece colors.
func DefaultPalette() []Color {
	return []Color{ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple}
}

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorRed:
		return "red"
	case ColorOrange:
		return "orange"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorPurple:
		return "purple"
	default:
		return "unknown"
	}
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorOrange:
		return 'O'
	case ColorYellow:
		return 'Y'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	case ColorPurple:
		return 'P'
	default:
		return '?'
	}
}

// ParseColor converts a name or single letter to a Color.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return ColorRed, true
	case "orange", "o":
		return ColorOrange, true
	case "yellow", "y":
		return ColorYellow, true
	case "green", "g":
		return ColorGreen, true
	case "blue", "b":
		return ColorBlue, true
	case "purple", "p":
		return ColorPurple, true
	case "none", "":
		return ColorNone, true
	default:
		return ColorNone, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, ok := ParseColor(string(b))
	if !ok {
		return fmt.Errorf("unknown color %q", string(b))
	}
	*c = v
	return nil
}
