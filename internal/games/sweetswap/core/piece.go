package core

import (
	"fmt"
	"strings"
)

// Special is the kind of power-up a piece carries.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialStripedRow
	SpecialStripedColumn
	SpecialBomb
	SpecialWrapped
	SpecialRainbow
)

// String returns the wire name of the special kind.
func (s Special) String() string {
	switch s {
	case SpecialNone:
		return "none"
	case SpecialStripedRow:
		return "striped-row"
	case SpecialStripedColumn:
		return "striped-column"
	case SpecialBomb:
		return "bomb"
	case SpecialWrapped:
		return "wrapped"
	case SpecialRainbow:
		return "rainbow"
	default:
		return "unknown"
	}
}

// ParseSpecial converts a wire name to a Special.
func ParseSpecial(s string) (Special, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SpecialNone, true
	case "striped-row", "row":
		return SpecialStripedRow, true
	case "striped-column", "column":
		return SpecialStripedColumn, true
	case "bomb":
		return SpecialBomb, true
	case "wrapped", "jelly":
		return SpecialWrapped, true
	case "rainbow":
		return SpecialRainbow, true
	default:
		return SpecialNone, false
	}
}

// IsLine reports whether the special is a striped piece.
func (s Special) IsLine() bool {
	return s == SpecialStripedRow || s == SpecialStripedColumn
}

// Colorless reports whether pieces of this kind carry no color.
func (s Special) Colorless() bool {
	return s == SpecialBomb || s == SpecialRainbow
}

// MarshalText implements encoding.TextMarshaler.
func (s Special) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Special) UnmarshalText(b []byte) error {
	v, ok := ParseSpecial(string(b))
	if !ok {
		return fmt.Errorf("unknown special %q", string(b))
	}
	*s = v
	return nil
}

// Piece is a single candy on the board. ID is unique within a session.
type Piece struct {
	ID      uint64  `json:"id"`
	Color   Color   `json:"color"`
	Special Special `json:"special,omitempty"`
}

// Matchable reports whether the piece can take part in a color run.
func (p Piece) Matchable() bool {
	return p.Color != ColorNone && !p.Special.Colorless()
}

// Char returns a single character for ASCII rendering.
func (p Piece) Char() rune {
	switch p.Special {
	case SpecialBomb:
		return '@'
	case SpecialRainbow:
		return '*'
	case SpecialStripedRow:
		return '='
	case SpecialStripedColumn:
		return '|'
	case SpecialWrapped:
		return '#'
	default:
		return p.Color.Char()
	}
}

// Picker is the random source used to choose colors.
// *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

// Factory produces pieces with unique IDs.
type Factory struct {
	picker  Picker
	palette []Color
	nextID  uint64
}

// NewFactory creates a factory drawing colors from palette.
func NewFactory(picker Picker, palette []Color) *Factory {
	p := make([]Color, len(palette))
	copy(p, palette)
	return &Factory{picker: picker, palette: p, nextID: 1}
}

// Palette returns the colors the factory draws from.
func (f *Factory) Palette() []Color {
	return f.palette
}

// Random returns a plain piece with a uniformly random palette color.
func (f *Factory) Random() Piece {
	return f.Create(SpecialNone, f.RandomColor())
}

// RandomColor returns a uniformly random palette color.
func (f *Factory) RandomColor() Color {
	return f.palette[f.picker.Intn(len(f.palette))]
}

// Create returns a piece of the given kind. Bomb and rainbow pieces are
// always colorless; other kinds get a random color when none is given.
func (f *Factory) Create(special Special, color Color) Piece {
	switch {
	case special.Colorless():
		color = ColorNone
	case color == ColorNone:
		color = f.RandomColor()
	}
	p := Piece{ID: f.nextID, Color: color, Special: special}
	f.nextID++
	return p
}

// Reserve makes sure later pieces get IDs above id.
func (f *Factory) Reserve(id uint64) {
	if id >= f.nextID {
		f.nextID = id + 1
	}
}
