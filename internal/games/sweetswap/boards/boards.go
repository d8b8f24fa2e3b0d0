// Package boards loads hand-made starting positions from YAML. A board
// fixes the grid, level and counters so a game or a simulation starts
// from a known position instead of a random one.
package boards

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"

	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

//go:embed data/*.yaml
var builtin embed.FS

// ErrUnknownBoard is returned by Lookup for a missing ID.
var ErrUnknownBoard = errors.New("boards: unknown board")

// Board is a starting position.
type Board struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Level       int       `yaml:"level"`
	Score       int       `yaml:"score"`
	Moves       int       `yaml:"moves"` // 0 uses the level's allowance
	Rows        []string  `yaml:"rows"`
	Specials    []Overlay `yaml:"specials"`
}

// Overlay turns the piece at (X, Y) into a special piece. Color defaults
// to the color already in the cell.
type Overlay struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Kind  string `yaml:"kind"`
	Color string `yaml:"color"`
}

// Parse decodes and validates a board.
func Parse(data []byte) (Board, error) {
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Board{}, fmt.Errorf("boards: cannot parse: %w", err)
	}
	if b.ID == "" {
		return Board{}, fmt.Errorf("boards: board has no id")
	}
	if b.Level < 1 {
		b.Level = 1
	}
	if b.Name == "" {
		b.Name = b.ID
	}
	if _, err := b.Grid(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// LoadFile reads a board from disk.
func LoadFile(p string) (Board, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Board{}, fmt.Errorf("boards: cannot read %s: %w", p, err)
	}
	b, err := Parse(data)
	if err != nil {
		return Board{}, fmt.Errorf("%s: %w", p, err)
	}
	return b, nil
}

// Grid builds the board's grid with overlays applied.
func (b Board) Grid() (*engine.Grid, error) {
	g, err := engine.ParseRows(b.Rows)
	if err != nil {
		return nil, fmt.Errorf("boards: %s: %w", b.ID, err)
	}
	for i, o := range b.Specials {
		at := engine.C(o.X, o.Y)
		p, ok := g.Piece(at)
		if !ok {
			return nil, fmt.Errorf("boards: %s: special %d at %v is not on a piece", b.ID, i, at)
		}
		kind, ok := engine.ParseSpecial(o.Kind)
		if !ok {
			return nil, fmt.Errorf("boards: %s: special %d has unknown kind %q", b.ID, i, o.Kind)
		}
		p.Special = kind
		if o.Color != "" {
			c, ok := engine.ParseColor(o.Color)
			if !ok {
				return nil, fmt.Errorf("boards: %s: special %d has unknown color %q", b.ID, i, o.Color)
			}
			p.Color = c
		}
		if kind.Colorless() {
			p.Color = engine.ColorNone
		} else if p.Color == engine.ColorNone {
			return nil, fmt.Errorf("boards: %s: %s at %v needs a color", b.ID, kind, at)
		}
		g.Set(at, engine.FilledCell(p))
	}
	return g, nil
}

// State returns the saved state that starts this board under rules.
func (b Board) State(rules engine.Rules) (engine.SavedState, error) {
	g, err := b.Grid()
	if err != nil {
		return engine.SavedState{}, err
	}
	if g.W != rules.Width || g.H != rules.Height {
		return engine.SavedState{}, fmt.Errorf("boards: %s is %dx%d but the rules use %dx%d",
			b.ID, g.W, g.H, rules.Width, rules.Height)
	}
	level := max(1, b.Level)
	moves := b.Moves
	if moves <= 0 {
		moves = rules.MovesForLevel(level)
	}
	return engine.SavedState{Board: g, Score: b.Score, Level: level, MovesLeft: moves}, nil
}

// Builtin returns the embedded boards ordered by level, then ID.
func Builtin() ([]Board, error) {
	entries, err := fs.ReadDir(builtin, "data")
	if err != nil {
		return nil, fmt.Errorf("boards: cannot list embedded boards: %w", err)
	}
	out := make([]Board, 0, len(entries))
	for _, e := range entries {
		data, err := builtin.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("boards: cannot read %s: %w", e.Name(), err)
		}
		b, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Lookup finds an embedded board by ID.
func Lookup(id string) (Board, error) {
	all, err := Builtin()
	if err != nil {
		return Board{}, err
	}
	for _, b := range all {
		if b.ID == id {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("%w %q", ErrUnknownBoard, id)
}
