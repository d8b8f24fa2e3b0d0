package core

import "fmt"

// MinMatch is the shortest run that counts as a match.
const MinMatch = 3

// Axis is the direction of a match.
type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(b []byte) error {
	switch string(b) {
	case "horizontal":
		*a = AxisHorizontal
	case "vertical":
		*a = AxisVertical
	default:
		return fmt.Errorf("unknown axis %q", string(b))
	}
	return nil
}

// Match is a straight run of three or more same-colored pieces.
// Cells are ordered left to right or top to bottom.
type Match struct {
	Axis  Axis    `json:"axis"`
	Color Color   `json:"color"`
	Cells []Coord `json:"cells"`
}

// Len returns the number of cells in the run.
func (m Match) Len() int {
	return len(m.Cells)
}

// First returns the first cell of the run.
func (m Match) First() Coord {
	return m.Cells[0]
}

// Contains reports whether c belongs to the run.
func (m Match) Contains(c Coord) bool {
	for _, mc := range m.Cells {
		if mc == c {
			return true
		}
	}
	return false
}

// FindMatches returns every maximal run on the grid. Horizontal runs come
// first in row-major order, then vertical runs in column-major order.
// Empty cells, bombs and rainbows never take part in a run.
func FindMatches(g *Grid) []Match {
	var matches []Match
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if m, ok := runFrom(g, C(x, y), AxisHorizontal); ok {
				matches = append(matches, m)
			}
		}
	}
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if m, ok := runFrom(g, C(x, y), AxisVertical); ok {
				matches = append(matches, m)
			}
		}
	}
	return matches
}

func axisDelta(a Axis) (int, int) {
	if a == AxisVertical {
		return 0, 1
	}
	return 1, 0
}

// runFrom returns the run starting at start if start is the first cell of a
// maximal run of at least MinMatch along axis.
func runFrom(g *Grid, start Coord, axis Axis) (Match, bool) {
	p, ok := g.Piece(start)
	if !ok || !p.Matchable() {
		return Match{}, false
	}
	dx, dy := axisDelta(axis)
	if sameColorAt(g, start.Add(-dx, -dy), p.Color) {
		return Match{}, false
	}
	cells := []Coord{start}
	for c := start.Add(dx, dy); sameColorAt(g, c, p.Color); c = c.Add(dx, dy) {
		cells = append(cells, c)
	}
	if len(cells) < MinMatch {
		return Match{}, false
	}
	return Match{Axis: axis, Color: p.Color, Cells: cells}, true
}

func sameColorAt(g *Grid, c Coord, color Color) bool {
	p, ok := g.Piece(c)
	return ok && p.Matchable() && p.Color == color
}

// InRun reports whether the piece at c is part of a horizontal or vertical
// run of at least MinMatch.
func InRun(g *Grid, c Coord) bool {
	p, ok := g.Piece(c)
	if !ok || !p.Matchable() {
		return false
	}
	for _, axis := range []Axis{AxisHorizontal, AxisVertical} {
		dx, dy := axisDelta(axis)
		n := 1
		for q := c.Add(dx, dy); sameColorAt(g, q, p.Color); q = q.Add(dx, dy) {
			n++
		}
		for q := c.Add(-dx, -dy); sameColorAt(g, q, p.Color); q = q.Add(-dx, -dy) {
			n++
		}
		if n >= MinMatch {
			return true
		}
	}
	return false
}

// matchCells returns the distinct cells of all matches in first-seen order.
func matchCells(matches []Match) []Coord {
	seen := make(map[Coord]bool)
	var cells []Coord
	for _, m := range matches {
		for _, c := range m.Cells {
			if !seen[c] {
				seen[c] = true
				cells = append(cells, c)
			}
		}
	}
	return cells
}
