// Package core implements the Sweet Swap match-resolution engine: match
// detection, special pieces, cascades, gravity and the game session.
package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cell is one board position, either empty or holding a piece.
type Cell struct {
	Filled bool
	Piece  Piece
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// FilledCell returns a cell holding p.
func FilledCell(p Piece) Cell {
	return Cell{Filled: true, Piece: p}
}

// Grid is the game board. Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int
	H     int
	Cells []Cell
}

// NewGrid creates an empty grid.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Cells: make([]Cell, w*h)}
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Get returns the cell at c, or an empty cell if out of bounds.
func (g *Grid) Get(c Coord) Cell {
	if !g.InBounds(c) {
		return Empty()
	}
	return g.Cells[g.index(c)]
}

// Piece returns the piece at c and whether the cell is filled.
func (g *Grid) Piece(c Coord) (Piece, bool) {
	cell := g.Get(c)
	return cell.Piece, cell.Filled
}

// Set sets the cell at c. Out of bounds writes are ignored.
func (g *Grid) Set(c Coord, cell Cell) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = cell
	}
}

// SetEmpty clears the cell at c.
func (g *Grid) SetEmpty(c Coord) {
	g.Set(c, Empty())
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{W: g.W, H: g.H, Cells: cells}
}

// Equal reports whether two grids hold the same pieces in the same places.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.W != other.W || g.H != other.H {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != other.Cells[i] {
			return false
		}
	}
	return true
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, cell := range g.Cells {
		if !cell.Filled {
			n++
		}
	}
	return n
}

// AllCoords returns all coordinates ordered by row then column.
func (g *Grid) AllCoords() []Coord {
	coords := make([]Coord, 0, g.W*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			coords = append(coords, C(x, y))
		}
	}
	return coords
}

// CoordsWithColor returns every filled cell whose piece has color, row-major.
func (g *Grid) CoordsWithColor(color Color) []Coord {
	var coords []Coord
	for _, c := range g.AllCoords() {
		if p, ok := g.Piece(c); ok && p.Color == color {
			coords = append(coords, c)
		}
	}
	return coords
}

// MaxID returns the largest piece ID on the grid.
func (g *Grid) MaxID() uint64 {
	var id uint64
	for _, cell := range g.Cells {
		if cell.Filled && cell.Piece.ID > id {
			id = cell.Piece.ID
		}
	}
	return id
}

// Without returns a copy of the grid with the given cells emptied.
func (g *Grid) Without(coords []Coord) *Grid {
	out := g.Clone()
	for _, c := range coords {
		out.SetEmpty(c)
	}
	return out
}

// Swapped returns a copy of the grid with the contents of a and b exchanged.
func (g *Grid) Swapped(a, b Coord) *Grid {
	out := g.Clone()
	ca, cb := out.Get(a), out.Get(b)
	out.Set(a, cb)
	out.Set(b, ca)
	return out
}

// String renders the grid as ASCII, one row per line. Empty cells are '.'.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if p, ok := g.Piece(C(x, y)); ok {
				sb.WriteRune(p.Char())
			} else {
				sb.WriteByte('.')
			}
		}
		if y < g.H-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseRows builds a grid from ASCII rows. Color letters (ROYGBP) make plain
// pieces, '@' a bomb, '*' a rainbow and '.' an empty cell. Pieces get IDs
// 1, 2, 3... in row-major order.
func ParseRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}
	w := len(rows[0])
	if w == 0 {
		return nil, fmt.Errorf("grid has no columns")
	}
	g := NewGrid(w, len(rows))
	var id uint64
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has width %d, expected %d", y, len(row), w)
		}
		for x, ch := range row {
			var p Piece
			switch ch {
			case '.':
				continue
			case '@':
				p = Piece{Special: SpecialBomb}
			case '*':
				p = Piece{Special: SpecialRainbow}
			default:
				color, ok := ParseColor(string(ch))
				if !ok || color == ColorNone {
					return nil, fmt.Errorf("row %d: unknown cell %q", y, ch)
				}
				p = Piece{Color: color}
			}
			id++
			p.ID = id
			g.Set(C(x, y), FilledCell(p))
		}
	}
	return g, nil
}

// Rows returns the grid as rows of pieces, nil for empty cells.
func (g *Grid) Rows() [][]*Piece {
	rows := make([][]*Piece, g.H)
	for y := 0; y < g.H; y++ {
		rows[y] = make([]*Piece, g.W)
		for x := 0; x < g.W; x++ {
			if p, ok := g.Piece(C(x, y)); ok {
				piece := p
				rows[y][x] = &piece
			}
		}
	}
	return rows
}

// GridFromRows is the inverse of Rows. All rows must have the same length.
func GridFromRows(rows [][]*Piece) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid is empty")
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.W {
			return nil, fmt.Errorf("row %d has width %d, expected %d", y, len(row), g.W)
		}
		for x, p := range row {
			if p == nil {
				continue
			}
			piece := *p
			if piece.Special.Colorless() {
				piece.Color = ColorNone
			}
			g.Set(C(x, y), FilledCell(piece))
		}
	}
	return g, nil
}

// MarshalJSON encodes the grid as rows of pieces with null for empty cells.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (g *Grid) UnmarshalJSON(b []byte) error {
	var rows [][]*Piece
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	out, err := GridFromRows(rows)
	if err != nil {
		return err
	}
	*g = *out
	return nil
}
