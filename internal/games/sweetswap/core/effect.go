package core

// EffectKind names what a special activation cleared.
type EffectKind string

const (
	EffectRowClear    EffectKind = "row-clear"
	EffectColumnClear EffectKind = "column-clear"
	EffectColorClear  EffectKind = "color-clear"
	EffectFullClear   EffectKind = "full-clear"
)

// Effect describes one special activation for presentation and scoring.
// Index is the cleared row or column for line effects.
type Effect struct {
	Kind   EffectKind `json:"kind"`
	Source Special    `json:"source"`
	At     Coord      `json:"at"`
	Index  int        `json:"index"`
	Color  Color      `json:"color,omitempty"`
	Cells  []Coord    `json:"cells"`
}

func rowCells(g *Grid, y int) []Coord {
	cells := make([]Coord, 0, g.W)
	for x := 0; x < g.W; x++ {
		cells = append(cells, C(x, y))
	}
	return cells
}

func columnCells(g *Grid, x int) []Coord {
	cells := make([]Coord, 0, g.H)
	for y := 0; y < g.H; y++ {
		cells = append(cells, C(x, y))
	}
	return cells
}

func rowEffect(g *Grid, source Special, at Coord, y int) Effect {
	return Effect{Kind: EffectRowClear, Source: source, At: at, Index: y, Cells: rowCells(g, y)}
}

func columnEffect(g *Grid, source Special, at Coord, x int) Effect {
	return Effect{Kind: EffectColumnClear, Source: source, At: at, Index: x, Cells: columnCells(g, x)}
}

func colorEffect(g *Grid, source Special, at Coord, color Color) Effect {
	return Effect{Kind: EffectColorClear, Source: source, At: at, Color: color, Cells: g.CoordsWithColor(color)}
}

func fullEffect(g *Grid, source Special, at Coord) Effect {
	return Effect{Kind: EffectFullClear, Source: source, At: at, Cells: g.AllCoords()}
}

// DominantColor returns the palette color with the most pieces on the grid.
// Ties go to the color listed first in palette.
func DominantColor(g *Grid, palette []Color) Color {
	counts := make(map[Color]int)
	for _, cell := range g.Cells {
		if cell.Filled {
			counts[cell.Piece.Color]++
		}
	}
	best, bestN := ColorNone, 0
	for _, c := range palette {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	return best
}
