package core

// NeedsSettle reports whether any column has an empty cell below a piece.
func NeedsSettle(g *Grid) bool {
	for x := 0; x < g.W; x++ {
		gap := false
		for y := g.H - 1; y >= 0; y-- {
			filled := g.Get(C(x, y)).Filled
			if !filled {
				gap = true
			} else if gap {
				return true
			}
		}
	}
	return false
}

// Settle returns a copy of the grid with every column compacted downward.
// Pieces keep their relative order; empty cells end up at the top.
func Settle(g *Grid) *Grid {
	out := NewGrid(g.W, g.H)
	for x := 0; x < g.W; x++ {
		dst := g.H - 1
		for y := g.H - 1; y >= 0; y-- {
			if cell := g.Get(C(x, y)); cell.Filled {
				out.Set(C(x, dst), cell)
				dst--
			}
		}
	}
	return out
}

// Fill returns a copy of the grid with every empty cell given a fresh random
// piece, along with the filled coordinates in row-major order. The grid is
// settled first if it has gaps.
func Fill(g *Grid, f *Factory) (*Grid, []Coord) {
	if NeedsSettle(g) {
		g = Settle(g)
	}
	out := g.Clone()
	var filled []Coord
	for _, c := range out.AllCoords() {
		if !out.Get(c).Filled {
			out.Set(c, FilledCell(f.Random()))
			filled = append(filled, c)
		}
	}
	return out, filled
}

// GenerateBoard returns a full w x h board with no pre-existing matches.
// Each cell is resampled while it would complete a run of three with its two
// left or two upper neighbors.
func GenerateBoard(w, h int, f *Factory) *Grid {
	g := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := f.RandomColor()
			for completesRun(g, C(x, y), c) {
				c = f.RandomColor()
			}
			g.Set(C(x, y), FilledCell(f.Create(SpecialNone, c)))
		}
	}
	return g
}

func completesRun(g *Grid, at Coord, color Color) bool {
	if at.X >= 2 && sameColorAt(g, at.Add(-1, 0), color) && sameColorAt(g, at.Add(-2, 0), color) {
		return true
	}
	return at.Y >= 2 && sameColorAt(g, at.Add(0, -1), color) && sameColorAt(g, at.Add(0, -2), color)
}
