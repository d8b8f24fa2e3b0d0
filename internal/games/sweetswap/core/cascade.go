package core

// CascadeResult is the closed clear-set of a resolution pass.
type CascadeResult struct {
	Cleared []Coord  // every cell to clear, in discovery order
	Effects []Effect // one per activated special
}

// Cascade expands initial until no special inside the set is left
// unactivated. A special activates at most once; cells in consumed are
// treated as already activated. Each pass activates the specials found at
// the start of the pass and may add cells that activate in the next one.
func Cascade(g *Grid, initial []Coord, palette []Color, consumed ...Coord) CascadeResult {
	inSet := make(map[Coord]bool)
	var res CascadeResult
	add := func(cells []Coord) {
		for _, c := range cells {
			if g.InBounds(c) && !inSet[c] {
				inSet[c] = true
				res.Cleared = append(res.Cleared, c)
			}
		}
	}
	add(initial)

	processed := make(map[Coord]bool)
	for _, c := range consumed {
		processed[c] = true
	}

	for changed := true; changed; {
		changed = false
		pending := len(res.Cleared)
		for i := 0; i < pending; i++ {
			c := res.Cleared[i]
			if processed[c] {
				continue
			}
			p, ok := g.Piece(c)
			if !ok || p.Special == SpecialNone {
				continue
			}
			processed[c] = true
			e := activate(g, c, p, palette)
			res.Effects = append(res.Effects, e)
			before := len(res.Cleared)
			add(e.Cells)
			if len(res.Cleared) > before {
				changed = true
			}
		}
	}
	return res
}

func activate(g *Grid, at Coord, p Piece, palette []Color) Effect {
	switch p.Special {
	case SpecialStripedRow:
		return rowEffect(g, p.Special, at, at.Y)
	case SpecialStripedColumn:
		return columnEffect(g, p.Special, at, at.X)
	case SpecialWrapped:
		return colorEffect(g, p.Special, at, p.Color)
	case SpecialBomb:
		e := colorEffect(g, p.Special, at, DominantColor(g, palette))
		e.Cells = append(e.Cells, at)
		return e
	default:
		return fullEffect(g, p.Special, at)
	}
}

// filledAmong counts the cells in coords that hold a piece.
func filledAmong(g *Grid, coords []Coord) int {
	n := 0
	for _, c := range coords {
		if g.Get(c).Filled {
			n++
		}
	}
	return n
}
