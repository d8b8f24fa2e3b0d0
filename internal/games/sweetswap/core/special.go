package core

// Placement is a special piece to be left behind after a clear.
type Placement struct {
	At    Coord `json:"at"`
	Piece Piece `json:"piece"`
}

// DecideSpecial picks at most one special piece to create from this pass's
// matches. An intersection of two runs covering enough cells yields a
// wrapped piece at the shared cell; otherwise the longest run decides.
// Horizontal runs of four give a column-clearing stripe and vertical runs a
// row-clearing stripe. Each kind is gated by its unlock level.
func DecideSpecial(matches []Match, g *Grid, level int, rules Rules, f *Factory) (Placement, bool) {
	if len(matches) == 0 {
		return Placement{}, false
	}

	counts := make(map[Coord]int)
	for _, m := range matches {
		for _, c := range m.Cells {
			counts[c]++
		}
	}

	if level >= rules.WrappedLevel && len(counts) >= rules.WrappedMinCells {
		if center, ok := intersection(matches, counts); ok {
			if p, ok := g.Piece(center); ok && p.Color != ColorNone {
				return Placement{At: center, Piece: f.Create(SpecialWrapped, p.Color)}, true
			}
		}
	}

	primary := matches[0]
	for _, m := range matches[1:] {
		if m.Len() > primary.Len() {
			primary = m
		}
	}
	at := primary.First()
	p, ok := g.Piece(at)
	if !ok {
		return Placement{}, false
	}

	switch n := primary.Len(); {
	case n >= 6 && level >= rules.RainbowLevel:
		return Placement{At: at, Piece: f.Create(SpecialRainbow, ColorNone)}, true
	case n == 5 && level >= rules.BombLevel:
		return Placement{At: at, Piece: f.Create(SpecialBomb, ColorNone)}, true
	case n == 4 && level >= rules.StripedLevel:
		kind := SpecialStripedRow
		if primary.Axis == AxisHorizontal {
			kind = SpecialStripedColumn
		}
		return Placement{At: at, Piece: f.Create(kind, p.Color)}, true
	}
	return Placement{}, false
}

// intersection returns the first cell, in match order, shared by two runs.
func intersection(matches []Match, counts map[Coord]int) (Coord, bool) {
	for _, m := range matches {
		for _, c := range m.Cells {
			if counts[c] > 1 {
				return c, true
			}
		}
	}
	return Coord{}, false
}
