package core

import "fmt"

// SwapKind classifies how a swap was handled.
type SwapKind string

const (
	SwapRejected SwapKind = "rejected"
	SwapOrdinary SwapKind = "ordinary"
	SwapCombo    SwapKind = "combo"
	SwapRainbow  SwapKind = "rainbow"
	SwapBomb     SwapKind = "bomb"
)

// SwapOutcome is the result of evaluating a swap without cascades or gravity.
type SwapOutcome struct {
	Accepted bool
	Kind     SwapKind
	// Grid is the swapped grid for ordinary swaps and the grid with the
	// immediate clear-set removed for special activations.
	Grid *Grid
	// Clear is the immediate clear-set of a special activation.
	Clear []Coord
	// Consumed lists the specials that fired as part of the swap itself.
	Consumed []Coord
	Effects  []Effect
	Points   int
}

// EvaluateSwap decides what swapping a and b does. Out of bounds
// coordinates are an error; any other illegal swap is a rejection.
// Special combinations are checked before a single rainbow, a single bomb,
// and finally an ordinary match-forming swap.
func EvaluateSwap(g *Grid, a, b Coord) (SwapOutcome, error) {
	if !g.InBounds(a) || !g.InBounds(b) {
		return SwapOutcome{}, fmt.Errorf("%w: swap %v <-> %v on %dx%d board", ErrOutOfBounds, a, b, g.W, g.H)
	}
	rejected := SwapOutcome{Kind: SwapRejected, Grid: g}
	if !a.Adjacent(b) {
		return rejected, nil
	}
	pa, okA := g.Piece(a)
	pb, okB := g.Piece(b)
	if !okA || !okB {
		return rejected, nil
	}

	if out, ok := comboSwap(g, a, pa, b, pb); ok {
		return out, nil
	}

	if pa.Special == SpecialRainbow || pb.Special == SpecialRainbow {
		at := a
		if pb.Special == SpecialRainbow {
			at = b
		}
		e := fullEffect(g, SpecialRainbow, at)
		return activation(g, SwapRainbow, e.Cells, []Coord{at}, []Effect{e}), nil
	}

	if pa.Special == SpecialBomb || pb.Special == SpecialBomb {
		at, other := a, pb
		if pb.Special == SpecialBomb {
			at, other = b, pa
		}
		if other.Color != ColorNone {
			e := colorEffect(g, SpecialBomb, at, other.Color)
			e.Cells = append(e.Cells, at)
			return activation(g, SwapBomb, e.Cells, []Coord{at}, []Effect{e}), nil
		}
	}

	if pa.Special.Colorless() || pb.Special.Colorless() {
		return rejected, nil
	}
	swapped := g.Swapped(a, b)
	if !InRun(swapped, a) && !InRun(swapped, b) {
		return rejected, nil
	}
	return SwapOutcome{Accepted: true, Kind: SwapOrdinary, Grid: swapped}, nil
}

// FirstLegalSwap scans cells row-major and tries each cell's right, then
// lower, neighbor. It returns the first pair EvaluateSwap accepts.
func FirstLegalSwap(g *Grid) (a, b Coord, ok bool) {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			a = C(x, y)
			for _, n := range [...]Coord{a.Add(1, 0), a.Add(0, 1)} {
				if !g.InBounds(n) {
					continue
				}
				if out, err := EvaluateSwap(g, a, n); err == nil && out.Accepted {
					return a, n, true
				}
			}
		}
	}
	return Coord{}, Coord{}, false
}

// comboSwap handles two specials swapped into each other.
func comboSwap(g *Grid, a Coord, pa Piece, b Coord, pb Piece) (SwapOutcome, bool) {
	sa, sb := pa.Special, pb.Special
	consumed := []Coord{a, b}
	switch {
	case sa.Colorless() && sb.Colorless():
		e := fullEffect(g, sa, a)
		return activation(g, SwapCombo, e.Cells, consumed, []Effect{e}), true

	case sa.IsLine() && sb.IsLine():
		effects := []Effect{
			rowEffect(g, sa, a, a.Y),
			columnEffect(g, sb, a, a.X),
		}
		return activation(g, SwapCombo, unionCells(consumed, effects), consumed, effects), true

	case sa.IsLine() && sb == SpecialBomb, sb.IsLine() && sa == SpecialBomb:
		line, kind := a, sa
		if sb.IsLine() {
			line, kind = b, sb
		}
		var effects []Effect
		if kind == SpecialStripedRow {
			for y := line.Y - 1; y <= line.Y+1; y++ {
				if y >= 0 && y < g.H {
					effects = append(effects, rowEffect(g, kind, line, y))
				}
			}
		} else {
			for x := line.X - 1; x <= line.X+1; x++ {
				if x >= 0 && x < g.W {
					effects = append(effects, columnEffect(g, kind, line, x))
				}
			}
		}
		return activation(g, SwapCombo, unionCells(consumed, effects), consumed, effects), true
	}
	return SwapOutcome{}, false
}

func activation(g *Grid, kind SwapKind, clear, consumed []Coord, effects []Effect) SwapOutcome {
	clear = unionCells(clear, nil)
	return SwapOutcome{
		Accepted: true,
		Kind:     kind,
		Grid:     g.Without(clear),
		Clear:    clear,
		Consumed: consumed,
		Effects:  effects,
		Points:   CascadeCellPoints * filledAmong(g, clear),
	}
}

// unionCells merges base with every effect's cells, dropping duplicates.
func unionCells(base []Coord, effects []Effect) []Coord {
	seen := make(map[Coord]bool)
	var out []Coord
	add := func(cells []Coord) {
		for _, c := range cells {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	add(base)
	for _, e := range effects {
		add(e.Cells)
	}
	return out
}
