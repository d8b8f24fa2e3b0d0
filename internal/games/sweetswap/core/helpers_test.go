package core_test

import (
	"testing"

	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

// seqPicker returns a fixed sequence of palette indexes, wrapping around.
type seqPicker struct {
	vals []int
	i    int
}

func (p *seqPicker) Intn(n int) int {
	v := p.vals[p.i%len(p.vals)]
	p.i++
	return v % n
}

// Palette indexes in core.DefaultPalette order.
const (
	idxRed = iota
	idxOrange
	idxYellow
	idxGreen
	idxBlue
	idxPurple
)

// baseRows is a match-free 8x8 board with a few overrides that set up
// swaps in row 0:
//
//	(2,0)<->(2,1) makes a red run at x=0..2
//	(5,0)<->(5,1) makes a red run at x=5..7
var baseRows = []string{
	"RRYGBPRR",
	"YGRPRRYG",
	"BPROYGBP",
	"ROYGBPRO",
	"YGBPROYG",
	"BPROYGBP",
	"ROYGBPRO",
	"YGBPROYG",
}

func mustGrid(t *testing.T, rows []string) *core.Grid {
	t.Helper()
	g, err := core.ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}
	return g
}

func withRow0(row string) []string {
	rows := append([]string(nil), baseRows...)
	rows[0] = row
	return rows
}

func restore(t *testing.T, rows []string, score, level, moves int, picker core.Picker) *core.Session {
	t.Helper()
	s, err := core.Restore(core.DefaultRules(), core.SavedState{
		Board:     mustGrid(t, rows),
		Score:     score,
		Level:     level,
		MovesLeft: moves,
	}, picker)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	return s
}

func assertAtRest(t *testing.T, g *core.Grid) {
	t.Helper()
	if n := g.EmptyCount(); n != 0 {
		t.Errorf("expected full board, got %d empty cells\n%s", n, g)
	}
	if m := core.FindMatches(g); len(m) != 0 {
		t.Errorf("expected no matches at rest, got %d\n%s", len(m), g)
	}
}

func countSpecial(g *core.Grid, kind core.Special) int {
	n := 0
	for _, cell := range g.Cells {
		if cell.Filled && cell.Piece.Special == kind {
			n++
		}
	}
	return n
}

func place(g *core.Grid, c core.Coord, color core.Color, kind core.Special) {
	p, _ := g.Piece(c)
	p.Color = color
	p.Special = kind
	if kind.Colorless() {
		p.Color = core.ColorNone
	}
	g.Set(c, core.FilledCell(p))
}
