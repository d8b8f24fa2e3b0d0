package core_test

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

func TestParseRows(t *testing.T) {
	g := mustGrid(t, []string{"RO.", "@*B", "YGP"})

	if g.W != 3 || g.H != 3 {
		t.Fatalf("expected 3x3 grid, got %dx%d", g.W, g.H)
	}
	if g.EmptyCount() != 1 {
		t.Errorf("expected 1 empty cell, got %d", g.EmptyCount())
	}
	if p, ok := g.Piece(core.C(0, 1)); !ok || p.Special != core.SpecialBomb || p.Color != core.ColorNone {
		t.Errorf("expected colorless bomb at (0,1), got %+v", p)
	}
	if p, _ := g.Piece(core.C(2, 2)); p.Color != core.ColorPurple {
		t.Errorf("expected purple at (2,2), got %v", p.Color)
	}
	if g.MaxID() != 8 {
		t.Errorf("expected max id 8, got %d", g.MaxID())
	}
	if got := g.String(); got != "RO.\n@*B\nYGP" {
		t.Errorf("unexpected String():\n%s", got)
	}
}

func TestParseRowsErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"ragged", []string{"RGB", "RG"}},
		{"bad char", []string{"RGX"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := core.ParseRows(tt.rows); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := mustGrid(t, baseRows)
	c := g.Clone()
	c.SetEmpty(core.C(0, 0))

	if !g.Get(core.C(0, 0)).Filled {
		t.Error("modifying clone changed the original")
	}
	if g.Equal(c) {
		t.Error("expected grids to differ")
	}
}

func TestGridJSONRoundTrip(t *testing.T) {
	g := mustGrid(t, []string{"R@.", "*GB", "YOP"})
	p, _ := g.Piece(core.C(1, 1))
	p.Special = core.SpecialStripedRow
	g.Set(core.C(1, 1), core.FilledCell(p))

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back core.Grid
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !g.Equal(&back) {
		t.Errorf("round trip mismatch:\n%s\nvs\n%s", g, &back)
	}
}

func TestSwappedLeavesOriginal(t *testing.T) {
	g := mustGrid(t, []string{"RGB", "YOP", "RGB"})
	s := g.Swapped(core.C(0, 0), core.C(1, 0))

	if p, _ := s.Piece(core.C(0, 0)); p.Color != core.ColorGreen {
		t.Errorf("expected green at (0,0) after swap, got %v", p.Color)
	}
	if p, _ := g.Piece(core.C(0, 0)); p.Color != core.ColorRed {
		t.Errorf("original changed: got %v", p.Color)
	}
}
