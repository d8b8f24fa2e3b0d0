package core_test

import (
	"testing"

	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

func coordSet(cs []core.Coord) map[core.Coord]bool {
	m := make(map[core.Coord]bool, len(cs))
	for _, c := range cs {
		m[c] = true
	}
	return m
}

func TestCascadePlainCells(t *testing.T) {
	g := mustGrid(t, baseRows)
	initial := []core.Coord{core.C(0, 0), core.C(1, 0)}

	res := core.Cascade(g, initial, core.DefaultPalette())
	if len(res.Cleared) != 2 {
		t.Errorf("expected 2 cleared cells, got %d", len(res.Cleared))
	}
	if len(res.Effects) != 0 {
		t.Errorf("expected no effects, got %d", len(res.Effects))
	}
}

func TestCascadeStripedRow(t *testing.T) {
	g := mustGrid(t, baseRows)
	place(g, core.C(1, 3), core.ColorOrange, core.SpecialStripedRow)

	res := core.Cascade(g, []core.Coord{core.C(1, 3)}, core.DefaultPalette())
	set := coordSet(res.Cleared)
	for x := 0; x < g.W; x++ {
		if !set[core.C(x, 3)] {
			t.Errorf("expected (%d,3) cleared", x)
		}
	}
	if len(res.Cleared) != g.W {
		t.Errorf("expected %d cleared, got %d", g.W, len(res.Cleared))
	}
	if len(res.Effects) != 1 || res.Effects[0].Kind != core.EffectRowClear || res.Effects[0].Index != 3 {
		t.Errorf("unexpected effects: %+v", res.Effects)
	}
}

func TestCascadeChainsSpecials(t *testing.T) {
	g := mustGrid(t, baseRows)
	// Row stripe in row 3 hits a column stripe in column 6.
	place(g, core.C(0, 3), core.ColorRed, core.SpecialStripedRow)
	place(g, core.C(6, 3), core.ColorRed, core.SpecialStripedColumn)

	res := core.Cascade(g, []core.Coord{core.C(0, 3)}, core.DefaultPalette())
	set := coordSet(res.Cleared)
	if !set[core.C(6, 0)] || !set[core.C(6, 7)] {
		t.Error("expected column 6 to be cleared by the chained stripe")
	}
	if len(res.Cleared) != g.W+g.H-1 {
		t.Errorf("expected %d cleared, got %d", g.W+g.H-1, len(res.Cleared))
	}
	if len(res.Effects) != 2 {
		t.Fatalf("expected 2 effects, got %d", len(res.Effects))
	}
	if res.Effects[1].Kind != core.EffectColumnClear || res.Effects[1].Index != 6 {
		t.Errorf("unexpected second effect: %+v", res.Effects[1])
	}
}

func TestCascadeWrappedClearsColor(t *testing.T) {
	g := mustGrid(t, baseRows)
	place(g, core.C(3, 3), core.ColorGreen, core.SpecialWrapped)

	res := core.Cascade(g, []core.Coord{core.C(3, 3)}, core.DefaultPalette())
	greens := g.CoordsWithColor(core.ColorGreen)
	if len(res.Cleared) != len(greens) {
		t.Errorf("expected %d cleared, got %d", len(greens), len(res.Cleared))
	}
	for _, c := range res.Cleared {
		if p, _ := g.Piece(c); p.Color != core.ColorGreen {
			t.Errorf("cleared non-green piece at %v", c)
		}
	}
}

func TestCascadeBombClearsDominantColor(t *testing.T) {
	g := mustGrid(t, []string{
		"RRGB",
		"G@YR",
		"RBYG",
	})

	res := core.Cascade(g, []core.Coord{core.C(1, 1)}, core.DefaultPalette())
	if len(res.Effects) != 1 || res.Effects[0].Color != core.ColorRed {
		t.Fatalf("expected red color-clear, got %+v", res.Effects)
	}
	// Four reds plus the bomb itself.
	if len(res.Cleared) != 5 {
		t.Errorf("expected 5 cleared, got %d", len(res.Cleared))
	}
}

func TestCascadeRainbowClearsAll(t *testing.T) {
	g := mustGrid(t, baseRows)
	place(g, core.C(4, 4), core.ColorNone, core.SpecialRainbow)

	res := core.Cascade(g, []core.Coord{core.C(4, 4)}, core.DefaultPalette())
	if len(res.Cleared) != g.W*g.H {
		t.Errorf("expected full clear, got %d", len(res.Cleared))
	}
}

func TestCascadeConsumedDoesNotFire(t *testing.T) {
	g := mustGrid(t, baseRows)
	place(g, core.C(1, 3), core.ColorOrange, core.SpecialStripedRow)

	res := core.Cascade(g, []core.Coord{core.C(1, 3)}, core.DefaultPalette(), core.C(1, 3))
	if len(res.Cleared) != 1 || len(res.Effects) != 0 {
		t.Errorf("expected consumed stripe to stay quiet, got %d cleared, %d effects", len(res.Cleared), len(res.Effects))
	}
}

func TestDominantColorTieGoesToPaletteOrder(t *testing.T) {
	g := mustGrid(t, []string{"GR", "RG"})
	if c := core.DominantColor(g, core.DefaultPalette()); c != core.ColorRed {
		t.Errorf("expected red on tie, got %v", c)
	}
}
