package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

func TestEvaluateSwapOrdinary(t *testing.T) {
	g := mustGrid(t, baseRows)

	out, err := core.EvaluateSwap(g, core.C(2, 0), core.C(2, 1))
	if err != nil {
		t.Fatalf("EvaluateSwap failed: %v", err)
	}
	if !out.Accepted || out.Kind != core.SwapOrdinary {
		t.Fatalf("expected accepted ordinary swap, got %+v", out)
	}
	if !core.InRun(out.Grid, core.C(2, 0)) && !core.InRun(out.Grid, core.C(2, 1)) {
		t.Error("accepted swap does not form a run at either cell")
	}
	if p, _ := g.Piece(core.C(2, 0)); p.Color != core.ColorYellow {
		t.Error("EvaluateSwap modified the input grid")
	}
}

func TestEvaluateSwapRejected(t *testing.T) {
	g := mustGrid(t, baseRows)
	g.SetEmpty(core.C(7, 7))

	tests := []struct {
		name string
		a, b core.Coord
	}{
		{"no match", core.C(0, 3), core.C(1, 3)},
		{"not adjacent", core.C(2, 0), core.C(2, 2)},
		{"diagonal", core.C(1, 0), core.C(2, 1)},
		{"same cell", core.C(2, 0), core.C(2, 0)},
		{"into empty", core.C(6, 7), core.C(7, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := core.EvaluateSwap(g, tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Accepted || out.Kind != core.SwapRejected {
				t.Errorf("expected rejection, got %+v", out.Kind)
			}
		})
	}
}

func TestEvaluateSwapOutOfBounds(t *testing.T) {
	g := mustGrid(t, baseRows)
	_, err := core.EvaluateSwap(g, core.C(7, 0), core.C(8, 0))
	if !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestEvaluateSwapSpecials(t *testing.T) {
	tests := []struct {
		name    string
		a, b    core.Coord
		setup   func(g *core.Grid)
		kind    core.SwapKind
		cleared int
		check   func(t *testing.T, out core.SwapOutcome)
	}{
		{
			name: "bomb and bomb clear everything",
			a:    core.C(3, 3), b: core.C(4, 3),
			setup: func(g *core.Grid) {
				place(g, core.C(3, 3), core.ColorNone, core.SpecialBomb)
				place(g, core.C(4, 3), core.ColorNone, core.SpecialBomb)
			},
			kind:    core.SwapCombo,
			cleared: 64,
		},
		{
			name: "rainbow and bomb clear everything",
			a:    core.C(3, 3), b: core.C(3, 4),
			setup: func(g *core.Grid) {
				place(g, core.C(3, 3), core.ColorNone, core.SpecialRainbow)
				place(g, core.C(3, 4), core.ColorNone, core.SpecialBomb)
			},
			kind:    core.SwapCombo,
			cleared: 64,
		},
		{
			name: "two stripes clear row and column through first cell",
			a:    core.C(3, 3), b: core.C(4, 3),
			setup: func(g *core.Grid) {
				place(g, core.C(3, 3), core.ColorGreen, core.SpecialStripedColumn)
				place(g, core.C(4, 3), core.ColorBlue, core.SpecialStripedColumn)
			},
			kind:    core.SwapCombo,
			cleared: 15,
			check: func(t *testing.T, out core.SwapOutcome) {
				set := coordSet(out.Clear)
				if !set[core.C(0, 3)] || !set[core.C(3, 0)] || !set[core.C(3, 7)] {
					t.Error("expected row 3 and column 3 cleared")
				}
				if set[core.C(4, 0)] {
					t.Error("column 4 should not be cleared")
				}
			},
		},
		{
			name: "row stripe and bomb clear three rows",
			a:    core.C(3, 0), b: core.C(3, 1),
			setup: func(g *core.Grid) {
				place(g, core.C(3, 0), core.ColorNone, core.SpecialBomb)
				place(g, core.C(3, 1), core.ColorRed, core.SpecialStripedRow)
			},
			kind:    core.SwapCombo,
			cleared: 24,
			check: func(t *testing.T, out core.SwapOutcome) {
				set := coordSet(out.Clear)
				for y := 0; y <= 2; y++ {
					if !set[core.C(5, y)] {
						t.Errorf("expected row %d cleared", y)
					}
				}
				if len(out.Effects) != 3 {
					t.Errorf("expected 3 row effects, got %d", len(out.Effects))
				}
			},
		},
		{
			name: "column stripe and bomb at edge clear two columns",
			a:    core.C(0, 4), b: core.C(1, 4),
			setup: func(g *core.Grid) {
				place(g, core.C(0, 4), core.ColorRed, core.SpecialStripedColumn)
				place(g, core.C(1, 4), core.ColorNone, core.SpecialBomb)
			},
			kind:    core.SwapCombo,
			cleared: 16,
		},
		{
			name: "rainbow with plain piece clears everything",
			a:    core.C(2, 2), b: core.C(2, 3),
			setup: func(g *core.Grid) {
				place(g, core.C(2, 2), core.ColorNone, core.SpecialRainbow)
			},
			kind:    core.SwapRainbow,
			cleared: 64,
		},
		{
			name: "bomb clears other color plus itself",
			a:    core.C(0, 3), b: core.C(0, 4),
			setup: func(g *core.Grid) {
				place(g, core.C(0, 3), core.ColorNone, core.SpecialBomb)
			},
			kind: core.SwapBomb,
			check: func(t *testing.T, out core.SwapOutcome) {
				if left := out.Grid.CoordsWithColor(core.ColorYellow); len(left) != 0 {
					t.Errorf("yellow left at %v", left)
				}
				if len(out.Effects) != 1 || out.Effects[0].Color != core.ColorYellow {
					t.Errorf("expected yellow color-clear, got %+v", out.Effects)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, baseRows)
			tt.setup(g)

			out, err := core.EvaluateSwap(g, tt.a, tt.b)
			if err != nil {
				t.Fatalf("EvaluateSwap failed: %v", err)
			}
			if !out.Accepted || out.Kind != tt.kind {
				t.Fatalf("expected accepted %v, got accepted=%v %v", tt.kind, out.Accepted, out.Kind)
			}
			if tt.cleared > 0 && len(out.Clear) != tt.cleared {
				t.Errorf("expected %d cleared, got %d", tt.cleared, len(out.Clear))
			}
			set := coordSet(out.Clear)
			if !set[tt.a] && out.Kind == core.SwapCombo {
				t.Error("combo must clear the first swapped cell")
			}
			for c := range set {
				if out.Grid.Get(c).Filled {
					t.Errorf("cell %v should be empty in the result grid", c)
				}
			}
			if out.Points != core.CascadeCellPoints*len(out.Clear) {
				t.Errorf("expected %d points, got %d", core.CascadeCellPoints*len(out.Clear), out.Points)
			}
			if tt.check != nil {
				tt.check(t, out)
			}
		})
	}
}

func TestEvaluateSwapWrappedPairFallsThrough(t *testing.T) {
	g := mustGrid(t, baseRows)
	place(g, core.C(0, 3), core.ColorRed, core.SpecialWrapped)
	place(g, core.C(1, 3), core.ColorOrange, core.SpecialWrapped)

	out, err := core.EvaluateSwap(g, core.C(0, 3), core.C(1, 3))
	if err != nil {
		t.Fatalf("EvaluateSwap failed: %v", err)
	}
	if out.Accepted {
		t.Errorf("expected wrapped pair without a run to be rejected, got %v", out.Kind)
	}
}

func TestEvaluateSwapBombWithWrapped(t *testing.T) {
	g := mustGrid(t, baseRows)
	place(g, core.C(0, 3), core.ColorNone, core.SpecialBomb)
	place(g, core.C(1, 3), core.ColorRed, core.SpecialWrapped)
	out, err := core.EvaluateSwap(g, core.C(0, 3), core.C(1, 3))
	if err != nil {
		t.Fatalf("EvaluateSwap failed: %v", err)
	}
	if out.Kind != core.SwapBomb || out.Effects[0].Color != core.ColorRed {
		t.Errorf("expected red bomb activation, got %v %+v", out.Kind, out.Effects)
	}
}

func TestFirstLegalSwap(t *testing.T) {
	a, b, ok := core.FirstLegalSwap(mustGrid(t, baseRows))
	if !ok {
		t.Fatal("expected a legal swap")
	}
	if a != core.C(1, 0) || b != core.C(2, 0) {
		t.Errorf("FirstLegalSwap = %v, %v; want (1,0), (2,0)", a, b)
	}

	if _, _, ok := core.FirstLegalSwap(mustGrid(t, []string{"RGB", "YRG", "BYR"})); ok {
		t.Error("a board without legal swaps reported one")
	}
}
