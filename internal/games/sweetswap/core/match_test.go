package core_test

import (
	"testing"

	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		lengths []int
		axes    []core.Axis
	}{
		{
			name: "none",
			rows: []string{"RGB", "GBR", "BRG"},
		},
		{
			name:    "row of three",
			rows:    []string{"RRRG", "GBYB", "BYGY"},
			lengths: []int{3},
			axes:    []core.Axis{core.AxisHorizontal},
		},
		{
			name:    "row of four is one match",
			rows:    []string{"RRRR", "GBYB", "BYGY"},
			lengths: []int{4},
			axes:    []core.Axis{core.AxisHorizontal},
		},
		{
			name:    "column",
			rows:    []string{"RG", "RB", "RY", "GB"},
			lengths: []int{3},
			axes:    []core.Axis{core.AxisVertical},
		},
		{
			name:    "L shape gives two matches, horizontal first",
			rows:    []string{"RRR", "RGB", "RBG"},
			lengths: []int{3, 3},
			axes:    []core.Axis{core.AxisHorizontal, core.AxisVertical},
		},
		{
			name: "bomb and rainbow break runs",
			rows: []string{"RR@R", "G*GG", "BYBY"},
		},
		{
			name: "empty cells break runs",
			rows: []string{"RR.R", "GYGB", "BGBY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, tt.rows)
			matches := core.FindMatches(g)
			if len(matches) != len(tt.lengths) {
				t.Fatalf("expected %d matches, got %d: %+v", len(tt.lengths), len(matches), matches)
			}
			for i, m := range matches {
				if m.Len() != tt.lengths[i] {
					t.Errorf("match %d: expected length %d, got %d", i, tt.lengths[i], m.Len())
				}
				if m.Axis != tt.axes[i] {
					t.Errorf("match %d: expected axis %v, got %v", i, tt.axes[i], m.Axis)
				}
			}
		})
	}
}

func TestFindMatchesNoSubsets(t *testing.T) {
	g := mustGrid(t, []string{"RRRRR", "GBYOP", "BYOPG"})
	matches := core.FindMatches(g)

	if len(matches) != 1 {
		t.Fatalf("expected one maximal match, got %d", len(matches))
	}
	if matches[0].First() != core.C(0, 0) {
		t.Errorf("expected run to start at (0,0), got %v", matches[0].First())
	}
}

func TestFindMatchesDeterministic(t *testing.T) {
	g := mustGrid(t, []string{"RRRG", "RGBG", "RBYG", "OPOP"})
	a := core.FindMatches(g)
	b := core.FindMatches(g)

	if len(a) != len(b) {
		t.Fatalf("different match counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].First() != b[i].First() || a[i].Len() != b[i].Len() {
			t.Errorf("match %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestInRun(t *testing.T) {
	g := mustGrid(t, []string{"RRRG", "GBYB", "BYGY"})

	if !core.InRun(g, core.C(1, 0)) {
		t.Error("expected middle of run to be in run")
	}
	if core.InRun(g, core.C(3, 0)) {
		t.Error("expected (3,0) not to be in a run")
	}
}
