package main

import (
	"encoding/json"
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

func runSeeded(t *testing.T, seed int64, swaps int) (*engine.Session, int) {
	t.Helper()
	sess, err := engine.NewSession(engine.DefaultRules(), 1, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return sess, simulate(sess, swaps, log.New(io.Discard))
}

func TestSimulateIsDeterministic(t *testing.T) {
	a, playedA := runSeeded(t, 42, 10)
	b, playedB := runSeeded(t, 42, 10)

	if playedA != playedB {
		t.Fatalf("played %d vs %d swaps", playedA, playedB)
	}
	ja, err := json.Marshal(a.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	jb, err := json.Marshal(b.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if string(ja) != string(jb) {
		t.Error("same seed produced different games")
	}
}

func TestSimulateStopsAtLimit(t *testing.T) {
	sess, played := runSeeded(t, 7, 3)
	if played > 3 {
		t.Fatalf("played %d swaps, limit was 3", played)
	}
	if played == 0 {
		if _, _, ok := engine.FirstLegalSwap(sess.Grid()); ok {
			t.Fatal("stopped with a legal swap still on the board")
		}
		return
	}
	if sess.Level() == 1 && sess.MovesRemaining() != engine.DefaultRules().MovesForLevel(1)-played {
		t.Errorf("moves left = %d after %d swaps", sess.MovesRemaining(), played)
	}
}
