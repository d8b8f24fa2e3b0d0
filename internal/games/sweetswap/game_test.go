package sweetswap

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/sweet-swap/internal/audio"
	"github.com/vovakirdan/sweet-swap/internal/config"
	"github.com/vovakirdan/sweet-swap/internal/core"
	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap/boards"
	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
	"github.com/vovakirdan/sweet-swap/internal/registry"
)

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
}

// isolate keeps user and local config files out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")
	SetStartLevel(0)
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
		SetStartLevel(0)
	})
}

func newBoardGame(t *testing.T, id string) *Game {
	t.Helper()
	b, err := boards.Lookup(id)
	if err != nil {
		t.Fatal(err)
	}
	g := NewWithBoard(b)
	g.Reset(runtimeConfig())
	if g.Err() != nil {
		t.Fatalf("unexpected config error: %v", g.Err())
	}
	return g
}

// settle steps until playback ends, collecting cues.
func settle(t *testing.T, g *Game) ([]string, bool) {
	t.Helper()
	var cues []string
	checkpoint := false
	for i := 0; i < 200 && g.Busy(); i++ {
		res := g.Step(frame())
		cues = append(cues, res.Cues...)
		checkpoint = checkpoint || res.State.Checkpoint
	}
	if g.Busy() {
		t.Fatal("playback did not finish")
	}
	return cues, checkpoint
}

func TestRegisteredModes(t *testing.T) {
	if !registry.Exists(ClassicID) {
		t.Fatal("classic mode not registered")
	}
	all, err := boards.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range all {
		if !registry.Exists(b.ID) {
			t.Errorf("board %s not registered", b.ID)
		}
	}
}

func TestClassicReset(t *testing.T) {
	isolate(t)
	SetStartLevel(3)

	g := New()
	g.Reset(runtimeConfig())

	st := g.State()
	if st.Level != 3 || st.Score != 0 || st.GameOver {
		t.Errorf("unexpected state %+v", st)
	}
	snap, ok := g.Snapshot()
	if !ok {
		t.Fatal("expected snapshot")
	}
	if snap.MovesLeft != 28 {
		t.Errorf("expected 28 moves at level 3, got %d", snap.MovesLeft)
	}
	if len(engine.FindMatches(snap.Board)) != 0 {
		t.Error("new board has matches")
	}
}

func TestSwapPlaysBackSteps(t *testing.T) {
	isolate(t)
	g := newBoardGame(t, "first-match")

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRight))
	if g.cursor != engine.C(2, 0) {
		t.Fatalf("expected cursor at (2,0), got %v", g.cursor)
	}
	res := g.Step(frame(core.ActionSelect))
	if !slices.Contains(res.Cues, audio.CueClick) {
		t.Errorf("expected click cue, got %v", res.Cues)
	}

	res = g.Step(frame(core.ActionDown))
	if !slices.Contains(res.Cues, audio.CueSwapSuccess) {
		t.Errorf("expected swap success cue, got %v", res.Cues)
	}
	if !g.Busy() {
		t.Fatal("expected playback to be pending")
	}
	if res.State.Score != 30 {
		t.Errorf("score is applied on acceptance, got %d", res.State.Score)
	}

	// Input during playback is ignored.
	g.Step(frame(core.ActionLeft))
	if g.cursor != engine.C(2, 1) {
		t.Errorf("cursor moved during playback: %v", g.cursor)
	}

	cues, checkpoint := settle(t, g)
	if !slices.Contains(cues, audio.CueMatch) {
		t.Errorf("expected match cue, got %v", cues)
	}
	if !checkpoint {
		t.Error("expected checkpoint when the move finished")
	}

	snap, _ := g.Snapshot()
	if snap.Score != 30 || snap.MovesLeft != 29 {
		t.Errorf("expected score 30 and 29 moves, got %d and %d", snap.Score, snap.MovesLeft)
	}
	if !g.shown.Equal(snap.Board) {
		t.Error("displayed board differs from session board after playback")
	}
}

func TestRejectedSwapShakes(t *testing.T) {
	isolate(t)
	g := newBoardGame(t, "first-match")

	tests := []struct {
		name string
		dir  core.Action
	}{
		{"same color neighbor", core.ActionRight},
		{"off the board", core.ActionUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Step(frame(core.ActionSelect))
			res := g.Step(frame(tt.dir))
			if !slices.Contains(res.Cues, audio.CueSwapFail) {
				t.Errorf("expected swap fail cue, got %v", res.Cues)
			}
			if g.shake == 0 {
				t.Error("expected shake")
			}
			if g.selected || g.Busy() {
				t.Error("rejected swap should drop the selection")
			}
			if snap, _ := g.Snapshot(); snap.MovesLeft != 30 {
				t.Errorf("rejected swap used a move: %d left", snap.MovesLeft)
			}
		})
	}
}

func TestBackCancelsSelection(t *testing.T) {
	isolate(t)
	g := newBoardGame(t, "first-match")

	g.Step(frame(core.ActionSelect))
	g.Step(frame(core.ActionBack))
	g.Step(frame(core.ActionDown))
	if g.cursor != engine.C(0, 1) {
		t.Errorf("expected plain cursor move after cancel, got %v", g.cursor)
	}
}

func TestZeroPacingResolvesImmediately(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "fast.yaml")
	if err := os.WriteFile(path, []byte("pacing:\n  step_ticks: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)

	g := newBoardGame(t, "first-match")
	g.cursor = engine.C(2, 0)
	g.Step(frame(core.ActionSelect))
	res := g.Step(frame(core.ActionDown))

	if g.Busy() {
		t.Fatal("expected no pending playback")
	}
	if !res.State.Checkpoint {
		t.Error("expected checkpoint on the same tick")
	}
	if !slices.Contains(res.Cues, audio.CueMatch) {
		t.Errorf("expected match cue, got %v", res.Cues)
	}
}

func TestResumeAndLevelUp(t *testing.T) {
	isolate(t)
	board, err := engine.ParseRows([]string{
		"RRYGBPRR", "YGRPRRYG", "BPROYGBP", "ROYGBPRO",
		"YGBPROYG", "BPROYGBP", "ROYGBPRO", "YGBPROYG",
	})
	if err != nil {
		t.Fatal(err)
	}

	g := New()
	g.Resume(engine.SavedState{Board: board, Score: 600, Level: 1, MovesLeft: 5})
	g.Reset(runtimeConfig())

	if !g.sess.LevelComplete() {
		t.Fatal("expected level complete after resume")
	}
	// Swaps are blocked until the level is advanced.
	g.Step(frame(core.ActionDown))
	if g.cursor != engine.C(0, 0) {
		t.Error("cursor moved while level complete")
	}

	res := g.Step(frame(core.ActionConfirm))
	if !slices.Contains(res.Cues, audio.CueLevelUp) {
		t.Errorf("expected level up cue, got %v", res.Cues)
	}
	if res.State.Level != 2 || res.State.Score != 600 || !res.State.Checkpoint {
		t.Errorf("unexpected state after level up %+v", res.State)
	}

	// Resume is used once; a restart starts fresh.
	g.Reset(runtimeConfig())
	if g.State().Score != 0 {
		t.Error("restart should not resume again")
	}
}

func TestResumeGameOver(t *testing.T) {
	isolate(t)
	board, _ := engine.ParseRows([]string{"RGB", "GBR", "BRG"})

	g := New()
	g.Resume(engine.SavedState{Board: board, Score: 100, Level: 1, MovesLeft: 0})
	g.Reset(runtimeConfig())

	if !g.State().GameOver {
		t.Error("expected game over for a saved game with no moves")
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("expected game over overlay")
	}
}

func TestPauseToggle(t *testing.T) {
	isolate(t)
	g := newBoardGame(t, "first-match")

	if !g.Step(frame(core.ActionPause)).State.Paused {
		t.Fatal("expected paused")
	}
	g.Step(frame(core.ActionRight))
	if g.cursor != engine.C(0, 0) {
		t.Error("input handled while paused")
	}
	if g.Step(frame(core.ActionPause)).State.Paused {
		t.Error("expected resumed")
	}
}

func TestRender(t *testing.T) {
	isolate(t)
	g := newBoardGame(t, "first-match")

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"SWEET SWAP", "Score 0/500", "Moves 30", "First Match"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	g.Resize(30, 5)
	small := core.NewScreen(30, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Errorf("expected too small message, got:\n%s", small.String())
	}
	if !g.Step(frame()).State.Paused {
		t.Error("too small window should pause")
	}
}

func TestRulesFromConfig(t *testing.T) {
	rules, err := RulesFromConfig(config.DefaultSweetSwapConfig())
	if err != nil {
		t.Fatalf("RulesFromConfig() failed: %v", err)
	}
	def := engine.DefaultRules()
	if rules.Width != def.Width || rules.BaseMoves != def.BaseMoves || rules.RainbowLevel != def.RainbowLevel {
		t.Errorf("default config does not match default rules: %+v", rules)
	}
	if !slices.Equal(rules.Palette, def.Palette) {
		t.Errorf("palette mismatch: %v", rules.Palette)
	}

	cfg := config.DefaultSweetSwapConfig()
	cfg.Board.Palette = []string{"red", "blue", "teal"}
	if _, err := RulesFromConfig(cfg); err == nil {
		t.Error("expected error for unknown color")
	}
}

func TestLoadRulesPreset(t *testing.T) {
	isolate(t)
	_, rules, err := LoadRules("", "easy")
	if err != nil {
		t.Fatal(err)
	}
	if rules.MovesForLevel(1) != 40 {
		t.Errorf("expected 40 moves on easy, got %d", rules.MovesForLevel(1))
	}
	if _, _, err := LoadRules("", "brutal"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
