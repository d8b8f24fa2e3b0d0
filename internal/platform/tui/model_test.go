package tui

import (
	"path/filepath"
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sweet-swap/internal/core"
	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
	"github.com/vovakirdan/sweet-swap/internal/registry"
	"github.com/vovakirdan/sweet-swap/internal/storage"
)

const stubModeID = "tui-stub"

func init() {
	registry.Register(stubModeID, func() registry.Game { return &stubGame{} })
}

// stubGame reports whatever state the test puts into it.
type stubGame struct {
	state   core.GameState
	cues    []string
	saved   engine.SavedState
	resumed *engine.SavedState
	resets  int
	resized bool
	inputs  []core.InputFrame
}

func (g *stubGame) ID() string    { return stubModeID }
func (g *stubGame) Title() string { return "Stub board" }

func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in)
	return core.StepResult{State: g.state, Cues: g.cues}
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState   { return g.state }

func (g *stubGame) Save() (engine.SavedState, bool)  { return g.saved, true }
func (g *stubGame) Resume(saved engine.SavedState) { g.resumed = &saved }
func (g *stubGame) Resize(int, int)                { g.resized = true }

type cueRecorder struct{ played []string }

func (r *cueRecorder) Play(cue string) { r.played = append(r.played, cue) }
func (r *cueRecorder) Close()          {}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
}

func newTestPlayer(t *testing.T) Player {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	profile, err := store.CreateProfile("ada", "*")
	if err != nil {
		t.Fatalf("CreateProfile() failed: %v", err)
	}
	return Player{Store: store, Profile: &profile}
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return gm
}

func press(t *testing.T, m GameModel, msg tea.KeyMsg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func TestGameModelCheckpointSavesProgress(t *testing.T) {
	player := newTestPlayer(t)
	game := &stubGame{
		state: core.GameState{Score: 40, Level: 2, Checkpoint: true},
		saved: engine.SavedState{Score: 40, Level: 2, MovesLeft: 12},
	}
	m := NewGameModel(game, player, testConfig(), false)
	m.Init()

	tick(t, m)

	p, err := player.Store.Profile(player.Profile.ID)
	if err != nil {
		t.Fatalf("Profile() failed: %v", err)
	}
	if p.Saved == nil || p.Saved.MovesLeft != 12 || p.Saved.Level != 2 {
		t.Fatalf("expected saved progress, got %+v", p.Saved)
	}
	if player.Profile.Saved == nil {
		t.Error("in-memory profile should see the saved game")
	}
}

func TestGameModelGameOverRecordsScoreOnce(t *testing.T) {
	player := newTestPlayer(t)
	if err := player.Store.SaveState(player.Profile.ID, engine.SavedState{Score: 5, Level: 1}); err != nil {
		t.Fatal(err)
	}
	saved := engine.SavedState{Score: 5, Level: 1}
	player.Profile.Saved = &saved

	game := &stubGame{state: core.GameState{Score: 120, Level: 3, GameOver: true}}
	m := NewGameModel(game, player, testConfig(), false)
	m.Init()

	m = tick(t, m)
	m = tick(t, m)

	scores, err := player.Store.TopScores(stubModeID, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected one score, got %d", len(scores))
	}
	if scores[0].Name != "ada" || scores[0].Score != 120 || scores[0].Level != 3 {
		t.Errorf("unexpected entry %+v", scores[0])
	}

	p, err := player.Store.Profile(player.Profile.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Saved != nil {
		t.Error("a finished game should clear saved progress")
	}
	if !m.State().GameOver {
		t.Error("model should report game over")
	}
}

func TestGameModelGuestScore(t *testing.T) {
	player := newTestPlayer(t)
	player.Profile = nil

	game := &stubGame{state: core.GameState{Score: 30, Level: 1, GameOver: true}}
	m := NewGameModel(game, player, testConfig(), false)
	tick(t, m)

	scores, err := player.Store.TopScores(stubModeID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Name != GuestName {
		t.Fatalf("expected a guest score, got %+v", scores)
	}
}

func TestGameModelPlaysCues(t *testing.T) {
	rec := &cueRecorder{}
	game := &stubGame{cues: []string{"match", "chain"}}
	m := NewGameModel(game, Player{Cues: rec}, testConfig(), false)

	tick(t, m)

	if !slices.Equal(rec.played, []string{"match", "chain"}) {
		t.Errorf("played %v", rec.played)
	}
}

func TestGameModelResume(t *testing.T) {
	player := newTestPlayer(t)
	saved := engine.SavedState{Score: 70, Level: 4, MovesLeft: 3}
	player.Profile.Saved = &saved

	tests := []struct {
		name   string
		resume bool
	}{
		{"continue", true},
		{"new game", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &stubGame{}
			NewGameModel(game, player, testConfig(), tt.resume)
			if (game.resumed != nil) != tt.resume {
				t.Fatalf("resumed = %v, want %v", game.resumed != nil, tt.resume)
			}
			if tt.resume && game.resumed.Level != 4 {
				t.Errorf("resumed level %d", game.resumed.Level)
			}
		})
	}
}

func TestGameModelBackLeavesOnlyWhenStopped(t *testing.T) {
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	game := &stubGame{}
	m := NewGameModel(game, Player{}, testConfig(), false)
	m = tick(t, m)
	m = press(t, m, esc)
	if m.BackToMenu() {
		t.Fatal("esc while playing should not leave")
	}
	m = tick(t, m)
	if last := game.inputs[len(game.inputs)-1]; !last.Has(core.ActionBack) {
		t.Error("esc while playing should reach the game")
	}

	game.state.Paused = true
	m = tick(t, m)
	m = press(t, m, esc)
	if !m.BackToMenu() {
		t.Error("esc while paused should leave")
	}
}

func TestGameModelLeaveSavesProgress(t *testing.T) {
	player := newTestPlayer(t)
	game := &stubGame{
		state: core.GameState{Score: 25, Level: 1},
		saved: engine.SavedState{Score: 25, Level: 1, MovesLeft: 20},
	}
	m := NewGameModel(game, player, testConfig(), false)
	m = tick(t, m)
	m = press(t, m, runes("q"))

	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	scores, err := player.Store.TopScores(stubModeID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 25 {
		t.Errorf("expected the unfinished score, got %+v", scores)
	}
	p, err := player.Store.Profile(player.Profile.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Saved == nil || p.Saved.MovesLeft != 20 {
		t.Errorf("expected progress saved on quit, got %+v", p.Saved)
	}
}

func TestGameModelRestartOnlyAfterGameOver(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, Player{}, testConfig(), false)
	m.Init()
	m = tick(t, m)

	m = press(t, m, runes("r"))
	m = tick(t, m)
	if game.resets != 1 {
		t.Fatalf("restart while playing reset the game (%d resets)", game.resets)
	}

	game.state.GameOver = true
	m = tick(t, m)
	m = press(t, m, runes("r"))
	tick(t, m)
	if game.resets != 2 {
		t.Errorf("expected restart after game over, got %d resets", game.resets)
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, Player{}, testConfig(), false)
	m.Init()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	_ = next.(GameModel)

	if !game.resized {
		t.Error("expected Resize to be called")
	}
	if game.resets != 1 {
		t.Errorf("resize should not reset, got %d resets", game.resets)
	}
}

func TestSessionModelFlow(t *testing.T) {
	player := newTestPlayer(t)
	var s tea.Model = NewSessionModel(player, testConfig())

	send := func(msg tea.Msg) {
		t.Helper()
		s, _ = s.Update(msg)
	}
	active := func() sessionScreen { return s.(SessionModel).active() }

	send(tea.KeyMsg{Type: tea.KeyTab})
	if active() != screenScoreboard {
		t.Fatalf("tab should open the scoreboard, got %v", active())
	}
	send(tea.KeyMsg{Type: tea.KeyEsc})
	if active() != screenMenu {
		t.Fatalf("esc should return to the menu, got %v", active())
	}

	// Walk to the stub mode; registered modes are sorted by ID.
	menu := s.(SessionModel).menu
	idx := slices.IndexFunc(menu.items, func(it MenuItem) bool { return it.GameID == stubModeID })
	if idx < 0 {
		t.Fatal("stub mode missing from the menu")
	}
	for range idx {
		send(tea.KeyMsg{Type: tea.KeyDown})
	}
	send(tea.KeyMsg{Type: tea.KeyEnter})
	if active() != screenGame {
		t.Fatalf("enter should start the game, got %v", active())
	}

	send(runes("q"))
	if !s.(SessionModel).quitting {
		t.Error("q in game should end the session")
	}
}

func TestMenuContinueEntry(t *testing.T) {
	player := newTestPlayer(t)

	m := NewMenuModel(player.Profile, testConfig())
	if len(m.items) > 0 && m.items[0].Resume {
		t.Fatal("no saved game, no continue entry")
	}

	player.Profile.Saved = &engine.SavedState{Score: 90, Level: 2}
	m = NewMenuModel(player.Profile, testConfig())
	if len(m.items) == 0 || !m.items[0].Resume || m.items[0].GameID != ContinueModeID {
		t.Fatalf("expected continue entry first, got %+v", m.items)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if sel := m.Selected(); sel == nil || !sel.Resume {
		t.Errorf("expected continue selected, got %+v", sel)
	}
}

func TestScoreboardSwitchesModes(t *testing.T) {
	player := newTestPlayer(t)
	if _, err := player.Store.SaveScore(stubModeID, "ada", 300, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := player.Store.SaveScore("other", "bob", 100, 1); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(player.Store, 100, 30)
	if len(m.scores) != 2 {
		t.Fatalf("all boards should list both scores, got %d", len(m.scores))
	}

	idx := slices.IndexFunc(m.modes, func(g registry.GameInfo) bool { return g.ID == stubModeID })
	for range idx {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(ScoreboardModel)
	}
	if len(m.scores) != 1 || m.scores[0].Name != "ada" {
		t.Errorf("expected only the stub board score, got %+v", m.scores)
	}
}
