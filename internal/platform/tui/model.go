package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sweet-swap/internal/audio"
	"github.com/vovakirdan/sweet-swap/internal/core"
	"github.com/vovakirdan/sweet-swap/internal/registry"
	"github.com/vovakirdan/sweet-swap/internal/storage"
)

// GuestName is recorded on the leaderboard when no profile is active.
const GuestName = "guest"

// Player ties a running game to storage. All fields are optional.
type Player struct {
	Store   *storage.Store
	Profile *storage.Profile
	Cues    audio.Cues
	Logger  *log.Logger
}

func (p Player) name() string {
	if p.Profile != nil {
		return p.Profile.Name
	}
	return GuestName
}

// GameModel runs one game inside Bubble Tea. It persists progress into
// the player's profile after every resolved move and records the score
// when the game ends or the player leaves.
type GameModel struct {
	game       registry.Game
	player     Player
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for game. When resume is set and the
// profile holds a saved game, that game continues.
func NewGameModel(game registry.Game, player Player, cfg core.RuntimeConfig, resume bool) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if player.Cues == nil {
		player.Cues = audio.Muted{}
	}
	if resume && player.Profile != nil && player.Profile.Saved != nil {
		if r, ok := game.(registry.Resumable); ok {
			r.Resume(*player.Profile.Saved)
		}
	}

	return GameModel{
		game:       game,
		player:     player,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game only from a paused or finished screen; while
	// playing it cancels the current selection.
	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.leave()
		m.backToMenu = true
		return m, nil
	}
	if action == core.ActionRestart && !m.gameState.GameOver {
		return m, nil
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, cue := range result.Cues {
		m.player.Cues.Play(cue)
	}

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.recordScore()
		m.scoreSaved = true
		m.clearProgress()
	case m.gameState.Checkpoint:
		m.saveProgress()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// leave stores progress and, for an unfinished game with points, the score.
func (m *GameModel) leave() {
	if m.gameState.GameOver {
		return
	}
	m.saveProgress()
	m.recordScore()
}

func (m *GameModel) recordScore() {
	if m.scoreSaved || m.gameState.Score <= 0 {
		return
	}
	m.scoreSaved = true
	if m.player.Store == nil {
		return
	}
	if _, err := m.player.Store.SaveScore(m.game.ID(), m.player.name(), m.gameState.Score, m.gameState.Level); err != nil {
		m.warn("could not save score", err)
	}
}

func (m *GameModel) saveProgress() {
	if m.player.Store == nil || m.player.Profile == nil {
		return
	}
	r, ok := m.game.(registry.Resumable)
	if !ok {
		return
	}
	saved, ok := r.Save()
	if !ok {
		return
	}
	if err := m.player.Store.SaveState(m.player.Profile.ID, saved); err != nil {
		m.warn("could not save progress", err)
		return
	}
	m.player.Profile.Saved = &saved
}

func (m *GameModel) clearProgress() {
	if m.player.Store == nil || m.player.Profile == nil {
		return
	}
	if err := m.player.Store.ClearState(m.player.Profile.ID); err != nil {
		m.warn("could not clear progress", err)
		return
	}
	m.player.Profile.Saved = nil
}

func (m *GameModel) warn(msg string, err error) {
	if m.player.Logger != nil {
		m.player.Logger.Warn(msg, "player", m.player.name(), "mode", m.game.ID(), "error", err)
	}
}

// saveScreenshot writes the current screen as text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".sweetswap", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.warn("could not create screenshot directory", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.warn("could not save screenshot", err)
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays game in the local terminal until the player quits.
func Run(game registry.Game, player Player, cfg core.RuntimeConfig, resume bool) error {
	model := NewGameModel(game, player, cfg, resume)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
