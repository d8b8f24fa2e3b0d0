// Package sweetswap is the terminal front end of the Sweet Swap puzzle.
// It drives an engine session from platform input frames and plays each
// resolved move back one step at a time.
package sweetswap

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/sweet-swap/internal/audio"
	"github.com/vovakirdan/sweet-swap/internal/config"
	"github.com/vovakirdan/sweet-swap/internal/core"
	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap/boards"
	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
	"github.com/vovakirdan/sweet-swap/internal/registry"
)

// ClassicID is the mode with a random board.
const ClassicID = "classic"

// Package-level settings, applied on the next Reset.
var (
	configPath       string
	difficultyPreset string
	startLevel       int
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetStartLevel sets the classic mode starting level. 0 means level 1.
func SetStartLevel(level int) {
	startLevel = level
}

// Game implements registry.Game for one Sweet Swap mode.
type Game struct {
	id    string
	title string
	board *boards.Board // nil in classic mode

	cfg   config.SweetSwapConfig
	rules engine.Rules
	sess  *engine.Session
	err   error

	resume *engine.SavedState

	// Presentation state.
	shown    *engine.Grid
	cursor   engine.Coord
	selected bool
	pending  []engine.Step
	last     engine.MoveResult
	wait     int
	shake    int
	combo    int
	message  string

	paused     bool
	tooSmall   bool
	checkpoint bool
	cues       []string

	screenW int
	screenH int
}

// New creates a classic mode game.
func New() *Game {
	return &Game{id: ClassicID, title: "Sweet Swap"}
}

// NewWithBoard creates a game that always starts from b.
func NewWithBoard(b boards.Board) *Game {
	return &Game{id: b.ID, title: "Sweet Swap: " + b.Name, board: &b}
}

func init() {
	registry.Register(ClassicID, func() registry.Game { return New() })

	all, err := boards.Builtin()
	if err != nil {
		panic(err)
	}
	for _, b := range all {
		registry.Register(b.ID, func() registry.Game { return NewWithBoard(b) })
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Resume makes the next Reset continue from saved instead of a new board.
func (g *Game) Resume(saved engine.SavedState) {
	g.resume = &saved
}

// Save returns the session's persistable state.
func (g *Game) Save() (engine.SavedState, bool) {
	if g.sess == nil {
		return engine.SavedState{}, false
	}
	return g.sess.Save(), true
}

// Snapshot returns the session view, or false before the first Reset.
func (g *Game) Snapshot() (engine.Snapshot, bool) {
	if g.sess == nil {
		return engine.Snapshot{}, false
	}
	return g.sess.Snapshot(), true
}

// Err returns the configuration problem that forced default rules, if any.
func (g *Game) Err() error { return g.err }

// Reset starts a session. A pending Resume wins over the mode's start.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g.cfg, g.rules, g.err = LoadRules(configPath, difficultyPreset)
	if g.err != nil {
		g.cfg = config.DefaultSweetSwapConfig()
		g.rules = engine.DefaultRules()
	}

	g.sess = nil
	if g.resume != nil {
		saved := *g.resume
		g.resume = nil
		g.startFrom(saved, rng)
	}
	if g.sess == nil && g.board != nil {
		rules := g.rules
		rules.Width, rules.Height = len(g.board.Rows[0]), len(g.board.Rows)
		if saved, err := g.board.State(rules); err == nil {
			g.startFrom(saved, rng)
		} else {
			g.err = err
		}
	}
	if g.sess == nil {
		sess, err := engine.NewSession(g.rules, max(1, startLevel), rng)
		if err != nil {
			// Rules were validated while loading.
			panic(err)
		}
		g.sess = sess
	}

	g.shown = g.sess.Grid()
	g.cursor = engine.C(0, 0)
	g.selected = false
	g.pending = nil
	g.last = engine.MoveResult{}
	g.wait = 0
	g.shake = 0
	g.combo = 0
	g.message = ""
	g.paused = false
	g.checkpoint = false
	g.cues = nil

	g.checkScreenSize()
}

// startFrom restores saved, sizing the rules to its board.
func (g *Game) startFrom(saved engine.SavedState, rng *rand.Rand) {
	rules := g.rules
	if saved.Board != nil {
		rules.Width, rules.Height = saved.Board.W, saved.Board.H
	}
	sess, err := engine.Restore(rules, saved, rng)
	if err != nil {
		g.err = fmt.Errorf("sweetswap: cannot resume: %w", err)
		return
	}
	g.rules = rules
	g.sess = sess
}

// Resize adapts to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	w, h := boardSize(g.rules)
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudHeight+2
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.cues = nil
	g.checkpoint = false

	if g.tooSmall {
		return g.result()
	}

	if in.Has(core.ActionPause) && !g.sess.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	if g.shake > 0 {
		g.shake--
	}

	if len(g.pending) > 0 {
		g.advancePlayback()
		return g.result()
	}

	if g.sess.GameOver() {
		return g.result()
	}

	if g.sess.LevelComplete() {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionSelect) {
			g.levelUp()
		}
		return g.result()
	}

	g.handleInput(in)
	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Cues: g.cues}
}

func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionBack) && g.selected {
		g.selected = false
		return
	}
	if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		g.selected = !g.selected
		g.cues = append(g.cues, audio.CueClick)
		return
	}

	dir, ok := direction(in)
	if !ok {
		return
	}
	target := g.cursor.Add(dir.X, dir.Y)
	if !g.selected {
		if g.shown.InBounds(target) {
			g.cursor = target
		}
		return
	}
	g.selected = false
	if !g.shown.InBounds(target) {
		g.reject()
		return
	}
	g.trySwap(g.cursor, target)
}

func direction(in core.InputFrame) (engine.Coord, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.C(0, -1), true
	case in.Has(core.ActionDown):
		return engine.C(0, 1), true
	case in.Has(core.ActionLeft):
		return engine.C(-1, 0), true
	case in.Has(core.ActionRight):
		return engine.C(1, 0), true
	}
	return engine.Coord{}, false
}

func (g *Game) trySwap(a, b engine.Coord) {
	res, err := g.sess.AttemptSwap(a, b)
	if err != nil {
		g.message = err.Error()
		g.reject()
		return
	}
	if !res.Accepted {
		g.reject()
		return
	}

	g.cues = append(g.cues, audio.CueSwapSuccess)
	g.cursor = b
	g.last = res
	g.combo = 0
	g.message = ""
	if res.Kind == engine.SwapOrdinary {
		g.shown = g.shown.Swapped(a, b)
	}
	g.pending = res.Steps
	g.wait = g.cfg.Pacing.StepTicks
	if len(g.pending) == 0 {
		g.finishMove()
		return
	}
	if g.wait == 0 {
		for len(g.pending) > 0 {
			g.advancePlayback()
		}
	}
}

func (g *Game) reject() {
	g.shake = g.cfg.Pacing.ShakeTicks
	g.cues = append(g.cues, audio.CueSwapFail)
}

// advancePlayback shows the next resolution step once its delay elapsed.
func (g *Game) advancePlayback() {
	if g.wait > 0 {
		g.wait--
		if g.wait > 0 {
			return
		}
	}
	step := g.pending[0]
	g.pending = g.pending[1:]
	g.shown = step.Grid
	g.cues = append(g.cues, stepCues(step)...)
	if step.ChainDepth > g.combo {
		g.combo = step.ChainDepth
	}

	if len(g.pending) == 0 {
		g.finishMove()
		return
	}
	g.wait = g.cfg.Pacing.StepTicks
}

func (g *Game) finishMove() {
	g.pending = nil
	g.shown = g.sess.Grid()
	g.combo = g.last.ChainDepth
	g.checkpoint = true
	if g.last.ComboBonus > 0 {
		g.cues = append(g.cues, audio.CueCombo)
	}
	if g.last.GameOver {
		g.cues = append(g.cues, audio.CueGameOver)
	}
}

func stepCues(s engine.Step) []string {
	var cues []string
	switch s.Kind {
	case engine.StepActivate:
		cues = append(cues, audio.CueSpecialActivation)
	case engine.StepClear:
		if s.ChainDepth > 1 {
			cues = append(cues, audio.CueChain)
		} else {
			cues = append(cues, audio.CueMatch)
		}
		if len(s.Effects) > 0 {
			cues = append(cues, audio.CueSpecialActivation)
		}
	}
	return cues
}

func (g *Game) levelUp() {
	if err := g.sess.LevelUp(); err != nil {
		g.message = err.Error()
		return
	}
	g.shown = g.sess.Grid()
	g.cursor = engine.C(0, 0)
	g.selected = false
	g.combo = 0
	g.last = engine.MoveResult{}
	g.checkpoint = true
	g.cues = append(g.cues, audio.CueLevelUp)
}

// Busy reports whether a move is still being played back.
func (g *Game) Busy() bool {
	return len(g.pending) > 0
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sess == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:      g.sess.Score(),
		Level:      g.sess.Level(),
		GameOver:   g.sess.GameOver() && len(g.pending) == 0,
		Paused:     g.paused || g.tooSmall,
		Checkpoint: g.checkpoint,
	}
}
