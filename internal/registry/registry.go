// Package registry maps game mode IDs to factories. Modes register
// themselves in init(), so front ends can list and start them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/sweet-swap/internal/core"
	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

// Game is what a front end needs from a playable mode. Implementations
// hold pure logic; the platform owns timing, input mapping and drawing.
type Game interface {
	// ID is the mode identifier used on the command line and in the
	// leaderboard.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts or restarts the mode.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed simulation tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current state.
	State() core.GameState
}

// Resumable is implemented by modes whose progress can be stored in a
// player profile.
type Resumable interface {
	Save() (engine.SavedState, bool)
	Resume(saved engine.SavedState)
}

// Resizable is implemented by modes that can follow terminal resizes
// without a restart.
type Resizable interface {
	Resize(w, h int)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh instance of a mode.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a mode. Registering the same ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered modes sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(factories))
	for id := range factories {
		out = append(out, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create instantiates a mode by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return f(), nil
}

// Exists reports whether a mode is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
