package server

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
	"github.com/vovakirdan/sweet-swap/internal/storage"
)

// ErrGameNotFound is returned for unknown game IDs.
var ErrGameNotFound = errors.New("server: game not found")

// LiveGame is one browser session. mu serializes moves so only one is in
// flight at a time.
type LiveGame struct {
	mu      sync.Mutex
	id      string
	sess    *engine.Session
	profile *storage.Profile
	resumed bool
}

// ID returns the session ID.
func (g *LiveGame) ID() string { return g.id }

// Snapshot returns the current view of the session.
func (g *LiveGame) Snapshot() engine.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess.Snapshot()
}

// Games holds live sessions in memory. Sessions are lost on restart;
// profiles keep their saved state in storage.
type Games struct {
	mu    sync.RWMutex
	games map[string]*LiveGame
}

// NewGames creates an empty session store.
func NewGames() *Games {
	return &Games{games: make(map[string]*LiveGame)}
}

// Create starts a session. A profile with a saved game resumes it.
func (s *Games) Create(_ context.Context, rules engine.Rules, level int, seed int64, profile *storage.Profile) (*LiveGame, error) {
	rng := rand.New(rand.NewSource(seed))

	var (
		sess    *engine.Session
		resumed bool
	)
	if profile != nil && profile.Saved != nil {
		r := rules
		if b := profile.Saved.Board; b != nil {
			r.Width, r.Height = b.W, b.H
		}
		if restored, err := engine.Restore(r, *profile.Saved, rng); err == nil {
			sess, resumed = restored, true
		}
	}
	if sess == nil {
		created, err := engine.NewSession(rules, max(1, level), rng)
		if err != nil {
			return nil, err
		}
		sess = created
	}

	g := &LiveGame{id: uuid.NewString(), sess: sess, profile: profile, resumed: resumed}
	s.mu.Lock()
	s.games[g.id] = g
	s.mu.Unlock()
	return g, nil
}

// Get looks up a session by ID.
func (s *Games) Get(_ context.Context, id string) (*LiveGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.games[id]; ok {
		return g, nil
	}
	return nil, ErrGameNotFound
}

// Delete drops a session.
func (s *Games) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(s.games, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Games) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
