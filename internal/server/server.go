// Package server exposes Sweet Swap sessions over HTTP and WebSocket for a
// browser front end.
//
// Routes:
//   - POST /api/games                 start (or resume) a session
//   - GET  /api/games/{id}            current snapshot
//   - POST /api/games/{id}/swap       play one move
//   - POST /api/games/{id}/level-up   advance after reaching the target
//   - POST /api/games/{id}/reset      start over at level 1
//   - GET  /api/games/{id}/ws         live session with per-step frames
//   - GET  /api/scores                leaderboard
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
	"github.com/vovakirdan/sweet-swap/internal/storage"
)

// DefaultMode is the leaderboard mode of web games.
const DefaultMode = "classic"

// Options configure a Server. Only Rules is required.
type Options struct {
	Rules        engine.Rules
	Store        *storage.Store // nil disables profiles and scores
	Logger       *log.Logger
	ClientOrigin string
	Mode         string
	Timeout      time.Duration
}

// Server bundles the router, live sessions and storage.
type Server struct {
	r      *chi.Mux
	games  *Games
	opts   Options
	logger *log.Logger
}

// New constructs a Server and registers routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.Mode == "" {
		opts.Mode = DefaultMode
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	s := &Server{r: chi.NewRouter(), games: NewGames(), opts: opts, logger: opts.Logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.requestLogger)
	s.r.Use(s.cors)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "games": s.games.Len()})
	})

	s.r.Route("/api", func(r chi.Router) {
		// The socket outlives any request timeout.
		r.Get("/games/{id}/ws", s.handleSocket)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(opts.Timeout))
			r.Use(jsonContentType)

			r.Post("/games", s.handleCreate)
			r.Get("/games/{id}", s.handleGet)
			r.Delete("/games/{id}", s.handleDelete)
			r.Post("/games/{id}/swap", s.handleSwap)
			r.Post("/games/{id}/level-up", s.handleLevelUp)
			r.Post("/games/{id}/reset", s.handleReset)
			r.Get("/scores", s.handleScores)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the router, for tests and embedding.
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", addr, "origin", s.opts.ClientOrigin)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ---- middleware ----

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// ---- payloads ----

type createReq struct {
	Level   int    `json:"level"`
	Seed    int64  `json:"seed"`
	Profile string `json:"profile"`
}

type gameRes struct {
	ID       string          `json:"id"`
	Profile  string          `json:"profile,omitempty"`
	Resumed  bool            `json:"resumed"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

type swapReq struct {
	A engine.Coord `json:"a"`
	B engine.Coord `json:"b"`
}

type moveRes struct {
	engine.MoveResult
	Effects  []engine.Effect `json:"effects"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

// ---- handlers ----

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	profile, err := s.profile(req.Profile)
	if err != nil {
		s.logger.Error("could not load profile", "profile", req.Profile, "error", err)
		writeError(w, http.StatusInternalServerError, "profile unavailable")
		return
	}

	g, err := s.games.Create(r.Context(), s.opts.Rules, req.Level, req.Seed, profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if profile != nil && profile.Saved != nil && !g.resumed {
		s.logger.Warn("saved game could not be restored", "profile", profile.Name)
	}
	s.logger.Info("game started", "game", g.id, "profile", req.Profile, "resumed", g.resumed, "seed", req.Seed)

	writeJSON(w, http.StatusCreated, gameRes{ID: g.id, Profile: req.Profile, Resumed: g.resumed, Snapshot: g.Snapshot()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.games.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req swapReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	res, snap, err := s.swap(g, req.A, req.B)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, moveRes{MoveResult: res, Effects: res.Effects(), Snapshot: snap})
}

func (s *Server) handleLevelUp(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	snap, err := s.levelUp(g)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.reset(g))
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := storage.LeaderboardSize
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	scores := []storage.ScoreEntry{}
	if s.opts.Store != nil {
		entries, err := s.opts.Store.TopScores(r.URL.Query().Get("mode"), limit)
		if err != nil {
			s.logger.Error("could not load scores", "error", err)
			writeError(w, http.StatusInternalServerError, "scores unavailable")
			return
		}
		if entries != nil {
			scores = entries
		}
	}
	writeJSON(w, http.StatusOK, scores)
}

// ---- moves ----

func (s *Server) swap(g *LiveGame, a, b engine.Coord) (engine.MoveResult, engine.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	res, err := g.sess.AttemptSwap(a, b)
	if err != nil {
		s.logger.Debug("swap refused", "game", g.id, "a", a, "b", b, "error", err)
		return res, g.sess.Snapshot(), err
	}
	s.logger.Debug("swap", "game", g.id, "a", a, "b", b, "accepted", res.Accepted, "points", res.Points, "chain", res.ChainDepth)

	if res.Accepted {
		if res.GameOver {
			s.finish(g)
		} else {
			s.save(g)
		}
	}
	return res, g.sess.Snapshot(), nil
}

func (s *Server) levelUp(g *LiveGame) (engine.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.sess.LevelUp(); err != nil {
		return g.sess.Snapshot(), err
	}
	s.logger.Info("level up", "game", g.id, "level", g.sess.Level(), "score", g.sess.Score())
	s.save(g)
	return g.sess.Snapshot(), nil
}

func (s *Server) reset(g *LiveGame) engine.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess.Score() > 0 && !g.sess.GameOver() {
		s.record(g)
	}
	g.sess.Reset()
	s.save(g)
	return g.sess.Snapshot()
}

// ---- persistence ----

func (s *Server) profile(name string) (*storage.Profile, error) {
	if name == "" || s.opts.Store == nil {
		return nil, nil
	}
	p, err := s.opts.Store.EnsureProfile(name, "")
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Server) save(g *LiveGame) {
	if s.opts.Store == nil || g.profile == nil {
		return
	}
	saved := g.sess.Save()
	if err := s.opts.Store.SaveState(g.profile.ID, saved); err != nil {
		s.logger.Warn("could not save progress", "game", g.id, "profile", g.profile.Name, "error", err)
		return
	}
	g.profile.Saved = &saved
}

// finish records the final score and forgets the saved game.
func (s *Server) finish(g *LiveGame) {
	s.logger.Info("game over", "game", g.id, "score", g.sess.Score(), "level", g.sess.Level())
	s.record(g)
	if s.opts.Store == nil || g.profile == nil {
		return
	}
	if err := s.opts.Store.ClearState(g.profile.ID); err != nil {
		s.logger.Warn("could not clear progress", "game", g.id, "error", err)
		return
	}
	g.profile.Saved = nil
}

func (s *Server) record(g *LiveGame) {
	if s.opts.Store == nil || g.sess.Score() <= 0 {
		return
	}
	name := "guest"
	if g.profile != nil {
		name = g.profile.Name
	}
	if _, err := s.opts.Store.SaveScore(s.opts.Mode, name, g.sess.Score(), g.sess.Level()); err != nil {
		s.logger.Warn("could not save score", "game", g.id, "error", err)
	}
}

// ---- helpers ----

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*LiveGame, bool) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return g, true
}

// statusFor maps engine errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrGameOver),
		errors.Is(err, engine.ErrNoMovesLeft),
		errors.Is(err, engine.ErrLevelIncomplete):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
