package server

import (
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

// Client message types.
const (
	msgSwap    = "swap"
	msgLevelUp = "level_up"
	msgReset   = "reset"
)

// Server frame types.
const (
	frameStep  = "step"
	frameState = "state"
	frameError = "error"
)

type clientMsg struct {
	Type string       `json:"type"`
	A    engine.Coord `json:"a"`
	B    engine.Coord `json:"b"`
}

type frame struct {
	Type     string             `json:"type"`
	Step     *engine.Step       `json:"step,omitempty"`
	Result   *engine.MoveResult `json:"result,omitempty"`
	Snapshot *engine.Snapshot   `json:"snapshot,omitempty"`
	Error    string             `json:"error,omitempty"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{CheckOrigin: s.checkOrigin}
}

// checkOrigin accepts same-host requests and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.opts.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

// handleSocket plays a session over a WebSocket. Every move is answered
// with one step frame per resolution phase, then a state frame.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}

	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "game", g.id, "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("socket opened", "game", g.id, "remote", r.RemoteAddr)
	defer s.logger.Info("socket closed", "game", g.id)

	snap := g.Snapshot()
	if err := conn.WriteJSON(frame{Type: frameState, Snapshot: &snap}); err != nil {
		return
	}

	for {
		var msg clientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("socket read failed", "game", g.id, "error", err)
			}
			return
		}
		if err := s.writeFrames(conn, s.play(g, msg)); err != nil {
			return
		}
	}
}

// play applies one client message and returns the frames to send.
func (s *Server) play(g *LiveGame, msg clientMsg) []frame {
	switch msg.Type {
	case msgSwap:
		res, snap, err := s.swap(g, msg.A, msg.B)
		if err != nil {
			return []frame{{Type: frameError, Error: err.Error()}, {Type: frameState, Snapshot: &snap}}
		}
		frames := make([]frame, 0, len(res.Steps)+1)
		for i := range res.Steps {
			frames = append(frames, frame{Type: frameStep, Step: &res.Steps[i]})
		}
		res.Steps = nil
		return append(frames, frame{Type: frameState, Result: &res, Snapshot: &snap})

	case msgLevelUp:
		snap, err := s.levelUp(g)
		if err != nil {
			return []frame{{Type: frameError, Error: err.Error()}, {Type: frameState, Snapshot: &snap}}
		}
		return []frame{{Type: frameState, Snapshot: &snap}}

	case msgReset:
		snap := s.reset(g)
		return []frame{{Type: frameState, Snapshot: &snap}}
	}
	return []frame{{Type: frameError, Error: "unknown message type " + msg.Type}}
}

func (s *Server) writeFrames(conn *websocket.Conn, frames []frame) error {
	for _, f := range frames {
		if err := conn.WriteJSON(f); err != nil {
			return err
		}
	}
	return nil
}
