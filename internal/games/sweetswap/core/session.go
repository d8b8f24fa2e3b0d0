package core

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds     = errors.New("sweetswap: coordinate out of bounds")
	ErrGameOver        = errors.New("sweetswap: game over")
	ErrNoMovesLeft     = errors.New("sweetswap: no moves left")
	ErrLevelIncomplete = errors.New("sweetswap: level target not reached")
)

// StepKind names a phase of move resolution.
type StepKind string

const (
	StepActivate StepKind = "activate"
	StepClear    StepKind = "clear"
	StepSettle   StepKind = "settle"
	StepFill     StepKind = "fill"
)

// Step records one phase of move resolution. Grid is the board after the
// phase. Replaying or skipping steps never changes session state.
type Step struct {
	Kind       StepKind   `json:"kind"`
	Grid       *Grid      `json:"grid"`
	Matches    []Match    `json:"matches,omitempty"`
	Cleared    []Coord    `json:"cleared,omitempty"`
	Created    *Placement `json:"created,omitempty"`
	Filled     []Coord    `json:"filled,omitempty"`
	Effects    []Effect   `json:"effects,omitempty"`
	Points     int        `json:"points"`
	ChainDepth int        `json:"chainDepth"`
}

// MoveResult summarizes one AttemptSwap call.
type MoveResult struct {
	Accepted      bool     `json:"accepted"`
	Kind          SwapKind `json:"kind"`
	Steps         []Step   `json:"steps,omitempty"`
	Points        int      `json:"points"`
	ComboBonus    int      `json:"comboBonus"`
	ChainDepth    int      `json:"chainDepth"`
	LevelComplete bool     `json:"levelComplete"`
	GameOver      bool     `json:"gameOver"`
}

// Effects returns every special activation of the move in order.
func (r MoveResult) Effects() []Effect {
	var effects []Effect
	for _, s := range r.Steps {
		effects = append(effects, s.Effects...)
	}
	return effects
}

// Session is a single game. It is not safe for concurrent use.
type Session struct {
	rules   Rules
	factory *Factory

	grid       *Grid
	score      int
	level      int
	moves      int
	chainDepth int
	gameOver   bool
}

// NewSession starts a game at level with a fresh match-free board.
func NewSession(rules Rules, level int, picker Picker) (*Session, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if level < 1 {
		level = 1
	}
	s := &Session{
		rules:   rules,
		factory: NewFactory(picker, rules.Palette),
		level:   level,
		moves:   rules.MovesForLevel(level),
	}
	s.grid = GenerateBoard(rules.Width, rules.Height, s.factory)
	return s, nil
}

// Restore resumes a saved game. The saved board is used as-is and new piece
// IDs continue after the largest saved one.
func Restore(rules Rules, saved SavedState, picker Picker) (*Session, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if saved.Board == nil || saved.Board.W < MinMatch || saved.Board.H < MinMatch {
		return nil, fmt.Errorf("%w: saved board is missing or too small", ErrInvalidRules)
	}
	level := saved.Level
	if level < 1 {
		level = 1
	}
	moves := saved.MovesLeft
	if moves < 0 {
		moves = 0
	}
	s := &Session{
		rules:   rules,
		factory: NewFactory(picker, rules.Palette),
		grid:    saved.Board.Clone(),
		score:   saved.Score,
		level:   level,
		moves:   moves,
	}
	s.factory.Reserve(s.grid.MaxID())
	s.updateGameOver()
	return s, nil
}

// Rules returns the session's rules.
func (s *Session) Rules() Rules { return s.rules }

// Grid returns a copy of the current board.
func (s *Session) Grid() *Grid { return s.grid.Clone() }

// Score returns the cumulative score.
func (s *Session) Score() int { return s.score }

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// MovesRemaining returns the moves left on this level.
func (s *Session) MovesRemaining() int { return s.moves }

// ChainDepth returns the chain depth reached by the last move.
func (s *Session) ChainDepth() int { return s.chainDepth }

// GameOver reports whether the moves ran out below the target.
func (s *Session) GameOver() bool { return s.gameOver }

// TargetScore returns the score needed to complete the current level.
func (s *Session) TargetScore() int { return TargetScore(s.level) }

// LevelComplete reports whether the current level's target is reached.
func (s *Session) LevelComplete() bool {
	return !s.gameOver && s.moves >= 0 && s.score >= s.TargetScore()
}

// AttemptSwap tries to swap a and b and fully resolves the move.
// A rejected swap returns Accepted=false and changes nothing.
func (s *Session) AttemptSwap(a, b Coord) (MoveResult, error) {
	if !s.grid.InBounds(a) || !s.grid.InBounds(b) {
		return MoveResult{}, fmt.Errorf("%w: swap %v <-> %v on %dx%d board", ErrOutOfBounds, a, b, s.grid.W, s.grid.H)
	}
	if s.gameOver {
		return MoveResult{}, ErrGameOver
	}
	if s.moves <= 0 {
		return MoveResult{}, ErrNoMovesLeft
	}

	out, err := EvaluateSwap(s.grid, a, b)
	if err != nil {
		return MoveResult{}, err
	}
	if !out.Accepted {
		return MoveResult{Kind: SwapRejected, ChainDepth: s.chainDepth}, nil
	}

	s.moves--
	s.chainDepth = 0
	res := MoveResult{Accepted: true, Kind: out.Kind}

	grid := out.Grid
	if out.Kind != SwapOrdinary {
		cas := Cascade(s.grid, out.Clear, s.rules.Palette, out.Consumed...)
		points := CascadeCellPoints * filledAmong(s.grid, cas.Cleared)
		grid = s.grid.Without(cas.Cleared)
		res.Steps = append(res.Steps, Step{
			Kind:    StepActivate,
			Grid:    grid.Clone(),
			Cleared: cas.Cleared,
			Effects: append(append([]Effect(nil), out.Effects...), cas.Effects...),
			Points:  points,
		})
		res.Points += points
	}

	grid, steps, points := s.resolve(grid)
	res.Steps = append(res.Steps, steps...)
	res.Points += points

	res.ComboBonus = ComboBonus(s.chainDepth)
	res.Points += res.ComboBonus
	res.ChainDepth = s.chainDepth

	s.grid = grid
	s.score += res.Points
	s.updateGameOver()
	res.LevelComplete = s.LevelComplete()
	res.GameOver = s.gameOver
	return res, nil
}

// resolve runs settle, fill and clear passes until the board is full and
// has no matches, or the chain cap is reached.
func (s *Session) resolve(grid *Grid) (*Grid, []Step, int) {
	var steps []Step
	total := 0
	for {
		if NeedsSettle(grid) {
			grid = Settle(grid)
			steps = append(steps, Step{Kind: StepSettle, Grid: grid.Clone(), ChainDepth: s.chainDepth})
		}
		if grid.EmptyCount() > 0 {
			var filled []Coord
			grid, filled = Fill(grid, s.factory)
			steps = append(steps, Step{Kind: StepFill, Grid: grid.Clone(), Filled: filled, ChainDepth: s.chainDepth})
		}

		matches := FindMatches(grid)
		if len(matches) == 0 || s.chainDepth >= s.rules.MaxChainSteps {
			return grid, steps, total
		}
		s.chainDepth++

		points := 0
		for _, m := range matches {
			points += MatchPoints(m.Len())
		}
		initial := matchCells(matches)
		cas := Cascade(grid, initial, s.rules.Palette)
		points += CascadeCellPoints * (filledAmong(grid, cas.Cleared) - len(initial))

		step := Step{
			Kind:       StepClear,
			Matches:    matches,
			Cleared:    cas.Cleared,
			Effects:    cas.Effects,
			Points:     points,
			ChainDepth: s.chainDepth,
		}
		placement, ok := DecideSpecial(matches, grid, s.level, s.rules, s.factory)
		grid = grid.Without(cas.Cleared)
		if ok {
			grid.Set(placement.At, FilledCell(placement.Piece))
			step.Created = &placement
		}
		step.Grid = grid.Clone()
		steps = append(steps, step)
		total += points
	}
}

func (s *Session) updateGameOver() {
	s.gameOver = s.moves <= 0 && s.score < s.TargetScore()
}

// LevelUp advances to the next level with a fresh board. Score carries over.
func (s *Session) LevelUp() error {
	if !s.LevelComplete() {
		return fmt.Errorf("%w: score %d of %d", ErrLevelIncomplete, s.score, s.TargetScore())
	}
	s.level++
	s.moves = s.rules.MovesForLevel(s.level)
	s.chainDepth = 0
	s.gameOver = false
	s.grid = GenerateBoard(s.rules.Width, s.rules.Height, s.factory)
	return nil
}

// Reset starts over at level 1 with score 0.
func (s *Session) Reset() {
	s.level = 1
	s.score = 0
	s.moves = s.rules.MovesForLevel(1)
	s.chainDepth = 0
	s.gameOver = false
	s.grid = GenerateBoard(s.rules.Width, s.rules.Height, s.factory)
}
