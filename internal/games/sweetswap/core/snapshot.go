package core

// SavedState is the persisted part of a session.
type SavedState struct {
	Board     *Grid `json:"board"`
	Score     int   `json:"score"`
	Level     int   `json:"level"`
	MovesLeft int   `json:"movesLeft"`
}

// Snapshot is a read-only view of a session for rendering and the API.
type Snapshot struct {
	Board         *Grid `json:"board"`
	Score         int   `json:"score"`
	Level         int   `json:"level"`
	MovesLeft     int   `json:"movesLeft"`
	TargetScore   int   `json:"targetScore"`
	ChainDepth    int   `json:"chainDepth"`
	GameOver      bool  `json:"gameOver"`
	LevelComplete bool  `json:"levelComplete"`
}

// Save returns the state needed to Restore the session later.
func (s *Session) Save() SavedState {
	return SavedState{
		Board:     s.grid.Clone(),
		Score:     s.score,
		Level:     s.level,
		MovesLeft: s.moves,
	}
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Board:         s.grid.Clone(),
		Score:         s.score,
		Level:         s.level,
		MovesLeft:     s.moves,
		TargetScore:   s.TargetScore(),
		ChainDepth:    s.chainDepth,
		GameOver:      s.gameOver,
		LevelComplete: s.LevelComplete(),
	}
}
