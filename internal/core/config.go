package core

// RuntimeConfig is passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int
	Level    int
	GameOver bool
	Paused   bool
	// Checkpoint is set on the tick a move finished resolving, so the
	// platform can persist progress.
	Checkpoint bool
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
	// Cues names the sound cues triggered during this tick.
	Cues []string
}
