package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. An empty name means normal.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// MoveBonus returns how many moves a preset adds to every level.
func MoveBonus(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 10
	case DifficultyHard:
		return -5
	default:
		return 0
	}
}

// ApplySweetSwapPreset modifies the config based on a difficulty preset.
// Fixed keeps the level-1 move allowance on every level.
func ApplySweetSwapPreset(cfg *SweetSwapConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Moves.Decay = 0
		return
	}
	bonus := MoveBonus(preset)
	cfg.Moves.Base = max(1, cfg.Moves.Base+bonus)
	cfg.Moves.Min = max(1, cfg.Moves.Min+bonus)
}
