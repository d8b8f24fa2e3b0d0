package sweetswap

import (
	"fmt"

	"github.com/vovakirdan/sweet-swap/internal/config"
	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

// RulesFromConfig converts the YAML configuration into engine rules.
func RulesFromConfig(cfg config.SweetSwapConfig) (engine.Rules, error) {
	if err := cfg.Validate(); err != nil {
		return engine.Rules{}, err
	}
	palette := make([]engine.Color, 0, len(cfg.Board.Palette))
	for _, name := range cfg.Board.Palette {
		c, ok := engine.ParseColor(name)
		if !ok || c == engine.ColorNone {
			return engine.Rules{}, fmt.Errorf("%w: unknown palette color %q", config.ErrInvalidConfig, name)
		}
		palette = append(palette, c)
	}
	rules := engine.Rules{
		Width:           cfg.Board.Width,
		Height:          cfg.Board.Height,
		Palette:         palette,
		BaseMoves:       cfg.Moves.Base,
		MinMoves:        cfg.Moves.Min,
		MovesDecay:      cfg.Moves.Decay,
		MaxChainSteps:   cfg.Resolution.MaxChainSteps,
		StripedLevel:    cfg.Specials.StripedLevel,
		WrappedLevel:    cfg.Specials.WrappedLevel,
		BombLevel:       cfg.Specials.BombLevel,
		RainbowLevel:    cfg.Specials.RainbowLevel,
		WrappedMinCells: cfg.Specials.WrappedMinCells,
	}
	if err := rules.Validate(); err != nil {
		return engine.Rules{}, err
	}
	return rules, nil
}

// LoadRules loads the configuration from the usual search path, applies a
// difficulty preset and converts it to rules.
func LoadRules(configPath, difficulty string) (config.SweetSwapConfig, engine.Rules, error) {
	cfg, err := config.LoadSweetSwap(configPath)
	if err != nil {
		return config.SweetSwapConfig{}, engine.Rules{}, err
	}
	preset, err := config.ParseDifficulty(difficulty)
	if err != nil {
		return config.SweetSwapConfig{}, engine.Rules{}, err
	}
	config.ApplySweetSwapPreset(&cfg, preset)
	rules, err := RulesFromConfig(cfg)
	if err != nil {
		return config.SweetSwapConfig{}, engine.Rules{}, err
	}
	return cfg, rules, nil
}
