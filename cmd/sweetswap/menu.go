package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-swap/internal/audio"
	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap"
	"github.com/vovakirdan/sweet-swap/internal/platform/tui"
	"github.com/vovakirdan/sweet-swap/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick modes from an interactive menu",
	Long: `Start Sweet Swap in interactive menu mode.

The menu lists the classic mode and every built-in board. With --profile,
a saved game shows up as "Continue" at the top. After a game you return to
the menu.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play
  Tab          - Leaderboard
  Q            - Quit

Examples:
  sweetswap menu
  sweetswap menu --profile ada
  sweetswap menu --fps 60 --db ./sweetswap.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger := newLogger("sweetswap")

	cfg, _, err := sweetswap.LoadRules(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}
	cues := audio.New(cfg.Audio, logger)
	defer cues.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	player := tui.Player{Store: store, Profile: loadProfile(store, logger), Cues: cues, Logger: logger}

	rc := runtimeConfig()
	for {
		res, err := tui.RunMenu(player.Profile, rc)
		if err != nil {
			return err
		}
		rc = res.Config

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			game, err := registry.Create(res.GameID)
			if err != nil {
				logger.Error("could not start mode", "mode", res.GameID, "error", err)
				continue
			}
			if flagSeed == 0 {
				rc.Seed = time.Now().UnixNano()
			}
			if err := tui.Run(game, player, rc, res.Resume); err != nil {
				return err
			}
		}
	}
}
