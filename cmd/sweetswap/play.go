package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-swap/internal/audio"
	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap"
	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap/boards"
	"github.com/vovakirdan/sweet-swap/internal/platform/tui"
	"github.com/vovakirdan/sweet-swap/internal/registry"
)

var (
	flagBoardFile string
	flagLevel     int
	flagContinue  bool
	flagSound     bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode, or classic when none is given.

Controls:
  Arrows/WASD/hjkl  - Move the cursor, or swap while a candy is selected
  Space/Enter       - Select a candy
  Esc/B             - Cancel the selection
  Enter             - Next level once the target is reached
  P                 - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit (progress is saved to the profile)

Difficulty options:
  easy    - 10 extra moves on every level
  normal  - Standard move allowance
  hard    - 5 fewer moves on every level
  fixed   - No per-level move reduction

Examples:
  sweetswap play
  sweetswap play detonator
  sweetswap play --level 5 --difficulty hard
  sweetswap play --board ./my-board.yaml
  sweetswap play --profile ada --continue`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBoardFile, "board", "", "Play a board from a YAML file")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Starting level in classic mode")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Continue the profile's saved game")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Enable sound cues")
}

func runPlay(_ *cobra.Command, args []string) error {
	logger := newLogger("sweetswap")

	modeID := sweetswap.ClassicID
	if len(args) == 1 {
		modeID = args[0]
	}

	var game registry.Game
	switch {
	case flagBoardFile != "":
		b, err := boards.LoadFile(flagBoardFile)
		if err != nil {
			return err
		}
		game = sweetswap.NewWithBoard(b)
	case !registry.Exists(modeID):
		return fmt.Errorf("unknown mode %q, run 'sweetswap list' to see available modes", modeID)
	default:
		g, err := registry.Create(modeID)
		if err != nil {
			return err
		}
		game = g
	}
	sweetswap.SetStartLevel(flagLevel)

	cfg, _, err := sweetswap.LoadRules(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}
	if flagSound {
		cfg.Audio.Enabled = true
	}
	cues := audio.New(cfg.Audio, logger)
	defer cues.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	profile := loadProfile(store, logger)
	if flagContinue && (profile == nil || profile.Saved == nil) {
		logger.Warn("no saved game to continue, starting a new one", "profile", flagProfile)
	}

	player := tui.Player{Store: store, Profile: profile, Cues: cues, Logger: logger}
	return tui.Run(game, player, runtimeConfig(), flagContinue)
}
