// sweetswap is a match-three puzzle for the terminal, SSH and the browser.
//
// Usage:
//
//	sweetswap list              - List game modes and built-in boards
//	sweetswap play [mode]       - Play a mode (default: classic)
//	sweetswap menu              - Pick modes interactively
//	sweetswap scores [mode]     - Show the leaderboard
//	sweetswap profiles          - List player profiles and saved games
//	sweetswap serve             - Start the SSH server
//	sweetswap web               - Start the HTTP and WebSocket server
//	sweetswap sim               - Autoplay a seeded game and print the result
//
// Global flags:
//
//	--fps <rate>          - Tick rate (default: 30)
//	--seed <value>        - RNG seed for reproducible boards
//	--db <path>           - Database path (default: ~/.sweetswap/sweetswap.db)
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--profile <name>      - Player profile for saved games and scores
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sweet-swap/internal/config"
	"github.com/vovakirdan/sweet-swap/internal/core"
	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap"
	"github.com/vovakirdan/sweet-swap/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagProfile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sweetswap",
	Short: "Sweet Swap - a match-three puzzle in your terminal",
	Long: `Sweet Swap is a match-three puzzle. Swap neighboring candies to line up
three or more of a color, build striped, wrapped, bomb and rainbow candies,
and reach each level's target score before the moves run out.

Available commands:
  list     - Show game modes and built-in boards
  play     - Play a mode directly
  menu     - Interactive mode picker with saved games and scores
  scores   - View the leaderboard
  profiles - List player profiles and saved games
  serve    - Start the SSH server for remote play
  web      - Start the HTTP/WebSocket API for a browser client
  sim      - Autoplay a seeded game headlessly

Examples:
  sweetswap play
  sweetswap play stripes --profile ada
  sweetswap menu --difficulty easy
  sweetswap sim --seed 42 --moves 20`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return err
		}
		sweetswap.SetConfigPath(flagConfig)
		sweetswap.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.sweetswap/sweetswap.db", "Path to the scores and profiles database")
	pf.StringVar(&flagConfig, "config", "", "Path to a custom sweetswap.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagProfile, "profile", "", "Player profile name (empty plays as guest)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger returns a stderr logger at the --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// runtimeConfig sizes the screen from the terminal, defaulting to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the database, or returns nil with a warning so the
// game still runs without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, playing without scores", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// loadProfile returns the --profile player, or nil for a guest.
func loadProfile(store *storage.Store, logger *log.Logger) *storage.Profile {
	if flagProfile == "" || store == nil {
		return nil
	}
	p, err := store.EnsureProfile(flagProfile, "")
	if err != nil {
		logger.Warn("could not load profile, playing as guest", "profile", flagProfile, "error", err)
		return nil
	}
	return &p
}
