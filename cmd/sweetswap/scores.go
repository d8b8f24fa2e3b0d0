package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-swap/internal/registry"
	"github.com/vovakirdan/sweet-swap/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the leaderboard",
	Long: `Display the top scores of a mode, or of every mode when none is given.

Examples:
  sweetswap scores
  sweetswap scores classic
  sweetswap scores detonator --limit 5
  sweetswap scores stripes --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.LeaderboardSize, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the scores of the mode instead")
}

func runScores(_ *cobra.Command, args []string) error {
	mode, title := "", "all boards"
	if len(args) == 1 {
		mode = args[0]
		title = mode
		if registry.Exists(mode) {
			g, err := registry.Create(mode)
			if err != nil {
				return err
			}
			title = g.Title()
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if mode == "" {
			return fmt.Errorf("--clear needs a mode")
		}
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", title)
		return nil
	}

	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", title)
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'sweetswap play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %-16s  %s\n", "Rank", "Player", "Score", "Level", "Date", "Board")
	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %-16s  %s\n", "----", "------", "-----", "-----", "----", "-----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-16s  %-8d  %-5d  %-16s  %s\n",
			i+1, e.Name, e.Score, e.Level, e.CreatedAt.Format("2006-01-02 15:04"), e.Mode)
	}

	if mode != "" {
		if best, err := store.HighScore(mode); err == nil {
			fmt.Printf("\nBest: %d\n", best)
		}
		return nil
	}
	if modes, err := store.Modes(); err == nil && len(modes) > 1 {
		fmt.Printf("\nBoards with scores: %s\n", strings.Join(modes, ", "))
	}
	return nil
}
