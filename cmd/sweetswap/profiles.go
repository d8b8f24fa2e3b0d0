package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-swap/internal/storage"
)

var flagProfilesDelete string

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List player profiles and their saved games",
	Long: `List every profile, most recently played first, with the game it would
continue from.

Examples:
  sweetswap profiles
  sweetswap profiles --delete ada`,
	Args: cobra.NoArgs,
	RunE: runProfiles,
}

func init() {
	profilesCmd.Flags().StringVar(&flagProfilesDelete, "delete", "", "Delete the named profile (scores are kept)")
}

func runProfiles(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagProfilesDelete != "" {
		p, err := store.ProfileByName(flagProfilesDelete)
		if err != nil {
			return err
		}
		if err := store.DeleteProfile(p.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted profile %s\n", p.Name)
		return nil
	}

	profiles, err := store.Profiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("No profiles yet.")
		fmt.Println()
		fmt.Println("Run 'sweetswap play --profile <name>' to create one.")
		return nil
	}

	fmt.Printf("  %-16s  %-16s  %s\n", "Player", "Last played", "Saved game")
	fmt.Printf("  %-16s  %-16s  %s\n", "------", "-----------", "----------")
	for _, p := range profiles {
		saved := "-"
		if p.Saved != nil {
			saved = fmt.Sprintf("level %d, %d pts, %d moves left", p.Saved.Level, p.Saved.Score, p.Saved.MovesLeft)
		}
		name := p.Name
		if p.Avatar != "" {
			name = p.Avatar + " " + name
		}
		fmt.Printf("  %-16s  %-16s  %s\n", name, p.UpdatedAt.Format("2006-01-02 15:04"), saved)
	}
	return nil
}
