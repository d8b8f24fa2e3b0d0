package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweet-swap/internal/games/sweetswap/boards"
	"github.com/vovakirdan/sweet-swap/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and built-in boards",
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return nil
	}

	all, err := boards.Builtin()
	if err != nil {
		return err
	}
	desc := make(map[string]string, len(all))
	for _, b := range all {
		desc[b.ID] = fmt.Sprintf("level %d, %s", b.Level, b.Description)
	}
	desc["classic"] = "random boards, level after level"

	idWidth := 2
	for _, g := range modes {
		idWidth = max(idWidth, len(g.ID))
	}

	fmt.Println("Available modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", idWidth, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", idWidth, "--", "-----------")
	for _, g := range modes {
		fmt.Printf("  %-*s  %s\n", idWidth, g.ID, desc[g.ID])
	}
	fmt.Println()
	fmt.Println("Run 'sweetswap play <id>' to play a mode.")
	return nil
}
