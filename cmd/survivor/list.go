package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-survivor/internal/games/survivor"
	"github.com/vovakirdan/block-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/block-survivor/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every registered game mode and the value to pass to play --mode.`,
	Run:   runList,
}

// modeFlags maps registered game IDs to the play --mode value.
var modeFlags = map[string]string{
	survivor.IDFree:      "free",
	survivor.IDAdventure: "adventure",
	survivor.IDTraining:  "training",
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 4 // "Mode" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(modeFlags[g.ID]))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "Mode", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "----", "-----------")

	for _, g := range games {
		desc := g.Title
		if g.Summary != "" {
			desc = g.Summary
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, modeFlags[g.ID], desc)
	}

	fmt.Println()
	fmt.Println("Run 'survivor play --mode <mode>' to play.")
}

// gameIDForMode returns the registered game ID for a session mode.
func gameIDForMode(m sim.Mode) string {
	switch m {
	case sim.ModeAdventure:
		return survivor.IDAdventure
	case sim.ModeTraining:
		return survivor.IDTraining
	default:
		return survivor.IDFree
	}
}
