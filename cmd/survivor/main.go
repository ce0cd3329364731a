// survivor is a falling-block dodging game for the terminal, a window or SSH.
//
// Usage:
//
//	survivor list              - List game modes
//	survivor play              - Play a mode directly
//	survivor menu              - Pick modes interactively
//	survivor serve             - Start SSH server for remote play
//	survivor scores [mode]     - Show high scores
//	survivor levels            - Show adventure levels and their rates
//	survivor sim               - Run autopilot sessions headlessly
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.survivor/scores.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-survivor/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/block-survivor/internal/games/survivor"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "survivor",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "survivor",
	Short: "Block Survivor - dodge falling tetrominoes",
	Long: `Block Survivor is an arcade game where tetrominoes rain down on a
small pilot who has to stay alive by running and jumping on the pile.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  levels   - Show adventure levels and effective rates
  sim      - Run autopilot sessions and report survival

Examples:
  survivor list
  survivor play --difficulty hard
  survivor play --mode adventure --level 3
  survivor menu
  survivor serve --ssh :2222
  survivor sim --runs 500 --difficulty hardcore`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.survivor/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simCmd)
}

// exitWith reports err and exits. Config validation failures name the
// offending setting.
func exitWith(msg string, err error) {
	var verr config.ValidationError
	if errors.As(err, &verr) {
		logger.Error(msg, "code", verr.Code, "error", verr.Message)
	} else {
		logger.Error(msg, "error", err)
	}
	os.Exit(1)
}
