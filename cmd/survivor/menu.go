package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/block-survivor/internal/audio"
	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/core"
	"github.com/vovakirdan/block-survivor/internal/platform/tui"
	"github.com/vovakirdan/block-survivor/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start Block Survivor in interactive menu mode.

Pick a mode and a difficulty, then play. Adventure opens the level list,
where only unlocked levels can be started. After a game ends, Esc returns
to the menu.

Controls:
  Up/Down/j/k     - Navigate
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Select
  Tab             - High scores
  Esc             - Back
  Q               - Quit

Examples:
  survivor menu
  survivor menu --fps 30
  survivor menu --name ace --sound`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	menuCmd.Flags().StringVar(&flagName, "name", "", "Player name, remembered for later games")
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	menuCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
}

func runMenu(_ *cobra.Command, _ []string) {
	survivorCfg, err := config.LoadSurvivor(flagConfig)
	if err != nil {
		exitWith("cannot load config", err)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	player, err := resolvePlayer(store, flagName)
	if err != nil {
		exitWith("bad --name", err)
	}

	// Get terminal size
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	opts := tui.SessionOptions{
		Player:     player,
		ConfigPath: flagConfig,
		Survivor:   survivorCfg,
	}
	if flagSound {
		sound, serr := audio.Open(flagVolume)
		if serr != nil {
			logger.Warn("sound disabled", "error", serr)
		} else {
			defer sound.Close()
			opts.Sound = sound
		}
	}

	if err := tui.RunSession(store, cfg, opts); err != nil {
		exitWith("error running menu", err)
	}
}
