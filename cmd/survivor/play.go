package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/block-survivor/internal/audio"
	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/core"
	"github.com/vovakirdan/block-survivor/internal/games/survivor"
	"github.com/vovakirdan/block-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/block-survivor/internal/platform/gui"
	"github.com/vovakirdan/block-survivor/internal/platform/tui"
	"github.com/vovakirdan/block-survivor/internal/registry"
	"github.com/vovakirdan/block-survivor/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMode       string
	flagLevel      int
	flagName       string
	flagGUI        bool
	flagScale      float64
	flagSound      bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game mode",
	Long: `Start playing the selected mode.

Modes:
  free       - Survive as long as possible
  adventure  - Survive each level until its timer runs out
  training   - Learn the controls, nothing can kill you

Controls:
  A/D, Left/Right  - Move
  Space/W/Up       - Jump
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy, medium, hard, hardcore (or e, m, h, x)

Examples:
  survivor play
  survivor play --difficulty hard
  survivor play --mode adventure --level 2
  survivor play --mode training
  survivor play --gui --sound
  survivor play --config ./my-survivor.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard, hardcore")
	playCmd.Flags().StringVar(&flagMode, "mode", "free", "Mode: free, adventure, training")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Adventure level (0 = highest unlocked)")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name, remembered for later games")
	playCmd.Flags().BoolVar(&flagGUI, "gui", false, "Play in a window instead of the terminal")
	playCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale for --gui")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
}

func runPlay(_ *cobra.Command, _ []string) {
	mode, err := sim.ParseMode(flagMode)
	if err != nil {
		exitWith("bad --mode", err)
	}
	if flagDifficulty != "" {
		if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
			exitWith("bad --difficulty", err)
		}
	}

	// Fail before opening the screen when the tuning cannot run
	survivorCfg, source, err := config.LoadSurvivorFrom(flagConfig)
	if err != nil {
		exitWith("cannot load config", err)
	}
	logger.Debug("loaded tuning", "source", source)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	player, err := resolvePlayer(store, flagName)
	if err != nil {
		exitWith("bad --name", err)
	}

	unlocked := 1
	if store != nil {
		if n, uerr := store.Unlocked(player); uerr == nil {
			unlocked = n
		}
	}

	level := 0
	if mode == sim.ModeAdventure {
		level, err = pickLevel(flagLevel, unlocked, len(survivorCfg.Levels))
		if err != nil {
			exitWith("cannot start adventure", err)
		}
	}

	survivor.SetConfigPath(flagConfig)
	survivor.SetDifficultyPreset(flagDifficulty)
	survivor.SetStartLevel(level)
	survivor.SetUnlocked(unlocked)

	game, err := registry.Create(gameIDForMode(mode))
	if err != nil {
		exitWith("cannot create game", err)
	}
	logger.Debug("starting game", "mode", mode, "player", player, "level", level, "unlocked", unlocked)

	var sound *audio.Player
	if flagSound {
		sound, err = audio.Open(flagVolume)
		if err != nil {
			logger.Warn("sound disabled", "error", err)
			sound = nil
		} else {
			defer sound.Close()
		}
	}

	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	if flagGUI {
		sg, ok := game.(*survivor.Game)
		if !ok {
			exitWith("cannot open window", fmt.Errorf("game %q has no windowed frontend", game.ID()))
		}
		opts := gui.Options{Player: player, Scale: flagScale}
		if sound != nil {
			opts.Sound = sound
		}
		err = gui.Run(sg, store, cfg, opts)
	} else {
		opts := tui.Options{Player: player}
		if sound != nil {
			opts.Sound = sound
		}
		err = tui.Run(game, store, cfg, opts)
	}
	if err != nil {
		exitWith("error running game", err)
	}

	if sg, ok := game.(*survivor.Game); ok && sg.Err() != nil {
		exitWith("session could not start", sg.Err())
	}
}

// resolvePlayer returns the player name from the flag, remembering it,
// or the stored one.
func resolvePlayer(store *storage.Store, name string) (string, error) {
	if name != "" {
		normalized, err := storage.NormalizePlayerName(name)
		if err != nil {
			return "", err
		}
		if store != nil {
			if serr := store.SetPlayerName(normalized); serr != nil {
				logger.Warn("could not remember player name", "error", serr)
			}
		}
		return normalized, nil
	}
	if store == nil {
		return storage.DefaultPlayer, nil
	}
	stored, err := store.PlayerName()
	if err != nil {
		logger.Warn("could not read player name", "error", err)
		return storage.DefaultPlayer, nil
	}
	return stored, nil
}

// pickLevel resolves the requested adventure level. Zero means the highest
// unlocked one.
func pickLevel(requested, unlocked, count int) (int, error) {
	if count == 0 {
		return 0, fmt.Errorf("config has no adventure levels")
	}
	frontier := min(max(unlocked, 1), count)
	switch {
	case requested == 0:
		return frontier, nil
	case requested < 0 || requested > count:
		return 0, fmt.Errorf("level %d out of range 1..%d", requested, count)
	case requested > frontier:
		return 0, fmt.Errorf("level %d is locked (unlocked up to %d)", requested, frontier)
	}
	return requested, nil
}
