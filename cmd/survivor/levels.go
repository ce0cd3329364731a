package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show adventure levels and their effective rates",
	Long: `Lists the adventure levels of the tuning config with the spawn interval
and fall speed (pixels per tick) each difficulty produces, plus the free play and training rates.
Levels past the stored unlock frontier are marked as locked.

Examples:
  survivor levels
  survivor levels --config ./my-survivor.yaml
  survivor levels --name ace`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	levelsCmd.Flags().StringVar(&flagName, "name", "", "Player whose progress is shown")
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadSurvivor(flagConfig)
	if err != nil {
		exitWith("cannot load config", err)
	}
	dm := config.NewDifficultyManager(cfg)

	unlocked := 0 // Unknown without storage
	if store, serr := storage.Open(flagDBPath); serr == nil {
		player, perr := resolvePlayer(store, flagName)
		if perr == nil {
			if n, uerr := store.Unlocked(player); uerr == nil {
				unlocked = n
			}
		}
		store.Close()
	} else {
		logger.Debug("progress unavailable", "error", serr)
	}

	p := message.NewPrinter(language.English)
	tiers := cfg.Difficulty.Tiers

	p.Printf("Free play\n")
	for _, t := range tiers {
		r, rerr := dm.FreePlay(t.ID)
		if rerr != nil {
			exitWith("bad difficulty", rerr)
		}
		p.Printf("  [%s] %-9s spawn every %5.0f ms, fall %4.1f px/tick\n", t.Letter, t.Label, r.SpawnIntervalMs, r.FallSpeed)
	}

	tr := dm.Training()
	p.Printf("\nTraining\n  spawn every %5.0f ms, fall %4.1f px/tick, target score %d\n",
		tr.SpawnIntervalMs, tr.FallSpeed, cfg.Training.TargetScore)

	p.Printf("\nAdventure\n")
	for i := 1; i <= dm.LevelCount(); i++ {
		lvl := cfg.Levels[i-1]
		status := ""
		if unlocked > 0 && i > unlocked {
			status = "  (locked)"
		}
		p.Printf("  %d. %s, %ds%s\n", i, lvl.Label, lvl.TimeLimitSeconds, status)
		for _, t := range tiers {
			r, rerr := dm.Level(t.ID, i)
			if rerr != nil {
				exitWith("bad level", rerr)
			}
			p.Printf("     [%s] spawn every %5.0f ms, fall %4.1f px/tick\n", t.Letter, r.SpawnIntervalMs, r.FallSpeed)
		}
	}
}
