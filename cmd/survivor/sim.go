package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/block-survivor/internal/batch"
	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/games/survivor/sim"
)

var (
	flagRuns     int
	flagWorkers  int
	flagMaxTicks uint64
	flagReport   string
	flagQuiet    bool

	// Separate from play, whose --level default differs
	flagSimMode       string
	flagSimDifficulty string
	flagSimLevel      int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run autopilot sessions headlessly",
	Long: `Plays many sessions with a scripted pilot and reports how long it
survives. Useful for checking that a tuning file is fair before playing it.

Run i uses seed --seed + i, so a batch is reproducible. With --report the
per-run records are written as JSON lines; a .zst suffix compresses them.

Examples:
  survivor sim --runs 200
  survivor sim --runs 1000 --difficulty hardcore --workers 8
  survivor sim --mode adventure --level 3 --report runs.jsonl.zst`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 100, "Number of sessions")
	simCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "Parallel workers")
	simCmd.Flags().StringVar(&flagSimMode, "mode", "free", "Mode: free, adventure, training")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty: easy, medium, hard, hardcore")
	simCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Adventure level")
	simCmd.Flags().Uint64Var(&flagMaxTicks, "max-ticks", 0, "Tick cap per session (0 = ten minutes)")
	simCmd.Flags().StringVar(&flagReport, "report", "", "Write per-run records to this file")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	simCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Hide the progress bar")
}

func runSim(_ *cobra.Command, _ []string) {
	mode, err := sim.ParseMode(flagSimMode)
	if err != nil {
		exitWith("bad --mode", err)
	}
	var preset config.DifficultyPreset
	if flagSimDifficulty != "" {
		preset, err = config.ParseDifficultyPreset(flagSimDifficulty)
		if err != nil {
			exitWith("bad --difficulty", err)
		}
	}
	cfg, err := config.LoadSurvivor(flagConfig)
	if err != nil {
		exitWith("cannot load config", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := batch.Options{
		Runs:       flagRuns,
		Workers:    flagWorkers,
		Mode:       mode,
		Difficulty: preset,
		Seed:       seed,
		MaxTicks:   flagMaxTicks,
	}
	if mode == sim.ModeAdventure {
		opts.Level = flagSimLevel
	}
	if !flagQuiet {
		opts.Progress = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("starting batch", "runs", opts.Runs, "workers", opts.Workers, "mode", mode, "seed", seed)
	start := time.Now()
	records, err := batch.Run(ctx, cfg, opts)
	if err != nil {
		exitWith("batch failed", err)
	}
	logger.Info("batch finished", "runs", len(records), "elapsed", time.Since(start).Round(time.Millisecond))

	if flagReport != "" {
		if err := batch.WriteReport(flagReport, records); err != nil {
			exitWith("cannot write report", err)
		}
		logger.Info("report written", "path", flagReport)
	}

	printSummary(batch.Summarize(records))
}

func printSummary(s batch.Summary) {
	p := message.NewPrinter(language.English)
	p.Printf("Runs:        %d\n", s.Runs)
	p.Printf("Successes:   %d (%.1f%%)\n", s.Successes, s.SuccessRate()*100)
	p.Printf("Score:       mean %.1f, sd %.1f, median %.0f, p90 %.0f\n",
		s.MeanScore, s.StdDevScore, s.MedianScore, s.P90Score)
	p.Printf("Survival:    mean %.1fs, median %.0f ticks\n", s.MeanSeconds, s.MedianTicks)
	p.Printf("Lines:       %d cleared, %d overflows\n", s.LinesCleared, s.Overflows)

	reasons := make([]string, 0, len(s.Reasons))
	for r := range s.Reasons {
		reasons = append(reasons, r)
	}
	slices.Sort(reasons)
	p.Printf("Outcomes:\n")
	for _, r := range reasons {
		p.Printf("  %-12s %d\n", r, s.Reasons[r])
	}
}
