package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/block-survivor/internal/platform/tui"
	"github.com/vovakirdan/block-survivor/internal/registry"
	"github.com/vovakirdan/block-survivor/internal/storage"
)

var (
	flagLimit            int
	flagScoresDifficulty string
	flagScoresPlayer     string
	flagClear            bool
	flagInteractive      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top high scores for a mode (default: free).

Each score shows the difficulty letter it was set on:
E = easy, M = medium, H = hard, X = hardcore.

Examples:
  survivor scores
  survivor scores adventure
  survivor scores --difficulty hard --limit 25
  survivor scores --player ace
  survivor scores --interactive
  survivor scores training --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only scores set on this difficulty")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only scores of this player")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the mode")
	scoresCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML (difficulty list for --interactive)")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse all modes in the scoreboard screen")
}

func runScores(_ *cobra.Command, args []string) {
	modeName := ""
	if len(args) == 1 {
		modeName = args[0]
	}
	mode, err := sim.ParseMode(modeName)
	if err != nil {
		exitWith("bad mode", err)
	}
	gameID := gameIDForMode(mode)

	info, ok := registry.Lookup(gameID)
	if !ok {
		exitWith("unknown mode", registry.ErrUnknownGame)
	}

	q := storage.ScoreQuery{GameID: gameID, Limit: flagLimit, Player: flagScoresPlayer}
	if flagScoresDifficulty != "" {
		preset, perr := config.ParseDifficultyPreset(flagScoresDifficulty)
		if perr != nil {
			exitWith("bad --difficulty", perr)
		}
		q.Difficulty = string(preset)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitWith("cannot open scores database", err)
	}
	defer store.Close()

	if flagInteractive {
		runInteractiveScores(store)
		return
	}

	p := message.NewPrinter(language.English)

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			exitWith("cannot clear scores", err)
		}
		p.Printf("Cleared all %s scores.\n", info.Title)
		return
	}

	scores, err := store.QueryScores(q)
	if err != nil {
		exitWith("cannot read scores", err)
	}

	p.Printf("High Scores - %s\n\n", info.Title)

	if len(scores) == 0 {
		p.Printf("No scores recorded yet.\n\n")
		p.Printf("Play 'survivor play --mode %s' to set the first high score!\n", mode)
		return
	}

	p.Printf("  %-4s  %-12s  %10s  %-4s  %-3s  %s\n", "Rank", "Player", "Score", "Diff", "Lvl", "Date")
	p.Printf("  %-4s  %-12s  %10s  %-4s  %-3s  %s\n", "----", "------", "-----", "----", "---", "----")

	for i, entry := range scores {
		lvl := "-"
		if entry.Level > 0 {
			lvl = p.Sprintf("%d", entry.Level)
		}
		p.Printf("  %-4d  %-12s  %10d  %-4s  %-3s  %s\n",
			i+1, entry.Player, entry.Score, entry.Letter, lvl, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		p.Printf("\n%d games | best %d | average %.0f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
}

func runInteractiveScores(store *storage.Store) {
	cfg, err := config.LoadSurvivor(flagConfig)
	if err != nil {
		exitWith("cannot load config", err)
	}
	player, err := resolvePlayer(store, "")
	if err != nil {
		exitWith("cannot read player", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if err := tui.RunScoreboard(store, width, height, tui.ScoreboardOptions{
		Player: player,
		Tiers:  cfg.Difficulty.Tiers,
	}); err != nil {
		exitWith("error running scoreboard", err)
	}
}
