// Package survivor adapts the Block Survivor simulation to the arcade
// platform: input mapping, pause, terminal rendering and registration.
package survivor

import (
	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/core"
	"github.com/vovakirdan/block-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/block-survivor/internal/registry"
)

// Registered game IDs, one per mode.
const (
	IDFree      = "survivor"
	IDAdventure = "survivor_adventure"
	IDTraining  = "survivor_training"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// startLevel and unlocked select the adventure level
var (
	startLevel = 1
	unlocked   = 1
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the config default.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetStartLevel selects the 1-based adventure level for the next Reset.
func SetStartLevel(level int) {
	startLevel = max(level, 1)
}

// SetUnlocked sets the unlock frontier loaded from storage.
func SetUnlocked(n int) {
	unlocked = max(n, 1)
}

// Settings selects the tuning for one game instance.
type Settings struct {
	ConfigPath string
	Difficulty config.DifficultyPreset
	Level      int // Adventure level, 1-based
	Unlocked   int
}

// currentSettings returns the package-level settings set by the CLI.
func currentSettings() Settings {
	return Settings{
		ConfigPath: configPath,
		Difficulty: difficultyPreset,
		Level:      startLevel,
		Unlocked:   unlocked,
	}
}

// Game implements registry.Game on top of a sim.Session.
type Game struct {
	mode     sim.Mode
	settings *Settings // Overrides the package-level settings when set
	runtime  core.RuntimeConfig
	cfg      config.SurvivorConfig
	session  *sim.Session
	err      error
	level    int
	paused   bool
	cues     []core.Cue
}

// New creates a free play game.
func New() *Game {
	return &Game{mode: sim.ModeFree}
}

// NewAdventure creates an adventure game playing the level set by SetStartLevel.
func NewAdventure() *Game {
	return &Game{mode: sim.ModeAdventure}
}

// NewTraining creates a training game.
func NewTraining() *Game {
	return &Game{mode: sim.ModeTraining}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	switch g.mode {
	case sim.ModeAdventure:
		return IDAdventure
	case sim.ModeTraining:
		return IDTraining
	default:
		return IDFree
	}
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.mode {
	case sim.ModeAdventure:
		return "Block Survivor (Adventure)"
	case sim.ModeTraining:
		return "Block Survivor (Training)"
	default:
		return "Block Survivor"
	}
}

// Summary returns a one-line description of the mode.
func (g *Game) Summary() string {
	switch g.mode {
	case sim.ModeAdventure:
		return "Outlast the timer to unlock the next level"
	case sim.ModeTraining:
		return "Learn to move and jump, nothing can crush you"
	default:
		return "Survive as long as you can"
	}
}

// Configure pins the settings of this instance. Sessions served over SSH
// use it instead of the package-level setters.
func (g *Game) Configure(s Settings) {
	s.Level = max(s.Level, 1)
	s.Unlocked = max(s.Unlocked, 1)
	g.settings = &s
}

// Reset loads the tuning config and starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.cues = g.cues[:0]

	set := currentSettings()
	if g.settings != nil {
		set = *g.settings
	}

	cfg, err := config.LoadSurvivor(set.ConfigPath)
	if err != nil {
		g.session, g.err = nil, err
		return
	}
	g.cfg = cfg

	opts := sim.Options{
		Mode:       g.mode,
		Difficulty: set.Difficulty,
		Unlocked:   set.Unlocked,
		Seed:       runtime.Seed,
		TickMs:     runtime.TickMillis(),
	}
	if g.mode == sim.ModeAdventure {
		opts.Level = min(set.Level, set.Unlocked, len(cfg.Levels))
	}
	g.level = opts.Level
	g.session, g.err = sim.NewSession(cfg, opts)
}

// Err returns the error that prevented the last Reset from starting a session.
func (g *Game) Err() error {
	return g.err
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.cues = g.cues[:0]
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.Phase().Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	events := g.session.Step(sim.Input{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Jump:  in.Has(core.ActionJump),
	})
	for _, e := range events {
		if c := cueFor(e); c != core.CueNone {
			g.cues = append(g.cues, c)
		}
	}

	return core.StepResult{State: g.State(), Cues: g.cues}
}

// cueFor maps a simulation event to a presentational cue.
func cueFor(e sim.Event) core.Cue {
	switch e.Kind {
	case sim.EventSpawn:
		return core.CueSpawn
	case sim.EventSettle:
		return core.CueSettle
	case sim.EventLineClear:
		return core.CueLineClear
	case sim.EventOverflow:
		return core.CueOverflow
	case sim.EventJump:
		return core.CueJump
	case sim.EventPending:
		if e.Reason == sim.ReasonCrushed {
			return core.CueCrushed
		}
	case sim.EventEnded:
		if e.Reason.Success() {
			return core.CueVictory
		}
		return core.CueFailed
	}
	return core.CueNone
}

// Snapshot returns the session snapshot. ok is false when no session runs.
func (g *Game) Snapshot() (snap sim.Snapshot, ok bool) {
	if g.session == nil {
		return sim.Snapshot{}, false
	}
	return g.session.Snapshot(), true
}

// Result returns the session outcome once it has ended.
func (g *Game) Result() (sim.Result, bool) {
	if g.session == nil || !g.session.Phase().Terminal() {
		return sim.Result{}, false
	}
	return g.session.Result()
}

// Config returns the tuning config loaded by the last Reset.
func (g *Game) Config() config.SurvivorConfig {
	return g.cfg
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Phase().Terminal(),
		Won:      g.session.Phase() == sim.PhaseSucceeded,
		Paused:   g.paused,
		Level:    g.level,
		Unlocked: g.session.Unlocked(),
	}
}

// Register the games with the registry
func init() {
	registry.Register(IDFree, func() registry.Game {
		return New()
	})
	registry.Register(IDAdventure, func() registry.Game {
		return NewAdventure()
	})
	registry.Register(IDTraining, func() registry.Game {
		return NewTraining()
	})
}
