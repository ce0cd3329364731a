// Package sim is the Block Survivor simulation: falling pieces, the settled
// pile with row clearing, player kinematics and the session state machine.
// It is deterministic for a given seed and has no rendering or I/O.
package sim

import (
	"fmt"

	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/core"
)

// Options selects how a session is played.
type Options struct {
	Mode       Mode
	Difficulty config.DifficultyPreset
	Level      int     // 1-based adventure level
	Unlocked   int     // Unlock frontier before the session, at least 1
	Seed       int64   // Piece RNG seed
	TickMs     float64 // Simulated milliseconds per Step; defaults to 60 ticks per second
}

// Session owns all mutable state of one play session.
type Session struct {
	cfg   config.SurvivorConfig
	opts  Options
	tier  config.DifficultyTier
	level config.LevelProfile
	rates config.Rates

	kin     Kinematics
	faller  Faller
	spawner *Spawner
	pile    *Pile
	pieces  []Piece
	player  Player
	clock   Clock

	score        int
	flashMs      float64
	tutorialStep int
	tick         uint64
	stats        Stats

	phase    Phase
	reason   Reason
	graceMs  float64
	unlocked int
	result   Result

	events []Event
}

// NewSession validates the configuration and options and builds a session.
func NewSession(cfg config.SurvivorConfig, opts Options) (*Session, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if err := ValidateCatalog(cfg.Field.Columns); err != nil {
		return nil, err
	}
	if opts.TickMs <= 0 {
		opts.TickMs = core.DefaultConfig().TickMillis()
	}
	if opts.Difficulty == "" {
		opts.Difficulty = cfg.Difficulty.Default
	}

	dm := config.NewDifficultyManager(cfg)
	tier, err := dm.Tier(opts.Difficulty)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		opts:     opts,
		tier:     tier,
		unlocked: max(opts.Unlocked, 1),
	}

	timeLimit := 0
	switch opts.Mode {
	case ModeFree:
		s.rates, err = dm.FreePlay(opts.Difficulty)
	case ModeAdventure:
		if opts.Level > s.unlocked {
			return nil, fmt.Errorf("sim: level %d is locked (unlocked %d)", opts.Level, s.unlocked)
		}
		s.rates, err = dm.Level(opts.Difficulty, opts.Level)
		if err == nil {
			s.level = cfg.Levels[opts.Level-1]
			timeLimit = s.level.TimeLimitSeconds
		}
	case ModeTraining:
		s.rates = dm.Training()
	default:
		err = fmt.Errorf("sim: unknown mode %d", opts.Mode)
	}
	if err != nil {
		return nil, err
	}

	cell := cfg.Field.CellSize
	tol := Tolerance{
		CrushInset: cfg.Tolerance.CrushInset,
		StandBand:  cfg.Tolerance.StandBand,
		WallBand:   cfg.Tolerance.WallBand,
	}
	s.kin = Kinematics{
		Gravity:     cfg.Physics.Gravity,
		JumpImpulse: cfg.Physics.JumpImpulse,
		MoveSpeed:   cfg.Physics.MoveSpeed,
		FieldW:      cfg.Field.Width(),
		FieldH:      cfg.Field.Height(),
		Cell:        cell,
		Tolerance:   tol,
	}
	s.faller = Faller{
		FieldH:    cfg.Field.Height(),
		Cell:      cell,
		Tolerance: tol,
		Lethal:    opts.Mode != ModeTraining,
	}
	s.spawner = NewSpawner(opts.Seed, cfg.Field.Columns, cell, cfg.Rules.SpawnRowsAbove, s.rates.SpawnIntervalMs)
	s.pile = NewPile(cfg.Field.Columns, cell)
	s.player = Player{
		X:      cfg.Field.Width()/2 - cfg.Player.Width/2,
		Y:      cfg.Field.Height() - cfg.Player.StartOffset,
		Width:  cfg.Player.Width,
		Height: cfg.Player.Height,
	}
	idleOn := cfg.Timers.InactivityEnabled && opts.Mode != ModeTraining
	s.clock = NewClock(timeLimit, cfg.Timers.CountdownStepMs, idleOn, cfg.Timers.InactivityWarnMs, cfg.Timers.InactivityLimitMs)
	return s, nil
}

// Step advances the session by one tick and returns the events it raised.
// The returned slice is reused by the next call.
func (s *Session) Step(in Input) []Event {
	s.events = s.events[:0]
	dt := s.opts.TickMs

	switch s.phase {
	case PhaseFailed, PhaseSucceeded:
		return s.events
	case PhasePending:
		s.graceMs -= dt
		if s.graceMs <= 0 {
			s.finish()
		}
		return s.events
	}

	s.tick++
	s.clock.Advance(dt, in.Active())

	jumped := s.kin.Move(&s.player, in, s.pile)
	if jumped {
		s.stats.Jumps++
		s.emit(Event{Kind: EventJump})
	}
	s.trackTutorial(in, jumped)

	if pc, ok := s.spawner.Next(s.clock.ElapsedMs); ok {
		s.pieces = append(s.pieces, pc)
		s.score += s.cfg.Scoring.SpawnBonus
		s.stats.Spawned++
		s.emit(Event{Kind: EventSpawn})
	}

	var fall FallResult
	s.pieces, fall = s.faller.Advance(s.pieces, s.rates.FallSpeed, s.pile, s.player.Box())
	if n := len(fall.Settled); n > 0 {
		s.stats.Settled += n
		s.emit(Event{Kind: EventSettle, Count: n})
		if s.opts.Mode == ModeTraining && s.tutorialStep == 2 {
			s.tutorialStep = 3
		}
		s.resolvePile()
	}

	s.kin.Stand(&s.player, s.pile)

	if s.flashMs > 0 {
		s.flashMs = max(0, s.flashMs-dt)
	}

	s.checkTerminal(fall.Crushed)
	return s.events
}

// resolvePile runs overflow, or failing that line clearing, after a settlement.
func (s *Session) resolvePile() {
	threshold := float64(s.cfg.Rules.OverflowRow) * s.cfg.Field.CellSize
	if s.pile.ReachesY(threshold) {
		s.pile.Reset()
		s.score += s.cfg.Scoring.OverflowBonus
		s.flashMs = s.cfg.Timers.FlashMs
		s.stats.Overflows++
		s.emit(Event{Kind: EventOverflow})
		return
	}
	if rows := s.pile.ClearFullRows(&s.player); rows > 0 {
		s.score += s.cfg.Scoring.LineBonus * rows
		s.stats.LinesCleared += rows
		s.emit(Event{Kind: EventLineClear, Count: rows})
	}
}

// trackTutorial advances the training prompts: move, then jump, then a settle.
func (s *Session) trackTutorial(in Input, jumped bool) {
	if s.opts.Mode != ModeTraining {
		return
	}
	switch {
	case s.tutorialStep == 0 && (in.Left || in.Right):
		s.tutorialStep = 1
	case s.tutorialStep == 1 && jumped:
		s.tutorialStep = 2
	}
}

// checkTerminal latches the first terminal reason, in priority order.
func (s *Session) checkTerminal(crushed bool) {
	ceiling := -float64(s.cfg.Rules.CeilingOutRows) * s.cfg.Field.CellSize
	switch {
	case crushed:
		s.latch(ReasonCrushed)
	case s.player.Y < ceiling:
		s.latch(ReasonCeilingOut)
	case s.clock.Idle():
		s.latch(ReasonInactivity)
	case s.opts.Mode == ModeAdventure && s.clock.TimeUp():
		s.latch(ReasonTimeUp)
	case s.opts.Mode == ModeTraining && s.score >= s.cfg.Training.TargetScore:
		s.latch(ReasonTrainingComplete)
	}
}

// latch enters the pending phase and finalizes the result. It runs once per
// session because Step stops simulating after the phase leaves running.
func (s *Session) latch(r Reason) {
	s.phase = PhasePending
	s.reason = r
	s.graceMs = s.cfg.Timers.TerminalGraceMs

	if r == ReasonTimeUp && s.opts.Level == s.unlocked {
		s.unlocked = min(s.unlocked+1, len(s.cfg.Levels))
	}
	s.result = Result{
		Mode:       s.opts.Mode,
		Difficulty: s.opts.Difficulty,
		Letter:     s.tier.Letter,
		Reason:     r,
		Success:    r.Success(),
		FinalScore: s.score,
		Level:      s.opts.Level,
		Unlocked:   s.unlocked,
		Ticks:      s.tick,
		ElapsedMs:  s.clock.ElapsedMs,
		Stats:      s.stats,
	}
	if s.opts.Mode != ModeAdventure {
		s.result.Level = 0
	}
	s.emit(Event{Kind: EventPending, Reason: r})

	if s.graceMs <= 0 {
		s.finish()
	}
}

func (s *Session) finish() {
	if s.reason.Success() {
		s.phase = PhaseSucceeded
	} else {
		s.phase = PhaseFailed
	}
	s.emit(Event{Kind: EventEnded, Reason: s.reason})
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Reason returns the latched terminal reason, or ReasonNone while running.
func (s *Session) Reason() Reason {
	return s.reason
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Tick returns the number of simulated ticks.
func (s *Session) Tick() uint64 {
	return s.tick
}

// Stats returns the running counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// ElapsedMs returns the simulated time since the session started.
func (s *Session) ElapsedMs() float64 {
	return s.clock.ElapsedMs
}

// Unlocked returns the current unlock frontier.
func (s *Session) Unlocked() int {
	return s.unlocked
}

// Rates returns the effective spawn interval and fall speed.
func (s *Session) Rates() config.Rates {
	return s.rates
}

// Result returns the session outcome once a terminal reason is latched.
func (s *Session) Result() (Result, bool) {
	return s.result, s.phase != PhaseRunning
}

// Snapshot returns a read-only copy of the session state.
func (s *Session) Snapshot() Snapshot {
	cell := s.cfg.Field.CellSize
	pieces := make([]PieceView, len(s.pieces))
	for i, pc := range s.pieces {
		pieces[i] = PieceView{Kind: pc.Kind, Color: pc.Color, Cells: pc.CellBoxes(cell)}
	}

	snap := Snapshot{
		Tick:         s.tick,
		Mode:         s.opts.Mode,
		Difficulty:   s.opts.Difficulty,
		Letter:       s.tier.Letter,
		Rates:        s.rates,
		Columns:      s.cfg.Field.Columns,
		Rows:         s.cfg.Field.Rows,
		Cell:         cell,
		FieldW:       s.cfg.Field.Width(),
		FieldH:       s.cfg.Field.Height(),
		Blocks:       s.pile.Blocks(),
		Pieces:       pieces,
		Player:       s.player,
		Score:        s.score,
		TimeLeft:     s.clock.TimeLeft,
		Flash:        s.flashMs > 0,
		IdleWarning:  s.clock.IdleWarning(),
		TutorialStep: s.tutorialStep,
		Phase:        s.phase,
		Reason:       s.reason,
	}
	if s.opts.Mode == ModeAdventure {
		snap.Level = s.opts.Level
		snap.LevelLabel = s.level.Label
	}
	if s.opts.Mode == ModeTraining {
		if prompts := s.cfg.Training.Prompts; len(prompts) > 0 {
			snap.Prompt = prompts[min(s.tutorialStep, len(prompts)-1)]
		}
	}
	return snap
}
