package sim

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/core"
)

// Mode selects the session rules.
type Mode uint8

const (
	ModeFree      Mode = iota // Lethal, untimed, raw difficulty rates
	ModeAdventure             // Lethal, timed level, composed rates
	ModeTraining              // Non-lethal tutorial with its own rates
)

// String returns the mode name used in logs and reports.
func (m Mode) String() string {
	switch m {
	case ModeAdventure:
		return "adventure"
	case ModeTraining:
		return "training"
	default:
		return "free"
	}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free", "":
		return ModeFree, nil
	case "adventure":
		return ModeAdventure, nil
	case "training":
		return ModeTraining, nil
	}
	return ModeFree, fmt.Errorf("sim: unknown mode %q (want free, adventure or training)", s)
}

// Phase is the session state machine.
type Phase uint8

const (
	PhaseRunning   Phase = iota
	PhasePending         // Terminal reason latched, simulation frozen for the grace interval
	PhaseFailed
	PhaseSucceeded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseFailed:
		return "failed"
	case PhaseSucceeded:
		return "succeeded"
	default:
		return "running"
	}
}

// Terminal reports whether the phase is final.
func (p Phase) Terminal() bool {
	return p == PhaseFailed || p == PhaseSucceeded
}

// Reason explains why a session ended.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonCrushed
	ReasonCeilingOut
	ReasonInactivity
	ReasonTimeUp
	ReasonTrainingComplete
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonCrushed:
		return "crushed"
	case ReasonCeilingOut:
		return "ceiling_out"
	case ReasonInactivity:
		return "inactivity"
	case ReasonTimeUp:
		return "time_up"
	case ReasonTrainingComplete:
		return "training_complete"
	default:
		return "none"
	}
}

// Success reports whether the reason ends the session in success.
func (r Reason) Success() bool {
	return r == ReasonTimeUp || r == ReasonTrainingComplete
}

// EventKind identifies something that happened during a tick.
type EventKind uint8

const (
	EventSpawn EventKind = iota
	EventSettle
	EventLineClear
	EventOverflow
	EventJump
	EventPending
	EventEnded
)

// Event is raised by Step for frontends and statistics.
type Event struct {
	Kind   EventKind
	Count  int    // Settled pieces or cleared rows
	Reason Reason // Set for EventPending and EventEnded
}

// PieceView is a read-only falling piece for renderers.
type PieceView struct {
	Kind  ShapeKind
	Color core.Color
	Cells []core.Box
}

// Snapshot is a read-only copy of the session for rendering and tests.
type Snapshot struct {
	Tick       uint64
	Mode       Mode
	Difficulty config.DifficultyPreset
	Letter     string
	Level      int // 1-based, zero outside adventure
	LevelLabel string
	Rates      config.Rates

	Columns  int
	Rows     int
	Cell     float64
	FieldW   float64
	FieldH   float64
	Blocks   []Block
	Pieces   []PieceView
	Player   Player
	Score    int
	TimeLeft int

	Flash        bool
	IdleWarning  float64
	TutorialStep int
	Prompt       string

	Phase  Phase
	Reason Reason
}

// Stats counts simulation activity.
type Stats struct {
	Spawned      int
	Settled      int
	LinesCleared int
	Overflows    int
	Jumps        int
}

// Result is exposed once the session has reached a terminal reason.
type Result struct {
	Mode       Mode
	Difficulty config.DifficultyPreset
	Letter     string
	Reason     Reason
	Success    bool
	FinalScore int
	Level      int
	Unlocked   int // Unlock frontier after this session
	Ticks      uint64
	ElapsedMs  float64
	Stats      Stats
}
