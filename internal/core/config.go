package core

// RuntimeConfig is what a frontend knows when it starts a session: the size
// of its drawing surface, how fast it ticks and which seed to use.
type RuntimeConfig struct {
	ScreenW  int   // Columns of the terminal or window text grid
	ScreenH  int   // Rows of the same grid
	TickRate int   // Fixed ticks per second, 60 unless --fps says otherwise
	Seed     int64 // Spawner seed, 0 lets the frontend pick one from the clock
}

// DefaultConfig matches a classic 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// TickMillis returns the simulated duration of one tick in milliseconds.
func (c RuntimeConfig) TickMillis() float64 {
	if c.TickRate <= 0 {
		return 1000.0 / 60.0
	}
	return 1000.0 / float64(c.TickRate)
}

// GameState is the summary a frontend needs after every tick.
type GameState struct {
	Score    int
	GameOver bool // Terminal phase reached, the result is final
	Won      bool // Ended by victory or training completion
	Paused   bool
	Level    int // Adventure level, 0 in the other modes
	Unlocked int // Unlock frontier including this session's outcome
}

// StepResult carries the state after a tick and the cues it raised, in order.
type StepResult struct {
	State GameState
	Cues  []Cue
}
