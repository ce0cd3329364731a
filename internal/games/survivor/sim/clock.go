package sim

import "github.com/vovakirdan/block-survivor/internal/core"

// Clock tracks simulated time, the level countdown and player inactivity.
type Clock struct {
	ElapsedMs float64
	TimeLeft  int // Whole seconds remaining; zero when the session is untimed
	IdleMs    float64

	timed     bool
	stepMs    float64
	countAcc  float64
	idleOn    bool
	idleWarn  float64
	idleLimit float64
}

// NewClock creates a clock. A positive timeLimit enables the countdown.
func NewClock(timeLimit int, stepMs float64, idleOn bool, warnMs, limitMs float64) Clock {
	return Clock{
		TimeLeft:  timeLimit,
		timed:     timeLimit > 0,
		stepMs:    stepMs,
		idleOn:    idleOn,
		idleWarn:  warnMs,
		idleLimit: limitMs,
	}
}

// Advance moves the clock forward by dt milliseconds. Movement or jump input
// resets the inactivity timer. Each full countdown step removes one second;
// the remainder carries into the next tick.
func (c *Clock) Advance(dt float64, active bool) {
	c.ElapsedMs += dt

	if active {
		c.IdleMs = 0
	} else {
		c.IdleMs += dt
	}

	if !c.timed || c.TimeLeft == 0 {
		return
	}
	c.countAcc += dt
	for c.countAcc >= c.stepMs && c.TimeLeft > 0 {
		c.countAcc -= c.stepMs
		c.TimeLeft--
	}
}

// TimeUp reports whether a timed countdown has reached zero.
func (c Clock) TimeUp() bool {
	return c.timed && c.TimeLeft == 0
}

// Idle reports whether the inactivity limit has been reached.
func (c Clock) Idle() bool {
	return c.idleOn && c.IdleMs >= c.idleLimit
}

// IdleWarning ramps from 0 at the warning threshold to 1 at the limit.
func (c Clock) IdleWarning() float64 {
	if !c.idleOn || c.IdleMs <= c.idleWarn {
		return 0
	}
	return core.ClampF((c.IdleMs-c.idleWarn)/(c.idleLimit-c.idleWarn), 0, 1)
}
