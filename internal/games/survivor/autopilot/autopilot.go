// Package autopilot plays Block Survivor from snapshots. It drives the
// headless batch runner and is not meant to be a strong player.
package autopilot

import (
	"math"

	"github.com/vovakirdan/block-survivor/internal/games/survivor/sim"
)

// Pilot picks inputs from the session snapshot of each tick.
type Pilot struct {
	// KeepAlive is how many ticks a safe pilot may stand still before hopping.
	KeepAlive uint64

	lastX   float64
	pushing bool
}

// New creates a pilot that hops at least twice a second when idle.
func New() *Pilot {
	return &Pilot{KeepAlive: 30}
}

// Decide returns the input for the next tick.
func (p *Pilot) Decide(s sim.Snapshot) sim.Input {
	pl := s.Player
	stuck := p.pushing && pl.X == p.lastX
	p.lastX = pl.X
	p.pushing = false

	danger := threatened(s)
	here := int(math.Floor((pl.X + pl.Width/2) / s.Cell))
	if !danger[here] && !overlapsDanger(s, danger) {
		if p.KeepAlive > 0 && s.Tick%p.KeepAlive == 0 {
			return sim.Input{Jump: true}
		}
		return sim.Input{}
	}

	target, ok := nearestSafe(danger, here)
	if !ok {
		return sim.Input{Jump: true}
	}

	in := sim.Input{}
	center := (float64(target) + 0.5) * s.Cell
	switch {
	case pl.X+pl.Width/2 < center:
		in.Right = true
	default:
		in.Left = true
	}
	p.pushing = true
	if stuck {
		in.Jump = true
	}
	return in
}

// threatened marks every column under a falling cell that is above the
// player's feet.
func threatened(s sim.Snapshot) []bool {
	danger := make([]bool, s.Columns)
	feet := s.Player.Y + s.Player.Height
	for _, pc := range s.Pieces {
		for _, c := range pc.Cells {
			if c.Top() >= feet {
				continue
			}
			col := int(math.Floor(c.X / s.Cell))
			if col >= 0 && col < s.Columns {
				danger[col] = true
			}
		}
	}
	return danger
}

// overlapsDanger reports whether the player's body straddles a threatened column.
func overlapsDanger(s sim.Snapshot, danger []bool) bool {
	first := int(math.Floor(s.Player.X / s.Cell))
	last := int(math.Floor((s.Player.X + s.Player.Width - 1e-6) / s.Cell))
	for col := max(first, 0); col <= min(last, s.Columns-1); col++ {
		if danger[col] {
			return true
		}
	}
	return false
}

// nearestSafe returns the closest unthreatened column, preferring the left on ties.
func nearestSafe(danger []bool, from int) (int, bool) {
	for d := 0; d < len(danger); d++ {
		if l := from - d; l >= 0 && !danger[l] {
			return l, true
		}
		if r := from + d; r < len(danger) && !danger[r] {
			return r, true
		}
	}
	return 0, false
}
