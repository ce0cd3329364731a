package tui

import (
	"time"

	"github.com/vovakirdan/block-survivor/internal/core"
)

// Terminals report key presses but never releases. A held key shows up as
// one press, a pause of the OS repeat delay, then a stream of repeats.
const (
	initialHold = 500 * time.Millisecond
	repeatHold  = 150 * time.Millisecond
)

// HoldTracker turns key press events into held actions.
// A press holds the action for initialHold; further presses while held
// extend it by repeatHold. Pressing the opposite direction releases the
// other one immediately.
type HoldTracker struct {
	until map[core.Action]time.Time
}

// NewHoldTracker creates an empty tracker.
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{until: make(map[core.Action]time.Time)}
}

// Press records a key press for a holdable action at time now.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	}

	hold := initialHold
	if h.Held(a, now) {
		hold = repeatHold
	}
	h.until[a] = now.Add(hold)
}

// Held reports whether a is held at time now.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	t, ok := h.until[a]
	return ok && now.Before(t)
}

// Apply sets every held action on the frame and forgets expired ones.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a, t := range h.until {
		if !now.Before(t) {
			delete(h.until, a)
			continue
		}
		frame.Set(a)
	}
}

// Release drops all held actions.
func (h *HoldTracker) Release() {
	clear(h.until)
}

// holdable reports whether an action is tracked as held state.
func holdable(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight
}
