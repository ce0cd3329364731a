package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/block-survivor/internal/core"
)

func TestHoldTrackerInitialPress(t *testing.T) {
	h := NewHoldTracker()
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionLeft, t0)
	if !h.Held(core.ActionLeft, t0.Add(initialHold-time.Millisecond)) {
		t.Error("left should be held until the initial hold expires")
	}
	if h.Held(core.ActionLeft, t0.Add(initialHold)) {
		t.Error("left should be released once the initial hold expires")
	}
}

func TestHoldTrackerRepeat(t *testing.T) {
	h := NewHoldTracker()
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionRight, t0)
	// A repeat while held extends by the short repeat hold
	repeat := t0.Add(initialHold - 10*time.Millisecond)
	h.Press(core.ActionRight, repeat)

	if !h.Held(core.ActionRight, repeat.Add(repeatHold-time.Millisecond)) {
		t.Error("right should be held after a repeat")
	}
	if h.Held(core.ActionRight, repeat.Add(repeatHold)) {
		t.Error("repeat hold should expire")
	}
}

func TestHoldTrackerOppositeReleases(t *testing.T) {
	h := NewHoldTracker()
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionRight, t0.Add(50*time.Millisecond))

	now := t0.Add(100 * time.Millisecond)
	if h.Held(core.ActionLeft, now) {
		t.Error("pressing right should release left")
	}
	if !h.Held(core.ActionRight, now) {
		t.Error("right should be held")
	}
}

func TestHoldTrackerApply(t *testing.T) {
	h := NewHoldTracker()
	t0 := time.Unix(1000, 0)
	h.Press(core.ActionLeft, t0)

	frame := core.NewInputFrame()
	h.Apply(&frame, t0.Add(time.Millisecond))
	if !frame.Has(core.ActionLeft) {
		t.Error("Apply should set held actions")
	}

	frame.Clear()
	h.Apply(&frame, t0.Add(initialHold))
	if frame.Has(core.ActionLeft) {
		t.Error("Apply should skip expired actions")
	}
	if len(h.until) != 0 {
		t.Errorf("expired actions should be forgotten, have %d", len(h.until))
	}
}

func TestHoldTrackerRelease(t *testing.T) {
	h := NewHoldTracker()
	t0 := time.Unix(1000, 0)
	h.Press(core.ActionLeft, t0)
	h.Release()

	if h.Held(core.ActionLeft, t0) {
		t.Error("Release should drop held actions")
	}
}

func TestHoldable(t *testing.T) {
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight} {
		if !holdable(a) {
			t.Errorf("%v should be holdable", a)
		}
	}
	for _, a := range []core.Action{core.ActionJump, core.ActionPause, core.ActionRestart} {
		if holdable(a) {
			t.Errorf("%v should not be holdable", a)
		}
	}
}
