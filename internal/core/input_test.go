package core

import (
	"slices"
	"testing"
)

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionLeft) || !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionJump)
	f.Set(ActionLeft)
	if !f.Has(ActionLeft) || !f.Has(ActionJump) || f.Has(ActionRight) {
		t.Error("Set actions should be reported by Has")
	}
	if got := f.Actions(); !slices.Equal(got, []Action{ActionLeft, ActionJump}) {
		t.Errorf("Actions() = %v", got)
	}

	copied := f
	f.Clear()
	if f.Has(ActionLeft) || !f.Empty() {
		t.Error("Clear should remove all actions")
	}
	if !copied.Has(ActionLeft) || !copied.Has(ActionJump) {
		t.Error("copies should not share state")
	}

	var zero InputFrame
	if zero.Has(ActionRight) {
		t.Error("zero frame should report nothing held")
	}
	zero.Set(ActionRight)
	if !zero.Has(ActionRight) {
		t.Error("Set on zero frame should work")
	}
}

func TestInputFrameIgnoresUnknown(t *testing.T) {
	var f InputFrame
	f.Set(ActionNone)
	f.Set(Action(200))
	if !f.Empty() {
		t.Errorf("frame = %v, want empty", f.Actions())
	}
	if f.Has(Action(200)) {
		t.Error("unknown action reported as held")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionLeft:  "Left",
		ActionRight: "Right",
		ActionJump:  "Jump",
		ActionPause: "Pause",
		Action(99):  "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, want)
		}
	}
}

func TestTickMillis(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TickMillis(); got < 16.66 || got > 16.67 {
		t.Errorf("TickMillis() at 60 fps = %v", got)
	}
	cfg.TickRate = 0
	if got := cfg.TickMillis(); got < 16.66 || got > 16.67 {
		t.Errorf("TickMillis() should fall back to 60 fps, got %v", got)
	}
}
