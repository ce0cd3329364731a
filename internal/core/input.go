package core

// Action is a semantic game action, decoupled from the key that produced it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move left
	ActionRight          // D, Right arrow - move right
	ActionJump           // Space, W, Up - jump
	ActionConfirm        // Enter
	ActionBack           // B, Escape - back to menu
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:    "None",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionJump:    "Jump",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions held during one simulation tick.
// Frontends fill it from their input source; games only read it.
// The zero value is an empty frame and frames copy by value.
type InputFrame struct {
	held uint16
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as held for this frame. ActionNone and unknown
// actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.held |= 1 << a
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.held&(1<<a) != 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.held = 0
}

// Empty reports whether no action is held.
func (f InputFrame) Empty() bool {
	return f.held == 0
}

// Actions lists the held actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
