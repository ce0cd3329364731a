package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/block-survivor/internal/core"
)

// actionBinding ties a key binding to the game action it produces.
type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// menuBinding ties a key binding to a menu action.
type menuBinding struct {
	binding key.Binding
	action  MenuAction
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
// Bindings are checked in order, so quit always wins.
type KeyMapper struct {
	game []actionBinding
	menu []menuBinding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		game: []actionBinding{
			{key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")), core.ActionQuit},
			{key.NewBinding(key.WithKeys("a", "left", "h"), key.WithHelp("a/←", "left")), core.ActionLeft},
			{key.NewBinding(key.WithKeys("d", "right", "l"), key.WithHelp("d/→", "right")), core.ActionRight},
			{key.NewBinding(key.WithKeys(" ", "w", "up", "k"), key.WithHelp("space", "jump")), core.ActionJump},
			{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")), core.ActionConfirm},
			{key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "back")), core.ActionBack},
			{key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")), core.ActionPause},
			{key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")), core.ActionRestart},
		},
		menu: []menuBinding{
			{key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")), MenuActionQuit},
			{key.NewBinding(key.WithKeys("w", "up", "k"), key.WithHelp("↑/↓", "navigate")), MenuActionUp},
			{key.NewBinding(key.WithKeys("s", "down", "j")), MenuActionDown},
			{key.NewBinding(key.WithKeys("a", "left", "h"), key.WithHelp("←/→", "difficulty")), MenuActionLeft},
			{key.NewBinding(key.WithKeys("d", "right", "l")), MenuActionRight},
			{key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")), MenuActionSelect},
			{key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "back")), MenuActionBack},
			{key.NewBinding(key.WithKeys("tab", "o"), key.WithHelp("tab", "scores")), MenuActionScoreboard},
		},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.game {
		if key.Matches(msg, b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, b := range km.menu {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return MenuActionNone
}

// MenuHelp returns a one-line summary of the menu bindings.
func (km *KeyMapper) MenuHelp() string {
	bindings := make([]key.Binding, 0, len(km.menu))
	for _, b := range km.menu {
		bindings = append(bindings, b.binding)
	}
	return helpLine(bindings)
}

// helpLine joins the help text of bindings that carry one.
func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  •  ")
}
