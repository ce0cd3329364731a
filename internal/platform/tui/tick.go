// Package tui provides the Bubble Tea frontend for Block Survivor.
// It handles the terminal UI loop, held-key input, menus and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. ID names the tick
// loop that scheduled it.
type TickMsg struct {
	ID   uint64
	Time time.Time
}

var lastTickID atomic.Uint64

// nextTickID returns a fresh tick loop ID. A model only steps on ticks
// from its own loop, so a tick still in flight from a previous game
// cannot start a second loop in the next one.
func nextTickID() uint64 {
	return lastTickID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick for loop id
// after a tick interval.
func tickCmd(id uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
