// Package registry keeps the playable game modes. Modes register a factory
// from init() so the frontends can list and create them by ID.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/block-survivor/internal/core"
)

// Game is what every frontend drives. Implementations hold no terminal or
// window state; the frontend maps keys into frames, paces ticks and draws.
type Game interface {
	// ID is the stable key used on the command line and in score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new session. It is called once before the first Step
	// and again on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns score, pause and game over flags.
	State() core.GameState
}

// Describer is implemented by games that carry a one-line summary.
type Describer interface {
	Summary() string
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID      string
	Title   string
	Summary string
}

// ErrUnknownGame is returned by Create for IDs that were never registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Factory creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries []entry
	index   = make(map[string]int)
)

// Register adds a game factory. Panics on an empty or duplicate ID, since
// both are programming errors in an init function.
func Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game id")
	}

	// Read the title outside the lock so factories may use the registry
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Summary = d.Summary()
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := index[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	index[id] = len(entries)
	entries = append(entries, entry{info: info, factory: f})
}

// List returns every registered mode in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, len(entries))
	for i, e := range entries {
		result[i] = e.info
	}
	return result
}

// Lookup returns the info for a mode.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	i, ok := index[id]
	if !ok {
		return GameInfo{}, false
	}
	return entries[i].info, true
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	i, ok := index[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return entries[i].factory(), nil
}

// Exists reports whether a mode with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
