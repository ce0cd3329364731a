package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/block-survivor/internal/core"
	"github.com/vovakirdan/block-survivor/internal/platform/results"
	"github.com/vovakirdan/block-survivor/internal/registry"
	"github.com/vovakirdan/block-survivor/internal/storage"
)

// CueSink receives the presentational cues raised by each tick.
type CueSink interface {
	Play(c core.Cue)
}

// Options configures a game model beyond the runtime config.
type Options struct {
	Player  string   // Owner of saved scores and progress
	Sound   CueSink  // Optional; nil plays nothing
	Palette *Palette // Output colors; nil uses the local terminal
	// ExitOnBack quits the program instead of returning to a menu.
	ExitOnBack bool
}

// Model is the Bubble Tea model for running a single game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	hold       *HoldTracker
	tickID     uint64
	inputFrame core.InputFrame
	gameState  core.GameState
	now        func() time.Time
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = storage.DefaultPlayer
	}
	if opts.Palette == nil {
		opts.Palette = defaultPalette
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		hold:       NewHoldTracker(),
		tickID:     nextTickID(),
		inputFrame: core.NewInputFrame(),
		now:        time.Now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.tickID, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The field layout is fixed; only the screen buffer follows the window.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			if m.opts.ExitOnBack {
				m.quitting = true
				return m, tea.Quit
			}
			m.backToMenu = true
			return m, nil
		}
		m.inputFrame.Set(core.ActionPause)
	case holdable(action):
		m.hold.Press(action, m.now())
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.hold.Release()
		m.inputFrame.Clear()
		return m, tickCmd(m.tickID, m.config.TickRate)
	}

	if m.gameState.Paused {
		m.hold.Release()
	}
	m.hold.Apply(&m.inputFrame, m.now())

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if m.opts.Sound != nil {
		for _, c := range result.Cues {
			m.opts.Sound.Play(c)
		}
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.tickID, m.config.TickRate)
}

// saveResult stores the score and adventure progress of a finished game.
func (m *Model) saveResult() {
	//nolint:errcheck // Best-effort save, game continues regardless
	results.Save(m.store, m.game, m.opts.Player, m.gameState)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".survivor", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.opts.Palette.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	opts.ExitOnBack = true
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
