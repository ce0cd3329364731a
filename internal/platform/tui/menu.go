package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/core"
	"github.com/vovakirdan/block-survivor/internal/games/survivor"
	"github.com/vovakirdan/block-survivor/internal/registry"
	"github.com/vovakirdan/block-survivor/internal/storage"
)

var printer = message.NewPrinter(language.English)

// MenuItem represents a selectable game mode in the menu.
type MenuItem struct {
	GameID  string
	Title   string
	Summary string
	Best    *storage.ScoreEntry // Nil when no score is stored
}

// MenuModel is the Bubble Tea model for the mode picker menu.
// Choosing adventure opens the level list.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	tiers          []config.DifficultyTier
	tierCursor     int
	levels         []config.LevelProfile
	unlocked       int
	levelCursor    int
	inLevelSelect  bool
	player         string
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuResult // Set when user starts a game
	openScoreboard bool        // True if user pressed Tab for scoreboard
}

// MenuOptions carries the state the menu displays.
type MenuOptions struct {
	Player     string
	Difficulty config.DifficultyPreset
	Survivor   config.SurvivorConfig
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, opts MenuOptions) MenuModel {
	if opts.Player == "" {
		opts.Player = storage.DefaultPlayer
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title, Summary: g.Summary}
		if store != nil {
			if best, ok, err := store.Best(g.ID); err == nil && ok {
				item.Best = &best
			}
		}
		items = append(items, item)
	}

	unlocked := 1
	if store != nil {
		if n, err := store.Unlocked(opts.Player); err == nil {
			unlocked = n
		}
	}

	m := MenuModel{
		items:     items,
		tiers:     opts.Survivor.Difficulty.Tiers,
		levels:    opts.Survivor.Levels,
		unlocked:  min(unlocked, max(len(opts.Survivor.Levels), 1)),
		player:    opts.Player,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}

	want := opts.Difficulty
	if want == "" {
		want = opts.Survivor.Difficulty.Default
	}
	for i, t := range m.tiers {
		if t.ID == want {
			m.tierCursor = i
		}
	}
	m.levelCursor = m.unlocked - 1
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if action == MenuActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}

	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.tierCursor > 0 {
			m.tierCursor--
		}

	case MenuActionRight:
		if m.tierCursor < len(m.tiers)-1 {
			m.tierCursor++
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if item.GameID == survivor.IDAdventure && len(m.levels) > 0 {
			m.inLevelSelect = true
			return m, nil
		}
		m.selected = &MenuResult{GameID: item.GameID, Difficulty: m.difficulty()}
		return m, tea.Quit // Exit menu to start game

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionLeft:
		if m.tierCursor > 0 {
			m.tierCursor--
		}
	case MenuActionRight:
		if m.tierCursor < len(m.tiers)-1 {
			m.tierCursor++
		}
	case MenuActionSelect:
		level := m.levelCursor + 1
		if level > m.unlocked {
			return m, nil // Locked
		}
		m.selected = &MenuResult{
			GameID:     survivor.IDAdventure,
			Difficulty: m.difficulty(),
			Level:      level,
			Unlocked:   m.unlocked,
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

func (m MenuModel) difficulty() config.DifficultyPreset {
	if len(m.tiers) == 0 {
		return ""
	}
	return m.tiers[m.tierCursor].ID
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B L O C K   S U R V I V O R", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Pilot: %s", m.player), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		best := ""
		if item.Best != nil {
			best = printer.Sprintf("  best %d [%s]", item.Best.Score, item.Best.Letter)
		}
		line := fmt.Sprintf("%s%-28s%s", cursor, item.Title, best)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.items) > 0 {
		b.WriteString(centerText(m.items[m.cursor].Summary, m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(centerText(m.difficultyLine(), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.keyMapper.MenuHelp(), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("A D V E N T U R E", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		status := fmt.Sprintf("%3ds", lvl.TimeLimitSeconds)
		if i+1 > m.unlocked {
			status = "locked"
		}
		line := fmt.Sprintf("%s%d. %-24s %s", cursor, i+1, lvl.Label, status)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.difficultyLine(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m MenuModel) difficultyLine() string {
	if len(m.tiers) == 0 {
		return ""
	}
	t := m.tiers[m.tierCursor]
	return fmt.Sprintf("<  Difficulty: %s [%s]  >", t.Label, t.Letter)
}

// Selected returns the chosen game, or nil if none selected.
func (m MenuModel) Selected() *MenuResult {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Difficulty      config.DifficultyPreset
	Level           int // Adventure level, 0 otherwise
	Unlocked        int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Configure applies the selection to a game created from GameID.
// configPath is the tuning file chosen on the command line.
func (r MenuResult) Configure(g registry.Game, configPath string) {
	sg, ok := g.(*survivor.Game)
	if !ok {
		return
	}
	sg.Configure(survivor.Settings{
		ConfigPath: configPath,
		Difficulty: r.Difficulty,
		Level:      r.Level,
		Unlocked:   r.Unlocked,
	})
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, opts MenuOptions) (MenuResult, error) {
	model := NewMenuModel(store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	if m.WantsScoreboard() {
		return MenuResult{Config: m.Config(), WantsScoreboard: true}, nil
	}
	if m.IsQuitting() || m.Selected() == nil {
		return MenuResult{Config: m.Config(), Quit: true}, nil
	}

	result := *m.Selected()
	result.Config = m.Config()
	return result, nil
}
