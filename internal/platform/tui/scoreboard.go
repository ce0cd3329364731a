package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/registry"
	"github.com/vovakirdan/block-survivor/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 96  // Minimum width to show mode list sidebar
	sidebarWidth       = 30  // Width of mode list sidebar
	maxScores          = 100 // Max scores to load
)

var (
	borderColor = lipgloss.Color("240")
	accentColor = lipgloss.Color("229")
	mutedColor  = lipgloss.Color("241")
	selectColor = lipgloss.Color("57")
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Filter   key.Binding
	Mine     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.Filter, k.Mine, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Filter, k.Mine, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev mode")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "difficulty")),
		Mine:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "only mine")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardOptions selects whose scores are highlighted and which
// difficulties the filter cycles through.
type ScoreboardOptions struct {
	Player string
	Tiers  []config.DifficultyTier
}

// ScoreboardModel is the Bubble Tea model for the high score screen.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	tiers      []config.DifficultyTier
	filter     int  // Index into tiers, -1 for all difficulties
	mine       bool // Only the current player's scores
	player     string
	store      *storage.Store
	scores     []storage.ScoreEntry
	stats      *storage.GameStats
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int, opts ScoreboardOptions) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		tiers:  opts.Tiers,
		filter: -1,
		player: opts.Player,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// createTable creates a new table sized for the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 9},
		{Title: "Diff", Width: 4},
		{Title: "Lvl", Width: 3},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4
	if m.showSidebar() {
		tableWidth -= sidebarWidth + 3
	}
	// Spare width goes to the date column
	if tableWidth > 62 {
		columns[5].Width = min(tableWidth-50, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(accentColor).
		Background(selectColor).
		Bold(false)
	t.SetStyles(s)

	return t
}

// query returns the score query for the current mode and filters.
func (m ScoreboardModel) query() storage.ScoreQuery {
	q := storage.ScoreQuery{Limit: maxScores}
	if len(m.games) > 0 {
		q.GameID = m.games[m.gameCursor].ID
	}
	if m.filter >= 0 && m.filter < len(m.tiers) {
		q.Difficulty = string(m.tiers[m.filter].ID)
	}
	if m.mine {
		q.Player = m.player
	}
	return q
}

// reload fetches scores and totals for the current selection.
func (m *ScoreboardModel) reload() {
	m.scores = nil
	m.stats = nil
	if m.store != nil && len(m.games) > 0 {
		q := m.query()
		if scores, err := m.store.QueryScores(q); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(q.GameID); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
// The current player's rows are starred.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		level := "-"
		if s.Level > 0 {
			level = fmt.Sprintf("%d", s.Level)
		}
		name := s.Player
		if m.player != "" && s.Player == m.player {
			name += " *"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			name,
			printer.Sprintf("%d", s.Score),
			s.Letter,
			level,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + len(m.games) - 1) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			// Cycles all -> each tier -> all
			m.filter++
			if m.filter >= len(m.tiers) {
				m.filter = -1
			}
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Mine):
			if m.player != "" {
				m.mine = !m.mine
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// filterLabel describes the active filters.
func (m ScoreboardModel) filterLabel() string {
	label := "All difficulties"
	if m.filter >= 0 && m.filter < len(m.tiers) {
		t := m.tiers[m.filter]
		label = fmt.Sprintf("%s [%s]", t.Label, t.Letter)
	}
	if m.mine {
		label += "  |  " + m.player + " only"
	}
	return label
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title = "HIGH SCORES - " + m.games[m.gameCursor].Title
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.filterLabel(), m.width))
	b.WriteString("\n")
	if m.stats != nil {
		summary := printer.Sprintf("%d games  |  best %d  |  avg %.0f  |  last %s",
			m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore,
			m.stats.LastPlayed.Format("Jan 02 15:04"))
		b.WriteString(centerText(summary, m.width))
	}
	b.WriteString("\n\n")

	if m.showSidebar() {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(mutedColor).Render(m.help.View(m.keys)))

	return b.String()
}

func boxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
}

// renderWideLayout puts the mode list beside the table.
func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(accentColor)
		}
		sidebar.WriteString(style.Render(cursor + runewidth.Truncate(g.Title, sidebarWidth-6, ".")))
		sidebar.WriteString("\n")
	}

	left := boxStyle().Width(sidebarWidth).Render(sidebar.String())
	right := boxStyle().Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderNarrowLayout puts mode tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.games) > 0 {
		tabStyle := lipgloss.NewStyle().Foreground(mutedColor)
		activeStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Background(selectColor).
			Padding(0, 1)

		tabs := make([]string, len(m.games))
		for i, g := range m.games {
			name := runewidth.Truncate(g.Title, 14, ".")
			if i == m.gameCursor {
				tabs[i] = activeStyle.Render(name)
			} else {
				tabs[i] = tabStyle.Render(" " + name + " ")
			}
		}

		tabLine := strings.Join(tabs, " ")
		if lipgloss.Width(tabLine) > m.width-4 {
			tabLine = fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)
		}
		b.WriteString(centerText(tabLine, m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText(boxStyle().Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 {
		msg := "No scores recorded yet.\nSurvive a round to set a high score!"
		if m.filter >= 0 || m.mine {
			msg = "No scores match this filter."
		}
		return lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			Padding(2, 4).
			Render(msg)
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard on its own until the user leaves.
func RunScoreboard(store *storage.Store, width, height int, opts ScoreboardOptions) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
