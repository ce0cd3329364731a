package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/block-survivor/internal/config"
	"github.com/vovakirdan/block-survivor/internal/games/survivor"
	"github.com/vovakirdan/block-survivor/internal/storage"
)

func testScoreboard(t *testing.T) ScoreboardModel {
	t.Helper()
	store := testStore(t)
	for _, e := range []storage.ScoreEntry{
		{GameID: survivor.IDFree, Player: "ana", Score: 400, Difficulty: "hard", Letter: "H"},
		{GameID: survivor.IDFree, Player: "bo", Score: 300, Difficulty: "easy", Letter: "E"},
		{GameID: survivor.IDFree, Player: "ana", Score: 100, Difficulty: "easy", Letter: "E"},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 80, 30, ScoreboardOptions{
		Player: "ana",
		Tiers:  config.DefaultSurvivorConfig().Difficulty.Tiers,
	})
	for i, g := range m.games {
		if g.ID == survivor.IDFree {
			m.gameCursor = i
		}
	}
	m.reload()
	return m
}

func sbKey(t *testing.T, m ScoreboardModel, msg tea.KeyMsg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(ScoreboardModel)
}

func TestScoreboardMarksPlayer(t *testing.T) {
	m := testScoreboard(t)

	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][1] != "ana *" || rows[1][1] != "bo" {
		t.Errorf("players = %q, %q", rows[0][1], rows[1][1])
	}
	if rows[0][2] != "400" || rows[0][3] != "H" {
		t.Errorf("first row = %v", rows[0])
	}
	if !strings.Contains(m.View(), "All difficulties") {
		t.Error("view should show the active filter")
	}
}

func TestScoreboardFilters(t *testing.T) {
	m := testScoreboard(t)
	if m.tiers[0].ID != config.DifficultyEasy {
		t.Fatalf("first tier = %s, want easy", m.tiers[0].ID)
	}

	m = sbKey(t, m, runeKey("f"))
	if len(m.scores) != 2 {
		t.Errorf("easy filter shows %d scores, want 2", len(m.scores))
	}

	m = sbKey(t, m, runeKey("m"))
	if len(m.scores) != 1 || m.scores[0].Score != 100 {
		t.Errorf("easy + mine = %+v", m.scores)
	}
	if !strings.Contains(m.View(), "ana only") {
		t.Error("view should show the player filter")
	}

	// Cycle through the remaining tiers back to all
	for range m.tiers {
		m = sbKey(t, m, runeKey("f"))
	}
	if m.filter != -1 || len(m.scores) != 2 {
		t.Errorf("filter = %d with %d scores, want all of ana's 2", m.filter, len(m.scores))
	}
}

func TestScoreboardModesAndBack(t *testing.T) {
	m := testScoreboard(t)
	m = sbKey(t, m, runeKey("m"))

	m = sbKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.games[m.gameCursor].ID == survivor.IDFree {
		t.Fatal("tab should switch mode")
	}
	if len(m.scores) != 0 || !strings.Contains(m.View(), "No scores match") {
		t.Error("other modes have no scores")
	}

	m = sbKey(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.games[m.gameCursor].ID != survivor.IDFree {
		t.Error("shift+tab should switch back")
	}

	m = sbKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 120, 30, ScoreboardOptions{})
	if len(m.scores) != 0 {
		t.Fatal("no store means no scores")
	}
	view := m.View()
	if !strings.Contains(view, "No scores recorded yet") || !strings.Contains(view, "Modes") {
		t.Errorf("wide empty view = %q", view)
	}

	// Mine does nothing without a player
	m = sbKey(t, m, runeKey("m"))
	if m.mine {
		t.Error("mine filter needs a player")
	}
}
