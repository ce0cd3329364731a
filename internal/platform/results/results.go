// Package results records finished games in the score store. The terminal
// and windowed frontends share it so both save the same entries.
package results

import (
	"github.com/vovakirdan/block-survivor/internal/core"
	"github.com/vovakirdan/block-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/block-survivor/internal/registry"
	"github.com/vovakirdan/block-survivor/internal/storage"
)

// Reporter is implemented by games that expose a detailed outcome.
type Reporter interface {
	Result() (sim.Result, bool)
}

// Entry builds the score entry and unlock frontier for a finished game.
// Games without a Reporter fall back to the platform game state.
func Entry(g registry.Game, player string, st core.GameState) (entry storage.ScoreEntry, unlocked int) {
	if player == "" {
		player = storage.DefaultPlayer
	}
	entry = storage.ScoreEntry{
		GameID: g.ID(),
		Player: player,
		Score:  st.Score,
		Level:  st.Level,
	}
	unlocked = st.Unlocked

	if r, ok := g.(Reporter); ok {
		if res, ok := r.Result(); ok {
			entry.Score = res.FinalScore
			entry.Difficulty = string(res.Difficulty)
			entry.Letter = res.Letter
			entry.Level = res.Level
			unlocked = res.Unlocked
		}
	}
	return entry, unlocked
}

// Save stores the score when positive and, for adventure levels, the
// unlock frontier.
func Save(store *storage.Store, g registry.Game, player string, st core.GameState) error {
	if store == nil {
		return nil
	}

	entry, unlocked := Entry(g, player, st)
	if entry.Score > 0 {
		if _, err := store.SaveScore(entry); err != nil {
			return err
		}
	}
	if entry.Level > 0 {
		return store.SaveUnlocked(entry.Player, unlocked)
	}
	return nil
}
