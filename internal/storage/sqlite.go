// Package storage provides SQLite-based persistence for scores, adventure
// progress and player settings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SettingPlayerName is the settings key holding the player codename.
const SettingPlayerName = "player_name"

// DefaultPlayer owns scores and progress when no codename is set.
const DefaultPlayer = "player"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID         int64
	GameID     string
	Player     string
	Score      int
	Difficulty string // Tier ID, e.g. "hard"
	Letter     string // Tier letter shown next to the score
	Level      int    // Adventure level, 0 otherwise
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'player',
			score INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			letter TEXT NOT NULL DEFAULT '',
			level INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS progress (
			player TEXT PRIMARY KEY,
			unlocked INTEGER NOT NULL DEFAULT 1,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a finished session. An empty player is stored as DefaultPlayer.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.Player == "" {
		e.Player = DefaultPlayer
	}
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, player, score, difficulty, letter, level) VALUES (?, ?, ?, ?, ?, ?)",
		e.GameID, e.Player, e.Score, e.Difficulty, e.Letter, e.Level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const scoreColumns = `id, game_id, player, score, difficulty, letter, level, created_at`

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &e.Difficulty, &e.Letter, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ScoreQuery selects scores of one game. Empty Difficulty or Player match
// every row; Limit <= 0 returns all rows.
type ScoreQuery struct {
	GameID     string
	Difficulty string
	Player     string
	Limit      int
}

// QueryScores returns matching scores ordered by score descending,
// earliest first on ties.
func (s *Store) QueryScores(q ScoreQuery) ([]ScoreEntry, error) {
	var where strings.Builder
	args := []any{q.GameID}
	where.WriteString("game_id = ?")
	if q.Difficulty != "" {
		where.WriteString(" AND difficulty = ?")
		args = append(args, q.Difficulty)
	}
	if q.Player != "" {
		where.WriteString(" AND player = ?")
		args = append(args, q.Player)
	}

	query := `SELECT ` + scoreColumns + ` FROM scores WHERE ` + where.String() + ` ORDER BY score DESC, id ASC`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// TopScores retrieves the top N scores for the given game.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.QueryScores(ScoreQuery{GameID: gameID, Limit: limit})
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.QueryScores(ScoreQuery{GameID: gameID})
}

// Best returns the top score entry for the game, with its difficulty letter.
// ok is false when the game has no scores.
func (s *Store) Best(gameID string) (entry ScoreEntry, ok bool, err error) {
	top, err := s.TopScores(gameID, 1)
	if err != nil {
		return ScoreEntry{}, false, err
	}
	if len(top) == 0 {
		return ScoreEntry{}, false, nil
	}
	return top[0], true, nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Unlocked returns the player's adventure unlock frontier, at least 1.
func (s *Store) Unlocked(player string) (int, error) {
	if player == "" {
		player = DefaultPlayer
	}
	var n int
	err := s.db.QueryRow("SELECT unlocked FROM progress WHERE player = ?", player).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return max(n, 1), nil
}

// SaveUnlocked stores the player's unlock frontier. The stored value never
// decreases.
func (s *Store) SaveUnlocked(player string, unlocked int) error {
	if player == "" {
		player = DefaultPlayer
	}
	_, err := s.db.Exec(
		`INSERT INTO progress (player, unlocked) VALUES (?, ?)
		 ON CONFLICT(player) DO UPDATE SET
		   unlocked = MAX(unlocked, excluded.unlocked),
		   updated_at = CURRENT_TIMESTAMP`,
		player, max(unlocked, 1),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// Setting returns the value for key. ok is false when the key is unset.
func (s *Store) Setting(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot query setting %s: %w", key, err)
	}
	return value, true, nil
}

// Player name length limits, in runes.
const (
	MinPlayerName = 2
	MaxPlayerName = 12
)

// ErrInvalidPlayerName is returned for codenames outside the length limits.
var ErrInvalidPlayerName = fmt.Errorf("storage: player name must be %d-%d characters", MinPlayerName, MaxPlayerName)

// NormalizePlayerName trims the name and checks its length.
func NormalizePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < MinPlayerName || n > MaxPlayerName {
		return "", ErrInvalidPlayerName
	}
	return name, nil
}

// PlayerName returns the stored codename, or DefaultPlayer when unset.
func (s *Store) PlayerName() (string, error) {
	name, ok, err := s.Setting(SettingPlayerName)
	if err != nil {
		return DefaultPlayer, err
	}
	if !ok || name == "" {
		return DefaultPlayer, nil
	}
	return name, nil
}

// SetPlayerName validates and stores the codename.
func (s *Store) SetPlayerName(name string) error {
	name, err := NormalizePlayerName(name)
	if err != nil {
		return err
	}
	return s.SetSetting(SettingPlayerName, name)
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save setting %s: %w", key, err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}
