// Package storage provides SQLite-based persistence for finished games,
// the leaderboard and per-player statistics.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snake-arena/internal/session"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

// AnonymousPlayer is stored when a game has no player name.
const AnonymousPlayer = "anonymous"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished game.
type GameRecord struct {
	ID           string
	Player       string
	Mode         snake.Mode
	Score        int
	SnakeLength  int
	Moves        int
	FoodEaten    int
	DurationSecs int
	Reason       snake.Reason
	CreatedAt    time.Time
}

// LeaderboardEntry is a ranked game on the leaderboard.
type LeaderboardEntry struct {
	Rank        int
	GameID      string
	Player      string
	Mode        snake.Mode
	Score       int
	SnakeLength int
	CreatedAt   time.Time
}

// PlayerStats aggregates all games of one player.
type PlayerStats struct {
	Player       string
	GamesPlayed  int
	TotalScore   int64
	BestScore    int
	AverageScore float64 // Rounded to two decimals
	LastPlayed   time.Time
}

// ModeStats aggregates all games of one mode.
type ModeStats struct {
	Mode       snake.Mode
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The path is used as given; callers expand ~ with config.ExpandHome.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows a single writer; the SSH and web servers save concurrently.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			snake_length INTEGER NOT NULL DEFAULT 1,
			moves INTEGER NOT NULL DEFAULT 0,
			food_eaten INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(mode, score DESC);
		CREATE INDEX IF NOT EXISTS idx_games_player ON games(player, created_at DESC);
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

// SaveGame records a finished game and returns its ID.
// A missing ID is generated; a missing player is stored as AnonymousPlayer.
func (s *Store) SaveGame(rec GameRecord) (string, error) {
	if !rec.Mode.Valid() {
		return "", fmt.Errorf("storage: cannot save game: %w", snake.ErrInvalidMode)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if strings.TrimSpace(rec.Player) == "" {
		rec.Player = AnonymousPlayer
	}

	_, err := s.db.Exec(
		`INSERT INTO games
		 (id, player, mode, score, snake_length, moves, food_eaten, duration_secs, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Player,
		string(rec.Mode),
		rec.Score,
		rec.SnakeLength,
		rec.Moves,
		rec.FoodEaten,
		rec.DurationSecs,
		string(rec.Reason),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	return rec.ID, nil
}

// SaveResult implements session.ResultSaver.
func (s *Store) SaveResult(player string, sum snake.Summary) error {
	_, err := s.SaveGame(RecordFromSummary(player, sum))
	return err
}

var _ session.ResultSaver = (*Store)(nil)

// RecordFromSummary converts an engine summary into a storable record.
func RecordFromSummary(player string, sum snake.Summary) GameRecord {
	return GameRecord{
		Player:       player,
		Mode:         sum.Mode,
		Score:        sum.Score,
		SnakeLength:  sum.SnakeLength,
		Moves:        sum.Moves,
		FoodEaten:    sum.FoodEaten,
		DurationSecs: sum.DurationSeconds(),
		Reason:       sum.Reason,
	}
}

// TopScores returns the leaderboard: games with a positive score, best
// first. An empty mode ranks both modes together.
func (s *Store) TopScores(mode snake.Mode, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, mode, score, snake_length, created_at
		 FROM games
		 WHERE score > 0 AND (? = '' OR mode = ?)
		 ORDER BY score DESC, created_at ASC, rowid ASC
		 LIMIT ?`,
		string(mode), string(mode), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var m string
		var createdAt any
		if err := rows.Scan(&e.GameID, &e.Player, &m, &e.Score, &e.SnakeLength, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Mode = snake.Mode(m)
		e.CreatedAt = parseTime(createdAt)
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score for the mode, or 0 if none exist.
func (s *Store) HighScore(mode snake.Mode) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM games WHERE (? = '' OR mode = ?)",
		string(mode), string(mode),
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// PlayerStats returns aggregates for a player. An unknown player gets
// zero stats, not an error.
func (s *Store) PlayerStats(player string) (PlayerStats, error) {
	stats := PlayerStats{Player: player}

	var avg float64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(score), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), MAX(created_at)
		 FROM games WHERE player = ?`,
		player,
	).Scan(&stats.GamesPlayed, &stats.TotalScore, &stats.BestScore, &avg, &lastPlayed)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("storage: cannot get player stats: %w", err)
	}

	stats.AverageScore = roundScore(avg)
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// RecentGames returns a player's games, newest first.
func (s *Store) RecentGames(player string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, mode, score, snake_length, moves, food_eaten,
		        duration_secs, end_reason, created_at
		 FROM games
		 WHERE player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var mode, reason string
		var createdAt any
		if err := rows.Scan(
			&g.ID,
			&g.Player,
			&mode,
			&g.Score,
			&g.SnakeLength,
			&g.Moves,
			&g.FoodEaten,
			&g.DurationSecs,
			&reason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.Mode = snake.Mode(mode)
		g.Reason = snake.Reason(reason)
		g.CreatedAt = parseTime(createdAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// GameByID returns a single game, or nil if it does not exist.
func (s *Store) GameByID(id string) (*GameRecord, error) {
	var g GameRecord
	var mode, reason string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, player, mode, score, snake_length, moves, food_eaten,
		        duration_secs, end_reason, created_at
		 FROM games WHERE id = ?`,
		id,
	).Scan(&g.ID, &g.Player, &mode, &g.Score, &g.SnakeLength, &g.Moves,
		&g.FoodEaten, &g.DurationSecs, &reason, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}

	g.Mode = snake.Mode(mode)
	g.Reason = snake.Reason(reason)
	g.CreatedAt = parseTime(createdAt)
	return &g, nil
}

// ModeStats returns aggregates for every mode that has been played.
func (s *Store) ModeStats() (map[snake.Mode]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM games
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[snake.Mode]*ModeStats)
	for rows.Next() {
		var ms ModeStats
		var mode string
		var lastPlayed any
		if err := rows.Scan(&mode, &ms.GamesCount, &ms.HighScore, &ms.AvgScore, &ms.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ms.Mode = snake.Mode(mode)
		ms.AvgScore = roundScore(ms.AvgScore)
		ms.LastPlayed = parseTime(lastPlayed)
		stats[ms.Mode] = &ms
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearScores deletes all games of a mode, or every game if mode is empty.
func (s *Store) ClearScores(mode snake.Mode) error {
	_, err := s.db.Exec("DELETE FROM games WHERE (? = '' OR mode = ?)", string(mode), string(mode))
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
// roundScore rounds an average score to two decimals.
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

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
