// Package storage provides SQLite-based persistence for finished sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/croissant-rush/internal/session"
)

// Store manages the SQLite database connection for session results.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished session.
type SessionRecord struct {
	ID         string
	Difficulty string
	Score      int
	Served     int
	Perfect    int
	Burned     int
	Discarded  int
	HazardHits int
	Duration   time.Duration
	EndReason  string // "time_up" or "quit"
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
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			served INTEGER NOT NULL DEFAULT 0,
			perfect INTEGER NOT NULL DEFAULT 0,
			burned INTEGER NOT NULL DEFAULT 0,
			discarded INTEGER NOT NULL DEFAULT 0,
			hazard_hits INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_difficulty ON sessions(difficulty);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(difficulty, score DESC);
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

// SaveSession records a finished session. An empty ID is replaced with a new
// UUID. Returns the ID of the stored record.
func (s *Store) SaveSession(rec SessionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (id, difficulty, score, served, perfect, burned, discarded, hazard_hits, duration_ms, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Difficulty,
		rec.Score,
		rec.Served,
		rec.Perfect,
		rec.Burned,
		rec.Discarded,
		rec.HazardHits,
		rec.Duration.Milliseconds(),
		rec.EndReason,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return rec.ID, nil
}

// SaveSessionResult implements session.ResultSaver.
func (s *Store) SaveSessionResult(data session.ResultData) error {
	_, err := s.SaveSession(SessionRecord{
		ID:         data.ID,
		Difficulty: data.Difficulty,
		Score:      data.Score,
		Served:     data.Served,
		Perfect:    data.Perfect,
		Burned:     data.Burned,
		Discarded:  data.Discarded,
		HazardHits: data.HazardHits,
		Duration:   data.Duration,
		EndReason:  data.EndReason,
	})
	return err
}

// Ensure Store implements ResultSaver
var _ session.ResultSaver = (*Store)(nil)

const sessionColumns = `id, difficulty, score, served, perfect, burned, discarded,
		        hazard_hits, duration_ms, end_reason, created_at`

// SessionByID retrieves one session, or nil if there is none with that ID.
func (s *Store) SessionByID(id string) (*SessionRecord, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &rec, nil
}

// TopScores retrieves the top N sessions for the given difficulty.
// Results are ordered by score descending, earlier sessions first on ties.
func (s *Store) TopScores(difficulty string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySessions(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE difficulty = ?
		 ORDER BY score DESC, created_at ASC, rowid ASC
		 LIMIT ?`,
		difficulty, limit,
	)
}

// RecentSessions retrieves the most recent sessions of any difficulty.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySessions(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// HighScore returns the highest score for the given difficulty.
// Returns 0 if no sessions exist.
func (s *Store) HighScore(difficulty string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM sessions WHERE difficulty = ?",
		difficulty,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all sessions for the given difficulty.
func (s *Store) ClearScores(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE difficulty = ?", difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// DifficultyStats contains aggregated statistics for one difficulty.
type DifficultyStats struct {
	Difficulty string
	Sessions   int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	Served     int
	Perfect    int
	Burned     int
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for the given difficulty.
func (s *Store) Stats(difficulty string) (*DifficultyStats, error) {
	stats := &DifficultyStats{Difficulty: difficulty}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
		        COALESCE(SUM(served), 0), COALESCE(SUM(perfect), 0), COALESCE(SUM(burned), 0)
		 FROM sessions WHERE difficulty = ?`,
		difficulty,
	).Scan(&stats.Sessions, &stats.HighScore, &stats.AvgScore, &stats.TotalScore,
		&stats.Served, &stats.Perfect, &stats.Burned)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE difficulty = ? ORDER BY created_at DESC LIMIT 1`,
		difficulty,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

func (s *Store) querySessions(query string, args ...any) ([]SessionRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionRecord, error) {
	var rec SessionRecord
	var durationMs int64
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.Difficulty,
		&rec.Score,
		&rec.Served,
		&rec.Perfect,
		&rec.Burned,
		&rec.Discarded,
		&rec.HazardHits,
		&durationMs,
		&rec.EndReason,
		&createdAt,
	)
	if err != nil {
		return SessionRecord{}, err
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles the driver returning either time.Time or a string.
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
