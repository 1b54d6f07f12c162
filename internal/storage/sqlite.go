// Package storage keeps a journal of played rounds in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal is an audit log only; scores are never restored from it.
// With the default ":memory:" path it lives and dies with the process.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/rps-arcade/internal/games/rps"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store manages the SQLite database connection for the round journal.
type Store struct {
	db *sql.DB
}

// RoundRecord is one journaled round.
type RoundRecord struct {
	ID             int64
	SessionID      string
	Round          int
	Player         string
	Computer       string
	Outcome        string
	PlayerPoints   int
	ComputerPoints int
	CreatedAt      time.Time
}

// Tally aggregates a session's rounds.
type Tally struct {
	SessionID     string
	Rounds        int
	Wins          int
	Losses        int
	Ties          int
	PlayerScore   int
	ComputerScore int
}

// Open creates or opens the journal at dbPath and runs migrations.
// A leading "~" is expanded and parent directories are created.
// MemoryPath opens an in-memory database pinned to a single connection so
// every caller sees the same data.
func Open(dbPath string) (*Store, error) {
	memory := dbPath == MemoryPath
	if !memory {
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
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if memory {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
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
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			player TEXT NOT NULL,
			computer TEXT NOT NULL,
			outcome TEXT NOT NULL,
			player_points INTEGER NOT NULL DEFAULT 0,
			computer_points INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (session_id, round)
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id, round);
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

// RecordRound appends a round to the journal and returns its row ID.
// Recording the same session round twice is an error.
func (s *Store) RecordRound(rec RoundRecord) (int64, error) {
	if rec.SessionID == "" {
		return 0, errors.New("storage: round record has no session ID")
	}

	result, err := s.db.Exec(
		`INSERT INTO rounds
		 (session_id, round, player, computer, outcome, player_points, computer_points)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.Round,
		rec.Player,
		rec.Computer,
		rec.Outcome,
		rec.PlayerPoints,
		rec.ComputerPoints,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecordResolution journals a scored round from the game.
func (s *Store) RecordResolution(sessionID string, res rps.Resolution) (int64, error) {
	return s.RecordRound(RoundRecord{
		SessionID:      sessionID,
		Round:          res.Round,
		Player:         res.Player.String(),
		Computer:       res.Computer.String(),
		Outcome:        res.Outcome.String(),
		PlayerPoints:   res.Points.Player,
		ComputerPoints: res.Points.Computer,
	})
}

// RecentRounds returns the session's latest rounds, newest first.
func (s *Store) RecentRounds(sessionID string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, round, player, computer, outcome, player_points, computer_points, created_at
		 FROM rounds
		 WHERE session_id = ?
		 ORDER BY round DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.SessionID,
			&r.Round,
			&r.Player,
			&r.Computer,
			&r.Outcome,
			&r.PlayerPoints,
			&r.ComputerPoints,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// SessionTally sums up a session. Unknown sessions return a zero tally.
func (s *Store) SessionTally(sessionID string) (Tally, error) {
	t := Tally{SessionID: sessionID}
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = ?), 0),
		        COALESCE(SUM(outcome = ?), 0),
		        COALESCE(SUM(outcome = ?), 0),
		        COALESCE(SUM(player_points), 0),
		        COALESCE(SUM(computer_points), 0)
		 FROM rounds WHERE session_id = ?`,
		rps.OutcomePlayerWins.String(),
		rps.OutcomeComputerWins.String(),
		rps.OutcomeTie.String(),
		sessionID,
	).Scan(&t.Rounds, &t.Wins, &t.Losses, &t.Ties, &t.PlayerScore, &t.ComputerScore)
	if err != nil {
		return Tally{}, fmt.Errorf("storage: cannot tally session: %w", err)
	}
	return t, nil
}

// ChoiceCounts returns how often the player picked each hand in a session.
// Hands never picked are absent from the map.
func (s *Store) ChoiceCounts(sessionID string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT player, COUNT(*) FROM rounds WHERE session_id = ? GROUP BY player`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count choices: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var choice string
		var n int
		if err := rows.Scan(&choice, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[choice] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}

// ClearSession deletes a session's rounds.
func (s *Store) ClearSession(sessionID string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear session: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and SQLite's text timestamps.
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
