// Package audit keeps an append-only SQLite record of triage decisions:
// one row per turn assessment and one row per escalation outcome. It is an
// event log, not session state — nothing is ever read back to resume a
// conversation.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/theimaginaryfoundation/triage-o-bot/triage"
)

const schema = `
CREATE TABLE IF NOT EXISTS assessments (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id      TEXT    NOT NULL,
	turn            INTEGER NOT NULL,
	input_text      TEXT    NOT NULL,
	vision          TEXT    NOT NULL,
	audio           TEXT    NOT NULL,
	physio          TEXT    NOT NULL,
	emotional_state TEXT    NOT NULL,
	intensity       INTEGER NOT NULL,
	is_crisis       INTEGER NOT NULL,
	reason          TEXT    NOT NULL,
	confidence      REAL    NOT NULL,
	created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS escalations (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Store is a SQLite-backed recorder. It satisfies triage.Recorder.
type Store struct {
	db *sql.DB
}

// Open opens or creates the audit database at path and applies the schema.
// Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("audit: empty database path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("audit: create database directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("audit: open database %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// RecordAssessment appends one turn's assessment.
func (s *Store) RecordAssessment(sessionID string, turn int, input triage.MultimodalInput, a triage.Assessment) error {
	_, err := s.db.Exec(
		`INSERT INTO assessments
		 (session_id, turn, input_text, vision, audio, physio, emotional_state, intensity, is_crisis, reason, confidence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, turn, input.Text, input.Vision, input.Audio, input.Physio,
		a.EmotionalState, a.Intensity, a.IsCrisis, a.Reason, a.Confidence,
	)
	if err != nil {
		return fmt.Errorf("audit: insert assessment: %w", err)
	}
	return nil
}

// RecordEscalation appends the terminal escalation outcome for a session.
func (s *Store) RecordEscalation(sessionID string, outcome string) error {
	_, err := s.db.Exec(
		`INSERT INTO escalations (session_id, outcome) VALUES (?, ?)`,
		sessionID, outcome,
	)
	if err != nil {
		return fmt.Errorf("audit: insert escalation: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
