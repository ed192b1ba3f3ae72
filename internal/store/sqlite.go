package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"toneterm/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the session history log backed by a local SQLite database.
// It is append-only from the workflows' point of view and is never read
// back to answer a request.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at the given path and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the -history dump read while a session is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS history (
	id          TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL,
	workflow    TEXT NOT NULL,
	input       TEXT NOT NULL DEFAULT '',
	output      TEXT NOT NULL DEFAULT '',
	score       REAL NOT NULL DEFAULT 0,
	tone        TEXT NOT NULL DEFAULT '',
	failed      INTEGER NOT NULL DEFAULT 0,
	settled_at  INTEGER NOT NULL -- unix nanoseconds, UTC
);

CREATE INDEX IF NOT EXISTS history_settled_at ON history (settled_at);
`
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Record appends one settled submission. A missing ID or time is filled in.
func (s *SQLiteStore) Record(ctx context.Context, e model.HistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.SettledAt.IsZero() {
		e.SettledAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, session_id, workflow, input, output, score, tone, failed, settled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.SessionID, e.Workflow, e.Input, e.Output, e.Score, e.Tone, e.Failed,
		e.SettledAt.UnixNano())
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, workflow, input, output, score, tone, failed, settled_at
		FROM history ORDER BY settled_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var (
			e       model.HistoryEntry
			settled int64
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Workflow, &e.Input, &e.Output, &e.Score, &e.Tone, &e.Failed, &settled); err != nil {
			return nil, err
		}
		e.SettledAt = time.Unix(0, settled).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history").Scan(&count)
	return count, err
}
