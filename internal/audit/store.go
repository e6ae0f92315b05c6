// Package audit persists a log of tool invocations to SQLite. The log is
// operational bookkeeping only; notes themselves are never mirrored here.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded tool invocation.
type Entry struct {
	ID         int64
	Tool       string
	OK         bool
	Error      string
	DurationMS int64
	CreatedAt  time.Time
}

// Store writes invocation records to a SQLite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewStore(dbPath string, logger *slog.Logger) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Single connection for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db, logger: logger}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS invocations (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		tool        TEXT NOT NULL,
		ok          INTEGER NOT NULL,
		error       TEXT,
		duration_ms INTEGER DEFAULT 0,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_invocations_time ON invocations(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores one invocation outcome.
func (s *Store) Record(ctx context.Context, tool string, ok bool, errText string, elapsed time.Duration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (tool, ok, error, duration_ms, created_at) VALUES (?, ?, ?, ?, ?)`,
		tool, boolToInt(ok), errText, elapsed.Milliseconds(), time.Now(),
	)
	if err != nil {
		s.logger.Warn("cannot record invocation", "tool", tool, "err", err)
	}
	return err
}

// Recent returns the most recent invocations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tool, ok, error, duration_ms, created_at
		 FROM invocations ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ok int
		if err := rows.Scan(&e.ID, &e.Tool, &ok, &e.Error, &e.DurationMS, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.OK = ok != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than the retention window and returns how
// many were removed.
func (s *Store) Prune(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM invocations WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error { return s.db.Close() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
