// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an optional SQLite record of conversion runs made
// through the interactive app. It sits entirely off the conversion data
// path: recording failures are logged by the caller and otherwise ignored.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mdconvert/internal/convert"
)

// Run is one recorded conversion run.
type Run struct {
	ID        string     `json:"id"`
	StartedAt time.Time  `json:"started_at"`
	Source    string     `json:"source"` // "upload", "folder", or "upload+folder"
	Total     int        `json:"total"`
	Succeeded int        `json:"succeeded"`
	Files     []FileSpan `json:"files,omitempty"`
}

// FileSpan is the per-file outcome within a run.
type FileSpan struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			source TEXT NOT NULL,
			total INTEGER NOT NULL,
			succeeded INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_files (
			run_id TEXT NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			ok INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_files_run_id ON run_files(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the outcome of one conversion run and returns its id.
func (s *Store) Record(ctx context.Context, source string, startedAt time.Time, rs *convert.ResultSet) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("starting history transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, source, total, succeeded) VALUES (?, ?, ?, ?, ?)`,
		id, startedAt.UTC().Format(time.RFC3339), source, rs.Len(), rs.Succeeded())
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, entry := range rs.Entries() {
		errText := ""
		if entry.Failed() {
			errText = entry.Text
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_files (run_id, name, ok, error) VALUES (?, ?, ?, ?)`,
			id, filepath.Base(entry.Path), !entry.Failed(), errText)
		if err != nil {
			return "", fmt.Errorf("inserting run file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing history transaction: %w", err)
	}
	return id, nil
}

// Recent returns the most recent runs, newest first, without per-file detail.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, source, total, succeeded FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Source, &r.Total, &r.Succeeded); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the per-file outcomes for one run.
func (s *Store) Files(ctx context.Context, runID string) ([]FileSpan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, ok, error FROM run_files WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run files: %w", err)
	}
	defer rows.Close()

	var files []FileSpan
	for rows.Next() {
		var f FileSpan
		if err := rows.Scan(&f.Name, &f.OK, &f.Error); err != nil {
			return nil, fmt.Errorf("scanning run file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
