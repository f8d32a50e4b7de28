// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records conversion runs in a SQLite database so earlier
// runs can be listed and compared.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docpdf/internal/convert"
)

// timeLayout is fixed-width so stored timestamps sort chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Run summarises one recorded run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	InputDir   string
	OutputDir  string
	Language   string
	Succeeded  int
	Failed     int
	Files      int
}

// Open opens or creates the history database at path, creating its parent
// directory and schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
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
			finished_at TEXT NOT NULL,
			input_dir TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			language TEXT NOT NULL,
			succeeded INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			input_path TEXT NOT NULL,
			output_path TEXT,
			status TEXT NOT NULL,
			detail TEXT,
			pages INTEGER,
			duration_ms INTEGER,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_input_path ON files(input_path)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a finished run and its per-file results in one transaction.
func (s *Store) Record(ctx context.Context, r convert.BatchResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, input_dir, output_dir, language, succeeded, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.StartedAt.UTC().Format(timeLayout),
		r.FinishedAt.UTC().Format(timeLayout),
		r.InputDir, r.OutputDir, string(r.Language),
		r.Succeeded, r.Failed,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", r.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO files (run_id, seq, input_path, output_path, status, detail, pages, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing file insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range r.Files {
		if _, err := stmt.ExecContext(ctx,
			r.RunID, i, f.InputPath, f.OutputPath, string(f.Status), f.Detail,
			f.Pages, f.Duration.Milliseconds(),
		); err != nil {
			return fmt.Errorf("inserting file %s: %w", f.InputPath, err)
		}
	}

	return tx.Commit()
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.started_at, r.finished_at, r.input_dir, r.output_dir, r.language,
		        r.succeeded, r.failed, COUNT(f.seq)
		 FROM runs r LEFT JOIN files f ON f.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.started_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.InputDir, &r.OutputDir,
			&r.Language, &r.Succeeded, &r.Failed, &r.Files); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(timeLayout, started)
		r.FinishedAt, _ = time.Parse(timeLayout, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// FileStatus returns the status recorded for inputPath in its most recent
// run, and false if the file was never recorded.
func (s *Store) FileStatus(ctx context.Context, inputPath string) (string, bool, error) {
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT f.status FROM files f JOIN runs r ON r.id = f.run_id
		 WHERE f.input_path = ?
		 ORDER BY r.started_at DESC LIMIT 1`, inputPath).Scan(&status)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying status of %s: %w", inputPath, err)
	}
	return status, true, nil
}
