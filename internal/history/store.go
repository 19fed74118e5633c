// Package history records completed extraction runs in a local SQLite
// database so past invocations can be inspected with `pdfgrid history`.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one completed extraction, as recorded after the files are written.
type Run struct {
	ID         uuid.UUID
	PDFPath    string
	Backend    string
	Flavor     string
	Tables     int
	Files      int
	MaxColumns int
	Duration   time.Duration
	CreatedAt  time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	pdf_path    TEXT NOT NULL,
	backend     TEXT NOT NULL,
	flavor      TEXT NOT NULL DEFAULT '',
	tables_n    INTEGER NOT NULL,
	files_n     INTEGER NOT NULL,
	max_columns INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);`

// Store wraps the SQLite handle. All methods are safe to skip: the CLI
// treats history failures as warnings, never as run failures.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db, log: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one run. A zero ID and CreatedAt are filled in.
func (s *Store) Record(ctx context.Context, run Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, pdf_path, backend, flavor, tables_n, files_n, max_columns, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.PDFPath, run.Backend, run.Flavor,
		run.Tables, run.Files, run.MaxColumns,
		run.Duration.Milliseconds(), run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		s.log.Error("history record failed", "pdf", run.PDFPath, "err", err)
		return err
	}
	s.log.Debug("history recorded", "run_id", run.ID, "pdf", run.PDFPath)
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pdf_path, backend, flavor, tables_n, files_n, max_columns, duration_ms, created_at
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			id, ts     string
			durationMS int64
		)
		if err := rows.Scan(&id, &r.PDFPath, &r.Backend, &r.Flavor, &r.Tables, &r.Files, &r.MaxColumns, &durationMS, &ts); err != nil {
			return nil, err
		}
		r.ID, _ = uuid.Parse(id)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt, _ = time.Parse(time.RFC3339, ts)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
