// Package sqlite implements the run catalog on SQLite: one row per batch
// classification run, used by the stats command.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/doclens/doclens-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/doclens/doclens-cli/internal/core/domain"
	"github.com/doclens/doclens-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RunCatalog = (*Store)(nil)

// Store is the SQLite-backed run catalog.
type Store struct {
	db     *sql.DB
	path   string
	closed bool
}

// NewStore creates the run catalog at the specified data directory.
// If dataDir is empty, defaults to ~/.doclens/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".doclens", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// WAL mode lets stats reads coexist with run recording.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection. Subsequent catalog calls fail with
// domain.ErrCatalogClosed.
func (s *Store) Close() error {
	s.closed = true
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RecordRun stores a completed batch run.
func (s *Store) RecordRun(ctx context.Context, run driven.RunRecord) error {
	if s.closed {
		return fmt.Errorf("recording run: %w", domain.ErrCatalogClosed)
	}
	if run.ID == "" {
		return fmt.Errorf("recording run: %w", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, document_count, mean_confidence, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.DocumentCount, run.MeanConfidence,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, most recent first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]driven.RunRecord, error) {
	if s.closed {
		return nil, fmt.Errorf("listing runs: %w", domain.ErrCatalogClosed)
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_count, mean_confidence, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []driven.RunRecord
	for rows.Next() {
		var run driven.RunRecord
		var started, finished string
		if err := rows.Scan(&run.ID, &run.DocumentCount, &run.MeanConfidence, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parsing finished_at: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// migrate applies any pending .up.sql migrations from the embedded FS.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
