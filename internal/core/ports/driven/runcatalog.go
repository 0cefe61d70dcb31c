package driven

import (
	"context"
	"time"
)

// RunRecord summarises one batch classification run.
type RunRecord struct {
	// ID is the generated run identifier.
	ID string

	// DocumentCount is the number of documents classified in the run.
	DocumentCount int

	// MeanConfidence averages the calibrated confidence across the run.
	MeanConfidence float64

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunCatalog records batch classification runs for observability.
// Backed by SQLite.
type RunCatalog interface {
	// RecordRun stores a completed run.
	RecordRun(ctx context.Context, run RunRecord) error

	// RecentRuns returns up to limit runs, most recent first.
	RecentRuns(ctx context.Context, limit int) ([]RunRecord, error)

	// Close releases the underlying database handle.
	Close() error
}
