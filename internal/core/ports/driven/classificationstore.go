package driven

import (
	"context"

	"github.com/doclens/doclens-cli/internal/core/domain"
)

// ClassificationStore persists classification results as an append-only
// JSON-Lines ledger with a derived columnar (Parquet) snapshot.
type ClassificationStore interface {
	// SaveJSONL writes one JSON record per document to the ledger.
	// When append is false the ledger is truncated first. Each record is a
	// single write of one line, so a crash mid-write never corrupts records
	// already on disk.
	SaveJSONL(ctx context.Context, docs []domain.ClassifiedDocument, append bool) error

	// LoadJSONL reads the full ledger. Malformed lines are skipped, never
	// fatal; a missing ledger yields an empty slice.
	LoadJSONL(ctx context.Context) ([]domain.ClassifiedDocument, error)

	// ToParquet rebuilds the columnar snapshot from the ledger and returns
	// its path. Returns domain.ErrNoLedger when no ledger has been written.
	ToParquet(ctx context.Context) (string, error)

	// LoadParquet reads the columnar snapshot back as flat rows.
	LoadParquet(ctx context.Context) ([]domain.ClassificationRow, error)

	// RoundtripValidate re-reads up to sample records from the Parquet
	// snapshot and compares them against the JSONL ledger. It returns false
	// when there is nothing to validate or on any internal failure; it never
	// returns an error to the caller.
	RoundtripValidate(ctx context.Context, sample int) bool
}
