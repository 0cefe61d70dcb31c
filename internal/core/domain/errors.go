package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoLedger indicates a columnar rebuild was requested before any
	// classification ledger was written. This is a sequencing mistake by the
	// caller, not a transient condition.
	ErrNoLedger = errors.New("no classification ledger exists")

	// ErrCatalogClosed indicates the run catalog has been closed.
	ErrCatalogClosed = errors.New("run catalog closed")
)
