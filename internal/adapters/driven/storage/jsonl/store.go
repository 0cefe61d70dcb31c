// Package jsonl implements the classification persistence manager: an
// append-only JSON-Lines ledger plus a derived columnar (Parquet) snapshot
// with round-trip validation.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/doclens/doclens-cli/internal/core/domain"
	"github.com/doclens/doclens-cli/internal/core/ports/driven"
	"github.com/doclens/doclens-cli/internal/logger"
)

const (
	ledgerFileName  = "classifications.jsonl"
	parquetFileName = "classifications.parquet"

	// maxLedgerLine bounds a single ledger record; documents are stored
	// verbatim so lines can be large.
	maxLedgerLine = 16 * 1024 * 1024

	// rowTolerance is the float comparison tolerance for round-trip checks.
	rowTolerance = 1e-9
)

// Ensure Store implements the interface.
var _ driven.ClassificationStore = (*Store)(nil)

// Store persists classified documents under a base directory supplied at
// construction time. Appends are serialised by a store-level mutex: the
// store instance is the process's single handle on the ledger. Reads are
// safe concurrently with appends because records are only ever added.
type Store struct {
	mu          sync.Mutex
	ledgerPath  string
	parquetPath string
}

// NewStore creates a classification store rooted at dataDir, creating the
// directory if needed.
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

	return &Store{
		ledgerPath:  filepath.Join(dataDir, ledgerFileName),
		parquetPath: filepath.Join(dataDir, parquetFileName),
	}, nil
}

// LedgerPath returns the JSONL ledger file path.
func (s *Store) LedgerPath() string {
	return s.ledgerPath
}

// ParquetPath returns the columnar snapshot file path.
func (s *Store) ParquetPath() string {
	return s.parquetPath
}

// SaveJSONL writes one JSON record per document. Each record is marshalled
// first and written with its newline in a single call, so a crash mid-write
// never corrupts records already on disk.
func (s *Store) SaveJSONL(ctx context.Context, docs []domain.ClassifiedDocument, appendMode bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(s.ledgerPath, flags, 0600)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	for _, doc := range docs {
		line, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshalling record %s: %w", doc.DocumentID, err)
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("appending record %s: %w", doc.DocumentID, err)
		}
	}

	return f.Sync()
}

// LoadJSONL reads the full ledger. Malformed lines are skipped with a
// warning, never fatal; a missing ledger yields an empty slice.
func (s *Store) LoadJSONL(ctx context.Context) ([]domain.ClassifiedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.ledgerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	var docs []domain.ClassifiedDocument
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLedgerLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var doc domain.ClassifiedDocument
		if err := json.Unmarshal(line, &doc); err != nil {
			logger.Warn("skipping malformed ledger line %d: %v", lineNo, err)
			continue
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	return docs, nil
}

// RoundtripValidate re-reads up to sample records from the Parquet snapshot
// and compares them against the JSONL ledger. It returns false when there is
// nothing to validate and false on any internal failure; it never reports an
// error to the caller, so health checks can poll it safely.
func (s *Store) RoundtripValidate(ctx context.Context, sample int) bool {
	if sample <= 0 {
		return false
	}

	docs, err := s.LoadJSONL(ctx)
	if err != nil || len(docs) == 0 {
		return false
	}

	rows, err := s.LoadParquet(ctx)
	if err != nil || len(rows) != len(docs) {
		return false
	}

	if sample > len(docs) {
		sample = len(docs)
	}
	for i := 0; i < sample; i++ {
		if !rowsMatch(domain.NewClassificationRow(docs[i]), rows[i]) {
			return false
		}
	}
	return true
}

// rowsMatch compares two flattened rows with a float tolerance.
func rowsMatch(want, got domain.ClassificationRow) bool {
	if want.DocumentID != got.DocumentID ||
		want.Title != got.Title ||
		want.PredictedType != got.PredictedType ||
		want.PredictedDomain != got.PredictedDomain ||
		want.Length != got.Length ||
		want.SectionCount != got.SectionCount {
		return false
	}

	if !closeEnough(want.PriorityScore, got.PriorityScore) ||
		!closeEnough(want.QualityScore, got.QualityScore) ||
		!closeEnough(want.Confidence, got.Confidence) {
		return false
	}

	for _, t := range domain.AllDocumentTypes() {
		if !closeEnough(want.TypeProb(t), got.TypeProb(t)) {
			return false
		}
	}
	for _, d := range domain.AllTechnicalDomains() {
		if !closeEnough(want.DomainProb(d), got.DomainProb(d)) {
			return false
		}
	}
	return true
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) <= rowTolerance
}
