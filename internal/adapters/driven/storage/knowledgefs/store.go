// Package knowledgefs persists knowledge-graph snapshots to the local
// filesystem: one append-only JSONL file per category plus one combined
// JSON snapshot file per document.
package knowledgefs

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doclens/doclens-cli/internal/core/domain"
	"github.com/doclens/doclens-cli/internal/core/ports/driven"
	"github.com/doclens/doclens-cli/internal/logger"
)

const (
	entitiesFileName  = "entities.jsonl"
	relationsFileName = "relations.jsonl"
	specsFileName     = "specifications.jsonl"
	stepsFileName     = "process_steps.jsonl"

	snapshotPrefix = "snapshot_"
	snapshotSuffix = ".json"

	maxRecordLine = 4 * 1024 * 1024
)

// Ensure Store implements the interface.
var _ driven.KnowledgeStore = (*Store)(nil)

// Store writes knowledge records under a base directory supplied at
// construction time. Category appends share one mutex; reads are safe
// concurrently because category files are append-only.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates a knowledge store rooted at dataDir, creating the
// directory if needed.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".doclens", "knowledge")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating knowledge directory: %w", err)
	}

	return &Store{dir: dataDir}, nil
}

// Dir returns the store's base directory.
func (s *Store) Dir() string {
	return s.dir
}

// SaveSnapshot appends the snapshot's records to their category files and
// writes the combined per-document snapshot file. Returns the written paths
// keyed by category.
func (s *Store) SaveSnapshot(ctx context.Context, snap domain.KnowledgeGraphSnapshot) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	paths := make(map[string]string, 5)

	entitiesPath := filepath.Join(s.dir, entitiesFileName)
	if err := appendRecords(entitiesPath, toAnySlice(snap.Entities)); err != nil {
		return nil, fmt.Errorf("saving entities: %w", err)
	}
	paths[domain.CategoryEntities] = entitiesPath

	relationsPath := filepath.Join(s.dir, relationsFileName)
	if err := appendRecords(relationsPath, toAnySlice(snap.Relations)); err != nil {
		return nil, fmt.Errorf("saving relations: %w", err)
	}
	paths[domain.CategoryRelations] = relationsPath

	specsPath := filepath.Join(s.dir, specsFileName)
	if err := appendRecords(specsPath, toAnySlice(snap.Specifications)); err != nil {
		return nil, fmt.Errorf("saving specifications: %w", err)
	}
	paths[domain.CategorySpecifications] = specsPath

	stepsPath := filepath.Join(s.dir, stepsFileName)
	if err := appendRecords(stepsPath, toAnySlice(snap.ProcessSteps)); err != nil {
		return nil, fmt.Errorf("saving process steps: %w", err)
	}
	paths[domain.CategoryProcessSteps] = stepsPath

	snapshotPath := filepath.Join(s.dir, snapshotFileName(snap.DocumentID))
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling snapshot: %w", err)
	}
	if err := os.WriteFile(snapshotPath, data, 0600); err != nil {
		return nil, fmt.Errorf("writing snapshot: %w", err)
	}
	paths[domain.CategorySnapshot] = snapshotPath

	return paths, nil
}

// LoadEntities returns at most limit entities. A missing entity file yields
// an empty list, not an error.
func (s *Store) LoadEntities(ctx context.Context, limit int) ([]domain.Entity, error) {
	var out []domain.Entity
	err := loadRecords(ctx, filepath.Join(s.dir, entitiesFileName), limit, func(line []byte) error {
		var e domain.Entity
		if err := json.Unmarshal(line, &e); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

// LoadRelations mirrors LoadEntities for relations.
func (s *Store) LoadRelations(ctx context.Context, limit int) ([]domain.Relation, error) {
	var out []domain.Relation
	err := loadRecords(ctx, filepath.Join(s.dir, relationsFileName), limit, func(line []byte) error {
		var r domain.Relation
		if err := json.Unmarshal(line, &r); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

// LoadSpecifications mirrors LoadEntities for specification parameters.
func (s *Store) LoadSpecifications(ctx context.Context, limit int) ([]domain.SpecificationParameter, error) {
	var out []domain.SpecificationParameter
	err := loadRecords(ctx, filepath.Join(s.dir, specsFileName), limit, func(line []byte) error {
		var p domain.SpecificationParameter
		if err := json.Unmarshal(line, &p); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

// LoadSteps mirrors LoadEntities for process steps.
func (s *Store) LoadSteps(ctx context.Context, limit int) ([]domain.ProcessStep, error) {
	var out []domain.ProcessStep
	err := loadRecords(ctx, filepath.Join(s.dir, stepsFileName), limit, func(line []byte) error {
		var st domain.ProcessStep
		if err := json.Unmarshal(line, &st); err != nil {
			return err
		}
		out = append(out, st)
		return nil
	})
	return out, err
}

// Statistics returns record counts per category plus the number of combined
// snapshot files. Absent category files count as zero.
func (s *Store) Statistics(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := map[string]int{
		domain.CategoryEntities:       countLines(filepath.Join(s.dir, entitiesFileName)),
		domain.CategoryRelations:      countLines(filepath.Join(s.dir, relationsFileName)),
		domain.CategorySpecifications: countLines(filepath.Join(s.dir, specsFileName)),
		domain.CategoryProcessSteps:   countLines(filepath.Join(s.dir, stepsFileName)),
	}

	snapshots := 0
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, snapshotPrefix) && strings.HasSuffix(name, snapshotSuffix) {
			snapshots++
		}
	}
	stats[domain.CategorySnapshot] = snapshots

	return stats, nil
}

// snapshotFileName derives a filesystem-safe combined snapshot name from a
// document id.
func snapshotFileName(documentID string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, documentID)
	if safe == "" {
		safe = "unnamed"
	}
	return snapshotPrefix + safe + snapshotSuffix
}

// appendRecords appends one JSON line per record. No-op for empty slices so
// category files are only created once there is something to store.
func appendRecords(path string, records []any) error {
	if len(records) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			return err
		}
	}
	return f.Sync()
}

// loadRecords streams up to limit JSONL records through decode. Malformed
// lines are skipped, and a missing file is simply zero records.
func loadRecords(ctx context.Context, path string, limit int, decode func([]byte) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxRecordLine)

	loaded := 0
	for scanner.Scan() {
		if limit > 0 && loaded >= limit {
			break
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := decode(line); err != nil {
			logger.Warn("skipping malformed record in %s: %v", filepath.Base(path), err)
			continue
		}
		loaded++
	}
	return scanner.Err()
}

// countLines counts non-empty lines; missing files count zero.
func countLines(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxRecordLine)
	for scanner.Scan() {
		if len(scanner.Bytes()) > 0 {
			count++
		}
	}
	return count
}

// toAnySlice widens a concrete record slice for appendRecords.
func toAnySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}
