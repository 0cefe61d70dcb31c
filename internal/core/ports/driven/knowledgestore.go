package driven

import (
	"context"

	"github.com/doclens/doclens-cli/internal/core/domain"
)

// KnowledgeStore persists knowledge-graph snapshots as one file per category
// plus one combined snapshot file, all rooted at a base path supplied at
// construction time.
type KnowledgeStore interface {
	// SaveSnapshot writes the snapshot's categories and the combined file.
	// Returns the written paths keyed by category name (domain.CategoryX).
	SaveSnapshot(ctx context.Context, snap domain.KnowledgeGraphSnapshot) (map[string]string, error)

	// LoadEntities returns at most limit entities. A missing entity file
	// yields an empty list, not an error.
	LoadEntities(ctx context.Context, limit int) ([]domain.Entity, error)

	// LoadRelations returns at most limit relations, with the same
	// missing-file semantics as LoadEntities.
	LoadRelations(ctx context.Context, limit int) ([]domain.Relation, error)

	// LoadSpecifications returns at most limit specification parameters.
	LoadSpecifications(ctx context.Context, limit int) ([]domain.SpecificationParameter, error)

	// LoadSteps returns at most limit process steps.
	LoadSteps(ctx context.Context, limit int) ([]domain.ProcessStep, error)

	// Statistics returns record counts per category. Absent category files
	// count as zero; Statistics never fails because a file is missing.
	Statistics(ctx context.Context) (map[string]int, error)
}
