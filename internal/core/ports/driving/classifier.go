package driving

import (
	"context"

	"github.com/doclens/doclens-cli/internal/core/domain"
)

// DocumentClassifier classifies technical documents by type and domain.
type DocumentClassifier interface {
	// ClassifyDocument classifies a single document. It never fails on
	// degenerate input; empty content yields a well-formed, low-confidence
	// result.
	ClassifyDocument(ctx context.Context, id, title, content string) (domain.ClassifiedDocument, error)

	// BatchClassify classifies many documents concurrently. Output order
	// matches input order regardless of completion order.
	BatchClassify(ctx context.Context, inputs []domain.DocumentInput) ([]domain.ClassifiedDocument, error)

	// AggregateStatistics summarises a result set for observability.
	// An empty input yields an empty map, never an error.
	AggregateStatistics(results []domain.ClassifiedDocument) map[string]any
}

// KnowledgeExtractor mines structured knowledge out of document text.
type KnowledgeExtractor interface {
	// ExtractAll runs all four miners and assembles one snapshot.
	ExtractAll(ctx context.Context, documentID, text string) (domain.KnowledgeGraphSnapshot, error)

	// PersistSnapshot writes per-category files plus the combined snapshot
	// and returns the written paths keyed by category.
	PersistSnapshot(ctx context.Context, snap domain.KnowledgeGraphSnapshot) (map[string]string, error)

	// LoadEntities returns at most limit persisted entities; an unwritten
	// entity file yields an empty list.
	LoadEntities(ctx context.Context, limit int) ([]domain.Entity, error)

	// SnapshotStatistics aggregates record counts across persisted
	// categories, treating absent files as zero.
	SnapshotStatistics(ctx context.Context) (map[string]int, error)
}
