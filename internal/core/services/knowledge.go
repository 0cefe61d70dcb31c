package services

import (
	"context"

	"github.com/doclens/doclens-cli/internal/core/domain"
	"github.com/doclens/doclens-cli/internal/core/ports/driven"
	"github.com/doclens/doclens-cli/internal/core/ports/driving"
	"github.com/doclens/doclens-cli/internal/logger"
)

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeExtractor = (*KnowledgeService)(nil)

// KnowledgeService composes the four independent miners into one
// knowledge-graph snapshot per document and persists it through the
// knowledge store.
type KnowledgeService struct {
	entities  driven.EntityMiner
	relations driven.RelationMiner
	specs     driven.SpecificationMiner
	process   driven.ProcessMiner
	store     driven.KnowledgeStore
}

// NewKnowledgeService creates a knowledge service. The store may be nil for
// extract-only use; persistence methods then fail with domain.ErrInvalidInput.
func NewKnowledgeService(
	entities driven.EntityMiner,
	relations driven.RelationMiner,
	specs driven.SpecificationMiner,
	process driven.ProcessMiner,
	store driven.KnowledgeStore,
) *KnowledgeService {
	return &KnowledgeService{
		entities:  entities,
		relations: relations,
		specs:     specs,
		process:   process,
		store:     store,
	}
}

// ExtractAll runs entity, relation, specification and process mining over
// the text and assembles a snapshot. The relation miner is fed the entities
// just extracted; the other miners are independent. Degenerate text yields
// an empty (but valid) snapshot, never an error.
func (s *KnowledgeService) ExtractAll(ctx context.Context, documentID, text string) (domain.KnowledgeGraphSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.KnowledgeGraphSnapshot{}, err
	}

	entities := s.entities.Extract(text)
	relations := s.relations.Extract(text, entities)
	specs := s.specs.Extract(text)
	steps := s.process.Extract(text)

	logger.Debug("extracted %s: %d entities, %d relations, %d specs, %d steps",
		documentID, len(entities), len(relations), len(specs), len(steps))

	return domain.KnowledgeGraphSnapshot{
		DocumentID:     documentID,
		Entities:       entities,
		Relations:      relations,
		Specifications: specs,
		ProcessSteps:   steps,
	}, nil
}

// PersistSnapshot writes per-category files plus the combined snapshot file
// and returns the written paths keyed by category.
func (s *KnowledgeService) PersistSnapshot(ctx context.Context, snap domain.KnowledgeGraphSnapshot) (map[string]string, error) {
	if s.store == nil {
		return nil, domain.ErrInvalidInput
	}
	return s.store.SaveSnapshot(ctx, snap)
}

// LoadEntities returns at most limit persisted entities. An unwritten entity
// file yields an empty list, not an error.
func (s *KnowledgeService) LoadEntities(ctx context.Context, limit int) ([]domain.Entity, error) {
	if s.store == nil {
		return nil, domain.ErrInvalidInput
	}
	return s.store.LoadEntities(ctx, limit)
}

// SnapshotStatistics aggregates record counts across persisted categories.
// Absent category files count as zero.
func (s *KnowledgeService) SnapshotStatistics(ctx context.Context) (map[string]int, error) {
	if s.store == nil {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Statistics(ctx)
}
