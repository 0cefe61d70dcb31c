package knowledgefs

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func snapshotFixture(docID string) domain.KnowledgeGraphSnapshot {
	return domain.KnowledgeGraphSnapshot{
		DocumentID: docID,
		Entities: []domain.Entity{
			{EntityID: "e1", Text: "transformer", Type: "component", Start: 4, End: 15, Confidence: 0.9},
			{EntityID: "e2", Text: "breaker", Type: "component", Start: 30, End: 37, Confidence: 0.9},
		},
		Relations: []domain.Relation{
			{SourceID: "e1", TargetID: "e2", SourceText: "transformer", TargetText: "breaker", Type: "connectivity", Evidence: "feeds"},
		},
		Specifications: []domain.SpecificationParameter{
			{Name: "rated voltage", RawValue: "230"},
		},
		ProcessSteps: []domain.ProcessStep{
			{Index: 1, Text: "Disconnect the supply"},
			{Index: 2, Text: "Remove the cover"},
		},
	}
}

func TestStore_SaveSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	paths, err := store.SaveSnapshot(ctx, snapshotFixture("doc-1"))
	require.NoError(t, err)

	require.Len(t, paths, 5)
	for category, path := range paths {
		_, statErr := os.Stat(path)
		assert.NoError(t, statErr, "category %s file should exist", category)
	}

	assert.Contains(t, paths[domain.CategorySnapshot], "snapshot_doc-1.json")
}

func TestStore_SaveSnapshot_SanitisesDocumentID(t *testing.T) {
	store := newTestStore(t)

	paths, err := store.SaveSnapshot(context.Background(), domain.KnowledgeGraphSnapshot{
		DocumentID: "a/b c:d",
		Entities:   []domain.Entity{{EntityID: "e1", Text: "pump"}},
	})

	require.NoError(t, err)
	assert.Contains(t, paths[domain.CategorySnapshot], "snapshot_a_b_c_d.json")
}

func TestStore_LoadBackCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveSnapshot(ctx, snapshotFixture("doc-1"))
	require.NoError(t, err)

	entities, err := store.LoadEntities(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, "transformer", entities[0].Text)

	relations, err := store.LoadRelations(ctx, 0)
	require.NoError(t, err)
	require.Len(t, relations, 1)
	assert.Equal(t, "feeds", relations[0].Evidence)

	specs, err := store.LoadSpecifications(ctx, 0)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "rated voltage", specs[0].Name)

	steps, err := store.LoadSteps(ctx, 0)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].Index)
}

func TestStore_LoadEntities_MissingFile(t *testing.T) {
	store := newTestStore(t)

	entities, err := store.LoadEntities(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestStore_LoadEntities_Limit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveSnapshot(ctx, snapshotFixture("doc-1"))
	require.NoError(t, err)
	_, err = store.SaveSnapshot(ctx, snapshotFixture("doc-2"))
	require.NoError(t, err)

	entities, err := store.LoadEntities(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entities, 3)
}

func TestStore_Statistics(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Fresh store: every count is zero, never an error.
	stats, err := store.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats[domain.CategoryEntities])
	assert.Equal(t, 0, stats[domain.CategorySnapshot])

	_, err = store.SaveSnapshot(ctx, snapshotFixture("doc-1"))
	require.NoError(t, err)
	_, err = store.SaveSnapshot(ctx, snapshotFixture("doc-2"))
	require.NoError(t, err)

	stats, err = store.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats[domain.CategoryEntities])
	assert.Equal(t, 2, stats[domain.CategoryRelations])
	assert.Equal(t, 2, stats[domain.CategorySpecifications])
	assert.Equal(t, 4, stats[domain.CategoryProcessSteps])
	assert.Equal(t, 2, stats[domain.CategorySnapshot])
}

func TestStore_EmptySnapshotCreatesNoCategoryFiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	paths, err := store.SaveSnapshot(ctx, domain.KnowledgeGraphSnapshot{DocumentID: "empty-doc"})
	require.NoError(t, err)

	// The combined snapshot is always written; category files only appear
	// once a record exists for them.
	_, statErr := os.Stat(paths[domain.CategorySnapshot])
	assert.NoError(t, statErr)
	_, statErr = os.Stat(paths[domain.CategoryEntities])
	assert.True(t, os.IsNotExist(statErr))
}
