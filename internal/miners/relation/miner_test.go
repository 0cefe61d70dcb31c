package relation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens-cli/internal/core/domain"
)

// entitiesFor builds entity spans for the given substrings of text, in the
// order they first occur.
func entitiesFor(t *testing.T, text string, spans ...string) []domain.Entity {
	t.Helper()
	var entities []domain.Entity
	offset := 0
	for i, s := range spans {
		start := strings.Index(text[offset:], s)
		require.GreaterOrEqual(t, start, 0, "span %q not found", s)
		start += offset
		entities = append(entities, domain.Entity{
			EntityID: string(rune('a' + i)),
			Text:     s,
			Start:    start,
			End:      start + len(s),
		})
		offset = start + len(s)
	}
	return entities
}

func TestExtract_FewerThanTwoEntities(t *testing.T) {
	m := New()
	text := "The transformer feeds the breaker."

	assert.Empty(t, m.Extract(text, nil))
	assert.Empty(t, m.Extract(text, entitiesFor(t, text, "transformer")))
}

func TestExtract_ConnectivePhrase(t *testing.T) {
	m := New()
	text := "The transformer is connected to the main breaker."
	entities := entitiesFor(t, text, "transformer", "breaker")

	relations := m.Extract(text, entities)

	require.Len(t, relations, 1)
	rel := relations[0]
	assert.Equal(t, entities[0].EntityID, rel.SourceID)
	assert.Equal(t, entities[1].EntityID, rel.TargetID)
	assert.Equal(t, "transformer", rel.SourceText)
	assert.Equal(t, "breaker", rel.TargetText)
	assert.Equal(t, TypeConnectivity, rel.Type)
	assert.Equal(t, "is connected to", rel.Evidence)
}

func TestExtract_CaseInsensitivePhrase(t *testing.T) {
	m := New()
	text := "The pump FEEDS INTO the reservoir valve."
	entities := entitiesFor(t, text, "pump", "valve")

	relations := m.Extract(text, entities)

	require.Len(t, relations, 1)
	assert.Equal(t, "feeds into", relations[0].Evidence)
}

func TestExtract_NoConnective(t *testing.T) {
	m := New()
	text := "The transformer sits beside the breaker."
	entities := entitiesFor(t, text, "transformer", "breaker")

	assert.Empty(t, m.Extract(text, entities))
}

func TestExtract_GapTooWide(t *testing.T) {
	m := New(WithMaxGap(10))
	text := "The transformer, after several intermediate stages, eventually supplies the breaker."
	entities := entitiesFor(t, text, "transformer", "breaker")

	assert.Empty(t, m.Extract(text, entities))
}

func TestExtract_AllQualifyingPairs(t *testing.T) {
	m := New()
	text := "The controller drives the motor and the motor drives the pump."
	entities := entitiesFor(t, text, "controller", "motor", "pump")

	relations := m.Extract(text, entities)

	// controller→motor, controller→pump and motor→pump all have "drives"
	// in the gap within the default window.
	require.Len(t, relations, 3)
	for _, rel := range relations {
		assert.Equal(t, "drives", rel.Evidence)
	}
}

func TestWithMaxGap_IgnoresNonPositive(t *testing.T) {
	m := New(WithMaxGap(0))

	assert.Equal(t, DefaultMaxGap, m.maxGap)
}
