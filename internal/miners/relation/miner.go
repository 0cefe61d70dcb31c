// Package relation links entity pairs joined by a connecting verb phrase
// occurring between their spans within a bounded window.
package relation

import (
	"strings"

	"github.com/doclens/doclens-cli/internal/core/domain"
	"github.com/doclens/doclens-cli/internal/core/ports/driven"
)

// TypeConnectivity tags relations discovered from connecting phrases.
const TypeConnectivity = "connectivity"

// DefaultMaxGap bounds the character window searched between two entity
// spans. Pairs further apart than this are never related.
const DefaultMaxGap = 120

// ConnectivePhrases are the verb/preposition patterns that qualify a pair of
// entities as related. Matched case-insensitively in the gap between spans.
var ConnectivePhrases = []string{
	"is connected to",
	"connects to",
	"connected to",
	"feeds into",
	"feeds",
	"is attached to",
	"is mounted on",
	"communicates with",
	"supplies",
	"drives",
	"controls",
	"powers",
}

// Ensure Miner implements the port.
var _ driven.RelationMiner = (*Miner)(nil)

// Miner extracts connectivity relations.
type Miner struct {
	maxGap int
}

// Option configures the relation miner.
type Option func(*Miner)

// WithMaxGap sets the character window between entity spans.
func WithMaxGap(gap int) Option {
	return func(m *Miner) {
		if gap > 0 {
			m.maxGap = gap
		}
	}
}

// New creates a relation miner.
func New(opts ...Option) *Miner {
	m := &Miner{maxGap: DefaultMaxGap}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Extract emits one relation per entity pair whose between-span text
// contains a connective phrase within the gap window. Fewer than two
// entities returns an empty list without scanning; finding no qualifying
// phrase is a valid, common result.
func (m *Miner) Extract(text string, entities []domain.Entity) []domain.Relation {
	if len(entities) < 2 {
		return nil
	}

	var relations []domain.Relation
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			source, target := entities[i], entities[j]
			if source.End >= target.Start {
				continue // overlapping or unordered spans
			}
			gap := target.Start - source.End
			if gap > m.maxGap {
				continue
			}

			between := strings.ToLower(text[source.End:target.Start])
			phrase := matchConnective(between)
			if phrase == "" {
				continue
			}

			relations = append(relations, domain.Relation{
				SourceID:   source.EntityID,
				TargetID:   target.EntityID,
				SourceText: source.Text,
				TargetText: target.Text,
				Type:       TypeConnectivity,
				Evidence:   phrase,
			})
		}
	}
	return relations
}

// matchConnective returns the first connective phrase found in the
// already-lowercased gap text, or "" when none qualifies.
func matchConnective(between string) string {
	for _, phrase := range ConnectivePhrases {
		if strings.Contains(between, phrase) {
			return phrase
		}
	}
	return ""
}
