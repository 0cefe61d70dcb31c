// Package entity finds named technical components in document text using
// domain vocabulary matches and capitalised noun-phrase heuristics.
package entity

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/doclens/doclens-cli/internal/core/domain"
	"github.com/doclens/doclens-cli/internal/core/ports/driven"
)

// Entity type tags.
const (
	TypeComponent  = "component"
	TypeNounPhrase = "noun_phrase"
)

// Match confidences per strategy. Vocabulary hits are near-certain; a
// capitalised phrase is only a hint.
const (
	vocabularyConfidence = 0.9
	nounPhraseConfidence = 0.6
)

// DomainVocabulary lists component terms matched case-insensitively as whole
// words. Package-level so each term's behaviour can be tested directly.
var DomainVocabulary = []string{
	"transformer", "breaker", "relay", "capacitor", "busbar",
	"router", "switch", "firewall", "gateway", "modem",
	"pump", "valve", "bearing", "gearbox", "compressor", "turbine",
	"controller", "sensor", "actuator", "motor", "generator",
	"server", "database", "inverter", "rectifier",
}

// FilterWords are capitalised sentence starters that never name a component.
var FilterWords = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"A": true, "An": true, "It": true, "If": true, "When": true,
	"Step": true, "Note": true, "Warning": true, "Caution": true,
	"See": true, "For": true, "All": true, "Each": true,
}

var (
	vocabularyPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(DomainVocabulary, "|") + `)\b`)

	// nounPhrasePattern matches runs of two to four capitalised words,
	// e.g. "Main Distribution Panel".
	nounPhrasePattern = regexp.MustCompile(`\b[A-Z][a-z0-9]+(?:\s+[A-Z][a-z0-9]+){1,3}\b`)
)

// Ensure Miner implements the port.
var _ driven.EntityMiner = (*Miner)(nil)

// Miner extracts entities. Stateless; the zero value is ready to use.
type Miner struct{}

// New creates an entity miner.
func New() *Miner {
	return &Miner{}
}

// Extract returns entities in document order with character-offset spans.
// Overlapping matches are resolved in favour of the earlier, higher-confidence
// span. Empty text yields an empty list.
func (m *Miner) Extract(text string) []domain.Entity {
	if text == "" {
		return nil
	}

	var entities []domain.Entity

	for _, span := range vocabularyPattern.FindAllStringIndex(text, -1) {
		entities = append(entities, domain.Entity{
			EntityID:   uuid.New().String(),
			Text:       text[span[0]:span[1]],
			Type:       TypeComponent,
			Start:      span[0],
			End:        span[1],
			Confidence: vocabularyConfidence,
		})
	}

	for _, span := range nounPhrasePattern.FindAllStringIndex(text, -1) {
		matched := text[span[0]:span[1]]
		first := strings.Fields(matched)[0]
		if FilterWords[first] {
			continue
		}
		if overlapsAny(entities, span[0], span[1]) {
			continue
		}
		entities = append(entities, domain.Entity{
			EntityID:   uuid.New().String(),
			Text:       matched,
			Type:       TypeNounPhrase,
			Start:      span[0],
			End:        span[1],
			Confidence: nounPhraseConfidence,
		})
	}

	sortByStart(entities)
	return entities
}

func overlapsAny(entities []domain.Entity, start, end int) bool {
	for _, e := range entities {
		if start < e.End && end > e.Start {
			return true
		}
	}
	return false
}

// sortByStart orders entities by span start (insertion sort; entity lists
// are small and already mostly ordered).
func sortByStart(entities []domain.Entity) {
	for i := 1; i < len(entities); i++ {
		for j := i; j > 0 && entities[j].Start < entities[j-1].Start; j-- {
			entities[j], entities[j-1] = entities[j-1], entities[j]
		}
	}
}
