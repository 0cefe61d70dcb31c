package driven

import "github.com/doclens/doclens-cli/internal/core/domain"

// The four knowledge miners are independent, pure functions over document
// text. Each has its own typed signature because the relation miner consumes
// the entity miner's output; they are composed by the knowledge service.

// EntityMiner finds named technical components in text.
type EntityMiner interface {
	// Extract returns entities in document order with character-offset spans.
	Extract(text string) []domain.Entity
}

// RelationMiner links entity pairs joined by a connecting phrase.
type RelationMiner interface {
	// Extract requires at least two entities; with fewer it returns an empty
	// list without scanning the text.
	Extract(text string, entities []domain.Entity) []domain.Relation
}

// SpecificationMiner parses name/value(/unit) patterns.
type SpecificationMiner interface {
	Extract(text string) []domain.SpecificationParameter
}

// ProcessMiner discovers ordered process steps.
type ProcessMiner interface {
	// Extract returns steps whose indices are unique and strictly increasing
	// in the order the steps appear in text.
	Extract(text string) []domain.ProcessStep
}
