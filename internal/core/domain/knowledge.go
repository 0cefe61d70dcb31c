package domain

// Entity is a named technical component or concept found in document text.
type Entity struct {
	// EntityID uniquely identifies the entity within one extraction.
	EntityID string `json:"entity_id"`

	// Text is the verbatim matched span.
	Text string `json:"text"`

	// Type is a free-form tag such as "component" or "domain_term".
	Type string `json:"type"`

	// Start and End are character offsets into the source text.
	Start int `json:"start"`
	End   int `json:"end"`

	// Confidence is the heuristic match confidence in [0,1].
	Confidence float64 `json:"confidence"`
}

// Relation links two entities discovered in the same document.
type Relation struct {
	// SourceID and TargetID reference Entity.EntityID values.
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`

	// SourceText and TargetText are retained so relations stay readable
	// without a join against the entity list.
	SourceText string `json:"source_text"`
	TargetText string `json:"target_text"`

	// Type tags the relation, e.g. "connectivity".
	Type string `json:"type"`

	// Evidence is the connecting phrase matched between the entity spans.
	Evidence string `json:"evidence"`
}

// SpecificationParameter is one mined name/value(/unit) pair.
type SpecificationParameter struct {
	// Name is the lower-cased, trimmed parameter name.
	Name string `json:"name"`

	// RawValue is the verbatim matched value text.
	RawValue string `json:"raw_value"`

	// NumericValue is the parsed value; for a range it is the mean of the
	// bounds. Nil when the value is not numeric.
	NumericValue *float64 `json:"numeric_value"`

	// Unit is the recognised unit token, nil when the captured token is not
	// on the unit whitelist.
	Unit *string `json:"unit"`
}

// ProcessStep is one ordered step in a documented process.
type ProcessStep struct {
	// Index is the step's position after normalisation. Within one
	// extraction, indices are unique and strictly increasing in text order.
	Index int `json:"index"`

	// Text is the step description.
	Text string `json:"text"`
}

// KnowledgeGraphSnapshot is the complete knowledge mined from one document
// at one point in time. Immutable once built.
type KnowledgeGraphSnapshot struct {
	// DocumentID identifies the source document.
	DocumentID string `json:"document_id"`

	// Entities in document order.
	Entities []Entity `json:"entities"`

	// Relations between extracted entities.
	Relations []Relation `json:"relations"`

	// Specifications mined from name/value patterns.
	Specifications []SpecificationParameter `json:"specifications"`

	// ProcessSteps in normalised order.
	ProcessSteps []ProcessStep `json:"process_steps"`
}

// Knowledge persistence categories. Each category is stored in its own file
// alongside one combined snapshot file.
const (
	CategoryEntities       = "entities"
	CategoryRelations      = "relations"
	CategorySpecifications = "specifications"
	CategoryProcessSteps   = "process_steps"
	CategorySnapshot       = "snapshot"
)
