package domain

// Feature map keys produced by the feature extractor.
// Density keys are derived per enum member: "type_" + DocumentType and
// "domain_" + TechnicalDomain.
const (
	FeatureLength         = "length"
	FeatureSectionCount   = "section_count"
	FeatureBulletPoints   = "bullet_points"
	FeatureUppercaseRatio = "uppercase_ratio"
	FeatureDigitRatio     = "digit_ratio"

	FeatureTypePrefix   = "type_"
	FeatureDomainPrefix = "domain_"
)

// FeatureMap is a flat numeric feature vector keyed by feature name.
type FeatureMap map[string]float64

// Get returns the named feature, or zero when absent.
// Missing features are indistinguishable from zero-valued ones, which keeps
// scorers total over degenerate (empty-document) inputs.
func (f FeatureMap) Get(key string) float64 {
	return f[key]
}

// TypeDensity returns the keyword density feature for a document type.
func (f FeatureMap) TypeDensity(t DocumentType) float64 {
	return f[FeatureTypePrefix+t.String()]
}

// DomainDensity returns the keyword density feature for a technical domain.
func (f FeatureMap) DomainDensity(d TechnicalDomain) float64 {
	return f[FeatureDomainPrefix+d.String()]
}

// ClassifiedDocument is the immutable result of classifying one document.
// It is constructed once per classification call and never mutated after;
// the persistence layer only ever appends and reads copies.
type ClassifiedDocument struct {
	// DocumentID is the caller-supplied opaque identifier.
	// Uniqueness is the caller's concern, not enforced here.
	DocumentID string `json:"document_id"`

	// Title is the verbatim input title, retained for persistence.
	Title string `json:"title"`

	// Content is the verbatim input text, retained for persistence.
	Content string `json:"content"`

	// PredictedType is the argmax of TypeProbabilities.
	PredictedType DocumentType `json:"predicted_type"`

	// PredictedDomain is the argmax of DomainProbabilities.
	PredictedDomain TechnicalDomain `json:"predicted_domain"`

	// PriorityScore is in [0,1].
	PriorityScore float64 `json:"priority_score"`

	// QualityScore is in [0,1].
	QualityScore float64 `json:"quality_score"`

	// Confidence is the calibrated classification confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// TypeProbabilities sums to 1.0 over all document types.
	TypeProbabilities map[DocumentType]float64 `json:"type_probabilities"`

	// DomainProbabilities sums to 1.0 over all technical domains.
	DomainProbabilities map[TechnicalDomain]float64 `json:"domain_probabilities"`

	// Metadata carries at minimum "length" and "section_count".
	Metadata map[string]any `json:"metadata"`
}

// DocumentInput is one unit of work for classification.
type DocumentInput struct {
	// ID is the caller-chosen document identifier.
	ID string `json:"id"`

	// Title is a short human-readable title.
	Title string `json:"title"`

	// Content is the plain extracted document text.
	Content string `json:"content"`
}
