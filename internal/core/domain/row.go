package domain

// ClassificationRow is the flattened, columnar form of a ClassifiedDocument
// used for the Parquet snapshot. Probability maps are flattened into one
// column per enum member so analytics tooling never has to parse JSON.
//
// The parquet struct tags follow the parquet-go dialect.
type ClassificationRow struct {
	DocumentID      string  `parquet:"name=document_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Title           string  `parquet:"name=title, type=BYTE_ARRAY, convertedtype=UTF8"`
	PredictedType   string  `parquet:"name=predicted_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	PredictedDomain string  `parquet:"name=predicted_domain, type=BYTE_ARRAY, convertedtype=UTF8"`
	PriorityScore   float64 `parquet:"name=priority_score, type=DOUBLE"`
	QualityScore    float64 `parquet:"name=quality_score, type=DOUBLE"`
	Confidence      float64 `parquet:"name=confidence, type=DOUBLE"`
	Length          int64   `parquet:"name=length, type=INT64"`
	SectionCount    int64   `parquet:"name=section_count, type=INT64"`

	TypeProbSpecification float64 `parquet:"name=typeprob_specification, type=DOUBLE"`
	TypeProbManual        float64 `parquet:"name=typeprob_manual, type=DOUBLE"`
	TypeProbReport        float64 `parquet:"name=typeprob_report, type=DOUBLE"`
	TypeProbGuide         float64 `parquet:"name=typeprob_guide, type=DOUBLE"`
	TypeProbProcedure     float64 `parquet:"name=typeprob_procedure, type=DOUBLE"`
	TypeProbDatasheet     float64 `parquet:"name=typeprob_datasheet, type=DOUBLE"`

	DomainProbElectrical float64 `parquet:"name=domainprob_electrical, type=DOUBLE"`
	DomainProbNetwork    float64 `parquet:"name=domainprob_network, type=DOUBLE"`
	DomainProbMechanical float64 `parquet:"name=domainprob_mechanical, type=DOUBLE"`
	DomainProbSoftware   float64 `parquet:"name=domainprob_software, type=DOUBLE"`
	DomainProbChemical   float64 `parquet:"name=domainprob_chemical, type=DOUBLE"`
	DomainProbGeneral    float64 `parquet:"name=domainprob_general, type=DOUBLE"`
}

// NewClassificationRow flattens a ClassifiedDocument into a columnar row.
func NewClassificationRow(doc ClassifiedDocument) ClassificationRow {
	row := ClassificationRow{
		DocumentID:      doc.DocumentID,
		Title:           doc.Title,
		PredictedType:   doc.PredictedType.String(),
		PredictedDomain: doc.PredictedDomain.String(),
		PriorityScore:   doc.PriorityScore,
		QualityScore:    doc.QualityScore,
		Confidence:      doc.Confidence,
	}

	if v, ok := doc.Metadata[FeatureLength]; ok {
		row.Length = metadataInt(v)
	}
	if v, ok := doc.Metadata[FeatureSectionCount]; ok {
		row.SectionCount = metadataInt(v)
	}

	for t, p := range doc.TypeProbabilities {
		row.setTypeProb(t, p)
	}
	for d, p := range doc.DomainProbabilities {
		row.setDomainProb(d, p)
	}

	return row
}

// TypeProb returns the flattened probability column for a document type.
func (r ClassificationRow) TypeProb(t DocumentType) float64 {
	switch t {
	case DocTypeSpecification:
		return r.TypeProbSpecification
	case DocTypeManual:
		return r.TypeProbManual
	case DocTypeReport:
		return r.TypeProbReport
	case DocTypeGuide:
		return r.TypeProbGuide
	case DocTypeProcedure:
		return r.TypeProbProcedure
	case DocTypeDatasheet:
		return r.TypeProbDatasheet
	default:
		return 0
	}
}

// DomainProb returns the flattened probability column for a domain.
func (r ClassificationRow) DomainProb(d TechnicalDomain) float64 {
	switch d {
	case DomainElectrical:
		return r.DomainProbElectrical
	case DomainNetwork:
		return r.DomainProbNetwork
	case DomainMechanical:
		return r.DomainProbMechanical
	case DomainSoftware:
		return r.DomainProbSoftware
	case DomainChemical:
		return r.DomainProbChemical
	case DomainGeneral:
		return r.DomainProbGeneral
	default:
		return 0
	}
}

func (r *ClassificationRow) setTypeProb(t DocumentType, p float64) {
	switch t {
	case DocTypeSpecification:
		r.TypeProbSpecification = p
	case DocTypeManual:
		r.TypeProbManual = p
	case DocTypeReport:
		r.TypeProbReport = p
	case DocTypeGuide:
		r.TypeProbGuide = p
	case DocTypeProcedure:
		r.TypeProbProcedure = p
	case DocTypeDatasheet:
		r.TypeProbDatasheet = p
	}
}

func (r *ClassificationRow) setDomainProb(d TechnicalDomain, p float64) {
	switch d {
	case DomainElectrical:
		r.DomainProbElectrical = p
	case DomainNetwork:
		r.DomainProbNetwork = p
	case DomainMechanical:
		r.DomainProbMechanical = p
	case DomainSoftware:
		r.DomainProbSoftware = p
	case DomainChemical:
		r.DomainProbChemical = p
	case DomainGeneral:
		r.DomainProbGeneral = p
	}
}

// metadataInt coerces a metadata value that may arrive as int, int64 or
// float64 (JSON round-trips turn ints into float64).
func metadataInt(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}
