package domain

const unknownDescription = "Unknown"

// DocumentType classifies what kind of technical document a text is.
type DocumentType string

// Available document types.
const (
	// DocTypeSpecification is a normative requirements document.
	DocTypeSpecification DocumentType = "specification"

	// DocTypeManual is an operation or service manual.
	DocTypeManual DocumentType = "manual"

	// DocTypeReport is a findings or analysis report.
	DocTypeReport DocumentType = "report"

	// DocTypeGuide is an introductory or tutorial document.
	DocTypeGuide DocumentType = "guide"

	// DocTypeProcedure is a stepwise work instruction.
	DocTypeProcedure DocumentType = "procedure"

	// DocTypeDatasheet is a tabular component characteristics sheet.
	DocTypeDatasheet DocumentType = "datasheet"
)

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocTypeSpecification, DocTypeManual, DocTypeReport,
		DocTypeGuide, DocTypeProcedure, DocTypeDatasheet:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// Description returns a human-readable description of the type.
func (t DocumentType) Description() string {
	switch t {
	case DocTypeSpecification:
		return "Specification (requirements and tolerances)"
	case DocTypeManual:
		return "Manual (operation and service)"
	case DocTypeReport:
		return "Report (findings and analysis)"
	case DocTypeGuide:
		return "Guide (introduction and tutorial)"
	case DocTypeProcedure:
		return "Procedure (stepwise instructions)"
	case DocTypeDatasheet:
		return "Datasheet (component characteristics)"
	default:
		return unknownDescription
	}
}

// AllDocumentTypes returns all document types in stable enum order.
// Classification distributions are built over exactly this set.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocTypeSpecification,
		DocTypeManual,
		DocTypeReport,
		DocTypeGuide,
		DocTypeProcedure,
		DocTypeDatasheet,
	}
}

// TechnicalDomain classifies the engineering field a document belongs to.
type TechnicalDomain string

// Available technical domains.
const (
	// DomainElectrical covers power and electrical engineering.
	DomainElectrical TechnicalDomain = "electrical"

	// DomainNetwork covers data networking and telecommunications.
	DomainNetwork TechnicalDomain = "network"

	// DomainMechanical covers mechanical and fluid systems.
	DomainMechanical TechnicalDomain = "mechanical"

	// DomainSoftware covers software and computing systems.
	DomainSoftware TechnicalDomain = "software"

	// DomainChemical covers chemical and process engineering.
	DomainChemical TechnicalDomain = "chemical"

	// DomainGeneral is the fallback for documents with no domain signal.
	// It carries no keywords of its own; a flat domain distribution
	// resolves here.
	DomainGeneral TechnicalDomain = "general"
)

// IsValid returns true if the technical domain is recognised.
func (d TechnicalDomain) IsValid() bool {
	switch d {
	case DomainElectrical, DomainNetwork, DomainMechanical,
		DomainSoftware, DomainChemical, DomainGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d TechnicalDomain) String() string {
	return string(d)
}

// Description returns a human-readable description of the domain.
func (d TechnicalDomain) Description() string {
	switch d {
	case DomainElectrical:
		return "Electrical (power and circuits)"
	case DomainNetwork:
		return "Network (data and telecom)"
	case DomainMechanical:
		return "Mechanical (machines and fluids)"
	case DomainSoftware:
		return "Software (computing systems)"
	case DomainChemical:
		return "Chemical (process engineering)"
	case DomainGeneral:
		return "General (no dominant domain)"
	default:
		return unknownDescription
	}
}

// AllTechnicalDomains returns all technical domains in stable enum order.
func AllTechnicalDomains() []TechnicalDomain {
	return []TechnicalDomain{
		DomainElectrical,
		DomainNetwork,
		DomainMechanical,
		DomainSoftware,
		DomainChemical,
		DomainGeneral,
	}
}
