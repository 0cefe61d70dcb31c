package services

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/doclens/doclens-cli/internal/core/domain"
)

// Keyword tables for the density features. Occurrence counts are normalised
// by text length, so each density is a small non-negative number. The tables
// are package-level so individual rules stay unit-testable.
var (
	domainKeywords = map[domain.TechnicalDomain][]string{
		domain.DomainElectrical: {
			"voltage", "current", "circuit", "wiring", "breaker",
			"transformer", "relay", "capacitor", "power supply", "grounding",
		},
		domain.DomainNetwork: {
			"network", "router", "switch", "firewall", "bandwidth",
			"ethernet", "protocol", "vlan", "latency", "subnet",
		},
		domain.DomainMechanical: {
			"torque", "bearing", "gear", "shaft", "valve",
			"pump", "vibration", "lubrication", "rpm", "clearance",
		},
		domain.DomainSoftware: {
			"software", "firmware", "api", "database", "module",
			"deployment", "version", "interface", "configuration", "log",
		},
		domain.DomainChemical: {
			"chemical", "solvent", "reagent", "corrosion", "concentration",
			"viscosity", "compound", "reaction", "coating", "ph value",
		},
		// General is the uniform-fallback bucket; it carries no keywords so
		// its density is always zero.
		domain.DomainGeneral: {},
	}

	typeKeywords = map[domain.DocumentType][]string{
		domain.DocTypeSpecification: {
			"specification", "requirement", "shall", "tolerance",
			"compliance", "rated", "parameter",
		},
		domain.DocTypeManual: {
			"manual", "operation", "maintenance", "instruction",
			"operating", "service", "troubleshooting",
		},
		domain.DocTypeReport: {
			"report", "result", "analysis", "finding",
			"measured", "conclusion", "observed",
		},
		domain.DocTypeGuide: {
			"guide", "how to", "overview", "introduction",
			"example", "getting started", "tips",
		},
		domain.DocTypeProcedure: {
			"procedure", "step", "perform", "ensure",
			"verify", "caution", "warning",
		},
		domain.DocTypeDatasheet: {
			"datasheet", "rating", "characteristics", "typical",
			"absolute maximum", "pinout", "package",
		},
	}
)

// Structural line patterns.
var (
	// headingPattern matches markdown headings, numbered section headers and
	// short all-caps lines.
	headingPattern = regexp.MustCompile(`^\s*(?:#{1,6}\s+\S|\d+(?:\.\d+)*[.)]?\s+[A-Za-z]|[A-Z][A-Z0-9 /\-]{3,}$)`)

	// bulletPattern matches common list markers at the start of a line.
	bulletPattern = regexp.MustCompile(`^\s*(?:[-*•]|\d+\))\s+\S`)
)

// FeatureExtractor converts raw title + content into a flat numeric feature
// map. It is a pure function of its inputs; the zero value is ready to use.
type FeatureExtractor struct{}

// NewFeatureExtractor creates a feature extractor.
func NewFeatureExtractor() *FeatureExtractor {
	return &FeatureExtractor{}
}

// ExtractAll computes structural features plus per-enum keyword density
// features. Empty content yields all-zero densities and length 0.
func (e *FeatureExtractor) ExtractAll(title, content string) domain.FeatureMap {
	features := domain.FeatureMap{
		domain.FeatureLength:         float64(len(content)),
		domain.FeatureSectionCount:   0,
		domain.FeatureBulletPoints:   0,
		domain.FeatureUppercaseRatio: 0,
		domain.FeatureDigitRatio:     0,
	}

	var sections, bullets float64
	for _, line := range strings.Split(content, "\n") {
		if headingPattern.MatchString(line) {
			sections++
		}
		if bulletPattern.MatchString(line) {
			bullets++
		}
	}
	features[domain.FeatureSectionCount] = sections
	features[domain.FeatureBulletPoints] = bullets

	var alpha, upper, digits float64
	for _, r := range content {
		switch {
		case unicode.IsLetter(r):
			alpha++
			if unicode.IsUpper(r) {
				upper++
			}
		case unicode.IsDigit(r):
			digits++
		}
	}
	if alpha > 0 {
		features[domain.FeatureUppercaseRatio] = upper / alpha
	}
	if len(content) > 0 {
		features[domain.FeatureDigitRatio] = digits / float64(len(content))
	}

	combined := strings.ToLower(title + "\n" + content)
	for d, score := range e.DomainScores(combined) {
		features[domain.FeatureDomainPrefix+d.String()] = score
	}
	for t, words := range typeKeywords {
		features[domain.FeatureTypePrefix+t.String()] = keywordDensity(combined, words)
	}

	return features
}

// DomainScores exposes the domain keyword density sub-computation standalone.
// The input text is lower-cased internally, so callers may pass raw text.
func (e *FeatureExtractor) DomainScores(text string) map[domain.TechnicalDomain]float64 {
	lowered := strings.ToLower(text)
	scores := make(map[domain.TechnicalDomain]float64, len(domainKeywords))
	for d, words := range domainKeywords {
		scores[d] = keywordDensity(lowered, words)
	}
	return scores
}

// keywordDensity counts keyword occurrences in already-lowercased text,
// normalised by text length. Empty text yields zero.
func keywordDensity(lowered string, keywords []string) float64 {
	if len(lowered) == 0 {
		return 0
	}
	var hits int
	for _, kw := range keywords {
		hits += strings.Count(lowered, kw)
	}
	return float64(hits) / float64(len(lowered))
}
