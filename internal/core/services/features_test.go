package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens-cli/internal/core/domain"
)

func TestFeatureExtractor_EmptyContent(t *testing.T) {
	extractor := NewFeatureExtractor()

	features := extractor.ExtractAll("", "")

	assert.Zero(t, features.Get(domain.FeatureLength))
	assert.Zero(t, features.Get(domain.FeatureSectionCount))
	assert.Zero(t, features.Get(domain.FeatureBulletPoints))
	assert.Zero(t, features.Get(domain.FeatureUppercaseRatio))
	assert.Zero(t, features.Get(domain.FeatureDigitRatio))
	for _, dt := range domain.AllDocumentTypes() {
		assert.Zero(t, features.TypeDensity(dt), "type density %s", dt)
	}
	for _, d := range domain.AllTechnicalDomains() {
		assert.Zero(t, features.DomainDensity(d), "domain density %s", d)
	}
}

func TestFeatureExtractor_StructuralFeatures(t *testing.T) {
	content := "# Overview\n" +
		"Some intro text.\n" +
		"## Wiring\n" +
		"- check the breaker\n" +
		"- verify the relay\n" +
		"* inspect grounding\n"

	features := NewFeatureExtractor().ExtractAll("Electrical Manual", content)

	assert.Equal(t, float64(len(content)), features.Get(domain.FeatureLength))
	assert.Equal(t, 2.0, features.Get(domain.FeatureSectionCount))
	assert.Equal(t, 3.0, features.Get(domain.FeatureBulletPoints))
	assert.Greater(t, features.DomainDensity(domain.DomainElectrical), 0.0)
}

func TestFeatureExtractor_UppercaseRatio(t *testing.T) {
	features := NewFeatureExtractor().ExtractAll("", "ABCD efgh")

	// 4 of 8 letters are uppercase.
	assert.InDelta(t, 0.5, features.Get(domain.FeatureUppercaseRatio), 1e-9)
}

func TestFeatureExtractor_DigitRatio(t *testing.T) {
	features := NewFeatureExtractor().ExtractAll("", "ab12")

	assert.InDelta(t, 0.5, features.Get(domain.FeatureDigitRatio), 1e-9)
}

func TestFeatureExtractor_DomainScores(t *testing.T) {
	extractor := NewFeatureExtractor()

	scores := extractor.DomainScores("The voltage across the circuit breaker exceeds the rated current.")

	require.Len(t, scores, len(domain.AllTechnicalDomains()))
	assert.Greater(t, scores[domain.DomainElectrical], 0.0)
	assert.Greater(t, scores[domain.DomainElectrical], scores[domain.DomainChemical])
	assert.Zero(t, scores[domain.DomainGeneral])
}

func TestFeatureExtractor_DensityCaseInsensitive(t *testing.T) {
	extractor := NewFeatureExtractor()

	lower := extractor.DomainScores("voltage voltage")
	upper := extractor.DomainScores("VOLTAGE VOLTAGE")

	assert.InDelta(t, lower[domain.DomainElectrical], upper[domain.DomainElectrical], 1e-12)
}
