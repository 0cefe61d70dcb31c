package services

import (
	"github.com/doclens/doclens-cli/internal/core/domain"
)

// Priority scoring weights. The coefficients are tunable; the binding
// contract is that scores stay in [0,1] and reward type-signal plus
// structural richness.
const (
	priorityTypeWeight    = 0.5
	prioritySectionWeight = 0.3
	priorityLengthWeight  = 0.2

	// priorityDensityScale maps the small keyword densities (hits per
	// character) onto [0,1].
	priorityDensityScale = 400.0

	// prioritySectionNorm and priorityLengthNorm are the feature values at
	// which the respective contributions saturate.
	prioritySectionNorm = 10.0
	priorityLengthNorm  = 5000.0
)

// Quality assessment weights.
const (
	qualityBase          = 0.25
	qualitySectionWeight = 0.35
	qualityBulletWeight  = 0.20
	qualityLengthWeight  = 0.20

	qualitySectionNorm = 8.0
	qualityBulletNorm  = 10.0
	qualityLengthNorm  = 3000.0

	// Shouty or boilerplate text (high uppercase ratio) is penalised once
	// the ratio exceeds the allowance.
	qualityUppercaseAllowance = 0.3
	qualityUppercasePenalty   = 1.2
)

// PriorityScorer scores how urgent a document is to act on, combining the
// type-matching keyword density with structural richness.
type PriorityScorer struct{}

// NewPriorityScorer creates a priority scorer.
func NewPriorityScorer() *PriorityScorer {
	return &PriorityScorer{}
}

// Score returns a priority in [0,1]. All-zero feature maps score 0.
func (s *PriorityScorer) Score(docType domain.DocumentType, features domain.FeatureMap) float64 {
	typeSignal := clamp01(features.TypeDensity(docType) * priorityDensityScale)
	sections := clamp01(features.Get(domain.FeatureSectionCount) / prioritySectionNorm)
	length := clamp01(features.Get(domain.FeatureLength) / priorityLengthNorm)

	score := priorityTypeWeight*typeSignal +
		prioritySectionWeight*sections +
		priorityLengthWeight*length
	return clamp01(score)
}

// QualityAssessor scores how well-formed a document's text is.
type QualityAssessor struct{}

// NewQualityAssessor creates a quality assessor.
func NewQualityAssessor() *QualityAssessor {
	return &QualityAssessor{}
}

// Assess returns a quality score in [0,1]. Structural richness (sections,
// bullets, length) raises the score; a high uppercase ratio lowers it.
// All-zero feature maps yield the base score.
func (a *QualityAssessor) Assess(features domain.FeatureMap) float64 {
	sections := clamp01(features.Get(domain.FeatureSectionCount) / qualitySectionNorm)
	bullets := clamp01(features.Get(domain.FeatureBulletPoints) / qualityBulletNorm)
	length := clamp01(features.Get(domain.FeatureLength) / qualityLengthNorm)

	score := qualityBase +
		qualitySectionWeight*sections +
		qualityBulletWeight*bullets +
		qualityLengthWeight*length

	if upper := features.Get(domain.FeatureUppercaseRatio); upper > qualityUppercaseAllowance {
		score -= qualityUppercasePenalty * (upper - qualityUppercaseAllowance)
	}

	return clamp01(score)
}

// clamp01 clips v to the closed interval [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
