package services

import (
	"context"
	"strings"
	"sync"

	"github.com/doclens/doclens-cli/internal/core/domain"
	"github.com/doclens/doclens-cli/internal/core/ports/driving"
	"github.com/doclens/doclens-cli/internal/logger"
)

// DefaultBatchWorkers bounds the batch classification worker pool.
const DefaultBatchWorkers = 4

// Ensure ClassifierService implements the interface.
var _ driving.DocumentClassifier = (*ClassifierService)(nil)

// ClassifierService classifies documents by type and technical domain.
// Documents are classified independently with no shared mutable state, so
// batch classification fans out across a bounded worker pool.
type ClassifierService struct {
	features   *FeatureExtractor
	priority   *PriorityScorer
	quality    *QualityAssessor
	calibrator *ConfidenceCalibrator
	workers    int
}

// ClassifierOption configures a ClassifierService.
type ClassifierOption func(*ClassifierService)

// WithBatchWorkers sets the batch worker pool size. Values < 1 are ignored.
func WithBatchWorkers(n int) ClassifierOption {
	return func(s *ClassifierService) {
		if n >= 1 {
			s.workers = n
		}
	}
}

// WithCalibrator replaces the default confidence calibrator.
func WithCalibrator(c *ConfidenceCalibrator) ClassifierOption {
	return func(s *ClassifierService) {
		if c != nil {
			s.calibrator = c
		}
	}
}

// NewClassifierService creates a classifier with default scorers.
func NewClassifierService(opts ...ClassifierOption) *ClassifierService {
	s := &ClassifierService{
		features:   NewFeatureExtractor(),
		priority:   NewPriorityScorer(),
		quality:    NewQualityAssessor(),
		calibrator: NewConfidenceCalibrator(),
		workers:    DefaultBatchWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClassifyDocument classifies a single document. Degenerate input (empty or
// near-empty content) never fails; it yields a uniform-distribution,
// low-confidence result.
func (s *ClassifierService) ClassifyDocument(ctx context.Context, id, title, content string) (domain.ClassifiedDocument, error) {
	if err := ctx.Err(); err != nil {
		return domain.ClassifiedDocument{}, err
	}

	features := s.features.ExtractAll(title, content)

	typeProbs := typeDistribution(features)
	domainProbs := domainDistribution(features)

	predictedType := argmaxType(typeProbs)
	predictedDomain := argmaxDomain(domainProbs)

	qualityScore := s.quality.Assess(features)
	priorityScore := s.priority.Score(predictedType, features)

	sampleSize := len(strings.Fields(content))
	typeConf := s.calibrator.Calibrate(mapValuesType(typeProbs), qualityScore, sampleSize)
	domainConf := s.calibrator.Calibrate(mapValuesDomain(domainProbs), qualityScore, sampleSize)
	confidence := (typeConf + domainConf) / 2

	logger.Debug("classified %s: type=%s domain=%s confidence=%.3f", id, predictedType, predictedDomain, confidence)

	return domain.ClassifiedDocument{
		DocumentID:          id,
		Title:               title,
		Content:             content,
		PredictedType:       predictedType,
		PredictedDomain:     predictedDomain,
		PriorityScore:       priorityScore,
		QualityScore:        qualityScore,
		Confidence:          confidence,
		TypeProbabilities:   typeProbs,
		DomainProbabilities: domainProbs,
		Metadata: map[string]any{
			domain.FeatureLength:       len(content),
			domain.FeatureSectionCount: int(features.Get(domain.FeatureSectionCount)),
		},
	}, nil
}

// BatchClassify classifies inputs concurrently across the worker pool.
// Results are written into indexed slots so output order always matches
// input order regardless of completion order.
func (s *ClassifierService) BatchClassify(ctx context.Context, inputs []domain.DocumentInput) ([]domain.ClassifiedDocument, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	results := make([]domain.ClassifiedDocument, len(inputs))
	jobs := make(chan int)

	workers := s.workers
	if workers > len(inputs) {
		workers = len(inputs)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				in := inputs[i]
				// ClassifyDocument only fails on context cancellation;
				// a cancelled slot stays zero-valued and the error is
				// reported after the pool drains.
				doc, err := s.ClassifyDocument(ctx, in.ID, in.Title, in.Content)
				if err == nil {
					results[i] = doc
				}
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// AggregateStatistics summarises a result set. An empty input yields an
// empty map, never an error.
func (s *ClassifierService) AggregateStatistics(results []domain.ClassifiedDocument) map[string]any {
	if len(results) == 0 {
		return map[string]any{}
	}

	byType := make(map[string]int)
	byDomain := make(map[string]int)
	var confSum, prioSum, qualSum float64
	for _, r := range results {
		byType[r.PredictedType.String()]++
		byDomain[r.PredictedDomain.String()]++
		confSum += r.Confidence
		prioSum += r.PriorityScore
		qualSum += r.QualityScore
	}

	n := float64(len(results))
	return map[string]any{
		"total":           len(results),
		"by_type":         byType,
		"by_domain":       byDomain,
		"mean_confidence": confSum / n,
		"mean_priority":   prioSum / n,
		"mean_quality":    qualSum / n,
	}
}

// typeDistribution normalises the type density features into a probability
// distribution, falling back to uniform when every density is zero.
func typeDistribution(features domain.FeatureMap) map[domain.DocumentType]float64 {
	types := domain.AllDocumentTypes()
	probs := make(map[domain.DocumentType]float64, len(types))

	var sum float64
	for _, t := range types {
		sum += features.TypeDensity(t)
	}
	if sum == 0 {
		uniform := 1.0 / float64(len(types))
		for _, t := range types {
			probs[t] = uniform
		}
		return probs
	}
	for _, t := range types {
		probs[t] = features.TypeDensity(t) / sum
	}
	return probs
}

// domainDistribution mirrors typeDistribution for technical domains.
func domainDistribution(features domain.FeatureMap) map[domain.TechnicalDomain]float64 {
	domains := domain.AllTechnicalDomains()
	probs := make(map[domain.TechnicalDomain]float64, len(domains))

	var sum float64
	for _, d := range domains {
		sum += features.DomainDensity(d)
	}
	if sum == 0 {
		uniform := 1.0 / float64(len(domains))
		for _, d := range domains {
			probs[d] = uniform
		}
		return probs
	}
	for _, d := range domains {
		probs[d] = features.DomainDensity(d) / sum
	}
	return probs
}

// argmaxType picks the highest-probability type, breaking ties by the stable
// enum order so classification stays deterministic.
func argmaxType(probs map[domain.DocumentType]float64) domain.DocumentType {
	best := domain.AllDocumentTypes()[0]
	bestP := probs[best]
	for _, t := range domain.AllDocumentTypes()[1:] {
		if probs[t] > bestP {
			best, bestP = t, probs[t]
		}
	}
	return best
}

// argmaxDomain picks the highest-probability domain with the same stable
// tie-break as argmaxType. A fully flat distribution resolves to the general
// bucket: with no discipline signal at all, "general" is the honest answer.
func argmaxDomain(probs map[domain.TechnicalDomain]float64) domain.TechnicalDomain {
	best := domain.AllTechnicalDomains()[0]
	bestP := probs[best]
	flat := true
	for _, d := range domain.AllTechnicalDomains()[1:] {
		if probs[d] != bestP {
			flat = false
		}
		if probs[d] > bestP {
			best, bestP = d, probs[d]
		}
	}
	if flat {
		return domain.DomainGeneral
	}
	return best
}

func mapValuesType(probs map[domain.DocumentType]float64) []float64 {
	values := make([]float64, 0, len(probs))
	for _, p := range probs {
		values = append(values, p)
	}
	return values
}

func mapValuesDomain(probs map[domain.TechnicalDomain]float64) []float64 {
	values := make([]float64, 0, len(probs))
	for _, p := range probs {
		values = append(values, p)
	}
	return values
}
