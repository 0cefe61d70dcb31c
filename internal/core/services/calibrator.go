package services

import "math"

// Calibration constants. As with the scorers these are tunable; the binding
// contracts are monotonicity in sample size, clamping to [0,1] and exact
// saturation at 1.0 for near-peak distributions with rich evidence.
const (
	// DefaultTemperature softens peaked distributions before the peak mass
	// is read off (values above 1 soften).
	DefaultTemperature = 1.5

	// richnessCap is the sample size at which the richness factor saturates.
	richnessCap = 100000.0

	// richnessFloor keeps tiny samples from zeroing confidence entirely.
	richnessFloor = 0.2

	// qualityFloor bounds how much a poor quality score can drag confidence.
	qualityFloor = 0.5

	// calibrationGain lets strong evidence saturate at the 1.0 clamp.
	calibrationGain = 1.25
)

// ConfidenceCalibrator maps a raw probability distribution, a quality score
// and a sample size onto a bounded confidence value. It is a pure function
// with no state beyond its configured temperature.
type ConfidenceCalibrator struct {
	temperature float64
}

// CalibratorOption configures a ConfidenceCalibrator.
type CalibratorOption func(*ConfidenceCalibrator)

// WithTemperature sets the softening temperature. Values <= 0 are ignored.
func WithTemperature(t float64) CalibratorOption {
	return func(c *ConfidenceCalibrator) {
		if t > 0 {
			c.temperature = t
		}
	}
}

// NewConfidenceCalibrator creates a calibrator with the given options.
func NewConfidenceCalibrator(opts ...CalibratorOption) *ConfidenceCalibrator {
	c := &ConfidenceCalibrator{temperature: DefaultTemperature}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Temperature returns the configured softening temperature.
func (c *ConfidenceCalibrator) Temperature() float64 {
	return c.temperature
}

// Calibrate computes a confidence in [0,1] from the probability values of one
// distribution, a quality score and a sample size (a richness proxy such as
// the document's token count).
//
// The peak mass of the temperature-scaled distribution is scaled by a
// monotonically increasing function of sampleSize and blended with quality;
// the result is clamped so over-saturated combinations land on exactly 1.0.
func (c *ConfidenceCalibrator) Calibrate(probabilities []float64, quality float64, sampleSize int) float64 {
	peak := c.scaledPeak(probabilities)
	if peak == 0 {
		return 0
	}

	richness := richnessFloor + (1-richnessFloor)*sampleFactor(sampleSize)
	qualityBlend := qualityFloor + (1-qualityFloor)*clamp01(quality)

	return clamp01(peak * richness * qualityBlend * calibrationGain)
}

// scaledPeak returns the maximum mass of the distribution after temperature
// scaling (p_i^(1/T), renormalised). Empty or all-zero input yields 0.
func (c *ConfidenceCalibrator) scaledPeak(probabilities []float64) float64 {
	var sum, peak float64
	exponent := 1 / c.temperature
	for _, p := range probabilities {
		if p <= 0 {
			continue
		}
		scaled := math.Pow(p, exponent)
		sum += scaled
		if scaled > peak {
			peak = scaled
		}
	}
	if sum == 0 {
		return 0
	}
	return peak / sum
}

// sampleFactor maps a sample size onto [0,1], strictly increasing up to
// richnessCap. Non-positive sizes map to 0.
func sampleFactor(sampleSize int) float64 {
	if sampleSize <= 0 {
		return 0
	}
	n := math.Min(float64(sampleSize), richnessCap)
	return math.Log1p(n) / math.Log1p(richnessCap)
}
