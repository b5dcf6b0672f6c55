package forecasting

import "time"

// MaxSamplePredictions caps the raw trial values carried on a result for
// downstream visualization.
const MaxSamplePredictions = 1000

// PredictionInterval is a completion estimate at a single confidence
// level, in sprints. Predicted answers "how many sprints until this much
// confidence of completion" (one-sided percentile); Lower and Upper
// communicate the two-sided spread around the median.
type PredictionInterval struct {
	ConfidenceLevel float64 `json:"confidence_level"`
	Lower           float64 `json:"lower"`
	Predicted       float64 `json:"predicted"`
	Upper           float64 `json:"upper"`
}

// RangeWidth returns the spread between the upper and lower bounds.
func (p PredictionInterval) RangeWidth() float64 {
	return p.Upper - p.Lower
}

// ForecastResult is the immutable outcome of a single model run.
type ForecastResult struct {
	// PredictionIntervals holds one interval per requested confidence
	// level, in the order the levels were configured.
	PredictionIntervals []PredictionInterval

	// ExpectedSprints is the mean completion time across all trials.
	ExpectedSprints float64
	// ExpectedCompletionDate converts ExpectedSprints to a calendar date
	// using the configured sprint duration.
	ExpectedCompletionDate time.Time

	// Distribution maps whole sprint counts to the fraction of trials
	// completing in that many sprints. Nil for models that do not
	// produce an empirical distribution.
	Distribution map[int]float64

	// ModelType identifies the model that produced this result.
	ModelType ModelType
	// Metadata carries free-form diagnostic information about the run.
	Metadata map[string]any

	// SamplePredictions holds the first MaxSamplePredictions raw trial
	// values in generation order, for visualization.
	SamplePredictions []float64
}

// IntervalAt returns the prediction interval for the given confidence
// level, or false if the level was not requested.
func (r *ForecastResult) IntervalAt(level float64) (PredictionInterval, bool) {
	for _, pi := range r.PredictionIntervals {
		if pi.ConfidenceLevel == level {
			return pi, true
		}
	}
	return PredictionInterval{}, false
}

// CompletionProbabilityBy returns the cumulative probability that work
// completes within the given number of sprints.
func (r *ForecastResult) CompletionProbabilityBy(sprints int) float64 {
	total := 0.0
	for bucket, p := range r.Distribution {
		if bucket <= sprints {
			total += p
		}
	}
	return total
}
