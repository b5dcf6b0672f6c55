package forecasting

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/distuv"
)

// PERTModel produces a deterministic three-point forecast from the
// observed velocity range: optimistic (max velocity), most likely
// (median), pessimistic (min velocity). It carries no empirical
// distribution and exists mainly as a fast cross-check against the
// Monte Carlo model.
type PERTModel struct {
	logger zerolog.Logger
}

// NewPERTModel creates a PERT model.
func NewPERTModel(logger zerolog.Logger) *PERTModel {
	return &PERTModel{logger: logger.With().Str("model", string(ModelTypePERT)).Logger()}
}

// Type identifies the algorithm.
func (m *PERTModel) Type() ModelType { return ModelTypePERT }

// Info describes the model for discovery and report rendering.
func (m *PERTModel) Info() ModelInfo {
	return ModelInfo{
		Type:                  ModelTypePERT,
		DisplayName:           "PERT",
		Description:           "Three-point estimate weighting the most likely velocity against the observed best and worst cases",
		SupportsDistributions: false,
		MinHistoricalPeriods:  1,
		ReportTitle:           "PERT Forecast",
		ReportSubtitle:        "Deterministic three-point completion estimate",
		Methodology:           "Effective velocity is (min + 4*median + max)/6 with sigma (max-min)/6; completion percentiles come from a Normal approximation over the implied sprint count.",
	}
}

// ValidateInputs returns all problems with the inputs.
func (m *PERTModel) ValidateInputs(remainingWork float64, metrics VelocityMetrics) []string {
	return ValidateForecastInputs(remainingWork, metrics)
}

// Forecast computes the three-point estimate.
func (m *PERTModel) Forecast(remainingWork float64, metrics VelocityMetrics, cfg Config) (*ForecastResult, error) {
	base := NewConfiguration()
	if cfg != nil {
		base = cfg.Base()
	}
	if errs := base.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid pert configuration: %s", strings.Join(errs, "; "))
	}

	mostLikely := metrics.Median
	if mostLikely <= 0 {
		mostLikely = metrics.Average
	}
	low, high := metrics.Min, metrics.Max
	if low <= 0 {
		low = mostLikely
	}
	if high <= 0 {
		high = mostLikely
	}

	velocity := (low + 4*mostLikely + high) / 6
	if velocity <= 0 {
		return nil, fmt.Errorf("pert effective velocity must be positive, got %.2f", velocity)
	}
	velocitySigma := (high - low) / 6

	// First-order Normal approximation of the sprint count.
	meanSprints := remainingWork / velocity
	sigmaSprints := meanSprints * velocitySigma / velocity

	intervals := make([]PredictionInterval, 0, len(base.ConfidenceLevels))
	for _, level := range base.ConfidenceLevels {
		alpha := 1 - level
		intervals = append(intervals, PredictionInterval{
			ConfidenceLevel: level,
			Lower:           nonNegative(meanSprints + sigmaSprints*standardNormalQuantile(alpha/2)),
			Predicted:       nonNegative(meanSprints + sigmaSprints*standardNormalQuantile(level)),
			Upper:           nonNegative(meanSprints + sigmaSprints*standardNormalQuantile(1-alpha/2)),
		})
	}

	return &ForecastResult{
		PredictionIntervals:    intervals,
		ExpectedSprints:        meanSprints,
		ExpectedCompletionDate: completionDate(time.Now(), meanSprints, base.SprintDurationDays),
		ModelType:              ModelTypePERT,
		Metadata: map[string]any{
			"run_id":             uuid.NewString(),
			"effective_velocity": velocity,
			"velocity_sigma":     velocitySigma,
			"optimistic":         high,
			"most_likely":        mostLikely,
			"pessimistic":        low,
		},
	}, nil
}

func standardNormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
