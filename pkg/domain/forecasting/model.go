package forecasting

import "fmt"

// ModelType identifies a forecasting algorithm.
type ModelType string

const (
	// ModelTypeMonteCarlo simulates sprint-by-sprint burn-down by
	// sampling from the historical velocity distribution.
	ModelTypeMonteCarlo ModelType = "monte_carlo"
	// ModelTypePERT is a deterministic three-point estimate over the
	// observed velocity range.
	ModelTypePERT ModelType = "pert"
)

// ModelInfo describes a registered model for discovery and reporting.
type ModelInfo struct {
	Type                  ModelType
	DisplayName           string
	Description           string
	SupportsDistributions bool
	// MinHistoricalPeriods is the number of completed sprints the model
	// needs before its output is meaningful.
	MinHistoricalPeriods int
	ReportTitle          string
	ReportSubtitle       string
	Methodology          string
}

// Model is the contract every forecasting algorithm implements.
type Model interface {
	// Type identifies the algorithm.
	Type() ModelType
	// Info describes the model for discovery and report rendering.
	Info() ModelInfo
	// ValidateInputs returns all problems with the inputs as
	// human-readable strings. It never panics; an empty list means the
	// inputs are usable.
	ValidateInputs(remainingWork float64, metrics VelocityMetrics) []string
	// Forecast produces a completion-time forecast for the remaining
	// work given historical velocity. Callers are expected to have
	// checked ValidateInputs and cfg.Validate first.
	Forecast(remainingWork float64, metrics VelocityMetrics, cfg Config) (*ForecastResult, error)
}

// SprintFactor returns the velocity multiplier in effect for the given
// absolute sprint index (1-based). Implementations must be safe for
// concurrent calls.
type SprintFactor func(sprint int) float64

// FactorForecaster is implemented by models that can evaluate a
// per-sprint velocity factor inside their simulation loop. This is the
// seam scenario adjustments flow through: the factor is consulted for
// every simulated sprint rather than averaged into a single scalar.
type FactorForecaster interface {
	ForecastWithFactor(remainingWork float64, metrics VelocityMetrics, cfg Config, factor SprintFactor) (*ForecastResult, error)
}

// ValidateForecastInputs implements the input checks shared by all
// models.
func ValidateForecastInputs(remainingWork float64, metrics VelocityMetrics) []string {
	var errs []string
	if remainingWork <= 0 {
		errs = append(errs, fmt.Sprintf("remaining work must be positive, got %.2f", remainingWork))
	}
	if metrics.Average <= 0 {
		errs = append(errs, fmt.Sprintf("average velocity must be positive, got %.2f", metrics.Average))
	}
	if metrics.StdDev < 0 {
		errs = append(errs, fmt.Sprintf("velocity standard deviation must not be negative, got %.2f", metrics.StdDev))
	}
	return errs
}
