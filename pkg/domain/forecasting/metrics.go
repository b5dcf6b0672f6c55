// Package forecasting provides probabilistic completion forecasting for
// project work based on historical velocity.
package forecasting

// VelocityMetrics is an immutable statistical summary of historical
// throughput per sprint. It is computed once per forecasting run and
// consumed read-only by forecasting models.
type VelocityMetrics struct {
	Average float64 // Mean completed work per sprint
	Median  float64 // Median completed work per sprint
	StdDev  float64 // Standard deviation of per-sprint velocity
	Min     float64 // Minimum observed velocity
	Max     float64 // Maximum observed velocity
	Trend   float64 // Linear-regression slope of recent samples (positive = increasing)
}

// Variability returns the coefficient of variation (StdDev/Average).
func (m VelocityMetrics) Variability() float64 {
	if m.Average == 0 {
		return 0
	}
	return m.StdDev / m.Average
}

// IsConsistent returns true if velocity is relatively stable.
func (m VelocityMetrics) IsConsistent() bool {
	return m.Variability() < 0.3 // Less than 30% coefficient of variation
}

// IsHighVariance returns true when the spread is large enough that
// forecasts should be treated with caution.
func (m VelocityMetrics) IsHighVariance() bool {
	return m.StdDev > 0.5*m.Average
}

// IsImproving returns true if the trend indicates increasing velocity.
func (m VelocityMetrics) IsImproving() bool {
	return m.Trend > 0
}
