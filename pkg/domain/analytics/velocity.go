// Package analytics aggregates raw per-sprint velocity samples into the
// summary statistics the forecasting models consume, and derives
// process-health diagnostics from them.
package analytics

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
)

// TrendDirection indicates the direction of velocity change over time.
type TrendDirection string

const (
	// TrendAccelerating indicates velocity is increasing.
	TrendAccelerating TrendDirection = "accelerating"
	// TrendDecelerating indicates velocity is decreasing.
	TrendDecelerating TrendDirection = "decelerating"
	// TrendStable indicates velocity is relatively constant.
	TrendStable TrendDirection = "stable"
)

// trendThreshold is the relative per-sprint slope below which the trend
// counts as stable.
const trendThreshold = 0.05

// ComputeMetrics summarizes historical per-sprint velocity samples,
// ordered oldest first. At least one sample is required; the trend
// slope needs two or more and is zero otherwise.
func ComputeMetrics(samples []float64) (forecasting.VelocityMetrics, error) {
	if len(samples) == 0 {
		return forecasting.VelocityMetrics{}, fmt.Errorf("at least one velocity sample is required")
	}
	for i, v := range samples {
		if v < 0 {
			return forecasting.VelocityMetrics{}, fmt.Errorf("velocity sample %d must not be negative, got %.2f", i+1, v)
		}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	metrics := forecasting.VelocityMetrics{
		Average: stat.Mean(sorted, nil),
		Median:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		metrics.StdDev = stat.StdDev(sorted, nil)

		xs := make([]float64, len(samples))
		for i := range xs {
			xs[i] = float64(i + 1)
		}
		_, slope := stat.LinearRegression(xs, samples, nil, false)
		metrics.Trend = slope
	}
	return metrics, nil
}

// Diagnostics captures process-health signals derived from velocity
// history: how predictable the team's throughput is and where it is
// heading.
type Diagnostics struct {
	Direction      TrendDirection // Overall trend direction
	Variability    float64        // Coefficient of variation (StdDev/Average)
	Predictability float64        // 0..1, higher = more repeatable sprints
	Consistent     bool           // Variability below the consistency threshold
	HighVariance   bool           // Spread wide enough to warrant caution
}

// Diagnose derives health diagnostics from velocity metrics.
func Diagnose(m forecasting.VelocityMetrics) Diagnostics {
	d := Diagnostics{
		Direction:    TrendStable,
		Variability:  m.Variability(),
		Consistent:   m.IsConsistent(),
		HighVariance: m.IsHighVariance(),
	}

	if m.Average > 0 {
		relative := m.Trend / m.Average
		switch {
		case relative > trendThreshold:
			d.Direction = TrendAccelerating
		case relative < -trendThreshold:
			d.Direction = TrendDecelerating
		}
	}

	d.Predictability = 1 - d.Variability
	if d.Predictability < 0 {
		d.Predictability = 0
	}
	return d
}

// IsPositive returns true if the direction indicates improving velocity.
func (d TrendDirection) IsPositive() bool {
	return d == TrendAccelerating
}

// IsNegative returns true if the direction indicates declining velocity.
func (d TrendDirection) IsNegative() bool {
	return d == TrendDecelerating
}
