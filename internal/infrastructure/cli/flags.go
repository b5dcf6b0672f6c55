package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintcast/pkg/domain/analytics"
	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
)

// metricsFlags collects the two ways velocity history can be supplied:
// raw per-sprint samples (preferred, aggregated in-process) or explicit
// summary statistics.
type metricsFlags struct {
	velocities string
	average    float64
	median     float64
	stdDev     float64
	min        float64
	max        float64
	trend      float64
}

func (f *metricsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.velocities, "velocities", "", "Comma-separated historical per-sprint velocities, oldest first (e.g. 18,22,20,19)")
	cmd.Flags().Float64Var(&f.average, "average", 0, "Average velocity (alternative to --velocities)")
	cmd.Flags().Float64Var(&f.median, "median", 0, "Median velocity (defaults to --average)")
	cmd.Flags().Float64Var(&f.stdDev, "std-dev", 0, "Velocity standard deviation")
	cmd.Flags().Float64Var(&f.min, "min", 0, "Minimum observed velocity (defaults to --average)")
	cmd.Flags().Float64Var(&f.max, "max", 0, "Maximum observed velocity (defaults to --average)")
	cmd.Flags().Float64Var(&f.trend, "trend", 0, "Velocity trend slope per sprint")
}

// resolve turns the flags into VelocityMetrics.
func (f *metricsFlags) resolve() (forecasting.VelocityMetrics, error) {
	if f.velocities != "" {
		samples, err := parseFloatList(f.velocities)
		if err != nil {
			return forecasting.VelocityMetrics{}, fmt.Errorf("invalid --velocities: %w", err)
		}
		return analytics.ComputeMetrics(samples)
	}
	if f.average <= 0 {
		return forecasting.VelocityMetrics{}, fmt.Errorf("either --velocities or a positive --average is required")
	}
	m := forecasting.VelocityMetrics{
		Average: f.average,
		Median:  f.median,
		StdDev:  f.stdDev,
		Min:     f.min,
		Max:     f.max,
		Trend:   f.trend,
	}
	if m.Median == 0 {
		m.Median = m.Average
	}
	if m.Min == 0 {
		m.Min = m.Average
	}
	if m.Max == 0 {
		m.Max = m.Average
	}
	return m, nil
}

// parseFloatList parses a comma-separated list of floats.
func parseFloatList(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", p)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no values given")
	}
	return values, nil
}

// parseModelTypes parses a comma-separated list of model type names.
func parseModelTypes(s string) []forecasting.ModelType {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	types := make([]forecasting.ModelType, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			types = append(types, forecasting.ModelType(p))
		}
	}
	return types
}
