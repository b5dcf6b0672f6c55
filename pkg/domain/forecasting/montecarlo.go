package forecasting

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// minSprintVelocity is the floor applied to every sampled velocity.
	// A zero or negative sample would never burn work down.
	minSprintVelocity = 0.1
	// maxSprintsPerTrial caps a single trial so that a degenerate
	// velocity cannot loop forever. Capped trials are recorded at the
	// cap and counted, not discarded.
	maxSprintsPerTrial = 1000
)

// MonteCarloModel forecasts completion by repeatedly simulating
// sprint-by-sprint burn-down, sampling each sprint's velocity from the
// historical distribution. Trials are independent and fanned out across
// workers; results are written by trial index so a seeded run is
// reproducible regardless of scheduling.
type MonteCarloModel struct {
	logger  zerolog.Logger
	workers int
}

// NewMonteCarloModel creates a Monte Carlo model. Workers defaults to
// the number of CPUs.
func NewMonteCarloModel(logger zerolog.Logger) *MonteCarloModel {
	return &MonteCarloModel{
		logger:  logger.With().Str("model", string(ModelTypeMonteCarlo)).Logger(),
		workers: runtime.NumCPU(),
	}
}

// Type identifies the algorithm.
func (m *MonteCarloModel) Type() ModelType { return ModelTypeMonteCarlo }

// Info describes the model for discovery and report rendering.
func (m *MonteCarloModel) Info() ModelInfo {
	return ModelInfo{
		Type:                  ModelTypeMonteCarlo,
		DisplayName:           "Monte Carlo",
		Description:           "Simulates thousands of possible futures by sampling from the historical velocity distribution",
		SupportsDistributions: true,
		MinHistoricalPeriods:  3,
		ReportTitle:           "Monte Carlo Forecast",
		ReportSubtitle:        "Probabilistic completion forecast from historical velocity",
		Methodology:           "Each trial burns remaining work down sprint by sprint, drawing every sprint's velocity from a Normal distribution fitted to history. Percentiles of the resulting completion times form the prediction intervals.",
	}
}

// ValidateInputs returns all problems with the inputs.
func (m *MonteCarloModel) ValidateInputs(remainingWork float64, metrics VelocityMetrics) []string {
	return ValidateForecastInputs(remainingWork, metrics)
}

// Forecast runs the simulation with no scenario adjustments.
func (m *MonteCarloModel) Forecast(remainingWork float64, metrics VelocityMetrics, cfg Config) (*ForecastResult, error) {
	return m.ForecastWithFactor(remainingWork, metrics, cfg, nil)
}

// ForecastWithFactor runs the simulation, multiplying each simulated
// sprint's sampled velocity by factor(sprint) when a factor is supplied.
// The factor is evaluated per absolute sprint index inside the trial
// loop, never pre-averaged.
func (m *MonteCarloModel) ForecastWithFactor(remainingWork float64, metrics VelocityMetrics, cfg Config, factor SprintFactor) (*ForecastResult, error) {
	mc := m.coerce(cfg)
	if errs := mc.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid monte carlo configuration: %s", strings.Join(errs, "; "))
	}
	if metrics.IsHighVariance() {
		m.logger.Warn().
			Float64("average", metrics.Average).
			Float64("std_dev", metrics.StdDev).
			Msg("velocity variance is high; forecast spread will be wide")
	}

	seed := mc.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	trials := make([]float64, mc.NumSimulations)
	var capped atomic.Int64

	workers := m.workers
	if workers < 1 {
		workers = 1
	}
	if workers > mc.NumSimulations {
		workers = mc.NumSimulations
	}

	sigma := metrics.StdDev * mc.VarianceMultiplier
	sampleVariance := mc.UseHistoricalVariance && sigma > 0

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			sample := func() float64 { return metrics.Average }
			if sampleVariance {
				normal := distuv.Normal{
					Mu:    metrics.Average,
					Sigma: sigma,
					Src:   rand.NewPCG(seed, uint64(w)),
				}
				sample = normal.Rand
			}
			for i := w; i < mc.NumSimulations; i += workers {
				trials[i] = runTrial(remainingWork, sample, factor, &capped)
			}
			return nil
		})
	}
	// Workers never return errors; Wait is just the join point.
	_ = g.Wait()

	if n := capped.Load(); n > 0 {
		m.logger.Warn().
			Int64("capped_trials", n).
			Int("cap", maxSprintsPerTrial).
			Msg("trials hit the sprint safety cap; velocity may be too low for the remaining work")
	}

	result := m.summarize(trials, mc)
	result.Metadata = map[string]any{
		"run_id":              uuid.NewString(),
		"simulations":         mc.NumSimulations,
		"velocity_average":    metrics.Average,
		"velocity_std_dev":    metrics.StdDev,
		"variance_multiplier": mc.VarianceMultiplier,
		"variance_sampled":    sampleVariance,
		"seed":                seed,
		"capped_trials":       capped.Load(),
		"scenario_applied":    factor != nil,
	}
	return result, nil
}

// coerce upgrades a base Configuration to a MonteCarloConfiguration,
// filling simulation-specific fields with defaults.
func (m *MonteCarloModel) coerce(cfg Config) MonteCarloConfiguration {
	if mc, ok := cfg.(MonteCarloConfiguration); ok {
		return mc
	}
	mc := NewMonteCarloConfiguration()
	if cfg != nil {
		base := cfg.Base()
		if len(base.ConfidenceLevels) > 0 {
			mc.ConfidenceLevels = base.ConfidenceLevels
		}
		if base.SprintDurationDays > 0 {
			mc.SprintDurationDays = base.SprintDurationDays
		}
	}
	return mc
}

// runTrial burns remainingWork down in whole-sprint steps and returns
// the number of sprints needed. The count per trial is always an
// integer; fractional sprints only appear in aggregate statistics.
func runTrial(remainingWork float64, sample func() float64, factor SprintFactor, capped *atomic.Int64) float64 {
	work := remainingWork
	sprints := 0
	for work > 0 {
		if sprints >= maxSprintsPerTrial {
			capped.Add(1)
			break
		}
		sprints++
		velocity := sample()
		if factor != nil {
			velocity *= factor(sprints)
		}
		if velocity < minSprintVelocity {
			velocity = minSprintVelocity
		}
		work -= velocity
	}
	return float64(sprints)
}

// summarize turns the complete trial set into a ForecastResult.
func (m *MonteCarloModel) summarize(trials []float64, cfg MonteCarloConfiguration) *ForecastResult {
	n := len(trials)

	sorted := make([]float64, n)
	copy(sorted, trials)
	sort.Float64s(sorted)

	intervals := make([]PredictionInterval, 0, len(cfg.ConfidenceLevels))
	for _, level := range cfg.ConfidenceLevels {
		alpha := 1 - level
		intervals = append(intervals, PredictionInterval{
			ConfidenceLevel: level,
			Lower:           sorted[clampIndex(int(float64(n)*alpha/2), n)],
			Predicted:       sorted[clampIndex(int(float64(n)*level), n)],
			Upper:           sorted[clampIndex(int(float64(n)*(1-alpha/2)), n)],
		})
	}

	expected := stat.Mean(sorted, nil)

	distribution := make(map[int]float64)
	for _, t := range trials {
		distribution[int(t)]++
	}
	for bucket := range distribution {
		distribution[bucket] /= float64(n)
	}

	samples := trials
	if len(samples) > MaxSamplePredictions {
		samples = samples[:MaxSamplePredictions]
	}

	return &ForecastResult{
		PredictionIntervals:    intervals,
		ExpectedSprints:        expected,
		ExpectedCompletionDate: completionDate(time.Now(), expected, cfg.SprintDurationDays),
		Distribution:           distribution,
		ModelType:              ModelTypeMonteCarlo,
		SamplePredictions:      samples,
	}
}

// completionDate converts a fractional sprint count into a calendar date.
func completionDate(from time.Time, sprints float64, sprintDurationDays int) time.Time {
	days := sprints * float64(sprintDurationDays)
	return from.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// clampIndex keeps a percentile index inside [0, n).
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
