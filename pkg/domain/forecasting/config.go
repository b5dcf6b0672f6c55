package forecasting

import "fmt"

// Default configuration values shared by all models.
const (
	DefaultSprintDurationDays = 14
	DefaultNumSimulations     = 10000
	DefaultVarianceMultiplier = 1.0
	MinRecommendedSimulations = 100
)

// DefaultConfidenceLevels returns the standard set of confidence levels.
func DefaultConfidenceLevels() []float64 {
	return []float64{0.5, 0.7, 0.85, 0.95}
}

// Config is the contract every model configuration satisfies. Validate
// returns a list of human-readable problems and never panics; callers
// decide whether a non-empty list aborts the run.
type Config interface {
	Base() Configuration
	Validate() []string
}

// Configuration holds the parameters common to all forecasting models.
// It is constructed fresh per forecast invocation and not mutated after
// validation.
type Configuration struct {
	ConfidenceLevels   []float64 `yaml:"confidence_levels" json:"confidence_levels"`
	SprintDurationDays int       `yaml:"sprint_duration_days" json:"sprint_duration_days"`
}

// NewConfiguration returns a Configuration with default values.
func NewConfiguration() Configuration {
	return Configuration{
		ConfidenceLevels:   DefaultConfidenceLevels(),
		SprintDurationDays: DefaultSprintDurationDays,
	}
}

// Base returns the shared configuration.
func (c Configuration) Base() Configuration { return c }

// Validate checks the common parameters and returns all problems found.
func (c Configuration) Validate() []string {
	var errs []string
	if len(c.ConfidenceLevels) == 0 {
		errs = append(errs, "at least one confidence level is required")
	}
	for _, level := range c.ConfidenceLevels {
		if level <= 0 || level >= 1 {
			errs = append(errs, fmt.Sprintf("confidence level %.2f must be between 0 and 1 exclusive", level))
		}
	}
	if c.SprintDurationDays <= 0 {
		errs = append(errs, "sprint duration must be a positive number of days")
	}
	return errs
}

// MonteCarloConfiguration extends Configuration with simulation-specific
// parameters.
type MonteCarloConfiguration struct {
	Configuration `yaml:",inline"`

	// NumSimulations is the number of independent trials to run.
	NumSimulations int `yaml:"simulations" json:"simulations"`
	// UseHistoricalVariance samples velocity from a Normal distribution
	// around the historical mean; when false every sprint burns the mean.
	UseHistoricalVariance bool `yaml:"use_historical_variance" json:"use_historical_variance"`
	// VarianceMultiplier scales the historical standard deviation.
	VarianceMultiplier float64 `yaml:"variance_multiplier" json:"variance_multiplier"`
	// Seed fixes the random source for reproducible runs; 0 seeds from
	// the wall clock.
	Seed uint64 `yaml:"seed" json:"seed"`
}

// NewMonteCarloConfiguration returns a MonteCarloConfiguration with
// default values.
func NewMonteCarloConfiguration() MonteCarloConfiguration {
	return MonteCarloConfiguration{
		Configuration:         NewConfiguration(),
		NumSimulations:        DefaultNumSimulations,
		UseHistoricalVariance: true,
		VarianceMultiplier:    DefaultVarianceMultiplier,
	}
}

// Validate checks both the common and the Monte-Carlo-specific parameters.
func (c MonteCarloConfiguration) Validate() []string {
	errs := c.Configuration.Validate()
	if c.NumSimulations < MinRecommendedSimulations {
		errs = append(errs, fmt.Sprintf("at least %d simulations are required, got %d", MinRecommendedSimulations, c.NumSimulations))
	}
	if c.VarianceMultiplier <= 0 {
		errs = append(errs, "variance multiplier must be positive")
	}
	return errs
}
