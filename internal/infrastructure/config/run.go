// Package config loads run and scenario configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
	"github.com/felixgeelhaar/sprintcast/pkg/domain/scenario"
)

// RunConfig holds file-provided forecast parameters. Zero values mean
// "not set"; MonteCarloConfiguration merges set fields onto defaults so
// CLI flags and files can partially override.
type RunConfig struct {
	ConfidenceLevels      []float64 `yaml:"confidence_levels"`
	SprintDurationDays    int       `yaml:"sprint_duration_days"`
	Simulations           int       `yaml:"simulations"`
	UseHistoricalVariance *bool     `yaml:"use_historical_variance"`
	VarianceMultiplier    float64   `yaml:"variance_multiplier"`
	Seed                  uint64    `yaml:"seed"`
	TeamSize              float64   `yaml:"team_size"`
}

// LoadRunConfig reads a run configuration file. A missing file is not
// an error and yields nil.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read run config: %w", err)
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run config: %w", err)
	}
	return &cfg, nil
}

// MonteCarloConfiguration merges the file values onto the model
// defaults.
func (c *RunConfig) MonteCarloConfiguration() forecasting.MonteCarloConfiguration {
	mc := forecasting.NewMonteCarloConfiguration()
	if c == nil {
		return mc
	}
	if len(c.ConfidenceLevels) > 0 {
		mc.ConfidenceLevels = c.ConfidenceLevels
	}
	if c.SprintDurationDays > 0 {
		mc.SprintDurationDays = c.SprintDurationDays
	}
	if c.Simulations > 0 {
		mc.NumSimulations = c.Simulations
	}
	if c.UseHistoricalVariance != nil {
		mc.UseHistoricalVariance = *c.UseHistoricalVariance
	}
	if c.VarianceMultiplier > 0 {
		mc.VarianceMultiplier = c.VarianceMultiplier
	}
	mc.Seed = c.Seed
	return mc
}

// LoadScenario reads a scenario definition file.
func LoadScenario(path string) (*scenario.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var sc scenario.Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	if sc.Name == "" {
		sc.Name = "unnamed"
	}
	return &sc, nil
}
