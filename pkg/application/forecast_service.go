// Package application orchestrates the forecasting domain: input and
// configuration validation, model invocation, scenario application, and
// cross-model comparison.
package application

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
)

// ForecastService generates completion forecasts. It validates inputs
// and configuration before invoking a model and converts non-empty
// validation lists into hard errors. Forecasting is a pure computation,
// so there is no retry path.
type ForecastService struct {
	logger    zerolog.Logger
	decisions *forecasting.DecisionLog
}

// NewForecastService creates a forecast service. The decision log may
// be shared with other services; nil disables decision recording.
func NewForecastService(logger zerolog.Logger, decisions *forecasting.DecisionLog) *ForecastService {
	return &ForecastService{
		logger:    logger.With().Str("service", "forecast").Logger(),
		decisions: decisions,
	}
}

// Generate validates the inputs and configuration, then runs the model.
func (s *ForecastService) Generate(model forecasting.Model, remainingWork float64, metrics forecasting.VelocityMetrics, cfg forecasting.Config) (*forecasting.ForecastResult, error) {
	if model == nil {
		return nil, fmt.Errorf("forecasting model must not be nil")
	}
	if errs := model.ValidateInputs(remainingWork, metrics); len(errs) > 0 {
		return nil, fmt.Errorf("invalid forecast inputs: %s", strings.Join(errs, "; "))
	}
	if cfg == nil {
		cfg = s.defaultConfig(model)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}

	s.logger.Info().
		Str("model", string(model.Type())).
		Float64("remaining_work", remainingWork).
		Float64("velocity_average", metrics.Average).
		Msg("generating forecast")

	result, err := model.Forecast(remainingWork, metrics, cfg)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	s.logger.Info().
		Str("model", string(model.Type())).
		Float64("expected_sprints", result.ExpectedSprints).
		Msg("forecast complete")
	return result, nil
}

// defaultConfig picks a sensible configuration for the model and
// records the choice.
func (s *ForecastService) defaultConfig(model forecasting.Model) forecasting.Config {
	var cfg forecasting.Config
	if model.Type() == forecasting.ModelTypeMonteCarlo {
		cfg = forecasting.NewMonteCarloConfiguration()
	} else {
		cfg = forecasting.NewConfiguration()
	}
	if s.decisions != nil {
		s.decisions.Record("configuration", fmt.Sprintf("%s defaults", model.Type()),
			forecasting.DecisionSourceDefault, "no configuration supplied by caller")
	}
	return cfg
}
