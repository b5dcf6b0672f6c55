// Package wiring constructs the application services with their
// dependencies in one place.
package wiring

import (
	"github.com/rs/zerolog"

	"github.com/felixgeelhaar/sprintcast/pkg/application"
	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
)

// AppServices exposes the application layer wired together.
type AppServices struct {
	Factory   *forecasting.Factory
	Decisions *forecasting.DecisionLog
	Forecast  *application.ForecastService
	Scenario  *application.ScenarioService
	Compare   *application.CompareService
}

// BuildAppServices constructs the service graph with the built-in
// models registered.
func BuildAppServices(logger zerolog.Logger) *AppServices {
	factory := forecasting.NewDefaultFactory(logger)
	decisions := forecasting.NewDecisionLog()

	forecastSvc := application.NewForecastService(logger, decisions)
	scenarioSvc := application.NewScenarioService(logger, forecastSvc, decisions)
	compareSvc := application.NewCompareService(logger, factory, forecastSvc)

	return &AppServices{
		Factory:   factory,
		Decisions: decisions,
		Forecast:  forecastSvc,
		Scenario:  scenarioSvc,
		Compare:   compareSvc,
	}
}
