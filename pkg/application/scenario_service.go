package application

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
	"github.com/felixgeelhaar/sprintcast/pkg/domain/scenario"
)

// ScenarioService runs what-if forecasts. A baseline forecast is always
// computed from the unmodified metrics; when a scenario is supplied an
// adjusted forecast is computed alongside it, with the scenario's
// compound factor evaluated for every simulated sprint.
type ScenarioService struct {
	logger    zerolog.Logger
	forecast  *ForecastService
	decisions *forecasting.DecisionLog
}

// NewScenarioService creates a scenario service.
func NewScenarioService(logger zerolog.Logger, forecast *ForecastService, decisions *forecasting.DecisionLog) *ScenarioService {
	return &ScenarioService{
		logger:    logger.With().Str("service", "scenario").Logger(),
		forecast:  forecast,
		decisions: decisions,
	}
}

// Apply returns the baseline forecast and, when a non-empty scenario is
// supplied, the adjusted forecast. The adjusted result is nil when no
// scenario applies. baseTeamSize is the current effective headcount
// that team changes are measured against; values <= 0 default to one
// unit.
func (s *ScenarioService) Apply(model forecasting.Model, remainingWork float64, metrics forecasting.VelocityMetrics, sc *scenario.Scenario, cfg forecasting.Config, baseTeamSize float64) (baseline, adjusted *forecasting.ForecastResult, err error) {
	baseline, err = s.forecast.Generate(model, remainingWork, metrics, cfg)
	if err != nil {
		return nil, nil, err
	}
	if sc.IsEmpty() {
		return baseline, nil, nil
	}

	if errs := sc.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("invalid scenario %q: %s", sc.Name, strings.Join(errs, "; "))
	}

	simulator, ok := model.(forecasting.FactorForecaster)
	if !ok {
		return nil, nil, fmt.Errorf("model %s does not support scenario adjustments", model.Type())
	}

	if baseTeamSize <= 0 && len(sc.TeamChanges) > 0 {
		if s.decisions != nil {
			s.decisions.Record("team_size", "1", forecasting.DecisionSourceDefault,
				"no base team size supplied; team changes interpreted as fractions of current capacity")
		}
	}

	s.logger.Info().
		Str("scenario", sc.Name).
		Int("adjustments", len(sc.Adjustments)).
		Int("team_changes", len(sc.TeamChanges)).
		Msg("applying velocity scenario")

	adjusted, err = simulator.ForecastWithFactor(remainingWork, metrics, cfg, sc.SprintFactor(baseTeamSize))
	if err != nil {
		return nil, nil, fmt.Errorf("scenario forecast: %w", err)
	}

	s.logger.Info().
		Str("scenario", sc.Name).
		Float64("baseline_sprints", baseline.ExpectedSprints).
		Float64("adjusted_sprints", adjusted.ExpectedSprints).
		Float64("delta_sprints", adjusted.ExpectedSprints-baseline.ExpectedSprints).
		Msg("scenario applied")
	return baseline, adjusted, nil
}
