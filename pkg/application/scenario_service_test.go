package application

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
	"github.com/felixgeelhaar/sprintcast/pkg/domain/scenario"
)

func newScenarioService() *ScenarioService {
	forecastSvc := NewForecastService(zerolog.Nop(), nil)
	return NewScenarioService(zerolog.Nop(), forecastSvc, forecasting.NewDecisionLog())
}

func TestScenarioService_NoScenarioReturnsBaselineOnly(t *testing.T) {
	svc := newScenarioService()
	model := forecasting.NewMonteCarloModel(zerolog.Nop())

	baseline, adjusted, err := svc.Apply(model, 100, steadyMetrics(20), nil, exactConfig(), 0)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if baseline == nil || baseline.ExpectedSprints != 5.0 {
		t.Errorf("baseline = %+v, want 5.0 expected sprints", baseline)
	}
	if adjusted != nil {
		t.Error("adjusted should be nil without a scenario")
	}
}

func TestScenarioService_PermanentSlowdownDoublesCompletion(t *testing.T) {
	svc := newScenarioService()
	model := forecasting.NewMonteCarloModel(zerolog.Nop())

	sc := &scenario.Scenario{
		Name:        "half speed",
		Adjustments: []scenario.VelocityAdjustment{{SprintStart: 1, Factor: 0.5}},
	}

	baseline, adjusted, err := svc.Apply(model, 200, steadyMetrics(20), sc, exactConfig(), 0)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if baseline.ExpectedSprints != 10 {
		t.Fatalf("baseline ExpectedSprints = %v, want 10", baseline.ExpectedSprints)
	}
	if adjusted.ExpectedSprints != 20 {
		t.Errorf("adjusted ExpectedSprints = %v, want 20", adjusted.ExpectedSprints)
	}
}

func TestScenarioService_TemporarySlowdownAddsTwoSprints(t *testing.T) {
	svc := newScenarioService()
	model := forecasting.NewMonteCarloModel(zerolog.Nop())

	sc := &scenario.Scenario{
		Name:        "rough start",
		Adjustments: []scenario.VelocityAdjustment{{SprintStart: 1, SprintEnd: 3, Factor: 0.5}},
	}

	baseline, adjusted, err := svc.Apply(model, 200, steadyMetrics(20), sc, exactConfig(), 0)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	baseP50, _ := baseline.IntervalAt(0.5)
	adjP50, _ := adjusted.IntervalAt(0.5)
	if delta := adjP50.Predicted - baseP50.Predicted; delta != 2 {
		t.Errorf("p50 delta = %v, want exactly 2 sprints", delta)
	}
}

func TestScenarioService_RampUpCostsTimeVersusStepChange(t *testing.T) {
	svc := newScenarioService()
	model := forecasting.NewMonteCarloModel(zerolog.Nop())
	metrics := steadyMetrics(20)

	step := &scenario.Scenario{
		TeamChanges: []scenario.TeamChange{{Sprint: 1, Change: 5, Curve: scenario.CurveStep}},
	}
	ramp := &scenario.Scenario{
		TeamChanges: []scenario.TeamChange{{Sprint: 1, Change: 5, RampUpSprints: 4, Curve: scenario.CurveLinear}},
	}

	baseline, stepResult, err := svc.Apply(model, 200, metrics, step, exactConfig(), 5)
	if err != nil {
		t.Fatalf("Apply(step) error = %v", err)
	}
	_, rampResult, err := svc.Apply(model, 200, metrics, ramp, exactConfig(), 5)
	if err != nil {
		t.Fatalf("Apply(ramp) error = %v", err)
	}

	// Ramp-up always costs time relative to an instantaneous addition,
	// but still beats the unchanged baseline.
	if !(stepResult.ExpectedSprints < rampResult.ExpectedSprints) {
		t.Errorf("step (%v) should complete before ramp (%v)",
			stepResult.ExpectedSprints, rampResult.ExpectedSprints)
	}
	if !(rampResult.ExpectedSprints < baseline.ExpectedSprints) {
		t.Errorf("ramp (%v) should complete before baseline (%v)",
			rampResult.ExpectedSprints, baseline.ExpectedSprints)
	}
}

func TestScenarioService_InvalidScenarioFails(t *testing.T) {
	svc := newScenarioService()
	model := forecasting.NewMonteCarloModel(zerolog.Nop())

	sc := &scenario.Scenario{
		Name:        "broken",
		Adjustments: []scenario.VelocityAdjustment{{SprintStart: 0, Factor: -1}},
	}

	_, _, err := svc.Apply(model, 100, steadyMetrics(20), sc, exactConfig(), 0)
	if err == nil {
		t.Fatal("Apply() with invalid scenario should fail")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q should name the scenario", err)
	}
}

func TestScenarioService_ModelWithoutFactorSupportFails(t *testing.T) {
	svc := newScenarioService()
	model := forecasting.NewPERTModel(zerolog.Nop())

	sc := &scenario.Scenario{
		Adjustments: []scenario.VelocityAdjustment{{SprintStart: 1, Factor: 0.5}},
	}

	_, _, err := svc.Apply(model, 100, steadyMetrics(20), sc, forecasting.NewConfiguration(), 0)
	if err == nil {
		t.Fatal("Apply() should fail for models without per-sprint factor support")
	}
	if !strings.Contains(err.Error(), "does not support scenario") {
		t.Errorf("error %q should explain the missing capability", err)
	}
}
