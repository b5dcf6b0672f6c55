package forecasting

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// stubModel is a minimal Model for registry tests.
type stubModel struct{ t ModelType }

func (s *stubModel) Type() ModelType { return s.t }
func (s *stubModel) Info() ModelInfo { return ModelInfo{Type: s.t, DisplayName: string(s.t)} }
func (s *stubModel) ValidateInputs(remainingWork float64, metrics VelocityMetrics) []string {
	return ValidateForecastInputs(remainingWork, metrics)
}
func (s *stubModel) Forecast(remainingWork float64, metrics VelocityMetrics, cfg Config) (*ForecastResult, error) {
	return &ForecastResult{ModelType: s.t, ExpectedSprints: remainingWork / metrics.Average}, nil
}

func TestFactory_CreateUnknownTypeFails(t *testing.T) {
	factory := NewDefaultFactory(zerolog.Nop())

	_, err := factory.Create("bayesian")
	if err == nil {
		t.Fatal("Create() with unregistered type should fail")
	}
	if !errors.Is(err, ErrUnknownModel) {
		t.Errorf("error = %v, want ErrUnknownModel", err)
	}
	if !strings.Contains(err.Error(), "bayesian") {
		t.Errorf("error %q should name the unknown type", err)
	}
}

func TestFactory_BuiltInsAreRegistered(t *testing.T) {
	factory := NewDefaultFactory(zerolog.Nop())

	for _, tt := range []ModelType{ModelTypeMonteCarlo, ModelTypePERT} {
		model, err := factory.Create(tt)
		if err != nil {
			t.Fatalf("Create(%s) error = %v", tt, err)
		}
		if model.Type() != tt {
			t.Errorf("Create(%s).Type() = %v", tt, model.Type())
		}
		if _, err := factory.DefaultConfig(tt); err != nil {
			t.Errorf("DefaultConfig(%s) error = %v", tt, err)
		}
	}
}

func TestFactory_RegisterExtendsTheRegistry(t *testing.T) {
	factory := NewDefaultFactory(zerolog.Nop())

	custom := ModelType("linear_regression")
	err := factory.Register(custom,
		func(l zerolog.Logger) Model { return &stubModel{t: custom} },
		func() Config { return NewConfiguration() },
		ModelInfo{Type: custom, DisplayName: "Linear Regression"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	model, err := factory.Create(custom)
	if err != nil {
		t.Fatalf("Create() after Register error = %v", err)
	}
	if model.Type() != custom {
		t.Errorf("Type() = %v, want %v", model.Type(), custom)
	}
}

func TestFactory_RegisterDuplicateFails(t *testing.T) {
	factory := NewDefaultFactory(zerolog.Nop())

	err := factory.Register(ModelTypeMonteCarlo,
		func(l zerolog.Logger) Model { return &stubModel{t: ModelTypeMonteCarlo} },
		func() Config { return NewConfiguration() },
		ModelInfo{})
	if !errors.Is(err, ErrModelRegistered) {
		t.Errorf("Register() duplicate = %v, want ErrModelRegistered", err)
	}
}

func TestFactory_RegisterRejectsNilConstructors(t *testing.T) {
	factory := NewFactory(zerolog.Nop())

	if err := factory.Register("x", nil, func() Config { return NewConfiguration() }, ModelInfo{}); err == nil {
		t.Error("Register() with nil constructor should fail")
	}
	if err := factory.Register("x", func(l zerolog.Logger) Model { return &stubModel{} }, nil, ModelInfo{}); err == nil {
		t.Error("Register() with nil default config should fail")
	}
}

func TestFactory_AvailableModelsAreOrdered(t *testing.T) {
	factory := NewDefaultFactory(zerolog.Nop())

	infos := factory.AvailableModels()
	if len(infos) != 2 {
		t.Fatalf("AvailableModels() returned %d entries, want 2", len(infos))
	}
	if infos[0].Type != ModelTypeMonteCarlo || infos[1].Type != ModelTypePERT {
		t.Errorf("AvailableModels() order = %v, %v", infos[0].Type, infos[1].Type)
	}
}
