package forecasting

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Factory errors.
var (
	ErrUnknownModel    = errors.New("unknown forecasting model")
	ErrModelRegistered = errors.New("forecasting model already registered")
)

// ModelConstructor builds a model instance with the given logger.
type ModelConstructor func(logger zerolog.Logger) Model

// ConfigConstructor builds the default configuration for a model.
type ConfigConstructor func() Config

type registration struct {
	construct     ModelConstructor
	defaultConfig ConfigConstructor
	info          ModelInfo
}

// Factory is a runtime registry of forecasting models. New algorithms
// are added through Register without touching existing use cases.
type Factory struct {
	mu     sync.RWMutex
	models map[ModelType]registration
	logger zerolog.Logger
}

// NewFactory creates an empty factory.
func NewFactory(logger zerolog.Logger) *Factory {
	return &Factory{
		models: make(map[ModelType]registration),
		logger: logger,
	}
}

// NewDefaultFactory creates a factory with the built-in models
// registered.
func NewDefaultFactory(logger zerolog.Logger) *Factory {
	f := NewFactory(logger)
	mc := NewMonteCarloModel(logger)
	pert := NewPERTModel(logger)
	// Registration of built-ins cannot collide.
	_ = f.Register(ModelTypeMonteCarlo,
		func(l zerolog.Logger) Model { return NewMonteCarloModel(l) },
		func() Config { return NewMonteCarloConfiguration() },
		mc.Info())
	_ = f.Register(ModelTypePERT,
		func(l zerolog.Logger) Model { return NewPERTModel(l) },
		func() Config { return NewConfiguration() },
		pert.Info())
	return f
}

// Register adds a model to the registry. Registering an already-known
// type is an error.
func (f *Factory) Register(t ModelType, construct ModelConstructor, defaultConfig ConfigConstructor, info ModelInfo) error {
	if construct == nil {
		return fmt.Errorf("register %s: constructor must not be nil", t)
	}
	if defaultConfig == nil {
		return fmt.Errorf("register %s: default configuration must not be nil", t)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.models[t]; exists {
		return fmt.Errorf("%w: %s", ErrModelRegistered, t)
	}
	f.models[t] = registration{construct: construct, defaultConfig: defaultConfig, info: info}
	f.logger.Debug().Str("model", string(t)).Msg("forecasting model registered")
	return nil
}

// Create instantiates the model for the given type. An unregistered
// type is a loud, caller-visible error.
func (f *Factory) Create(t ModelType) (Model, error) {
	f.mu.RLock()
	reg, ok := f.models[t]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownModel, t, f.Types())
	}
	return reg.construct(f.logger), nil
}

// DefaultConfig returns a fresh default configuration for the given
// model type.
func (f *Factory) DefaultConfig(t ModelType) (Config, error) {
	f.mu.RLock()
	reg, ok := f.models[t]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, t)
	}
	return reg.defaultConfig(), nil
}

// Types returns the registered model types in stable order.
func (f *Factory) Types() []ModelType {
	f.mu.RLock()
	defer f.mu.RUnlock()
	types := make([]ModelType, 0, len(f.models))
	for t := range f.models {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// AvailableModels returns metadata for every registered model, ordered
// by type.
func (f *Factory) AvailableModels() []ModelInfo {
	types := f.Types()
	f.mu.RLock()
	defer f.mu.RUnlock()
	infos := make([]ModelInfo, 0, len(types))
	for _, t := range types {
		infos = append(infos, f.models[t].info)
	}
	return infos
}
