package application

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
)

// CompareService runs the same inputs through several models. A single
// model's failure is logged and that model skipped; the comparison
// returns whatever succeeded.
type CompareService struct {
	logger   zerolog.Logger
	factory  *forecasting.Factory
	forecast *ForecastService
}

// NewCompareService creates a compare service.
func NewCompareService(logger zerolog.Logger, factory *forecasting.Factory, forecast *ForecastService) *CompareService {
	return &CompareService{
		logger:   logger.With().Str("service", "compare").Logger(),
		factory:  factory,
		forecast: forecast,
	}
}

// Compare forecasts the remaining work with each requested model type,
// using each model's default configuration. An empty type list means
// all registered models. Returns an error only when no model produced a
// result.
func (s *CompareService) Compare(remainingWork float64, metrics forecasting.VelocityMetrics, types []forecasting.ModelType) (map[forecasting.ModelType]*forecasting.ForecastResult, error) {
	if len(types) == 0 {
		types = s.factory.Types()
	}

	results := make(map[forecasting.ModelType]*forecasting.ForecastResult, len(types))
	for _, t := range types {
		model, err := s.factory.Create(t)
		if err != nil {
			s.logger.Warn().Err(err).Str("model", string(t)).Msg("skipping model: not registered")
			continue
		}
		cfg, err := s.factory.DefaultConfig(t)
		if err != nil {
			s.logger.Warn().Err(err).Str("model", string(t)).Msg("skipping model: no default configuration")
			continue
		}
		result, err := s.forecast.Generate(model, remainingWork, metrics, cfg)
		if err != nil {
			s.logger.Warn().Err(err).Str("model", string(t)).Msg("skipping model: forecast failed")
			continue
		}
		results[t] = result
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no forecasting model produced a result for the requested types %v", types)
	}
	return results, nil
}
