package analytics

import (
	"math"
	"testing"

	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
)

func TestComputeMetrics(t *testing.T) {
	samples := []float64{18, 22, 20, 19, 21}

	metrics, err := ComputeMetrics(samples)
	if err != nil {
		t.Fatalf("ComputeMetrics() error = %v", err)
	}

	if math.Abs(metrics.Average-20) > 1e-9 {
		t.Errorf("Average = %v, want 20", metrics.Average)
	}
	if metrics.Median != 20 {
		t.Errorf("Median = %v, want 20", metrics.Median)
	}
	if metrics.Min != 18 || metrics.Max != 22 {
		t.Errorf("Min/Max = %v/%v, want 18/22", metrics.Min, metrics.Max)
	}
	if math.Abs(metrics.StdDev-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("StdDev = %v, want %v", metrics.StdDev, math.Sqrt(2.5))
	}
	if math.Abs(metrics.Trend-0.3) > 1e-9 {
		t.Errorf("Trend = %v, want 0.3", metrics.Trend)
	}
}

func TestComputeMetrics_SingleSample(t *testing.T) {
	metrics, err := ComputeMetrics([]float64{20})
	if err != nil {
		t.Fatalf("ComputeMetrics() error = %v", err)
	}
	if metrics.Average != 20 || metrics.StdDev != 0 || metrics.Trend != 0 {
		t.Errorf("single sample metrics = %+v", metrics)
	}
}

func TestComputeMetrics_Errors(t *testing.T) {
	if _, err := ComputeMetrics(nil); err == nil {
		t.Error("ComputeMetrics(nil) should fail")
	}
	if _, err := ComputeMetrics([]float64{10, -5}); err == nil {
		t.Error("ComputeMetrics() with a negative sample should fail")
	}
}

func TestComputeMetrics_TrendDirectionOfRawSamples(t *testing.T) {
	increasing, err := ComputeMetrics([]float64{10, 12, 14, 16, 18})
	if err != nil {
		t.Fatalf("ComputeMetrics() error = %v", err)
	}
	if increasing.Trend <= 0 {
		t.Errorf("Trend of increasing samples = %v, want > 0", increasing.Trend)
	}

	decreasing, err := ComputeMetrics([]float64{18, 16, 14, 12, 10})
	if err != nil {
		t.Fatalf("ComputeMetrics() error = %v", err)
	}
	if decreasing.Trend >= 0 {
		t.Errorf("Trend of decreasing samples = %v, want < 0", decreasing.Trend)
	}
}

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name          string
		metrics       forecasting.VelocityMetrics
		wantDirection TrendDirection
		wantConsist   bool
	}{
		{
			name:          "stable and consistent",
			metrics:       forecasting.VelocityMetrics{Average: 20, StdDev: 2, Trend: 0.1},
			wantDirection: TrendStable,
			wantConsist:   true,
		},
		{
			name:          "accelerating",
			metrics:       forecasting.VelocityMetrics{Average: 20, StdDev: 2, Trend: 2},
			wantDirection: TrendAccelerating,
			wantConsist:   true,
		},
		{
			name:          "decelerating and erratic",
			metrics:       forecasting.VelocityMetrics{Average: 20, StdDev: 8, Trend: -2},
			wantDirection: TrendDecelerating,
			wantConsist:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Diagnose(tt.metrics)
			if d.Direction != tt.wantDirection {
				t.Errorf("Direction = %v, want %v", d.Direction, tt.wantDirection)
			}
			if d.Consistent != tt.wantConsist {
				t.Errorf("Consistent = %v, want %v", d.Consistent, tt.wantConsist)
			}
		})
	}
}

func TestDiagnose_Predictability(t *testing.T) {
	d := Diagnose(forecasting.VelocityMetrics{Average: 20, StdDev: 5})
	if math.Abs(d.Predictability-0.75) > 1e-9 {
		t.Errorf("Predictability = %v, want 0.75", d.Predictability)
	}

	erratic := Diagnose(forecasting.VelocityMetrics{Average: 10, StdDev: 30})
	if erratic.Predictability != 0 {
		t.Errorf("Predictability = %v, want floor at 0", erratic.Predictability)
	}
}

func TestTrendDirection_Polarity(t *testing.T) {
	if !TrendAccelerating.IsPositive() || TrendAccelerating.IsNegative() {
		t.Error("accelerating should be positive only")
	}
	if !TrendDecelerating.IsNegative() || TrendDecelerating.IsPositive() {
		t.Error("decelerating should be negative only")
	}
	if TrendStable.IsPositive() || TrendStable.IsNegative() {
		t.Error("stable should be neither")
	}
}
