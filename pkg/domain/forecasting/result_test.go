package forecasting

import (
	"math"
	"testing"
)

func TestPredictionInterval_RangeWidth(t *testing.T) {
	pi := PredictionInterval{ConfidenceLevel: 0.85, Lower: 4, Predicted: 6, Upper: 9}
	if got, want := pi.RangeWidth(), 5.0; got != want {
		t.Errorf("RangeWidth() = %v, want %v", got, want)
	}
}

func TestForecastResult_IntervalAt(t *testing.T) {
	result := &ForecastResult{
		PredictionIntervals: []PredictionInterval{
			{ConfidenceLevel: 0.5, Predicted: 5},
			{ConfidenceLevel: 0.85, Predicted: 7},
		},
	}

	pi, ok := result.IntervalAt(0.85)
	if !ok {
		t.Fatal("IntervalAt(0.85) should find the interval")
	}
	if pi.Predicted != 7 {
		t.Errorf("IntervalAt(0.85).Predicted = %v, want 7", pi.Predicted)
	}

	if _, ok := result.IntervalAt(0.99); ok {
		t.Error("IntervalAt(0.99) should not find an interval")
	}
}

func TestForecastResult_CompletionProbabilityBy(t *testing.T) {
	result := &ForecastResult{
		Distribution: map[int]float64{4: 0.2, 5: 0.5, 6: 0.2, 7: 0.1},
	}

	tests := []struct {
		sprints int
		want    float64
	}{
		{3, 0},
		{4, 0.2},
		{5, 0.7},
		{7, 1.0},
		{100, 1.0},
	}

	for _, tt := range tests {
		if got := result.CompletionProbabilityBy(tt.sprints); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CompletionProbabilityBy(%d) = %v, want %v", tt.sprints, got, tt.want)
		}
	}
}
