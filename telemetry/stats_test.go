package telemetry

import (
	"math"
	"testing"
)

func TestSummarizeWeights(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	s := SummarizeWeights(values)

	if math.Abs(s.Mean-5.5) > 1e-9 {
		t.Errorf("Mean = %v, want 5.5", s.Mean)
	}
	// sample standard deviation of 1..10
	if math.Abs(s.Std-3.02765) > 1e-4 {
		t.Errorf("Std = %v, want ~3.0277", s.Std)
	}
	if s.P10 != 1 || s.P50 != 5 || s.P90 != 9 {
		t.Errorf("percentiles = %v %v %v, want 1 5 9", s.P10, s.P50, s.P90)
	}
	if values[0] != 10 {
		t.Error("input was sorted in place")
	}
}

func TestSummarizeWeightsEdgeCases(t *testing.T) {
	if s := SummarizeWeights(nil); s != (WeightSummary{}) {
		t.Errorf("empty summary = %+v", s)
	}

	s := SummarizeWeights([]float64{-2.5})
	if s.Mean != -2.5 || s.Std != 0 || s.P50 != -2.5 {
		t.Errorf("single value summary = %+v", s)
	}
}
