package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats is one row of generations.csv, recorded at selection.
type GenerationStats struct {
	RunID      string `csv:"run_id"`
	Generation int    `csv:"generation"`

	// Selection
	Cells            int     `csv:"cells"`
	Alive            int     `csv:"alive"`
	Survivors        int     `csv:"survivors"`
	SurvivorFraction float64 `csv:"survivor_fraction"`
	SurvivorTrend    float64 `csv:"survivor_trend"` // mean fraction over the trailing window
	Flips            int     `csv:"flips"`

	// Movement summed over the generation's steps
	Moved    int `csv:"moved"`
	Blocked  int `csv:"blocked"`
	Poisoned int `csv:"poisoned"`

	// Genome distribution over the placed cells that selection saw
	WeightMean   float64 `csv:"weight_mean"`
	WeightStd    float64 `csv:"weight_std"`
	WeightP10    float64 `csv:"weight_p10"`
	WeightP50    float64 `csv:"weight_p50"`
	WeightP90    float64 `csv:"weight_p90"`
	DistinctHues int     `csv:"distinct_hues"`
	MovingShare  float64 `csv:"moving_share"` // share of cells whose inputs reach an output
}

// WeightSummary holds distribution statistics of decoded weights.
type WeightSummary struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// SummarizeWeights computes mean, standard deviation and empirical
// percentiles. values is not modified. Empty input gives the zero summary.
func SummarizeWeights(values []float64) WeightSummary {
	if len(values) == 0 {
		return WeightSummary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var s WeightSummary
	if len(sorted) == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("survivors", s.Survivors),
		slog.Float64("survivor_fraction", s.SurvivorFraction),
		slog.Float64("survivor_trend", s.SurvivorTrend),
		slog.Int("alive", s.Alive),
		slog.Int("moved", s.Moved),
		slog.Int("blocked", s.Blocked),
		slog.Int("poisoned", s.Poisoned),
		slog.Int("flips", s.Flips),
		slog.Float64("weight_mean", s.WeightMean),
		slog.Float64("weight_std", s.WeightStd),
		slog.Int("distinct_hues", s.DistinctHues),
		slog.Float64("moving_share", s.MovingShare),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("stats", "run_id", s.RunID, "stats", s)
}
