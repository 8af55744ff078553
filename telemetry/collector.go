package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/inspector"
	"github.com/pthm-cable/petri/systems"
)

// DefaultTrendWindow is the number of generations averaged into SurvivorTrend.
const DefaultTrendWindow = 10

// Collector turns selection events into GenerationStats and keeps the history.
type Collector struct {
	runID       string
	amplitude   float32
	trendWindow int

	history []GenerationStats
}

// NewCollector creates a collector. amplitude decodes gene weights.
// A trendWindow below 1 uses DefaultTrendWindow.
func NewCollector(runID string, amplitude float32, trendWindow int) *Collector {
	if trendWindow < 1 {
		trendWindow = DefaultTrendWindow
	}
	return &Collector{
		runID:       runID,
		amplitude:   amplitude,
		trendWindow: trendWindow,
	}
}

// Record computes the stats for one selection. pop is the population
// selection read from; only placed cells contribute to the genome columns.
func (c *Collector) Record(generation int, sel systems.SelectionStats, steps systems.StepStats, pop components.Population) GenerationStats {
	s := GenerationStats{
		RunID:            c.runID,
		Generation:       generation,
		Cells:            sel.Cells,
		Alive:            sel.Alive,
		Survivors:        sel.Survivors,
		SurvivorFraction: sel.Fraction(),
		Flips:            sel.Flips,
		Moved:            steps.Moved,
		Blocked:          steps.Blocked,
		Poisoned:         steps.Poisoned,
	}

	var weights []float64
	hues := make(map[uint8]struct{})
	placed, moving := 0, 0
	pop.Grid.Scan(func(_, _ int, idx int32) {
		genome := pop.Cells[idx].Genome
		for _, g := range genome {
			_, _, w := g.Decode(c.amplitude)
			weights = append(weights, float64(w))
		}
		hues[genome.Hue()] = struct{}{}
		if inspector.AnalyzeWiring(genome).CanMove() {
			moving++
		}
		placed++
	})

	ws := SummarizeWeights(weights)
	s.WeightMean, s.WeightStd = ws.Mean, ws.Std
	s.WeightP10, s.WeightP50, s.WeightP90 = ws.P10, ws.P50, ws.P90
	s.DistinctHues = len(hues)
	if placed > 0 {
		s.MovingShare = float64(moving) / float64(placed)
	}

	c.history = append(c.history, s)
	s.SurvivorTrend = stat.Mean(c.trailingFractions(), nil)
	c.history[len(c.history)-1] = s
	return s
}

// trailingFractions returns survivor fractions of the last trendWindow records.
func (c *Collector) trailingFractions() []float64 {
	start := max(0, len(c.history)-c.trendWindow)
	out := make([]float64, 0, len(c.history)-start)
	for _, h := range c.history[start:] {
		out = append(out, h.SurvivorFraction)
	}
	return out
}

// History returns every record so far, oldest first.
func (c *Collector) History() []GenerationStats {
	return c.history
}

// Last returns the most recent record.
func (c *Collector) Last() (GenerationStats, bool) {
	if len(c.history) == 0 {
		return GenerationStats{}, false
	}
	return c.history[len(c.history)-1], true
}

// RunID returns the identifier stamped on every record.
func (c *Collector) RunID() string {
	return c.runID
}
