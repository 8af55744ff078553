package telemetry

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SurvivorPlot draws survivor fraction and its trailing mean per generation
// and saves the image to path. The format follows the file extension.
func SurvivorPlot(history []GenerationStats, path string) error {
	p := plot.New()
	p.Title.Text = "Survivors per generation"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Survivor fraction"
	p.Y.Min = 0
	p.Y.Max = 1

	fraction := make(plotter.XYs, len(history))
	trend := make(plotter.XYs, len(history))
	for i, h := range history {
		fraction[i].X = float64(h.Generation)
		fraction[i].Y = h.SurvivorFraction
		trend[i].X = float64(h.Generation)
		trend[i].Y = h.SurvivorTrend
	}

	fractionLine, err := plotter.NewLine(fraction)
	if err != nil {
		return fmt.Errorf("survivor line: %w", err)
	}
	trendLine, err := plotter.NewLine(trend)
	if err != nil {
		return fmt.Errorf("trend line: %w", err)
	}
	trendLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), fractionLine, trendLine)
	p.Legend.Add("survivors", fractionLine)
	p.Legend.Add("trend", trendLine)
	p.Legend.Top = true

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
