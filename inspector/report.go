// Package inspector describes a single cell for display: its decoded genome,
// its current neuron values and how its genes wire inputs to movement.
package inspector

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/pthm-cable/petri/neural"
)

// GeneInfo is one decoded gene.
type GeneInfo struct {
	Gene   neural.Gene
	Src    neural.NeuronID
	Dst    neural.NeuronID
	Weight float32
	Live   bool
}

// Report describes one cell at the moment it was inspected.
type Report struct {
	Index   int32
	Row     int
	Col     int
	Hue     uint8
	Genes   []GeneInfo
	Neurons neural.Activations
	Wiring  Wiring
}

// Inspect decodes a cell's genome with the run's weight amplitude.
func Inspect(idx int32, row, col int, genome neural.Genome, neurons neural.Activations, amplitude float32) Report {
	r := Report{
		Index:   idx,
		Row:     row,
		Col:     col,
		Hue:     genome.Hue(),
		Genes:   make([]GeneInfo, len(genome)),
		Neurons: neurons,
		Wiring:  AnalyzeWiring(genome),
	}
	for i, g := range genome {
		src, dst, w := g.Decode(amplitude)
		r.Genes[i] = GeneInfo{Gene: g, Src: src, Dst: dst, Weight: w, Live: Live(g)}
	}
	return r
}

// LiveGenes counts genes that can affect behavior.
func (r Report) LiveGenes() int {
	n := 0
	for _, g := range r.Genes {
		if g.Live {
			n++
		}
	}
	return n
}

// WriteTo prints the neuron legend followed by one line per gene,
// "src -> dst weight".
func (r Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	fmt.Fprintf(cw, "cell %d at %d %d hue %d\n", r.Index, r.Row, r.Col, r.Hue)
	for i, d := range neural.NeuronDescriptors() {
		fmt.Fprintf(cw, "%d %s\n", i, d.ID)
	}
	for _, g := range r.Genes {
		fmt.Fprintf(cw, "%02d -> %02d %.2f\n", g.Src, g.Dst, g.Weight)
	}
	fmt.Fprintln(cw)

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, cw.w.Flush()
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("cell", int(r.Index)),
		slog.Int("row", r.Row),
		slog.Int("col", r.Col),
		slog.Int("hue", int(r.Hue)),
		slog.Int("genes", len(r.Genes)),
		slog.Int("live_genes", r.LiveGenes()),
		slog.Bool("can_move", r.Wiring.CanMove()),
		slog.Bool("recurrent", r.Wiring.Recurrent),
	)
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
