package inspector

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/pthm-cable/petri/neural"
)

// Wiring summarizes the signal paths a genome builds between neuron slots.
type Wiring struct {
	// Drivers lists, per output, the inputs with a path to it.
	Drivers map[neural.NeuronID][]neural.NeuronID

	// Recurrent is set when live genes form a cycle or a self loop.
	Recurrent bool

	// Order is a topological order of the slots. Nil when Recurrent.
	Order []neural.NeuronID

	// Edges counts distinct live connections, self loops included.
	Edges int
}

// AnalyzeWiring builds a directed graph of the live genes and reports
// reachability from inputs to outputs.
func AnalyzeWiring(genome neural.Genome) Wiring {
	g := simple.NewDirectedGraph()
	for id := 0; id < neural.NumNeurons; id++ {
		g.AddNode(simple.Node(id))
	}

	w := Wiring{Drivers: make(map[neural.NeuronID][]neural.NeuronID)}
	selfLoops := make(map[neural.NeuronID]bool)
	for _, gene := range genome {
		if !Live(gene) {
			continue
		}
		src, dst := gene.Source(), gene.Dest()
		if src == dst {
			// simple graphs reject self edges
			if !selfLoops[src] {
				selfLoops[src] = true
				w.Edges++
			}
			w.Recurrent = true
			continue
		}
		if g.HasEdgeFromTo(int64(src), int64(dst)) {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(src), simple.Node(dst)))
		w.Edges++
	}

	for _, out := range neural.OutputNeurons() {
		for _, in := range neural.InputNeurons() {
			if topo.PathExistsIn(g, simple.Node(in), simple.Node(out)) {
				w.Drivers[out] = append(w.Drivers[out], in)
			}
		}
	}

	sorted, err := topo.Sort(g)
	if err != nil {
		w.Recurrent = true
	}
	if !w.Recurrent {
		w.Order = make([]neural.NeuronID, len(sorted))
		for i, n := range sorted {
			w.Order[i] = neural.NeuronID(n.ID())
		}
	}
	return w
}

// Live reports whether a gene can affect behavior. Genes writing into an
// input slot are overwritten by input injection before they are read.
func Live(gene neural.Gene) bool {
	return !gene.Dest().IsInput()
}

// CanMove reports whether any input reaches a movement output.
func (w Wiring) CanMove() bool {
	for _, out := range neural.OutputNeurons() {
		if len(w.Drivers[out]) > 0 {
			return true
		}
	}
	return false
}

// Drives reports whether in has a path to out.
func (w Wiring) Drives(in, out neural.NeuronID) bool {
	return slices.Contains(w.Drivers[out], in)
}
