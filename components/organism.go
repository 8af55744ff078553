package components

import "github.com/pthm-cable/petri/neural"

// Cell is one organism: a genome fixed for the generation plus the neuron
// vector recomputed every simulation step.
type Cell struct {
	Genome  neural.Genome
	Neurons neural.Activations
}

// Clone returns a cell that owns a copy of the genome.
func (c Cell) Clone() Cell {
	return Cell{Genome: c.Genome.Clone(), Neurons: c.Neurons}
}
