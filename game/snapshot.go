package game

import (
	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/neural"
	"github.com/pthm-cable/petri/systems"
)

// Snapshot is a read-only view of the controller between advances.
// The engines never write to a population after building it, so a snapshot
// stays valid after the controller moves on.
type Snapshot struct {
	State         State
	Step          int
	Generation    int
	Speed         int
	LastSelection systems.SelectionStats

	pop components.Population
	env systems.Env
}

// Width returns the field width in cells.
func (s Snapshot) Width() int { return s.pop.Grid.Width }

// Height returns the field height in cells.
func (s Snapshot) Height() int { return s.pop.Grid.Height }

// Cells returns the population size.
func (s Snapshot) Cells() int { return len(s.pop.Cells) }

// Alive returns the number of placed cells.
func (s Snapshot) Alive() int { return s.pop.Alive() }

// Zones returns the zone predicates the engines use.
func (s Snapshot) Zones() systems.Zones { return s.env.Zones }

// Amplitude returns the weight amplitude for decoding genes.
func (s Snapshot) Amplitude() float32 { return s.env.Amplitude }

// Occupant returns the cell index at (row, col), if any.
func (s Snapshot) Occupant(row, col int) (int32, bool) {
	if !s.pop.Grid.InBounds(row, col) {
		return components.Empty, false
	}
	idx := s.pop.Grid.At(row, col)
	return idx, idx != components.Empty
}

// Locate returns where cell idx is placed.
func (s Snapshot) Locate(idx int32) (components.Position, bool) {
	return s.pop.Locate(idx)
}

// Scan calls fn for every occupied position in row-major order.
func (s Snapshot) Scan(fn func(row, col int, idx int32)) {
	s.pop.Grid.Scan(fn)
}

// Genome returns a copy of cell idx's genome.
func (s Snapshot) Genome(idx int32) neural.Genome {
	return s.pop.Cells[idx].Genome.Clone()
}

// Hue returns the color hue of cell idx's genome.
func (s Snapshot) Hue(idx int32) uint8 {
	return s.pop.Cells[idx].Genome.Hue()
}

// Neurons returns cell idx's neuron vector.
func (s Snapshot) Neurons(idx int32) neural.Activations {
	return s.pop.Cells[idx].Neurons
}
