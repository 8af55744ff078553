package components

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/petri/neural"
)

// Population is the full ordered set of cells plus the one grid they live on.
// Engines treat a Population as a value: they build a new one instead of
// editing the one they were given.
type Population struct {
	Cells []Cell
	Grid  Grid
}

// NewPopulation creates count cells with random genomes on an empty grid.
func NewPopulation(rng *rand.Rand, count, genes, width, height int) Population {
	cells := make([]Cell, count)
	for i := range cells {
		cells[i].Genome = neural.RandomGenome(rng, genes)
	}
	return Population{Cells: cells, Grid: NewGrid(width, height)}
}

// Clone returns a deep copy: genomes and grid storage are not shared.
func (p Population) Clone() Population {
	cells := make([]Cell, len(p.Cells))
	for i, c := range p.Cells {
		cells[i] = c.Clone()
	}
	return Population{Cells: cells, Grid: p.Grid.Clone()}
}

// Alive returns the number of placed cells.
func (p Population) Alive() int {
	return p.Grid.Count()
}

// Locate returns the position of cell idx, or false if it is unplaced.
func (p Population) Locate(idx int32) (Position, bool) {
	var pos Position
	found := false
	p.Grid.Scan(func(row, col int, occ int32) {
		if occ == idx && !found {
			pos = Position{Row: row, Col: col}
			found = true
		}
	})
	return pos, found
}

// Validate checks the placement invariant: every occupant index is in range
// and appears at most once. If complete is set, every cell must be placed.
func (p Population) Validate(complete bool) error {
	seen := make([]bool, len(p.Cells))
	var err error
	p.Grid.Scan(func(row, col int, idx int32) {
		if err != nil {
			return
		}
		if idx < 0 || int(idx) >= len(p.Cells) {
			err = fmt.Errorf("grid (%d, %d): index %d out of range [0, %d)", row, col, idx, len(p.Cells))
			return
		}
		if seen[idx] {
			err = fmt.Errorf("grid (%d, %d): cell %d placed twice", row, col, idx)
			return
		}
		seen[idx] = true
	})
	if err != nil {
		return err
	}
	if complete {
		for i, ok := range seen {
			if !ok {
				return fmt.Errorf("cell %d is not placed", i)
			}
		}
	}
	return nil
}
