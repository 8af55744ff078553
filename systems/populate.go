package systems

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/petri/components"
)

// MaxPlacementAttempts caps the random draws spent placing one cell.
const MaxPlacementAttempts = 1 << 16

// ErrPlacementExhausted is returned when cells cannot be placed on the grid.
var ErrPlacementExhausted = errors.New("placement exhausted")

// PlacementStats describes one Populate call.
type PlacementStats struct {
	Attempts    int // total position draws
	MaxAttempts int // most draws spent on a single cell
}

// Populate places every cell of cur on its own random empty position of a
// fresh grid and resets every neuron vector. Positions are drawn uniformly
// until an empty one is found. cur is not modified; genomes are carried over.
func Populate(cur components.Population, rng *rand.Rand) (components.Population, PlacementStats, error) {
	var stats PlacementStats
	width, height := cur.Grid.Width, cur.Grid.Height
	n := len(cur.Cells)

	if n >= width*height {
		return components.Population{}, stats,
			fmt.Errorf("%w: %d cells on a %dx%d grid", ErrPlacementExhausted, n, width, height)
	}

	next := components.Population{
		Cells: make([]components.Cell, n),
		Grid:  components.NewGrid(width, height),
	}

	for i := range cur.Cells {
		next.Cells[i].Genome = cur.Cells[i].Genome

		placed := false
		for attempt := 1; attempt <= MaxPlacementAttempts; attempt++ {
			row := rng.Intn(height)
			col := rng.Intn(width)
			stats.Attempts++
			if next.Grid.IsEmpty(row, col) {
				next.Grid.Set(row, col, int32(i))
				stats.MaxAttempts = max(stats.MaxAttempts, attempt)
				placed = true
				break
			}
		}
		if !placed {
			return components.Population{}, stats,
				fmt.Errorf("%w: cell %d after %d draws", ErrPlacementExhausted, i, MaxPlacementAttempts)
		}
	}

	return next, stats, nil
}
