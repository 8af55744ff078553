package systems

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/neural"
)

// ErrNoSurvivors matches every *NoSurvivorsError.
var ErrNoSurvivors = errors.New("no survivors")

// NoSurvivorsError reports a selection where no cell stood on food.
// There is nothing to repopulate from, so the run cannot continue.
type NoSurvivorsError struct {
	Population int // cells alive on the grid at selection time
	Cells      int // population size
}

func (e *NoSurvivorsError) Error() string {
	return fmt.Sprintf("no survivors: 0 of %d placed cells (population %d) on food", e.Population, e.Cells)
}

// Is makes errors.Is(err, ErrNoSurvivors) true.
func (e *NoSurvivorsError) Is(target error) bool {
	return target == ErrNoSurvivors
}

// SelectionStats describes one selection event.
type SelectionStats struct {
	Survivors int
	Cells     int
	Alive     int // placed cells at selection time, survivors or not
	Flips     int // mutated bits across the new population
}

// Fraction returns the share of the population that survived.
func (s SelectionStats) Fraction() float64 {
	if s.Cells == 0 {
		return 0
	}
	return float64(s.Survivors) / float64(s.Cells)
}

// Percent returns the survivor share as a truncated percentage.
func (s SelectionStats) Percent() int {
	if s.Cells == 0 {
		return 0
	}
	return s.Survivors * 100 / s.Cells
}

// LogValue implements slog.LogValuer.
func (s SelectionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("survivors", s.Survivors),
		slog.Int("cells", s.Cells),
		slog.Int("percent", s.Percent()),
		slog.Int("alive", s.Alive),
		slog.Int("flips", s.Flips),
	)
}

// Select builds the next generation from cur. Genomes of cells standing on
// food are copied in row-major order, the population is padded back to full
// size by sampling survivors with replacement, and every gene of every cell
// is mutated. The result has an empty grid and must be populated before it
// is simulated. cur is not modified; on error the returned population is zero.
func Select(cur components.Population, env Env, rng *rand.Rand) (components.Population, SelectionStats, error) {
	stats := SelectionStats{Cells: len(cur.Cells)}

	var survivors []neural.Genome
	for _, occ := range cur.Grid.Occupied() {
		stats.Alive++
		if env.Zones.IsFood(occ.Row, occ.Col) {
			survivors = append(survivors, cur.Cells[occ.Index].Genome.Clone())
		}
	}
	stats.Survivors = len(survivors)

	if len(survivors) == 0 {
		return components.Population{}, stats, &NoSurvivorsError{Population: stats.Alive, Cells: stats.Cells}
	}

	cells := make([]components.Cell, len(cur.Cells))
	for i := range cells {
		if i < len(survivors) {
			cells[i].Genome = survivors[i]
			continue
		}
		cells[i].Genome = survivors[rng.Intn(len(survivors))].Clone()
	}

	for i := range cells {
		stats.Flips += neural.MutateGenome(cells[i].Genome, rng, env.MutationRarity)
	}

	next := components.Population{
		Cells: cells,
		Grid:  components.NewGrid(cur.Grid.Width, cur.Grid.Height),
	}
	return next, stats, nil
}
