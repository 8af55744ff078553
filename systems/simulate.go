package systems

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/neural"
)

// StepStats counts what happened during one simulate tick.
type StepStats struct {
	Moved    int // cells placed away from their origin
	Blocked  int // cells whose move was cancelled by an occupied destination
	Poisoned int // cells removed by the poison check
}

// LogValue implements slog.LogValuer.
func (s StepStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("moved", s.Moved),
		slog.Int("blocked", s.Blocked),
		slog.Int("poisoned", s.Poisoned),
	)
}

// Simulate advances cur by one tick at the given step and returns the next
// population. cur is read only; the result has its own cells and grid.
//
// Order of work:
//  1. next buffer: genomes carried forward, zeroed neurons, empty grid
//  2. inputs (bias, position, time) written into a copy of each placed cell's current vector
//  3. every gene adds src*weight into the next vector's dst
//  4. next vectors clamped to [-1, 1]
//  5. placed cells resolved in row-major order; an output of exactly +1/-1 moves one position
//  6. cells landing on poison die with probability 1/PoisonDeathRarity
//  7. survivors are written to the next grid
func Simulate(cur components.Population, step int, env Env, rng *rand.Rand) (components.Population, StepStats) {
	var stats StepStats
	n := len(cur.Cells)
	width, height := cur.Grid.Width, cur.Grid.Height

	next := components.Population{
		Cells: make([]components.Cell, n),
		Grid:  components.NewGrid(width, height),
	}
	// Genomes are immutable within a generation, so sharing them is safe.
	for i := range cur.Cells {
		next.Cells[i].Genome = cur.Cells[i].Genome
	}

	inputs := make([]neural.Activations, n)
	for i := range cur.Cells {
		inputs[i] = cur.Cells[i].Neurons
	}
	timeInput := neural.Normalize(step, env.Steps)
	cur.Grid.Scan(func(row, col int, idx int32) {
		in := &inputs[idx]
		in[neural.InputBias] = 1
		in[neural.InputPosX] = neural.Normalize(col, width)
		in[neural.InputPosY] = neural.Normalize(row, height)
		in[neural.InputTime] = timeInput
	})

	for i := range next.Cells {
		out := &next.Cells[i].Neurons
		cur.Cells[i].Genome.Propagate(&inputs[i], out, env.Amplitude)
		out.Clamp()
	}

	cur.Grid.Scan(func(row, col int, idx int32) {
		out := &next.Cells[idx].Neurons
		dx := moveDelta(out[neural.OutputMoveX])
		dy := moveDelta(out[neural.OutputMoveY])

		if row+dy < 0 || row+dy >= height {
			dy = 0
		}
		if col+dx < 0 || col+dx >= width {
			dx = 0
		}

		if dx != 0 || dy != 0 {
			if !cur.Grid.IsEmpty(row+dy, col+dx) || !next.Grid.IsEmpty(row+dy, col+dx) {
				dx, dy = 0, 0
				stats.Blocked++
			}
		}

		destRow, destCol := row+dy, col+dx
		if env.Zones.IsPoison(destRow, destCol, step) && rng.Intn(env.PoisonDeathRarity) == 0 {
			stats.Poisoned++
			return
		}

		next.Grid.Set(destRow, destCol, idx)
		if dx != 0 || dy != 0 {
			stats.Moved++
		}
	})

	return next, stats
}

// moveDelta decodes a clamped output. Only the exact bounds move; anything
// strictly between them stays put.
func moveDelta(v float32) int {
	switch v {
	case 1:
		return 1
	case -1:
		return -1
	default:
		return 0
	}
}
