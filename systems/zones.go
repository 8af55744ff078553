// Package systems provides the engines that advance a population: placement,
// the per-step simulation, and selection with mutation.
package systems

import "github.com/pthm-cable/petri/config"

// Region is the part of the field a poison phase covers.
type Region uint8

const (
	RegionNone Region = iota
	RegionLeft        // col < width/2
	RegionRight       // col >= width/2
)

// Zones classifies grid positions as food or poison. The same value is used
// by the engines and by the renderer, so drawn zones match the rules.
type Zones struct {
	width    int
	foodCols int
	steps    int
	phases   []Region
}

// NewZones builds the zone predicates from configuration.
func NewZones(cfg *config.Config) Zones {
	phases := make([]Region, len(cfg.Zones.PoisonPhases))
	for i, name := range cfg.Zones.PoisonPhases {
		phases[i] = regionFromName(name)
	}
	return Zones{
		width:    cfg.World.Width,
		foodCols: cfg.Derived.FoodCols,
		steps:    cfg.Generation.Steps,
		phases:   phases,
	}
}

func regionFromName(name string) Region {
	switch name {
	case config.PhaseLeft:
		return RegionLeft
	case config.PhaseRight:
		return RegionRight
	default:
		return RegionNone
	}
}

// IsFood reports whether a cell at (row, col) survives selection.
func (z Zones) IsFood(row, col int) bool {
	return col < z.foodCols
}

// IsPoison reports whether (row, col) is poisoned at the given step.
func (z Zones) IsPoison(row, col, step int) bool {
	switch z.RegionAt(step) {
	case RegionLeft:
		return col < z.width/2
	case RegionRight:
		return col >= z.width/2
	default:
		return false
	}
}

// RegionAt returns the poisoned region for a step. Phase k covers steps
// below steps*(k+1)/n; steps past the generation stay in the last phase.
func (z Zones) RegionAt(step int) Region {
	n := len(z.phases)
	if n == 0 {
		return RegionNone
	}
	for k := 0; k < n-1; k++ {
		if step < z.steps*(k+1)/n {
			return z.phases[k]
		}
	}
	return z.phases[n-1]
}

// FoodColumns returns the width of the food strip.
func (z Zones) FoodColumns() int {
	return z.foodCols
}

// PoisonColumns returns the half-open column range poisoned at step.
// lo == hi when nothing is poisoned.
func (z Zones) PoisonColumns(step int) (lo, hi int) {
	switch z.RegionAt(step) {
	case RegionLeft:
		return 0, z.width / 2
	case RegionRight:
		return z.width / 2, z.width
	default:
		return 0, 0
	}
}
