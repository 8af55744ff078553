package systems

import "github.com/pthm-cable/petri/config"

// Env carries the run constants every engine needs.
type Env struct {
	Width             int
	Height            int
	Cells             int
	Steps             int     // simulate ticks per generation
	Amplitude         float32 // weight amplitude
	MutationRarity    int
	PoisonDeathRarity int
	Zones             Zones
}

// NewEnv builds an Env from configuration.
func NewEnv(cfg *config.Config) Env {
	return Env{
		Width:             cfg.World.Width,
		Height:            cfg.World.Height,
		Cells:             cfg.Population.Cells,
		Steps:             cfg.Generation.Steps,
		Amplitude:         cfg.Derived.Amplitude32,
		MutationRarity:    cfg.Mutation.Rarity,
		PoisonDeathRarity: cfg.Zones.PoisonDeathRarity,
		Zones:             NewZones(cfg),
	}
}
