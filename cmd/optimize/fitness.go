package main

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/game"
	"github.com/pthm-cable/petri/systems"
	"github.com/pthm-cable/petri/telemetry"
)

// FitnessEvaluator runs headless sessions and scores them.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	window      int
	seeds       []int64
	baseConfig  *config.Config

	lastFraction float64
}

// NewFitnessEvaluator creates a new evaluator. Each run lasts generations
// selections and is scored on the mean survivor fraction of its last window.
func NewFitnessEvaluator(params *ParamVector, generations, window int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		window:      max(window, 1),
		seeds:       seeds,
		baseConfig:  baseCfg,
	}
}

// LastFraction returns the mean survivor fraction of the most recent Evaluate call.
func (fe *FitnessEvaluator) LastFraction() float64 {
	return fe.lastFraction
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run one after another.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Validate(); err != nil {
		fe.lastFraction = 0
		return 0
	}

	fractions := make([]float64, 0, len(fe.seeds))
	for _, seed := range fe.seeds {
		f, err := fe.runSession(cfg, seed)
		if err != nil {
			fmt.Printf("seed %d: %v\n", seed, err)
		}
		fractions = append(fractions, f)
	}

	fe.lastFraction = stat.Mean(fractions, nil)
	return computeFitness(fractions)
}

// runSession returns the mean survivor fraction over the trailing window.
// A run that dies out scores what it recorded before the last generation,
// padded with zeros.
func (fe *FitnessEvaluator) runSession(cfg *config.Config, seed int64) (float64, error) {
	s, err := game.NewSession(cfg, game.Options{
		Seed:        seed,
		RunID:       fmt.Sprintf("optimize-%d", seed),
		Speed:       config.MaxSpeed,
		TrendWindow: fe.window,
	})
	if err != nil {
		return 0, err
	}
	defer s.Close()

	err = s.RunHeadless(fe.generations)
	if err != nil && !errors.Is(err, systems.ErrNoSurvivors) {
		return 0, err
	}
	return trailingFraction(s.Collector().History(), fe.window, fe.generations), nil
}

// trailingFraction averages the last window fractions of a run that should
// have lasted generations selections. Missing generations count as 0.
func trailingFraction(history []telemetry.GenerationStats, window, generations int) float64 {
	window = min(window, generations)
	if window <= 0 {
		return 0
	}
	values := make([]float64, window)
	// Align the window to the end of the intended run.
	for _, h := range history {
		pos := h.Generation - (generations - window) - 1
		if pos >= 0 && pos < window {
			values[pos] = h.SurvivorFraction
		}
	}
	return stat.Mean(values, nil)
}

// computeFitness rewards a high mean fraction and penalises spread between
// seeds, so settings that only work for one seed rank lower.
func computeFitness(fractions []float64) float64 {
	if len(fractions) == 0 {
		return 0
	}
	mean, std := stat.MeanStdDev(fractions, nil)
	if len(fractions) < 2 || math.IsNaN(std) {
		std = 0
	}
	return -(mean - 0.5*std)
}

func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Zones.PoisonPhases = slices.Clone(fe.baseConfig.Zones.PoisonPhases)
	return &cfg
}
