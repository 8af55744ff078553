package main

import (
	"math"

	"github.com/pthm-cable/petri/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Log     bool    // Searched in log10 space
	Integer bool    // Rounded before use
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Field size, population and zones stay fixed; these shape how fast a
// population can find the food strip.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "mutation_rarity", Path: "mutation.rarity", Min: 100, Max: 100000, Default: 10000, Log: true, Integer: true},
			{Name: "genes", Path: "genome.genes", Min: 2, Max: 32, Default: 12, Integer: true},
			{Name: "weight_amplitude", Path: "genome.weight_amplitude", Min: 1, Max: 8, Default: 4},
			{Name: "steps", Path: "generation.steps", Min: 50, Max: 600, Default: 300, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

func (s ParamSpec) bounds() (lo, hi float64) {
	if s.Log {
		return math.Log10(s.Min), math.Log10(s.Max)
	}
	return s.Min, s.Max
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		lo, hi := spec.bounds()
		v := raw[i]
		if spec.Log {
			v = math.Log10(v)
		}
		normalized[i] = (v - lo) / (hi - lo)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		lo, hi := spec.bounds()
		v := lo + normalized[i]*(hi-lo)
		if spec.Log {
			v = math.Pow(10, v)
		}
		raw[i] = v
	}
	return raw
}

// Clamp ensures all values are within bounds and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Mutation.Rarity = int(clamped[0])
	cfg.Genome.Genes = int(clamped[1])
	cfg.Genome.WeightAmplitude = clamped[2]
	cfg.Generation.Steps = int(clamped[3])
	cfg.ComputeDerived()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Mutation.Rarity),
		float64(cfg.Genome.Genes),
		cfg.Genome.WeightAmplitude,
		float64(cfg.Generation.Steps),
	}
}
