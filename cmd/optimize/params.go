// Package main searches genetic algorithm settings that evolve pilots able
// to fly the course, scoring each candidate with headless runs.
package main

import (
	"math"

	"github.com/pthm-cable/thrust/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before it is applied
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "mutation_rate", Path: "mutation.rate", Min: 0.005, Max: 0.3, Default: 0.05},
			{Name: "mutation_strength", Path: "mutation.strength", Min: 0.02, Max: 0.6, Default: 0.1},
			{Name: "tournament_size", Path: "population.tournament_size", Min: 2, Max: 12, Default: 5, Integer: true},
			{Name: "elite_fraction", Path: "population.elite_count", Min: 0, Max: 0.3, Default: 0.08},
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

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds, rounding integer parameters.
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

	cfg.Mutation.Rate = clamped[0]
	cfg.Mutation.Strength = clamped[1]
	cfg.Population.TournamentSize = int(clamped[2])
	cfg.Population.EliteCount = min(int(math.Round(clamped[3]*float64(cfg.Population.Size))), cfg.Population.Size)
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	elite := 0.0
	if cfg.Population.Size > 0 {
		elite = float64(cfg.Population.EliteCount) / float64(cfg.Population.Size)
	}
	return []float64{
		cfg.Mutation.Rate,
		cfg.Mutation.Strength,
		float64(cfg.Population.TournamentSize),
		elite,
	}
}
