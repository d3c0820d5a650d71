// Package main provides CMA-ES tuning of race parameters for close, fair races.
package main

import (
	"github.com/pthm-cable/raceway/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "penalty", Path: "obstacles.penalty", Min: 0.1, Max: 0.9, Default: 0.5},
			{Name: "boost_factor", Path: "effects.boost_factor", Min: 1.2, Max: 3.0, Default: 2.0},
			{Name: "boost_duration", Path: "effects.boost_duration", Min: 0.5, Max: 6.0, Default: 3.0},
			{Name: "shield_duration", Path: "effects.shield_duration", Min: 0.5, Max: 8.0, Default: 5.0},
			{Name: "speed_variance", Path: "cars.speed_variance", Min: 0.1, Max: 1.5, Default: 1.0},
			{Name: "player_factor", Path: "movement.player_factor", Min: 1.0, Max: 2.5, Default: 1.5},
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

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct and recomputes
// derived values. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Obstacles.Penalty = clamped[0]
	cfg.Effects.BoostFactor = clamped[1]
	cfg.Effects.BoostDuration = clamped[2]
	cfg.Effects.ShieldDuration = clamped[3]
	// Keep the slowest possible car moving forward
	cfg.Cars.SpeedVariance = min(clamped[4], cfg.Cars.BaseSpeed*0.9)
	cfg.Movement.PlayerFactor = clamped[5]

	cfg.ComputeDerived()
}

// ExtractFromConfig reads current parameter values from a Config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Obstacles.Penalty,
		cfg.Effects.BoostFactor,
		cfg.Effects.BoostDuration,
		cfg.Effects.ShieldDuration,
		cfg.Cars.SpeedVariance,
		cfg.Movement.PlayerFactor,
	}
}
