package systems

import (
	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/config"
)

// EffectConfig holds status effect tuning.
type EffectConfig struct {
	BoostDuration  float64 // seconds
	BoostFactor    float64
	ShieldDuration float64 // seconds
}

// NewEffectConfig extracts effect tuning from a config.
func NewEffectConfig(cfg *config.Config) EffectConfig {
	return EffectConfig{
		BoostDuration:  cfg.Effects.BoostDuration,
		BoostFactor:    cfg.Effects.BoostFactor,
		ShieldDuration: cfg.Effects.ShieldDuration,
	}
}

// pickupEffect starts one kind's effect. A fresh pickup overwrites the
// remaining duration of the same effect instead of adding to it.
type pickupEffect func(e *components.StatusEffects, cfg EffectConfig)

// pickupEffects has one entry per PickupKind.
var pickupEffects = [components.NumPickupKinds]pickupEffect{
	components.PickupSpeedBoost: func(e *components.StatusEffects, cfg EffectConfig) {
		e.BoostRemaining = cfg.BoostDuration
	},
	components.PickupShield: func(e *components.StatusEffects, cfg EffectConfig) {
		e.ShieldRemaining = cfg.ShieldDuration
	},
}

// ApplyPickup starts the pickup's effect on the car and updates its speed.
func ApplyPickup(car *components.Car, kind components.PickupKind, cfg EffectConfig) {
	pickupEffects[kind](&car.Effects, cfg)
	car.Speed = EffectiveSpeed(car.BaseSpeed, car.Effects, cfg)
}

// AgeEffects returns e with dt seconds elapsed. Durations stop at zero.
func AgeEffects(e components.StatusEffects, dt float64) components.StatusEffects {
	if dt <= 0 {
		return e
	}
	e.BoostRemaining = max(e.BoostRemaining-dt, 0)
	e.ShieldRemaining = max(e.ShieldRemaining-dt, 0)
	return e
}

// EffectiveSpeed returns the speed a car with the given effects moves at.
func EffectiveSpeed(base float64, e components.StatusEffects, cfg EffectConfig) float64 {
	if e.Boosted() {
		return base * cfg.BoostFactor
	}
	return base
}
