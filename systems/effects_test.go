package systems

import (
	"testing"

	"github.com/pthm-cable/raceway/components"
)

func TestPickupEffectsCoverEveryKind(t *testing.T) {
	for k := components.PickupKind(0); k < components.NumPickupKinds; k++ {
		if pickupEffects[k] == nil {
			t.Errorf("no effect registered for %v", k)
		}
	}
}

func TestApplyPickupOverwritesWithoutStacking(t *testing.T) {
	car := newCar(0, 0, 0, 2)

	ApplyPickup(car, components.PickupSpeedBoost, testEffects)
	car.Effects = AgeEffects(car.Effects, 2)
	ApplyPickup(car, components.PickupSpeedBoost, testEffects)

	if car.Effects.BoostRemaining != testEffects.BoostDuration {
		t.Errorf("BoostRemaining = %v, want %v", car.Effects.BoostRemaining, testEffects.BoostDuration)
	}
	if car.Speed != 4 {
		t.Errorf("Speed = %v, want 4 (boost does not compound)", car.Speed)
	}
}

func TestAgeEffects(t *testing.T) {
	tests := []struct {
		name       string
		in         components.StatusEffects
		dt         float64
		wantBoost  float64
		wantShield float64
	}{
		{"no effects", components.StatusEffects{}, 1, 0, 0},
		{"partial", components.StatusEffects{BoostRemaining: 3, ShieldRemaining: 5}, 1, 2, 4},
		{"expires at zero", components.StatusEffects{BoostRemaining: 0.5, ShieldRemaining: 1}, 1, 0, 0},
		{"negative dt ignored", components.StatusEffects{BoostRemaining: 1}, -1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AgeEffects(tt.in, tt.dt)
			if got.BoostRemaining != tt.wantBoost || got.ShieldRemaining != tt.wantShield {
				t.Errorf("AgeEffects(%+v, %v) = %+v, want boost %v shield %v", tt.in, tt.dt, got, tt.wantBoost, tt.wantShield)
			}
		})
	}
}

func TestEffectiveSpeedRevertsToBase(t *testing.T) {
	e := components.StatusEffects{BoostRemaining: 0.1}
	if got := EffectiveSpeed(2.5, e, testEffects); got != 5 {
		t.Errorf("boosted speed = %v, want 5", got)
	}
	e = AgeEffects(e, 0.2)
	if got := EffectiveSpeed(2.5, e, testEffects); got != 2.5 {
		t.Errorf("speed after expiry = %v, want 2.5", got)
	}
}
