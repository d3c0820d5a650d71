package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Track.Lanes != 4 {
		t.Errorf("Track.Lanes = %d, want 4", cfg.Track.Lanes)
	}
	if cfg.Cars.Count != 4 {
		t.Errorf("Cars.Count = %d, want 4", cfg.Cars.Count)
	}
	if cfg.Obstacles.Penalty != 0.5 {
		t.Errorf("Obstacles.Penalty = %v, want 0.5", cfg.Obstacles.Penalty)
	}
	if cfg.Derived.StepInterval != 16*time.Millisecond {
		t.Errorf("Derived.StepInterval = %v, want 16ms", cfg.Derived.StepInterval)
	}
	if cfg.Derived.TeardownTimeout != time.Second {
		t.Errorf("Derived.TeardownTimeout = %v, want 1s", cfg.Derived.TeardownTimeout)
	}
	if cfg.Derived.TrackLength != 850 {
		t.Errorf("Derived.TrackLength = %v, want 850", cfg.Derived.TrackLength)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "race.yaml")
	overlay := []byte("cars:\n  count: 2\n  interactive: false\ntrack:\n  finish_x: 600\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Cars.Count != 2 || cfg.Cars.Interactive {
		t.Errorf("cars = %+v, want count 2 and not interactive", cfg.Cars)
	}
	if cfg.Track.FinishX != 600 {
		t.Errorf("Track.FinishX = %v, want 600", cfg.Track.FinishX)
	}
	// Untouched keys keep their defaults
	if cfg.Cars.Length != 40 {
		t.Errorf("Cars.Length = %v, want default 40", cfg.Cars.Length)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"more cars than lanes", func(c *Config) { c.Cars.Count = 5 }, true},
		{"finish before start", func(c *Config) { c.Track.FinishX = 10 }, true},
		{"inverted jitter", func(c *Config) { c.Movement.JitterMin = 1.5 }, true},
		{"margin too wide", func(c *Config) { c.Obstacles.Margin = 600 }, true},
		{"margin ignored without obstacles", func(c *Config) {
			c.Obstacles.Margin = 600
			c.Obstacles.Count = 0
		}, false},
		{"non-positive slowest car", func(c *Config) { c.Cars.SpeedVariance = 2 }, true},
		{"penalty above one", func(c *Config) { c.Obstacles.Penalty = 1.5 }, true},
		{"zero frame rate", func(c *Config) { c.Timing.FrameRate = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Cars.Count = 3
	cfg.Effects.ShieldDuration = 7

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Cars.Count != 3 || loaded.Effects.ShieldDuration != 7 {
		t.Errorf("loaded cars.count=%d shield=%v, want 3 and 7", loaded.Cars.Count, loaded.Effects.ShieldDuration)
	}
}
