// Package config provides configuration loading and access for the race.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all race configuration parameters.
// Values are fixed once a Game has been constructed from them.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Track     TrackConfig     `yaml:"track"`
	Cars      CarsConfig      `yaml:"cars"`
	Movement  MovementConfig  `yaml:"movement"`
	Obstacles ObstaclesConfig `yaml:"obstacles"`
	Pickups   PickupsConfig   `yaml:"pickups"`
	Effects   EffectsConfig   `yaml:"effects"`
	Timing    TimingConfig    `yaml:"timing"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the window front-end.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// TrackConfig holds track layout.
type TrackConfig struct {
	Lanes   int     `yaml:"lanes"`
	StartX  float64 `yaml:"start_x"`  // Where every car lines up
	FinishX float64 `yaml:"finish_x"` // A car whose position reaches this has finished
}

// CarsConfig holds car creation parameters.
type CarsConfig struct {
	Count         int     `yaml:"count"`
	Interactive   bool    `yaml:"interactive"` // Car 0 is driven by the boundary instead of a worker
	Length        float64 `yaml:"length"`
	BaseSpeed     float64 `yaml:"base_speed"`     // Track units per step
	SpeedVariance float64 `yaml:"speed_variance"` // Base speed is drawn from base_speed ± this
}

// MovementConfig holds per-step displacement parameters.
type MovementConfig struct {
	JitterMin    float64 `yaml:"jitter_min"`    // Lower bound of the per-step speed multiplier
	JitterMax    float64 `yaml:"jitter_max"`    // Upper bound of the per-step speed multiplier
	PlayerFactor float64 `yaml:"player_factor"` // Interactive advance = speed * this
}

// ObstaclesConfig holds obstacle placement parameters.
type ObstaclesConfig struct {
	Count   int     `yaml:"count"`
	Size    float64 `yaml:"size"`
	Margin  float64 `yaml:"margin"`  // Keep-out band after start and before finish
	Penalty float64 `yaml:"penalty"` // Fraction of the step displacement lost on an unshielded hit
}

// PickupsConfig holds pickup placement parameters.
type PickupsConfig struct {
	Count  int     `yaml:"count"`
	Size   float64 `yaml:"size"`
	Margin float64 `yaml:"margin"`
}

// EffectsConfig holds status effect parameters. Durations are in seconds.
type EffectsConfig struct {
	BoostDuration  float64 `yaml:"boost_duration"`
	BoostFactor    float64 `yaml:"boost_factor"`
	ShieldDuration float64 `yaml:"shield_duration"`
}

// TimingConfig holds pacing parameters. Durations are in seconds.
type TimingConfig struct {
	StepInterval       float64 `yaml:"step_interval"`        // Worker throttle between steps
	LaneChangeCooldown float64 `yaml:"lane_change_cooldown"` // Minimum gap between player lane changes
	TeardownTimeout    float64 `yaml:"teardown_timeout"`     // Bounded join window on stop/reset
	FrameRate          int     `yaml:"frame_rate"`           // Boundary loop rate (headless autopilot, TUI)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	SnapshotOnFinish bool `yaml:"snapshot_on_finish"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	StepInterval       time.Duration
	LaneChangeCooldown time.Duration
	TeardownTimeout    time.Duration
	FrameInterval      time.Duration
	TrackLength        float64 // FinishX - StartX
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults. Panics if they fail to parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate reports setups the race cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Track.Lanes < 1 {
		errs = append(errs, fmt.Errorf("track.lanes must be at least 1, got %d", c.Track.Lanes))
	}
	if c.Track.FinishX <= c.Track.StartX {
		errs = append(errs, fmt.Errorf("track.finish_x (%v) must be beyond track.start_x (%v)", c.Track.FinishX, c.Track.StartX))
	}
	if c.Cars.Count < 1 {
		errs = append(errs, fmt.Errorf("cars.count must be at least 1, got %d", c.Cars.Count))
	}
	// Every car starts at start_x in its own lane; sharing a lane would block both forever.
	if c.Cars.Count > c.Track.Lanes {
		errs = append(errs, fmt.Errorf("cars.count (%d) exceeds track.lanes (%d)", c.Cars.Count, c.Track.Lanes))
	}
	if c.Cars.Length <= 0 {
		errs = append(errs, errors.New("cars.length must be positive"))
	}
	if c.Cars.BaseSpeed-c.Cars.SpeedVariance <= 0 {
		errs = append(errs, errors.New("cars.base_speed - cars.speed_variance must be positive"))
	}
	if c.Movement.JitterMin <= 0 || c.Movement.JitterMin > c.Movement.JitterMax {
		errs = append(errs, fmt.Errorf("movement jitter range [%v, %v] is invalid", c.Movement.JitterMin, c.Movement.JitterMax))
	}
	if c.Obstacles.Count < 0 || c.Pickups.Count < 0 {
		errs = append(errs, errors.New("obstacle and pickup counts must not be negative"))
	}
	if c.Obstacles.Count > 0 && c.Track.StartX+c.Obstacles.Margin > c.Track.FinishX-c.Obstacles.Margin {
		errs = append(errs, errors.New("obstacles.margin leaves no placement band"))
	}
	if c.Pickups.Count > 0 && c.Track.StartX+c.Pickups.Margin > c.Track.FinishX-c.Pickups.Margin {
		errs = append(errs, errors.New("pickups.margin leaves no placement band"))
	}
	if c.Obstacles.Penalty < 0 || c.Obstacles.Penalty > 1 {
		errs = append(errs, fmt.Errorf("obstacles.penalty must be within [0, 1], got %v", c.Obstacles.Penalty))
	}
	if c.Timing.StepInterval <= 0 || c.Timing.TeardownTimeout <= 0 {
		errs = append(errs, errors.New("timing.step_interval and timing.teardown_timeout must be positive"))
	}
	if c.Timing.FrameRate <= 0 {
		errs = append(errs, errors.New("timing.frame_rate must be positive"))
	}

	return errors.Join(errs...)
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after changing a loaded Config in code.
func (c *Config) ComputeDerived() {
	c.Derived.StepInterval = seconds(c.Timing.StepInterval)
	c.Derived.LaneChangeCooldown = seconds(c.Timing.LaneChangeCooldown)
	c.Derived.TeardownTimeout = seconds(c.Timing.TeardownTimeout)
	c.Derived.FrameInterval = time.Second / time.Duration(c.Timing.FrameRate)
	c.Derived.TrackLength = c.Track.FinishX - c.Track.StartX
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
