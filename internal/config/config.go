// Package config defines the YAML scenario configuration consumed by the
// gros CLI and maps it onto metric inputs.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BjoB/gros/internal/constants"
	"github.com/BjoB/gros/internal/metric"
)

const (
	DefaultStepSize      = 1.0
	DefaultProperTimeEnd = 10.0
)

type Config struct {
	// Mass of the gravitational center [kg].
	Mass float64 `yaml:"mass"`
	// Initial spherical position and velocity of the test particle.
	Position SphericalConfig `yaml:"position"`
	Velocity SphericalConfig `yaml:"velocity"`
	// StartTime is the initial coordinate time [s].
	StartTime float64 `yaml:"start_time"`
	// StepSize is the integration cadence [s].
	StepSize float64 `yaml:"step_size"`
	// ProperTimeEnd bounds the run [s].
	ProperTimeEnd float64 `yaml:"proper_time_end"`
	// AnimationStepSize is the down-sampling cadence [s] for the live
	// animation view; zero disables down-sampling.
	AnimationStepSize float64 `yaml:"animation_step_size"`
}

// SphericalConfig holds one spherical triple: (r, theta, phi) for positions
// [m, rad, rad] or their proper-time derivatives for velocities.
type SphericalConfig struct {
	R     float64 `yaml:"r"`
	Theta float64 `yaml:"theta"`
	Phi   float64 `yaml:"phi"`
}

func DefaultConfig() *Config {
	return &Config{
		Mass:          constants.SolarMass,
		Position:      SphericalConfig{R: 1.4e11, Theta: math.Pi / 2, Phi: 0.3},
		Velocity:      SphericalConfig{R: 1000},
		StepSize:      DefaultStepSize,
		ProperTimeEnd: DefaultProperTimeEnd,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the boundary units before any metric is constructed. The
// physical admissibility of the configuration (horizon, poles) is checked by
// metric construction itself.
func (c *Config) Validate() error {
	if c.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %g kg", c.Mass)
	}
	if c.StepSize <= 0 {
		return fmt.Errorf("step_size must be positive, got %g s", c.StepSize)
	}
	if c.ProperTimeEnd <= 0 {
		return fmt.Errorf("proper_time_end must be positive, got %g s", c.ProperTimeEnd)
	}
	return nil
}

// Metric builds the Schwarzschild metric for this scenario.
func (c *Config) Metric() (*metric.Schwarzschild, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return metric.NewSchwarzschild(
		c.Mass,
		[3]float64{c.Position.R, c.Position.Theta, c.Position.Phi},
		[3]float64{c.Velocity.R, c.Velocity.Theta, c.Velocity.Phi},
		metric.WithStartTime(c.StartTime),
	)
}
