package config

import (
	"math"
	"sort"

	"github.com/BjoB/gros/internal/constants"
)

// Presets are ready-made scenarios from the reference examples.
var Presets = map[string]*Config{
	"mercury": {
		Mass:              constants.SolarMass,
		Position:          SphericalConfig{R: constants.MercuryPerihelion, Theta: math.Pi / 2},
		Velocity:          SphericalConfig{Phi: constants.MercuryOrbitalSpeed / constants.MercuryPerihelion},
		StepSize:          3600,
		ProperTimeEnd:     constants.MercuryPeriod,
		AnimationStepSize: 86400,
	},
	"earth-blackhole": {
		// A particle 100 m from a black hole of earth mass (rs ~ 9 mm).
		Mass:          constants.EarthMass,
		Position:      SphericalConfig{R: 100, Theta: math.Pi / 2},
		Velocity:      SphericalConfig{Phi: 5000},
		StepSize:      1e-5,
		ProperTimeEnd: 0.005,
	},
	"horizon-fall": {
		// Near-radial infall starting just outside the solar-mass
		// horizon; terminates at the horizon border.
		Mass:          constants.SolarMass,
		Position:      SphericalConfig{R: 3100, Theta: math.Pi / 2},
		Velocity:      SphericalConfig{R: -1e6},
		StepSize:      1e-4,
		ProperTimeEnd: 1,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
