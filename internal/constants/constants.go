// Package constants holds the universal constants and reference masses used
// at the system boundary. All values are SI (CODATA / IAU nominal values).
package constants

const (
	// G is the gravitational constant [m^3 kg^-1 s^-2].
	G = 6.67430e-11

	// C is the speed of light in vacuum [m/s].
	C = 299792458.0

	// C2 is c^2, precomputed for the hot integration path.
	C2 = C * C
)

// Reference masses [kg] for preset scenarios.
const (
	SolarMass = 1.989e30
	EarthMass = 5.9722e24
)

// Mercury orbit parameters for the perihelion precession preset.
const (
	MercuryPerihelion   = 57.9e9   // [m]
	MercuryOrbitalSpeed = 47.4e3   // [m/s]
	MercuryPeriod       = 7603200. // 88 days [s]
)
