package metric

import (
	"fmt"
	"math"

	"github.com/BjoB/gros/internal/constants"
)

// SchwarzschildRadius returns the areal radius of the event horizon for a
// point mass M [kg]: rs = 2GM/c^2.
func SchwarzschildRadius(mass float64) float64 {
	return 2 * constants.G * mass / constants.C2
}

// Schwarzschild describes the spacetime around a non-rotating, uncharged
// central mass together with the initial state of a test particle. The mass
// parameter and initial state are fixed for the lifetime of the instance.
type Schwarzschild struct {
	mass    float64
	rs      float64
	a       float64 // -rs, the mass parameter entering the connection
	initial State
}

// Option configures optional construction parameters.
type Option func(*options)

type options struct {
	startTime float64
}

// WithStartTime sets the initial coordinate time t0 [s]. Defaults to 0.
func WithStartTime(t0 float64) Option {
	return func(o *options) { o.startTime = t0 }
}

// NewSchwarzschild builds a metric for a central mass [kg] and a test
// particle with initial spherical position [r[m], theta[rad], phi[rad]] and
// spherical velocity [dr/dtau, dtheta/dtau, dphi/dtau].
//
// The initial dt/dtau is derived from the timelike normalization condition,
// taking the positive root so the worldline is future-directed. Construction
// fails with ErrDomain for a non-positive mass, a start radius at or inside
// the horizon, or a polar angle on a pole.
func NewSchwarzschild(mass float64, pos, vel [3]float64, opts ...Option) (*Schwarzschild, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if mass <= 0 {
		return nil, fmt.Errorf("%w: mass must be positive, got %g kg", ErrDomain, mass)
	}

	rs := SchwarzschildRadius(mass)
	r, theta, phi := pos[0], pos[1], pos[2]

	if r <= rs {
		return nil, fmt.Errorf("%w: start radius %g m is at or inside the horizon rs=%g m", ErrDomain, r, rs)
	}
	if theta <= 0 || theta >= math.Pi {
		return nil, fmt.Errorf("%w: polar angle %g rad lies on a coordinate singularity", ErrDomain, theta)
	}

	m := &Schwarzschild{
		mass: mass,
		rs:   rs,
		a:    -rs,
	}

	dtdtau := m.initialTimeDilation(pos, vel)

	m.initial = State{
		o.startTime, r, theta, phi,
		dtdtau, vel[0], vel[1], vel[2],
	}
	if !m.initial.IsValid() {
		return nil, fmt.Errorf("%w: initial state is non-finite", ErrNumerical)
	}
	return m, nil
}

// initialTimeDilation solves the timelike normalization condition
// g_uv u^u u^v = -c^2 for dt/dtau given the spatial velocity components.
func (m *Schwarzschild) initialTimeDilation(pos, vel [3]float64) float64 {
	r, theta := pos[0], pos[1]
	aDivR := m.a / r
	r2 := r * r
	sinTheta := math.Sin(theta)

	radial := vel[0] * vel[0] / (constants.C2 * (1 + aDivR))
	polar := r2 * vel[1] * vel[1] / constants.C2
	azimuthal := r2 * sinTheta * sinTheta * vel[2] * vel[2] / constants.C2

	return math.Sqrt((1 + radial + polar + azimuthal) / (1 + aDivR))
}

// Mass returns the central mass [kg].
func (m *Schwarzschild) Mass() float64 { return m.mass }

// Radius returns the Schwarzschild radius rs [m].
func (m *Schwarzschild) Radius() float64 { return m.rs }

// InitialState returns a copy of the initial 8-component state.
func (m *Schwarzschild) InitialState() State { return m.initial.Clone() }

// Field returns the geodesic ODE right-hand side for this metric.
func (m *Schwarzschild) Field() *Geodesic {
	return &Geodesic{a: m.a}
}
