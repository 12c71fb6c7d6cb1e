package integrators

import (
	"fmt"
	"math"

	"github.com/BjoB/gros/internal/metric"
)

// Status describes the phase of a trajectory generation run.
type Status int

const (
	// Running means further points can be produced.
	Running Status = iota
	// EndReached means the proper-time window has been covered, boundary
	// point included.
	EndReached
	// HorizonReached means the particle crossed the horizon border
	// r <= horizonBorder*rs and integration stopped.
	HorizonReached
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case EndReached:
		return "end reached"
	case HorizonReached:
		return "horizon reached"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// horizonBorder is the termination radius in units of rs. Stopping slightly
// outside the horizon keeps the connection coefficients finite.
const horizonBorder = 1.01

// Step-size policy relative to the requested step size. The tolerance is
// deliberately coupled to the step size as well: a smaller requested step
// tightens accuracy, not just cadence.
const (
	initialStepFactor = 0.75
	maxStepFactor     = 5.0
	tolFactor         = 0.25
)

// Observer receives the non-fatal horizon-proximity warning.
type Observer interface {
	Warn(msg string)
}

// WarnFunc adapts a plain function to the Observer interface.
type WarnFunc func(msg string)

func (f WarnFunc) Warn(msg string) { f(msg) }

// Geodesic lazily integrates the geodesic equation of a test particle,
// producing one accepted step per Next call. It is a single-pass, stateful
// iterator: it owns its evolving state exclusively, is not restartable and
// must not be shared across goroutines.
type Geodesic struct {
	field *metric.Geodesic
	rk    *RK45

	rs     float64
	tauEnd float64
	tol    float64
	maxH   float64

	tau   float64
	state metric.State
	h     float64

	status  Status
	started bool
	err     error
	obs     Observer
}

// GeodesicOption configures a trajectory run.
type GeodesicOption func(*Geodesic)

// WithProperTimeStart sets the start proper time [s]. Defaults to 0.
func WithProperTimeStart(tau float64) GeodesicOption {
	return func(g *Geodesic) { g.tau = tau }
}

// WithProperTimeEnd bounds the run at the given proper time [s]. The run is
// unbounded by default.
func WithProperTimeEnd(tau float64) GeodesicOption {
	return func(g *Geodesic) { g.tauEnd = tau }
}

// WithObserver injects the receiver of the horizon-proximity warning.
func WithObserver(obs Observer) GeodesicOption {
	return func(g *Geodesic) { g.obs = obs }
}

// NewGeodesic builds a trajectory iterator for the given metric. stepSize [s]
// sets the integration cadence: the initial trial step is 0.75*stepSize, the
// step may grow up to 5*stepSize, and the relative tolerance is
// 0.25*stepSize.
func NewGeodesic(m *metric.Schwarzschild, stepSize float64, opts ...GeodesicOption) (*Geodesic, error) {
	if stepSize <= 0 {
		return nil, fmt.Errorf("%w: step size must be positive, got %g", metric.ErrValidation, stepSize)
	}

	g := &Geodesic{
		field:  m.Field(),
		rk:     NewRK45(),
		rs:     m.Radius(),
		tauEnd: math.Inf(1),
		tol:    tolFactor * stepSize,
		maxH:   maxStepFactor * stepSize,
		state:  m.InitialState(),
		h:      initialStepFactor * stepSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Next advances to the next trajectory point and reports whether one is
// available. The first call yields the state at the start proper time; each
// later call computes one accepted integration step. It returns false once a
// terminal status is reached or integration fails; consult Status and Err.
func (g *Geodesic) Next() bool {
	if g.err != nil {
		return false
	}

	if !g.started {
		g.started = true
		g.checkTerminal()
		return true
	}

	if g.status != Running {
		return false
	}

	xNew, hUsed, hNext, err := g.rk.StepAdaptive(g.field, g.state, g.h, g.tol)
	if err != nil {
		g.err = err
		return false
	}

	g.state = xNew
	g.tau += hUsed
	g.h = math.Min(hNext, g.maxH)

	g.checkTerminal()
	return true
}

// checkTerminal transitions to a terminal status once the proper-time window
// is covered or the horizon border is crossed. The current point is still
// yielded; only subsequent Next calls stop.
func (g *Geodesic) checkTerminal() {
	if g.tau >= g.tauEnd {
		g.status = EndReached
		return
	}
	if g.state[metric.IdxR] <= horizonBorder*g.rs {
		g.status = HorizonReached
		if g.obs != nil {
			g.obs.Warn(fmt.Sprintf("approaching event horizon at r=%g meters", g.rs))
		}
	}
}

// Rs returns the Schwarzschild radius of the underlying metric.
func (g *Geodesic) Rs() float64 { return g.rs }

// Tau returns the proper time of the current point.
func (g *Geodesic) Tau() float64 { return g.tau }

// State returns a copy of the current 8-component state.
func (g *Geodesic) State() metric.State { return g.state.Clone() }

// Status returns the current phase of the run. EndReached and HorizonReached
// are normal outcomes, not errors.
func (g *Geodesic) Status() Status { return g.status }

// Err returns the terminal integration failure, if any. A nil Err with a
// terminal Status means the run ended normally.
func (g *Geodesic) Err() error { return g.err }
