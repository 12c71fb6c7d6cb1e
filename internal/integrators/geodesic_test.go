package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/BjoB/gros/internal/constants"
	"github.com/BjoB/gros/internal/metric"
)

// newSolarOrbitMetric is the reference far-field scenario: a particle at
// 1.4e11 m from a solar mass with a small radial velocity.
func newSolarOrbitMetric() (*metric.Schwarzschild, error) {
	return metric.NewSchwarzschild(constants.SolarMass,
		[3]float64{1.4e11, math.Pi / 2, 0.3},
		[3]float64{1000, 0, 0})
}

type countingObserver struct {
	warnings []string
}

func (c *countingObserver) Warn(msg string) { c.warnings = append(c.warnings, msg) }

func TestNewGeodesic_RejectsNonPositiveStep(t *testing.T) {
	m, err := newSolarOrbitMetric()
	if err != nil {
		t.Fatalf("metric setup failed: %v", err)
	}

	for _, step := range []float64{0, -1} {
		if _, err := NewGeodesic(m, step); !errors.Is(err, metric.ErrValidation) {
			t.Errorf("stepSize %g: got %v, want ErrValidation", step, err)
		}
	}
}

func TestGeodesic_YieldsStartStateFirst(t *testing.T) {
	m, err := newSolarOrbitMetric()
	if err != nil {
		t.Fatalf("metric setup failed: %v", err)
	}

	g, err := NewGeodesic(m, 1.0, WithProperTimeStart(2.5), WithProperTimeEnd(10))
	if err != nil {
		t.Fatalf("NewGeodesic failed: %v", err)
	}

	if !g.Next() {
		t.Fatal("expected at least the start point")
	}
	if g.Tau() != 2.5 {
		t.Errorf("first tau = %g, want 2.5", g.Tau())
	}

	want := m.InitialState()
	got := g.State()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("first state[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestGeodesic_EndReached(t *testing.T) {
	m, err := newSolarOrbitMetric()
	if err != nil {
		t.Fatalf("metric setup failed: %v", err)
	}

	g, err := NewGeodesic(m, 1.0, WithProperTimeEnd(10))
	if err != nil {
		t.Fatalf("NewGeodesic failed: %v", err)
	}

	var taus []float64
	var last metric.State
	for g.Next() {
		taus = append(taus, g.Tau())
		last = g.State()
	}
	if err := g.Err(); err != nil {
		t.Fatalf("integration failed: %v", err)
	}

	if g.Status() != EndReached {
		t.Fatalf("status = %v, want EndReached", g.Status())
	}
	if final := taus[len(taus)-1]; final < 10 {
		t.Errorf("final tau = %g, want >= 10", final)
	}
	for i := 1; i < len(taus); i++ {
		if taus[i] < taus[i-1] {
			t.Fatalf("tau not monotonic: %g after %g", taus[i], taus[i-1])
		}
	}

	// Far from the mass the time dilation stays at the static observer
	// factor 1/sqrt(1 - rs/r) to within a few percent.
	want := 1 / math.Sqrt(1-m.Radius()/last.R())
	if math.Abs(last.TimeDilation()-want)/want > 0.03 {
		t.Errorf("final dt/dtau = %.12g, want ~%.12g", last.TimeDilation(), want)
	}

	// Terminal state is sticky.
	if g.Next() {
		t.Error("Next returned true after EndReached")
	}
}

func TestGeodesic_HorizonReached(t *testing.T) {
	rs := metric.SchwarzschildRadius(constants.SolarMass)

	// Start just outside the termination border with a near-radial infall.
	m, err := metric.NewSchwarzschild(constants.SolarMass,
		[3]float64{1.05 * rs, math.Pi / 2, 0},
		[3]float64{-1e6, 0, 0})
	if err != nil {
		t.Fatalf("metric setup failed: %v", err)
	}

	obs := &countingObserver{}
	g, err := NewGeodesic(m, 1e-4, WithObserver(obs))
	if err != nil {
		t.Fatalf("NewGeodesic failed: %v", err)
	}

	steps := 0
	var lastR float64
	for g.Next() {
		steps++
		lastR = g.State().R()
		if steps > 1000 {
			t.Fatal("no horizon termination within 1000 steps")
		}
	}
	if err := g.Err(); err != nil {
		t.Fatalf("integration failed: %v", err)
	}

	if g.Status() != HorizonReached {
		t.Fatalf("status = %v, want HorizonReached", g.Status())
	}
	if lastR > 1.01*rs {
		t.Errorf("final r = %g, want <= %g", lastR, 1.01*rs)
	}
	if len(obs.warnings) != 1 {
		t.Fatalf("got %d warnings, want exactly 1", len(obs.warnings))
	}
	if obs.warnings[0] == "" {
		t.Error("empty warning message")
	}

	if g.Next() {
		t.Error("Next returned true after HorizonReached")
	}
}

func TestGeodesic_UnboundedRunIsLazy(t *testing.T) {
	m, err := newSolarOrbitMetric()
	if err != nil {
		t.Fatalf("metric setup failed: %v", err)
	}

	// No proper-time bound: the consumer decides when to stop pulling.
	g, err := NewGeodesic(m, 1.0)
	if err != nil {
		t.Fatalf("NewGeodesic failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if !g.Next() {
			t.Fatalf("unbounded run stopped at point %d: status %v, err %v", i, g.Status(), g.Err())
		}
	}
	if g.Status() != Running {
		t.Errorf("status = %v, want Running", g.Status())
	}
}

// The relative tolerance is coupled to the requested step size
// (tol = 0.25*stepSize), mirroring the behavior this integrator replicates:
// smaller requested steps tighten accuracy as well as cadence. This test
// pins the coupling; it is compatibility behavior, not a general accuracy
// model.
func TestGeodesic_StepSizeCouplesTolerance(t *testing.T) {
	pointsFor := func(stepSize float64) int {
		m, err := newSolarOrbitMetric()
		if err != nil {
			t.Fatalf("metric setup failed: %v", err)
		}
		g, err := NewGeodesic(m, stepSize, WithProperTimeEnd(20))
		if err != nil {
			t.Fatalf("NewGeodesic failed: %v", err)
		}
		n := 0
		for g.Next() {
			n++
		}
		if err := g.Err(); err != nil {
			t.Fatalf("integration failed: %v", err)
		}
		return n
	}

	coarse := pointsFor(5.0)
	fine := pointsFor(0.5)
	if fine <= coarse {
		t.Errorf("stepSize 0.5 yielded %d points, stepSize 5.0 yielded %d; want more points for the smaller step", fine, coarse)
	}
}
