package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/BjoB/gros/internal/metric"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) Derivative(s metric.State) metric.State {
	return metric.State{s[1], -s[0]}
}

type divergentField struct{}

func (d *divergentField) Derivative(s metric.State) metric.State {
	return metric.State{math.NaN(), math.NaN()}
}

func TestRK45_StepAdaptive(t *testing.T) {
	rk := NewRK45()
	dyn := &harmonicOscillator{}

	x, hUsed, hNext, err := rk.StepAdaptive(dyn, metric.State{1, 0}, 0.1, 1e-8)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if hUsed <= 0 || hNext <= 0 {
		t.Errorf("invalid step sizes: used %g, next %g", hUsed, hNext)
	}
}

func TestRK45_HarmonicOscillatorPeriod(t *testing.T) {
	rk := NewRK45()
	dyn := &harmonicOscillator{}

	x := metric.State{1, 0}
	tt := 0.0
	h := 0.1
	tol := 1e-9

	for tt < 2*math.Pi {
		var hUsed float64
		var err error
		x, hUsed, h, err = rk.StepAdaptive(dyn, x, h, tol)
		if err != nil {
			t.Fatalf("step failed at t=%g: %v", tt, err)
		}
		tt += hUsed
	}

	// The last step overshoots the period, so compare against the exact
	// solution at the accumulated time.
	if math.Abs(x[0]-math.Cos(tt)) > 1e-6 || math.Abs(x[1]+math.Sin(tt)) > 1e-6 {
		t.Errorf("at t=%g got (%g, %g), want (%g, %g)", tt, x[0], x[1], math.Cos(tt), -math.Sin(tt))
	}
}

func TestRK45_TighterToleranceIsMoreAccurate(t *testing.T) {
	dyn := &harmonicOscillator{}

	errAt := func(tol float64) float64 {
		rk := NewRK45()
		x := metric.State{1, 0}
		tt := 0.0
		h := 0.5
		for tt < 10 {
			var hUsed float64
			var err error
			x, hUsed, h, err = rk.StepAdaptive(dyn, x, h, tol)
			if err != nil {
				t.Fatalf("step failed: %v", err)
			}
			tt += hUsed
		}
		return math.Abs(x[0] - math.Cos(tt))
	}

	loose := errAt(1e-4)
	tight := errAt(1e-10)
	if tight >= loose {
		t.Errorf("tolerance 1e-10 error %g not below tolerance 1e-4 error %g", tight, loose)
	}
}

func TestRK45_NonFiniteDerivative(t *testing.T) {
	rk := NewRK45()

	_, _, _, err := rk.StepAdaptive(&divergentField{}, metric.State{1, 0}, 0.1, 1e-6)
	if !errors.Is(err, metric.ErrNumerical) {
		t.Errorf("got %v, want ErrNumerical", err)
	}
}

func BenchmarkRK45_GeodesicStep(b *testing.B) {
	m, err := newSolarOrbitMetric()
	if err != nil {
		b.Fatalf("metric setup failed: %v", err)
	}

	rk := NewRK45()
	field := m.Field()
	x := m.InitialState()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, _, err := rk.StepAdaptive(field, x, 0.75, 0.25); err != nil {
			b.Fatal(err)
		}
	}
}
