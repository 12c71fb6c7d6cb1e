package metrics

import (
	"math"
	"testing"

	"github.com/BjoB/gros/internal/constants"
	"github.com/BjoB/gros/internal/integrators"
	"github.com/BjoB/gros/internal/metric"
)

func TestEvaluate_StaticParticle(t *testing.T) {
	m, err := metric.NewSchwarzschild(constants.SolarMass,
		[3]float64{1e5, math.Pi / 2, 0}, [3]float64{0, 0, 0})
	if err != nil {
		t.Fatalf("metric setup failed: %v", err)
	}

	c := Evaluate(m, m.InitialState())

	// For a static particle E = c^2 sqrt(1 - rs/r) and L = 0.
	want := constants.C2 * math.Sqrt(1-m.Radius()/1e5)
	if math.Abs(c.Energy-want)/want > 1e-12 {
		t.Errorf("energy = %g, want %g", c.Energy, want)
	}
	if c.AngularMomentum != 0 {
		t.Errorf("angular momentum = %g, want 0", c.AngularMomentum)
	}
}

// Both first integrals stay constant along an integrated geodesic; their
// drift bounds the accumulated numerical error.
func TestDrift_AlongOrbit(t *testing.T) {
	r0 := 57.9e9
	m, err := metric.NewSchwarzschild(constants.SolarMass,
		[3]float64{r0, math.Pi / 2, 0},
		[3]float64{0, 0, 47.4e3 / r0})
	if err != nil {
		t.Fatalf("metric setup failed: %v", err)
	}

	g, err := integrators.NewGeodesic(m, 3600, integrators.WithProperTimeEnd(50*3600))
	if err != nil {
		t.Fatalf("NewGeodesic failed: %v", err)
	}

	drift := NewDrift(Evaluate(m, m.InitialState()))
	for g.Next() {
		drift.Observe(Evaluate(m, g.State()))
	}
	if err := g.Err(); err != nil {
		t.Fatalf("integration failed: %v", err)
	}

	if drift.Energy() > 1e-6 {
		t.Errorf("energy drift %g exceeds 1e-6", drift.Energy())
	}
	if drift.AngularMomentum() > 1e-6 {
		t.Errorf("angular momentum drift %g exceeds 1e-6", drift.AngularMomentum())
	}
}
