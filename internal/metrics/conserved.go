// Package metrics computes the conserved quantities of Schwarzschild
// geodesics, used as integration-quality diagnostics: drift in these values
// measures accumulated numerical error.
package metrics

import (
	"math"

	"github.com/BjoB/gros/internal/constants"
	"github.com/BjoB/gros/internal/metric"
)

// Conserved holds the two first integrals of geodesic motion: the specific
// energy E = (1 - rs/r) c^2 dt/dtau and the specific angular momentum
// L = r^2 sin^2(theta) dphi/dtau.
type Conserved struct {
	Energy          float64
	AngularMomentum float64
}

// Evaluate computes the conserved quantities of a state in the field of the
// given metric.
func Evaluate(m *metric.Schwarzschild, s metric.State) Conserved {
	r := s.R()
	sinTheta := math.Sin(s.Theta())

	return Conserved{
		Energy:          (1 - m.Radius()/r) * constants.C2 * s[metric.IdxUt],
		AngularMomentum: r * r * sinTheta * sinTheta * s[metric.IdxUphi],
	}
}

// Drift tracks the worst-case relative deviation of the conserved
// quantities from their initial values over a run.
type Drift struct {
	initial  Conserved
	maxE     float64
	maxL     float64
	observed bool
}

func NewDrift(initial Conserved) *Drift {
	return &Drift{initial: initial}
}

func (d *Drift) Observe(c Conserved) {
	d.maxE = math.Max(d.maxE, relDev(c.Energy, d.initial.Energy))
	d.maxL = math.Max(d.maxL, relDev(c.AngularMomentum, d.initial.AngularMomentum))
	d.observed = true
}

// Energy returns the maximum relative energy deviation seen so far.
func (d *Drift) Energy() float64 { return d.maxE }

// AngularMomentum returns the maximum relative angular momentum deviation
// seen so far.
func (d *Drift) AngularMomentum() float64 { return d.maxL }

func relDev(v, ref float64) float64 {
	if ref == 0 {
		return math.Abs(v)
	}
	return math.Abs(v-ref) / math.Abs(ref)
}
