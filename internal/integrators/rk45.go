package integrators

import (
	"fmt"
	"math"

	"github.com/BjoB/gros/internal/metric"
)

// Dormand-Prince coefficients (RK45)
var (
	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// Field is the right-hand side of an autonomous ODE system.
type Field interface {
	Derivative(s metric.State) metric.State
}

// RK45 is an embedded Runge-Kutta 4(5) integrator with step-size control.
type RK45 struct {
	safety     float64
	minScale   float64
	maxScale   float64
	maxRejects int
}

func NewRK45() *RK45 {
	return &RK45{
		safety:     0.9,
		minScale:   0.2,
		maxScale:   10.0,
		maxRejects: 50,
	}
}

// StepAdaptive advances x by one accepted step. It retries with a smaller
// trial step while the embedded error estimate exceeds the relative
// tolerance tol, and returns the accepted state, the step actually taken and
// the suggested next step. A non-finite stage or an unsatisfiable tolerance
// surfaces as metric.ErrNumerical.
func (r *RK45) StepAdaptive(f Field, x metric.State, h, tol float64) (xNew metric.State, hUsed, hNext float64, err error) {
	for reject := 0; ; reject++ {
		if reject > r.maxRejects {
			return nil, 0, 0, fmt.Errorf("%w: step size underflow after %d rejections (h=%g)",
				metric.ErrNumerical, reject, h)
		}

		var errRatio float64
		xNew, errRatio = r.attempt(f, x, h, tol)

		if !xNew.IsValid() {
			return nil, 0, 0, fmt.Errorf("%w: non-finite result at trial step h=%g",
				metric.ErrNumerical, h)
		}

		if errRatio > 1 {
			h *= math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
			continue
		}

		if errRatio > 0 {
			hNext = h * math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
		} else {
			hNext = h * r.maxScale
		}
		return xNew, h, hNext, nil
	}
}

// attempt performs one Dormand-Prince trial step, returning the 5th-order
// solution and the error-to-tolerance ratio of the embedded 4th-order
// estimate.
func (r *RK45) attempt(f Field, x metric.State, h, tol float64) (metric.State, float64) {
	n := len(x)

	k1 := f.Derivative(x)

	x2 := make(metric.State, n)
	for i := 0; i < n; i++ {
		x2[i] = x[i] + h*b21*k1[i]
	}
	k2 := f.Derivative(x2)

	x3 := make(metric.State, n)
	for i := 0; i < n; i++ {
		x3[i] = x[i] + h*(b31*k1[i]+b32*k2[i])
	}
	k3 := f.Derivative(x3)

	x4 := make(metric.State, n)
	for i := 0; i < n; i++ {
		x4[i] = x[i] + h*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := f.Derivative(x4)

	x5 := make(metric.State, n)
	for i := 0; i < n; i++ {
		x5[i] = x[i] + h*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := f.Derivative(x5)

	x6 := make(metric.State, n)
	for i := 0; i < n; i++ {
		x6[i] = x[i] + h*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := f.Derivative(x6)

	xNew := make(metric.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + h*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := f.Derivative(xNew)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := h * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(x[i]) + math.Abs(h*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	return xNew, errMax / tol
}
