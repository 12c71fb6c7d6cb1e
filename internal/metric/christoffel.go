package metric

import (
	"math"

	"github.com/BjoB/gros/internal/constants"
)

// ChristoffelTensor holds the connection coefficients Gamma^i_jk of the
// Schwarzschild metric at one evaluation point. It is symmetric in the two
// lower indices and sparse; only the nonzero components are populated.
//
// The tensor depends on (r, theta) and is rebuilt fresh at every evaluation
// point, so it lives on the stack of the derivative call.
type ChristoffelTensor [4][4][4]float64

// ChristoffelAt computes the Schwarzschild connection coefficients at radius
// r and polar angle theta. The mass parameter a is the negated Schwarzschild
// radius, a = -rs.
//
// The coefficients are undefined at r = 0, at the horizon r = -a and at the
// poles theta in {0, pi}; the integrator terminates on the horizon border
// before any of these are reachable, so no guards are placed here.
func ChristoffelAt(r, theta, a float64) ChristoffelTensor {
	var chs ChristoffelTensor

	r2 := r * r
	aDivR := a / r
	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)

	chs[0][0][1] = -0.5 * a / (r2 * (1 + aDivR))
	chs[0][1][0] = chs[0][0][1]
	chs[1][0][0] = -0.5 * (1 + aDivR) * constants.C2 * aDivR / r
	chs[1][1][1] = -chs[0][0][1]
	chs[2][1][2] = 1 / r
	chs[2][2][1] = chs[2][1][2]
	chs[1][2][2] = -(r + a)
	chs[3][1][3] = 1 / r
	chs[3][3][1] = chs[3][1][3]
	chs[1][3][3] = -(r + a) * sinTheta * sinTheta
	chs[3][2][3] = cosTheta / sinTheta
	chs[3][3][2] = chs[3][2][3]
	chs[2][3][3] = -sinTheta * cosTheta

	return chs
}
