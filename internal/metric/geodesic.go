package metric

// Geodesic is the right-hand side of the geodesic equation for a fixed
// Schwarzschild metric: given a state it returns the proper-time derivative
// of that state. It carries only the mass parameter a = -rs and is a pure
// function of its input.
type Geodesic struct {
	a float64
}

// Derivative evaluates the geodesic ODE at s. The first four components of
// the result are the four-velocity; the last four are the accelerations
// -Gamma^i_jk u^j u^k with the connection evaluated at the current (r, theta).
func (g *Geodesic) Derivative(s State) State {
	chs := ChristoffelAt(s[IdxR], s[IdxTheta], g.a)

	ut, ur, utheta, uphi := s[IdxUt], s[IdxUr], s[IdxUtheta], s[IdxUphi]

	d := make(State, StateDim)
	d[IdxT] = ut
	d[IdxR] = ur
	d[IdxTheta] = utheta
	d[IdxPhi] = uphi
	d[IdxUt] = -2 * chs[0][0][1] * ut * ur
	d[IdxUr] = -(chs[1][0][0]*ut*ut + chs[1][1][1]*ur*ur +
		chs[1][2][2]*utheta*utheta + chs[1][3][3]*uphi*uphi)
	d[IdxUtheta] = -2*chs[2][2][1]*utheta*ur - chs[2][3][3]*uphi*uphi
	d[IdxUphi] = -2 * (chs[3][1][3]*ur*uphi + chs[3][2][3]*utheta*uphi)
	return d
}
