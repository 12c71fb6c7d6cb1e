// Package metric implements the Schwarzschild spacetime metric and the
// geodesic equation of a test particle moving in it.
//
// The package defines the core types of the simulation:
//
//   - [State]: 8-component four-position + four-velocity vector
//   - [ChristoffelTensor]: connection coefficients at one (r, theta)
//   - [Geodesic]: right-hand side of the geodesic ODE, d(state)/dtau
//   - [Schwarzschild]: central mass, derived horizon radius and the
//     normalized initial state
//
// # Example
//
//	m, err := metric.NewSchwarzschild(constants.SolarMass,
//		[3]float64{1.4e11, math.Pi / 2, 0},
//		[3]float64{1000, 0, 0})
//	if err != nil {
//		...
//	}
//	deriv := m.Field().Derivative(m.InitialState())
//
// A Schwarzschild instance is immutable after construction and safe to share;
// the evolving state during integration is owned by the integrator alone.
package metric
