package metric

import "math"

// StateDim is the dimension of a spacetime state vector: the four-position
// followed by the four-velocity.
const StateDim = 8

// Component indices into a State.
const (
	IdxT = iota
	IdxR
	IdxTheta
	IdxPhi
	IdxUt
	IdxUr
	IdxUtheta
	IdxUphi
)

// State is the combined 8-component four-position and four-velocity
// [t, r, theta, phi, dt/dtau, dr/dtau, dtheta/dtau, dphi/dtau].
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) T() float64     { return s[IdxT] }
func (s State) R() float64     { return s[IdxR] }
func (s State) Theta() float64 { return s[IdxTheta] }
func (s State) Phi() float64   { return s[IdxPhi] }

// TimeDilation returns dt/dtau, the rate of coordinate time per unit proper
// time along the worldline.
func (s State) TimeDilation() float64 { return s[IdxUt] }
