// Package transforms provides spherical/Cartesian coordinate and velocity
// conversions for interpreting trajectories geometrically.
package transforms

import "math"

// SphericalToCartesian converts a spherical position (r, theta, phi) to
// Cartesian (x, y, z). Theta is the polar angle measured from the z-axis.
func SphericalToCartesian(r, theta, phi float64) (x, y, z float64) {
	sinTheta := math.Sin(theta)
	x = r * sinTheta * math.Cos(phi)
	y = r * sinTheta * math.Sin(phi)
	z = r * math.Cos(theta)
	return x, y, z
}

// SphericalToCartesianVel converts a spherical position and velocity to
// Cartesian position and velocity using the spherical-to-Cartesian Jacobian.
func SphericalToCartesianVel(r, theta, phi, vr, vtheta, vphi float64) (x, y, z, vx, vy, vz float64) {
	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	x = r * sinTheta * cosPhi
	y = r * sinTheta * sinPhi
	z = r * cosTheta

	vx = sinTheta*cosPhi*vr - r*sinTheta*sinPhi*vphi + r*cosTheta*cosPhi*vtheta
	vy = sinTheta*sinPhi*vr + r*cosTheta*sinPhi*vtheta + r*sinTheta*cosPhi*vphi
	vz = cosTheta*vr - r*sinTheta*vtheta
	return x, y, z, vx, vy, vz
}

// CartesianToSpherical is the inverse of SphericalToCartesian. For points off
// the z-axis it returns r > 0, theta in (0, pi) and phi in (-pi, pi].
func CartesianToSpherical(x, y, z float64) (r, theta, phi float64) {
	r = math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return 0, 0, 0
	}
	theta = math.Acos(z / r)
	phi = math.Atan2(y, x)
	return r, theta, phi
}
