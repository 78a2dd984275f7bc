package integrators

import "github.com/san-kum/partsim/internal/vecmath"

// VerletStep advances position and velocity by dt assuming the acceleration
// a is constant across the step:
//
//	x' = x + v*dt + 0.5*a*dt^2
//	v' = v + a*dt
//
// This is the update particle.Particle.Integrate performs in place; it is
// exposed standalone so tests and alternative callers can exercise it
// without a full Particle.
func VerletStep(pos, vel, acc vecmath.Vec3, dt vecmath.Real) (newPos, newVel vecmath.Vec3) {
	newPos = pos.Add(vel.Scale(dt)).Add(acc.Scale(0.5 * dt * dt))
	newVel = vel.Add(acc.Scale(dt))
	return
}
