// Package integrators holds the engine's step-advance algorithms: a
// generic Vec3 Runge-Kutta 4 for vector-valued derivative functions, and
// the velocity-Verlet step used directly by particle.Particle.Integrate.
// The shipped LennardJones potential uses its analytic derivative and does
// not call RK4.
package integrators

import "github.com/san-kum/partsim/internal/vecmath"

// Derivative evaluates dy/dt at the given state and time. Implementations
// must be pure with respect to y: RK4 never mutates the state it is handed.
type Derivative func(y vecmath.Vec3, t vecmath.Real) vecmath.Vec3

// RK4 advances y by one step of dt using the classical four-stage
// Runge-Kutta method. dt may be negative for backward integration; a NaN
// produced by f propagates through with no special handling, matching the
// source.
func RK4(f Derivative, y vecmath.Vec3, t, dt vecmath.Real) vecmath.Vec3 {
	half := dt * 0.5

	k1 := f(y, t)
	k2 := f(y.Add(k1.Scale(half)), t+half)
	k3 := f(y.Add(k2.Scale(half)), t+half)
	k4 := f(y.Add(k3.Scale(dt)), t+dt)

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return y.Add(sum.Scale(dt / 6))
}
