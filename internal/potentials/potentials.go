// Package potentials provides scalar-potential generators that contribute
// to a particle's net-potential accumulator and, where analytically
// tractable, a corresponding force derived from that potential.
package potentials

import (
	"math"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/vecmath"
)

// Generator contributes a scalar potential and its derived force given a
// scalar separation s (typically the distance between a particle and some
// reference point).
type Generator interface {
	UpdatePotential(p *particle.Particle, s vecmath.Real)
	UpdateForce(p *particle.Particle, reference vecmath.Vec3, s vecmath.Real)
}

// LennardJones models the classic 12-6 interatomic potential:
//
//	U(r) = 4*Epsilon * ((Sigma/r)^12 - (Sigma/r)^6)
//
// The force uses the analytic derivative dU/dr rather than a numerical
// difference, which is unstable near r ~= Sigma where U changes sign.
type LennardJones struct {
	Sigma   vecmath.Real
	Epsilon vecmath.Real
}

func (lj *LennardJones) UpdatePotential(p *particle.Particle, r vecmath.Real) {
	if r < vecmath.Epsilon {
		return
	}
	sr6 := math.Pow(float64(lj.Sigma/r), 6)
	u := 4 * float64(lj.Epsilon) * (sr6*sr6 - sr6)
	p.AddPotential(vecmath.Real(u))
}

// UpdateForce applies the radial force derived from dU/dr, directed along
// the unit vector from reference to p.Pos.
func (lj *LennardJones) UpdateForce(p *particle.Particle, reference vecmath.Vec3, r vecmath.Real) {
	if r < vecmath.Epsilon || !p.HasFiniteMass() {
		return
	}
	sr6 := math.Pow(float64(lj.Sigma/r), 6)
	dUdr := 24 * float64(lj.Epsilon) / float64(r) * sr6 * (1 - 2*sr6)

	dir := p.Pos.Sub(reference).Normalize()
	// Force is the negative gradient of U; dU/dr is the rate of change of
	// U with respect to outward radius, so the force magnitude is -dUdr.
	p.AddForce(dir.Scale(vecmath.Real(-dUdr)))
}
