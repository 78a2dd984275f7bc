// Package particle defines the engine's sole state entity: a point mass
// carrying position, velocity, acceleration and force/potential
// accumulators, integrated by velocity Verlet.
package particle

import (
	"fmt"

	"github.com/san-kum/partsim/internal/integrators"
	"github.com/san-kum/partsim/internal/simlog"
	"github.com/san-kum/partsim/internal/vecmath"
)

// Particle is a point mass. Mass is stored as its reciprocal: zero denotes
// an immovable (infinite-mass) body, which keeps every division in the
// integrator and the contact resolver free of zero-mass special cases.
type Particle struct {
	Name string

	Pos vecmath.Vec3
	Vel vecmath.Vec3
	Acc vecmath.Vec3

	// Damping is retained for generators that want to report it, but the
	// primary Integrate path does not apply it automatically — dissipation
	// is modeled explicitly via forces.Drag instead, to avoid double
	// counting. See SPEC_FULL.md §4.3.
	Damping vecmath.Real

	inverseMass vecmath.Real

	netForce     vecmath.Vec3
	netPotential vecmath.Real

	Logger simlog.Logger
}

// New constructs a particle with the given inverse mass. A zero inverseMass
// marks the particle immovable.
func New(name string, pos, vel vecmath.Vec3, inverseMass vecmath.Real) *Particle {
	if inverseMass < 0 {
		panic(fmt.Sprintf("particle %q: negative inverse mass %v", name, inverseMass))
	}
	return &Particle{
		Name:        name,
		Pos:         pos,
		Vel:         vel,
		inverseMass: inverseMass,
		Logger:      simlog.NoopLogger{},
	}
}

// InverseMass returns 1/mass, or zero for an immovable particle.
func (p *Particle) InverseMass() vecmath.Real { return p.inverseMass }

// SetInverseMass validates and stores the reciprocal mass directly.
func (p *Particle) SetInverseMass(inv vecmath.Real) {
	if inv < 0 {
		panic(fmt.Sprintf("particle %q: negative inverse mass %v", p.Name, inv))
	}
	p.inverseMass = inv
}

// Mass returns the particle's mass. SetMass panics on a zero argument: use
// SetInverseMass(0) to make a particle immovable instead, mirroring the
// source's assertion that mass is never literally zero.
func (p *Particle) Mass() vecmath.Real {
	if p.inverseMass <= 0 {
		return vecmath.MaxReal
	}
	return 1 / p.inverseMass
}

func (p *Particle) SetMass(mass vecmath.Real) {
	if mass == 0 {
		panic(fmt.Sprintf("particle %q: mass must not be zero; use SetInverseMass(0) for immovable", p.Name))
	}
	p.inverseMass = 1 / mass
}

// HasFiniteMass reports whether this particle can be moved by a force.
func (p *Particle) HasFiniteMass() bool { return p.inverseMass > 0 }

// AddForce accumulates f into the net force for the current step.
func (p *Particle) AddForce(f vecmath.Vec3) { p.netForce.AddIn(f) }

// AddPotential accumulates u into the net scalar potential for the current step.
func (p *Particle) AddPotential(u vecmath.Real) { p.netPotential += u }

func (p *Particle) ClearNetForce()     { p.netForce = vecmath.Zero }
func (p *Particle) ClearNetPotential() { p.netPotential = 0 }

func (p *Particle) NetForce() vecmath.Vec3      { return p.netForce }
func (p *Particle) NetPotential() vecmath.Real { return p.netPotential }

// KineticEnergy returns 0.5 * mass * |v|^2.
func (p *Particle) KineticEnergy() vecmath.Real {
	return 0.5 * p.Mass() * p.Vel.SquareMagnitude()
}

// Integrate advances the particle by one velocity-Verlet step of duration
// dt, then clears both accumulators. dt must be strictly positive; zero or
// negative dt is a programmer error.
//
// Immovable particles (inverseMass == 0) are left untouched — not even
// their accumulators are cleared, matching the source's early return, since
// nothing was ever added to them in the first place by a well-behaved
// generator.
func (p *Particle) Integrate(dt vecmath.Real) {
	if dt <= 0 {
		panic(fmt.Sprintf("particle %q: Integrate called with non-positive dt=%v", p.Name, dt))
	}
	if p.inverseMass <= 0 {
		return
	}

	p.Acc.AddScaled(p.netForce, p.inverseMass)

	// velocity Verlet, assuming acceleration constant across the step
	p.Pos, p.Vel = integrators.VerletStep(p.Pos, p.Vel, p.Acc, dt)

	p.Acc = vecmath.Zero
	p.ClearNetForce()
	p.ClearNetPotential()

	if p.Logger != nil {
		p.Logger.Integrated(p.Name, float64(dt))
	}
}

// Equal compares two particles' kinematic and scalar fields within eps.
// Equality is for test assertions only; registries compare by identity.
func (p *Particle) Equal(other *Particle, eps vecmath.Real) bool {
	near := func(a, b vecmath.Real) bool {
		d := a - b
		if d < 0 {
			d = -d
		}
		return d < eps
	}
	nearVec := func(a, b vecmath.Vec3) bool {
		return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
	}
	return nearVec(p.Pos, other.Pos) &&
		nearVec(p.Vel, other.Vel) &&
		nearVec(p.Acc, other.Acc) &&
		near(p.Damping, other.Damping) &&
		near(p.inverseMass, other.inverseMass)
}
