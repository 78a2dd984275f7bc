// Package registry holds the three parallel collections that bind
// particles to the generators acting on them: a pairwise force registry, a
// universal (self-interaction) gravity registry, and a potential registry.
package registry

import (
	"math"

	"github.com/san-kum/partsim/internal/forces"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/potentials"
	"github.com/san-kum/partsim/internal/simlog"
	"github.com/san-kum/partsim/internal/vecmath"
)

// ForceRegistry binds individual particles to individual force generators.
// Registration is identity-based: registering the same (particle,
// generator) pair twice is a no-op, logged rather than erroring.
type ForceRegistry struct {
	entries []forceEntry
	Logger  simlog.Logger
}

type forceEntry struct {
	particle  *particle.Particle
	generator forces.Generator
}

func NewForceRegistry() *ForceRegistry {
	return &ForceRegistry{Logger: simlog.NoopLogger{}}
}

// Add registers generator to act on p. A duplicate registration is ignored.
func (r *ForceRegistry) Add(p *particle.Particle, g forces.Generator) {
	for _, e := range r.entries {
		if e.particle == p && e.generator == g {
			if r.Logger != nil {
				r.Logger.Registered("force-duplicate", p.Name, "")
			}
			return
		}
	}
	r.entries = append(r.entries, forceEntry{p, g})
	if r.Logger != nil {
		r.Logger.Registered("force", p.Name, "")
	}
}

// Remove unregisters every entry matching both p and g.
func (r *ForceRegistry) Remove(p *particle.Particle, g forces.Generator) {
	out := r.entries[:0]
	for _, e := range r.entries {
		if e.particle == p && e.generator == g {
			if r.Logger != nil {
				r.Logger.Removed("force", p.Name, "")
			}
			continue
		}
		out = append(out, e)
	}
	r.entries = out
}

// Clear removes every registration without touching particle state.
func (r *ForceRegistry) Clear() { r.entries = r.entries[:0] }

// UpdateForces invokes every registered generator's UpdateForce for its
// bound particle, accumulating into that particle's net force.
func (r *ForceRegistry) UpdateForces(dt vecmath.Real) {
	for _, e := range r.entries {
		e.generator.UpdateForce(e.particle, dt)
	}
}

// UniversalGravity applies Newtonian gravity between every ordered pair of
// its registered particles. Unlike ForceRegistry, entries here are bare
// particles: the "generator" is the registry itself, applied universally.
type UniversalGravity struct {
	G         vecmath.Real
	particles []*particle.Particle
	Logger    simlog.Logger
}

func NewUniversalGravity(g vecmath.Real) *UniversalGravity {
	return &UniversalGravity{G: g, Logger: simlog.NoopLogger{}}
}

func (u *UniversalGravity) Add(p *particle.Particle) {
	for _, existing := range u.particles {
		if existing == p {
			if u.Logger != nil {
				u.Logger.Registered("gravity-duplicate", p.Name, "")
			}
			return
		}
	}
	u.particles = append(u.particles, p)
	if u.Logger != nil {
		u.Logger.Registered("gravity", p.Name, "")
	}
}

func (u *UniversalGravity) Remove(p *particle.Particle) {
	out := u.particles[:0]
	for _, existing := range u.particles {
		if existing == p {
			if u.Logger != nil {
				u.Logger.Removed("gravity", p.Name, "")
			}
			continue
		}
		out = append(out, existing)
	}
	u.particles = out
}

// ApplyGravity accumulates, onto every particle i, the force contributed by
// every other particle j. The squared separation is computed before
// normalizing a *copy* of the separation vector for direction — normalizing
// first and then squaring would make every denominator 1.
func (u *UniversalGravity) ApplyGravity() {
	n := len(u.particles)
	for i := 0; i < n; i++ {
		pi := u.particles[i]
		if !pi.HasFiniteMass() {
			continue
		}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			pj := u.particles[j]
			r := pi.Pos.Sub(pj.Pos)
			distSq := r.SquareMagnitude()
			if distSq < vecmath.Epsilon {
				continue
			}
			dir := r.Normalize()
			mag := -u.G * pi.Mass() * pj.Mass() / distSq
			pi.AddForce(dir.Scale(mag))
		}
	}
}

// PotentialEntry binds a particle to a potential generator together with
// the reference point the scalar separation is measured from.
type PotentialEntry struct {
	Particle  *particle.Particle
	Generator potentials.Generator
	Reference vecmath.Vec3
}

// pairwiseEntry binds a potential generator to a group of particles that
// interact with every other member of the same group, the way
// UniversalGravity binds a generator-less self-interaction over a flat set.
type pairwiseEntry struct {
	particles []*particle.Particle
	generator potentials.Generator
}

// PotentialRegistry binds particles to potential generators, either against
// a fixed reference point (Add) or pairwise within a group (AddPairwise),
// and drives their force contribution each step.
type PotentialRegistry struct {
	entries  []PotentialEntry
	pairwise []pairwiseEntry
	Logger   simlog.Logger
}

func NewPotentialRegistry() *PotentialRegistry {
	return &PotentialRegistry{Logger: simlog.NoopLogger{}}
}

func (r *PotentialRegistry) Add(p *particle.Particle, g potentials.Generator, reference vecmath.Vec3) {
	r.entries = append(r.entries, PotentialEntry{p, g, reference})
	if r.Logger != nil {
		r.Logger.Registered("potential", p.Name, "")
	}
}

// AddPairwise registers g to act between every ordered pair of particles,
// the way a Lennard-Jones gas interacts with every other molecule in its
// container rather than with one fixed point.
func (r *PotentialRegistry) AddPairwise(particles []*particle.Particle, g potentials.Generator) {
	r.pairwise = append(r.pairwise, pairwiseEntry{particles, g})
	if r.Logger != nil {
		r.Logger.Registered("potential-pairwise", "", "")
	}
}

// UpdatePotentials calls UpdatePotential and UpdateForce for every
// fixed-reference entry, using the distance from the entry's reference
// point as the scalar separation, then does the same for every pairwise
// group over each ordered pair of its members.
func (r *PotentialRegistry) UpdatePotentials() {
	for _, e := range r.entries {
		s := vecmath.Real(math.Abs(float64(vecmath.Distance(e.Particle.Pos, e.Reference))))
		e.Generator.UpdatePotential(e.Particle, s)
		e.Generator.UpdateForce(e.Particle, e.Reference, s)
	}

	for _, pw := range r.pairwise {
		n := len(pw.particles)
		for i := 0; i < n; i++ {
			pi := pw.particles[i]
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				pj := pw.particles[j]
				s := vecmath.Distance(pi.Pos, pj.Pos)
				pw.generator.UpdatePotential(pi, s)
				pw.generator.UpdateForce(pi, pj.Pos, s)
			}
		}
	}
}
