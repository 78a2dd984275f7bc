// Package forces provides the polymorphic force generators that contribute
// to a particle's net-force accumulator each step. Every generator reads
// particle state and calls Particle.AddForce; none mutate position,
// velocity or any accumulator but the force one.
package forces

import (
	"math"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/vecmath"
)

// Generator contributes a force to p for one step of duration dt.
type Generator interface {
	UpdateForce(p *particle.Particle, dt vecmath.Real)
}

// Gravity applies a constant acceleration (e.g. (0, -9.81, 0)) scaled by
// mass. Immovable particles are skipped silently.
type Gravity struct {
	G vecmath.Vec3
}

func (g *Gravity) UpdateForce(p *particle.Particle, dt vecmath.Real) {
	if !p.HasFiniteMass() {
		return
	}
	p.AddForce(g.G.Scale(p.Mass()))
}

// pointGravityConstant is Newton's gravitational constant, matching the
// value used by the source's point-mass gravity generator.
const pointGravityConstant = 6.67408e-11

// PointGravity pulls a particle toward a fixed source mass located at
// Origin, following the inverse-square law.
type PointGravity struct {
	Origin     vecmath.Vec3
	SourceMass vecmath.Real
}

func (g *PointGravity) UpdateForce(p *particle.Particle, dt vecmath.Real) {
	if !p.HasFiniteMass() {
		return
	}
	r := p.Pos.Sub(g.Origin)
	distSq := r.SquareMagnitude()
	if distSq < vecmath.Epsilon {
		return
	}
	dir := r.Normalize()
	mag := -pointGravityConstant * p.Mass() * g.SourceMass / distSq
	p.AddForce(dir.Scale(mag))
}

// Drag applies quadratic-plus-linear air resistance opposing velocity.
type Drag struct {
	K1, K2 vecmath.Real
}

func (d *Drag) UpdateForce(p *particle.Particle, dt vecmath.Real) {
	speed := p.Vel.Magnitude()
	if speed < vecmath.Epsilon {
		return
	}
	dragCoeff := d.K1*speed + d.K2*speed*speed
	dir := p.Vel.Normalize()
	p.AddForce(dir.Scale(-dragCoeff))
}

// Uplift applies a constant upward force to any particle within Radius of
// Origin in the X-Z plane, modeling a thermal column.
type Uplift struct {
	Origin vecmath.Vec3
	Radius vecmath.Real
}

func (u *Uplift) UpdateForce(p *particle.Particle, dt vecmath.Real) {
	dx := p.Pos.X - u.Origin.X
	dz := p.Pos.Z - u.Origin.Z
	if math.Sqrt(float64(dx*dx+dz*dz)) >= float64(u.Radius) {
		return
	}
	p.AddForce(vecmath.New(0, 1, 0))
}

// Spring models a Hookean spring between p and Other, pulling or pushing p
// toward RestLength separation. It does not register itself on Other; the
// caller must add a second Spring the other way for a symmetric pair.
type Spring struct {
	Other      *particle.Particle
	K          vecmath.Real
	RestLength vecmath.Real
}

func (s *Spring) UpdateForce(p *particle.Particle, dt vecmath.Real) {
	d := p.Pos.Sub(s.Other.Pos)
	length := d.Magnitude()
	if length < vecmath.Epsilon {
		return
	}
	stretch := length - s.RestLength
	mag := -s.K * stretch
	p.AddForce(d.Normalize().Scale(mag))
}

// AnchoredSpring pulls p toward a fixed Anchor point. Once the spring is
// stretched beyond ElasticLimit, the generated force is reduced to a
// quarter of the computed magnitude: this preserves stability when a
// simulation drags a particle far past its intended range instead of
// letting the restoring force blow up.
type AnchoredSpring struct {
	Anchor       vecmath.Vec3
	K            vecmath.Real
	RestLength   vecmath.Real
	ElasticLimit vecmath.Real
}

func (s *AnchoredSpring) UpdateForce(p *particle.Particle, dt vecmath.Real) {
	d := p.Pos.Sub(s.Anchor)
	length := d.Magnitude()
	if length < vecmath.Epsilon {
		return
	}
	stretch := length - s.RestLength
	mag := -s.K * stretch
	if length >= s.ElasticLimit {
		mag *= 0.25
	}
	p.AddForce(d.Normalize().Scale(mag))
}

// Bungee behaves like Spring but only pulls, never pushes: below
// RestLength separation it contributes nothing.
type Bungee struct {
	Other      *particle.Particle
	K          vecmath.Real
	RestLength vecmath.Real
}

func (b *Bungee) UpdateForce(p *particle.Particle, dt vecmath.Real) {
	d := p.Pos.Sub(b.Other.Pos)
	length := d.Magnitude()
	if length <= b.RestLength {
		return
	}
	mag := -b.K * (length - b.RestLength)
	p.AddForce(d.Normalize().Scale(mag))
}

// FakeSpring is a closed-form substitute for a stiff numerical spring: it
// computes the analytic position of an underdamped harmonic oscillator
// anchored at Anchor and applies the force that would have produced that
// displacement, avoiding the instability a real spring with a large K would
// introduce into a fixed-step integrator.
type FakeSpring struct {
	Anchor  vecmath.Vec3
	K       vecmath.Real
	Damping vecmath.Real
}

func (f *FakeSpring) UpdateForce(p *particle.Particle, dt vecmath.Real) {
	if !p.HasFiniteMass() {
		return
	}
	gamma := 0.5 * math.Sqrt(float64(4*f.K-f.Damping*f.Damping))
	if gamma == 0 {
		return
	}

	position := p.Pos.Sub(f.Anchor)
	c := position.Scale(f.Damping / vecmath.Real(2*gamma)).Add(p.Vel.Scale(1 / vecmath.Real(gamma)))

	target := position.Scale(vecmath.Real(math.Cos(float64(gamma) * float64(dt)))).
		Add(c.Scale(vecmath.Real(math.Sin(float64(gamma) * float64(dt)))))
	target.ScaleIn(vecmath.Real(math.Exp(-0.5 * float64(f.Damping) * float64(dt))))

	accel := target.Sub(position).Scale(1 / (dt * dt)).Sub(p.Vel.Scale(dt))
	p.AddForce(accel.Scale(p.Mass()))
}
