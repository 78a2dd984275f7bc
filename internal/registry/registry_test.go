package registry

import (
	"testing"

	"github.com/san-kum/partsim/internal/forces"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/potentials"
	"github.com/san-kum/partsim/internal/vecmath"
)

func TestForceRegistryDeduplicatesRegistration(t *testing.T) {
	r := NewForceRegistry()
	p := particle.New("p", vecmath.Zero, vecmath.Zero, 1)
	g := &forces.Gravity{G: vecmath.New(0, -1, 0)}

	r.Add(p, g)
	r.Add(p, g)

	r.UpdateForces(0.1)
	want := vecmath.New(0, -1, 0)
	if d := vecmath.Distance(p.NetForce(), want); d > 1e-9 {
		t.Errorf("duplicate registration should not double the force: got %v", p.NetForce())
	}
}

func TestUniversalGravitySymmetric(t *testing.T) {
	g := NewUniversalGravity(1.0)
	a := particle.New("a", vecmath.New(-1, 0, 0), vecmath.Zero, 1)
	b := particle.New("b", vecmath.New(1, 0, 0), vecmath.Zero, 1)
	g.Add(a)
	g.Add(b)

	g.ApplyGravity()

	sum := a.NetForce().Add(b.NetForce())
	if sum.Magnitude() > 1e-9 {
		t.Errorf("expected equal and opposite forces, sum=%v", sum)
	}
	if a.NetForce().X <= 0 {
		t.Errorf("expected particle a to be pulled toward b (+x), got %v", a.NetForce())
	}
}

func TestPotentialRegistryPairwiseRepelsCloseParticles(t *testing.T) {
	r := NewPotentialRegistry()
	a := particle.New("a", vecmath.New(-0.4, 0, 0), vecmath.Zero, 1)
	b := particle.New("b", vecmath.New(0.4, 0, 0), vecmath.Zero, 1)

	r.AddPairwise([]*particle.Particle{a, b}, &potentials.LennardJones{Sigma: 1.0, Epsilon: 1.0})
	r.UpdatePotentials()

	if a.NetForce().X >= 0 {
		t.Errorf("expected a to be pushed away from b (-x), got %v", a.NetForce())
	}
	if b.NetForce().X <= 0 {
		t.Errorf("expected b to be pushed away from a (+x), got %v", b.NetForce())
	}
}

func TestUniversalGravityDuplicateAddIgnored(t *testing.T) {
	g := NewUniversalGravity(1.0)
	a := particle.New("a", vecmath.New(-1, 0, 0), vecmath.Zero, 1)
	b := particle.New("b", vecmath.New(1, 0, 0), vecmath.Zero, 1)
	g.Add(a)
	g.Add(a)
	g.Add(b)

	if len(g.particles) != 2 {
		t.Errorf("expected duplicate add to be ignored, got %d particles", len(g.particles))
	}
}
