package forces

import (
	"testing"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/vecmath"
)

func TestGravitySkipsImmovable(t *testing.T) {
	p := particle.New("wall", vecmath.Zero, vecmath.Zero, 0)
	g := &Gravity{G: vecmath.New(0, -9.81, 0)}
	g.UpdateForce(p, 0.1)

	if p.NetForce() != vecmath.Zero {
		t.Errorf("expected no force on immovable particle, got %v", p.NetForce())
	}
}

func TestGravityScalesWithMass(t *testing.T) {
	p := particle.New("p", vecmath.Zero, vecmath.Zero, 0.5) // mass 2
	g := &Gravity{G: vecmath.New(0, -9.81, 0)}
	g.UpdateForce(p, 0.1)

	want := vecmath.New(0, -19.62, 0)
	if d := vecmath.Distance(p.NetForce(), want); d > 1e-9 {
		t.Errorf("expected %v, got %v", want, p.NetForce())
	}
}

func TestDragZeroAtRest(t *testing.T) {
	p := particle.New("p", vecmath.Zero, vecmath.Zero, 1)
	d := &Drag{K1: 1, K2: 1}
	d.UpdateForce(p, 0.1)

	if p.NetForce() != vecmath.Zero {
		t.Errorf("expected zero drag at rest, got %v", p.NetForce())
	}
}

func TestDragOpposesVelocity(t *testing.T) {
	p := particle.New("p", vecmath.Zero, vecmath.New(2, 0, 0), 1)
	d := &Drag{K1: 1, K2: 0}
	d.UpdateForce(p, 0.1)

	if p.NetForce().X >= 0 {
		t.Errorf("expected drag to oppose +x velocity, got %v", p.NetForce())
	}
}

func TestSpringPullsTowardRestLength(t *testing.T) {
	anchor := particle.New("anchor", vecmath.Zero, vecmath.Zero, 0)
	p := particle.New("bob", vecmath.New(2, 0, 0), vecmath.Zero, 1)

	s := &Spring{Other: anchor, K: 1, RestLength: 1}
	s.UpdateForce(p, 0.1)

	// stretched beyond rest length: force should pull back toward anchor (negative x)
	if p.NetForce().X >= 0 {
		t.Errorf("expected restoring force toward anchor, got %v", p.NetForce())
	}
}

func TestBungeeInactiveBelowRestLength(t *testing.T) {
	anchor := particle.New("anchor", vecmath.Zero, vecmath.Zero, 0)
	p := particle.New("bob", vecmath.New(0.5, 0, 0), vecmath.Zero, 1)

	b := &Bungee{Other: anchor, K: 1, RestLength: 1}
	b.UpdateForce(p, 0.1)

	if p.NetForce() != vecmath.Zero {
		t.Errorf("expected no bungee force within rest length, got %v", p.NetForce())
	}
}

func TestAnchoredSpringElasticLimitReducesForce(t *testing.T) {
	anchor := vecmath.New(0, 0, 0)

	normal := particle.New("p1", vecmath.New(2, 0, 0), vecmath.Zero, 1)
	s1 := &AnchoredSpring{Anchor: anchor, K: 10, RestLength: 1, ElasticLimit: 100}
	s1.UpdateForce(normal, 0.1)

	stretched := particle.New("p2", vecmath.New(2, 0, 0), vecmath.Zero, 1)
	s2 := &AnchoredSpring{Anchor: anchor, K: 10, RestLength: 1, ElasticLimit: 1.5}
	s2.UpdateForce(stretched, 0.1)

	if stretched.NetForce().Magnitude() >= normal.NetForce().Magnitude() {
		t.Errorf("expected reduced force beyond elastic limit: normal=%v stretched=%v",
			normal.NetForce(), stretched.NetForce())
	}
}
