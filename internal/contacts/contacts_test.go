package contacts

import (
	"testing"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/vecmath"
)

func TestResolveSeparatingContactsDoNothing(t *testing.T) {
	a := particle.New("a", vecmath.New(0, 0, 0), vecmath.New(0, 1, 0), 1)
	b := particle.New("b", vecmath.New(0, 1, 0), vecmath.New(0, -1, 0), 1)

	c := &Contact{First: a, Second: b, Normal: vecmath.New(0, 1, 0), Restitution: 0.5}
	vBefore := a.Vel
	c.Resolve(0.01)

	if a.Vel != vBefore {
		t.Errorf("separating contact should not apply impulse, vel changed to %v", a.Vel)
	}
}

func TestResolveRestitutionBound(t *testing.T) {
	a := particle.New("a", vecmath.Zero, vecmath.New(0, -2, 0), 1)
	c := &Contact{First: a, Second: nil, Normal: vecmath.New(0, 1, 0), Restitution: 0.5}

	sepBefore := c.separatingVelocity()
	c.Resolve(0.01)
	sepAfter := c.separatingVelocity()

	want := -0.5 * sepBefore
	if sepAfter < want-1e-9 {
		t.Errorf("expected separating velocity >= %v, got %v", want, sepAfter)
	}
}

func TestResolveAgainstImmovableGround(t *testing.T) {
	a := particle.New("ball", vecmath.New(0, -0.1, 0), vecmath.New(0, -3, 0), 1)
	c := &Contact{First: a, Second: nil, Normal: vecmath.New(0, 1, 0), Penetration: 0.1, Restitution: 0.8}

	c.Resolve(0.01)

	if a.Vel.Y <= 0 {
		t.Errorf("expected ball to rebound upward, got vel=%v", a.Vel)
	}
	if a.Pos.Y < -1e-9 {
		t.Errorf("expected interpenetration resolved (y >= 0), got %v", a.Pos.Y)
	}
}

func TestResolveZeroPenetrationLeavesPositionUnchanged(t *testing.T) {
	a := particle.New("a", vecmath.New(1, 2, 3), vecmath.Zero, 1)
	c := &Contact{First: a, Second: nil, Normal: vecmath.New(0, 1, 0), Penetration: 0, Restitution: 0}

	before := a.Pos
	c.Resolve(0.01)
	if a.Pos != before {
		t.Errorf("zero penetration should not move particle, got %v", a.Pos)
	}
}

func TestResolverMakesProgressOnAllContacts(t *testing.T) {
	a := particle.New("a", vecmath.New(0, -0.05, 0), vecmath.New(0, -1, 0), 1)
	b := particle.New("b", vecmath.New(0, -0.1, 0), vecmath.New(0, -2, 0), 1)

	buf := []*Contact{
		{First: a, Second: nil, Normal: vecmath.New(0, 1, 0), Penetration: 0.05, Restitution: 0.5},
		{First: b, Second: nil, Normal: vecmath.New(0, 1, 0), Penetration: 0.1, Restitution: 0.5},
	}

	r := NewResolver(10)
	r.ResolveContacts(buf, 2, 0.01)

	for i, c := range buf {
		if c.Penetration > 1e-6 && c.separatingVelocity() < 0 {
			t.Errorf("contact %d not resolved: penetration=%v sepVel=%v", i, c.Penetration, c.separatingVelocity())
		}
	}
}
