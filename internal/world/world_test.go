package world

import (
	"context"
	"testing"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/forces"
	"github.com/san-kum/partsim/internal/links"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/potentials"
	"github.com/san-kum/partsim/internal/vecmath"
)

func TestFreeFallUnderWorldGravity(t *testing.T) {
	w := New(8, 4)
	ball := particle.New("ball", vecmath.New(0, 10, 0), vecmath.Zero, 1)
	w.AddParticle(ball)
	w.Forces().Add(ball, &forces.Gravity{G: vecmath.New(0, -9.81, 0)})

	for i := 0; i < 100; i++ {
		w.RunPhysics(0.01)
	}

	if ball.Vel.Y >= 0 {
		t.Errorf("expected downward velocity after free fall, got %v", ball.Vel.Y)
	}
}

func TestGroundBounceRebounds(t *testing.T) {
	w := New(8, 0)
	ball := particle.New("ball", vecmath.New(0, 0.5, 0), vecmath.New(0, -5, 0), 1)
	w.AddParticle(ball)
	w.Forces().Add(ball, &forces.Gravity{G: vecmath.New(0, -9.81, 0)})

	gc := links.NewGroundContacts(0.6)
	gc.Add(ball)
	w.AddContactGenerator(gc)

	minY := ball.Pos.Y
	rebounded := false
	for i := 0; i < 500; i++ {
		w.RunPhysics(0.01)
		if ball.Pos.Y < minY {
			minY = ball.Pos.Y
		}
		if ball.Pos.Y > minY+0.1 {
			rebounded = true
		}
	}

	if !rebounded {
		t.Errorf("expected ball to rebound off the ground, lowest y=%v", minY)
	}

	if ball.Pos.Y < -0.5 {
		t.Errorf("expected ball to stay near ground after bouncing, got y=%v", ball.Pos.Y)
	}
}

func TestRodConstraintHoldsSeparation(t *testing.T) {
	w := New(4, 0)
	anchor := particle.New("anchor", vecmath.Zero, vecmath.Zero, 0)
	bob := particle.New("bob", vecmath.New(1, 0, 0), vecmath.New(0, 3, 0), 1)
	w.AddParticle(anchor)
	w.AddParticle(bob)

	rod := &links.Rod{Link: links.Link{ParticleA: anchor, ParticleB: bob}, Length: 1}
	w.AddContactGenerator(rod)

	for i := 0; i < 200; i++ {
		w.RunPhysics(0.01)
	}

	sep := vecmath.Distance(anchor.Pos, bob.Pos)
	if sep > 1.01 || sep < 0.5 {
		t.Errorf("expected rod to approximately hold length 1, got %v", sep)
	}
}

func TestContactBufferExhaustionDropsExcessContacts(t *testing.T) {
	w := New(1, 4)
	a := particle.New("a", vecmath.New(0, -0.5, 0), vecmath.Zero, 1)
	b := particle.New("b", vecmath.New(1, -0.5, 0), vecmath.Zero, 1)
	w.AddParticle(a)
	w.AddParticle(b)

	gc := links.NewGroundContacts(0.5)
	gc.Add(a)
	gc.Add(b)
	w.AddContactGenerator(gc)

	w.RunPhysics(0.01)
	if w.LastUsedContacts() != 1 {
		t.Errorf("expected buffer to cap at 1, got %d", w.LastUsedContacts())
	}
}

func TestRunSamplesEveryStep(t *testing.T) {
	w := New(4, 0)
	p := particle.New("p", vecmath.Zero, vecmath.New(1, 0, 0), 1)
	w.AddParticle(p)

	result, err := w.Run(context.Background(), dynamo.Config{Dt: 0.1, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Frames) != 11 { // initial + 10 steps
		t.Errorf("expected 11 frames, got %d", len(result.Frames))
	}
}

func TestPotentialRegistryDrivesRepulsionDuringRunPhysics(t *testing.T) {
	w := New(4, 0)
	a := particle.New("a", vecmath.New(-0.4, 0, 0), vecmath.Zero, 1)
	b := particle.New("b", vecmath.New(0.4, 0, 0), vecmath.Zero, 1)
	w.AddParticle(a)
	w.AddParticle(b)
	w.Potentials().AddPairwise(w.Particles(), &potentials.LennardJones{Sigma: 1.0, Epsilon: 1.0})

	w.RunPhysics(0.001)

	if a.Vel.X >= 0 {
		t.Errorf("expected a pushed in -x, got vel=%v", a.Vel)
	}
	if b.Vel.X <= 0 {
		t.Errorf("expected b pushed in +x, got vel=%v", b.Vel)
	}
}

func TestCircularOrbitStaysBounded(t *testing.T) {
	w := New(4, 0)
	center := particle.New("star", vecmath.Zero, vecmath.Zero, 0)
	planet := particle.New("planet", vecmath.New(1, 0, 0), vecmath.New(0, 0, 1), 1)
	w.AddParticle(center)
	w.AddParticle(planet)

	w.Forces().Add(planet, &forces.PointGravity{Origin: vecmath.Zero, SourceMass: 1 / 6.67408e-11})

	maxR := vecmath.Real(0)
	for i := 0; i < 1000; i++ {
		w.RunPhysics(0.01)
		r := planet.Pos.Magnitude()
		if r > maxR {
			maxR = r
		}
	}

	if maxR > 3 {
		t.Errorf("expected orbit to stay roughly bounded, max radius was %v", maxR)
	}
}
