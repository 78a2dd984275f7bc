package integrators

import (
	"testing"

	"github.com/san-kum/partsim/internal/vecmath"
)

func TestRK4ExactOnConstantDerivative(t *testing.T) {
	k := vecmath.New(1, 2, 3)
	f := func(y vecmath.Vec3, t vecmath.Real) vecmath.Vec3 { return k }

	y0 := vecmath.New(0, 0, 0)
	dt := vecmath.Real(0.1)
	got := RK4(f, y0, 0, dt)
	want := y0.Add(k.Scale(dt))

	if d := vecmath.Distance(got, want); d > 1000*vecmath.Epsilon {
		t.Errorf("expected %v, got %v (diff %v)", want, got, d)
	}
}

func TestRK4BackwardIntegration(t *testing.T) {
	k := vecmath.New(1, 0, 0)
	f := func(y vecmath.Vec3, t vecmath.Real) vecmath.Vec3 { return k }

	y0 := vecmath.New(5, 0, 0)
	got := RK4(f, y0, 0, -1)
	want := vecmath.New(4, 0, 0)

	if d := vecmath.Distance(got, want); d > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestVerletStepFreeFall(t *testing.T) {
	pos := vecmath.New(0, 10, 0)
	vel := vecmath.Zero
	acc := vecmath.New(0, -9.81, 0)
	dt := vecmath.Real(1)

	newPos, newVel := VerletStep(pos, vel, acc, dt)

	wantY := vecmath.Real(10 - 0.5*9.81)
	if d := newPos.Y - wantY; d > 1e-9 || d < -1e-9 {
		t.Errorf("expected y=%v, got %v", wantY, newPos.Y)
	}
	if d := newVel.Y - (-9.81); d > 1e-9 || d < -1e-9 {
		t.Errorf("expected vy=-9.81, got %v", newVel.Y)
	}
}
