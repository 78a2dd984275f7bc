package metrics

import (
	"testing"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/vecmath"
)

func TestEnergyAccumulates(t *testing.T) {
	// single particle, mass 2 (inverseMass 0.5), velocity (1,0,0) -> KE = 0.5*2*1 = 1
	m := NewEnergy([]vecmath.Real{0.5})

	f := dynamo.Frame{
		Positions:  []vecmath.Vec3{{}},
		Velocities: []vecmath.Vec3{{X: 1}},
	}

	m.Observe(f)
	if got := m.Value(); got != 1 {
		t.Errorf("expected energy 1, got %v", got)
	}

	m.Reset()
	if got := m.Value(); got != 0 {
		t.Errorf("expected zero energy after reset, got %v", got)
	}
}

func TestEnergySkipsImmovable(t *testing.T) {
	m := NewEnergy([]vecmath.Real{0}) // immovable: inverse mass zero

	f := dynamo.Frame{
		Positions:  []vecmath.Vec3{{}},
		Velocities: []vecmath.Vec3{{X: 5}},
	}
	m.Observe(f)
	if got := m.Value(); got != 0 {
		t.Errorf("expected zero energy for immovable particle, got %v", got)
	}
}

func TestEnergyDriftZeroForConstantEnergy(t *testing.T) {
	ed := NewEnergyDrift([]vecmath.Real{1})
	f := dynamo.Frame{
		Positions:  []vecmath.Vec3{{}},
		Velocities: []vecmath.Vec3{{X: 1}},
	}
	ed.Observe(f)
	ed.Observe(f)
	ed.Observe(f)

	if got := ed.Value(); got != 0 {
		t.Errorf("expected zero drift for constant energy, got %v", got)
	}
}
