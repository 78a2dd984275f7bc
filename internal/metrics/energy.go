package metrics

import (
	"math"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/vecmath"
)

// Energy accumulates the mean total (kinetic) energy observed across a
// run's frames, computed by summing 0.5*m*|v|^2 per particle using the
// per-particle masses supplied at construction.
type Energy struct {
	name         string
	inverseMasses []vecmath.Real
	samples      int
	totalEnergy  vecmath.Real
}

// NewEnergy builds an Energy metric for a system whose particles have the
// given inverse masses, in world registration order.
func NewEnergy(inverseMasses []vecmath.Real) *Energy {
	return &Energy{name: "energy", inverseMasses: inverseMasses}
}

func (e *Energy) Name() string { return e.name }

// Observe folds one frame's kinetic energy into the running total.
func (e *Energy) Observe(f dynamo.Frame) {
	if len(f.Velocities) != len(e.inverseMasses) {
		return
	}
	ke := vecmath.Real(0)
	for i, v := range f.Velocities {
		inv := e.inverseMasses[i]
		if inv <= 0 {
			continue
		}
		ke += 0.5 * (1 / inv) * v.SquareMagnitude()
	}
	e.totalEnergy += ke
	e.samples++
}

func (e *Energy) Value() vecmath.Real {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / vecmath.Real(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the maximum relative deviation of total energy from
// its value on the first observed frame, useful for judging an
// integrator's long-run conservation behavior.
type EnergyDrift struct {
	name          string
	inverseMasses []vecmath.Real
	initialEnergy vecmath.Real
	maxDrift      vecmath.Real
	samples       int
}

func NewEnergyDrift(inverseMasses []vecmath.Real) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", inverseMasses: inverseMasses}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f dynamo.Frame) {
	if len(f.Velocities) != len(e.inverseMasses) {
		return
	}
	energy := vecmath.Real(0)
	for i, v := range f.Velocities {
		inv := e.inverseMasses[i]
		if inv <= 0 {
			continue
		}
		energy += 0.5 * (1 / inv) * v.SquareMagnitude()
	}

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := vecmath.Real(math.Abs(float64(energy-e.initialEnergy) / float64(e.initialEnergy)))
		if drift > e.maxDrift {
			e.maxDrift = drift
		}
	}
}

func (e *EnergyDrift) Value() vecmath.Real { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
