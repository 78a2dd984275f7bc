package metrics

import (
	"math"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/vecmath"
)

// Stability reports the fraction of observed frames in which no particle
// position component exceeded Threshold, a coarse divergence detector for
// runs where an unstable integrator step has sent a particle flying off.
type Stability struct {
	name       string
	threshold  vecmath.Real
	violations int
	samples    int
}

func NewStability(threshold vecmath.Real) *Stability {
	return &Stability{name: "stability", threshold: threshold}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(f dynamo.Frame) {
	s.samples++
	for _, p := range f.Positions {
		if math.Abs(float64(p.X)) > float64(s.threshold) ||
			math.Abs(float64(p.Y)) > float64(s.threshold) ||
			math.Abs(float64(p.Z)) > float64(s.threshold) {
			s.violations++
			return
		}
	}
}

func (s *Stability) Value() vecmath.Real {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - vecmath.Real(s.violations)/vecmath.Real(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
