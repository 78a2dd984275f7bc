// Package scenario builds a runnable world.World from a config.Config,
// resolving named particle references into the live pointers the
// registries and link generators need.
package scenario

import (
	"fmt"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/forces"
	"github.com/san-kum/partsim/internal/links"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/potentials"
	"github.com/san-kum/partsim/internal/vecmath"
	"github.com/san-kum/partsim/internal/world"
)

// Built holds the constructed world plus a lookup from configured name to
// live particle, so a caller can drive or sample specific particles after
// the scenario is assembled.
type Built struct {
	World     *world.World
	Particles map[string]*particle.Particle
}

// Build constructs a world.World from cfg, wiring every declared force and
// link by resolving particle names into pointers.
func Build(cfg *config.Config) (*Built, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	maxContacts := cfg.MaxContacts
	if maxContacts <= 0 {
		maxContacts = config.DefaultMaxContacts
	}

	w := world.New(maxContacts, cfg.Iterations)
	byName := make(map[string]*particle.Particle, len(cfg.Particles))

	for _, pc := range cfg.Particles {
		p := particle.New(
			pc.Name,
			vecmath.New(vecmath.Real(pc.Pos[0]), vecmath.Real(pc.Pos[1]), vecmath.Real(pc.Pos[2])),
			vecmath.New(vecmath.Real(pc.Vel[0]), vecmath.Real(pc.Vel[1]), vecmath.Real(pc.Vel[2])),
			vecmath.Real(pc.InverseMass),
		)
		p.Damping = vecmath.Real(pc.Damping)
		byName[pc.Name] = p
		w.AddParticle(p)
	}

	for _, fc := range cfg.Forces {
		if err := bindForce(w, byName, fc); err != nil {
			return nil, err
		}
	}

	for _, lc := range cfg.Links {
		if err := bindLink(w, byName, lc); err != nil {
			return nil, err
		}
	}

	for _, pc := range cfg.Potentials {
		if err := bindPotential(w, byName, pc); err != nil {
			return nil, err
		}
	}

	if cfg.Ground != nil {
		gc := links.NewGroundContacts(vecmath.Real(cfg.Ground.Restitution))
		for _, p := range byName {
			gc.Add(p)
		}
		w.AddContactGenerator(gc)
	}

	return &Built{World: w, Particles: byName}, nil
}

func vec3From(arr [3]float64) vecmath.Vec3 {
	return vecmath.New(vecmath.Real(arr[0]), vecmath.Real(arr[1]), vecmath.Real(arr[2]))
}

func bindForce(w *world.World, byName map[string]*particle.Particle, fc config.ForceConfig) error {
	p, ok := byName[fc.Particle]
	if !ok {
		return fmt.Errorf("scenario: force %q references unknown particle %q", fc.Kind, fc.Particle)
	}

	switch fc.Kind {
	case "gravity":
		gv := vecmath.New(0, -9.81, 0)
		if fc.Vector != [3]float64{} {
			gv = vec3From(fc.Vector)
		}
		w.Forces().Add(p, &forces.Gravity{G: gv})

	case "point_gravity":
		w.Forces().Add(p, &forces.PointGravity{
			Origin:     vec3From(fc.Origin),
			SourceMass: vecmath.Real(fc.SourceMass),
		})

	case "drag":
		w.Forces().Add(p, &forces.Drag{K1: vecmath.Real(fc.K1), K2: vecmath.Real(fc.K2)})

	case "uplift":
		w.Forces().Add(p, &forces.Uplift{Origin: vec3From(fc.Origin), Radius: vecmath.Real(fc.Radius)})

	case "spring":
		other, ok := byName[fc.Other]
		if !ok {
			return fmt.Errorf("scenario: spring force references unknown other particle %q", fc.Other)
		}
		w.Forces().Add(p, &forces.Spring{Other: other, K: vecmath.Real(fc.K), RestLength: vecmath.Real(fc.RestLength)})

	case "anchored_spring":
		w.Forces().Add(p, &forces.AnchoredSpring{
			Anchor:       vec3From(fc.Anchor),
			K:            vecmath.Real(fc.K),
			RestLength:   vecmath.Real(fc.RestLength),
			ElasticLimit: vecmath.Real(fc.ElasticLimit),
		})

	case "bungee":
		other, ok := byName[fc.Other]
		if !ok {
			return fmt.Errorf("scenario: bungee force references unknown other particle %q", fc.Other)
		}
		w.Forces().Add(p, &forces.Bungee{Other: other, K: vecmath.Real(fc.K), RestLength: vecmath.Real(fc.RestLength)})

	case "fake_spring":
		w.Forces().Add(p, &forces.FakeSpring{Anchor: vec3From(fc.Anchor), K: vecmath.Real(fc.K), Damping: vecmath.Real(fc.Damping)})

	case "universal_gravity":
		w.Gravity().Add(p)

	default:
		return fmt.Errorf("scenario: unknown force kind %q", fc.Kind)
	}
	return nil
}

func bindPotential(w *world.World, byName map[string]*particle.Particle, pc config.PotentialConfig) error {
	var group []*particle.Particle
	if len(pc.Particles) == 0 {
		group = make([]*particle.Particle, 0, len(byName))
		for _, p := range byName {
			group = append(group, p)
		}
	} else {
		group = make([]*particle.Particle, 0, len(pc.Particles))
		for _, n := range pc.Particles {
			p, ok := byName[n]
			if !ok {
				return fmt.Errorf("scenario: potential %q references unknown particle %q", pc.Kind, n)
			}
			group = append(group, p)
		}
	}

	switch pc.Kind {
	case "lennard_jones":
		w.Potentials().AddPairwise(group, &potentials.LennardJones{
			Sigma:   vecmath.Real(pc.Sigma),
			Epsilon: vecmath.Real(pc.Epsilon),
		})
	default:
		return fmt.Errorf("scenario: unknown potential kind %q", pc.Kind)
	}
	return nil
}

func bindLink(w *world.World, byName map[string]*particle.Particle, lc config.LinkConfig) error {
	a, ok := byName[lc.ParticleA]
	if !ok {
		return fmt.Errorf("scenario: link references unknown particle %q", lc.ParticleA)
	}
	b, ok := byName[lc.ParticleB]
	if !ok {
		return fmt.Errorf("scenario: link references unknown particle %q", lc.ParticleB)
	}

	switch lc.Kind {
	case "cable":
		w.AddContactGenerator(&links.Cable{
			Link:        links.Link{ParticleA: a, ParticleB: b},
			MaxLength:   vecmath.Real(lc.MaxLength),
			Restitution: vecmath.Real(lc.Restitution),
		})
	case "rod":
		w.AddContactGenerator(&links.Rod{
			Link:   links.Link{ParticleA: a, ParticleB: b},
			Length: vecmath.Real(lc.Length),
		})
	default:
		return fmt.Errorf("scenario: unknown link kind %q", lc.Kind)
	}
	return nil
}
