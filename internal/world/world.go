// Package world provides the conductor that ties registries, particles
// and contact generators together into a single stepping physics loop.
package world

import (
	"context"

	"github.com/san-kum/partsim/internal/contacts"
	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/registry"
	"github.com/san-kum/partsim/internal/simlog"
	"github.com/san-kum/partsim/internal/vecmath"
)

// World owns the particle list, the pairwise-force registry, the contact
// generators and a fixed-capacity contact buffer, and drives one physics
// step at a time.
type World struct {
	particles  []*particle.Particle
	forces     *registry.ForceRegistry
	gravity    *registry.UniversalGravity
	potentials *registry.PotentialRegistry
	gens       []contacts.Generator

	contactBuf  []*contacts.Contact
	maxContacts int
	usedContacts int

	resolver *contacts.Resolver
	// autoIterations, when true, sets the resolver's iteration cap to
	// 2*usedContacts each step rather than using a fixed Iterations value.
	autoIterations bool

	Logger simlog.Logger
}

// New constructs a World with a contact buffer capacity of maxContacts. If
// iterations is 0, the resolver's iteration cap is chosen automatically
// each step as 2*usedContacts.
func New(maxContacts, iterations int) *World {
	buf := make([]*contacts.Contact, maxContacts)
	return &World{
		forces:         registry.NewForceRegistry(),
		gravity:        registry.NewUniversalGravity(6.67408e-11),
		potentials:     registry.NewPotentialRegistry(),
		contactBuf:     buf,
		maxContacts:    maxContacts,
		resolver:       contacts.NewResolver(iterations),
		autoIterations: iterations == 0,
		Logger:         simlog.NoopLogger{},
	}
}

func (w *World) AddParticle(p *particle.Particle) {
	w.particles = append(w.particles, p)
	if w.Logger != nil {
		w.Logger.Registered("particle", p.Name, "")
	}
}

func (w *World) RemoveParticle(p *particle.Particle) {
	out := w.particles[:0]
	for _, existing := range w.particles {
		if existing == p {
			if w.Logger != nil {
				w.Logger.Removed("particle", p.Name, "")
			}
			continue
		}
		out = append(out, existing)
	}
	w.particles = out
}

func (w *World) Particles() []*particle.Particle { return w.particles }

func (w *World) Forces() *registry.ForceRegistry         { return w.forces }
func (w *World) Gravity() *registry.UniversalGravity     { return w.gravity }
func (w *World) Potentials() *registry.PotentialRegistry { return w.potentials }

func (w *World) AddContactGenerator(g contacts.Generator) { w.gens = append(w.gens, g) }

// LastUsedContacts reports how many contact-buffer slots the most recent
// RunPhysics (or single generateContacts pass) actually filled.
func (w *World) LastUsedContacts() int { return w.usedContacts }

// StartFrame clears every registered particle's force accumulator. It is
// an optional pre-pass for callers driving UpdateForces and Integrate out
// of band from RunPhysics.
func (w *World) StartFrame() {
	for _, p := range w.particles {
		p.ClearNetForce()
	}
}

// generateContacts asks every contact generator, in order, for up to the
// remaining buffer capacity. Once the buffer is exhausted, later
// generators are asked for zero contacts and their contributions for this
// step are dropped — deliberate backpressure rather than dynamic growth.
func (w *World) generateContacts() int {
	used := 0
	for _, g := range w.gens {
		remaining := w.maxContacts - used
		if remaining <= 0 {
			break
		}
		written := g.AddContact(w.contactBuf[used:], remaining)
		used += written
	}
	w.usedContacts = used
	return used
}

// RunPhysics advances the world by one step of dt: applies registered
// forces, universal gravity and potential-derived forces, integrates every
// particle, generates contacts, and resolves them.
func (w *World) RunPhysics(dt vecmath.Real) {
	w.forces.UpdateForces(dt)
	w.gravity.ApplyGravity()
	w.potentials.UpdatePotentials()

	for _, p := range w.particles {
		p.Integrate(dt)
	}

	used := w.generateContacts()
	if used == 0 {
		return
	}

	if w.autoIterations {
		w.resolver.Iterations = 2 * used
	}
	w.resolver.ResolveContacts(w.contactBuf, used, dt)
}

// Run drives RunPhysics repeatedly for cfg.Duration/cfg.Dt steps, sampling
// every registered particle's kinematic state into a dynamo.Result. It
// honors ctx cancellation between steps and, when cfg.ValidateState is
// set, stops early on the first non-finite frame.
func (w *World) Run(ctx context.Context, cfg dynamo.Config) (*dynamo.Result, error) {
	if cfg.Dt <= 0 {
		return nil, dynamo.ErrParameterBounds
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &dynamo.Result{
		Frames:  make([]dynamo.Frame, 0, steps+1),
		Metrics: make(map[string]vecmath.Real),
		Errors:  make([]error, 0),
	}

	t := vecmath.Real(0)
	result.Frames = append(result.Frames, w.snapshot(t))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, dynamo.ErrContextCanceled
		default:
		}

		w.RunPhysics(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		frame := w.snapshot(t)
		if cfg.ValidateState && !frame.IsValid() {
			result.Errors = append(result.Errors, dynamo.SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}
		result.Frames = append(result.Frames, frame)
	}

	return result, nil
}

func (w *World) snapshot(t vecmath.Real) dynamo.Frame {
	f := dynamo.Frame{
		Time:       t,
		Positions:  make([]vecmath.Vec3, len(w.particles)),
		Velocities: make([]vecmath.Vec3, len(w.particles)),
	}
	for i, p := range w.particles {
		f.Positions[i] = p.Pos
		f.Velocities[i] = p.Vel
	}
	return f
}

// TotalEnergy sums kinetic energy over every registered particle. Used by
// the live view.
func (w *World) TotalEnergy() vecmath.Real {
	total := vecmath.Real(0)
	for _, p := range w.particles {
		total += p.KineticEnergy()
	}
	return total
}
