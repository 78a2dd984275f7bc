// Package contacts implements the particle contact model: a contact
// record, the generator capability that produces contacts into a bounded
// buffer, and an iterative resolver that removes interpenetration and
// applies rebound impulses.
package contacts

import (
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/vecmath"
)

// Contact describes two particles in interpenetration or resting contact.
// Second may be nil to denote contact with immovable scenery (e.g. the
// ground plane): it is then treated as infinitely massive and stationary.
type Contact struct {
	First, Second *particle.Particle
	Normal        vecmath.Vec3
	Penetration   vecmath.Real
	Restitution   vecmath.Real

	// particleMovement caches the displacement applied to each particle
	// during interpenetration resolution, so the resolver can propagate
	// corrections to other contacts sharing a particle without
	// recomputing positions.
	particleMovement [2]vecmath.Vec3
}

func (c *Contact) secondVel() vecmath.Vec3 {
	if c.Second == nil {
		return vecmath.Zero
	}
	return c.Second.Vel
}

func (c *Contact) secondAcc() vecmath.Vec3 {
	if c.Second == nil {
		return vecmath.Zero
	}
	return c.Second.Acc
}

func (c *Contact) secondInverseMass() vecmath.Real {
	if c.Second == nil {
		return 0
	}
	return c.Second.InverseMass()
}

// separatingVelocity is the relative velocity along the contact normal;
// negative means closing.
func (c *Contact) separatingVelocity() vecmath.Real {
	relVel := c.First.Vel.Sub(c.secondVel())
	return relVel.Dot(c.Normal)
}

// Resolve performs velocity resolution (impulse) followed by
// interpenetration resolution (displacement), in that order.
func (c *Contact) Resolve(dt vecmath.Real) {
	c.resolveVelocity(dt)
	c.resolveInterpenetration(dt)
}

func (c *Contact) resolveVelocity(dt vecmath.Real) {
	sepVel := c.separatingVelocity()
	if sepVel > 0 {
		return
	}

	newSepVel := -c.Restitution * sepVel

	// Correct for closing velocity built up purely from acceleration this
	// step (e.g. gravity pulling two resting bodies together), so
	// resting contacts do not gain energy every frame.
	accCausedVel := c.First.Acc.Sub(c.secondAcc())
	accCausedSepVel := accCausedVel.Dot(c.Normal) * dt
	if accCausedSepVel < 0 {
		newSepVel += c.Restitution * accCausedSepVel
		if newSepVel < 0 {
			newSepVel = 0
		}
	}

	deltaVel := newSepVel - sepVel

	totalInverseMass := c.First.InverseMass() + c.secondInverseMass()
	if totalInverseMass <= 0 {
		return
	}

	impulse := deltaVel / totalInverseMass
	impulsePerIMass := c.Normal.Scale(impulse)

	c.First.Vel.AddScaled(impulsePerIMass, c.First.InverseMass())
	if c.Second != nil {
		c.Second.Vel.AddScaled(impulsePerIMass, -c.secondInverseMass())
	}
}

func (c *Contact) resolveInterpenetration(dt vecmath.Real) {
	if c.Penetration <= 0 {
		c.particleMovement[0] = vecmath.Zero
		c.particleMovement[1] = vecmath.Zero
		return
	}

	totalInverseMass := c.First.InverseMass() + c.secondInverseMass()
	if totalInverseMass <= 0 {
		c.particleMovement[0] = vecmath.Zero
		c.particleMovement[1] = vecmath.Zero
		return
	}

	movePerIMass := c.Normal.Scale(c.Penetration / totalInverseMass)

	c.particleMovement[0] = movePerIMass.Scale(c.First.InverseMass())
	c.First.Pos.AddIn(c.particleMovement[0])

	if c.Second != nil {
		c.particleMovement[1] = movePerIMass.Scale(-c.secondInverseMass())
		c.Second.Pos.AddIn(c.particleMovement[1])
	} else {
		c.particleMovement[1] = vecmath.Zero
	}
}

// Generator produces contacts into buf, writing at most limit entries
// starting at buf[0], and returns the number written.
type Generator interface {
	AddContact(buf []*Contact, limit int) int
}

// Resolver iteratively resolves a batch of contacts, each pass picking,
// among the contacts that are closing or still interpenetrating, the one
// with the smallest separating velocity, so that the largest closing impact
// is corrected first — the choice that matters most when Iterations is
// small, as is typical in a real-time step.
type Resolver struct {
	Iterations     int
	iterationsUsed int
}

// NewResolver panics on a negative iteration count, a programmer error.
func NewResolver(iterations int) *Resolver {
	if iterations < 0 {
		panic("contacts: negative resolver iteration count")
	}
	return &Resolver{Iterations: iterations}
}

// ResolveContacts runs at most r.Iterations passes over contacts[:n].
func (r *Resolver) ResolveContacts(contacts []*Contact, n int, dt vecmath.Real) {
	r.iterationsUsed = 0
	for r.iterationsUsed < r.Iterations {
		worst := vecmath.MaxReal
		worstIdx := -1
		for i := 0; i < n; i++ {
			sepVel := contacts[i].separatingVelocity()
			if sepVel < worst && (sepVel < 0 || contacts[i].Penetration > 0) {
				worst = sepVel
				worstIdx = i
			}
		}
		if worstIdx == -1 {
			break
		}

		contacts[worstIdx].Resolve(dt)
		r.propagate(contacts, n, worstIdx)
		r.iterationsUsed++
	}
}

// propagate updates the cached penetration of every contact sharing a
// particle with the one just resolved, projecting the applied movement
// onto that contact's own normal. The resolved contact is included, so its
// own penetration drops to zero and it is not picked again for a
// displacement that has already been applied.
func (r *Resolver) propagate(contacts []*Contact, n, resolvedIdx int) {
	resolved := contacts[resolvedIdx]
	move0, move1 := resolved.particleMovement[0], resolved.particleMovement[1]

	for i := 0; i < n; i++ {
		c := contacts[i]
		if c.First == resolved.First {
			c.Penetration -= move0.Dot(c.Normal)
		} else if c.First == resolved.Second {
			c.Penetration -= move1.Dot(c.Normal)
		}
		if c.Second != nil {
			if c.Second == resolved.First {
				c.Penetration += move0.Dot(c.Normal)
			} else if c.Second == resolved.Second {
				c.Penetration += move1.Dot(c.Normal)
			}
		}
	}
}

// IterationsUsed reports how many passes the most recent ResolveContacts
// call actually consumed.
func (r *Resolver) IterationsUsed() int { return r.iterationsUsed }
