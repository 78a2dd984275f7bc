// Package links provides ParticleLink contact generators — Cable and Rod —
// plus the GroundContacts scenery generator, all implementing
// contacts.Generator.
package links

import (
	"math"

	"github.com/san-kum/partsim/internal/contacts"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/vecmath"
)

// lengthTolerance is the band, in length units, within which a Rod treats
// its two particles as exactly at rest length and emits no contact. It is
// independent of vecmath.Epsilon, which is a near-zero test rather than a
// length tolerance: gating on exact float equality (as a naive port would)
// means the rod is forever a hair off and perpetually correcting.
const lengthTolerance = 1e-4

// Link is the shared shape of Cable and Rod: two particles and the current
// separation between them.
type Link struct {
	ParticleA, ParticleB *particle.Particle
}

func (l *Link) currentLength() vecmath.Real {
	return vecmath.Distance(l.ParticleA.Pos, l.ParticleB.Pos)
}

// Cable generates a contact when its particles are pulled beyond MaxLength
// apart, with the given restitution.
type Cable struct {
	Link
	MaxLength   vecmath.Real
	Restitution vecmath.Real
}

func (c *Cable) AddContact(buf []*contacts.Contact, limit int) int {
	if limit <= 0 {
		return 0
	}
	length := c.currentLength()
	if length < c.MaxLength {
		return 0
	}

	normal := c.ParticleB.Pos.Sub(c.ParticleA.Pos).Normalize()
	buf[0] = &contacts.Contact{
		First:       c.ParticleA,
		Second:      c.ParticleB,
		Normal:      normal,
		Penetration: length - c.MaxLength,
		Restitution: c.Restitution,
	}
	return 1
}

// Rod generates a contact whenever its particles' separation differs from
// Length by more than lengthTolerance, pushing or pulling them back toward
// the rigid length. Rods never rebound: restitution is always zero.
type Rod struct {
	Link
	Length vecmath.Real
}

func (r *Rod) AddContact(buf []*contacts.Contact, limit int) int {
	if limit <= 0 {
		return 0
	}
	length := r.currentLength()
	if math.Abs(float64(length-r.Length)) < lengthTolerance {
		return 0
	}

	normal := r.ParticleB.Pos.Sub(r.ParticleA.Pos).Normalize()
	penetration := length - r.Length
	if length < r.Length {
		normal.Invert()
		penetration = -penetration
	}

	buf[0] = &contacts.Contact{
		First:       r.ParticleA,
		Second:      r.ParticleB,
		Normal:      normal,
		Penetration: penetration,
		Restitution: 0,
	}
	return 1
}

// GroundContacts is an external-collaborator contact generator: it emits a
// contact for any registered particle whose Y coordinate has dropped below
// the ground plane.
type GroundContacts struct {
	Particles   []*particle.Particle
	Restitution vecmath.Real
}

func NewGroundContacts(restitution vecmath.Real) *GroundContacts {
	return &GroundContacts{Restitution: restitution}
}

func (g *GroundContacts) Add(p *particle.Particle) { g.Particles = append(g.Particles, p) }

func (g *GroundContacts) AddContact(buf []*contacts.Contact, limit int) int {
	written := 0
	for _, p := range g.Particles {
		if written >= limit {
			break
		}
		if p.Pos.Y >= 0 {
			continue
		}
		buf[written] = &contacts.Contact{
			First:       p,
			Second:      nil,
			Normal:      vecmath.New(0, 1, 0),
			Penetration: -p.Pos.Y,
			Restitution: g.Restitution,
		}
		written++
	}
	return written
}
