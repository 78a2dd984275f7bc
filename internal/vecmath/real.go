//go:build !partsim_single

// Package vecmath provides the fixed-precision scalar and Vec3 types shared
// by every layer of the particle engine.
package vecmath

// Real is the scalar type used throughout the engine. Switching precision is
// a build-time decision: this file selects double precision; the
// partsim_single build tag selects real_single.go instead.
type Real = float64

// Epsilon is the near-zero threshold used by Vec3's zero test and by any
// comparison that would otherwise divide by a vanishing denominator.
const Epsilon Real = 1e-15

// MaxReal stands in for an "infinite" mass: returned by
// Particle.Mass for an immovable particle rather than a literal +Inf, so
// downstream arithmetic that multiplies by mass degrades gracefully instead
// of producing NaN.
const MaxReal Real = 1.7976931348623157e+308
