//go:build partsim_single

package vecmath

// Real is the scalar type used throughout the engine when built with the
// partsim_single tag: single precision, traded for speed and memory over the
// default double-precision build in real.go.
type Real = float32

const Epsilon Real = 1e-7

const MaxReal Real = 3.4028235e+38
