// Package analysis computes frequency-domain views of a recorded scalar
// trajectory, such as one coordinate of an oscillating particle.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT returns the discrete Fourier transform of a real-valued series,
// delegating to go-dsp's mixed-radix implementation rather than a
// hand-rolled radix-2 recursion, so callers are not limited to
// power-of-two series lengths.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

// PowerSpectrum returns the magnitude of the first half of the FFT of
// data (the Nyquist-folded spectrum), suitable for an asciigraph plot of
// dominant frequencies in a spring-mass or orbital trajectory.
func PowerSpectrum(data []float64) []float64 {
	spectrum := FFT(data)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}
