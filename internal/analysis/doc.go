// Package analysis provides frequency-domain tools for recorded runs.
//
//   - [FFT]: discrete Fourier transform of a recorded scalar series
//   - [PowerSpectrum]: magnitude spectrum, for spotting a spring-mass
//     system's oscillation frequency or an orbit's periodicity
package analysis
