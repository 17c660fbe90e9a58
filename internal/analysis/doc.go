// Package analysis extracts signals from recorded rigid-body runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectrum of a sampled signal
//   - [Phase]: angle against angular velocity for one axis
//   - [PhaseASCII]: text rendering of a phase portrait
//
// A spinning body with constant angular velocity has a flat phase line; a
// wobble shows up as a closed curve and as a peak in the spectrum of the
// angular speed.
package analysis
