// Package dsp provides the strain preprocessing transforms.
//
// All transforms are pure: they allocate a fresh output slice and never
// mutate their input, so applying the same configuration to the same
// series always yields the same result.
//
//   - [Detrend]: remove the sample mean
//   - [DetrendLinear]: remove a least-squares linear trend
//   - [Taper]: Hann taper against spectral leakage
//   - [Bandpass]: FFT-mask band-pass filter
//   - [Whiten]: flatten the spectrum against the Welch PSD estimate
package dsp
