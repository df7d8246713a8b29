// Package spectral computes frequency-domain summaries of a strain series.
package spectral

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	welch "github.com/mjibson/go-dsp/spectral"
)

// Amplitude returns the one-sided amplitude spectrum and its frequency
// axis for a series sampled at rate Hz.
func Amplitude(x []float64, rate float64) (amps, freqs []float64) {
	n := len(x)
	if n == 0 {
		return nil, nil
	}

	spec := fft.FFTReal(x)
	half := n/2 + 1

	amps = make([]float64, half)
	freqs = make([]float64, half)
	for k := 0; k < half; k++ {
		amps[k] = cmplx.Abs(spec[k])
		freqs[k] = float64(k) * rate / float64(n)
	}
	return amps, freqs
}

// PSD estimates the power spectral density by Welch's method.
func PSD(x []float64, rate float64) (pxx, freqs []float64) {
	return welch.Pwelch(x, rate, &welch.PwelchOptions{})
}

// DominantFrequency returns the frequency of the largest non-DC peak in
// the amplitude spectrum.
func DominantFrequency(x []float64, rate float64) float64 {
	amps, freqs := Amplitude(x, rate)
	if len(amps) < 2 {
		return 0
	}

	maxAmp := 0.0
	maxIdx := 1
	for k := 1; k < len(amps); k++ {
		if amps[k] > maxAmp {
			maxAmp = amps[k]
			maxIdx = k
		}
	}
	return freqs[maxIdx]
}

// Entropy returns the normalized Shannon entropy of the power
// distribution across frequency bins: 0 for a pure tone, approaching 1
// for spectrally flat noise. A null signal has zero entropy.
func Entropy(x []float64, rate float64) float64 {
	amps, _ := Amplitude(x, rate)
	if len(amps) < 2 {
		return 0
	}

	total := 0.0
	power := make([]float64, 0, len(amps)-1)
	for _, a := range amps[1:] { // skip DC
		p := a * a
		power = append(power, p)
		total += p
	}
	if total == 0 {
		return 0
	}

	h := 0.0
	for _, p := range power {
		if p == 0 {
			continue
		}
		q := p / total
		h -= q * math.Log(q)
	}
	return h / math.Log(float64(len(power)))
}
