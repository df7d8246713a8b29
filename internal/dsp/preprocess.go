package dsp

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/spectral"
	"github.com/mjibson/go-dsp/window"
)

// Detrend removes the sample mean.
func Detrend(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	for i, v := range x {
		out[i] = v - mean
	}
	return out
}

// DetrendLinear removes the least-squares linear trend.
func DetrendLinear(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n < 2 {
		copy(out, x)
		return out
	}

	var sumT, sumX, sumTT, sumTX float64
	for i, v := range x {
		t := float64(i)
		sumT += t
		sumX += v
		sumTT += t * t
		sumTX += t * v
	}
	fn := float64(n)
	denom := fn*sumTT - sumT*sumT
	if denom == 0 {
		copy(out, x)
		return out
	}
	slope := (fn*sumTX - sumT*sumX) / denom
	intercept := (sumX - slope*sumT) / fn

	for i, v := range x {
		out[i] = v - (intercept + slope*float64(i))
	}
	return out
}

// Taper applies a Hann taper.
func Taper(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	window.Apply(out, window.Hann)
	return out
}

// Bandpass keeps only spectral content inside [low, high] Hz and
// reconstructs the series by inverse FFT. A band that already covers all
// content in the signal leaves it unchanged within float tolerance.
func Bandpass(x []float64, rate, low, high float64) []float64 {
	n := len(x)
	if n == 0 || low >= high {
		out := make([]float64, n)
		copy(out, x)
		return out
	}

	spec := fft.FFTReal(x)
	for k := range spec {
		f := binFreq(k, n, rate)
		if math.Abs(f) < low || math.Abs(f) > high {
			spec[k] = 0
		}
	}

	rec := fft.IFFT(spec)
	out := make([]float64, n)
	for i, c := range rec {
		out[i] = real(c)
	}
	return out
}

// Whiten divides the spectrum by the square root of the Welch PSD
// estimate, flattening detector noise so each frequency contributes
// comparably.
func Whiten(x []float64, rate float64) []float64 {
	n := len(x)
	if n < 8 {
		out := make([]float64, n)
		copy(out, x)
		return out
	}

	pxx, freqs := spectral.Pwelch(x, rate, &spectral.PwelchOptions{})

	spec := fft.FFTReal(x)
	for k := range spec {
		f := math.Abs(binFreq(k, n, rate))
		p := interpPSD(pxx, freqs, f)
		if p > 0 {
			spec[k] /= complex(math.Sqrt(p), 0)
		}
	}

	rec := fft.IFFT(spec)
	out := make([]float64, n)
	for i, c := range rec {
		out[i] = real(c)
	}
	return out
}

// binFreq maps FFT bin k of an n-point transform to its frequency in Hz,
// negative for the upper half of the spectrum.
func binFreq(k, n int, rate float64) float64 {
	if k <= n/2 {
		return float64(k) * rate / float64(n)
	}
	return float64(k-n) * rate / float64(n)
}

func interpPSD(pxx, freqs []float64, f float64) float64 {
	if len(pxx) == 0 {
		return 0
	}
	if f <= freqs[0] {
		return pxx[0]
	}
	last := len(freqs) - 1
	if f >= freqs[last] {
		return pxx[last]
	}
	for i := 1; i < len(freqs); i++ {
		if f <= freqs[i] {
			frac := (f - freqs[i-1]) / (freqs[i] - freqs[i-1])
			return pxx[i-1] + frac*(pxx[i]-pxx[i-1])
		}
	}
	return pxx[last]
}
