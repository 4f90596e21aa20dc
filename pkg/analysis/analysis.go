// Package analysis measures rendered oscillator output.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/maddyblue/go-dsp/dsputils"
	"github.com/maddyblue/go-dsp/fft"
	"github.com/maddyblue/go-dsp/window"
)

// center is the 12-bit mid level of rendered samples.
const center = 2048

// Normalize maps 12-bit unsigned samples to -1..1.
func Normalize(samples []uint16) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = (float64(s) - center) / center
	}
	return out
}

// Spectrum returns the magnitude spectrum of the Hann windowed samples,
// zero padded to a power of two. Bin k is k*sampleRate/(2*(len-1)) Hz.
func Spectrum(samples []uint16) []float64 {
	x := Normalize(samples)
	window.Apply(x, window.Hann)
	x = dsputils.ZeroPadF(x, dsputils.NextPowerOf2(len(x)))

	bins := fft.FFTReal(x)
	mag := make([]float64, len(bins)/2+1)
	for i := range mag {
		mag[i] = cmplx.Abs(bins[i]) / float64(len(samples))
	}
	return mag
}

// Fundamental estimates the frequency of the strongest spectral peak, with
// parabolic interpolation on log magnitudes between bins. It returns 0 for
// fewer than 4 samples or a silent input.
func Fundamental(samples []uint16, sampleRate int) float64 {
	if len(samples) < 4 {
		return 0
	}
	mag := Spectrum(samples)
	n := 2 * (len(mag) - 1)

	peak := 0
	for k := 1; k < len(mag)-1; k++ {
		if mag[k] > mag[peak] {
			peak = k
		}
	}
	if peak == 0 || mag[peak] == 0 {
		return 0
	}

	delta := 0.0
	a, b, c := mag[peak-1], mag[peak], mag[peak+1]
	if a > 0 && c > 0 {
		la, lb, lc := math.Log(a), math.Log(b), math.Log(c)
		if d := la - 2*lb + lc; d != 0 {
			delta = 0.5 * (la - lc) / d
		}
	}
	return (float64(peak) + delta) * float64(sampleRate) / float64(n)
}

// Levels returns the peak and RMS of the normalized samples.
func Levels(samples []uint16) (peak, rms float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range Normalize(samples) {
		peak = math.Max(peak, math.Abs(v))
		sum += v * v
	}
	return peak, math.Sqrt(sum / float64(len(samples)))
}
