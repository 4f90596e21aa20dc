package oscillator

import (
	"math"

	"github.com/maddyblue/go-dsp/fft"
)

const (
	tableSize   = 256
	numZones    = 8
	pitchPoints = 97 // one octave, 8 points per semitone, plus guard
)

var (
	// timerPeriods holds the timer reload values on the clk/8 prescaler for
	// notes 24 to 36.
	timerPeriods [pitchPoints]uint16

	// phaseIncrements holds the integral part of the 16.8 phase increment
	// for notes 128 to 140, which is the top octave shifted up by one octave.
	phaseIncrements [pitchPoints]uint16

	// bitcrusherIncrements maps the pulse width control to the rate of the
	// sample-and-hold in the sine shape.
	bitcrusherIncrements [128]uint16

	triangleZones    [numZones][tableSize + 1]int16
	nesTriangleZones [numZones][tableSize + 1]int16
)

func init() {
	for i := range timerPeriods {
		note := 24 + float64(i)/8
		period := float64(TimerClock/8) / noteFrequency(note)
		timerPeriods[i] = uint16(math.Round(period))
	}

	for i := range phaseIncrements {
		note := float64(digitalTableStart/Semitone) + float64(i)/8 + 12
		increment := noteFrequency(note) / SampleRate * 65536
		phaseIncrements[i] = uint16(math.Round(increment))
	}

	for i := range bitcrusherIncrements {
		v := 65535 * math.Exp2(-float64(i)/16)
		bitcrusherIncrements[i] = uint16(math.Round(v))
	}

	triangle := make([]float64, tableSize)
	staircase := make([]float64, tableSize)
	for i := range triangle {
		x := float64(i) / tableSize
		triangle[i] = 1 - 4*math.Abs(x-0.5)
		// 32 steps of a 4-bit ramp up and down.
		level := i * 32 / tableSize
		if level >= 16 {
			level = 31 - level
		}
		staircase[i] = float64(level)/7.5 - 1
	}
	for zone := 0; zone < numZones; zone++ {
		// Keep the harmonics that stay below Nyquist at the top of the zone.
		top := noteFrequency(float64(12 + 16*zone + 15))
		harmonics := int(SampleRate / 2 / top)
		if harmonics < 1 {
			harmonics = 1
		}
		bandlimit(triangleZones[zone][:], triangle, harmonics)
		bandlimit(nesTriangleZones[zone][:], staircase, harmonics)
	}
}

func noteFrequency(note float64) float64 {
	return 440 * math.Exp2((note-69)/12)
}

// bandlimit writes cycle into dst with every harmonic above maxHarmonic
// removed, scaled to the int16 range, followed by a guard point.
func bandlimit(dst []int16, cycle []float64, maxHarmonic int) {
	spectrum := fft.FFTReal(cycle)
	n := len(spectrum)
	spectrum[0] = 0
	for k := 1; k <= n/2; k++ {
		if k > maxHarmonic {
			spectrum[k] = 0
			spectrum[n-k] = 0
		}
	}
	filtered := fft.IFFT(spectrum)

	peak := 0.0
	for _, v := range filtered {
		peak = math.Max(peak, math.Abs(real(v)))
	}
	scale := 0.0
	if peak > 0 {
		scale = 32000 / peak
	}
	for i, v := range filtered {
		dst[i] = int16(math.Round(real(v) * scale))
	}
	dst[len(filtered)] = dst[0]
}
