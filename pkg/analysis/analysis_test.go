package analysis

import (
	"math"
	"testing"

	"github.com/james-see/grids2midi/pkg/audio"
	"github.com/james-see/grids2midi/pkg/oscillator"
)

func sine(freq float64, rate, n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = uint16(2048 + 1500*math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

func TestFundamentalSine(t *testing.T) {
	tests := []float64{110, 440, 1234.5, 5000}
	for _, freq := range tests {
		got := Fundamental(sine(freq, 40000, 8000), 40000)
		if math.Abs(got-freq) > freq*0.002+0.5 {
			t.Errorf("Fundamental(%v Hz) = %v", freq, got)
		}
	}
}

func TestFundamentalOscillator(t *testing.T) {
	tests := []struct {
		shape oscillator.Shape
		note  int16
		want  float64
	}{
		{oscillator.ShapeTriangle, 69, 440},
		{oscillator.ShapeNESTriangle, 57, 220},
		{oscillator.ShapeSine, 81, 880},
	}

	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			o := oscillator.NewDigitalOscillator()
			o.SetShape(tt.shape)
			o.SetPitch(tt.note * oscillator.Semitone)
			o.SetCVPulseWidth(0)
			o.SetGate(true)

			got := Fundamental(audio.Capture(o, 8000), oscillator.SampleRate)
			if math.Abs(got-tt.want) > tt.want*0.005 {
				t.Errorf("Fundamental() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFundamentalEdgeCases(t *testing.T) {
	if got := Fundamental([]uint16{1, 2}, 40000); got != 0 {
		t.Errorf("Fundamental() of 2 samples = %v, want 0", got)
	}
	flat := make([]uint16, 512)
	for i := range flat {
		flat[i] = 2048
	}
	if got := Fundamental(flat, 40000); got != 0 {
		t.Errorf("Fundamental() of silence = %v, want 0", got)
	}
}

func TestLevels(t *testing.T) {
	peak, rms := Levels(sine(1000, 40000, 4000))
	if math.Abs(peak-1500.0/2048) > 0.01 {
		t.Errorf("peak = %v, want %v", peak, 1500.0/2048)
	}
	if want := 1500.0 / 2048 / math.Sqrt2; math.Abs(rms-want) > 0.01 {
		t.Errorf("rms = %v, want %v", rms, want)
	}
	if p, r := Levels(nil); p != 0 || r != 0 {
		t.Errorf("Levels(nil) = %v, %v", p, r)
	}
}
