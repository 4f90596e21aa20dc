package oscillator

import (
	"math"
	"testing"
)

func TestTimerOctaveHalvesPeriod(t *testing.T) {
	o := NewTimerOscillator()
	for pitch := int16(24 * Semitone); pitch+Octave <= 127*Semitone; pitch += 37 {
		o.UpdateTimerParameters(pitch, PulseWidth50)
		low := o.Period()
		o.UpdateTimerParameters(pitch+Octave, PulseWidth50)
		high := o.Period()
		if high != low>>1 {
			t.Fatalf("pitch %d: period %d an octave up, want %d", pitch, high, low>>1)
		}
	}
}

func TestTimerFrequency(t *testing.T) {
	tests := []struct {
		name      string
		pitch     int16
		prescaler Prescaler
		want      float64
	}{
		{"A4", 69 * Semitone, PrescalerClk8, 440},
		{"C1 on slow prescaler", 12 * Semitone, PrescalerClk64, 16.3516},
		{"C8", 108 * Semitone, PrescalerClk8, 4186.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewTimerOscillator()
			o.UpdatePitch(tt.pitch, PulseWidth50)
			if o.Prescaler() != tt.prescaler {
				t.Fatalf("Prescaler() = %v, want %v", o.Prescaler(), tt.prescaler)
			}
			if got := o.Frequency(); math.Abs(got-tt.want)/tt.want > 0.005 {
				t.Errorf("Frequency() = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestTimerPrescalerHysteresis(t *testing.T) {
	steps := []struct {
		note int16
		want Prescaler
	}{
		{30, PrescalerClk8},
		{23, PrescalerClk64},
		{60, PrescalerClk64},
		{104, PrescalerClk64},
		{105, PrescalerClk8},
		{50, PrescalerClk8},
		{24, PrescalerClk8},
	}

	o := NewTimerOscillator()
	for _, s := range steps {
		o.UpdatePitch(s.note*Semitone, PulseWidth50)
		if o.Prescaler() != s.want {
			t.Errorf("note %d: Prescaler() = %v, want %v", s.note, o.Prescaler(), s.want)
		}
	}
}

func TestTimerPulseWidth(t *testing.T) {
	tests := []struct {
		pw       PulseWidth
		cv       uint8
		fraction uint32
	}{
		{PulseWidth50, 0, 128},
		{PulseWidth66, 0, 169},
		{PulseWidth75, 0, 192},
		{PulseWidth87, 0, 223},
		{PulseWidth95, 0, 243},
		{PulseWidthCV, 64, 64},
	}

	for _, tt := range tests {
		o := NewTimerOscillator()
		o.SetCVPulseWidth(tt.cv)
		o.UpdatePitch(69*Semitone, tt.pw)
		want := uint16(uint32(o.Period()) * tt.fraction >> 8)
		if o.Value() != want {
			t.Errorf("pulse width %d: Value() = %d, want %d", tt.pw, o.Value(), want)
		}
	}
}

func TestTimerGate(t *testing.T) {
	o := NewTimerOscillator()
	o.UpdatePitch(69*Semitone, PulseWidth50)
	period := o.Period()

	o.Gate(false)
	if o.Value() != 0 {
		t.Errorf("Value() = %d with gate off, want 0", o.Value())
	}
	o.UpdatePitch(69*Semitone, PulseWidth50)
	if o.Value() != 0 {
		t.Errorf("Value() = %d after UpdatePitch with gate off, want 0", o.Value())
	}
	if o.Period() != period {
		t.Errorf("Period() = %d with gate off, want %d", o.Period(), period)
	}

	o.Gate(true)
	o.UpdatePitch(69*Semitone, PulseWidth50)
	if o.Value() == 0 {
		t.Error("Value() = 0 after reopening the gate")
	}
}

func TestSubFollow(t *testing.T) {
	leader := NewTimerOscillator()
	sub := NewTimerOscillator()

	leader.UpdatePitch(69*Semitone, PulseWidth75)
	sub.SubFollow(leader)
	if sub.Period() != leader.Period()>>1 {
		t.Errorf("Period() = %d, want %d", sub.Period(), leader.Period()>>1)
	}
	if sub.Prescaler() != leader.Prescaler() {
		t.Errorf("Prescaler() = %v, want %v", sub.Prescaler(), leader.Prescaler())
	}
	if sub.Value() != sub.Period()>>1 {
		t.Errorf("Value() = %d, want half the period %d", sub.Value(), sub.Period()>>1)
	}

	// Drop to the slow prescaler, then climb without leaving it.
	leader.UpdatePitch(20*Semitone, PulseWidth50)
	leader.UpdatePitch(100*Semitone, PulseWidth50)
	if leader.Prescaler() != PrescalerClk64 {
		t.Fatalf("leader Prescaler() = %v, want clk/64", leader.Prescaler())
	}
	sub.SubFollow(leader)
	if sub.Prescaler() != PrescalerClk8 {
		t.Errorf("Prescaler() = %v, want clk/8", sub.Prescaler())
	}
	if sub.Period() != leader.Period()<<2 {
		t.Errorf("Period() = %d, want %d", sub.Period(), leader.Period()<<2)
	}
	ratio := sub.Frequency() / leader.Frequency()
	if math.Abs(ratio-2) > 0.001 {
		t.Errorf("sub/leader frequency ratio = %.4f, want 2", ratio)
	}
}
