// Package oscillator implements the two pitch-to-signal engines: a timer
// oscillator that computes reload and compare values for a hardware timer
// driving a square wave, and a digital oscillator that renders 12-bit samples
// from a 24-bit phase accumulator.
//
// Pitches are signed 16-bit values with 128 units per semitone on the MIDI
// note scale, so 60<<7 is middle C.
package oscillator

import "github.com/james-see/grids2midi/pkg/fixed"

const (
	// Semitone is one semitone in pitch units.
	Semitone = 128
	// Octave is one octave in pitch units.
	Octave = 12 * Semitone

	// TimerClock is the frequency of the peripheral clock feeding the timers.
	TimerClock = 16000000
)

// Lowest note of the period table and the prescaler switch points.
const (
	timerTableStart   = 24 * Semitone
	slowPrescalerNote = 24 * Semitone
	fastPrescalerNote = 104 * Semitone
)

// Prescaler selects the timer clock divider.
type Prescaler uint8

const (
	PrescalerClk1 Prescaler = iota
	PrescalerClk2
	PrescalerClk4
	PrescalerClk8
	PrescalerClk64
	PrescalerClk256
	PrescalerClk1024
)

// Divider returns the clock division ratio.
func (p Prescaler) Divider() uint32 {
	switch p {
	case PrescalerClk1:
		return 1
	case PrescalerClk2:
		return 2
	case PrescalerClk4:
		return 4
	case PrescalerClk8:
		return 8
	case PrescalerClk64:
		return 64
	case PrescalerClk256:
		return 256
	default:
		return 1024
	}
}

func (p Prescaler) String() string {
	switch p {
	case PrescalerClk1:
		return "clk/1"
	case PrescalerClk2:
		return "clk/2"
	case PrescalerClk4:
		return "clk/4"
	case PrescalerClk8:
		return "clk/8"
	case PrescalerClk64:
		return "clk/64"
	case PrescalerClk256:
		return "clk/256"
	case PrescalerClk1024:
		return "clk/1024"
	default:
		return "unknown"
	}
}

// PulseWidth selects the duty cycle of the square wave.
type PulseWidth uint8

const (
	PulseWidth50 PulseWidth = iota
	PulseWidth66
	PulseWidth75
	PulseWidth87
	PulseWidth95
	PulseWidthCV
)

var pulseWidthFractions = [...]uint8{128, 169, 192, 223, 243}

// TimerOscillator holds the timer configuration of one square-wave channel.
type TimerOscillator struct {
	period    uint16
	value     uint16
	prescaler Prescaler
	cvPW      uint8
	gate      bool
}

// NewTimerOscillator returns an oscillator on the fast prescaler with its
// gate open.
func NewTimerOscillator() *TimerOscillator {
	o := &TimerOscillator{}
	o.Init()
	return o
}

// Init resets the oscillator.
func (o *TimerOscillator) Init() {
	o.prescaler = PrescalerClk8
	o.cvPW = 128
	o.gate = true
	o.UpdateTimerParameters(60*Semitone, PulseWidth50)
}

// UpdatePitch switches prescaler when the pitch leaves the hysteresis band
// and recomputes the timer values.
func (o *TimerOscillator) UpdatePitch(pitch int16, pw PulseWidth) {
	if pitch < slowPrescalerNote && o.prescaler != PrescalerClk64 {
		o.prescaler = PrescalerClk64
	} else if pitch > fastPrescalerNote && o.prescaler != PrescalerClk8 {
		o.prescaler = PrescalerClk8
	}
	o.UpdateTimerParameters(pitch, pw)
}

// UpdateTimerParameters computes period and compare value for pitch on the
// current prescaler.
func (o *TimerOscillator) UpdateTimerParameters(pitch int16, pw PulseWidth) {
	p := int32(pitch)
	if o.prescaler == PrescalerClk64 {
		// 8 times slower than the table's prescaler.
		p += 3 * Octave
	}
	if p < timerTableStart {
		p = timerTableStart
	}
	p -= timerTableStart

	shifts := uint(0)
	for p >= Octave {
		p -= Octave
		shifts++
	}
	index := p >> 4
	period := fixed.InterpolateU16(timerPeriods[index], timerPeriods[index+1], uint8(p&0x0f))
	o.period = period >> shifts

	var fraction uint8
	if pw >= PulseWidthCV {
		fraction = o.cvPW
	} else {
		fraction = pulseWidthFractions[pw]
	}
	o.value = o.compareValue(fraction)
}

func (o *TimerOscillator) compareValue(fraction uint8) uint16 {
	if !o.gate {
		return 0
	}
	return uint16(uint32(o.period) * uint32(fraction) >> 8)
}

// SubFollow makes o play at half the leader's period with a 50% duty cycle.
// When the leader is on the slow prescaler and that period gets too short to
// resolve, o moves to the fast prescaler instead.
func (o *TimerOscillator) SubFollow(leader *TimerOscillator) {
	half := leader.period >> 1
	if leader.prescaler == PrescalerClk64 && half < 256 {
		o.prescaler = PrescalerClk8
		o.period = leader.period << 2
	} else {
		o.prescaler = leader.prescaler
		o.period = half
	}
	o.value = o.compareValue(128)
}

// Gate opens or closes the output. A closed gate keeps the timer running with
// a zero compare value.
func (o *TimerOscillator) Gate(on bool) {
	o.gate = on
	if !on {
		o.value = 0
	}
}

// SetCVPulseWidth sets the duty cycle used with PulseWidthCV.
func (o *TimerOscillator) SetCVPulseWidth(pw uint8) { o.cvPW = pw }

// Period returns the timer reload value.
func (o *TimerOscillator) Period() uint16 { return o.period }

// Value returns the timer compare value.
func (o *TimerOscillator) Value() uint16 { return o.value }

// Prescaler returns the timer clock divider in use.
func (o *TimerOscillator) Prescaler() Prescaler { return o.prescaler }

// Frequency returns the output frequency in Hz.
func (o *TimerOscillator) Frequency() float64 {
	if o.period == 0 {
		return 0
	}
	return float64(TimerClock) / float64(o.prescaler.Divider()) / float64(o.period)
}
