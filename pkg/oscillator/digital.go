package oscillator

import (
	"github.com/james-see/grids2midi/pkg/fixed"
	"github.com/james-see/grids2midi/pkg/random"
)

const (
	// SampleRate is the rate at which the digital oscillator is rendered.
	SampleRate = 40000
	// AudioBlockSize is the number of samples produced by one Render call.
	AudioBlockSize = 32
	// SilenceLevel is the 12-bit sample written while the gate is closed.
	SilenceLevel = 2048

	digitalTableStart = 116 * Semitone
	highestPitch      = 128*Semitone - 1

	nesNoiseLowLevel  = 0x0300
	nesNoiseHighLevel = 0x0cff
)

// Shape selects the render function.
type Shape uint8

const (
	ShapeTriangle Shape = iota
	ShapeNESTriangle
	ShapeSine
	ShapeNoise
	ShapeNESNoiseLong
	ShapeNESNoiseShort

	numShapes
)

var shapeNames = [...]string{"triangle", "nes-triangle", "sine", "noise", "nes-noise-long", "nes-noise-short"}

func (s Shape) String() string {
	if s >= numShapes {
		return "unknown"
	}
	return shapeNames[s]
}

// IsNoise reports whether the shape clocks a shift register rather than
// reading a wavetable.
func (s Shape) IsNoise() bool { return s >= ShapeNoise }

// ParseShape returns the shape named name.
func ParseShape(name string) (Shape, bool) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return 0, false
}

// Shapes lists every shape in enum order.
func Shapes() []Shape {
	out := make([]Shape, 0, numShapes)
	for s := Shape(0); s < numShapes; s++ {
		out = append(out, s)
	}
	return out
}

// SampleWriter receives rendered samples. Callers check Writable before
// rendering a block.
type SampleWriter interface {
	Writable() int
	Overwrite(sample uint16)
}

// DigitalOscillator renders 12-bit unsigned samples in blocks of
// AudioBlockSize.
type DigitalOscillator struct {
	phase          fixed.Uint24
	phaseIncrement fixed.Uint24
	auxPhase       uint16

	pitch int16
	note  uint8
	shape Shape
	gate  bool
	cvPW  uint8
	dirty bool

	sample   uint16
	rng      *random.Source
	nesNoise uint16
}

// NewDigitalOscillator returns an initialized oscillator with its gate
// closed.
func NewDigitalOscillator() *DigitalOscillator {
	o := &DigitalOscillator{rng: random.New()}
	o.Init()
	return o
}

// Init resets the oscillator state.
func (o *DigitalOscillator) Init() {
	o.phase = 0
	o.auxPhase = 0
	o.pitch = 60 * Semitone
	o.note = 60
	o.shape = ShapeTriangle
	o.gate = false
	o.cvPW = 0
	o.sample = SilenceLevel
	o.rng.Seed(random.DefaultSeed)
	o.nesNoise = 1
	o.dirty = true
}

// SetPitch sets the pitch in 1/128 semitones.
func (o *DigitalOscillator) SetPitch(pitch int16) {
	if pitch != o.pitch {
		o.pitch = pitch
		o.dirty = true
	}
}

// SetShape selects the waveform.
func (o *DigitalOscillator) SetShape(s Shape) {
	if s >= numShapes {
		s = numShapes - 1
	}
	if s != o.shape {
		o.shape = s
		o.dirty = true
	}
}

// SetGate opens or closes the output. Opening it forces the phase increment
// to be recomputed.
func (o *DigitalOscillator) SetGate(on bool) {
	if on && !o.gate {
		o.dirty = true
	}
	o.gate = on
}

// SetCVPulseWidth sets the bit-crusher amount of the sine shape.
func (o *DigitalOscillator) SetCVPulseWidth(pw uint8) { o.cvPW = pw }

// PhaseIncrement returns the increment computed by the last
// ComputePhaseIncrement.
func (o *DigitalOscillator) PhaseIncrement() fixed.Uint24 { return o.phaseIncrement }

// Note returns the semitone part of the pitch.
func (o *DigitalOscillator) Note() uint8 { return o.note }

// Shape returns the selected waveform.
func (o *DigitalOscillator) Shape() Shape { return o.shape }

// Gate reports whether the output is open.
func (o *DigitalOscillator) Gate() bool { return o.gate }

// Render writes one block of AudioBlockSize samples to w.
func (o *DigitalOscillator) Render(w SampleWriter) {
	if !o.gate {
		o.RenderSilence(w)
		return
	}
	if o.dirty {
		o.ComputePhaseIncrement()
		o.dirty = false
	}

	switch o.shape {
	case ShapeTriangle:
		o.RenderBandlimitedTriangle(w, &triangleZones)
	case ShapeNESTriangle:
		o.RenderBandlimitedTriangle(w, &nesTriangleZones)
	case ShapeSine:
		o.RenderSine(w)
	case ShapeNoise:
		o.RenderNoise(w)
	case ShapeNESNoiseLong:
		o.RenderNoiseNES(w, 1)
	case ShapeNESNoiseShort:
		o.RenderNoiseNES(w, 6)
	}
}

// ComputePhaseIncrement derives the phase increment from the pitch by
// folding it into the top octave of the increment table.
func (o *DigitalOscillator) ComputePhaseIncrement() {
	p := int32(o.pitch)
	if p < 0 {
		p = 0
	}
	if p > highestPitch {
		p = highestPitch
	}
	o.note = uint8(p >> 7)

	// The table is one octave up; noise shapes keep that octave.
	shifts := uint(1)
	if o.shape.IsNoise() {
		shifts = 0
	}
	for p < digitalTableStart {
		p += Octave
		shifts++
	}
	p -= digitalTableStart
	index := p >> 4
	integral := fixed.InterpolateU16(phaseIncrements[index], phaseIncrements[index+1], uint8(p&0x0f))
	o.phaseIncrement = fixed.FromParts(integral, 0).ShiftRight(shifts)
}

// RenderSilence writes the DC midpoint for the whole block.
func (o *DigitalOscillator) RenderSilence(w SampleWriter) {
	for i := 0; i < AudioBlockSize; i++ {
		w.Overwrite(SilenceLevel)
	}
}

// RenderBandlimitedTriangle crossfades between the two wavetable zones
// surrounding the current note.
func (o *DigitalOscillator) RenderBandlimitedTriangle(w SampleWriter, zones *[numZones][tableSize + 1]int16) {
	zone, blend := triangleZone(o.note)
	a := zones[zone][:]
	b := a
	if zone+1 < numZones {
		b = zones[zone+1][:]
	}

	phase := o.phase
	for i := 0; i < AudioBlockSize; i++ {
		phase, _ = phase.Add(o.phaseIncrement)
		s := fixed.Mix16(fixed.Interpolate(a, phase.Integral()), fixed.Interpolate(b, phase.Integral()), blend)
		w.Overwrite(toUnsigned(s))
	}
	o.phase = phase
}

// RenderSine resamples the smoothest triangle zone, holding each value until
// the bit-crusher phase wraps.
func (o *DigitalOscillator) RenderSine(w SampleWriter) {
	table := triangleZones[numZones-1][:]
	increment := bitcrusherIncrements[o.cvPW>>1]

	phase := o.phase
	aux := o.auxPhase
	sample := o.sample
	for i := 0; i < AudioBlockSize; i++ {
		phase, _ = phase.Add(o.phaseIncrement)
		next := aux + increment
		if next < aux {
			sample = toUnsigned(fixed.Interpolate(table, phase.Integral()))
		}
		aux = next
		w.Overwrite(sample)
	}
	o.phase = phase
	o.auxPhase = aux
	o.sample = sample
}

// RenderNoise clocks the 16-bit shift register once per phase wrap.
func (o *DigitalOscillator) RenderNoise(w SampleWriter) {
	phase := o.phase
	sample := o.sample
	for i := 0; i < AudioBlockSize; i++ {
		var wrapped bool
		phase, wrapped = phase.Add(o.phaseIncrement)
		if wrapped {
			o.rng.Update()
			sample = (o.rng.State()&0x0fff)*3/4 + 512
		}
		w.Overwrite(sample)
	}
	o.phase = phase
	o.sample = sample
}

// RenderNoiseNES clocks a 15-bit shift register once per phase wrap, with
// feedback from bit 0 and bit tap. The output has only two levels.
func (o *DigitalOscillator) RenderNoiseNES(w SampleWriter, tap uint) {
	phase := o.phase
	sample := o.sample
	for i := 0; i < AudioBlockSize; i++ {
		var wrapped bool
		phase, wrapped = phase.Add(o.phaseIncrement)
		if wrapped {
			feedback := (o.nesNoise ^ o.nesNoise>>tap) & 1
			o.nesNoise = o.nesNoise>>1 | feedback<<14
			if o.nesNoise&1 != 0 {
				sample = nesNoiseLowLevel
			} else {
				sample = nesNoiseHighLevel
			}
		}
		w.Overwrite(sample)
	}
	o.phase = phase
	o.sample = sample
}

// triangleZone returns the wavetable zone of note and the crossfade amount
// towards the next one.
func triangleZone(note uint8) (int, uint8) {
	n := int(note) - 12
	if n < 0 {
		n = 0
	}
	zone := n >> 4
	if zone >= numZones {
		zone = numZones - 1
	}
	return zone, uint8(n&0x0f) << 4
}

func toUnsigned(s int16) uint16 {
	return uint16(int32(s)>>4 + SilenceLevel)
}
