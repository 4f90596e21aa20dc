// Package pattern implements the three-part drum pattern generator: a
// 32-step sequencer that reads either interpolated drum density maps or
// Euclidean rhythm tables and produces one output bitfield per step.
package pattern

import (
	"github.com/james-see/grids2midi/pkg/clock"
	"github.com/james-see/grids2midi/pkg/fixed"
	"github.com/james-see/grids2midi/pkg/random"
)

const (
	NumParts        = 3
	StepsPerPattern = 32
	PulsesPerStep   = 3

	// PulseDuration is the trigger length in control ticks (1 ms at 8 kHz).
	PulseDuration = 8

	// factoryTestingBoots is the number of power-on cycles during which a
	// reset also retriggers the outputs.
	factoryTestingBoots = 5

	accentThreshold = 192
)

// Generator is the pattern state machine. It is driven by TickClock and
// read through State.
type Generator struct {
	rng *random.Source

	options  Options
	settings [2]Settings

	pulse         uint8
	step          uint8
	euclideanStep [NumParts]uint8
	state         State

	partPerturbation     [NumParts]uint8
	pulseDurationCounter uint8

	beat      bool
	firstBeat bool

	powerOnCount uint8
}

// New returns an initialized generator drawing randomness from rng.
func New(rng *random.Source) *Generator {
	g := &Generator{rng: rng}
	g.Init()
	return g
}

// Init restores the default settings and rewinds the sequencer.
func (g *Generator) Init() {
	g.options = Options{
		ClockResolution: clock.Resolution24PPQN,
		OutputMode:      OutputModeDrums,
	}
	g.settings[OutputModeDrums] = Settings{
		Options: [NumParts]uint8{128, 128, 0},
		Density: [NumParts]uint8{128, 128, 128},
	}
	g.settings[OutputModeEuclidean] = Settings{
		Options: [NumParts]uint8{255, 255, 255},
		Density: [NumParts]uint8{128, 128, 128},
	}
	g.Reset()
	g.state = 0
}

// Reset rewinds the pattern to its first step.
func (g *Generator) Reset() {
	g.step = 0
	g.pulse = 0
	for i := range g.euclideanStep {
		g.euclideanStep[i] = 0
	}
}

// Retrigger re-evaluates the current step.
func (g *Generator) Retrigger() {
	g.Evaluate()
}

// TickClock advances the sequencer by numPulses pulses of the 24 PPQN clock.
// The outputs are evaluated for the position reached by the previous call.
func (g *Generator) TickClock(numPulses uint8) {
	g.Evaluate()
	g.beat = g.step&0x07 == 0
	g.firstBeat = g.step == 0

	g.pulse += numPulses
	for g.pulse >= PulsesPerStep {
		g.pulse -= PulsesPerStep
		if g.step&1 == 0 {
			for i := range g.euclideanStep {
				g.euclideanStep[i]++
			}
		}
		g.step++
	}
	for g.step >= StepsPerPattern {
		g.step -= StepsPerPattern
	}
}

// IncrementPulseCounter is called once per control tick and ends the trigger
// pulses after PulseDuration ticks, unless the outputs are gates.
func (g *Generator) IncrementPulseCounter() {
	if g.pulseDurationCounter < 0xff {
		g.pulseDurationCounter++
	}
	if g.pulseDurationCounter >= PulseDuration && !g.options.GateMode {
		g.state = 0
	}
}

// ClockFallingEdge ends the gates when the outputs follow the clock.
func (g *Generator) ClockFallingEdge() {
	if g.options.GateMode {
		g.state = 0
	}
}

// Evaluate computes the output bitfield for the current position and
// returns it. The trigger bits are refreshed only on step boundaries; the
// high and random bits are refreshed on every call.
func (g *Generator) Evaluate() State {
	g.state = 0
	g.pulseDurationCounter = 0
	g.rng.Update()

	g.state |= BitHigh
	g.state |= State(g.rng.State()>>8) & BitRandom
	if g.options.OutputClock {
		g.state |= BitClock
	}

	if g.pulse != 0 {
		return g.state
	}
	if g.options.OutputMode == OutputModeEuclidean {
		g.evaluateEuclidean()
	} else {
		g.evaluateDrums()
	}
	return g.state
}

func (g *Generator) evaluateDrums() {
	s := &g.settings[OutputModeDrums]
	drums := s.Drums()

	// Perturbations are drawn once per pattern so that a loop keeps its
	// variation for its whole length.
	if g.step == 0 {
		randomness := drums.Randomness >> 2
		if g.options.Swing {
			randomness = 0
		}
		for i := range g.partPerturbation {
			g.partPerturbation[i] = fixed.U8U8MulShift8(g.rng.GetByte(), randomness)
		}
	}

	var accentBits State
	for i := 0; i < NumParts; i++ {
		mask := State(1) << uint(i)
		level := ReadDrumMap(g.step, uint8(i), drums.X, drums.Y)
		if level < 255-g.partPerturbation[i] {
			level += g.partPerturbation[i]
		} else {
			level = 255
		}
		threshold := ^s.Density[i]
		if level > threshold {
			if level > accentThreshold {
				accentBits |= mask
			}
			g.state |= mask
		}
	}

	if g.options.OutputClock {
		if accentBits != 0 {
			g.state |= BitCommon
		}
		if g.step == 0 {
			g.state |= BitReset
		}
	} else {
		g.state |= accentBits << 3
	}
}

func (g *Generator) evaluateEuclidean() {
	// Euclidean patterns run on sixteenth notes.
	if g.step&1 != 0 {
		return
	}
	s := &g.settings[OutputModeEuclidean]

	var resetBits State
	for i := 0; i < NumParts; i++ {
		mask := State(1) << uint(i)
		length := (s.Options[i] >> 3) + 1
		density := s.Density[i] >> 3
		for g.euclideanStep[i] >= length {
			g.euclideanStep[i] -= length
		}
		if EuclideanPattern(length, density)&(1<<uint32(g.euclideanStep[i])) != 0 {
			g.state |= mask
		}
		if g.euclideanStep[i] == 0 {
			resetBits |= mask
		}
	}

	if g.options.OutputClock {
		if resetBits != 0 {
			g.state |= BitCommon
		}
		if resetBits == triggerMask {
			g.state |= BitReset
		}
	} else {
		g.state |= resetBits << 3
	}
}

// ReadDrumMap returns the density level of part at step for the X/Y position,
// interpolated between the four surrounding map nodes.
func ReadDrumMap(step, part, x, y uint8) uint8 {
	i := x >> 6
	j := y >> 6
	offset := uint16(part)*StepsPerPattern + uint16(step)
	a := drumMap[i][j][offset]
	b := drumMap[i+1][j][offset]
	c := drumMap[i][j+1][offset]
	d := drumMap[i+1][j+1][offset]
	return fixed.U8Mix(fixed.U8Mix(a, b, x<<2), fixed.U8Mix(c, d, x<<2), y<<2)
}

// SwingAmount is the clock wrap offset for the current step: derived from
// the randomness knob when swing is on in drums mode, alternating in sign
// every other step.
func (g *Generator) SwingAmount() int8 {
	if !g.options.Swing || g.options.OutputMode != OutputModeDrums {
		return 0
	}
	value := int8(fixed.U8U8MulShift8(g.settings[OutputModeDrums].Options[2], 42+1))
	if g.step&2 == 0 {
		return value
	}
	return -value
}

// State returns the current output bitfield.
func (g *Generator) State() State { return g.state }

// Step returns the position in the 32-step pattern.
func (g *Generator) Step() uint8 { return g.step }

// Pulse returns the pulse counter within the step.
func (g *Generator) Pulse() uint8 { return g.pulse }

// EuclideanStep returns the euclidean position of part.
func (g *Generator) EuclideanStep(part int) uint8 { return g.euclideanStep[part] }

// PartPerturbation returns the density offset drawn for part at the start of
// the pattern.
func (g *Generator) PartPerturbation(part int) uint8 { return g.partPerturbation[part] }

// OnBeat reports whether the last evaluated step fell on a beat.
func (g *Generator) OnBeat() bool { return g.beat }

// OnFirstBeat reports whether the last evaluated step was the first one.
func (g *Generator) OnFirstBeat() bool { return g.firstBeat }

// LEDPattern returns the part LEDs to light for the current state.
func (g *Generator) LEDPattern() uint8 { return g.state.Triggers() }

// Options returns the global options.
func (g *Generator) Options() Options { return g.options }

// SetOptions replaces the global options, clamping the resolution.
func (g *Generator) SetOptions(o Options) {
	if o.ClockResolution > clock.Resolution24PPQN {
		o.ClockResolution = clock.Resolution24PPQN
	}
	g.options = o
}

// Settings returns the settings of the active output mode.
func (g *Generator) Settings() Settings { return g.settings[g.options.OutputMode] }

// SettingsFor returns the settings of mode.
func (g *Generator) SettingsFor(mode OutputMode) Settings { return g.settings[mode] }

// MutableSettings returns the settings of the active output mode for
// in-place editing.
func (g *Generator) MutableSettings() *Settings { return &g.settings[g.options.OutputMode] }

// MutableSettingsFor returns the settings of mode for in-place editing.
func (g *Generator) MutableSettingsFor(mode OutputMode) *Settings { return &g.settings[mode] }

// ClockResolution returns the configured clock resolution.
func (g *Generator) ClockResolution() clock.Resolution { return g.options.ClockResolution }

// SetClockResolution sets the resolution, clamped to 24 PPQN.
func (g *Generator) SetClockResolution(r clock.Resolution) {
	if r > clock.Resolution24PPQN {
		r = clock.Resolution24PPQN
	}
	g.options.ClockResolution = r
}

// TapTempo reports whether the tap button sets the tempo.
func (g *Generator) TapTempo() bool { return g.options.TapTempo }

// SetTapTempo enables tap tempo.
func (g *Generator) SetTapTempo(v bool) { g.options.TapTempo = v }

// OutputClock reports whether bits 3-5 carry common/clock/reset.
func (g *Generator) OutputClock() bool { return g.options.OutputClock }

// SetOutputClock enables the clock output layout.
func (g *Generator) SetOutputClock(v bool) { g.options.OutputClock = v }

// GateMode reports whether outputs are gates rather than triggers.
func (g *Generator) GateMode() bool { return g.options.GateMode }

// SetGateMode enables gate outputs.
func (g *Generator) SetGateMode(v bool) { g.options.GateMode = v }

// Swing reports whether the randomness knob controls swing.
func (g *Generator) Swing() bool { return g.options.Swing }

// SetSwing enables swing.
func (g *Generator) SetSwing(v bool) { g.options.Swing = v }

// OutputMode returns the generation algorithm.
func (g *Generator) OutputMode() OutputMode { return g.options.OutputMode }

// SetOutputMode selects the generation algorithm.
func (g *Generator) SetOutputMode(m OutputMode) {
	if m > OutputModeDrums {
		m = OutputModeDrums
	}
	g.options.OutputMode = m
}

// SetPowerOnCount restores the number of power-on cycles seen so far.
func (g *Generator) SetPowerOnCount(n uint8) { g.powerOnCount = n }

// PowerOnCount returns the number of power-on cycles seen so far.
func (g *Generator) PowerOnCount() uint8 { return g.powerOnCount }

// FactoryTesting reports whether resets should still retrigger the outputs,
// which only happens during the first power-on cycles.
func (g *Generator) FactoryTesting() bool { return g.powerOnCount < factoryTestingBoots }
