// Package engine owns one clock, one pattern generator and one random source
// and runs them the way the module's control interrupt does: one Tick per
// 1/8000 s, with clock and reset inputs, MIDI realtime messages, the tap
// button and the pots as inputs.
package engine

import (
	"context"
	"log/slog"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"github.com/james-see/grids2midi/pkg/clock"
	"github.com/james-see/grids2midi/pkg/fixed"
	"github.com/james-see/grids2midi/pkg/pattern"
	"github.com/james-see/grids2midi/pkg/random"
)

const (
	// ExternalClockBPM is the tempo pot position below which the clock input
	// drives the sequencer instead of the internal clock.
	ExternalClockBPM = 40

	MinTapBPM = 30
	MaxTapBPM = 480

	ledOffDelay = 200
	midiQueue   = 64
)

// ticksGranularity is the number of pulses per clock edge for each
// resolution, so that every resolution covers 24 pulses per quarter note.
var ticksGranularity = [...]uint8{6, 3, 1}

// Inputs are the gate levels sampled on one tick.
type Inputs struct {
	Clock bool
	Reset bool
}

// StepRecord is the output of one evaluated pattern step.
type StepRecord struct {
	Tick  uint64
	Bar   int
	Step  uint8
	State pattern.State
}

// Engine is the engine context.
type Engine struct {
	rng       *random.Source
	clock     *clock.Clock
	generator *pattern.Generator
	logger    *slog.Logger

	previous    Inputs
	swingAmount int8
	tapDuration uint32
	midi        chan byte

	ticks  uint64
	bar    int
	onStep func(StepRecord)

	parameter Parameter
	potValues [8]uint8
	save      func(*pattern.Generator) error

	previousState pattern.State
	ledPattern    uint8
	ledOffTimer   uint8
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for clock and parameter events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSeed seeds the random source.
func WithSeed(seed uint16) Option {
	return func(e *Engine) { e.rng.Seed(seed) }
}

// WithStepHook registers fn to be called for every evaluated step.
func WithStepHook(fn func(StepRecord)) Option {
	return func(e *Engine) { e.onStep = fn }
}

// WithSettingsSaver registers fn to persist the settings when the parameter
// editing mode is left.
func WithSettingsSaver(fn func(*pattern.Generator) error) Option {
	return func(e *Engine) { e.save = fn }
}

// New returns an engine at 120 BPM with the generator defaults.
func New(opts ...Option) *Engine {
	rng := random.New()
	e := &Engine{
		rng:       rng,
		clock:     clock.New(),
		generator: pattern.New(rng),
		logger:    slog.Default(),
		midi:      make(chan byte, midiQueue),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.clock.Update(120, e.generator.ClockResolution())
	return e
}

// Clock returns the tempo clock.
func (e *Engine) Clock() *clock.Clock { return e.clock }

// Generator returns the pattern generator.
func (e *Engine) Generator() *pattern.Generator { return e.generator }

// Random returns the random source shared by the generator.
func (e *Engine) Random() *random.Source { return e.rng }

// Ticks returns the number of control ticks run so far.
func (e *Engine) Ticks() uint64 { return e.ticks }

// ExternalClock reports whether the clock input and MIDI clock drive the
// sequencer.
func (e *Engine) ExternalClock() bool {
	return e.clock.BPM() < ExternalClockBPM && !e.clock.Locked()
}

// SetTempo sets the internal tempo unless tap tempo has locked it.
func (e *Engine) SetTempo(bpm uint16) {
	if bpm != e.clock.BPM() && !e.clock.Locked() {
		e.clock.Update(bpm, e.generator.ClockResolution())
	}
}

// SetClockResolution changes the resolution and rewinds the pattern.
func (e *Engine) SetClockResolution(r clock.Resolution) {
	e.generator.SetClockResolution(r)
	e.clock.Update(e.clock.BPM(), e.generator.ClockResolution())
	e.generator.Reset()
}

// Tick runs one control tick and returns the output state.
func (e *Engine) Tick(in Inputs) pattern.State {
	e.ticks++
	e.tapDuration++

	var numTicks uint8
	increment := ticksGranularity[e.generator.ClockResolution()]

	if e.ExternalClock() {
		if in.Clock && !e.previous.Clock {
			numTicks = increment
		}
		if !in.Clock && e.previous.Clock {
			e.generator.ClockFallingEdge()
		}
		select {
		case b := <-e.midi:
			switch b {
			case 0xf8:
				numTicks = 1
			case 0xfa:
				e.generator.Reset()
			}
		default:
		}
	} else {
		e.clock.Tick()
		e.clock.Wrap(e.swingAmount)
		if e.clock.RaisingEdge() {
			numTicks = increment
		}
		if e.clock.PastFallingEdge() {
			e.generator.ClockFallingEdge()
		}
	}

	if in.Reset && !e.previous.Reset {
		e.reset()
	}
	e.previous = in

	if numTicks != 0 {
		e.swingAmount = e.generator.SwingAmount()
		e.tickGenerator(numTicks)
	}

	e.generator.IncrementPulseCounter()
	e.updateLEDs()
	return e.generator.State()
}

func (e *Engine) tickGenerator(n uint8) {
	step := e.generator.Step()
	evaluated := e.generator.Pulse() == 0
	e.generator.TickClock(n)
	if evaluated && e.onStep != nil {
		e.onStep(StepRecord{Tick: e.ticks, Bar: e.bar, Step: step, State: e.generator.State()})
	}
	if e.generator.Step() < step {
		e.bar++
	}
}

// reset rewinds the pattern. Outputs are retriggered only while the module
// runs on its own clock, or during the factory testing window.
func (e *Engine) reset() {
	e.generator.Reset()
	e.bar = 0
	if e.generator.FactoryTesting() || !e.ExternalClock() {
		e.generator.Retrigger()
		e.clock.Reset()
	}
	e.logger.Debug("reset", "tick", e.ticks)
}

// HandleMIDI queues MIDI clock and start messages. They are consumed one per
// tick while the sequencer follows an external clock; other messages are
// ignored. It is safe to call from another goroutine.
func (e *Engine) HandleMIDI(msg midi.Message) {
	var b byte
	switch {
	case msg.Is(midi.TimingClockMsg):
		b = 0xf8
	case msg.Is(midi.StartMsg):
		b = 0xfa
	default:
		return
	}
	select {
	case e.midi <- b:
	default:
		e.logger.Warn("midi queue full, dropping message", "message", msg.String())
	}
}

// TapTempo handles a press of the tap/reset button. In tap tempo mode the
// time since the previous press sets the tempo; otherwise it resets the
// pattern.
func (e *Engine) TapTempo() {
	if e.Editing() {
		return
	}
	if !e.generator.TapTempo() {
		e.generator.Reset()
		e.bar = 0
		if e.generator.FactoryTesting() || !e.ExternalClock() {
			e.clock.Reset()
		}
		return
	}

	var bpm uint32
	if e.tapDuration != 0 {
		bpm = 60 * clock.UpdateRate / e.tapDuration
	}
	if bpm >= MinTapBPM && bpm <= MaxTapBPM {
		e.clock.Update(uint16(bpm), e.generator.ClockResolution())
		e.clock.Reset()
		e.clock.Lock()
		e.logger.Debug("tap tempo", "bpm", bpm)
	} else {
		e.clock.Unlock()
		e.logger.Debug("tap tempo released", "interval_ticks", e.tapDuration)
	}
	e.tapDuration = 0
}

// Advance runs n ticks with idle inputs and returns the last state.
func (e *Engine) Advance(n int) pattern.State {
	for i := 0; i < n; i++ {
		e.Tick(Inputs{})
	}
	return e.generator.State()
}

// RenderSteps runs the control loop on the internal clock until steps
// pattern steps have elapsed and returns every evaluated step. An engine
// following an external clock is locked to its current tempo for the run.
func (e *Engine) RenderSteps(steps int) []StepRecord {
	if steps <= 0 {
		return nil
	}
	records := make([]StepRecord, 0, steps)
	hook := e.onStep
	e.onStep = func(r StepRecord) {
		records = append(records, r)
		if hook != nil {
			hook(r)
		}
	}
	defer func() { e.onStep = hook }()

	if e.ExternalClock() {
		e.clock.Lock()
		defer e.clock.Unlock()
	}

	// Each step is PulsesPerStep pulses of the 24 PPQN grid.
	pulses := steps * pattern.PulsesPerStep
	for issued := 0; issued < pulses; {
		step, pulse := e.generator.Step(), e.generator.Pulse()
		e.Tick(Inputs{})
		issued += pulseDistance(step, pulse, e.generator.Step(), e.generator.Pulse())
	}
	return records
}

func pulseDistance(fromStep, fromPulse, toStep, toPulse uint8) int {
	from := int(fromStep)*pattern.PulsesPerStep + int(fromPulse)
	to := int(toStep)*pattern.PulsesPerStep + int(toPulse)
	d := to - from
	if d < 0 {
		d += pattern.StepsPerPattern * pattern.PulsesPerStep
	}
	return d
}

// Run ticks the engine in real time until ctx is done, calling fn for every
// evaluated step.
func (e *Engine) Run(ctx context.Context, fn func(StepRecord)) error {
	hook := e.onStep
	e.onStep = func(r StepRecord) {
		if hook != nil {
			hook(r)
		}
		fn(r)
	}
	defer func() { e.onStep = hook }()

	const period = time.Millisecond
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			due := int(now.Sub(last) * clock.UpdateRate / time.Second)
			if due > 0 {
				e.Advance(due)
				last = last.Add(time.Duration(due) * time.Second / clock.UpdateRate)
			}
		}
	}
}

// ScanPots reads the eight pot/CV channels: BD, SD and HH density, X, Y,
// randomness, tempo and a spare. The density and map channels are inverted
// as on the hardware. While editing parameters the pots set the options
// instead.
func (e *Engine) ScanPots(adc [8]uint8) {
	if e.Editing() {
		e.scanParameters(adc)
		return
	}

	bpm := uint16(fixed.U8U8MulShift8(adc[ChannelTempo], 220)) + 20
	e.SetTempo(bpm)

	s := e.generator.MutableSettings()
	if e.generator.OutputMode() == pattern.OutputModeDrums {
		s.SetDrums(pattern.DrumsSettings{
			X:          ^adc[ChannelX],
			Y:          ^adc[ChannelY],
			Randomness: ^adc[ChannelRandomness],
		})
	} else {
		// The map pots set the part lengths in euclidean mode.
		s.SetEuclidean(pattern.EuclideanSettings{
			Length: [pattern.NumParts]uint8{^adc[ChannelX], ^adc[ChannelY], ^adc[ChannelRandomness]},
		})
	}
	s.Density = [pattern.NumParts]uint8{
		^adc[ChannelBDDensity],
		^adc[ChannelSDDensity],
		^adc[ChannelHHDensity],
	}
}
