package engine

import (
	"github.com/james-see/grids2midi/pkg/clock"
	"github.com/james-see/grids2midi/pkg/pattern"
)

// ADC channels passed to ScanPots.
const (
	ChannelBDDensity = iota
	ChannelSDDensity
	ChannelHHDensity
	ChannelX
	ChannelY
	ChannelRandomness
	ChannelTempo
	ChannelSpare
)

// Parameter is the option being edited in parameter mode.
type Parameter uint8

const (
	ParameterNone Parameter = iota
	ParameterWaiting
	ParameterClockResolution
	ParameterTapTempo
	ParameterSwing
	ParameterGateMode
	ParameterOutputMode
	ParameterClockOutput
)

func (p Parameter) String() string {
	switch p {
	case ParameterNone:
		return "none"
	case ParameterWaiting:
		return "waiting"
	case ParameterClockResolution:
		return "clock resolution"
	case ParameterTapTempo:
		return "tap tempo"
	case ParameterSwing:
		return "swing"
	case ParameterGateMode:
		return "gate mode"
	case ParameterOutputMode:
		return "output mode"
	case ParameterClockOutput:
		return "clock output"
	default:
		return "unknown"
	}
}

// LED bits returned by LEDs.
const (
	LEDBassDrum uint8 = 1 << iota
	LEDSnare
	LEDHiHat
	LEDClock

	LEDAll = LEDBassDrum | LEDSnare | LEDHiHat
)

// potThreshold is the pot movement that selects a parameter while editing.
const potThreshold = 32

// LongPress toggles the parameter editing mode. Entering it freezes the pot
// positions; leaving it saves the settings.
func (e *Engine) LongPress(adc [8]uint8) error {
	if !e.Editing() {
		e.potValues = adc
		e.parameter = ParameterWaiting
		e.logger.Debug("parameter editing started")
		return nil
	}
	e.parameter = ParameterNone
	e.logger.Debug("parameter editing done", "options", e.generator.Options().Pack())
	if e.save != nil {
		return e.save(e.generator)
	}
	return nil
}

// Editing reports whether the pots currently edit the options.
func (e *Engine) Editing() bool { return e.parameter != ParameterNone }

// Parameter returns the option last touched in editing mode.
func (e *Engine) Parameter() Parameter { return e.parameter }

func (e *Engine) scanParameters(adc [8]uint8) {
	for i, value := range adc {
		delta := int(value) - int(e.potValues[i])
		if delta < 0 {
			delta = -delta
		}
		if delta <= potThreshold {
			continue
		}
		e.potValues[i] = value
		on := value&0x80 == 0

		switch i {
		case ChannelBDDensity:
			e.parameter = ParameterClockResolution
			e.SetClockResolution(clock.Resolution((255 - value) >> 6))
		case ChannelSDDensity:
			e.parameter = ParameterTapTempo
			e.generator.SetTapTempo(on)
			if !on {
				e.clock.Unlock()
			}
		case ChannelHHDensity:
			e.parameter = ParameterSwing
			e.generator.SetSwing(on)
		case ChannelX:
			e.parameter = ParameterOutputMode
			if on {
				e.generator.SetOutputMode(pattern.OutputModeDrums)
			} else {
				e.generator.SetOutputMode(pattern.OutputModeEuclidean)
			}
		case ChannelY:
			e.parameter = ParameterGateMode
			e.generator.SetGateMode(on)
		case ChannelRandomness:
			e.parameter = ParameterClockOutput
			e.generator.SetOutputClock(on)
		}
	}
}

// updateLEDs latches the part LEDs when the outputs change and lets them
// linger for a while after the outputs go low.
func (e *Engine) updateLEDs() {
	state := e.generator.State()
	if state != e.previousState {
		e.previousState = state
		if state == 0 {
			e.ledOffTimer = ledOffDelay
		} else {
			e.ledPattern = e.generator.LEDPattern()
			e.ledOffTimer = 0
		}
	}
	// The release countdown pauses while the LEDs show an option.
	if e.ledOffTimer != 0 && !e.Editing() {
		e.ledOffTimer--
		if e.ledOffTimer == 0 {
			e.ledPattern = 0
		}
	}
}

// LEDs returns the front panel LEDs. While editing, the part LEDs show the
// value of the selected option.
func (e *Engine) LEDs() uint8 {
	g := e.generator
	if !e.Editing() {
		leds := e.ledPattern
		if (g.TapTempo() && g.OnBeat()) || (!g.TapTempo() && g.OnFirstBeat()) {
			leds |= LEDClock
		}
		return leds
	}

	leds := LEDClock
	var on bool
	switch e.parameter {
	case ParameterClockResolution:
		return leds | LEDBassDrum<<uint8(g.ClockResolution())
	case ParameterClockOutput:
		on = g.OutputClock()
	case ParameterSwing:
		on = g.Swing()
	case ParameterOutputMode:
		on = g.OutputMode() == pattern.OutputModeDrums
	case ParameterTapTempo:
		on = g.TapTempo()
	case ParameterGateMode:
		on = g.GateMode()
	}
	if on {
		leds |= LEDAll
	}
	return leds
}
