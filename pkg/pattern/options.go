package pattern

import "github.com/james-see/grids2midi/pkg/clock"

// OutputMode selects the generation algorithm.
type OutputMode uint8

const (
	OutputModeEuclidean OutputMode = iota
	OutputModeDrums
)

func (m OutputMode) String() string {
	if m == OutputModeDrums {
		return "drums"
	}
	return "euclidean"
}

// Options are the global switches of the module. They are persisted as a
// single byte.
type Options struct {
	ClockResolution clock.Resolution
	TapTempo        bool
	OutputClock     bool
	GateMode        bool
	Swing           bool
	OutputMode      OutputMode
}

// Option bits of the packed byte.
const (
	packResolutionMask = 0x07
	packNoSwing        = 0x08
	packTapTempo       = 0x10
	packOutputClock    = 0x20
	packDrums          = 0x40
	packNoGateMode     = 0x80
)

// Pack encodes the options into their persisted byte.
func (o Options) Pack() uint8 {
	b := uint8(o.ClockResolution) & packResolutionMask
	if !o.Swing {
		b |= packNoSwing
	}
	if o.TapTempo {
		b |= packTapTempo
	}
	if o.OutputClock {
		b |= packOutputClock
	}
	if o.OutputMode == OutputModeDrums {
		b |= packDrums
	}
	if !o.GateMode {
		b |= packNoGateMode
	}
	return b
}

// Unpack decodes a persisted byte. Out of range resolutions are clamped to
// 24 PPQN.
func (o *Options) Unpack(b uint8) {
	o.ClockResolution = clock.Resolution(b & packResolutionMask)
	if o.ClockResolution > clock.Resolution24PPQN {
		o.ClockResolution = clock.Resolution24PPQN
	}
	o.Swing = b&packNoSwing == 0
	o.TapTempo = b&packTapTempo != 0
	o.OutputClock = b&packOutputClock != 0
	if b&packDrums != 0 {
		o.OutputMode = OutputModeDrums
	} else {
		o.OutputMode = OutputModeEuclidean
	}
	o.GateMode = b&packNoGateMode == 0
}

// DrumsSettings is the drums-mode reading of Settings.Options.
type DrumsSettings struct {
	X          uint8
	Y          uint8
	Randomness uint8
}

// EuclideanSettings is the euclidean-mode reading of Settings.Options.
type EuclideanSettings struct {
	Length [NumParts]uint8
}

// Settings are the per-mode parameters. Options holds three raw bytes whose
// meaning depends on the mode: X, Y and randomness in drums mode, one length
// per part in euclidean mode.
type Settings struct {
	Options [NumParts]uint8
	Density [NumParts]uint8
}

// Drums reads the option bytes as drums settings.
func (s *Settings) Drums() DrumsSettings {
	return DrumsSettings{X: s.Options[0], Y: s.Options[1], Randomness: s.Options[2]}
}

// SetDrums stores drums settings in the option bytes.
func (s *Settings) SetDrums(d DrumsSettings) {
	s.Options = [NumParts]uint8{d.X, d.Y, d.Randomness}
}

// Euclidean reads the option bytes as euclidean lengths.
func (s *Settings) Euclidean() EuclideanSettings {
	return EuclideanSettings{Length: s.Options}
}

// SetEuclidean stores euclidean lengths in the option bytes.
func (s *Settings) SetEuclidean(e EuclideanSettings) {
	s.Options = e.Length
}
