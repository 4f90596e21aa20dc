// Package converter provides conversion between generated drum patterns,
// Standard MIDI Files, text step grids and settings SysEx dumps.
package converter

import (
	"github.com/james-see/grids2midi/pkg/engine"
	"github.com/james-see/grids2midi/pkg/pattern"
)

// NumLanes is the number of drum lanes of a pattern.
const NumLanes = pattern.NumParts

// LaneNames are the short names of the lanes.
var LaneNames = [NumLanes]string{"BD", "SD", "HH"}

// Step represents a single step of the three drum lanes
type Step struct {
	Triggers uint8 // Bit n set when lane n fires
	Accents  uint8 // Bit n set when lane n is accented
}

// Trigger reports whether lane fires on this step.
func (s Step) Trigger(lane int) bool { return s.Triggers&(1<<uint(lane)) != 0 }

// Accent reports whether lane is accented on this step.
func (s Step) Accent(lane int) bool { return s.Accents&(1<<uint(lane)) != 0 }

// Pattern represents a sequence of 32nd-note steps
type Pattern struct {
	Name  string
	Steps []Step
	Tempo float64
}

// Bars returns the number of 32-step bars, rounded up.
func (p *Pattern) Bars() int {
	return (len(p.Steps) + pattern.StepsPerPattern - 1) / pattern.StepsPerPattern
}

// FromRecords builds a pattern from the steps evaluated by an engine run.
// Accent bits are kept only when withAccents is set, since in euclidean mode
// or with the clock output enabled the upper bits carry other signals.
func FromRecords(name string, tempo float64, records []engine.StepRecord, withAccents bool) *Pattern {
	p := &Pattern{
		Name:  name,
		Tempo: tempo,
		Steps: make([]Step, len(records)),
	}
	for i, r := range records {
		p.Steps[i].Triggers = r.State.Triggers()
		if withAccents {
			p.Steps[i].Accents = r.State.Accents() & r.State.Triggers()
		}
	}
	return p
}

// NoteMap assigns MIDI notes to the drum lanes for a target instrument.
type NoteMap interface {
	Name() string
	ID() string
	Channel() uint8
	Note(lane int) uint8
}

// Converter handles format conversions
type Converter struct {
	device NoteMap
	source NoteMap
}

// New creates a new Converter writing MIDI for device. MIDI input is read
// with the same note map until SetSource is called.
func New(device NoteMap) *Converter {
	return &Converter{device: device, source: device}
}

// GetDevice returns the current device
func (c *Converter) GetDevice() NoteMap {
	return c.device
}

// SetDevice sets the device for conversion
func (c *Converter) SetDevice(device NoteMap) {
	c.device = device
}

// SetSource sets the note map used to read MIDI input.
func (c *Converter) SetSource(source NoteMap) {
	c.source = source
}
