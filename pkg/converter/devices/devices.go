// Package devices provides the drum note maps of target instruments
package devices

import (
	"fmt"
	"sort"
	"strings"

	"github.com/james-see/grids2midi/pkg/converter"
)

// DrumChannel is MIDI channel 10, zero based.
const DrumChannel = 9

// NoteMap is a fixed lane to note assignment
type NoteMap struct {
	id      string
	name    string
	channel uint8
	notes   [converter.NumLanes]uint8
}

// Name returns the device name
func (m *NoteMap) Name() string { return m.name }

// ID returns the short name used to select the device
func (m *NoteMap) ID() string { return m.id }

// Channel returns the zero based MIDI channel
func (m *NoteMap) Channel() uint8 { return m.channel }

// Note returns the note played by lane
func (m *NoteMap) Note(lane int) uint8 { return m.notes[lane] }

// Notes returns the notes of the three lanes
func (m *NoteMap) Notes() [converter.NumLanes]uint8 { return m.notes }

// NewGM returns the General MIDI percussion map: kick, snare, closed hat.
func NewGM() *NoteMap {
	return &NoteMap{id: "gm", name: "General MIDI", channel: DrumChannel, notes: [3]uint8{36, 38, 42}}
}

// NewTR8S returns the Roland TR-8S default kit map.
func NewTR8S() *NoteMap {
	return &NoteMap{id: "tr8s", name: "Roland TR-8S", channel: DrumChannel, notes: [3]uint8{36, 38, 42}}
}

// NewRD6 returns the Behringer RD-6 map.
func NewRD6() *NoteMap {
	return &NoteMap{id: "rd6", name: "Behringer RD-6", channel: DrumChannel, notes: [3]uint8{36, 40, 42}}
}

// NewCustom returns a map with user notes on the drum channel.
func NewCustom(notes [converter.NumLanes]uint8) *NoteMap {
	return &NoteMap{id: "custom", name: "Custom", channel: DrumChannel, notes: notes}
}

var registry = map[string]func() *NoteMap{
	"gm":   NewGM,
	"tr8s": NewTR8S,
	"rd6":  NewRD6,
}

// Lookup returns the device with the given ID
func Lookup(id string) (*NoteMap, error) {
	fn, ok := registry[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("unknown device %q (available: %s)", id, strings.Join(IDs(), ", "))
	}
	return fn(), nil
}

// IDs lists the available device IDs
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every registered device, sorted by ID
func All() []*NoteMap {
	var out []*NoteMap
	for _, id := range IDs() {
		out = append(out, registry[id]())
	}
	return out
}
