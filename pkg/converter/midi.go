package converter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/james-see/grids2midi/pkg/pattern"
)

// Velocities written for plain and accented hits. Parsed hits above
// AccentThreshold are read back as accents.
const (
	NormalVelocity  = 100
	AccentVelocity  = 127
	AccentThreshold = 110
)

// MIDIConverter handles MIDI file parsing and generation
type MIDIConverter struct {
	ticksPerQuarter uint16
	tempo           float64
}

// NewMIDIConverter creates a new MIDI converter
func NewMIDIConverter() *MIDIConverter {
	return &MIDIConverter{
		ticksPerQuarter: 96,
		tempo:           120.0,
	}
}

// ticksPerStep is the length of a 32nd note.
func (m *MIDIConverter) ticksPerStep() uint32 {
	return uint32(m.ticksPerQuarter) / 8
}

// ParseMIDIFile reads a MIDI file and extracts pattern data
func (m *MIDIConverter) ParseMIDIFile(filename string, notes NoteMap) (*Pattern, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read MIDI file: %w", err)
	}
	return m.ParseMIDI(data, notes)
}

// ParseMIDI parses MIDI data into a drum pattern. Note-ons matching a lane
// of notes are quantized to the nearest 32nd note; other notes are ignored.
// The pattern is padded to whole bars of 32 steps.
func (m *MIDIConverter) ParseMIDI(data []byte, notes NoteMap) (*Pattern, error) {
	if notes == nil {
		return nil, errors.New("no note map configured")
	}

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	ticksPerQuarter := m.ticksPerQuarter
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		ticksPerQuarter = mt.Resolution()
	}
	ticksPerStep := int64(ticksPerQuarter) / 8
	if ticksPerStep == 0 {
		return nil, fmt.Errorf("resolution of %d ticks per quarter is too coarse", ticksPerQuarter)
	}

	lanes := make(map[uint8]int, NumLanes)
	for lane := NumLanes - 1; lane >= 0; lane-- {
		lanes[notes.Note(lane)] = lane
	}

	p := &Pattern{
		Name:  "MIDI Pattern",
		Tempo: m.tempo,
	}

	type hit struct {
		step   int
		lane   int
		accent bool
	}
	var hits []hit
	lastStep := -1

	for _, track := range s.Tracks {
		var currentTick int64
		for _, ev := range track {
			currentTick += int64(ev.Delta)
			msg := ev.Message

			// Tempo meta message (FF 51 03 tt tt tt)
			if len(msg) >= 6 && msg[0] == 0xFF && msg[1] == 0x51 && msg[2] == 0x03 {
				microsecondsPerBeat := uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5])
				if microsecondsPerBeat > 0 {
					p.Tempo = 60000000.0 / float64(microsecondsPerBeat)
				}
				continue
			}

			// Track name meta message (FF 03 len text)
			if len(msg) >= 3 && msg[0] == 0xFF && msg[1] == 0x03 && len(msg) >= 3+int(msg[2]) {
				if name := string(msg[3 : 3+int(msg[2])]); name != "" {
					p.Name = name
				}
				continue
			}

			// Note On (0x9n nn vv) with a non-zero velocity
			if len(msg) < 3 || msg[0]&0xF0 != 0x90 || msg[2] == 0 {
				continue
			}
			lane, ok := lanes[msg[1]]
			if !ok {
				continue
			}
			step := int((currentTick + ticksPerStep/2) / ticksPerStep)
			hits = append(hits, hit{step: step, lane: lane, accent: msg[2] > AccentThreshold})
			lastStep = max(lastStep, step)
		}
	}

	bars := max(1, (lastStep+pattern.StepsPerPattern)/pattern.StepsPerPattern)
	p.Steps = make([]Step, bars*pattern.StepsPerPattern)
	for _, h := range hits {
		mask := uint8(1) << uint(h.lane)
		p.Steps[h.step].Triggers |= mask
		if h.accent {
			p.Steps[h.step].Accents |= mask
		}
	}
	return p, nil
}

type noteEvent struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// GenerateMIDI creates a single track Standard MIDI File from a pattern.
// Every hit is one 32nd note long on the note map's channel.
func (m *MIDIConverter) GenerateMIDI(p *Pattern, notes NoteMap) ([]byte, error) {
	if p == nil {
		return nil, errors.New("nil pattern")
	}
	if notes == nil {
		return nil, errors.New("no note map configured")
	}

	tempo := p.Tempo
	if tempo <= 0 {
		tempo = m.tempo
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(m.ticksPerQuarter)

	var track smf.Track

	if p.Name != "" {
		name := []byte(p.Name)
		if len(name) > 127 {
			name = name[:127]
		}
		track.Add(0, smf.Message(append([]byte{0xFF, 0x03, byte(len(name))}, name...)))
	}

	// Tempo meta event
	microsecondsPerBeat := uint32(60000000.0 / tempo)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))

	// Time signature (4/4)
	track.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))

	ticksPerStep := m.ticksPerStep()
	channel := notes.Channel()

	var events []noteEvent
	for i, step := range p.Steps {
		start := uint32(i) * ticksPerStep
		for lane := 0; lane < NumLanes; lane++ {
			if !step.Trigger(lane) {
				continue
			}
			velocity := uint8(NormalVelocity)
			if step.Accent(lane) {
				velocity = AccentVelocity
			}
			note := notes.Note(lane)
			events = append(events,
				noteEvent{tick: start, msg: midi.NoteOn(channel, note, velocity)},
				noteEvent{tick: start + ticksPerStep, off: true, msg: midi.NoteOff(channel, note)},
			)
		}
	}

	// Note-offs sort before note-ons sharing their tick.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var currentTick uint32
	for _, ev := range events {
		track.Add(ev.tick-currentTick, ev.msg)
		currentTick = ev.tick
	}

	// Pad to whole bars
	totalTicks := uint32(p.Bars()*pattern.StepsPerPattern) * ticksPerStep
	if currentTick < totalTicks {
		track.Add(totalTicks-currentTick, smf.Message([]byte{0xFF, 0x06, 0x00}))
	}

	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteMIDIFile writes MIDI data to a file
func (m *MIDIConverter) WriteMIDIFile(p *Pattern, notes NoteMap, filename string) error {
	data, err := m.GenerateMIDI(p, notes)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
