package converter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/james-see/grids2midi/pkg/engine"
	"github.com/james-see/grids2midi/pkg/pattern"
	"github.com/james-see/grids2midi/pkg/store"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
	}{
		{"test.mid", FormatMIDI},
		{"test.midi", FormatMIDI},
		{"test.seq", FormatSeq},
		{"test.syx", FormatSyx},
		{"grids.bin", FormatImage},
		{"test.txt", FormatUnknown},
		{"test", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := DetectFormat(tt.filename)
			if result != tt.expected {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestDetectFormatFromContent(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{"MIDI file", []byte("MThd\x00\x00\x00\x06"), FormatMIDI},
		{"SysEx message", []byte{0xF0, 0x7D, 0x47, 0x01, 0x00, 0xF7}, FormatSyx},
		{"settings image", store.Encode(store.Default()), FormatImage},
		{"Short data", []byte{0x00, 0x01}, FormatUnknown},
		{"step grid (assumed)", []byte("BD x...x...\n"), FormatSeq},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectFormatFromContent(tt.data)
			if result != tt.expected {
				t.Errorf("DetectFormatFromContent() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// mockDevice implements NoteMap for testing
type mockDevice struct {
	notes [NumLanes]uint8
}

func (m *mockDevice) Name() string        { return "Mock Device" }
func (m *mockDevice) ID() string          { return "mock" }
func (m *mockDevice) Channel() uint8      { return 9 }
func (m *mockDevice) Note(lane int) uint8 { return m.notes[lane] }

func gm() *mockDevice { return &mockDevice{notes: [NumLanes]uint8{36, 38, 42}} }

func TestConverterSetDevice(t *testing.T) {
	device1 := gm()
	device2 := gm()

	conv := New(device1)
	if conv.GetDevice() != device1 {
		t.Error("GetDevice() should return device1")
	}

	conv.SetDevice(device2)
	if conv.GetDevice() != device2 {
		t.Error("GetDevice() should return device2 after SetDevice")
	}
}

func testPattern() *Pattern {
	p := &Pattern{Name: "Test Pattern", Tempo: 128, Steps: make([]Step, 32)}
	p.Steps[0] = Step{Triggers: 0b101, Accents: 0b001}
	p.Steps[7] = Step{Triggers: 0b010}
	p.Steps[16] = Step{Triggers: 0b111, Accents: 0b010}
	p.Steps[31] = Step{Triggers: 0b100}
	return p
}

func TestStep(t *testing.T) {
	s := Step{Triggers: 0b101, Accents: 0b100}
	tests := []struct {
		lane    int
		trigger bool
		accent  bool
	}{
		{0, true, false},
		{1, false, false},
		{2, true, true},
	}
	for _, tt := range tests {
		if got := s.Trigger(tt.lane); got != tt.trigger {
			t.Errorf("Trigger(%d) = %v, want %v", tt.lane, got, tt.trigger)
		}
		if got := s.Accent(tt.lane); got != tt.accent {
			t.Errorf("Accent(%d) = %v, want %v", tt.lane, got, tt.accent)
		}
	}
}

func TestMIDIRoundTrip(t *testing.T) {
	m := NewMIDIConverter()
	want := testPattern()

	data, err := m.GenerateMIDI(want, gm())
	if err != nil {
		t.Fatalf("GenerateMIDI() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("MThd")) {
		t.Fatalf("GenerateMIDI() output does not start with MThd")
	}

	got, err := m.ParseMIDI(data, gm())
	if err != nil {
		t.Fatalf("ParseMIDI() error = %v", err)
	}
	if got.Name != want.Name {
		t.Errorf("Name = %q, want %q", got.Name, want.Name)
	}
	if got.Tempo < 127.99 || got.Tempo > 128.01 {
		t.Errorf("Tempo = %v, want 128", got.Tempo)
	}
	if len(got.Steps) != 32 {
		t.Fatalf("len(Steps) = %d, want 32", len(got.Steps))
	}
	for i := range want.Steps {
		if got.Steps[i] != want.Steps[i] {
			t.Errorf("step %d = %+v, want %+v", i, got.Steps[i], want.Steps[i])
		}
	}
}

func TestMIDIMultipleBars(t *testing.T) {
	p := &Pattern{Tempo: 120, Steps: make([]Step, 70)}
	p.Steps[69].Triggers = 1
	m := NewMIDIConverter()

	data, err := m.GenerateMIDI(p, gm())
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.ParseMIDI(data, gm())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Steps) != 96 {
		t.Fatalf("len(Steps) = %d, want 96", len(got.Steps))
	}
	if !got.Steps[69].Trigger(0) {
		t.Error("step 69 lost its kick")
	}
}

func TestMIDIErrors(t *testing.T) {
	m := NewMIDIConverter()
	if _, err := m.GenerateMIDI(nil, gm()); err == nil {
		t.Error("GenerateMIDI(nil) error = nil")
	}
	if _, err := m.GenerateMIDI(testPattern(), nil); err == nil {
		t.Error("GenerateMIDI() without note map error = nil")
	}
	if _, err := m.ParseMIDI([]byte("not midi"), gm()); err == nil {
		t.Error("ParseMIDI() of garbage error = nil")
	}
}

func TestSeqRoundTrip(t *testing.T) {
	s := NewSeqConverter()
	want := testPattern()

	data, err := s.GenerateSeq(want)
	if err != nil {
		t.Fatalf("GenerateSeq() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("GenerateSeq() = %d lines, want 4:\n%s", len(lines), data)
	}
	if wantBD := "BD X.......|........|x.......|........"; lines[1] != wantBD {
		t.Errorf("BD lane = %q, want %q", lines[1], wantBD)
	}

	got, err := s.ParseSeq(data)
	if err != nil {
		t.Fatalf("ParseSeq() error = %v", err)
	}
	if got.Name != want.Name {
		t.Errorf("Name = %q, want %q", got.Name, want.Name)
	}
	for i := range want.Steps {
		if got.Steps[i] != want.Steps[i] {
			t.Errorf("step %d = %+v, want %+v", i, got.Steps[i], want.Steps[i])
		}
	}
}

func TestParseSeqErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "  \n"},
		{"unknown lane", "CP x..."},
		{"bad step", "BD x.o."},
		{"not ascii", "BD x\xff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSeqConverter().ParseSeq([]byte(tt.data)); err == nil {
				t.Error("ParseSeq() error = nil")
			}
		})
	}
}

func TestSyxRoundTrip(t *testing.T) {
	s := NewSyxConverter()
	img := store.Default()
	img.Settings[pattern.OutputModeDrums].Density = [3]uint8{0xff, 0x80, 0x01}
	img.PowerOnCount = 12

	data := s.GenerateSyx(img)
	if err := s.ValidateSyx(data); err != nil {
		t.Fatalf("ValidateSyx() error = %v", err)
	}
	if !IsSettingsSyx(data) {
		t.Error("IsSettingsSyx() = false")
	}
	if len(data) != 4+2*store.Size+2 {
		t.Errorf("len(GenerateSyx()) = %d, want %d", len(data), 4+2*store.Size+2)
	}
	id, err := ExtractManufacturerID(data)
	if err != nil || !bytes.Equal(id, []byte{NonCommercialID}) {
		t.Errorf("ExtractManufacturerID() = %v, %v", id, err)
	}

	got, err := s.ParseSyx(data)
	if err != nil {
		t.Fatalf("ParseSyx() error = %v", err)
	}
	if got != img {
		t.Errorf("ParseSyx() = %+v, want %+v", got, img)
	}
}

func TestParseSyxErrors(t *testing.T) {
	s := NewSyxConverter()
	valid := s.GenerateSyx(store.Default())

	badChecksum := append([]byte(nil), valid...)
	badChecksum[len(badChecksum)-2] ^= 0x01

	badNibble := append([]byte(nil), valid...)
	badNibble[5] = 0x10

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte{0xF0}, nil},
		{"no end", valid[:len(valid)-1], nil},
		{"request", s.GenerateRequest(), nil},
		{"checksum", badChecksum, ErrSyxChecksum},
		{"nibble", badNibble, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ParseSyx(tt.data)
			if err == nil {
				t.Fatal("ParseSyx() error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("ParseSyx() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromRecords(t *testing.T) {
	records := []engine.StepRecord{
		{Step: 0, State: pattern.State(0b001_101)},
		{Step: 1, State: pattern.State(0b110_010)},
	}

	p := FromRecords("run", 120, records, true)
	if p.Steps[0] != (Step{Triggers: 0b101, Accents: 0b001}) {
		t.Errorf("step 0 = %+v", p.Steps[0])
	}
	// Accents without a trigger are dropped.
	if p.Steps[1] != (Step{Triggers: 0b010, Accents: 0b010}) {
		t.Errorf("step 1 = %+v", p.Steps[1])
	}

	p = FromRecords("run", 120, records, false)
	if p.Steps[0].Accents != 0 || p.Steps[1].Accents != 0 {
		t.Error("accents kept with withAccents = false")
	}
}

func TestFromEngineRun(t *testing.T) {
	e := engine.New()
	records := e.RenderSteps(pattern.StepsPerPattern)
	p := FromRecords("engine", 120, records, true)

	data, err := NewMIDIConverter().GenerateMIDI(p, gm())
	if err != nil {
		t.Fatalf("GenerateMIDI() error = %v", err)
	}
	got, err := NewMIDIConverter().ParseMIDI(data, gm())
	if err != nil {
		t.Fatalf("ParseMIDI() error = %v", err)
	}
	for i := range p.Steps {
		if got.Steps[i] != p.Steps[i] {
			t.Errorf("step %d = %+v, want %+v", i, got.Steps[i], p.Steps[i])
		}
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	c := New(gm())

	seqPath := filepath.Join(dir, "in.seq")
	if err := NewSeqConverter().WriteSeqFile(testPattern(), seqPath); err != nil {
		t.Fatal(err)
	}
	midPath := filepath.Join(dir, "out.mid")
	if err := c.ConvertFile(seqPath, midPath); err != nil {
		t.Fatalf("ConvertFile(seq -> midi) error = %v", err)
	}
	backPath := filepath.Join(dir, "back.seq")
	if err := c.ConvertFile(midPath, backPath); err != nil {
		t.Fatalf("ConvertFile(midi -> seq) error = %v", err)
	}
	in, _ := os.ReadFile(seqPath)
	out, _ := os.ReadFile(backPath)
	if !bytes.Equal(in, out) {
		t.Errorf("seq round trip:\n%s\nwant\n%s", out, in)
	}

	imgPath := filepath.Join(dir, "grids.bin")
	if err := os.WriteFile(imgPath, store.Encode(store.Default()), 0644); err != nil {
		t.Fatal(err)
	}
	syxPath := filepath.Join(dir, "grids.syx")
	if err := c.ConvertFile(imgPath, syxPath); err != nil {
		t.Fatalf("ConvertFile(image -> syx) error = %v", err)
	}
	img2Path := filepath.Join(dir, "grids2.bin")
	if err := c.ConvertFile(syxPath, img2Path); err != nil {
		t.Fatalf("ConvertFile(syx -> image) error = %v", err)
	}
	a, _ := os.ReadFile(imgPath)
	b, _ := os.ReadFile(img2Path)
	if !bytes.Equal(a, b) {
		t.Error("image changed through a SysEx round trip")
	}

	if err := c.ConvertFile(seqPath, filepath.Join(dir, "out.txt")); err == nil {
		t.Error("ConvertFile() to .txt error = nil")
	}
	if err := c.ConvertFile(seqPath, filepath.Join(dir, "out.syx")); err == nil {
		t.Error("ConvertFile(seq -> syx) error = nil")
	}
}

func TestGetSupportedConversions(t *testing.T) {
	conversions := GetSupportedConversions()
	if len(conversions) != 5 {
		t.Errorf("GetSupportedConversions() returned %d conversions, want 5", len(conversions))
	}
}
