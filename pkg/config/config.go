// Package config loads patch files: a complete description of a pattern
// generator setup plus the oscillator voice used for audio rendering.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/james-see/grids2midi/pkg/clock"
	"github.com/james-see/grids2midi/pkg/converter"
	"github.com/james-see/grids2midi/pkg/converter/devices"
	"github.com/james-see/grids2midi/pkg/engine"
	"github.com/james-see/grids2midi/pkg/oscillator"
	"github.com/james-see/grids2midi/pkg/pattern"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid patch")

// MaxBars is the longest render a patch may ask for.
const MaxBars = 16

// Drums holds the drums mode map position.
type Drums struct {
	X          uint8 `yaml:"x" toml:"x" json:"x"`
	Y          uint8 `yaml:"y" toml:"y" json:"y"`
	Randomness uint8 `yaml:"randomness" toml:"randomness" json:"randomness"`
}

// Euclidean holds the euclidean mode part lengths.
type Euclidean struct {
	Length [pattern.NumParts]uint8 `yaml:"length" toml:"length" json:"length"`
}

// Oscillator describes the audio voice.
type Oscillator struct {
	Shape      string `yaml:"shape" toml:"shape" json:"shape"`
	Pitch      int    `yaml:"pitch" toml:"pitch" json:"pitch"`
	PulseWidth uint8  `yaml:"pulse_width" toml:"pulse_width" json:"pulse_width"`
}

// Patch is a pattern generator setup.
type Patch struct {
	Name        string                  `yaml:"name" toml:"name" json:"name"`
	BPM         uint16                  `yaml:"bpm" toml:"bpm" json:"bpm"`
	Resolution  int                     `yaml:"resolution" toml:"resolution" json:"resolution"`
	Mode        string                  `yaml:"mode" toml:"mode" json:"mode"`
	Swing       bool                    `yaml:"swing" toml:"swing" json:"swing"`
	OutputClock bool                    `yaml:"output_clock" toml:"output_clock" json:"output_clock"`
	GateMode    bool                    `yaml:"gate_mode" toml:"gate_mode" json:"gate_mode"`
	TapTempo    bool                    `yaml:"tap_tempo" toml:"tap_tempo" json:"tap_tempo"`
	Drums       Drums                   `yaml:"drums" toml:"drums" json:"drums"`
	Euclidean   Euclidean               `yaml:"euclidean" toml:"euclidean" json:"euclidean"`
	Density     [pattern.NumParts]uint8 `yaml:"density" toml:"density" json:"density"`
	Seed        uint16                  `yaml:"seed" toml:"seed" json:"seed"`
	Bars        int                     `yaml:"bars" toml:"bars" json:"bars"`
	Notes       [pattern.NumParts]uint8 `yaml:"notes" toml:"notes" json:"notes"`
	Oscillator  Oscillator              `yaml:"oscillator" toml:"oscillator" json:"oscillator"`
}

// Default returns the power-on setup: drums mode at the center of the map,
// 120 BPM, GM kick, snare and closed hat notes.
func Default() *Patch {
	return &Patch{
		Name:       "default",
		BPM:        120,
		Resolution: 24,
		Mode:       pattern.OutputModeDrums.String(),
		Drums:      Drums{X: 128, Y: 128},
		Euclidean:  Euclidean{Length: [pattern.NumParts]uint8{255, 255, 255}},
		Density:    [pattern.NumParts]uint8{128, 128, 128},
		Seed:       0x21,
		Bars:       1,
		Notes:      [pattern.NumParts]uint8{36, 38, 42},
		Oscillator: Oscillator{Shape: "triangle", Pitch: 60, PulseWidth: 128},
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) patch. Missing fields keep
// their default values.
func Load(path string) (*Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patch: %w", err)
	}

	p := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, p)
	case ".toml":
		err = toml.Unmarshal(data, p)
	default:
		return nil, fmt.Errorf("unsupported patch format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Marshal encodes the patch in the format matching ext.
func (p *Patch) Marshal(ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Marshal(p)
	case ".toml":
		return toml.Marshal(p)
	default:
		return nil, fmt.Errorf("unsupported patch format: %s", ext)
	}
}

// Validate checks value ranges.
func (p *Patch) Validate() error {
	if p.BPM < 20 || p.BPM > 500 {
		return fmt.Errorf("%w: bpm %d out of range 20..500", ErrInvalid, p.BPM)
	}
	if _, err := p.ClockResolution(); err != nil {
		return err
	}
	if _, err := p.OutputMode(); err != nil {
		return err
	}
	if p.Bars < 1 || p.Bars > MaxBars {
		return fmt.Errorf("%w: bars %d out of range 1..%d", ErrInvalid, p.Bars, MaxBars)
	}
	for i, n := range p.Notes {
		if n > 127 {
			return fmt.Errorf("%w: note %d for part %d", ErrInvalid, n, i+1)
		}
	}
	if _, ok := oscillator.ParseShape(p.Oscillator.Shape); !ok {
		return fmt.Errorf("%w: oscillator shape %q", ErrInvalid, p.Oscillator.Shape)
	}
	if p.Oscillator.Pitch < 0 || p.Oscillator.Pitch > 127 {
		return fmt.Errorf("%w: oscillator pitch %d", ErrInvalid, p.Oscillator.Pitch)
	}
	return nil
}

// ClockResolution converts the PPQN value.
func (p *Patch) ClockResolution() (clock.Resolution, error) {
	switch p.Resolution {
	case 4:
		return clock.Resolution4PPQN, nil
	case 8:
		return clock.Resolution8PPQN, nil
	case 24:
		return clock.Resolution24PPQN, nil
	default:
		return 0, fmt.Errorf("%w: resolution %d, want 4, 8 or 24", ErrInvalid, p.Resolution)
	}
}

// OutputMode converts the mode name.
func (p *Patch) OutputMode() (pattern.OutputMode, error) {
	switch strings.ToLower(p.Mode) {
	case "drums", "":
		return pattern.OutputModeDrums, nil
	case "euclidean":
		return pattern.OutputModeEuclidean, nil
	default:
		return 0, fmt.Errorf("%w: mode %q", ErrInvalid, p.Mode)
	}
}

// Apply configures e with the patch. The patch must be valid.
func (p *Patch) Apply(e *engine.Engine) {
	res, _ := p.ClockResolution()
	mode, _ := p.OutputMode()

	e.Random().Seed(p.Seed)
	g := e.Generator()
	g.SetOptions(pattern.Options{
		ClockResolution: res,
		TapTempo:        p.TapTempo,
		OutputClock:     p.OutputClock,
		GateMode:        p.GateMode,
		Swing:           p.Swing,
		OutputMode:      mode,
	})

	drums := g.MutableSettingsFor(pattern.OutputModeDrums)
	drums.SetDrums(pattern.DrumsSettings{X: p.Drums.X, Y: p.Drums.Y, Randomness: p.Drums.Randomness})
	drums.Density = p.Density
	euclidean := g.MutableSettingsFor(pattern.OutputModeEuclidean)
	euclidean.SetEuclidean(pattern.EuclideanSettings{Length: p.Euclidean.Length})
	euclidean.Density = p.Density

	e.Clock().Unlock()
	e.SetClockResolution(res)
	e.SetTempo(p.BPM)
}

// Voice builds the oscillator described by the patch.
func (p *Patch) Voice() (*oscillator.DigitalOscillator, error) {
	shape, ok := oscillator.ParseShape(p.Oscillator.Shape)
	if !ok {
		return nil, fmt.Errorf("%w: oscillator shape %q", ErrInvalid, p.Oscillator.Shape)
	}
	o := oscillator.NewDigitalOscillator()
	o.SetShape(shape)
	o.SetPitch(int16(p.Oscillator.Pitch) * oscillator.Semitone)
	o.SetCVPulseWidth(p.Oscillator.PulseWidth)
	o.SetGate(true)
	return o, nil
}

// Engine returns a new engine configured with the patch.
func (p *Patch) Engine(opts ...engine.Option) *engine.Engine {
	e := engine.New(opts...)
	p.Apply(e)
	return e
}

// Render runs the patch for its number of bars and returns the pattern.
func (p *Patch) Render(opts ...engine.Option) *converter.Pattern {
	e := p.Engine(opts...)
	records := e.RenderSteps(p.Bars * pattern.StepsPerPattern)
	g := e.Generator()
	accents := g.OutputMode() == pattern.OutputModeDrums && !g.OutputClock()
	return converter.FromRecords(p.Name, float64(e.Clock().BPM()), records, accents)
}

// NoteMap returns a note map playing the patch notes.
func (p *Patch) NoteMap() converter.NoteMap {
	return devices.NewCustom(p.Notes)
}
