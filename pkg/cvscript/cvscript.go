// Package cvscript modulates the pattern generator from a Lua script, the
// way CV inputs would on the hardware.
//
// A script defines a global function on_step(step, bar) returning a table
// with any of the fields x, y, randomness, density1..3, length1..3 and bpm.
// Missing fields leave the current value untouched.
package cvscript

import (
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/james-see/grids2midi/pkg/engine"
	"github.com/james-see/grids2midi/pkg/pattern"
)

// ErrNoHandler is returned when a script does not define on_step.
var ErrNoHandler = errors.New("script does not define on_step")

const handler = "on_step"

// Script is a compiled modulation script.
type Script struct {
	state *lua.LState
	fn    *lua.LFunction
}

// Load compiles source and looks up its on_step handler.
func Load(source string) (*Script, error) {
	L := lua.NewState()
	registerHelpers(L)
	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("failed to run script: %w", err)
	}
	fn, ok := L.GetGlobal(handler).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, ErrNoHandler
	}
	return &Script{state: L, fn: fn}, nil
}

// LoadFile compiles the script at path.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Load(string(data))
}

// Close releases the interpreter.
func (s *Script) Close() {
	s.state.Close()
}

// registerHelpers exposes the pattern tables to scripts.
func registerHelpers(L *lua.LState) {
	grids := L.NewTable()
	L.SetField(grids, "drum_map", L.NewFunction(func(L *lua.LState) int {
		step, part := L.CheckInt(1), L.CheckInt(2)
		x, y := clamp(float64(L.CheckNumber(3))), clamp(float64(L.CheckNumber(4)))
		if step < 0 || step >= pattern.StepsPerPattern || part < 1 || part > pattern.NumParts {
			L.ArgError(1, "step or part out of range")
		}
		L.Push(lua.LNumber(pattern.ReadDrumMap(uint8(step), uint8(part-1), x, y)))
		return 1
	}))
	L.SetField(grids, "euclidean_hits", L.NewFunction(func(L *lua.LState) int {
		length, density := clamp(float64(L.CheckNumber(1))), clamp(float64(L.CheckNumber(2)))
		L.Push(lua.LNumber(pattern.EuclideanHits(length, density)))
		return 1
	}))
	L.SetGlobal("grids", grids)
}

// Apply calls on_step and writes the returned values into e.
func (s *Script) Apply(e *engine.Engine, step, bar int) error {
	err := s.state.CallByParam(lua.P{Fn: s.fn, NRet: 1, Protect: true}, lua.LNumber(step), lua.LNumber(bar))
	if err != nil {
		return fmt.Errorf("%s(%d, %d): %w", handler, step, bar, err)
	}
	ret := s.state.Get(-1)
	s.state.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		if ret == lua.LNil {
			return nil
		}
		return fmt.Errorf("%s returned %s, want a table", handler, ret.Type())
	}

	g := e.Generator()
	drums := g.MutableSettingsFor(pattern.OutputModeDrums)
	d := drums.Drums()
	field(tbl, "x", &d.X)
	field(tbl, "y", &d.Y)
	field(tbl, "randomness", &d.Randomness)
	drums.SetDrums(d)

	euclidean := g.MutableSettingsFor(pattern.OutputModeEuclidean)
	lengths := euclidean.Euclidean()
	active := g.MutableSettings()
	for i := 0; i < pattern.NumParts; i++ {
		field(tbl, fmt.Sprintf("length%d", i+1), &lengths.Length[i])
		field(tbl, fmt.Sprintf("density%d", i+1), &active.Density[i])
	}
	euclidean.SetEuclidean(lengths)

	if v, ok := tbl.RawGetString("bpm").(lua.LNumber); ok {
		bpm := int(v)
		bpm = max(20, min(bpm, 500))
		e.SetTempo(uint16(bpm))
	}
	return nil
}

// Render runs steps pattern steps, calling on_step before each one.
func (s *Script) Render(e *engine.Engine, steps int) ([]engine.StepRecord, error) {
	records := make([]engine.StepRecord, 0, steps)
	for i := 0; i < steps; i++ {
		if err := s.Apply(e, i%pattern.StepsPerPattern, i/pattern.StepsPerPattern); err != nil {
			return records, err
		}
		records = append(records, e.RenderSteps(1)...)
	}
	return records, nil
}

func field(tbl *lua.LTable, name string, dst *uint8) {
	if v, ok := tbl.RawGetString(name).(lua.LNumber); ok {
		*dst = clamp(float64(v))
	}
}

func clamp(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
