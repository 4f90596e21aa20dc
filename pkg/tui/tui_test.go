package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/james-see/grids2midi/pkg/config"
	"github.com/james-see/grids2midi/pkg/pattern"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestFramesAdvanceEngine(t *testing.T) {
	m := New(config.Default())
	t0 := time.Unix(0, 0)

	m = update(t, m, frameMsg(t0))
	if got := m.Engine().Ticks(); got != 0 {
		t.Fatalf("Ticks() after first frame = %d, want 0", got)
	}

	// 120 BPM at 24 PPQN is 16 steps per second.
	m = update(t, m, frameMsg(t0.Add(500*time.Millisecond)))
	if got := m.Engine().Ticks(); got != 4000 {
		t.Errorf("Ticks() = %d, want 4000", got)
	}
	if got := m.Steps(); got < 7 || got > 9 {
		t.Errorf("Steps() = %d, want about 8", got)
	}

	before := m.Steps()
	m = update(t, m, frameMsg(t0.Add(10*time.Second)))
	if got := m.Engine().Ticks(); got != 4000+maxCatchUp {
		t.Errorf("Ticks() after stall = %d, want %d", got, 4000+maxCatchUp)
	}
	if got := m.Steps() - before; got < 3 || got > 5 {
		t.Errorf("steps after stall = %d, want about 4", got)
	}
}

func TestParamNavigation(t *testing.T) {
	m := New(config.Default())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Param() != ParamMap1 {
		t.Errorf("Param() = %d, want %d", m.Param(), ParamMap1)
	}
	for i := 0; i < 20; i++ {
		m = update(t, m, runes("j"))
	}
	if m.Param() != ParamTempo {
		t.Errorf("Param() = %d, want %d", m.Param(), ParamTempo)
	}
}

func TestNudge(t *testing.T) {
	tests := []struct {
		name  string
		param Param
		key   tea.KeyMsg
		times int
		want  int
	}{
		{"x up", ParamMap1, tea.KeyMsg{Type: tea.KeyRight}, 1, 136},
		{"y down", ParamMap2, runes("h"), 2, 112},
		{"density clamps high", ParamDensitySD, runes("l"), 40, 255},
		{"density clamps low", ParamDensityHH, runes("h"), 40, 0},
		{"tempo up", ParamTempo, runes("l"), 2, 128},
		{"tempo stays internal", ParamTempo, runes("h"), 100, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(config.Default())
			m.param = tt.param
			for i := 0; i < tt.times; i++ {
				m = update(t, m, tt.key)
			}
			if got := m.Value(tt.param); got != tt.want {
				t.Errorf("Value(%d) = %d, want %d", tt.param, got, tt.want)
			}
		})
	}
}

func TestModeAndSwingToggle(t *testing.T) {
	m := New(config.Default())
	g := m.Engine().Generator()

	m = update(t, m, runes("m"))
	if g.OutputMode() != pattern.OutputModeEuclidean {
		t.Errorf("OutputMode() = %v, want euclidean", g.OutputMode())
	}
	if !strings.Contains(m.View(), "BD length") {
		t.Error("View() should label the map controls as lengths in euclidean mode")
	}
	m = update(t, m, runes("m"))
	if g.OutputMode() != pattern.OutputModeDrums {
		t.Errorf("OutputMode() = %v, want drums", g.OutputMode())
	}

	swing := g.Swing()
	update(t, m, runes("s"))
	if g.Swing() == swing {
		t.Error("s should toggle swing")
	}
}

func TestResetRewindsPattern(t *testing.T) {
	m := New(config.Default())
	m.Engine().Advance(3000)
	if m.Engine().Generator().Step() == 0 {
		t.Fatal("engine did not advance")
	}
	m = update(t, m, runes("r"))
	if got := m.Engine().Generator().Step(); got != 0 {
		t.Errorf("Step() after reset = %d, want 0", got)
	}
	if m.log.grid != [pattern.StepsPerPattern]pattern.State{} {
		t.Error("reset should clear the grid")
	}
}

func TestView(t *testing.T) {
	p := config.Default()
	p.Name = "groove"
	m := New(p)
	m.Engine().Advance(8000)

	view := m.View()
	for _, want := range []string{"GRIDS · groove", "BD", "SD", "HH", "X", "Randomness", "120 BPM", "drums"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestQuit(t *testing.T) {
	m := New(config.Default())
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
