// Package tui provides a terminal front panel for the pattern generator
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/james-see/grids2midi/pkg/clock"
	"github.com/james-see/grids2midi/pkg/config"
	"github.com/james-see/grids2midi/pkg/converter"
	"github.com/james-see/grids2midi/pkg/engine"
	"github.com/james-see/grids2midi/pkg/pattern"
)

// Acid-inspired color scheme
var (
	acidGreen  = lipgloss.Color("#39FF14")
	acidYellow = lipgloss.Color("#FFFF00")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(acidGreen).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(acidGreen).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(acidYellow).
			PaddingTop(1)

	hitStyle    = lipgloss.NewStyle().Foreground(acidGreen)
	accentStyle = lipgloss.NewStyle().Foreground(acidYellow).Bold(true)
	cursorStyle = lipgloss.NewStyle().Background(darkGray)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(acidGreen).
			Padding(1, 2)
)

const (
	frameInterval = 20 * time.Millisecond
	// maxCatchUp bounds the ticks run for one frame after a stall.
	maxCatchUp = clock.UpdateRate / 4
	potStep    = 8
)

// Param is an editable front panel control.
type Param int

const (
	ParamMap1 Param = iota // X, or BD length in euclidean mode
	ParamMap2              // Y, or SD length
	ParamMap3              // randomness, or HH length
	ParamDensityBD
	ParamDensitySD
	ParamDensityHH
	ParamTempo
	numParams
)

func (p Param) label(mode pattern.OutputMode) string {
	switch p {
	case ParamMap1, ParamMap2, ParamMap3:
		if mode == pattern.OutputModeEuclidean {
			return converter.LaneNames[p] + " length"
		}
		return [...]string{"X", "Y", "Randomness"}[p]
	case ParamDensityBD, ParamDensitySD, ParamDensityHH:
		return converter.LaneNames[p-ParamDensityBD] + " density"
	case ParamTempo:
		return "Tempo"
	}
	return "?"
}

// KeyMap holds the key bindings of the front panel.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Mode  key.Binding
	Swing key.Binding
	Reset key.Binding
	Tap   key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
		Mode:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "drums/euclidean")),
		Swing: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "swing")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Tap:   key.NewBinding(key.WithKeys("t", " "), key.WithHelp("t", "tap")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Mode, k.Swing, k.Reset, k.Tap},
		{k.Help, k.Quit},
	}
}

// stepLog collects the steps evaluated by the engine. It is shared by the
// copies of Model that bubbletea passes around.
type stepLog struct {
	grid  [pattern.StepsPerPattern]pattern.State
	step  uint8
	bar   int
	count int
}

func (l *stepLog) record(r engine.StepRecord) {
	l.grid[r.Step%pattern.StepsPerPattern] = r.State
	l.step = r.Step
	l.bar = r.Bar
	l.count++
}

type frameMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Model represents the TUI model
type Model struct {
	engine *engine.Engine
	log    *stepLog
	keys   KeyMap
	help   help.Model
	name   string

	param Param
	last  time.Time
	width int
}

// New creates a model running an engine configured by patch.
func New(patch *config.Patch, opts ...engine.Option) Model {
	log := &stepLog{}
	opts = append(opts, engine.WithStepHook(log.record))
	return Model{
		engine: patch.Engine(opts...),
		log:    log,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		name:   patch.Name,
	}
}

// Engine returns the engine driven by the model.
func (m Model) Engine() *engine.Engine { return m.engine }

// Param returns the selected control.
func (m Model) Param() Param { return m.param }

// Steps returns the number of steps evaluated so far.
func (m Model) Steps() int { return m.log.count }

// Init starts the frame timer.
func (m Model) Init() tea.Cmd {
	return frame()
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		m.advance(time.Time(msg))
		return m, frame()

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

// advance runs the control ticks due since the previous frame.
func (m *Model) advance(now time.Time) {
	if m.last.IsZero() {
		m.last = now
		return
	}
	due := int(now.Sub(m.last) * clock.UpdateRate / time.Second)
	if due > maxCatchUp {
		m.engine.Advance(maxCatchUp)
		m.last = now
		return
	}
	if due > 0 {
		m.engine.Advance(due)
		m.last = m.last.Add(time.Duration(due) * time.Second / clock.UpdateRate)
	}
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.engine.Generator()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.param > 0 {
			m.param--
		}
	case key.Matches(msg, m.keys.Down):
		if m.param < numParams-1 {
			m.param++
		}
	case key.Matches(msg, m.keys.Left):
		m.nudge(-potStep)
	case key.Matches(msg, m.keys.Right):
		m.nudge(potStep)
	case key.Matches(msg, m.keys.Mode):
		if g.OutputMode() == pattern.OutputModeDrums {
			g.SetOutputMode(pattern.OutputModeEuclidean)
		} else {
			g.SetOutputMode(pattern.OutputModeDrums)
		}
	case key.Matches(msg, m.keys.Swing):
		g.SetSwing(!g.Swing())
	case key.Matches(msg, m.keys.Reset):
		m.engine.Tick(engine.Inputs{Reset: true})
		m.engine.Tick(engine.Inputs{})
		m.log.grid = [pattern.StepsPerPattern]pattern.State{}
	case key.Matches(msg, m.keys.Tap):
		m.engine.TapTempo()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// Value returns the current value of p.
func (m Model) Value(p Param) int {
	g := m.engine.Generator()
	s := g.Settings()
	switch {
	case p <= ParamMap3:
		return int(s.Options[p])
	case p <= ParamDensityHH:
		return int(s.Density[p-ParamDensityBD])
	default:
		return int(m.engine.Clock().BPM())
	}
}

func (m *Model) nudge(delta int) {
	if m.param == ParamTempo {
		bpm := clampInt(int(m.engine.Clock().BPM())+delta/2, engine.ExternalClockBPM, 500)
		m.engine.SetTempo(uint16(bpm))
		return
	}
	v := uint8(clampInt(m.Value(m.param)+delta, 0, 255))
	s := m.engine.Generator().MutableSettings()
	if m.param <= ParamMap3 {
		s.Options[m.param] = v
	} else {
		s.Density[m.param-ParamDensityBD] = v
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	title := " GRIDS "
	if m.name != "" {
		title = fmt.Sprintf(" GRIDS · %s ", m.name)
	}
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n")
	s.WriteString(m.viewGrid())
	s.WriteString("\n\n")
	s.WriteString(m.viewParams())
	s.WriteString(statusStyle.Render(m.status()))

	out := boxStyle.Render(s.String())
	return out + "\n" + m.help.View(m.keys)
}

func (m Model) viewGrid() string {
	var s strings.Builder
	accents := m.engine.Generator().OutputMode() == pattern.OutputModeDrums &&
		!m.engine.Generator().OutputClock()
	for lane := 0; lane < converter.NumLanes; lane++ {
		s.WriteString(fmt.Sprintf("%-3s", converter.LaneNames[lane]))
		for step, state := range m.log.grid {
			if step%8 == 0 {
				s.WriteString(" ")
			}
			cell := "·"
			style := menuStyle.UnsetPaddingLeft()
			if state.Trigger(lane) {
				cell = "■"
				style = hitStyle
				if accents && state.Accent(lane) {
					style = accentStyle
				}
			}
			if m.log.count > 0 && uint8(step) == m.log.step {
				style = style.Inherit(cursorStyle)
			}
			s.WriteString(style.Render(cell))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) viewParams() string {
	var s strings.Builder
	mode := m.engine.Generator().OutputMode()
	for p := Param(0); p < numParams; p++ {
		line := fmt.Sprintf("%-12s %3d", p.label(mode), m.Value(p))
		if p == m.param {
			s.WriteString(selectedStyle.Render("▸ " + line))
		} else {
			s.WriteString(menuStyle.Render("  " + line))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) status() string {
	g := m.engine.Generator()
	swing := "off"
	if g.Swing() {
		swing = "on"
	}
	tempo := fmt.Sprintf("%d BPM", m.engine.Clock().BPM())
	if m.engine.Clock().Locked() {
		tempo += " (tap)"
	}
	return fmt.Sprintf("%s  %s  %s  swing %s  bar %d step %d",
		tempo, g.OutputMode(), g.ClockResolution(), swing, m.log.bar+1, m.log.step)
}

// Run starts the TUI application
func Run(patch *config.Patch, opts ...engine.Option) error {
	p := tea.NewProgram(New(patch, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
