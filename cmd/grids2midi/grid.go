package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/james-see/grids2midi/pkg/converter"
	"github.com/james-see/grids2midi/pkg/engine"
	"github.com/james-see/grids2midi/pkg/pattern"
	"github.com/james-see/grids2midi/pkg/store"
)

var (
	hitStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#39FF14"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")).Bold(true)
	restStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true)
)

// printPattern writes p as a colored grid, or as .seq text when color is
// false so that the output can be piped into a file.
func printPattern(w io.Writer, p *converter.Pattern, color bool) error {
	if !color {
		data, err := converter.NewSeqConverter().GenerateSeq(p)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	var b strings.Builder
	if p.Name != "" {
		b.WriteString(nameStyle.Render(p.Name))
		b.WriteByte('\n')
	}
	for lane := 0; lane < converter.NumLanes; lane++ {
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-3s", converter.LaneNames[lane])))
		for i, step := range p.Steps {
			if i%(pattern.StepsPerPattern/4) == 0 {
				b.WriteByte(' ')
			}
			switch {
			case step.Trigger(lane) && step.Accent(lane):
				b.WriteString(accentStyle.Render("■"))
			case step.Trigger(lane):
				b.WriteString(hitStyle.Render("■"))
			default:
				b.WriteString(restStyle.Render("·"))
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d bars at %.0f BPM\n", p.Bars(), p.Tempo)
	_, err := io.WriteString(w, b.String())
	return err
}

// euclideanLine formats the pattern word of length steps.
func euclideanLine(length, density uint8) string {
	word := pattern.EuclideanPattern(length, density)
	var b strings.Builder
	for i := uint8(0); i < length; i++ {
		if word&(1<<uint32(i)) != 0 {
			b.WriteByte(converter.SeqHit)
		} else {
			b.WriteByte(converter.SeqRest)
		}
	}
	return fmt.Sprintf("%s  (%d hits, 0x%08x)", b.String(), pattern.EuclideanHits(length, density), word)
}

// stepLine formats one evaluated step for real-time output. accents tells
// whether bits 3-5 of the state carry drum accents.
func stepLine(r engine.StepRecord, accents, color bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d.%02d ", r.Bar+1, r.Step)
	for lane := 0; lane < converter.NumLanes; lane++ {
		name := converter.LaneNames[lane]
		b.WriteByte(' ')
		switch {
		case !r.State.Trigger(lane):
			cell := strings.Repeat(".", len(name))
			if color {
				cell = restStyle.Render(cell)
			}
			b.WriteString(cell)
		case accents && r.State.Accent(lane):
			if color {
				name = accentStyle.Render(name)
			} else {
				name = strings.ToUpper(name) + "!"
			}
			b.WriteString(name)
		default:
			if color {
				name = hitStyle.Render(name)
			}
			b.WriteString(name)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// printImage writes a readable dump of a settings image.
func printImage(w io.Writer, img store.Image) {
	o := img.Options
	fmt.Fprintf(w, "Mode:        %s\n", o.OutputMode)
	fmt.Fprintf(w, "Resolution:  %s\n", o.ClockResolution)
	fmt.Fprintf(w, "Tap tempo:   %s\n", onOff(o.TapTempo))
	fmt.Fprintf(w, "Swing:       %s\n", onOff(o.Swing))
	fmt.Fprintf(w, "Gate mode:   %s\n", onOff(o.GateMode))
	fmt.Fprintf(w, "Clock out:   %s\n", onOff(o.OutputClock))

	d := img.Settings[pattern.OutputModeDrums]
	fmt.Fprintf(w, "Drums:       x=%d y=%d randomness=%d density=%v\n",
		d.Options[0], d.Options[1], d.Options[2], d.Density)
	e := img.Settings[pattern.OutputModeEuclidean]
	fmt.Fprintf(w, "Euclidean:   length=%v density=%v\n", e.Options, e.Density)
	fmt.Fprintf(w, "Power-ons:   %d\n", img.PowerOnCount)
}
