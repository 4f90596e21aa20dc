package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/james-see/grids2midi/pkg/converter"
	"github.com/james-see/grids2midi/pkg/engine"
	"github.com/james-see/grids2midi/pkg/pattern"
	"github.com/james-see/grids2midi/pkg/store"
)

func TestPrintPatternPlain(t *testing.T) {
	p := &converter.Pattern{Name: "plain", Steps: make([]converter.Step, pattern.StepsPerPattern), Tempo: 120}
	p.Steps[0] = converter.Step{Triggers: 0x01, Accents: 0x01}
	p.Steps[4] = converter.Step{Triggers: 0x02}

	var buf bytes.Buffer
	if err := printPattern(&buf, p, false); err != nil {
		t.Fatalf("printPattern() error = %v", err)
	}
	want, _ := converter.NewSeqConverter().GenerateSeq(p)
	if buf.String() != string(want) {
		t.Errorf("printPattern() = %q, want %q", buf.String(), want)
	}
}

func TestPrintPatternColor(t *testing.T) {
	p := &converter.Pattern{Steps: make([]converter.Step, 2*pattern.StepsPerPattern), Tempo: 98}

	var buf bytes.Buffer
	if err := printPattern(&buf, p, true); err != nil {
		t.Fatalf("printPattern() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"BD", "SD", "HH", "2 bars at 98 BPM"} {
		if !strings.Contains(out, want) {
			t.Errorf("printPattern() missing %q in %q", want, out)
		}
	}
}

func TestEuclideanLine(t *testing.T) {
	tests := []struct {
		length, density uint8
		want            string
	}{
		{4, 31, "xxxx  (4 hits, 0x0000000f)"},
		{8, 0, "........  (0 hits, 0x00000000)"},
	}
	for _, tt := range tests {
		if got := euclideanLine(tt.length, tt.density); got != tt.want {
			t.Errorf("euclideanLine(%d, %d) = %q, want %q", tt.length, tt.density, got, tt.want)
		}
	}
}

func TestStepLine(t *testing.T) {
	tests := []struct {
		name    string
		state   pattern.State
		accents bool
		want    string
	}{
		{"accented kick", 0x01 | 0x08, true, "  1.03  BD! .. .."},
		{"accent bits ignored", 0x01 | 0x08, false, "  1.03  BD .. .."},
		{"snare and hat", 0x06, true, "  1.03  .. SD HH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := engine.StepRecord{Step: 3, State: tt.state}
			if got := stepLine(r, tt.accents, false); got != tt.want {
				t.Errorf("stepLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintImage(t *testing.T) {
	img := store.Default()
	img.PowerOnCount = 7

	var buf bytes.Buffer
	printImage(&buf, img)
	out := buf.String()
	for _, want := range []string{"Mode:", "Resolution:", "Euclidean:", "Power-ons:   7"} {
		if !strings.Contains(out, want) {
			t.Errorf("printImage() missing %q", want)
		}
	}
}
