package converter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/james-see/grids2midi/pkg/pattern"
)

// Step grid characters. Bar lines and spaces are ignored when parsing.
const (
	SeqRest   = '.'
	SeqHit    = 'x'
	SeqAccent = 'X'
	seqBar    = '|'
)

// SeqConverter handles .seq step grid files: one line per lane, a lane name
// followed by one character per step.
//
//	BD X..x|....|x...
type SeqConverter struct{}

// NewSeqConverter creates a new .seq converter
func NewSeqConverter() *SeqConverter {
	return &SeqConverter{}
}

// ParseSeqFile reads a .seq file and returns a Pattern
func (s *SeqConverter) ParseSeqFile(filename string) (*Pattern, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read seq file: %w", err)
	}
	return s.ParseSeq(data)
}

// ParseSeq parses .seq data and returns a Pattern. Lines starting with '#'
// are comments; a "# name" first comment names the pattern.
func (s *SeqConverter) ParseSeq(data []byte) (*Pattern, error) {
	if err := s.ValidateSeq(data); err != nil {
		return nil, err
	}

	p := &Pattern{Name: "Step Grid", Tempo: 120}
	var lanes [NumLanes]string
	seen := 0

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if seen == 0 && p.Name == "Step Grid" {
				if name := strings.TrimSpace(strings.TrimPrefix(line, "#")); name != "" {
					p.Name = name
				}
			}
			continue
		}
		name, cells, _ := strings.Cut(line, " ")
		lane := laneIndex(name)
		if lane < 0 {
			return nil, fmt.Errorf("unknown lane %q", name)
		}
		lanes[lane] = strings.Map(func(r rune) rune {
			if r == seqBar || r == ' ' || r == '\t' {
				return -1
			}
			return r
		}, cells)
		seen++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	length := 0
	for _, l := range lanes {
		length = max(length, len(l))
	}
	p.Steps = make([]Step, length)
	for lane, cells := range lanes {
		mask := uint8(1) << uint(lane)
		for i, c := range cells {
			switch c {
			case SeqHit:
				p.Steps[i].Triggers |= mask
			case SeqAccent:
				p.Steps[i].Triggers |= mask
				p.Steps[i].Accents |= mask
			case SeqRest, '-':
			default:
				return nil, fmt.Errorf("invalid step %q in lane %s", c, LaneNames[lane])
			}
		}
	}
	return p, nil
}

// GenerateSeq creates .seq data from a Pattern, with a bar line every
// quarter note.
func (s *SeqConverter) GenerateSeq(p *Pattern) ([]byte, error) {
	if p == nil {
		return nil, errors.New("nil pattern")
	}
	var b bytes.Buffer
	if p.Name != "" {
		fmt.Fprintf(&b, "# %s\n", p.Name)
	}
	for lane := 0; lane < NumLanes; lane++ {
		b.WriteString(LaneNames[lane])
		b.WriteByte(' ')
		for i, step := range p.Steps {
			if i > 0 && i%(pattern.StepsPerPattern/4) == 0 {
				b.WriteByte(seqBar)
			}
			switch {
			case step.Accent(lane) && step.Trigger(lane):
				b.WriteByte(SeqAccent)
			case step.Trigger(lane):
				b.WriteByte(SeqHit)
			default:
				b.WriteByte(SeqRest)
			}
		}
		b.WriteByte('\n')
	}
	return b.Bytes(), nil
}

// WriteSeqFile writes .seq data to a file
func (s *SeqConverter) WriteSeqFile(p *Pattern, filename string) error {
	data, err := s.GenerateSeq(p)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// ValidateSeq validates .seq data structure
func (s *SeqConverter) ValidateSeq(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("seq data is empty")
	}
	for i, c := range data {
		if c > 127 {
			return fmt.Errorf("invalid seq data: byte at position %d is not ASCII (0x%02X)", i, c)
		}
	}
	return nil
}

func laneIndex(name string) int {
	for i, n := range LaneNames {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}
