package pattern

import (
	"fmt"
	"strings"
)

// State is one snapshot of the output bitfield. Bits 0-2 are the part
// triggers. Bits 3-5 carry per-part accents (drums) or resets (euclidean),
// or, with the clock output enabled, the common/clock/reset outputs. Bit 6
// is high for every evaluated pulse and bit 7 is a random bit.
type State uint8

const (
	BitCommon State = 0x08
	BitClock  State = 0x10
	BitReset  State = 0x20
	BitHigh   State = 0x40
	BitRandom State = 0x80

	triggerMask State = 0x07
)

// Trigger reports whether part fired.
func (s State) Trigger(part int) bool {
	return s&(1<<uint(part)) != 0
}

// Triggers returns the three trigger bits.
func (s State) Triggers() uint8 {
	return uint8(s & triggerMask)
}

// Accent reports the per-part bit at position 3+part. It is meaningful only
// when the clock output is disabled.
func (s State) Accent(part int) bool {
	return s&(1<<uint(3+part)) != 0
}

// Accents returns bits 3-5 shifted down.
func (s State) Accents() uint8 {
	return uint8(s>>3) & 0x07
}

// Common reports the "any accent" / "any reset" output.
func (s State) Common() bool { return s&BitCommon != 0 }

// Clock reports the clock output.
func (s State) Clock() bool { return s&BitClock != 0 }

// Reset reports the pattern reset output.
func (s State) Reset() bool { return s&BitReset != 0 }

// Random reports the random bit.
func (s State) Random() bool { return s&BitRandom != 0 }

func (s State) String() string {
	var b strings.Builder
	for part := 0; part < NumParts; part++ {
		switch {
		case s.Trigger(part) && s.Accent(part):
			b.WriteByte('X')
		case s.Trigger(part):
			b.WriteByte('x')
		default:
			b.WriteByte('.')
		}
	}
	fmt.Fprintf(&b, " %08b", uint8(s))
	return b.String()
}
