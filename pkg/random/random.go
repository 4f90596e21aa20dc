// Package random implements the 16-bit Galois LFSR that feeds the pattern
// generator's humanization and the noise oscillators.
package random

// Taps of the x^16 + x^14 + x^13 + x^11 + 1 feedback polynomial.
const Taps uint16 = 0xb400

// DefaultSeed is the power-on state of the register.
const DefaultSeed uint16 = 0x0021

// Source is a maximal-length 16-bit LFSR. Its period is 65535 over the
// non-zero states; the all-zero state is never reached.
type Source struct {
	state uint16
}

// New returns a Source seeded with DefaultSeed.
func New() *Source {
	return &Source{state: DefaultSeed}
}

// Seed sets the register. A zero seed would lock the register at zero, so it
// is replaced with DefaultSeed.
func (s *Source) Seed(v uint16) {
	if v == 0 {
		v = DefaultSeed
	}
	s.state = v
}

// Update advances the register by one step.
func (s *Source) Update() {
	lsb := s.state & 1
	s.state >>= 1
	if lsb != 0 {
		s.state ^= Taps
	}
}

// State returns the current register value.
func (s *Source) State() uint16 {
	return s.state
}

// StateMSB returns the top byte of the register.
func (s *Source) StateMSB() uint8 {
	return uint8(s.state >> 8)
}

// GetByte advances the register and returns its top byte, which is
// statistically better behaved than the low byte.
func (s *Source) GetByte() uint8 {
	s.Update()
	return s.StateMSB()
}
