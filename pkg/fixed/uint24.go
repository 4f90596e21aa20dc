package fixed

// Uint24 is a 16.8 fixed-point value kept in the low 24 bits of a uint32.
// The 16-bit integral part is one full oscillator cycle; the 8-bit fractional
// part carries sub-sample precision.
type Uint24 uint32

const uint24Mask = 0x00ffffff

// FromParts builds a value from its integral and fractional parts.
func FromParts(integral uint16, fractional uint8) Uint24 {
	return Uint24(uint32(integral)<<8 | uint32(fractional))
}

// Integral returns the 16-bit integral part.
func (u Uint24) Integral() uint16 {
	return uint16(uint32(u) >> 8)
}

// Fractional returns the 8-bit fractional part.
func (u Uint24) Fractional() uint8 {
	return uint8(u)
}

// Add returns u+v modulo 2^24 and whether the integral part wrapped.
func (u Uint24) Add(v Uint24) (Uint24, bool) {
	sum := uint32(u) + uint32(v)
	return Uint24(sum & uint24Mask), sum > uint24Mask
}

// ShiftRight divides by 2^n, dropping the bits shifted out of the fraction.
func (u Uint24) ShiftRight(n uint) Uint24 {
	return Uint24((uint32(u) & uint24Mask) >> n)
}
