// Package fixed provides the small integer helpers used by the pattern
// generator and the oscillators. Everything here is exact integer arithmetic.
package fixed

// U8Mix crossfades a and b. A balance of 0 returns (almost) a, 255 returns
// (almost) b.
func U8Mix(a, b, balance uint8) uint8 {
	return uint8((uint16(a)*uint16(255-balance) + uint16(b)*uint16(balance)) >> 8)
}

// U8U8MulShift8 returns the high byte of a*b.
func U8U8MulShift8(a, b uint8) uint8 {
	return uint8((uint16(a) * uint16(b)) >> 8)
}

// U16U8MulShift8 returns (a*b) >> 8.
func U16U8MulShift8(a uint16, b uint8) uint16 {
	return uint16((uint32(a) * uint32(b)) >> 8)
}

// Mix16 crossfades two signed samples.
func Mix16(a, b int16, balance uint8) int16 {
	return a + int16((int32(b)-int32(a))*int32(balance)>>8)
}

// Interpolate reads a 257-entry table (256 points plus a guard point) at a
// 16-bit phase: the high byte selects the entry, the low byte the position
// between it and the next one.
func Interpolate(table []int16, phase uint16) int16 {
	index := phase >> 8
	a := int32(table[index])
	b := int32(table[index+1])
	return int16(a + (b-a)*int32(phase&0xff)>>8)
}

// InterpolateU16 is the unsigned variant of Interpolate used with the pitch
// tables, where the fraction is a 4-bit nibble.
func InterpolateU16(a, b uint16, nibble uint8) uint16 {
	return uint16(int32(a) + (int32(b)-int32(a))*int32(nibble&0x0f)>>4)
}
