package pattern

// euclideanTable holds one 32-bit pattern per (length, density) pair: 32
// lengths times 32 density levels. Bit i is step i of the pattern.
var euclideanTable [StepsPerPattern * 32]uint32

func init() {
	for length := 1; length <= StepsPerPattern; length++ {
		for density := 0; density < 32; density++ {
			hits := (density*length*2 + 31) / 62
			var bits uint32
			for i, hit := range bjorklund(hits, length) {
				if hit {
					bits |= 1 << uint(i)
				}
			}
			euclideanTable[(length-1)*32+density] = bits
		}
	}
}

// EuclideanPattern returns the pattern word for a length in 1..32 and a
// density level in 0..31.
func EuclideanPattern(length, density uint8) uint32 {
	return euclideanTable[uint16(length-1)*32+uint16(density)]
}

// EuclideanHits returns the number of hits placed for length and density.
func EuclideanHits(length, density uint8) int {
	return (int(density)*int(length)*2 + 31) / 62
}

// bjorklund distributes hits as evenly as possible over steps, starting with
// a hit.
func bjorklund(hits, steps int) []bool {
	out := make([]bool, 0, steps)
	if hits <= 0 {
		return append(out, make([]bool, steps)...)
	}
	if hits >= steps {
		for i := 0; i < steps; i++ {
			out = append(out, true)
		}
		return out
	}

	heads := make([][]bool, hits)
	for i := range heads {
		heads[i] = []bool{true}
	}
	tails := make([][]bool, steps-hits)
	for i := range tails {
		tails[i] = []bool{false}
	}

	for len(tails) > 1 {
		n := len(heads)
		if len(tails) < n {
			n = len(tails)
		}
		merged := make([][]bool, n)
		for i := 0; i < n; i++ {
			merged[i] = append(append([]bool{}, heads[i]...), tails[i]...)
		}
		if len(heads) > n {
			tails = heads[n:]
		} else {
			tails = tails[n:]
		}
		heads = merged
	}

	for _, g := range heads {
		out = append(out, g...)
	}
	for _, g := range tails {
		out = append(out, g...)
	}
	return out
}
