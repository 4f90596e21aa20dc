// Package clock implements the global tempo clock: a 32-bit phase accumulator
// ticked by the control loop, with edge detection and swing.
package clock

// UpdateRate is the number of Tick calls per second (the control loop rate).
const UpdateRate = 8000

// Resolution selects the number of clock edges per quarter note.
type Resolution uint8

const (
	Resolution4PPQN Resolution = iota
	Resolution8PPQN
	Resolution24PPQN
)

// PPQN returns the pulses per quarter note of the resolution.
func (r Resolution) PPQN() uint32 {
	switch r {
	case Resolution4PPQN:
		return 4
	case Resolution8PPQN:
		return 8
	default:
		return 24
	}
}

func (r Resolution) String() string {
	switch r {
	case Resolution4PPQN:
		return "4ppqn"
	case Resolution8PPQN:
		return "8ppqn"
	case Resolution24PPQN:
		return "24ppqn"
	default:
		return "unknown"
	}
}

// Clock is the tempo phase accumulator. One full revolution is 2^31: the top
// bit of the phase is reserved so that swing can move the wrap point past it.
type Clock struct {
	bpm            uint16
	phase          uint32
	phaseIncrement uint32
	fallingEdge    uint8
	locked         bool
}

// New returns an initialized Clock.
func New() *Clock {
	c := &Clock{}
	c.Init()
	return c
}

// Init restores the power-on state: 120 BPM at 24 PPQN, unlocked.
func (c *Clock) Init() {
	c.Update(120, Resolution24PPQN)
	c.phase = 0
	c.fallingEdge = 0x40
	c.locked = false
}

// Update computes the phase increment for bpm at the given resolution so that
// 2^31 / PhaseIncrement() ticks separate two rising edges. bpm must be
// validated by the caller.
func (c *Clock) Update(bpm uint16, resolution Resolution) {
	num := (uint64(1) << 31) * uint64(bpm) * uint64(resolution.PPQN())
	den := uint64(60 * UpdateRate)
	c.phaseIncrement = uint32((num + den/2) / den)
	c.bpm = bpm
}

// Reset rewinds the phase.
func (c *Clock) Reset() {
	c.phase = 0
}

// Tick advances the phase. Overflow is intentional.
func (c *Clock) Tick() {
	c.phase += c.phaseIncrement
}

// Wrap folds the phase back to the start of a period. Without swing the
// period is exactly 2^31 and the falling edge sits at 50%. With swing the wrap
// point moves by amount/128 of a period and the falling edge follows.
func (c *Clock) Wrap(amount int8) {
	top := uint8(c.phase >> 24)
	if amount == 0 {
		top &= 0x7f
		c.fallingEdge = 0x40
	} else {
		wrap := uint8(int16(128) + int16(amount))
		if top >= wrap {
			top -= wrap
		}
		c.fallingEdge = wrap >> 1
	}
	c.phase = c.phase&0x00ffffff | uint32(top)<<24
}

// RaisingEdge reports whether the phase wrapped during the last Tick/Wrap.
func (c *Clock) RaisingEdge() bool {
	return c.phase < c.phaseIncrement
}

// PastFallingEdge reports whether the phase is in the low half of the period.
func (c *Clock) PastFallingEdge() bool {
	return uint8(c.phase>>24) >= c.fallingEdge
}

// Lock freezes the tempo against pot changes (set by tap tempo).
func (c *Clock) Lock() { c.locked = true }

// Unlock releases a tap-tempo lock.
func (c *Clock) Unlock() { c.locked = false }

// Locked reports whether tap tempo has fixed the BPM.
func (c *Clock) Locked() bool { return c.locked }

// BPM returns the tempo last passed to Update.
func (c *Clock) BPM() uint16 { return c.bpm }

// Phase returns the raw accumulator.
func (c *Clock) Phase() uint32 { return c.phase }

// PhaseIncrement returns the per-tick increment.
func (c *Clock) PhaseIncrement() uint32 { return c.phaseIncrement }

// FallingEdge returns the falling-edge threshold on the top phase byte.
func (c *Clock) FallingEdge() uint8 { return c.fallingEdge }
