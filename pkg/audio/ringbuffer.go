// Package audio moves oscillator samples to their consumers: a lock-free
// ring buffer between the renderer and the output, a beep streamer, WAV
// export and live playback.
package audio

import "sync/atomic"

// RingBuffer is a single-producer single-consumer FIFO of 12-bit samples.
// The producer calls Writable and Overwrite, the consumer Readable and Read;
// positions are published atomically so the two sides may run on different
// goroutines.
type RingBuffer struct {
	data     []uint16
	mask     uint64
	readPos  atomic.Uint64
	writePos atomic.Uint64

	overruns  atomic.Uint64
	underruns atomic.Uint64
}

// NewRingBuffer returns a buffer holding at least size samples, rounded up
// to a power of two.
func NewRingBuffer(size int) *RingBuffer {
	n := nextPowerOf2(uint64(size))
	return &RingBuffer{
		data: make([]uint16, n),
		mask: n - 1,
	}
}

// Size returns the capacity in samples.
func (b *RingBuffer) Size() int { return len(b.data) }

// Readable returns the number of samples waiting to be read.
func (b *RingBuffer) Readable() int {
	return int(b.writePos.Load() - b.readPos.Load())
}

// Writable returns the free space in samples.
func (b *RingBuffer) Writable() int {
	return len(b.data) - b.Readable()
}

// Overwrite appends v without blocking. The caller is expected to have
// checked Writable; a sample that does not fit is dropped and counted.
func (b *RingBuffer) Overwrite(v uint16) {
	w := b.writePos.Load()
	if w-b.readPos.Load() >= uint64(len(b.data)) {
		b.overruns.Add(1)
		return
	}
	b.data[w&b.mask] = v
	b.writePos.Store(w + 1)
}

// Read returns the oldest sample, or the silence level when the buffer is
// empty.
func (b *RingBuffer) Read() uint16 {
	r := b.readPos.Load()
	if r == b.writePos.Load() {
		b.underruns.Add(1)
		return silence
	}
	v := b.data[r&b.mask]
	b.readPos.Store(r + 1)
	return v
}

// ReadInto copies up to len(dst) samples into dst and returns the count. A
// short read is not an underrun; reading from an empty buffer is.
func (b *RingBuffer) ReadInto(dst []uint16) int {
	r := b.readPos.Load()
	available := b.writePos.Load() - r
	if available == 0 && len(dst) > 0 {
		b.underruns.Add(1)
		return 0
	}
	n := min(uint64(len(dst)), available)
	for i := uint64(0); i < n; i++ {
		dst[i] = b.data[(r+i)&b.mask]
	}
	b.readPos.Store(r + n)
	return int(n)
}

// Flush discards every pending sample.
func (b *RingBuffer) Flush() {
	b.readPos.Store(b.writePos.Load())
}

// Stats returns the overrun and underrun counts.
func (b *RingBuffer) Stats() (overruns, underruns uint64) {
	return b.overruns.Load(), b.underruns.Load()
}

func nextPowerOf2(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}
