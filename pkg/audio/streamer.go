package audio

import (
	"bytes"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/james-see/grids2midi/pkg/oscillator"
)

const silence = oscillator.SilenceLevel

// Format is the beep format of the oscillator output.
var Format = beep.Format{
	SampleRate:  beep.SampleRate(oscillator.SampleRate),
	NumChannels: 1,
	Precision:   2,
}

// Streamer is a beep.Streamer pulling blocks from a digital oscillator
// through a ring buffer.
type Streamer struct {
	osc       *oscillator.DigitalOscillator
	buf       *RingBuffer
	remaining int
}

// NewStreamer returns a streamer rendering osc. A negative length streams
// forever, otherwise the stream ends after length samples.
func NewStreamer(osc *oscillator.DigitalOscillator, length int) *Streamer {
	return &Streamer{
		osc:       osc,
		buf:       NewRingBuffer(4 * oscillator.AudioBlockSize),
		remaining: length,
	}
}

// Stream implements beep.Streamer.
func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.remaining == 0 {
		return 0, false
	}
	for i := range samples {
		if s.remaining == 0 {
			break
		}
		if s.buf.Readable() == 0 {
			for s.buf.Writable() >= oscillator.AudioBlockSize {
				s.osc.Render(s.buf)
			}
		}
		v := ToFloat(s.buf.Read())
		samples[i][0] = v
		samples[i][1] = v
		n++
		if s.remaining > 0 {
			s.remaining--
		}
	}
	return n, true
}

// Err implements beep.Streamer.
func (s *Streamer) Err() error { return nil }

// ToFloat maps a 12-bit unsigned sample to [-1, 1).
func ToFloat(sample uint16) float64 {
	return (float64(sample) - silence) / silence
}

// EncodeWAV renders seconds of osc into w as 16-bit mono WAV.
func EncodeWAV(w io.WriteSeeker, osc *oscillator.DigitalOscillator, seconds float64) error {
	n := Format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	return wav.Encode(w, NewStreamer(osc, n), Format)
}

// Capture renders n raw samples of osc.
func Capture(osc *oscillator.DigitalOscillator, n int) []uint16 {
	buf := NewRingBuffer(oscillator.AudioBlockSize)
	out := make([]uint16, n)
	for filled := 0; filled < n; {
		osc.Render(buf)
		filled += buf.ReadInto(out[filled:])
	}
	buf.Flush()
	return out
}

// RenderWAV renders seconds of osc as an in-memory WAV file.
func RenderWAV(osc *oscillator.DigitalOscillator, seconds float64) ([]byte, error) {
	var f memFile
	if err := EncodeWAV(&f, osc, seconds); err != nil {
		return nil, err
	}
	return f.Bytes(), nil
}

// memFile is an io.WriteSeeker over a growing buffer; the WAV encoder seeks
// back to patch the header sizes.
type memFile struct {
	bytes.Buffer
	pos int
}

func (f *memFile) Write(p []byte) (int, error) {
	buf := f.Buffer.Bytes()
	if f.pos < len(buf) {
		n := copy(buf[f.pos:], p)
		if n < len(p) {
			f.Buffer.Write(p[n:])
		}
	} else {
		f.Buffer.Write(p)
	}
	f.pos += len(p)
	return len(p), nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		f.pos = int(offset)
	case io.SeekCurrent:
		f.pos += int(offset)
	case io.SeekEnd:
		f.pos = f.Buffer.Len() + int(offset)
	}
	return int64(f.pos), nil
}
