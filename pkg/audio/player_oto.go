//go:build !headless

package audio

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep"
)

// OutputRate is the sample rate of the playback device.
const OutputRate = 48000

// Player plays a beep streamer on the default audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	src    beep.Streamer
	frames [][2]float64

	mu      sync.Mutex
	started bool
}

// NewPlayer opens the audio device and prepares src for playback. src runs
// at the oscillator rate and is resampled to OutputRate.
func NewPlayer(src beep.Streamer) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   OutputRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	p := &Player{
		ctx: ctx,
		src: beep.Resample(3, Format.SampleRate, OutputRate, src),
	}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// Read implements io.Reader for the oto player.
func (p *Player) Read(b []byte) (int, error) {
	n := len(b) / 4
	if cap(p.frames) < n {
		p.frames = make([][2]float64, n)
	}
	frames := p.frames[:n]
	got, _ := p.src.Stream(frames)
	for i := 0; i < n; i++ {
		v := float32(0)
		if i < got {
			v = float32(frames[i][0])
		}
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return n * 4, nil
}

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		p.player.Play()
		p.started = true
	}
}

// Playing reports whether the device is still consuming samples.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started && p.player.IsPlaying()
}

// Close stops playback.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = false
	return p.player.Close()
}
