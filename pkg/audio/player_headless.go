//go:build headless

package audio

import "github.com/gopxl/beep"

// OutputRate is the sample rate of the playback device.
const OutputRate = 48000

// Player drains its streamer without an audio device.
type Player struct {
	src     beep.Streamer
	started bool
}

// NewPlayer returns a player that discards src.
func NewPlayer(src beep.Streamer) (*Player, error) {
	return &Player{src: src}, nil
}

// Read consumes the source and returns silence.
func (p *Player) Read(b []byte) (int, error) {
	frames := make([][2]float64, len(b)/4)
	p.src.Stream(frames)
	clear(b)
	return len(b), nil
}

// Start marks the player as started.
func (p *Player) Start() { p.started = true }

// Playing reports whether Start was called.
func (p *Player) Playing() bool { return p.started }

// Close stops the player.
func (p *Player) Close() error {
	p.started = false
	return nil
}
