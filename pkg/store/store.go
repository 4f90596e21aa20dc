// Package store persists the pattern generator settings as a small binary
// image, the way the module keeps them in EEPROM.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/james-see/grids2midi/pkg/pattern"
)

// Image layout constants.
const (
	Magic   = "GRDS"
	Version = 1

	// magic(4) + version(1) + options(1) + 2*settings(6) + powerOn(1)
	payloadSize = 4 + 1 + 1 + 2*2*pattern.NumParts + 1
	// Size is the length of an encoded image, checksum included.
	Size = payloadSize + 4
)

var (
	ErrShortImage = errors.New("settings image too short")
	ErrBadMagic   = errors.New("not a settings image")
	ErrChecksum   = errors.New("settings image checksum mismatch")
	ErrVersion    = errors.New("unsupported settings image version")
)

// Image is the persisted state of a pattern generator.
type Image struct {
	Options      pattern.Options
	Settings     [2]pattern.Settings
	PowerOnCount uint8
}

// Default returns the image of a freshly initialised generator.
func Default() Image {
	g := pattern.New(nil)
	return Capture(g)
}

// Capture copies the persisted fields out of g.
func Capture(g *pattern.Generator) Image {
	return Image{
		Options: g.Options(),
		Settings: [2]pattern.Settings{
			g.SettingsFor(pattern.OutputModeEuclidean),
			g.SettingsFor(pattern.OutputModeDrums),
		},
		PowerOnCount: g.PowerOnCount(),
	}
}

// Apply loads the image into g.
func (img Image) Apply(g *pattern.Generator) {
	g.SetOptions(img.Options)
	*g.MutableSettingsFor(pattern.OutputModeEuclidean) = img.Settings[pattern.OutputModeEuclidean]
	*g.MutableSettingsFor(pattern.OutputModeDrums) = img.Settings[pattern.OutputModeDrums]
	g.SetPowerOnCount(img.PowerOnCount)
}

// Encode serializes the image.
func Encode(img Image) []byte {
	data := make([]byte, Size)
	copy(data[0:4], Magic)
	data[4] = Version
	data[5] = img.Options.Pack()

	offset := 6
	for _, s := range img.Settings {
		offset += copy(data[offset:], s.Options[:])
		offset += copy(data[offset:], s.Density[:])
	}
	data[offset] = img.PowerOnCount

	binary.LittleEndian.PutUint32(data[payloadSize:], crc32.ChecksumIEEE(data[:payloadSize]))
	return data
}

// Decode parses an encoded image.
func Decode(data []byte) (Image, error) {
	var img Image
	if len(data) < Size {
		return img, fmt.Errorf("%w: %d bytes, need %d", ErrShortImage, len(data), Size)
	}
	if string(data[0:4]) != Magic {
		return img, ErrBadMagic
	}
	if data[4] != Version {
		return img, fmt.Errorf("%w: %d", ErrVersion, data[4])
	}
	if crc32.ChecksumIEEE(data[:payloadSize]) != binary.LittleEndian.Uint32(data[payloadSize:Size]) {
		return img, ErrChecksum
	}

	img.Options.Unpack(data[5])
	offset := 6
	for i := range img.Settings {
		offset += copy(img.Settings[i].Options[:], data[offset:])
		offset += copy(img.Settings[i].Density[:], data[offset:])
	}
	img.PowerOnCount = data[offset]
	return img, nil
}

// FileStore keeps an image in a file.
type FileStore struct {
	Path string
}

// Load reads the image and counts one more power-on. A missing file yields
// the defaults.
func (s FileStore) Load() (Image, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		img := Default()
		img.PowerOnCount = 1
		return img, nil
	}
	if err != nil {
		return Image{}, fmt.Errorf("failed to read settings: %w", err)
	}
	img, err := Decode(data)
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode %s: %w", s.Path, err)
	}
	if img.PowerOnCount < 255 {
		img.PowerOnCount++
	}
	return img, nil
}

// Save writes the image.
func (s FileStore) Save(img Image) error {
	if err := os.WriteFile(s.Path, Encode(img), 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Saver returns a function persisting a generator, suitable for
// engine.WithSettingsSaver.
func (s FileStore) Saver() func(*pattern.Generator) error {
	return func(g *pattern.Generator) error {
		return s.Save(Capture(g))
	}
}
