package converter

import (
	"errors"
	"fmt"
	"os"

	"github.com/james-see/grids2midi/pkg/store"
)

// SysEx constants
const (
	SysExStart = 0xF0
	SysExEnd   = 0xF7

	// NonCommercialID is the manufacturer ID reserved for non-commercial use.
	NonCommercialID = 0x7D
	// ModelID identifies the settings dump among non-commercial messages.
	ModelID = 0x47

	SettingsDump    = 0x01
	SettingsRequest = 0x02

	syxHeaderSize = 4 // F0 7D model command
)

// ErrSyxChecksum is returned when a dump's checksum does not match.
var ErrSyxChecksum = errors.New("invalid SysEx checksum")

// SyxConverter handles .syx settings dumps
type SyxConverter struct{}

// NewSyxConverter creates a new .syx converter
func NewSyxConverter() *SyxConverter {
	return &SyxConverter{}
}

// ParseSyxFile reads a .syx file and returns the settings image
func (s *SyxConverter) ParseSyxFile(filename string) (store.Image, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return store.Image{}, fmt.Errorf("failed to read syx file: %w", err)
	}
	return s.ParseSyx(data)
}

// ParseSyx decodes a settings dump. The payload is the store image split in
// nibbles, high nibble first, followed by an XOR checksum of the nibbles.
func (s *SyxConverter) ParseSyx(data []byte) (store.Image, error) {
	if err := s.ValidateSyx(data); err != nil {
		return store.Image{}, err
	}
	if !IsSettingsSyx(data) {
		return store.Image{}, errors.New("not a settings dump")
	}

	body := data[syxHeaderSize : len(data)-1]
	if len(body) != 2*store.Size+1 {
		return store.Image{}, fmt.Errorf("settings dump payload is %d bytes, want %d", len(body), 2*store.Size+1)
	}
	nibbles, checksum := body[:len(body)-1], body[len(body)-1]
	if xorChecksum(nibbles) != checksum {
		return store.Image{}, ErrSyxChecksum
	}

	raw := make([]byte, store.Size)
	for i := range raw {
		hi, lo := nibbles[2*i], nibbles[2*i+1]
		if hi > 0x0F || lo > 0x0F {
			return store.Image{}, fmt.Errorf("invalid nibble at byte %d", i)
		}
		raw[i] = hi<<4 | lo
	}
	return store.Decode(raw)
}

// GenerateSyx creates a settings dump from an image
func (s *SyxConverter) GenerateSyx(img store.Image) []byte {
	raw := store.Encode(img)
	out := make([]byte, 0, syxHeaderSize+2*len(raw)+2)
	out = append(out, SysExStart, NonCommercialID, ModelID, SettingsDump)
	for _, b := range raw {
		out = append(out, b>>4, b&0x0F)
	}
	out = append(out, xorChecksum(out[syxHeaderSize:]), SysExEnd)
	return out
}

// GenerateRequest creates the message asking a device for its settings.
func (s *SyxConverter) GenerateRequest() []byte {
	return []byte{SysExStart, NonCommercialID, ModelID, SettingsRequest, SysExEnd}
}

// WriteSyxFile writes a settings dump to a file
func (s *SyxConverter) WriteSyxFile(img store.Image, filename string) error {
	return os.WriteFile(filename, s.GenerateSyx(img), 0644)
}

// ValidateSyx validates .syx data structure
func (s *SyxConverter) ValidateSyx(data []byte) error {
	if len(data) < 2 {
		return errors.New("syx data too short")
	}

	if data[0] != SysExStart {
		return fmt.Errorf("invalid SysEx: expected start byte 0x%02X, got 0x%02X", SysExStart, data[0])
	}

	if data[len(data)-1] != SysExEnd {
		return fmt.Errorf("invalid SysEx: expected end byte 0x%02X, got 0x%02X", SysExEnd, data[len(data)-1])
	}

	// Check all data bytes are 7-bit (valid MIDI data)
	for i := 1; i < len(data)-1; i++ {
		if data[i] > 127 {
			return fmt.Errorf("invalid SysEx: byte at position %d is > 127 (0x%02X)", i, data[i])
		}
	}

	return nil
}

// ExtractManufacturerID extracts the manufacturer ID from SysEx data
func ExtractManufacturerID(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, errors.New("syx data too short for manufacturer ID")
	}

	if data[0] != SysExStart {
		return nil, errors.New("invalid SysEx start")
	}

	// Check if extended manufacturer ID (starts with 0x00)
	if data[1] == 0x00 {
		if len(data) < 5 {
			return nil, errors.New("syx data too short for extended manufacturer ID")
		}
		return data[1:4], nil
	}

	// Single byte manufacturer ID
	return data[1:2], nil
}

// IsSettingsSyx checks if the SysEx data is a settings dump
func IsSettingsSyx(data []byte) bool {
	return len(data) > syxHeaderSize &&
		data[0] == SysExStart &&
		data[1] == NonCommercialID &&
		data[2] == ModelID &&
		data[3] == SettingsDump
}

func xorChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum & 0x7F
}
