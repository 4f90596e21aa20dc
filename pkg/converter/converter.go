package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/grids2midi/pkg/store"
)

// Format represents a file format
type Format string

const (
	FormatMIDI    Format = "midi"
	FormatSeq     Format = "seq"
	FormatSyx     Format = "syx"
	FormatImage   Format = "image"
	FormatUnknown Format = "unknown"
)

// DetectFormat detects the format of a file based on extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mid", ".midi":
		return FormatMIDI
	case ".seq":
		return FormatSeq
	case ".syx":
		return FormatSyx
	case ".bin", ".grds":
		return FormatImage
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}

	// Check for MIDI file signature "MThd"
	if string(data[:4]) == "MThd" {
		return FormatMIDI
	}

	// Check for a settings image
	if string(data[:4]) == store.Magic {
		return FormatImage
	}

	// Check for SysEx (starts with F0)
	if data[0] == SysExStart {
		return FormatSyx
	}

	// Assume a text step grid for other data
	return FormatSeq
}

// ConvertFile converts a file from one format to another
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	outputFormat := DetectFormat(outputPath)
	if outputFormat == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	inputFormat := DetectFormat(inputPath)
	if inputFormat == FormatUnknown {
		inputFormat = DetectFormatFromContent(data)
	}

	outputData, err := c.Convert(data, inputFormat, outputFormat)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// Convert converts data between two formats
func (c *Converter) Convert(data []byte, from, to Format) ([]byte, error) {
	switch {
	case from == FormatMIDI && to == FormatMIDI:
		return c.RemapMIDI(data)
	case from == FormatMIDI && to == FormatSeq:
		return c.MIDIToSeq(data)
	case from == FormatSeq && to == FormatMIDI:
		return c.SeqToMIDI(data)
	case from == FormatSyx && to == FormatImage:
		return c.SyxToImage(data)
	case from == FormatImage && to == FormatSyx:
		return c.ImageToSyx(data)
	default:
		return nil, fmt.Errorf("unsupported conversion: %s to %s", from, to)
	}
}

// RemapMIDI reads MIDI data with the source note map and writes it with the
// device note map
func (c *Converter) RemapMIDI(midiData []byte) ([]byte, error) {
	midiConv := NewMIDIConverter()
	p, err := midiConv.ParseMIDI(midiData, c.source)
	if err != nil {
		return nil, err
	}
	return midiConv.GenerateMIDI(p, c.device)
}

// MIDIToSeq converts MIDI data to a step grid
func (c *Converter) MIDIToSeq(midiData []byte) ([]byte, error) {
	p, err := NewMIDIConverter().ParseMIDI(midiData, c.source)
	if err != nil {
		return nil, err
	}
	return NewSeqConverter().GenerateSeq(p)
}

// SeqToMIDI converts a step grid to MIDI format
func (c *Converter) SeqToMIDI(seqData []byte) ([]byte, error) {
	p, err := NewSeqConverter().ParseSeq(seqData)
	if err != nil {
		return nil, err
	}
	return NewMIDIConverter().GenerateMIDI(p, c.device)
}

// SyxToImage converts a settings dump to a settings image
func (c *Converter) SyxToImage(syxData []byte) ([]byte, error) {
	img, err := NewSyxConverter().ParseSyx(syxData)
	if err != nil {
		return nil, err
	}
	return store.Encode(img), nil
}

// ImageToSyx converts a settings image to a settings dump
func (c *Converter) ImageToSyx(imageData []byte) ([]byte, error) {
	img, err := store.Decode(imageData)
	if err != nil {
		return nil, err
	}
	return NewSyxConverter().GenerateSyx(img), nil
}

// GetSupportedConversions returns a list of supported conversion paths
func GetSupportedConversions() []string {
	return []string{
		"midi -> midi",
		"midi -> seq",
		"seq -> midi",
		"syx -> image",
		"image -> syx",
	}
}
