package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/james-see/grids2midi/pkg/clock"
	"github.com/james-see/grids2midi/pkg/pattern"
	"github.com/james-see/grids2midi/pkg/random"
)

func testImage() Image {
	return Image{
		Options: pattern.Options{
			ClockResolution: clock.Resolution8PPQN,
			TapTempo:        true,
			Swing:           true,
			OutputMode:      pattern.OutputModeEuclidean,
		},
		Settings: [2]pattern.Settings{
			{Options: [3]uint8{16, 12, 7}, Density: [3]uint8{10, 20, 30}},
			{Options: [3]uint8{1, 2, 3}, Density: [3]uint8{200, 100, 50}},
		},
		PowerOnCount: 9,
	}
}

func TestEncodeDecode(t *testing.T) {
	img := testImage()
	data := Encode(img)
	if len(data) != Size {
		t.Fatalf("len(Encode()) = %d, want %d", len(data), Size)
	}
	if string(data[:4]) != Magic {
		t.Errorf("magic = %q, want %q", data[:4], Magic)
	}
	if data[5] != img.Options.Pack() {
		t.Errorf("options byte = %#x, want %#x", data[5], img.Options.Pack())
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != img {
		t.Errorf("Decode() = %+v, want %+v", got, img)
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := Encode(testImage())

	corrupt := func(i int, b byte) []byte {
		d := append([]byte(nil), valid...)
		d[i] = b
		return d
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrShortImage},
		{"truncated", valid[:Size-1], ErrShortImage},
		{"magic", corrupt(0, 'X'), ErrBadMagic},
		{"version", corrupt(4, 7), ErrVersion},
		{"density", corrupt(9, 0xff), ErrChecksum},
		{"checksum", corrupt(Size-1, valid[Size-1]^1), ErrChecksum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestApplyCapture(t *testing.T) {
	img := testImage()
	g := pattern.New(random.New())
	img.Apply(g)

	if g.OutputMode() != pattern.OutputModeEuclidean || !g.TapTempo() || !g.Swing() {
		t.Errorf("Apply() options = %+v", g.Options())
	}
	if got := g.Settings(); got != img.Settings[pattern.OutputModeEuclidean] {
		t.Errorf("Settings() = %+v, want %+v", got, img.Settings[pattern.OutputModeEuclidean])
	}
	if got := Capture(g); got != img {
		t.Errorf("Capture() = %+v, want %+v", got, img)
	}
}

func TestFileStore(t *testing.T) {
	s := FileStore{Path: filepath.Join(t.TempDir(), "grids.bin")}

	img, err := s.Load()
	if err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}
	if img.PowerOnCount != 1 {
		t.Errorf("PowerOnCount = %d, want 1", img.PowerOnCount)
	}
	if img.Options.OutputMode != pattern.OutputModeDrums {
		t.Errorf("default mode = %v, want drums", img.Options.OutputMode)
	}

	for boot := 2; boot <= 6; boot++ {
		if err := s.Save(img); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if img, err = s.Load(); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if int(img.PowerOnCount) != boot {
			t.Errorf("PowerOnCount = %d, want %d", img.PowerOnCount, boot)
		}
	}

	g := pattern.New(random.New())
	img.Apply(g)
	if g.FactoryTesting() {
		t.Errorf("FactoryTesting() = true after %d boots", img.PowerOnCount)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grids.bin")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (FileStore{Path: path}).Load(); !errors.Is(err, ErrShortImage) {
		t.Errorf("Load() error = %v, want %v", err, ErrShortImage)
	}
}

func TestSaver(t *testing.T) {
	s := FileStore{Path: filepath.Join(t.TempDir(), "grids.bin")}
	g := pattern.New(random.New())
	g.SetSwing(true)
	if err := s.Saver()(g); err != nil {
		t.Fatalf("Saver() error = %v", err)
	}
	img, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !img.Options.Swing {
		t.Error("saved image lost the swing option")
	}
}
