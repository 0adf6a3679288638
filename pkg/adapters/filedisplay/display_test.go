package filedisplay

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/maskplay/pkg/mocks"
	"github.com/user/maskplay/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("snapshots")

func TestDisplay_SavesEveryNth(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			if format != ports.FormatPNG {
				t.Errorf("expected PNG format, got %d", format)
			}
			return []byte("png"), nil
		},
	}
	d := New(testBaseDir, 3, fs, renderer, nil)

	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < 7; i++ {
		if err := d.Show(frame); err != nil {
			t.Fatalf("Show failed: %v", err)
		}
	}

	if d.Saved() != 3 {
		t.Errorf("expected 3 snapshots, got %d", d.Saved())
	}
	for _, name := range []string{"frame-000000.png", "frame-000003.png", "frame-000006.png"} {
		path := filepath.Join(testBaseDir, name)
		if _, ok := fs.GetFile(path); !ok {
			t.Errorf("expected snapshot at %s", path)
		}
	}
	if len(fs.GetAllFiles()) != 3 {
		t.Errorf("expected 3 files, got %d", len(fs.GetAllFiles()))
	}
}

func TestDisplay_EveryBelowOne(t *testing.T) {
	fs := mocks.NewFileSystem()
	d := New(testBaseDir, 0, fs, &mocks.Renderer{}, nil)

	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	d.Show(frame)
	d.Show(frame)

	if d.Saved() != 2 {
		t.Errorf("expected every frame saved, got %d", d.Saved())
	}
}

func TestDisplay_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}
	d := New(testBaseDir, 1, fs, &mocks.Renderer{}, nil)

	if err := d.Show(image.NewRGBA(image.Rect(0, 0, 2, 2))); err == nil {
		t.Error("expected error from WriteFile")
	}
	if d.Saved() != 0 {
		t.Errorf("expected no snapshots, got %d", d.Saved())
	}
}

func TestDisplay_FullscreenIgnored(t *testing.T) {
	d := New(testBaseDir, 1, mocks.NewFileSystem(), &mocks.Renderer{}, nil)
	if err := d.SetFullscreen(true); err != nil {
		t.Errorf("SetFullscreen failed: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
