// Package filedisplay provides a display that saves snapshots of the
// composited frames to files.
package filedisplay

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/user/maskplay/pkg/ports"
)

// Display saves every Nth shown frame as a PNG file.
type Display struct {
	baseDir  string
	every    int
	fs       ports.FileSystem
	renderer ports.Renderer
	logger   ports.Logger

	mu         sync.Mutex
	shown      int
	saved      int
	fullscreen bool
}

// New creates a new snapshot Display. every below 1 saves every frame.
func New(baseDir string, every int, fs ports.FileSystem, renderer ports.Renderer, logger ports.Logger) *Display {
	if every < 1 {
		every = 1
	}
	return &Display{
		baseDir:  baseDir,
		every:    every,
		fs:       fs,
		renderer: renderer,
		logger:   logger,
	}
}

// Show counts the frame and saves it when the interval is reached.
// The first frame is always saved.
func (d *Display) Show(img image.Image) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	index := d.shown
	d.shown++
	if index%d.every != 0 {
		return nil
	}

	if err := d.fs.MkdirAll(d.baseDir); err != nil {
		return err
	}
	data, err := d.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	path := filepath.Join(d.baseDir, fmt.Sprintf("frame-%06d.png", index))
	if err := d.fs.WriteFile(path, data); err != nil {
		return err
	}
	d.saved++
	if d.logger != nil {
		d.logger.Debug("Saved snapshot %s", path)
	}
	return nil
}

// SetFullscreen records the mode; snapshots have no window.
func (d *Display) SetFullscreen(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fullscreen = on
	return nil
}

// Saved returns the number of snapshots written.
func (d *Display) Saved() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saved
}

// Close does nothing.
func (d *Display) Close() error {
	return nil
}

// Ensure Display implements ports.Display
var _ ports.Display = (*Display)(nil)
