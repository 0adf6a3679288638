// Package nulldisplay provides a no-op display implementation.
package nulldisplay

import (
	"image"
	"sync/atomic"

	"github.com/user/maskplay/pkg/ports"
)

// Display is a no-op implementation of ports.Display.
// It discards all frames and only counts them.
type Display struct {
	shown atomic.Int64
}

// New creates a new null Display.
func New() *Display {
	return &Display{}
}

// Show discards the frame.
func (d *Display) Show(img image.Image) error {
	d.shown.Add(1)
	return nil
}

// SetFullscreen does nothing.
func (d *Display) SetFullscreen(on bool) error {
	return nil
}

// Shown returns the number of frames discarded.
func (d *Display) Shown() int64 {
	return d.shown.Load()
}

// Close does nothing.
func (d *Display) Close() error {
	return nil
}

// Ensure Display implements ports.Display
var _ ports.Display = (*Display)(nil)
