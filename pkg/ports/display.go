package ports

import "image"

// Display presents composited frames.
type Display interface {
	// Show presents one frame. It may block until the frame is consumed.
	Show(img image.Image) error

	// SetFullscreen switches between windowed and fullscreen presentation.
	// Displays without a window ignore it.
	SetFullscreen(on bool) error

	// Close releases the display.
	Close() error
}
