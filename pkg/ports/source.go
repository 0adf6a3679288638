package ports

import "image"

// FrameSource yields decoded video frames in display order.
//
// ReadFrame returns io.EOF once the stream is exhausted; Rewind restarts it
// from the first frame. Frames returned by ReadFrame must not be modified by
// the caller.
type FrameSource interface {
	// Size returns the frame dimensions in pixels.
	Size() (width, height int)

	// ReadFrame blocks until the next frame is decoded.
	ReadFrame() (image.Image, error)

	// Rewind seeks back to the first frame.
	Rewind() error

	// Close releases the source.
	Close() error
}
