package editor

import (
	"errors"
	"image"

	"github.com/user/maskplay/pkg/shape"
)

// Save encodes every shape into a project document. On a zero-size canvas
// the shapes are saved without points.
func (c *Canvas) Save() ([]byte, error) {
	shapes := make([]shape.NormalizedShape, len(c.shapes))
	for i, s := range c.shapes {
		n, err := shape.Normalize(s.Points, s.Closed, c.width, c.height)
		if errors.Is(err, shape.ErrZeroCanvas) {
			n = shape.NormalizedShape{Points: []shape.Point{}, Closed: s.Closed}
		} else if err != nil {
			return nil, err
		}
		n.Color = s.Color
		shapes[i] = n
	}
	return shape.EncodeDocument(shapes, c.width, c.height)
}

// Load replaces the canvas content with the shapes of a project document,
// scaled to the current canvas size. The canvas is untouched on error.
func (c *Canvas) Load(data []byte) (shape.Metadata, error) {
	shapes, meta, err := shape.DecodeDocument(data)
	if err != nil {
		return shape.Metadata{}, err
	}

	loaded := make([]*Shape, len(shapes))
	for i, n := range shapes {
		points := shape.Denormalize(n, c.width, c.height).Points
		if points == nil {
			points = []image.Point{}
		}
		loaded[i] = &Shape{Points: points, Closed: n.Closed, Color: n.Color}
	}

	c.shapes = loaded
	c.current = nil
	return meta, nil
}
