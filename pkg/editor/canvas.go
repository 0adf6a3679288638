// Package editor holds the drawing state of the shape editor: polygons in
// canvas pixels, the shape being drawn and the conversions to the wire and
// project forms.
package editor

import (
	"image"
	"math/rand"
	"time"

	"github.com/user/maskplay/pkg/shape"
)

// Palette is the set of colours assigned to new shapes.
var Palette = []shape.Color{
	hex(0xFF6B6B), hex(0x4ECDC4), hex(0x45B7D1),
	hex(0x96CEB4), hex(0xFFEAA7), hex(0xDDA0DD),
	hex(0x98D8C8), hex(0xF7DC6F), hex(0xBB8FCE),
}

func hex(v uint32) shape.Color {
	return shape.Color{
		Red:   int(v >> 16 & 0xFF),
		Green: int(v >> 8 & 0xFF),
		Blue:  int(v & 0xFF),
		Alpha: 255,
	}
}

// Shape is a polygon in canvas pixels.
type Shape struct {
	Points []image.Point
	Closed bool
	Color  shape.Color
}

func (s *Shape) close() bool {
	if len(s.Points) < shape.MinPoints {
		return false
	}
	s.Closed = true
	return true
}

func (s *Shape) clone() Shape {
	return Shape{
		Points: append([]image.Point(nil), s.Points...),
		Closed: s.Closed,
		Color:  s.Color,
	}
}

// Canvas is the editor drawing surface. It is not safe for concurrent use.
type Canvas struct {
	width   int
	height  int
	shapes  []*Shape
	current *Shape
	rng     *rand.Rand
}

// NewCanvas creates an empty canvas. A nil rng is seeded from the clock.
func NewCanvas(width, height int, rng *rand.Rand) *Canvas {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Canvas{width: width, height: height, rng: rng}
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// AddPoint appends p to the shape being drawn, starting a new shape with a
// palette colour when none is in progress.
func (c *Canvas) AddPoint(p image.Point) {
	if c.current == nil {
		c.current = &Shape{Color: Palette[c.rng.Intn(len(Palette))]}
		c.shapes = append(c.shapes, c.current)
	}
	c.current.Points = append(c.current.Points, p)
}

// FinishShape closes the shape being drawn. A shape with too few points to
// close is discarded. It reports whether a shape was closed.
func (c *Canvas) FinishShape() bool {
	cur := c.current
	c.current = nil
	if cur == nil || cur.Closed {
		return false
	}
	if cur.close() {
		return true
	}
	c.remove(cur)
	return false
}

// CloseCurrent closes the shape being drawn if it has enough points. On
// failure the shape stays in progress.
func (c *Canvas) CloseCurrent() bool {
	if c.current == nil || c.current.Closed {
		return false
	}
	if !c.current.close() {
		return false
	}
	c.current = nil
	return true
}

// StartNew closes the shape being drawn when possible and makes the next
// point start a new shape. A shape that cannot be closed is kept open.
func (c *Canvas) StartNew() {
	c.CloseCurrent()
	c.current = nil
}

// DeleteLast removes the most recently started shape.
func (c *Canvas) DeleteLast() bool {
	if len(c.shapes) == 0 {
		return false
	}
	last := c.shapes[len(c.shapes)-1]
	c.shapes = c.shapes[:len(c.shapes)-1]
	if c.current == last {
		c.current = nil
	}
	return true
}

// Clear removes every shape.
func (c *Canvas) Clear() {
	c.shapes = nil
	c.current = nil
}

func (c *Canvas) remove(s *Shape) {
	for i, v := range c.shapes {
		if v == s {
			c.shapes = append(c.shapes[:i], c.shapes[i+1:]...)
			return
		}
	}
}

// Resize rescales every stored point from the old to the new canvas size,
// truncating to whole pixels.
func (c *Canvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return shape.ErrZeroCanvas
	}
	if c.width > 0 && c.height > 0 {
		for _, s := range c.shapes {
			n, err := shape.Normalize(s.Points, s.Closed, c.width, c.height)
			if err != nil {
				return err
			}
			s.Points = shape.Denormalize(n, width, height).Points
		}
	}
	c.width, c.height = width, height
	return nil
}

// Shapes returns copies of every shape, open or closed.
func (c *Canvas) Shapes() []Shape {
	out := make([]Shape, len(c.shapes))
	for i, s := range c.shapes {
		out[i] = s.clone()
	}
	return out
}

// Closed returns copies of the closed shapes.
func (c *Canvas) Closed() []Shape {
	var out []Shape
	for _, s := range c.shapes {
		if s.Closed {
			out = append(out, s.clone())
		}
	}
	return out
}

// Drawing reports whether a shape is in progress.
func (c *Canvas) Drawing() bool {
	return c.current != nil
}

// Normalized converts the closed shapes to the wire form.
func (c *Canvas) Normalized() ([]shape.NormalizedShape, error) {
	var out []shape.NormalizedShape
	for _, s := range c.shapes {
		if !s.Closed {
			continue
		}
		n, err := shape.Normalize(s.Points, true, c.width, c.height)
		if err != nil {
			return nil, err
		}
		n.Color = s.Color
		out = append(out, n)
	}
	return out, nil
}
