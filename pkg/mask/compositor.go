package mask

import (
	"image"

	"golang.org/x/image/draw"
)

// Apply returns a copy of frame in which every pixel whose mask value is Off
// has its colour channels zeroed. Pixels outside the mask bounds count as Off.
// frame is not modified.
func Apply(frame image.Image, combined *image.Alpha) *image.RGBA {
	b := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, frame, b.Min, draw.Src)

	for y := 0; y < out.Rect.Dy(); y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+out.Rect.Dx()*4]
		for x := 0; x < out.Rect.Dx(); x++ {
			if maskAt(combined, x, y) != Off {
				continue
			}
			i := x * 4
			row[i+0] = 0
			row[i+1] = 0
			row[i+2] = 0
		}
	}
	return out
}

func maskAt(m *image.Alpha, x, y int) uint8 {
	if m == nil || !(image.Point{X: x, Y: y}).In(m.Rect) {
		return Off
	}
	return m.Pix[m.PixOffset(x, y)]
}

// Compositor applies the active Set to frames, caching the combined bitmap
// while the Set and the frame size stay the same. It is owned by the render
// loop and not safe for concurrent use.
type Compositor struct {
	set      *Set
	size     image.Point
	combined *image.Alpha
	rebuilds int
}

// NewCompositor creates a Compositor with an empty cache.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// Composite masks frame with set. When set is nil, disabled or empty the
// original frame is returned untouched and no bitmap work is done.
func (c *Compositor) Composite(frame image.Image, set *Set) image.Image {
	if !set.Active() {
		return frame
	}

	size := frame.Bounds().Size()
	if c.combined == nil || c.set != set || c.size != size {
		c.combined = BuildCombinedMask(set, size.X, size.Y)
		c.set = set
		c.size = size
		c.rebuilds++
	}
	return Apply(frame, c.combined)
}

// Combined returns the cached bitmap, nil before the first rebuild.
func (c *Compositor) Combined() *image.Alpha {
	return c.combined
}

// Rebuilds returns how many times the combined bitmap was rebuilt.
func (c *Compositor) Rebuilds() int {
	return c.rebuilds
}
