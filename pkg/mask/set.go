// Package mask rasterizes pixel polygons into a combined bitmap and
// composites it onto video frames.
package mask

import (
	"fmt"

	"github.com/user/maskplay/pkg/shape"
)

// Labeled is one pixel polygon with its display label and editor colour.
type Labeled struct {
	Label string
	Mask  shape.AbsoluteMask
	Color shape.Color
}

// Set is the player-side mask aggregate for one frame size. A new Set
// replaces the previous one wholesale; only Enabled is ever changed in place.
type Set struct {
	Shapes  []Labeled
	Enabled bool
	Width   int
	Height  int
}

// NewSet denormalizes the maskable shapes against a width x height frame.
// Open or degenerate shapes are skipped; labels keep the shape's position in
// the incoming collection.
func NewSet(shapes []shape.NormalizedShape, width, height int, enabled bool) *Set {
	set := &Set{Enabled: enabled, Width: width, Height: height}
	if width <= 0 || height <= 0 {
		return set
	}

	for i, s := range shapes {
		if !s.Maskable() {
			continue
		}
		set.Shapes = append(set.Shapes, Labeled{
			Label: fmt.Sprintf("Editor_Shape_%d", i+1),
			Mask:  shape.Denormalize(s, width, height),
			Color: s.Color,
		})
	}
	return set
}

// Active reports whether compositing changes the frame.
func (s *Set) Active() bool {
	return s != nil && s.Enabled && len(s.Shapes) > 0
}
