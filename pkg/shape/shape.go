// Package shape provides the resolution-independent polygon model and its
// conversions to pixel polygons and to the JSON wire form.
package shape

import (
	"errors"
	"image"
	"math"
)

// ErrZeroCanvas is returned when normalizing against a canvas with a zero
// dimension. Callers treat it as an empty shape set.
var ErrZeroCanvas = errors.New("shape: canvas has zero size")

// snapEpsilon absorbs the floating point error of p/w*w so that an integer
// pixel coordinate survives a normalize/denormalize round trip.
const snapEpsilon = 1e-9

// maxPixel bounds denormalized coordinates.
const maxPixel = 1 << 30

// MinPoints is the minimum vertex count of a maskable polygon.
const MinPoints = 3

// Point is a normalized coordinate, both components in [0,1].
type Point struct {
	X float64
	Y float64
}

// InUnitSquare reports whether both components are within [0,1]. NaN is
// never inside.
func (p Point) InUnitSquare() bool {
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1
}

// Color is the RGBA colour an editor assigned to a shape.
type Color struct {
	Red   int `json:"red"`
	Green int `json:"green"`
	Blue  int `json:"blue"`
	Alpha int `json:"alpha"`
}

// White is used when a record carries no colour.
var White = Color{Red: 255, Green: 255, Blue: 255, Alpha: 255}

// NormalizedShape is a polygon stored as fractions of the canvas size.
// Point order defines the boundary traversal.
type NormalizedShape struct {
	Points []Point
	Closed bool
	Color  Color
}

// Maskable reports whether the shape contributes to a mask.
func (s NormalizedShape) Maskable() bool {
	return s.Closed && len(s.Points) >= MinPoints
}

// AbsoluteMask is a polygon in integer pixel coordinates of one frame size.
type AbsoluteMask struct {
	Points []image.Point
}

// Normalize divides each coordinate by the canvas size. Points outside the
// canvas are clamped onto its edge.
func Normalize(points []image.Point, closed bool, width, height int) (NormalizedShape, error) {
	if width <= 0 || height <= 0 {
		return NormalizedShape{}, ErrZeroCanvas
	}

	out := NormalizedShape{
		Points: make([]Point, len(points)),
		Closed: closed,
		Color:  White,
	}
	w, h := float64(width), float64(height)
	for i, p := range points {
		out.Points[i] = Point{X: clamp01(float64(p.X) / w), Y: clamp01(float64(p.Y) / h)}
	}
	return out, nil
}

// Denormalize multiplies each coordinate by the target size and truncates
// toward zero. A zero target size yields an empty mask.
func Denormalize(s NormalizedShape, width, height int) AbsoluteMask {
	if width <= 0 || height <= 0 {
		return AbsoluteMask{}
	}

	out := AbsoluteMask{Points: make([]image.Point, len(s.Points))}
	for i, p := range s.Points {
		out.Points[i] = image.Point{
			X: truncate(p.X * float64(width)),
			Y: truncate(p.Y * float64(height)),
		}
	}
	return out
}

// truncate converts v to int toward zero, snapping values within
// snapEpsilon of an integer onto it first. Values beyond ±maxPixel saturate
// and NaN maps to 0.
func truncate(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > maxPixel:
		return maxPixel
	case v < -maxPixel:
		return -maxPixel
	}
	if r := math.Round(v); math.Abs(v-r) < snapEpsilon {
		return int(r)
	}
	return int(v)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
