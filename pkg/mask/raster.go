package mask

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/user/maskplay/pkg/shape"
)

const (
	// On marks a pixel inside the visible region.
	On = 0xFF
	// Off marks a masked-out pixel.
	Off = 0x00

	// coverageThreshold is the minimum anti-aliased coverage for a pixel to
	// count as inside a polygon.
	coverageThreshold = 0x80
)

// BuildCombinedMask allocates a width x height bitmap, all Off, and sets every
// pixel inside any polygon of set to On. Each polygon is scan converted on
// its own so overlapping shapes union regardless of their orientation.
func BuildCombinedMask(set *Set, width, height int) *image.Alpha {
	combined := image.NewAlpha(image.Rect(0, 0, width, height))
	if set == nil || width <= 0 || height <= 0 {
		return combined
	}

	var r rasterizer
	for _, s := range set.Shapes {
		r.fill(combined, s.Mask.Points)
	}
	return combined
}

// rasterizer reuses the scan converter and coverage buffer across polygons.
type rasterizer struct {
	z   vector.Rasterizer
	buf []uint8
}

// fill ORs the interior of the polygon through pts into dst. The polygon is
// clipped to dst first, so vertices far outside the frame cost no more than
// ones on its edge.
func (r *rasterizer) fill(dst *image.Alpha, pts []image.Point) {
	if len(pts) < shape.MinPoints {
		return
	}

	poly := clipToRect(pts, dst.Rect)
	if len(poly) < shape.MinPoints {
		return
	}

	box := boundingBox(poly).Intersect(dst.Rect)
	if box.Empty() {
		return
	}

	w, h := box.Dx(), box.Dy()
	ox, oy := float64(box.Min.X), float64(box.Min.Y)

	r.z.Reset(w, h)
	r.z.DrawOp = draw.Src
	r.z.MoveTo(float32(poly[0].x-ox), float32(poly[0].y-oy))
	for _, p := range poly[1:] {
		r.z.LineTo(float32(p.x-ox), float32(p.y-oy))
	}
	r.z.ClosePath()

	cov := r.coverage(w, h)
	r.z.Draw(cov, cov.Rect, image.Opaque, image.Point{})

	for y := 0; y < h; y++ {
		src := cov.Pix[y*cov.Stride : y*cov.Stride+w]
		off := dst.PixOffset(box.Min.X, box.Min.Y+y)
		row := dst.Pix[off : off+w]
		for x, c := range src {
			if c >= coverageThreshold {
				row[x] = On
			}
		}
	}
}

// coverage returns a cleared w x h scratch bitmap backed by r.buf.
func (r *rasterizer) coverage(w, h int) *image.Alpha {
	n := w * h
	if cap(r.buf) < n {
		r.buf = make([]uint8, n)
	}
	pix := r.buf[:n]
	clear(pix)
	return &image.Alpha{Pix: pix, Stride: w, Rect: image.Rect(0, 0, w, h)}
}

// boundingBox returns the smallest pixel rectangle holding every pixel the
// polygon can cover.
func boundingBox(poly []vertex) image.Rectangle {
	minX, minY := poly[0].x, poly[0].y
	maxX, maxY := minX, minY
	for _, p := range poly[1:] {
		minX, maxX = min(minX, p.x), max(maxX, p.x)
		minY, maxY = min(minY, p.y), max(maxY, p.y)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

type vertex struct{ x, y float64 }

// clipToRect clips the closed polygon through pts against rect with the
// Sutherland-Hodgman algorithm. The result may be empty.
func clipToRect(pts []image.Point, rect image.Rectangle) []vertex {
	poly := make([]vertex, len(pts))
	for i, p := range pts {
		poly[i] = vertex{float64(p.X), float64(p.Y)}
	}

	minX, minY := float64(rect.Min.X), float64(rect.Min.Y)
	maxX, maxY := float64(rect.Max.X), float64(rect.Max.Y)

	poly = clipEdge(poly, func(v vertex) float64 { return v.x - minX })
	poly = clipEdge(poly, func(v vertex) float64 { return maxX - v.x })
	poly = clipEdge(poly, func(v vertex) float64 { return v.y - minY })
	poly = clipEdge(poly, func(v vertex) float64 { return maxY - v.y })
	return poly
}

// clipEdge keeps the part of poly where dist is non-negative.
func clipEdge(poly []vertex, dist func(vertex) float64) []vertex {
	if len(poly) == 0 {
		return nil
	}

	out := make([]vertex, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	dPrev := dist(prev)
	for _, cur := range poly {
		dCur := dist(cur)
		if (dPrev < 0) != (dCur < 0) {
			t := dPrev / (dPrev - dCur)
			out = append(out, vertex{
				x: prev.x + t*(cur.x-prev.x),
				y: prev.y + t*(cur.y-prev.y),
			})
		}
		if dCur >= 0 {
			out = append(out, cur)
		}
		prev, dPrev = cur, dCur
	}
	return out
}
