package player

import (
	"image"
	"image/color"

	"github.com/user/maskplay/pkg/mask"
	"github.com/user/maskplay/pkg/ports"
)

const (
	outlineWidth  = 2.0
	labelFontSize = 14.0
)

// outline draws every mask polygon of the current set over frame.
func (p *Player) outline(frame image.Image) image.Image {
	if p.renderer == nil {
		return frame
	}

	b := frame.Bounds()
	canvas := p.renderer.CreateCanvas(b.Dx(), b.Dy(), color.Transparent)
	canvas.DrawImage(frame, 0, 0)

	style := ports.TextStyle{FontSize: labelFontSize, Color: p.opts.LabelColor}
	for _, s := range p.set.Shapes {
		if len(s.Mask.Points) < 2 {
			continue
		}
		canvas.DrawPolygonStroke(s.Mask.Points, toRGBA(s), outlineWidth)
		c := centroid(s.Mask.Points)
		canvas.DrawText(s.Label, c.X, c.Y, style)
	}
	return canvas.ToImage()
}

func toRGBA(s mask.Labeled) color.Color {
	return color.NRGBA{
		R: clamp8(s.Color.Red),
		G: clamp8(s.Color.Green),
		B: clamp8(s.Color.Blue),
		A: clamp8(s.Color.Alpha),
	}
}

func clamp8(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// centroid is the vertex average, good enough for label placement.
func centroid(points []image.Point) image.Point {
	var sx, sy int
	for _, pt := range points {
		sx += pt.X
		sy += pt.Y
	}
	n := len(points)
	return image.Point{X: sx / n, Y: sy / n}
}
