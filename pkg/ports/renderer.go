package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image processing operations used outside the mask
// compositor: overlays, snapshot encoding and still-frame decoding.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data into an image.Image.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides the drawing operations for the mask outline overlay.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawPolygonStroke draws a closed polygon outline through points.
	DrawPolygonStroke(points []image.Point, c color.Color, strokeWidth float64)

	// FillPolygon fills a closed polygon with c (alpha-blended).
	FillPolygon(points []image.Point, c color.Color)

	// DrawText draws text centred at the specified position.
	DrawText(text string, x, y int, style TextStyle)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	// FormatAuto lets the decoder sniff the format.
	FormatAuto
)
