package shape

import (
	"encoding/json"
	"fmt"
)

// CanvasSize is the editor canvas size recorded in a project document.
type CanvasSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Metadata summarizes a project document.
type Metadata struct {
	TotalShapes  int        `json:"total_shapes"`
	ClosedShapes int        `json:"closed_shapes"`
	CanvasSize   CanvasSize `json:"canvas_size"`
}

// document is the on-disk project layout. Unlike the wire form it keeps
// open shapes.
type document struct {
	Shapes   []record `json:"shapes"`
	Metadata Metadata `json:"metadata"`
}

// EncodeDocument serializes every shape, open or closed, together with
// metadata for a canvas of the given size.
func EncodeDocument(shapes []NormalizedShape, canvasWidth, canvasHeight int) ([]byte, error) {
	doc := document{
		Shapes: make([]record, len(shapes)),
		Metadata: Metadata{
			TotalShapes: len(shapes),
			CanvasSize:  CanvasSize{Width: canvasWidth, Height: canvasHeight},
		},
	}
	for i, s := range shapes {
		doc.Shapes[i] = toRecord(s)
		if s.Closed {
			doc.Metadata.ClosedShapes++
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return data, nil
}

// DecodeDocument parses a project document. A missing shapes field yields an
// empty list; a malformed shape fails the whole document.
func DecodeDocument(data []byte) ([]NormalizedShape, Metadata, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, Metadata{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	shapes, err := fromRecords(doc.Shapes)
	if err != nil {
		return nil, Metadata{}, err
	}
	return shapes, doc.Metadata, nil
}
