package shape

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrDecode is returned when a message cannot be decoded. The whole
	// message is rejected.
	ErrDecode = errors.New("shape: decode failed")

	// ErrSerialization is returned when shapes cannot be encoded, for
	// example because a coordinate is NaN.
	ErrSerialization = errors.New("shape: serialization failed")
)

// record is one Wire Record. Points and its components are pointers so that
// an absent or null value can be told apart from an empty list or a zero.
type record struct {
	Points   *[][]*float64 `json:"points"`
	IsClosed bool          `json:"is_closed"`
	Color    *colorRecord  `json:"color,omitempty"`
}

// colorRecord keeps pointers so missing channels default to 255.
type colorRecord struct {
	Red   *int `json:"red,omitempty"`
	Green *int `json:"green,omitempty"`
	Blue  *int `json:"blue,omitempty"`
	Alpha *int `json:"alpha,omitempty"`
}

// Encode serializes the closed shapes as a JSON array of Wire Records.
// Open shapes are dropped.
func Encode(shapes []NormalizedShape) ([]byte, error) {
	records := make([]record, 0, len(shapes))
	for _, s := range shapes {
		if !s.Closed {
			continue
		}
		records = append(records, toRecord(s))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return data, nil
}

// Decode parses a JSON array of Wire Records. Any malformed record fails the
// entire message.
func Decode(data []byte) ([]NormalizedShape, error) {
	var records []record
	if err := decodeStrictArray(data, &records); err != nil {
		return nil, err
	}
	return fromRecords(records)
}

func decodeStrictArray(data []byte, v *[]record) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("%w: payload is not a JSON array", ErrDecode)
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func fromRecords(records []record) ([]NormalizedShape, error) {
	shapes := make([]NormalizedShape, 0, len(records))
	for i, r := range records {
		s, err := fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrDecode, i, err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

func fromRecord(r record) (NormalizedShape, error) {
	if r.Points == nil {
		return NormalizedShape{}, errors.New("missing points")
	}

	s := NormalizedShape{
		Points: make([]Point, len(*r.Points)),
		Closed: r.IsClosed,
		Color:  r.Color.color(),
	}
	for i, pair := range *r.Points {
		if len(pair) != 2 {
			return NormalizedShape{}, fmt.Errorf("point %d has %d components", i, len(pair))
		}
		if pair[0] == nil || pair[1] == nil {
			return NormalizedShape{}, fmt.Errorf("point %d has a null component", i)
		}
		p := Point{X: *pair[0], Y: *pair[1]}
		if !p.InUnitSquare() {
			return NormalizedShape{}, fmt.Errorf("point %d (%g, %g) is outside [0,1]", i, p.X, p.Y)
		}
		s.Points[i] = p
	}
	return s, nil
}

func toRecord(s NormalizedShape) record {
	points := make([][]*float64, len(s.Points))
	for i := range s.Points {
		p := &s.Points[i]
		points[i] = []*float64{&p.X, &p.Y}
	}
	c := s.Color
	return record{
		Points:   &points,
		IsClosed: s.Closed,
		Color: &colorRecord{
			Red:   &c.Red,
			Green: &c.Green,
			Blue:  &c.Blue,
			Alpha: &c.Alpha,
		},
	}
}

func (c *colorRecord) color() Color {
	if c == nil {
		return White
	}
	return Color{
		Red:   channel(c.Red),
		Green: channel(c.Green),
		Blue:  channel(c.Blue),
		Alpha: channel(c.Alpha),
	}
}

func channel(v *int) int {
	if v == nil {
		return 255
	}
	return *v
}
