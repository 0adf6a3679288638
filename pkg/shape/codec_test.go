package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioPayload = `[{"points":[[0.1,0.1],[0.5,0.1],[0.5,0.5],[0.1,0.5]],"is_closed":true,"color":{"red":255,"green":0,"blue":0,"alpha":255}}]`

func TestDecode_Scenario(t *testing.T) {
	shapes, err := Decode([]byte(scenarioPayload))
	require.NoError(t, err)
	require.Len(t, shapes, 1)

	s := shapes[0]
	assert.True(t, s.Closed)
	assert.Equal(t, []Point{{0.1, 0.1}, {0.5, 0.1}, {0.5, 0.5}, {0.1, 0.5}}, s.Points)
	assert.Equal(t, Color{Red: 255, Green: 0, Blue: 0, Alpha: 255}, s.Color)
}

func TestEncodeDecode_DropsOpenShapes(t *testing.T) {
	in := []NormalizedShape{
		{Points: []Point{{0.1, 0.2}, {0.3, 0.4}, {0.5, 0.6}}, Closed: true, Color: Color{1, 2, 3, 4}},
		{Points: []Point{{0.9, 0.9}, {0.8, 0.8}}, Closed: false, Color: White},
		{Points: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, Closed: true, Color: White},
	}

	data, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, out, 2)

	for i, want := range []NormalizedShape{in[0], in[2]} {
		got := out[i]
		assert.Equal(t, want.Closed, got.Closed)
		assert.Equal(t, want.Color, got.Color)
		require.Len(t, got.Points, len(want.Points))
		for j := range want.Points {
			assert.InDelta(t, want.Points[j].X, got.Points[j].X, 1e-12)
			assert.InDelta(t, want.Points[j].Y, got.Points[j].Y, 1e-12)
		}
	}
}

func TestEncode_Empty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestEncode_NaN(t *testing.T) {
	_, err := Encode([]NormalizedShape{{Points: []Point{{math.NaN(), 0}}, Closed: true}})
	assert.ErrorIs(t, err, ErrSerialization)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"truncated json", `{not valid json`},
		{"object instead of array", `{"points":[[0,0]]}`},
		{"missing points", `[{"is_closed":true}]`},
		{"null points", `[{"points":null,"is_closed":true}]`},
		{"point with one component", `[{"points":[[0.1]],"is_closed":true}]`},
		{"point with three components", `[{"points":[[0.1,0.2,0.3]],"is_closed":true}]`},
		{"non numeric coordinate", `[{"points":[[0.1,"x"]],"is_closed":true}]`},
		{"null coordinate", `[{"points":[[0.1,null],[0.5,0.1],[0.5,0.5]],"is_closed":true}]`},
		{"coordinate above one", `[{"points":[[0,0],[1e12,0.2],[0.5,0.9]],"is_closed":true}]`},
		{"negative coordinate", `[{"points":[[0,0],[0.5,-0.01],[0.5,0.9]],"is_closed":true}]`},
		{"huge coordinate", `[{"points":[[0,0],[1e300,0.2],[-1e300,0.9]],"is_closed":true}]`},
		{"one bad record fails all", `[{"points":[[0,0],[1,0],[1,1]],"is_closed":true},{"is_closed":true}]`},
		{"non object record", `[42]`},
		{"empty payload", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shapes, err := Decode([]byte(tt.payload))
			assert.ErrorIs(t, err, ErrDecode)
			assert.Nil(t, shapes)
		})
	}
}

func TestDecode_AcceptsUnitSquareEdges(t *testing.T) {
	shapes, err := Decode([]byte(`[{"points":[[0,0],[1,0],[1,1],[0,1]],"is_closed":true}]`))
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, shapes[0].Points)
}

func TestDecode_Defaults(t *testing.T) {
	shapes, err := Decode([]byte(`[{"points":[[0,0],[1,0],[1,1]]}, {"points":[], "is_closed":true, "color":{"red":10}}]`))
	require.NoError(t, err)
	require.Len(t, shapes, 2)

	assert.False(t, shapes[0].Closed)
	assert.Equal(t, White, shapes[0].Color)
	assert.Empty(t, shapes[1].Points)
	assert.Equal(t, Color{Red: 10, Green: 255, Blue: 255, Alpha: 255}, shapes[1].Color)
}
