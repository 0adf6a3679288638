package mocks

import (
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/user/maskplay/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource that plays a
// fixed list of frames.
type FrameSource struct {
	mu     sync.Mutex
	frames []image.Image
	pos    int

	ReadFrameFunc func() (image.Image, error)
	RewindFunc    func() error

	Reads   int
	Rewinds int
	Closed  bool
}

// NewFrameSource creates a source of n solid frames of the given size.
// Frame i has its red channel set to i so frames can be told apart.
func NewFrameSource(n, width, height int) *FrameSource {
	frames := make([]image.Image, n)
	for i := range frames {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		fill := color.RGBA{R: uint8(i), G: 200, B: 100, A: 255}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.SetRGBA(x, y, fill)
			}
		}
		frames[i] = img
	}
	return &FrameSource{frames: frames}
}

// NewFrameSourceFrom creates a source that plays frames in order.
func NewFrameSourceFrom(frames ...image.Image) *FrameSource {
	return &FrameSource{frames: frames}
}

func (m *FrameSource) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.frames) == 0 {
		return 0, 0
	}
	b := m.frames[0].Bounds()
	return b.Dx(), b.Dy()
}

func (m *FrameSource) ReadFrame() (image.Image, error) {
	if m.ReadFrameFunc != nil {
		return m.ReadFrameFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.pos >= len(m.frames) {
		return nil, io.EOF
	}
	img := m.frames[m.pos]
	m.pos++
	return img, nil
}

func (m *FrameSource) Rewind() error {
	if m.RewindFunc != nil {
		return m.RewindFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rewinds++
	m.pos = 0
	return nil
}

func (m *FrameSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

var _ ports.FrameSource = (*FrameSource)(nil)
