package mocks

import (
	"image"
	"sync"

	"github.com/user/maskplay/pkg/ports"
)

// Display is a mock implementation of ports.Display that keeps every
// shown frame.
type Display struct {
	mu sync.Mutex

	ShowFunc func(img image.Image) error

	Frames     []image.Image
	Fullscreen []bool
	Closed     bool
}

func (m *Display) Show(img image.Image) error {
	if m.ShowFunc != nil {
		return m.ShowFunc(img)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames = append(m.Frames, img)
	return nil
}

func (m *Display) SetFullscreen(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fullscreen = append(m.Fullscreen, on)
	return nil
}

func (m *Display) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Last returns the most recently shown frame, or nil.
func (m *Display) Last() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Frames) == 0 {
		return nil
	}
	return m.Frames[len(m.Frames)-1]
}

// Count returns the number of frames shown.
func (m *Display) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Frames)
}

var _ ports.Display = (*Display)(nil)

// Commands is a scripted ports.CommandInput.
type Commands struct {
	mu      sync.Mutex
	pending []ports.Command
}

// NewCommands creates a CommandInput that yields cmds in order.
func NewCommands(cmds ...ports.Command) *Commands {
	return &Commands{pending: cmds}
}

// Push appends a command.
func (m *Commands) Push(cmd ports.Command) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, cmd)
}

func (m *Commands) Poll() ports.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return ports.CommandNone
	}
	cmd := m.pending[0]
	m.pending = m.pending[1:]
	return cmd
}

var _ ports.CommandInput = (*Commands)(nil)
