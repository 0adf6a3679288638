// Package player runs the render loop: it drains shape sets received from
// the editor, reads frames, composites the active masks and displays the
// result.
package player

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/user/maskplay/pkg/mask"
	"github.com/user/maskplay/pkg/ports"
	"github.com/user/maskplay/pkg/shape"
)

var (
	// ErrQuit is returned by Step after a quit command.
	ErrQuit = errors.New("quit requested")

	// ErrEndOfStream is returned by Step when the source is exhausted and
	// looping is off.
	ErrEndOfStream = errors.New("end of stream")

	// ErrEmptySource is returned when the source yields no frame even after
	// a rewind.
	ErrEmptySource = errors.New("source has no frames")
)

// Intake is the consumer side of the mask intake queue.
type Intake interface {
	TryPop() ([]shape.NormalizedShape, bool)
}

// Options configures a Player.
type Options struct {
	FPS        float64
	Loop       bool
	Fullscreen bool

	// Outline draws every mask polygon in its editor colour with its label.
	Outline    bool
	LabelColor color.Color
}

// DefaultOptions returns the defaults used by the play command.
func DefaultOptions() Options {
	return Options{
		FPS:        30,
		Loop:       true,
		LabelColor: color.White,
	}
}

// Player owns the render state. It is driven from a single goroutine; the
// only input from other goroutines arrives through the Intake.
type Player struct {
	source   ports.FrameSource
	display  ports.Display
	commands ports.CommandInput
	intake   Intake
	renderer ports.Renderer
	logger   ports.Logger
	opts     Options

	compositor *mask.Compositor
	shapes     []shape.NormalizedShape
	set        *mask.Set
	enabled    bool
	playing    bool
	fullscreen bool
	frame      image.Image
	size       image.Point
	frames     int
}

// New creates a Player. renderer is only used for the outline overlay and
// may be nil when Outline is off. commands may be nil.
func New(
	source ports.FrameSource,
	display ports.Display,
	commands ports.CommandInput,
	intake Intake,
	renderer ports.Renderer,
	logger ports.Logger,
	opts Options,
) *Player {
	if opts.LabelColor == nil {
		opts.LabelColor = color.White
	}
	return &Player{
		source:     source,
		display:    display,
		commands:   commands,
		intake:     intake,
		renderer:   renderer,
		logger:     logger.WithComponent("player"),
		opts:       opts,
		compositor: mask.NewCompositor(),
		playing:    true,
		fullscreen: opts.Fullscreen,
	}
}

// Run steps the loop once per frame interval until quit, end of stream or
// ctx is cancelled.
func (p *Player) Run(ctx context.Context) error {
	fps := p.opts.FPS
	if fps <= 0 {
		fps = DefaultOptions().FPS
	}

	w, h := p.source.Size()
	p.logger.Info("Video loaded: %dx%d", w, h)
	p.logger.Info("Controls: SPACE pause/resume, m mask on/off, f fullscreen, q quit")

	if p.fullscreen {
		if err := p.display.SetFullscreen(true); err != nil {
			p.logger.Warn("Fullscreen toggle failed: %v", err)
		}
	}

	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()

	for {
		if err := p.Step(); err != nil {
			if errors.Is(err, ErrQuit) || errors.Is(err, ErrEndOfStream) {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			p.logger.Info("Interrupted, shutting down...")
			return nil
		case <-ticker.C:
		}
	}
}

// Step runs one iteration: drain the intake, read or re-display a frame,
// composite, display and handle pending commands.
func (p *Player) Step() error {
	p.drainIntake()

	if err := p.advance(); err != nil {
		return err
	}

	out := p.compositor.Composite(p.frame, p.set)
	if p.opts.Outline && p.set != nil && len(p.set.Shapes) > 0 {
		out = p.outline(out)
	}

	if err := p.display.Show(out); err != nil {
		p.logger.Error("Display failed: %v", err)
		return fmt.Errorf("display: %w", err)
	}
	p.frames++

	return p.handleCommands()
}

// drainIntake applies every pending shape set in order; the last one wins.
func (p *Player) drainIntake() {
	var latest []shape.NormalizedShape
	received := false
	for {
		shapes, ok := p.intake.TryPop()
		if !ok {
			break
		}
		latest = shapes
		received = true
	}
	if !received {
		return
	}

	p.shapes = latest
	p.enabled = true
	p.rebuildSet()
	p.logger.Info("Masks set from editor: %d active", len(p.set.Shapes))
}

func (p *Player) rebuildSet() {
	w, h := p.size.X, p.size.Y
	if w == 0 || h == 0 {
		w, h = p.source.Size()
	}
	p.set = mask.NewSet(p.shapes, w, h, p.enabled)
}

// advance reads the next frame while playing. While paused the previous
// frame is shown again.
func (p *Player) advance() error {
	if !p.playing && p.frame != nil {
		return nil
	}

	img, err := p.source.ReadFrame()
	if errors.Is(err, io.EOF) {
		if !p.opts.Loop {
			return ErrEndOfStream
		}
		p.logger.Debug("End of stream, rewinding")
		if err := p.source.Rewind(); err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
		img, err = p.source.ReadFrame()
		if errors.Is(err, io.EOF) {
			return ErrEmptySource
		}
	}
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}

	size := img.Bounds().Size()
	if size != p.size {
		if p.size != (image.Point{}) {
			p.logger.Info("Frame size changed to %dx%d, rebuilding masks", size.X, size.Y)
		}
		p.size = size
		if p.set != nil {
			p.rebuildSet()
		}
	}
	p.frame = img
	return nil
}

func (p *Player) handleCommands() error {
	if p.commands == nil {
		return nil
	}
	for {
		switch p.commands.Poll() {
		case ports.CommandNone:
			return nil
		case ports.CommandTogglePlay:
			p.playing = !p.playing
			p.logger.Info("Playback: %s", onOff(p.playing, "playing", "paused"))
		case ports.CommandToggleMask:
			p.enabled = !p.enabled
			if p.set != nil {
				p.set.Enabled = p.enabled
			}
			p.logger.Info("Masking: %s", onOff(p.enabled, "ON", "OFF"))
		case ports.CommandToggleFullscreen:
			p.fullscreen = !p.fullscreen
			if err := p.display.SetFullscreen(p.fullscreen); err != nil {
				p.logger.Warn("Fullscreen toggle failed: %v", err)
			}
			p.logger.Info("Fullscreen: %s", onOff(p.fullscreen, "ON", "OFF"))
		case ports.CommandQuit:
			p.logger.Info("Quit requested")
			return ErrQuit
		}
	}
}

func onOff(v bool, on, off string) string {
	if v {
		return on
	}
	return off
}

// MaskSet returns the active mask set, nil before the first shape set.
func (p *Player) MaskSet() *mask.Set {
	return p.set
}

// Shapes returns the last received normalized shapes.
func (p *Player) Shapes() []shape.NormalizedShape {
	return p.shapes
}

// MaskEnabled reports whether masking is switched on.
func (p *Player) MaskEnabled() bool {
	return p.enabled
}

// Playing reports whether playback advances.
func (p *Player) Playing() bool {
	return p.playing
}

// Fullscreen reports the requested fullscreen mode.
func (p *Player) Fullscreen() bool {
	return p.fullscreen
}

// Frames returns the number of frames displayed.
func (p *Player) Frames() int {
	return p.frames
}

// Compositor exposes the mask compositor.
func (p *Player) Compositor() *mask.Compositor {
	return p.compositor
}
