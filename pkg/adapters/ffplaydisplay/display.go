// Package ffplaydisplay presents frames in an ffplay window fed through a
// rawvideo pipe.
package ffplaydisplay

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/maskplay/pkg/adapters/ffmpegsource"
	"github.com/user/maskplay/pkg/ports"
)

// ErrClosed is returned by Show after Close.
var ErrClosed = errors.New("display closed")

// Options configures a Display.
type Options struct {
	// FFplayPath overrides ffplay discovery.
	FFplayPath string
	Title      string
	FPS        float64
	Fullscreen bool
	Logger     ports.Logger
}

// Display implements ports.Display with an ffplay process. The process is
// started on the first frame and restarted when the frame size or the
// fullscreen mode changes.
type Display struct {
	ffplayPath string
	opts       Options

	mu         sync.Mutex
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	width      int
	height     int
	fullscreen bool
	buf        *image.RGBA
	closed     bool
}

// New locates ffplay and creates a Display. No window is opened until the
// first frame is shown.
func New(opts Options) (*Display, error) {
	path, err := ffmpegsource.FindFFplay(opts.FFplayPath)
	if err != nil {
		return nil, err
	}
	return &Display{
		ffplayPath: path,
		opts:       opts,
		fullscreen: opts.Fullscreen,
	}, nil
}

// Args returns the ffplay arguments for a frame size.
func (d *Display) Args(width, height int) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
	}
	if d.opts.FPS > 0 {
		args = append(args, "-framerate", fmt.Sprintf("%.2f", d.opts.FPS))
	}
	if d.opts.Title != "" {
		args = append(args, "-window_title", d.opts.Title)
	}
	if d.fullscreen {
		args = append(args, "-fs")
	}
	return append(args, "-i", "pipe:0")
}

func (d *Display) start(width, height int) error {
	args := d.Args(width, height)
	if d.opts.Logger != nil {
		d.opts.Logger.Debug("Starting ffplay: %s", strings.Join(args, " "))
	}

	d.stderr.Reset()
	cmd := exec.Command(d.ffplayPath, args...)
	cmd.Stderr = &d.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffplay: %w", err)
	}

	d.cmd = cmd
	d.stdin = stdin
	d.width = width
	d.height = height
	d.buf = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

func (d *Display) stop() {
	if d.cmd == nil {
		return
	}
	d.stdin.Close()
	if d.cmd.Process != nil {
		d.cmd.Process.Kill()
	}
	d.cmd.Wait()
	d.cmd = nil
	d.stdin = nil
}

// Show writes one frame to ffplay.
func (d *Display) Show(img image.Image) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	b := img.Bounds()
	if d.cmd == nil || b.Dx() != d.width || b.Dy() != d.height {
		d.stop()
		if err := d.start(b.Dx(), b.Dy()); err != nil {
			return err
		}
	}

	pix := rgbaPix(img, d.buf)
	if _, err := d.stdin.Write(pix); err != nil {
		// The window was closed by the user.
		d.stop()
		return fmt.Errorf("failed to write frame: %w\nstderr: %s", err, d.stderr.String())
	}
	return nil
}

// rgbaPix returns the tightly packed RGBA pixels of img, converting into
// buf when img is not already a zero-origin *image.RGBA.
func rgbaPix(img image.Image, buf *image.RGBA) []byte {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba.Pix
	}
	draw.Draw(buf, buf.Bounds(), img, img.Bounds().Min, draw.Src)
	return buf.Pix
}

// SetFullscreen restarts ffplay in the requested mode on the next frame.
func (d *Display) SetFullscreen(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.fullscreen == on {
		return nil
	}
	d.fullscreen = on
	d.stop()
	return nil
}

// Fullscreen reports the current mode.
func (d *Display) Fullscreen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fullscreen
}

// Close stops ffplay.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.stop()
	return nil
}

// Ensure Display implements ports.Display
var _ ports.Display = (*Display)(nil)
