// Package recorddisplay encodes the composited frames to an H.264 video
// file through an external ffmpeg process.
package recorddisplay

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

var (
	// ErrClosed is returned by Show after Close.
	ErrClosed = errors.New("recorder closed")

	// ErrSizeChanged is returned when a frame does not match the size of
	// the first frame.
	ErrSizeChanged = errors.New("frame size changed during recording")
)

// Options configures a Display.
type Options struct {
	FFmpegPath string
	OutputPath string
	FPS        float64
	// CRF is the x264 constant rate factor (0-51). Zero uses 23.
	CRF    int
	Logger ports.Logger
}

// Display implements ports.Display by piping frames to ffmpeg. ffmpeg is
// started on the first frame, whose size fixes the video size.
type Display struct {
	ffmpegPath string
	opts       Options

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	width  int
	height int
	buf    *image.RGBA
	frames int
	closed bool
}

// New locates ffmpeg and creates a Display.
func New(opts Options) (*Display, error) {
	if opts.OutputPath == "" {
		return nil, errors.New("recorddisplay: output path is empty")
	}
	path, err := ffmpegsource.FindFFmpeg(opts.FFmpegPath)
	if err != nil {
		return nil, err
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	return &Display{ffmpegPath: path, opts: opts}, nil
}

// Args returns the ffmpeg arguments for a frame size.
func (d *Display) Args(width, height int) []string {
	crf := d.opts.CRF
	if crf <= 0 || crf > 51 {
		crf = 23
	}
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", fmt.Sprintf("%.2f", d.opts.FPS),
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		"-crf", fmt.Sprintf("%d", crf),
		"-movflags", "+faststart",
		d.opts.OutputPath,
	}
}

func (d *Display) start(width, height int) error {
	args := d.Args(width, height)
	if d.opts.Logger != nil {
		d.opts.Logger.Debug("Starting ffmpeg: %s", strings.Join(args, " "))
	}

	cmd := exec.Command(d.ffmpegPath, args...)
	cmd.Stderr = &d.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	d.cmd = cmd
	d.stdin = stdin
	d.width = width
	d.height = height
	d.buf = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// Show encodes one frame.
func (d *Display) Show(img image.Image) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	b := img.Bounds()
	if d.cmd == nil {
		if err := d.start(b.Dx(), b.Dy()); err != nil {
			return err
		}
	} else if b.Dx() != d.width || b.Dy() != d.height {
		return fmt.Errorf("%w: %dx%d, recording %dx%d", ErrSizeChanged, b.Dx(), b.Dy(), d.width, d.height)
	}

	draw.Draw(d.buf, d.buf.Bounds(), img, b.Min, draw.Src)
	if _, err := d.stdin.Write(d.buf.Pix); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	d.frames++
	return nil
}

// SetFullscreen is ignored.
func (d *Display) SetFullscreen(on bool) error {
	return nil
}

// Frames returns the number of frames written.
func (d *Display) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Close finishes the video file.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	if d.cmd == nil {
		return nil
	}

	d.stdin.Close()
	if err := d.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, d.stderr.String())
	}
	return nil
}

// Ensure Display implements ports.Display
var _ ports.Display = (*Display)(nil)
