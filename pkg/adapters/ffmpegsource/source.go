package ffmpegsource

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/maskplay/pkg/ports"
)

// Options configures a Source.
type Options struct {
	// FFmpegPath overrides ffmpeg discovery.
	FFmpegPath string

	// Width and Height scale the decoded frames. Zero keeps the video size.
	Width  int
	Height int

	Logger ports.Logger
}

// Source implements ports.FrameSource by reading rawvideo RGBA frames from
// an ffmpeg process.
type Source struct {
	path       string
	ffmpegPath string
	width      int
	height     int
	scaled     bool
	logger     ports.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
	closed bool
}

// Open probes path and starts decoding from the first frame.
func Open(path string, opts Options) (*Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}

	ffmpegPath, err := FindFFmpeg(opts.FFmpegPath)
	if err != nil {
		return nil, err
	}

	info, err := Probe(path)
	if err != nil {
		info, err = probeWithFFmpeg(ffmpegPath, path)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", path, err)
		}
	}

	s := &Source{
		path:       path,
		ffmpegPath: ffmpegPath,
		width:      info.Width,
		height:     info.Height,
		logger:     opts.Logger,
	}
	if opts.Width > 0 && opts.Height > 0 {
		s.width, s.height = opts.Width, opts.Height
		s.scaled = true
	}

	if err := s.start(); err != nil {
		return nil, err
	}
	return s, nil
}

// Args returns the ffmpeg arguments used to decode the file.
func (s *Source) Args() []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", s.path,
		"-an",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
	}
	if s.scaled {
		args = append(args, "-s", fmt.Sprintf("%dx%d", s.width, s.height))
	}
	return append(args, "pipe:1")
}

func (s *Source) start() error {
	args := s.Args()
	if s.logger != nil {
		s.logger.Debug("Starting ffmpeg: %s", strings.Join(args, " "))
	}

	s.stderr.Reset()
	cmd := exec.Command(s.ffmpegPath, args...)
	cmd.Stderr = &s.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.stdout = stdout
	return nil
}

func (s *Source) stop() {
	if s.cmd == nil {
		return
	}
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
	s.cmd = nil
	s.stdout = nil
}

// Size returns the frame dimensions.
func (s *Source) Size() (int, int) {
	return s.width, s.height
}

// ReadFrame reads the next frame. It returns io.EOF at the end of the video.
func (s *Source) ReadFrame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, os.ErrClosed
	}
	if s.stdout == nil {
		return nil, io.EOF
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	if _, err := io.ReadFull(s.stdout, img.Pix); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			werr := s.cmd.Wait()
			s.cmd = nil
			s.stdout = nil
			if werr != nil {
				return nil, fmt.Errorf("ffmpeg decoding failed: %w\nstderr: %s", werr, s.stderr.String())
			}
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}
	return img, nil
}

// Rewind restarts decoding from the first frame.
func (s *Source) Rewind() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return os.ErrClosed
	}
	s.stop()
	return s.start()
}

// Close stops the ffmpeg process.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.stop()
	return nil
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
