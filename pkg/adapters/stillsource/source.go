// Package stillsource plays a directory of still images as a video.
package stillsource

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/user/maskplay/pkg/ports"
)

// ErrNoFrames is returned when the directory holds no images.
var ErrNoFrames = errors.New("no image files found")

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".webp": true,
}

// Source implements ports.FrameSource over image files sorted by name.
// Every frame is scaled to the source size.
type Source struct {
	dir      string
	files    []string
	fs       ports.FileSystem
	renderer ports.Renderer

	width  int
	height int

	mu  sync.Mutex
	pos int
}

// Open lists the images in dir. A zero width or height takes the size of
// the first image.
func Open(dir string, width, height int, fs ports.FileSystem, renderer ports.Renderer, logger ports.Logger) (*Source, error) {
	names, err := fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frames dir: %w", err)
	}

	var files []string
	for _, name := range names {
		if imageExts[strings.ToLower(filepath.Ext(name))] {
			files = append(files, filepath.Join(dir, name))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFrames, dir)
	}

	s := &Source{
		dir:      dir,
		files:    files,
		fs:       fs,
		renderer: renderer,
		width:    width,
		height:   height,
	}

	if width <= 0 || height <= 0 {
		first, err := s.decode(files[0])
		if err != nil {
			return nil, err
		}
		b := first.Bounds()
		s.width, s.height = b.Dx(), b.Dy()
	}

	if logger != nil {
		logger.Info("Loaded %d still frames from %s", len(files), dir)
	}
	return s, nil
}

func (s *Source) decode(path string) (image.Image, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frame %s: %w", path, err)
	}
	img, err := s.renderer.DecodeImage(data, ports.FormatAuto)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", path, err)
	}
	return img, nil
}

// Size returns the frame dimensions.
func (s *Source) Size() (int, int) {
	return s.width, s.height
}

// Len returns the number of frames.
func (s *Source) Len() int {
	return len(s.files)
}

// ReadFrame decodes the next image. It returns io.EOF after the last one.
func (s *Source) ReadFrame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= len(s.files) {
		return nil, io.EOF
	}
	path := s.files[s.pos]
	s.pos++

	img, err := s.decode(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		img = s.renderer.ResizeImage(img, s.width, s.height)
	}
	return img, nil
}

// Rewind restarts from the first image.
func (s *Source) Rewind() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = 0
	return nil
}

// Close does nothing.
func (s *Source) Close() error {
	return nil
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
