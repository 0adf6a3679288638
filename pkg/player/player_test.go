package player

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/maskplay/pkg/adapters/logger"
	"github.com/user/maskplay/pkg/intake"
	"github.com/user/maskplay/pkg/mocks"
	"github.com/user/maskplay/pkg/ports"
	"github.com/user/maskplay/pkg/shape"
)

var leftHalf = shape.NormalizedShape{
	Points: []shape.Point{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 0.5, Y: 1}, {X: 0, Y: 1}},
	Closed: true,
	Color:  shape.White,
}

var topLeft = shape.NormalizedShape{
	Points: []shape.Point{{X: 0, Y: 0}, {X: 0.3, Y: 0}, {X: 0.3, Y: 0.3}},
	Closed: true,
	Color:  shape.Color{Red: 255, Green: 107, Blue: 107, Alpha: 255},
}

type fixture struct {
	source   *mocks.FrameSource
	display  *mocks.Display
	commands *mocks.Commands
	queue    *intake.Queue[[]shape.NormalizedShape]
	renderer *mocks.Renderer
	player   *Player
}

func newFixture(source *mocks.FrameSource, opts Options) *fixture {
	f := &fixture{
		source:   source,
		display:  &mocks.Display{},
		commands: mocks.NewCommands(),
		queue:    intake.New[[]shape.NormalizedShape](),
		renderer: &mocks.Renderer{},
	}
	f.player = New(f.source, f.display, f.commands, f.queue, f.renderer, logger.NewNoop(), opts)
	return f
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func lastRGBA(t *testing.T, d *mocks.Display) *image.RGBA {
	t.Helper()
	img, ok := d.Last().(*image.RGBA)
	require.True(t, ok, "expected composited *image.RGBA, got %T", d.Last())
	return img
}

func TestStep_NoMasksShowsOriginalFrame(t *testing.T) {
	frame := solid(10, 10, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	f := newFixture(mocks.NewFrameSourceFrom(frame), DefaultOptions())

	require.NoError(t, f.player.Step())

	assert.Same(t, frame, f.display.Last())
	assert.Nil(t, f.player.MaskSet())
	assert.False(t, f.player.MaskEnabled())
}

func TestStep_LastQueuedSetWins(t *testing.T) {
	f := newFixture(mocks.NewFrameSource(3, 10, 10), DefaultOptions())

	f.queue.Push([]shape.NormalizedShape{leftHalf})
	f.queue.Push([]shape.NormalizedShape{leftHalf, topLeft})

	require.NoError(t, f.player.Step())

	set := f.player.MaskSet()
	require.NotNil(t, set)
	assert.Len(t, set.Shapes, 2)
	assert.Equal(t, "Editor_Shape_2", set.Shapes[1].Label)
	assert.True(t, f.player.MaskEnabled())
	assert.Equal(t, 0, f.queue.Len())
}

func TestStep_AppliesMask(t *testing.T) {
	f := newFixture(mocks.NewFrameSource(3, 10, 10), DefaultOptions())
	f.queue.Push([]shape.NormalizedShape{leftHalf})

	require.NoError(t, f.player.Step())

	out := lastRGBA(t, f.display)
	assert.Equal(t, color.RGBA{R: 0, G: 200, B: 100, A: 255}, out.RGBAAt(2, 5))
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(8, 5))
}

func TestStep_EmptyShapeSetClearsMasks(t *testing.T) {
	f := newFixture(mocks.NewFrameSource(3, 10, 10), DefaultOptions())
	f.queue.Push([]shape.NormalizedShape{leftHalf})
	require.NoError(t, f.player.Step())

	f.queue.Push([]shape.NormalizedShape{})
	require.NoError(t, f.player.Step())

	assert.Empty(t, f.player.MaskSet().Shapes)
	// Empty set bypasses compositing.
	assert.Equal(t, color.RGBA{R: 1, G: 200, B: 100, A: 255}, lastRGBA(t, f.display).RGBAAt(8, 5))
}

func TestToggleMask_KeepsShapes(t *testing.T) {
	frames := []image.Image{
		solid(10, 10, color.RGBA{R: 1, G: 1, B: 1, A: 255}),
		solid(10, 10, color.RGBA{R: 2, G: 2, B: 2, A: 255}),
		solid(10, 10, color.RGBA{R: 3, G: 3, B: 3, A: 255}),
	}
	f := newFixture(mocks.NewFrameSourceFrom(frames...), DefaultOptions())
	f.queue.Push([]shape.NormalizedShape{leftHalf})
	f.commands.Push(ports.CommandToggleMask)

	// Masked, then toggled off at the end of the iteration.
	require.NoError(t, f.player.Step())
	assert.NotSame(t, frames[0], f.display.Last())
	assert.False(t, f.player.MaskEnabled())
	assert.Len(t, f.player.MaskSet().Shapes, 1)

	// Disabled: the frame passes through untouched.
	require.NoError(t, f.player.Step())
	assert.Same(t, frames[1], f.display.Last())

	f.commands.Push(ports.CommandToggleMask)
	require.NoError(t, f.player.Step())
	assert.True(t, f.player.MaskEnabled())
	assert.Same(t, frames[2], f.display.Last(), "toggle applies after display")
	assert.Equal(t, 1, f.player.Compositor().Rebuilds())
}

func TestNewShapeSetReenablesMasking(t *testing.T) {
	f := newFixture(mocks.NewFrameSource(3, 10, 10), DefaultOptions())
	f.queue.Push([]shape.NormalizedShape{leftHalf})
	f.commands.Push(ports.CommandToggleMask)
	require.NoError(t, f.player.Step())
	require.False(t, f.player.MaskEnabled())

	f.queue.Push([]shape.NormalizedShape{topLeft})
	require.NoError(t, f.player.Step())
	assert.True(t, f.player.MaskEnabled())
	assert.True(t, f.player.MaskSet().Enabled)
}

func TestPause_RedisplaysLastFrame(t *testing.T) {
	f := newFixture(mocks.NewFrameSource(3, 10, 10), DefaultOptions())
	f.commands.Push(ports.CommandTogglePlay)

	require.NoError(t, f.player.Step())
	assert.False(t, f.player.Playing())
	first := f.display.Last()

	require.NoError(t, f.player.Step())
	assert.Same(t, first, f.display.Last())
	assert.Equal(t, 1, f.source.Reads)

	// A mask arriving while paused shows up on the paused frame.
	f.queue.Push([]shape.NormalizedShape{leftHalf})
	require.NoError(t, f.player.Step())
	out := lastRGBA(t, f.display)
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(8, 5))
	assert.Equal(t, 1, f.source.Reads)
}

func TestLoop_RewindsAtEnd(t *testing.T) {
	f := newFixture(mocks.NewFrameSource(2, 4, 4), DefaultOptions())

	for i := 0; i < 5; i++ {
		require.NoError(t, f.player.Step())
	}
	assert.Equal(t, 2, f.source.Rewinds)
	assert.Equal(t, 5, f.display.Count())
}

func TestNoLoop_EndsAtEndOfStream(t *testing.T) {
	opts := DefaultOptions()
	opts.Loop = false
	f := newFixture(mocks.NewFrameSource(2, 4, 4), opts)

	require.NoError(t, f.player.Step())
	require.NoError(t, f.player.Step())
	assert.ErrorIs(t, f.player.Step(), ErrEndOfStream)
	assert.Equal(t, 0, f.source.Rewinds)
}

func TestEmptySource(t *testing.T) {
	f := newFixture(mocks.NewFrameSource(0, 4, 4), DefaultOptions())
	assert.ErrorIs(t, f.player.Step(), ErrEmptySource)
}

func TestReadError(t *testing.T) {
	src := mocks.NewFrameSource(1, 4, 4)
	src.ReadFrameFunc = func() (image.Image, error) {
		return nil, errors.New("pipe broken")
	}
	f := newFixture(src, DefaultOptions())

	err := f.player.Step()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEndOfStream)
}

func TestDisplayError(t *testing.T) {
	f := newFixture(mocks.NewFrameSource(1, 4, 4), DefaultOptions())
	f.display.ShowFunc = func(img image.Image) error {
		return errors.New("window closed")
	}

	assert.Error(t, f.player.Step())
}

func TestQuitCommand(t *testing.T) {
	f := newFixture(mocks.NewFrameSource(3, 4, 4), DefaultOptions())
	f.commands.Push(ports.CommandQuit)

	assert.ErrorIs(t, f.player.Step(), ErrQuit)
	assert.Equal(t, 1, f.display.Count())
}

func TestToggleFullscreen(t *testing.T) {
	f := newFixture(mocks.NewFrameSource(3, 4, 4), DefaultOptions())
	f.commands.Push(ports.CommandToggleFullscreen)
	f.commands.Push(ports.CommandToggleFullscreen)
	f.commands.Push(ports.CommandToggleFullscreen)

	require.NoError(t, f.player.Step())
	assert.True(t, f.player.Fullscreen())
	assert.Equal(t, []bool{true, false, true}, f.display.Fullscreen)
}

func TestFrameSizeChange_RebuildsMasks(t *testing.T) {
	src := mocks.NewFrameSourceFrom(
		solid(10, 10, color.RGBA{G: 255, A: 255}),
		solid(20, 20, color.RGBA{G: 255, A: 255}),
	)
	f := newFixture(src, DefaultOptions())
	f.queue.Push([]shape.NormalizedShape{leftHalf})

	require.NoError(t, f.player.Step())
	assert.Equal(t, 10, f.player.MaskSet().Width)
	assert.Equal(t, image.Point{X: 5, Y: 10}, f.player.MaskSet().Shapes[0].Mask.Points[2])

	require.NoError(t, f.player.Step())
	assert.Equal(t, 20, f.player.MaskSet().Width)
	assert.Equal(t, image.Point{X: 10, Y: 20}, f.player.MaskSet().Shapes[0].Mask.Points[2])
	assert.Equal(t, 2, f.player.Compositor().Rebuilds())

	out := lastRGBA(t, f.display)
	assert.Equal(t, uint8(255), out.RGBAAt(9, 19).G)
	assert.Equal(t, uint8(0), out.RGBAAt(10, 19).G)
}

func TestOutlineOverlay(t *testing.T) {
	opts := DefaultOptions()
	opts.Outline = true
	f := newFixture(mocks.NewFrameSource(2, 10, 10), opts)

	// No set: no overlay.
	require.NoError(t, f.player.Step())
	assert.Empty(t, f.renderer.Canvases())

	f.queue.Push([]shape.NormalizedShape{leftHalf, topLeft})
	require.NoError(t, f.player.Step())

	canvases := f.renderer.Canvases()
	require.Len(t, canvases, 1)
	assert.Len(t, canvases[0].Strokes, 2)
	assert.Equal(t, []string{"Editor_Shape_1", "Editor_Shape_2"}, canvases[0].Texts)
}

func TestRun_StopsOnQuit(t *testing.T) {
	opts := DefaultOptions()
	opts.FPS = 500
	f := newFixture(mocks.NewFrameSource(2, 4, 4), opts)

	go func() {
		time.Sleep(20 * time.Millisecond)
		f.commands.Push(ports.CommandQuit)
	}()

	done := make(chan error, 1)
	go func() { done <- f.player.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	assert.Greater(t, f.player.Frames(), 1)
}

func TestRun_StopsOnCancel(t *testing.T) {
	opts := DefaultOptions()
	opts.FPS = 200
	opts.Fullscreen = true
	f := newFixture(mocks.NewFrameSource(2, 4, 4), opts)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	require.NoError(t, f.player.Run(ctx))
	assert.Equal(t, []bool{true}, f.display.Fullscreen)
}
