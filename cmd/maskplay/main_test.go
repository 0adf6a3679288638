package main

import (
	"bytes"
	"image"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/maskplay/pkg/adapters/logger"
	"github.com/user/maskplay/pkg/editor"
	"github.com/user/maskplay/pkg/intake"
	"github.com/user/maskplay/pkg/ipc"
	"github.com/user/maskplay/pkg/shape"
)

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("1280x720")
	require.NoError(t, err)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	w, h, err = parseSize(" 640X480 ")
	require.NoError(t, err)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	for _, bad := range []string{"", "1280", "0x10", "10x-1", "axb"} {
		_, _, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestParsePolygon(t *testing.T) {
	points, err := parsePolygon("10,10  100,10 100,80")
	require.NoError(t, err)
	assert.Equal(t, []image.Point{{10, 10}, {100, 10}, {100, 80}}, points)

	for _, bad := range []string{"", "10;10", "a,1", "1,b"} {
		_, err := parsePolygon(bad)
		assert.Error(t, err, bad)
	}
}

func startPlayer(t *testing.T) (*ipc.Server, *intake.Queue[[]shape.NormalizedShape]) {
	t.Helper()
	queue := intake.New[[]shape.NormalizedShape]()
	server, err := ipc.Listen("127.0.0.1:0", queue, logger.NewNoop())
	require.NoError(t, err)
	go server.Serve()
	t.Cleanup(func() { server.Close() })
	return server, queue
}

func TestSendCommand_DeliversShapes(t *testing.T) {
	server, queue := startPlayer(t)

	err := newApp().Run([]string{
		"maskplay", "send", "-Q",
		"--listen", server.Addr().String(),
		"--canvas", "800x600",
		"--shape", "0,0 400,0 400,300",
		"--shape", "1,1 2,2",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return queue.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
	shapes, ok := queue.TryPop()
	require.True(t, ok)
	require.Len(t, shapes, 1)
	assert.Equal(t, []shape.Point{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 0.5, Y: 0.5}}, shapes[0].Points)
}

func TestSendCommand_NothingToSend(t *testing.T) {
	server, _ := startPlayer(t)

	err := newApp().Run([]string{
		"maskplay", "send", "-Q",
		"--listen", server.Addr().String(),
		"--shape", "1,1 2,2",
	})
	assert.ErrorIs(t, err, editor.ErrNothingToSend)
	assert.Equal(t, uint64(0), server.Stats().Accepted)
}

func TestSendCommand_PlayerNotRunning(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	err = newApp().Run([]string{
		"maskplay", "send", "-Q",
		"--listen", addr,
		"--shape", "0,0 10,0 10,10",
	})
	assert.ErrorIs(t, err, ipc.ErrConnection)
}

func TestProjectThenSend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")

	err := newApp().Run([]string{
		"maskplay", "project", "-Q",
		"--canvas", "100x100",
		"--shape", "10,10 90,10 90,90",
		"--shape", "5,5 6,6",
		"--output", path,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	shapes, meta, err := shape.DecodeDocument(data)
	require.NoError(t, err)
	assert.Len(t, shapes, 1, "unclosable shapes are discarded by the editor")
	assert.Equal(t, 1, meta.ClosedShapes)

	server, queue := startPlayer(t)
	err = newApp().Run([]string{
		"maskplay", "send", "-Q",
		"--listen", server.Addr().String(),
		"--project", path,
	})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return queue.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestProjectCommand_ShapeKeepsItsPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")

	err := newApp().Run([]string{
		"maskplay", "project", "-Q",
		"--canvas", "100x100",
		"--shape", "10,10 90,10 90,90",
		"--shape", "10,20 50,20 50,60 10,60",
		"--output", path,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	shapes, _, err := shape.DecodeDocument(data)
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	assert.Equal(t, []shape.Point{{X: 0.1, Y: 0.1}, {X: 0.9, Y: 0.1}, {X: 0.9, Y: 0.9}}, shapes[0].Points)
	assert.Len(t, shapes[1].Points, 4)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf

	require.NoError(t, app.Run([]string{"maskplay", "version"}))
	assert.Contains(t, buf.String(), version)
}

func TestPlayCommand_RequiresInput(t *testing.T) {
	err := newApp().Run([]string{"maskplay", "play", "-Q", "--display", "none"})
	assert.Error(t, err)
}
