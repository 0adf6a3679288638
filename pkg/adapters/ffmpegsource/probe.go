package ffmpegsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/Eyevinn/mp4ff/mp4"
)

// VideoInfo describes the first video track of a file.
type VideoInfo struct {
	Width  int
	Height int
	Codec  string
}

// ErrNoVideoTrack is returned when a container has no video track.
var ErrNoVideoTrack = errors.New("no video track found")

// Probe reads the video dimensions of an MP4/MOV file from its track header.
func Probe(path string) (VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeReader is Probe for an already opened container.
func ProbeReader(r io.ReadSeeker) (VideoInfo, error) {
	mp4File, err := mp4.DecodeFile(r)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return VideoInfo{}, ErrNoVideoTrack
	}

	for _, trak := range moov.Traks {
		if info, ok := videoTrackInfo(trak); ok {
			return info, nil
		}
	}
	return VideoInfo{}, ErrNoVideoTrack
}

func videoTrackInfo(trak *mp4.TrakBox) (VideoInfo, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return VideoInfo{}, false
	}

	var info VideoInfo
	if trak.Tkhd != nil {
		// tkhd stores 16.16 fixed point.
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}

	if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsd != nil &&
		len(trak.Mdia.Minf.Stbl.Stsd.Children) > 0 {
		entry := trak.Mdia.Minf.Stbl.Stsd.Children[0]
		info.Codec = entry.Type()
		if vse, ok := entry.(*mp4.VisualSampleEntryBox); ok && (info.Width == 0 || info.Height == 0) {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
	}

	if info.Width <= 0 || info.Height <= 0 {
		return VideoInfo{}, false
	}
	return info, true
}

var streamSize = regexp.MustCompile(`Video: [^\n]*?, (\d{2,5})x(\d{2,5})`)

// probeWithFFmpeg asks ffmpeg for the stream size of containers mp4ff cannot
// parse.
func probeWithFFmpeg(ffmpegPath, path string) (VideoInfo, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(ffmpegPath, "-hide_banner", "-i", path)
	cmd.Stderr = &stderr
	// ffmpeg exits non-zero without an output file; only stderr matters.
	_ = cmd.Run()

	return parseStreamInfo(stderr.String())
}

func parseStreamInfo(out string) (VideoInfo, error) {
	m := streamSize.FindStringSubmatch(out)
	if m == nil {
		return VideoInfo{}, ErrNoVideoTrack
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	return VideoInfo{Width: w, Height: h}, nil
}
