// Package ffmpegsource decodes video files into RGBA frames through an
// external ffmpeg process.
package ffmpegsource

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

var (
	// ErrFFmpegNotFound is returned when no ffmpeg executable can be located.
	ErrFFmpegNotFound = errors.New("ffmpeg not found")

	// ErrFFplayNotFound is returned when no ffplay executable can be located.
	ErrFFplayNotFound = errors.New("ffplay not found")
)

// FindFFmpeg searches for ffmpeg.
// Priority: 1) custom, 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg(custom string) (string, error) {
	return findTool("ffmpeg", custom, "FFMPEG_PATH", ErrFFmpegNotFound)
}

// FindFFplay searches for ffplay the same way FindFFmpeg does, using
// FFPLAY_PATH as the environment override.
func FindFFplay(custom string) (string, error) {
	return findTool("ffplay", custom, "FFPLAY_PATH", ErrFFplayNotFound)
}

func findTool(name, custom, envVar string, notFound error) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", notFound, custom)
	}

	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", notFound, envVar, envPath)
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}

	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonDirs []string
	switch runtime.GOOS {
	case "windows":
		commonDirs = []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	case "darwin":
		commonDirs = []string{"/opt/homebrew/bin", "/usr/local/bin", "/usr/bin"}
	default:
		commonDirs = []string{"/usr/bin", "/usr/local/bin", "/opt/homebrew/bin", "/snap/bin"}
	}

	for _, dir := range commonDirs {
		p := dir + string(os.PathSeparator) + execName
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", notFound
}
