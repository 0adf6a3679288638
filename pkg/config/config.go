// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/user/maskplay/pkg/ipc"
)

// Display kinds.
const (
	DisplayFFplay   = "ffplay"
	DisplaySnapshot = "snapshot"
	DisplayRecord   = "record"
	DisplayNone     = "none"
)

// Config represents the full configuration for the player and the sender.
type Config struct {
	// IPC
	Listen string `yaml:"listen"`

	// Source
	VideoPath   string `yaml:"video"`
	FramesDir   string `yaml:"frames_dir"`
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
	Loop        bool   `yaml:"loop"`

	// Playback
	FPS float64 `yaml:"fps"`

	// Display
	Display       string         `yaml:"display"`
	FFplayPath    string         `yaml:"ffplay_path"`
	Fullscreen    bool           `yaml:"fullscreen"`
	WindowTitle   string         `yaml:"window_title"`
	Snapshot      SnapshotConfig `yaml:"snapshot"`
	Record        RecordConfig   `yaml:"record"`
	Outline       bool           `yaml:"outline"`
	OutlineLabels string         `yaml:"outline_label_color"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// SnapshotConfig configures the snapshot display.
type SnapshotConfig struct {
	Dir   string `yaml:"dir"`
	Every int    `yaml:"every"`
}

// RecordConfig configures the record display.
type RecordConfig struct {
	Path string `yaml:"path"`
	CRF  int    `yaml:"crf"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Listen: ipc.DefaultAddress,
		Loop:   true,
		FPS:    30.0,

		Display:     DisplayFFplay,
		WindowTitle: "Video Mask Player",
		Snapshot: SnapshotConfig{
			Dir:   "./snapshots",
			Every: 30,
		},
		Record: RecordConfig{
			CRF: 23,
		},
		OutlineLabels: "#ffffff",

		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables looked up with
// getenv. Empty values are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("MASKPLAY_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := getenv("MASKPLAY_VIDEO"); v != "" {
		c.VideoPath = v
	}
	if v := getenv("MASKPLAY_DISPLAY"); v != "" {
		c.Display = v
	}
	if v := getenv("MASKPLAY_FPS"); v != "" {
		fps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MASKPLAY_FPS: %w", err)
		}
		c.FPS = fps
	}
	if v := getenv("FFMPEG_PATH"); v != "" {
		c.FFmpegPath = v
	}
	if v := getenv("FFPLAY_PATH"); v != "" {
		c.FFplayPath = v
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("config: listen address is empty")
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %v", c.FPS)
	}
	if c.FrameWidth < 0 || c.FrameHeight < 0 {
		return fmt.Errorf("config: negative frame size %dx%d", c.FrameWidth, c.FrameHeight)
	}
	switch c.Display {
	case DisplayFFplay, DisplayNone:
	case DisplaySnapshot:
		if c.Snapshot.Every <= 0 {
			return fmt.Errorf("config: snapshot.every must be positive, got %d", c.Snapshot.Every)
		}
	case DisplayRecord:
		if c.Record.Path == "" {
			return errors.New("config: record.path is empty")
		}
	default:
		return fmt.Errorf("config: unknown display %q", c.Display)
	}
	return nil
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
