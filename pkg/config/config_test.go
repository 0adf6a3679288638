package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maskplay.yaml")
	data := []byte(`
listen: 127.0.0.1:23456
video: /videos/2.mov
fps: 25
display: snapshot
snapshot:
  dir: /tmp/snaps
  every: 10
outline: true
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Listen != "127.0.0.1:23456" {
		t.Errorf("listen = %q", cfg.Listen)
	}
	if cfg.VideoPath != "/videos/2.mov" {
		t.Errorf("video = %q", cfg.VideoPath)
	}
	if cfg.FPS != 25 {
		t.Errorf("fps = %v", cfg.FPS)
	}
	if cfg.Snapshot.Dir != "/tmp/snaps" || cfg.Snapshot.Every != 10 {
		t.Errorf("snapshot = %+v", cfg.Snapshot)
	}
	if !cfg.Outline {
		t.Error("expected outline enabled")
	}
	// Untouched fields keep their defaults.
	if !cfg.Loop {
		t.Error("expected loop default to be kept")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MASKPLAY_LISTEN": "localhost:9999",
		"MASKPLAY_FPS":    "60",
		"FFMPEG_PATH":     "/opt/ffmpeg",
	}

	cfg := Defaults()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Listen != "localhost:9999" || cfg.FPS != 60 || cfg.FFmpegPath != "/opt/ffmpeg" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Display != DisplayFFplay {
		t.Errorf("display = %q, want default", cfg.Display)
	}

	bad := Defaults()
	if err := bad.ApplyEnv(func(k string) string {
		if k == "MASKPLAY_FPS" {
			return "fast"
		}
		return ""
	}); err == nil {
		t.Error("expected error for invalid MASKPLAY_FPS")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero fps", func(c *Config) { c.FPS = 0 }, true},
		{"empty listen", func(c *Config) { c.Listen = "" }, true},
		{"unknown display", func(c *Config) { c.Display = "opengl" }, true},
		{"snapshot without interval", func(c *Config) { c.Display = DisplaySnapshot; c.Snapshot.Every = 0 }, true},
		{"negative frame size", func(c *Config) { c.FrameWidth = -1 }, true},
		{"none display", func(c *Config) { c.Display = DisplayNone }, false},
		{"record without path", func(c *Config) { c.Display = DisplayRecord }, true},
		{"record", func(c *Config) { c.Display = DisplayRecord; c.Record.Path = "out.mp4" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"#ff6b6b", color.RGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 255}},
		{"4ECDC4", color.RGBA{R: 0x4e, G: 0xcd, B: 0xc4, A: 255}},
		{"", color.Black},
		{"#fff", color.Black},
		{"#zzzzzz", color.Black},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
