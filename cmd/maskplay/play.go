package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/maskplay/pkg/adapters/ffmpegsource"
	"github.com/user/maskplay/pkg/adapters/ffplaydisplay"
	"github.com/user/maskplay/pkg/adapters/filedisplay"
	"github.com/user/maskplay/pkg/adapters/ggrenderer"
	"github.com/user/maskplay/pkg/adapters/nulldisplay"
	"github.com/user/maskplay/pkg/adapters/osfilesystem"
	"github.com/user/maskplay/pkg/adapters/recorddisplay"
	"github.com/user/maskplay/pkg/adapters/stdincommands"
	"github.com/user/maskplay/pkg/adapters/stillsource"
	"github.com/user/maskplay/pkg/config"
	"github.com/user/maskplay/pkg/intake"
	"github.com/user/maskplay/pkg/ipc"
	"github.com/user/maskplay/pkg/player"
	"github.com/user/maskplay/pkg/ports"
	"github.com/user/maskplay/pkg/shape"
)

func playCommand() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:     "video",
			Aliases:  []string{"i"},
			Usage:    l10n.T("Video file to play"),
			Category: l10n.T("Source"),
		},
		&cli.StringFlag{
			Name:     "frames-dir",
			Usage:    l10n.T("Directory of still images to play instead of a video"),
			Category: l10n.T("Source"),
		},
		&cli.StringFlag{
			Name:     "size",
			Usage:    l10n.T("Scale frames to WxH"),
			Category: l10n.T("Source"),
		},
		&cli.BoolFlag{
			Name:     "no-loop",
			Usage:    l10n.T("Stop at the end of the video"),
			Category: l10n.T("Source"),
		},
		&cli.Float64Flag{
			Name:     "fps",
			Usage:    l10n.T("Display rate in frames per second"),
			Category: l10n.T("Playback"),
		},
		&cli.StringFlag{
			Name:     "display",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Display kind (ffplay, snapshot, record, none)"),
			Category: l10n.T("Display"),
		},
		&cli.BoolFlag{
			Name:     "fullscreen",
			Aliases:  []string{"f"},
			Usage:    l10n.T("Start in fullscreen"),
			Category: l10n.T("Display"),
		},
		&cli.StringFlag{
			Name:     "snapshot-dir",
			Usage:    l10n.T("Directory for snapshot frames"),
			Category: l10n.T("Display"),
		},
		&cli.StringFlag{
			Name:     "record-to",
			Usage:    l10n.T("Encode the masked output to this video file instead of showing it"),
			Category: l10n.T("Display"),
		},
		&cli.BoolFlag{
			Name:     "outline",
			Usage:    l10n.T("Draw mask outlines and labels"),
			Category: l10n.T("Display"),
		},
	)

	return &cli.Command{
		Name:   "play",
		Usage:  l10n.T("Play a video and apply masks received from the editor"),
		Flags:  flags,
		Action: playAction,
	}
}

func applyPlayFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("video") {
		cfg.VideoPath = c.String("video")
	}
	if c.IsSet("frames-dir") {
		cfg.FramesDir = c.String("frames-dir")
	}
	if c.IsSet("size") {
		w, h, err := parseSize(c.String("size"))
		if err != nil {
			return err
		}
		cfg.FrameWidth, cfg.FrameHeight = w, h
	}
	if c.Bool("no-loop") {
		cfg.Loop = false
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Float64("fps")
	}
	if c.IsSet("display") {
		cfg.Display = c.String("display")
	}
	if c.Bool("fullscreen") {
		cfg.Fullscreen = true
	}
	if c.IsSet("snapshot-dir") {
		cfg.Snapshot.Dir = c.String("snapshot-dir")
	}
	if c.IsSet("record-to") {
		cfg.Display = config.DisplayRecord
		cfg.Record.Path = c.String("record-to")
	}
	if c.Bool("outline") {
		cfg.Outline = true
	}
	return nil
}

func playAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := applyPlayFlags(c, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.VideoPath == "" && cfg.FramesDir == "" {
		return errors.New(l10n.T("a video file or a frames directory is required"))
	}

	log := newLogger(c, cfg)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	source, err := openSource(cfg, fs, renderer, log)
	if err != nil {
		return err
	}
	defer source.Close()

	display, err := openDisplay(cfg, fs, renderer, log)
	if err != nil {
		return err
	}
	defer display.Close()

	queue := intake.New[[]shape.NormalizedShape]()
	server, err := ipc.Listen(cfg.Listen, queue, log)
	if err != nil {
		return err
	}
	defer server.Close()
	go server.Serve()

	opts := player.Options{
		FPS:        cfg.FPS,
		Loop:       cfg.Loop,
		Fullscreen: cfg.Fullscreen,
		Outline:    cfg.Outline,
		LabelColor: config.ParseColor(cfg.OutlineLabels),
	}
	p := player.New(source, display, stdincommands.New(os.Stdin), queue, renderer, log, opts)
	return p.Run(ctx)
}

func openSource(cfg config.Config, fs ports.FileSystem, renderer ports.Renderer, log ports.Logger) (ports.FrameSource, error) {
	if cfg.FramesDir != "" {
		return stillsource.Open(cfg.FramesDir, cfg.FrameWidth, cfg.FrameHeight, fs, renderer, log)
	}
	return ffmpegsource.Open(cfg.VideoPath, ffmpegsource.Options{
		FFmpegPath: cfg.FFmpegPath,
		Width:      cfg.FrameWidth,
		Height:     cfg.FrameHeight,
		Logger:     log,
	})
}

func openDisplay(cfg config.Config, fs ports.FileSystem, renderer ports.Renderer, log ports.Logger) (ports.Display, error) {
	switch cfg.Display {
	case config.DisplaySnapshot:
		return filedisplay.New(cfg.Snapshot.Dir, cfg.Snapshot.Every, fs, renderer, log), nil
	case config.DisplayRecord:
		return recorddisplay.New(recorddisplay.Options{
			FFmpegPath: cfg.FFmpegPath,
			OutputPath: cfg.Record.Path,
			FPS:        cfg.FPS,
			CRF:        cfg.Record.CRF,
			Logger:     log,
		})
	case config.DisplayNone:
		return nulldisplay.New(), nil
	default:
		return ffplaydisplay.New(ffplaydisplay.Options{
			FFplayPath: cfg.FFplayPath,
			Title:      cfg.WindowTitle,
			FPS:        cfg.FPS,
			Fullscreen: cfg.Fullscreen,
			Logger:     log,
		})
	}
}
