package main

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/maskplay/pkg/adapters/osfilesystem"
	"github.com/user/maskplay/pkg/config"
	"github.com/user/maskplay/pkg/editor"
	"github.com/user/maskplay/pkg/ipc"
	"github.com/user/maskplay/pkg/shape"
)

func shapeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:     "shape",
			Aliases:  []string{"s"},
			Usage:    l10n.T(`Polygon in canvas pixels, e.g. "10,10 100,10 100,80" (repeatable)`),
			Category: l10n.T("Shapes"),
		},
		&cli.StringFlag{
			Name:     "canvas",
			Value:    "800x600",
			Usage:    l10n.T("Editor canvas size WxH"),
			Category: l10n.T("Shapes"),
		},
	}
}

func sendCommand() *cli.Command {
	flags := append(commonFlags(), shapeFlags()...)
	flags = append(flags, &cli.StringFlag{
		Name:     "project",
		Aliases:  []string{"p"},
		Usage:    l10n.T("Project file whose shapes are sent"),
		Category: l10n.T("Shapes"),
	})

	return &cli.Command{
		Name:   "send",
		Usage:  l10n.T("Send closed shapes to a running player"),
		Flags:  flags,
		Action: sendAction,
	}
}

func sendAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)
	client := ipc.NewClient(cfg.Listen, log)

	if path := c.String("project"); path != "" {
		data, err := osfilesystem.New().ReadFile(path)
		if err != nil {
			return fmt.Errorf("read project: %w", err)
		}
		shapes, _, err := shape.DecodeDocument(data)
		if err != nil {
			return err
		}
		if !anyMaskable(shapes) {
			log.Warn("No closed shapes to send")
			return editor.ErrNothingToSend
		}
		log.Info("Sending %d shapes to %s", len(shapes), cfg.Listen)
		if err := client.Send(c.Context, shapes); err != nil {
			log.Error("Cannot reach the player at %s: %v", cfg.Listen, err)
			return err
		}
		log.Info("Masks sent successfully")
		return nil
	}

	canvas, err := canvasFromFlags(c)
	if err != nil {
		return err
	}
	if n := len(canvas.Closed()); n > 0 {
		log.Info("Sending %d shapes to %s", n, cfg.Listen)
	}
	if _, err := editor.NewSender(canvas, client, log).SendAndClear(c.Context); err != nil {
		if errors.Is(err, ipc.ErrConnection) {
			log.Error("Cannot reach the player at %s: %v", cfg.Listen, err)
		}
		return err
	}
	return nil
}

func projectCommand() *cli.Command {
	flags := append(shapeFlags(),
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Required: true,
			Usage:    l10n.T("Project file to write"),
			Category: l10n.T("Output"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
	)

	return &cli.Command{
		Name:  "project",
		Usage: l10n.T("Save shapes as a project file"),
		Flags: flags,
		Action: func(c *cli.Context) error {
			canvas, err := canvasFromFlags(c)
			if err != nil {
				return err
			}
			data, err := canvas.Save()
			if err != nil {
				return err
			}
			out := c.String("output")
			if err := osfilesystem.New().WriteFile(out, data); err != nil {
				return fmt.Errorf("write project: %w", err)
			}
			newLogger(c, config.Defaults()).Info("Project saved to %s", out)
			return nil
		},
	}
}

// canvasFromFlags draws every --shape polygon on a canvas of --canvas size.
func canvasFromFlags(c *cli.Context) (*editor.Canvas, error) {
	w, h, err := parseSize(c.String("canvas"))
	if err != nil {
		return nil, err
	}
	canvas := editor.NewCanvas(w, h, nil)
	for _, spec := range c.StringSlice("shape") {
		points, err := parsePolygon(spec)
		if err != nil {
			return nil, err
		}
		for _, p := range points {
			canvas.AddPoint(p)
		}
		canvas.FinishShape()
	}
	return canvas, nil
}

func anyMaskable(shapes []shape.NormalizedShape) bool {
	for _, s := range shapes {
		if s.Maskable() {
			return true
		}
	}
	return false
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return w, h, nil
}

// parsePolygon parses space separated "x,y" pixel pairs.
func parsePolygon(s string) ([]image.Point, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errors.New("empty shape")
	}
	points := make([]image.Point, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("invalid point %q, want x,y", f)
		}
		x, err := strconv.Atoi(xs)
		if err != nil {
			return nil, fmt.Errorf("invalid x in %q: %w", f, err)
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return nil, fmt.Errorf("invalid y in %q: %w", f, err)
		}
		points = append(points, image.Point{X: x, Y: y})
	}
	return points, nil
}
