package main

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"skelplot/internal/batch"
	"skelplot/internal/raster"
	"skelplot/internal/scene"
)

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [model.xml]",
		Short: "Render the zero pose to an image (png, webp or tga).",
		Long: `Render draws every joint as a height-shaded marker with its name,
and one line from each joint to its parent, inside fixed cubic axis bounds.

With --views N the camera turns around the vertical axis and N images plus
a manifest.json are written next to --output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args)
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "skeleton.png", "output image path")
	f.Int("size", 640, "image width and height in pixels")
	f.Int("supersample", 2, "supersampling factor")
	f.Float64("azimuth", -60, "camera azimuth in degrees")
	f.Float64("elevation", 30, "camera elevation in degrees")
	f.Float64("axis-range", scene.DefaultAxisRange, "half-width of the cubic axis bounds")
	f.Float64("label-size", 6, "joint label size in points, 0 disables labels")
	f.Int("views", 1, "number of turntable views")
	f.Int("workers", 0, "render workers (default: NumCPU)")
	f.Bool("chains", false, "overlay the configured joint chains")

	a.bindFlags(cmd, map[string]string{
		"output":      "output",
		"size":        "size",
		"supersample": "supersample",
		"azimuth":     "azimuth",
		"elevation":   "elevation",
		"axis-range":  "axis_range",
		"label-size":  "label_size",
		"views":       "views",
		"workers":     "workers",
		"chains":      "draw_chains",
	})
	return cmd
}

func (a *app) render(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(args)
	if err != nil {
		return err
	}
	_, pose, err := a.loadPose(cfg.Model)
	if err != nil {
		return err
	}

	s, err := scene.FromPose(pose, cfg.AxisRange)
	if err != nil {
		return err
	}
	if cfg.DrawChains {
		if err := s.AddChains(pose.Hierarchy(), pose.GlobalPositions(), cfg.Chains); err != nil {
			return err
		}
	}
	a.log.Debugw("scene built", "labels", len(s.Labels), "segments", len(s.Segments), "chains", len(s.Chains))

	opts := raster.DefaultOptions()
	opts.Size = cfg.Size
	opts.Supersample = cfg.Supersample
	opts.LabelSize = cfg.LabelSize

	views := batch.Turntable(cfg.Output, cfg.Views, cfg.Azimuth, cfg.Elevation)
	results := batch.Run(cmd.Context(), batch.Config{Options: opts, Workers: cfg.Workers}, s, views, a.log)

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.Success {
			color.New(color.FgGreen).Fprintf(out, "✓ %s\n", r.View.Output)
			continue
		}
		failed++
		color.New(color.FgRed).Fprintf(out, "✗ %s: %s\n", r.View.Output, r.Error)
	}

	if len(views) > 1 {
		manifest := filepath.Join(filepath.Dir(cfg.Output), "manifest.json")
		if err := batch.WriteManifest(manifest, results); err != nil {
			a.log.Warnw("manifest write failed", "path", manifest, "error", err)
		} else {
			a.log.Infow("manifest written", "path", manifest)
		}
	}

	if failed > 0 {
		return errors.Errorf("%d of %d views failed", failed, len(results))
	}
	return nil
}
