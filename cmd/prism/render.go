package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/taigrr/prism/pkg/publish"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

type renderOptions struct {
	scene   sceneFlags
	width   int
	height  int
	depth   int
	workers int
	out     string
	thumb   uint
	upload  bool
	envFile string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Trace a scene to a PNG or PPM image",
		Example: "  prism render --preset glass --width 800 --height 400 --out glass.png\n" +
			"  prism render --scene room.glb --out room.ppm --depth 8",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd, opts)
		},
	}
	opts.scene.register(cmd)
	f := cmd.Flags()
	f.IntVarP(&opts.width, "width", "W", 400, "image width in pixels")
	f.IntVarP(&opts.height, "height", "H", 200, "image height in pixels")
	f.IntVarP(&opts.depth, "depth", "d", scene.DefaultDepth, "maximum reflection/refraction bounces")
	f.IntVarP(&opts.workers, "workers", "j", 0, "rows traced at once (default: one per CPU)")
	f.StringVarP(&opts.out, "out", "o", "render.png", "output file (.png or .ppm)")
	f.UintVar(&opts.thumb, "thumb", 0, "also write a thumbnail no larger than N pixels")
	f.BoolVar(&opts.upload, "upload", false, "upload the result to S3 (see PRISM_S3_* variables)")
	f.StringVar(&opts.envFile, "env-file", ".env", "file to read PRISM_S3_* variables from")
	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, opts renderOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("image size %dx%d must be positive", opts.width, opts.height)
	}

	w, camSpec, name, err := opts.scene.load()
	if err != nil {
		return err
	}

	var pub *publish.Publisher
	if opts.upload {
		cfg, err := publish.LoadConfig(opts.envFile)
		if err != nil {
			return fmt.Errorf("upload config: %w", err)
		}
		if pub, err = publish.NewPublisher(cfg); err != nil {
			return err
		}
	}

	camera := render.NewCamera(opts.width, opts.height, camSpec.FOV)
	camera.SetTransform(camSpec.ViewTransform())

	start := time.Now()
	canvas, err := camera.RenderWith(ctx, w, render.Options{
		Depth:    opts.depth,
		Workers:  opts.workers,
		Progress: progressLogger(10),
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	elapsed := time.Since(start)
	log.Printf("Rendered %s at %dx%d in %v", name, opts.width, opts.height, elapsed.Round(time.Millisecond))

	fb := render.FromCanvas(canvas)
	if err := fb.Save(opts.out); err != nil {
		return fmt.Errorf("save image: %w", err)
	}

	rows := [][2]string{
		{"scene", name},
		{"size", fmt.Sprintf("%dx%d", opts.width, opts.height)},
		{"time", elapsed.Round(time.Millisecond).String()},
		{"image", opts.out},
	}

	if opts.thumb > 0 && !opts.upload {
		thumbPath := strings.TrimSuffix(opts.out, filepath.Ext(opts.out)) + "_thumb" + filepath.Ext(opts.out)
		thumb := render.FromImage(publish.Thumbnail(fb.ToImage(), opts.thumb))
		if err := thumb.Save(thumbPath); err != nil {
			return fmt.Errorf("save thumbnail: %w", err)
		}
		rows = append(rows, [2]string{"thumbnail", thumbPath})
	}

	if pub != nil {
		res, err := pub.PublishImage(ctx, filepath.Base(opts.out), fb.ToImage(), opts.thumb)
		if err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		rows = append(rows, [2]string{"url", res.ImageURL})
		if res.ThumbnailURL != "" {
			rows = append(rows, [2]string{"thumbnail", res.ThumbnailURL})
		}
	}

	printSummary(cmd.OutOrStdout(), rows)
	return nil
}

// progressLogger logs every step percent of finished rows. Render calls it
// from several workers at once.
func progressLogger(step int) func(done, total int) {
	var (
		mu   sync.Mutex
		last int
	)
	return func(done, total int) {
		pct := done * 100 / total
		mu.Lock()
		defer mu.Unlock()
		if pct >= last+step {
			last = pct - pct%step
			log.Printf("Rendering: %d%%", last)
		}
	}
}
