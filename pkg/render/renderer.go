package render

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/prism/pkg/scene"
)

// Options tunes a render.
type Options struct {
	// Depth is the bounce budget per camera ray. Zero means
	// scene.DefaultDepth.
	Depth int

	// Workers caps how many rows are traced at once. Zero means one per CPU.
	Workers int

	// Progress, if set, is called after each finished row. It may be called
	// from several goroutines at once.
	Progress func(done, total int)
}

func (o Options) depth() int {
	if o.Depth <= 0 {
		return scene.DefaultDepth
	}
	return o.Depth
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

// Render traces every pixel on the calling goroutine.
func (c *Camera) Render(w *scene.World) *Canvas {
	canvas := NewCanvas(c.HSize, c.VSize)
	for y := range c.VSize {
		c.renderRow(w, canvas, y, scene.DefaultDepth)
	}
	return canvas
}

// RenderParallel traces rows on a fixed pool of workers. The world must not
// change until it returns.
func (c *Camera) RenderParallel(ctx context.Context, w *scene.World, workers int) (*Canvas, error) {
	return c.RenderWith(ctx, w, Options{Workers: workers})
}

// RenderWith is RenderParallel with every knob exposed. Cancelling ctx stops
// handing out rows; rows already started run to completion and the partial
// canvas is discarded.
func (c *Camera) RenderWith(ctx context.Context, w *scene.World, opts Options) (*Canvas, error) {
	canvas := NewCanvas(c.HSize, c.VSize)
	depth := opts.depth()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())

	var done atomic.Int64
	for y := range c.VSize {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each row writes only its own slice of the canvas.
			c.renderRow(w, canvas, y, depth)
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), c.VSize)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return canvas, nil
}

func (c *Camera) renderRow(w *scene.World, canvas *Canvas, y, depth int) {
	row := canvas.Row(y)
	for x := range c.HSize {
		row[x] = w.ColorAt(c.RayForPixel(x, y), depth)
	}
}
