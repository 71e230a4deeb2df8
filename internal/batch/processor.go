// Package batch renders several camera views of one scene with a worker pool.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"skelplot/internal/imageout"
	"skelplot/internal/raster"
	"skelplot/internal/scene"
)

// Config holds the shared render settings for a batch run.
type Config struct {
	Options raster.Options
	Workers int
}

// View is one camera placement and its output file.
type View struct {
	Index     int
	Azimuth   float64
	Elevation float64
	Output    string
}

// Result holds the outcome of rendering one view.
type Result struct {
	View    View
	Success bool
	Error   string
}

// Turntable spreads n views evenly around the vertical axis starting at
// azimuth. A single view writes to output; several views write
// <stem>_000<ext>, <stem>_001<ext>, ... next to it.
func Turntable(output string, n int, azimuth, elevation float64) []View {
	if n <= 1 {
		return []View{{Azimuth: azimuth, Elevation: elevation, Output: output}}
	}

	ext := filepath.Ext(output)
	stem := strings.TrimSuffix(output, ext)
	step := 360.0 / float64(n)
	views := make([]View, n)
	for i := range views {
		views[i] = View{
			Index:     i,
			Azimuth:   azimuth + step*float64(i),
			Elevation: elevation,
			Output:    fmt.Sprintf("%s_%03d%s", stem, i, ext),
		}
	}
	return views
}

// Run renders all views. The scene is shared read-only across workers.
// Views not started before ctx is done report ctx.Err().
func Run(ctx context.Context, cfg Config, s *scene.Scene, views []View, log *zap.SugaredLogger) []Result {
	total := len(views)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Infof("[%d/%d] %.1f views/sec", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	viewChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range viewChan {
				results[idx] = processView(cfg, s, views[idx])
				processed.Add(1)
				log.Debugw("view rendered", "index", views[idx].Index, "output", views[idx].Output, "ok", results[idx].Success)
			}
		}()
	}

	// Send work
	sent := 0
dispatch:
	for ; sent < total; sent++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case viewChan <- sent:
		}
	}
	close(viewChan)

	wg.Wait()
	close(done)

	for i := sent; i < total; i++ {
		results[i] = Result{View: views[i], Error: ctx.Err().Error()}
	}
	return results
}

func processView(cfg Config, s *scene.Scene, v View) Result {
	opts := cfg.Options
	opts.Azimuth = v.Azimuth
	opts.Elevation = v.Elevation

	img, err := raster.Render(s, opts)
	if err != nil {
		return Result{View: v, Error: err.Error()}
	}
	if err := imageout.Save(v.Output, img); err != nil {
		return Result{View: v, Error: err.Error()}
	}
	return Result{View: v, Success: true}
}
