package batch

import (
	"fmt"
	"image/color"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"meshscene/internal/cells"
	"meshscene/internal/config"
	"meshscene/internal/raster"
	"meshscene/internal/scene"
	"meshscene/internal/scenefile"
	"meshscene/internal/snapshot"
)

// Config holds the shared settings for a batch run.
type Config struct {
	OutputDir   string
	Format      string
	Width       int
	Height      int
	Scale       int
	Supersample int
	Background  color.NRGBA
	ZoomFactor  float64
	Workers     int
}

// FromConfig copies resolved settings into a batch Config.
func FromConfig(c config.Config) Config {
	return Config{
		OutputDir:   c.OutputDir,
		Format:      c.Format,
		Width:       c.Width,
		Height:      c.Height,
		Scale:       c.Scale,
		Supersample: c.Supersample,
		Background:  c.BackgroundColor(),
		ZoomFactor:  c.ZoomFactor,
		Workers:     c.Workers,
	}
}

// Result holds the outcome of rendering one scene file.
type Result struct {
	Scene   string
	Image   string
	Width   int
	Height  int
	Actors  int
	Success bool
	Error   string
}

// Run renders all scene files using a worker pool.
func Run(cfg Config, scenes []string) []Result {
	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64

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
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f scenes/sec\n", p, total, rate)
				}
			}
		}
	}()

	workers := poolSize(cfg)
	if workers < cfg.Workers {
		fmt.Printf("  Limiting to %d workers for %dx%d frames\n", workers, cfg.Width*cfg.Scale*cfg.Supersample, cfg.Height*cfg.Scale*cfg.Supersample)
	}

	// Worker pool
	sceneChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, scenes[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

// frameBudget bounds the memory held by in-flight frames across workers.
const frameBudget = 8 << 30

// Bytes per supersampled pixel: color, z-buffer and the premultiplied copy
// made by the downsample.
const bytesPerPixel = 12

// poolSize returns cfg.Workers, lowered so that concurrent frames at the
// configured size stay within frameBudget. It is never below 1.
func poolSize(cfg Config) int {
	workers := max(cfg.Workers, 1)
	side := int64(max(cfg.Scale, 1) * max(cfg.Supersample, 1))
	frame := int64(max(cfg.Width, 1)) * int64(max(cfg.Height, 1)) * side * side * bytesPerPixel
	if fit := frameBudget / frame; fit < int64(workers) {
		workers = int(max(fit, 1))
	}
	return workers
}

func processScene(cfg Config, path string) Result {
	res := Result{Scene: path}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	s, err := scenefile.Load(path)
	if err != nil {
		return fail(err)
	}
	actors, err := s.Build(cells.WidthOf(raster.Caps{}))
	if err != nil {
		return fail(err)
	}
	res.Actors = len(actors)

	w, h := cfg.Width, cfg.Height
	if s.Width > 0 {
		w = s.Width
	}
	if s.Height > 0 {
		h = s.Height
	}
	bg := cfg.Background
	if s.Background != "" {
		if bg, err = config.ParseColor(s.Background); err != nil {
			return fail(err)
		}
	}

	cam, err := s.BuildCamera(cfg.ZoomFactor)
	if err != nil {
		return fail(err)
	}
	if cam == nil {
		lo, hi, _ := scene.Bounds(actors)
		c := scene.ResetCamera(lo, hi, float64(w)/float64(h))
		cam = &c
	}

	scale, ss := max(cfg.Scale, 1), max(cfg.Supersample, 1)
	outW, outH := w*scale, h*scale
	img, err := raster.Render(actors, *cam, raster.Options{
		Width:      outW * ss,
		Height:     outH * ss,
		Background: bg,
	})
	if err != nil {
		return fail(err)
	}

	// Post-processing: supersample downsample
	if ss > 1 {
		img = snapshot.Downsample(img, outW, outH)
	}

	res.Image = s.OutputName(cfg.Format)
	if err := snapshot.Save(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
		return fail(err)
	}
	res.Width, res.Height = outW, outH
	res.Success = true
	return res
}
