package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"meshscene/internal/batch"
	"meshscene/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	width := flag.Int("width", 0, "Window width before scaling (default: 1080)")
	height := flag.Int("height", 0, "Window height before scaling (default: 720)")
	scale := flag.Int("scale", 0, "Output magnification (default: 4)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	format := flag.String("format", "", "Image format: webp, tga or bmp (default: webp)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] scene.yaml...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	scenes := flag.Args()
	if len(scenes) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:   *outputDir,
		Width:       *width,
		Height:      *height,
		Scale:       *scale,
		Supersample: *supersample,
		Format:      *format,
		Workers:     *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Print summary
	outW, outH := cfg.OutputSize()
	fmt.Printf("Mesh scene renderer → %s\n", cfg.Format)
	fmt.Printf("Scenes: %d, Workers: %d, Size: %dx%d (x%d supersample)\n", len(scenes), cfg.Workers, outW, outH, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.FromConfig(cfg), scenes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(scenes))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Scene, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
