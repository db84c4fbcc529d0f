package batch_test

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshscene/internal/batch"
	"meshscene/internal/config"
	"meshscene/internal/snapshot"
)

const triangleScene = `
background: black
actors:
  - type: mesh
    vertices: [[-1, -1, 0], [1, -1, 0], [0, 1, 0]]
    faces: [[0, 1, 2]]
    color: [1, 1, 1]
    opacity: 1
`

func writeScene(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	good := writeScene(t, dir, "tri.yaml", triangleScene)
	bad := writeScene(t, dir, "bad.yaml", "actors: [{type: cube}]")
	missing := filepath.Join(dir, "missing.yaml")

	cfg := batch.Config{
		OutputDir:   out,
		Format:      "bmp",
		Width:       16,
		Height:      12,
		Scale:       2,
		Supersample: 2,
		Background:  color.NRGBA{255, 255, 255, 255},
		Workers:     2,
	}
	results := batch.Run(cfg, []string{good, bad, missing})
	require.Len(t, results, 3)

	assert.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, "tri.bmp", results[0].Image)
	assert.Equal(t, 1, results[0].Actors)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Error, "cube")
	assert.False(t, results[2].Success)

	img, err := snapshot.Load(filepath.Join(out, "tri.bmp"))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, img.NRGBAAt(0, 0), "scene background wins")
	c := img.NRGBAAt(16, 12)
	assert.Greater(t, c.R, uint8(128), "fitted camera centers the mesh")

	manifest := filepath.Join(out, "manifest.json")
	require.NoError(t, batch.WriteManifest(manifest, results))
	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	var entries []batch.ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, batch.ManifestEntry{Scene: good, Image: "tri.bmp", Width: 32, Height: 24, Actors: 1}, entries[0])
}

func TestPoolSize(t *testing.T) {
	small := batch.Config{Width: 16, Height: 12, Scale: 2, Supersample: 2, Workers: 6}
	assert.Equal(t, 6, batch.PoolSize(small))

	// 8640x5760 frames take about 600 MB each.
	large := batch.Config{Width: 1080, Height: 720, Scale: 4, Supersample: 2, Workers: 64}
	assert.Equal(t, 14, batch.PoolSize(large))

	huge := batch.Config{Width: 100000, Height: 100000, Scale: 1, Supersample: 1, Workers: 4}
	assert.Equal(t, 1, batch.PoolSize(huge))

	assert.Equal(t, 1, batch.PoolSize(batch.Config{}))
}

func TestFromConfig(t *testing.T) {
	var c config.Config
	c.Resolve(config.Flags{Workers: 5, Format: "tga"})

	cfg := batch.FromConfig(c)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, "tga", cfg.Format)
	assert.Equal(t, 1080, cfg.Width)
	assert.Equal(t, 4, cfg.Scale)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, cfg.Background)
	assert.Equal(t, 300.0, cfg.ZoomFactor)
}
