package snapshot_test

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshscene/internal/snapshot"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{255, 255, 255, 255}
			if (x/4+y/4)%2 == 0 {
				c = color.NRGBA{200, 20, 40, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDownsample(t *testing.T) {
	src := checker(32, 16)

	out := snapshot.Downsample(src, 16, 8)
	assert.Equal(t, image.Rect(0, 0, 16, 8), out.Bounds())
	assert.Equal(t, uint8(255), out.NRGBAAt(3, 3).A)

	same := snapshot.Downsample(src, 32, 16)
	assert.Same(t, src, same)
}

func TestDownsampleKeepsTransparentEdgesClean(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{0, 255, 0, 255})
		}
	}
	out := snapshot.Downsample(src, 4, 4)
	for x := 0; x < 4; x++ {
		c := out.NRGBAAt(x, 2)
		if c.A > 16 {
			assert.Greater(t, c.G, uint8(200), "no dark halo at x=%d", x)
		}
	}
}

func TestFormat(t *testing.T) {
	for _, tc := range []struct {
		path string
		want string
	}{
		{"a/b.webp", "webp"},
		{"x.TGA", "tga"},
		{"x.bmp", "bmp"},
	} {
		got, err := snapshot.Format(tc.path)
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.want, got)
	}

	for _, bad := range []string{"x.png", "x", "x.jpeg"} {
		_, err := snapshot.Format(bad)
		assert.ErrorIs(t, err, snapshot.ErrFormat, bad)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	src := checker(12, 8)

	for _, f := range snapshot.Formats {
		path := filepath.Join(dir, "nested", "frame."+f)
		require.NoError(t, snapshot.Save(path, src), f)

		got, err := snapshot.Load(path)
		require.NoError(t, err, f)
		assert.Equal(t, src.Bounds().Size(), got.Bounds().Size(), f)
		assert.Equal(t, src.NRGBAAt(0, 0), got.NRGBAAt(0, 0), f)
		assert.Equal(t, src.NRGBAAt(5, 1), got.NRGBAAt(5, 1), f)
	}

	assert.ErrorIs(t, snapshot.Save(filepath.Join(dir, "x.png"), src), snapshot.ErrFormat)
	_, err := snapshot.Load(filepath.Join(dir, "missing.webp"))
	assert.Error(t, err)
}

func TestCoverage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	assert.Equal(t, 0.0, snapshot.Coverage(img))

	img.SetNRGBA(1, 1, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(2, 3, color.NRGBA{255, 0, 0, 255})
	assert.Equal(t, 2.0/16, snapshot.Coverage(img))

	assert.Equal(t, 0.0, snapshot.Coverage(image.NewNRGBA(image.Rectangle{})))
}
