package colors_test

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshscene/internal/colors"
)

func TestResolveSolid(t *testing.T) {
	a, err := colors.Resolve(colors.Solid{RGB: [3]float32{0, 1, 0.5}}, 3)
	require.NoError(t, err)
	assert.False(t, a.Mapped())
	assert.Equal(t, 3, a.Len())
	for _, c := range a.RGB {
		assert.Equal(t, [3]uint8{0, 255, 128}, c)
	}
}

func TestResolvePerElement(t *testing.T) {
	a, err := colors.Resolve(colors.PerElement{RGB: [][3]float32{{1, 0, 0}, {0, 0, 1}}}, 2)
	require.NoError(t, err)
	assert.Equal(t, [][3]uint8{{255, 0, 0}, {0, 0, 255}}, a.RGB)

	b, err := colors.Resolve(colors.PerElementBytes{RGB: [][3]uint8{{1, 2, 3}}}, 1)
	require.NoError(t, err)
	assert.Equal(t, [][3]uint8{{1, 2, 3}}, b.RGB)
}

func TestResolveScalars(t *testing.T) {
	in := []float32{1, 2, 3}
	a, err := colors.Resolve(colors.Scalars{Values: in}, 3)
	require.NoError(t, err)
	assert.True(t, a.Mapped())
	assert.Equal(t, in, a.Scalars)

	in[0] = 42
	assert.Equal(t, float32(1), a.Scalars[0], "resolve must copy its input")
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		spec colors.Spec
		n    int
		want error
	}{
		{"solid out of range", colors.Solid{RGB: [3]float32{0, 2, 0}}, 1, colors.ErrRange},
		{"solid negative", colors.Solid{RGB: [3]float32{-0.1, 0, 0}}, 1, colors.ErrRange},
		{"solid nan", colors.Solid{RGB: [3]float32{math32.NaN(), 0, 0}}, 1, colors.ErrRange},
		{"per element short", colors.PerElement{RGB: [][3]float32{{0, 0, 0}}}, 2, colors.ErrLength},
		{"per element range", colors.PerElement{RGB: [][3]float32{{0, 0, 3}}}, 1, colors.ErrRange},
		{"bytes short", colors.PerElementBytes{}, 1, colors.ErrLength},
		{"scalars long", colors.Scalars{Values: []float32{1, 2}}, 1, colors.ErrLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := colors.Resolve(tt.spec, tt.n)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := colors.Resolve(nil, 1)
	assert.Error(t, err)
}

func TestNormalizeMax(t *testing.T) {
	got := colors.NormalizeMax([]float32{1, math32.NaN(), 4})
	assert.Equal(t, float32(0.25), got[0])
	assert.True(t, math32.IsNaN(got[1]))
	assert.Equal(t, float32(1), got[2])

	assert.Equal(t, []float32{0, 0}, colors.NormalizeMax([]float32{0, 0}))
}

func TestRamp(t *testing.T) {
	assert.Equal(t, [3]uint8{255, 0, 0}, colors.Ramp(0, 0, 1), "low end is red")
	assert.Equal(t, [3]uint8{0, 0, 255}, colors.Ramp(1, 0, 1), "high end is blue")
	assert.Equal(t, colors.NaNColor, colors.Ramp(math32.NaN(), 0, 1))
	assert.Equal(t, [3]uint8{255, 0, 0}, colors.Ramp(5, 5, 5), "flat range maps to low end")

	mapped := colors.MapScalars([]float32{2, 4})
	assert.Equal(t, [][3]uint8{{255, 0, 0}, {0, 0, 255}}, mapped)
}
