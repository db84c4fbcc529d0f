package cells_test

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshscene/internal/cells"
)

type sizer int

func (s sizer) IDTypeSize() int { return int(s) }

func TestEncodePrefixesRows(t *testing.T) {
	m := cells.MustFromRows([][]int{{0, 1, 2}, {2, 3, 0}})

	for _, w := range []cells.IDWidth{cells.Narrow, cells.Wide} {
		a := cells.Encode(m, w)
		assert.Equal(t, w, a.Width())
		assert.Equal(t, 2, a.Len())
		assert.Equal(t, 8, a.Size())
		assert.Equal(t, []int64{3, 0, 1, 2, 3, 2, 3, 0}, a.Flat(), "width %s", w)
	}

	narrow := cells.Encode(m, cells.Narrow).Narrow()
	assert.Equal(t, []int32{3, 0, 1, 2, 3, 2, 3, 0}, narrow)
	assert.Nil(t, cells.Encode(m, cells.Wide).Narrow())
}

func TestEncodeEmpty(t *testing.T) {
	a := cells.Encode(cells.Matrix{}, cells.Native())
	assert.Equal(t, 0, a.Len())
	assert.Empty(t, a.Flat())

	m, err := a.Matrix()
	require.NoError(t, err)
	assert.True(t, m.Empty())
}

func TestEncodeNarrowWidensLargeIDs(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("ids above int32 need 64-bit int")
	}
	big := math.MaxInt32
	big += 5
	m := cells.MustFromRows([][]int{{0, 1, big}})

	a := cells.Encode(m, cells.Narrow)
	assert.Equal(t, cells.Wide, a.Width())
	assert.Equal(t, []int64{3, 0, 1, int64(big)}, a.Flat())

	got, err := a.Matrix()
	require.NoError(t, err)
	assert.Equal(t, m, got)

	small := cells.Encode(cells.MustFromRows([][]int{{0, 1, 2}}), cells.Narrow)
	assert.Equal(t, cells.Narrow, small.Width())
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for k := 1; k <= 5; k++ {
		for _, rows := range []int{1, 2, 17} {
			src := make([][]int, rows)
			for i := range src {
				src[i] = make([]int, k)
				for j := range src[i] {
					src[i][j] = rng.Intn(50)
				}
			}
			m := cells.MustFromRows(src)
			for _, w := range []cells.IDWidth{cells.Narrow, cells.Wide} {
				a := cells.Encode(m, w)
				require.Equal(t, rows*(k+1), a.Size())

				got, err := cells.Decode(a.Flat(), rows)
				require.NoError(t, err)
				assert.True(t, m.Equal(got), "k=%d rows=%d width=%s", k, rows, w)

				got, err = a.Matrix()
				require.NoError(t, err)
				assert.Equal(t, src, got.ToRows())
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		flat   []int64
		ncells int
		want   error
	}{
		{"not divisible", []int64{2, 0, 1, 2, 1}, 2, cells.ErrShape},
		{"zero cells", []int64{2, 0, 1}, 0, cells.ErrShape},
		{"negative cells", []int64{2, 0, 1}, -1, cells.ErrShape},
		{"prefix only", []int64{0, 0}, 2, cells.ErrShape},
		{"mixed widths", []int64{3, 0, 1, 2, 1, 2, 0, 1}, 2, cells.ErrNonUniform},
		{"wrong prefix", []int64{2, 0, 1, 2}, 1, cells.ErrNonUniform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cells.Decode(tt.flat, tt.ncells)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromRowsRagged(t *testing.T) {
	_, err := cells.FromRows([][]int{{0, 1}, {1, 2, 3}})
	require.ErrorIs(t, err, cells.ErrRagged)
	assert.Panics(t, func() { cells.MustFromRows([][]int{{0}, {}}) })
}

func TestMatrixHelpers(t *testing.T) {
	m := cells.MustFromRows([][]int{{4, 1}, {2, 9}})
	assert.Equal(t, 9, m.Max())
	assert.Equal(t, -1, cells.Matrix{}.Max())
	assert.Equal(t, 2, m.At(1, 0))

	c := m.Clone()
	c.Data[0] = 100
	assert.Equal(t, 4, m.At(0, 0), "clone must not alias")
}

func TestWidthOf(t *testing.T) {
	assert.Equal(t, cells.Narrow, cells.WidthOf(sizer(4)))
	assert.Equal(t, cells.Wide, cells.WidthOf(sizer(8)))
	assert.Equal(t, cells.Native(), cells.WidthOf(sizer(2)))
	assert.Equal(t, cells.Native(), cells.WidthOf(nil))
	assert.Equal(t, "int32", cells.Narrow.String())
}
