package scene_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshscene/internal/cells"
	"meshscene/internal/colors"
	"meshscene/internal/mathutil"
	"meshscene/internal/scene"
)

func assertVec(t *testing.T, want, got mathutil.Vec3, msg string) {
	t.Helper()
	for k := 0; k < 3; k++ {
		assert.InDelta(t, want[k], got[k], 1e-9, "%s[%d]", msg, k)
	}
}

func TestAzimuthAndRoll(t *testing.T) {
	c := scene.NewCamera()
	c = c.Azimuth(90)
	assertVec(t, mathutil.Vec3{1, 0, 0}, c.Position, "position")
	assertVec(t, mathutil.Vec3{0, 1, 0}, c.ViewUp, "up unchanged by azimuth")
	assert.InDelta(t, 1.0, c.Distance(), 1e-12)

	c = scene.NewCamera().Roll(90)
	assertVec(t, mathutil.Vec3{0, 0, 1}, c.Position, "position unchanged by roll")
	assert.InDelta(t, 0, c.ViewUp.Dot(c.Direction()), 1e-12)
	assert.InDelta(t, 1, c.ViewUp.Len(), 1e-12)
}

func TestFromQuatIdentity(t *testing.T) {
	center := mathutil.Vec3{10, 20, 30}

	c := scene.FromQuat(center, mathutil.QuatIdentity, 5, false)
	assertVec(t, mathutil.Vec3{10, 20, 35}, c.Position, "position")
	assertVec(t, center, c.FocalPoint, "focal")
	assertVec(t, mathutil.Vec3{0, 1, 0}, c.ViewUp, "up")

	c = scene.FromQuat(center, mathutil.QuatIdentity, 5, true)
	assertVec(t, mathutil.Vec3{10, 20, 25}, c.Position, "corrected position")
	assertVec(t, mathutil.Vec3{0, -1, 0}, c.ViewUp, "corrected up")
	assert.InDelta(t, 5, c.Distance(), 1e-9)
}

func TestFromQuatRotated(t *testing.T) {
	// 90 degrees about x maps +y to +z and +z to -y.
	s := math.Sqrt2 / 2
	c := scene.FromQuat(mathutil.Vec3{}, mathutil.Quat{s, 0, 0, s}, 2, false)
	assertVec(t, mathutil.Vec3{0, -2, 0}, c.Position, "position")
	assertVec(t, mathutil.Vec3{0, 0, 1}, c.ViewUp, "up")
}

func TestFromNGLState(t *testing.T) {
	js := []byte(`{
		"navigation": {"pose": {"position": {
			"voxelSize": [4, 4, 40],
			"voxelCoordinates": [100, 200, 10]
		}}},
		"perspectiveZoom": 2
	}`)
	s, err := scene.ParseNGLState(js)
	require.NoError(t, err)

	c, err := scene.FromNGLState(s, 0)
	require.NoError(t, err)
	assertVec(t, mathutil.Vec3{400, 800, 400}, c.FocalPoint, "focal")
	assert.InDelta(t, 2*scene.DefaultZoomFactor, c.Distance(), 1e-6)
	assertVec(t, mathutil.Vec3{400, 800, 400 - 600}, c.Position, "position")

	s.PerspectiveZoom = nil
	c, err = scene.FromNGLState(s, 1)
	require.NoError(t, err)
	assert.InDelta(t, 10, c.Distance(), 1e-6, "default zoom")
}

func TestFromNGLStateErrors(t *testing.T) {
	_, err := scene.FromNGLState(scene.NGLState{}, 0)
	assert.ErrorIs(t, err, scene.ErrNGLState)

	s, err := scene.ParseNGLState([]byte(`{"perspectiveOrientation": [0, 1],
		"navigation": {"pose": {"position": {"voxelSize": [1,1,1], "voxelCoordinates": [0,0,0]}}}}`))
	require.NoError(t, err)
	_, err = scene.FromNGLState(s, 0)
	assert.ErrorIs(t, err, scene.ErrNGLState)

	_, err = scene.ParseNGLState([]byte(`{`))
	assert.Error(t, err)
}

func TestOriented(t *testing.T) {
	c := scene.Oriented(mathutil.Vec3{1, 2, 3}, mathutil.Vec3{0, -2, 0}, 2, mathutil.Vec3{0, 0, -1})
	assertVec(t, mathutil.Vec3{1, 2, 2003}, c.Position, "position")
	assertVec(t, mathutil.Vec3{0, -1, 0}, c.ViewUp, "up normalized")
	assertVec(t, mathutil.Vec3{1, 2, 3}, c.FocalPoint, "focal")
}

func TestResetCamera(t *testing.T) {
	c := scene.ResetCamera([3]float64{-1, -1, -1}, [3]float64{1, 1, 1}, 1.5)
	assertVec(t, mathutil.Vec3{}, c.FocalPoint, "focal")
	half := mathutil.Deg2Rad(scene.DefaultViewAngle) / 2
	assert.InDelta(t, math.Sqrt(3)/math.Sin(half), c.Distance(), 1e-9)
	assertVec(t, mathutil.Vec3{0, 0, -1}, c.Direction(), "direction")

	tall := scene.ResetCamera([3]float64{-1, -1, -1}, [3]float64{1, 1, 1}, 0.5)
	assert.Greater(t, tall.Distance(), c.Distance(), "portrait backs off further")

	point := scene.ResetCamera([3]float64{2, 2, 2}, [3]float64{2, 2, 2}, 1)
	assert.InDelta(t, 0.5/math.Sin(half), point.Distance(), 1e-9)
}

var tri = [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {5, 5, 5}}

func TestMeshActorDefaults(t *testing.T) {
	faces := cells.MustFromRows([][]int{{0, 1, 2}})
	links := cells.MustFromRows([][]int{{2, 3}})

	a, err := scene.MeshActor(tri, faces, links)
	require.NoError(t, err)
	assert.Equal(t, scene.KindMesh, a.Kind)
	assert.Equal(t, scene.Property{Color: [3]float64{0, 1, 0}, Opacity: 0.1, LineWidth: 3}, a.Property)
	assert.Nil(t, a.Geometry.Lines(), "links hidden by default")
	assert.Len(t, a.Normals, 4)
	assert.False(t, a.Overlay())

	a, err = scene.MeshActor(tri, faces, links, scene.WithLinkEdges(true), scene.WithOpacity(1))
	require.NoError(t, err)
	assert.Equal(t, 1, a.Geometry.Lines().Len())
	assert.Nil(t, a.Normals, "link edges turn normals off")
	assert.Equal(t, 1.0, a.Property.Opacity)
}

func TestMeshActorColors(t *testing.T) {
	faces := cells.MustFromRows([][]int{{0, 1, 2}})

	a, err := scene.MeshActor(tri, faces, cells.Matrix{},
		scene.WithVertexColors(colors.Scalars{Values: []float32{0, 1, 2, 3}}),
		scene.WithFaceColors(colors.Solid{RGB: [3]float32{1, 0, 0}}),
		scene.WithIDWidth(cells.Narrow))
	require.NoError(t, err)
	assert.Equal(t, cells.Narrow, a.Geometry.Polys().Width())

	pa, ok := a.Geometry.PointAttribute(scene.ColorArray)
	require.True(t, ok)
	assert.True(t, pa.Mapped())
	ca, ok := a.Geometry.CellAttribute(scene.ColorArray)
	require.True(t, ok)
	assert.Equal(t, [][3]uint8{{255, 0, 0}}, ca.RGB)

	_, err = scene.MeshActor(tri, faces, cells.Matrix{},
		scene.WithVertexColors(colors.PerElement{RGB: [][3]float32{{1, 0, 0}}}))
	assert.ErrorIs(t, err, colors.ErrLength)

	_, err = scene.MeshActor(tri, cells.MustFromRows([][]int{{0, 1, 9}}), cells.Matrix{})
	assert.Error(t, err)
}

func TestSkeletonActor(t *testing.T) {
	edges := cells.MustFromRows([][]int{{0, 1}, {1, 2}})

	a, err := scene.SkeletonActor(tri, edges, scene.WithEdgeScalars([]float32{2, 4}))
	require.NoError(t, err)
	assert.Equal(t, scene.Property{Opacity: 0.7, LineWidth: 3}, a.Property)
	ca, ok := a.Geometry.CellAttribute(scene.ColorArray)
	require.True(t, ok)
	assert.Equal(t, []float32{0.5, 1}, ca.Scalars, "normalized by max")

	a, err = scene.SkeletonActor(tri, edges,
		scene.WithVertexScalars([]float32{1, 2, 3, 4}), scene.WithNormalize(false))
	require.NoError(t, err)
	pa, ok := a.Geometry.PointAttribute(scene.ColorArray)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3, 4}, pa.Scalars)

	_, err = scene.SkeletonActor(tri, edges, scene.WithEdgeScalars([]float32{1}))
	assert.ErrorIs(t, err, colors.ErrLength)
}

func TestPointCloudActor(t *testing.T) {
	a, err := scene.PointCloudActor(tri)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 100, 100, 100}, a.Sizes)
	assert.Equal(t, 0.5, a.Property.Opacity)
	pa, ok := a.Geometry.PointAttribute(scene.ColorArray)
	require.True(t, ok)
	assert.Equal(t, [3]uint8{0, 0, 0}, pa.RGB[3])
	assert.Nil(t, a.Geometry.Lines())

	a, err = scene.PointCloudActor(tri, scene.WithSizes([]float64{1, 2, 3, 4}), scene.WithColor([3]float64{0, 0, 1}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, a.Sizes)
	pa, _ = a.Geometry.PointAttribute(scene.ColorArray)
	assert.Equal(t, [3]uint8{0, 0, 255}, pa.RGB[0])

	_, err = scene.PointCloudActor(tri, scene.WithSizes([]float64{1}))
	assert.ErrorIs(t, err, scene.ErrSizeLength)
}

func TestLinkedPointActor(t *testing.T) {
	a, err := scene.LinkedPointActor(tri[:2], tri[2:], nil, nil)
	require.NoError(t, err)
	assert.Equal(t, scene.KindLinks, a.Kind)
	assert.Equal(t, 2, a.Geometry.Lines().Len())
	assert.Equal(t, scene.Property{Opacity: 0.2, LineWidth: 1}, a.Property)
}

func TestScaleBar(t *testing.T) {
	a, err := scene.ScaleBar(mathutil.Vec3{1, 1, 1}, scene.WithLength(10), scene.WithFontSize(12))
	require.NoError(t, err)
	assert.True(t, a.Overlay())
	assert.Equal(t, 12, a.FontSize)
	assert.Equal(t, 5.0, a.Property.LineWidth)
	require.Len(t, a.Labels, 3)
	assert.Equal(t, mathutil.Vec3{11, 1, 1}, a.Labels[0].At)
	assert.Equal(t, "z", a.Labels[2].Text)

	lo, hi, ok := scene.Bounds([]scene.Actor{a})
	require.True(t, ok)
	assert.Equal(t, [3]float64{1, 1, 1}, lo)
	assert.Equal(t, [3]float64{11, 11, 11}, hi)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "mesh", scene.KindMesh.String())
	assert.Equal(t, "Kind(42)", scene.Kind(42).String())
}
