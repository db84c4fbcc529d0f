package polydata

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// FaceNormals returns the unit normal of every triangle, in cell order.
// Degenerate triangles get a zero normal.
func FaceNormals(pd *PolyData) ([][3]float64, error) {
	if pd.polys.Len() == 0 {
		return nil, nil
	}
	faces, err := pd.polys.Matrix()
	if err != nil {
		return nil, err
	}
	out := make([][3]float64, faces.Rows)
	for i := 0; i < faces.Rows; i++ {
		r := faces.Row(i)
		tri := sdf.Triangle3{vec(pd.points[r[0]]), vec(pd.points[r[1]]), vec(pd.points[r[2]])}
		n := tri.Normal()
		if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.Z) {
			continue
		}
		out[i] = [3]float64{n.X, n.Y, n.Z}
	}
	return out, nil
}

// PointNormals returns smoothed per-point normals: the normalized sum of
// the normals of every triangle touching the point, each weighted by the
// triangle's area. Points outside any triangle get a zero normal.
func PointNormals(pd *PolyData) ([][3]float64, error) {
	if pd.polys.Len() == 0 {
		return nil, nil
	}
	faces, err := pd.polys.Matrix()
	if err != nil {
		return nil, err
	}

	sum := make([]v3.Vec, len(pd.points))
	for i := 0; i < faces.Rows; i++ {
		r := faces.Row(i)
		a, b, c := vec(pd.points[r[0]]), vec(pd.points[r[1]]), vec(pd.points[r[2]])
		// cross product length is twice the area
		n := b.Sub(a).Cross(c.Sub(a))
		for _, p := range r {
			sum[p] = sum[p].Add(n)
		}
	}

	out := make([][3]float64, len(sum))
	for i, s := range sum {
		if s.Length() < 1e-12 {
			continue
		}
		u := s.Normalize()
		out[i] = [3]float64{u.X, u.Y, u.Z}
	}
	return out, nil
}

func vec(p [3]float64) v3.Vec {
	return v3.Vec{X: p[0], Y: p[1], Z: p[2]}
}
