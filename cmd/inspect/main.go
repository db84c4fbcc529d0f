package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"meshscene/internal/cells"
	"meshscene/internal/polydata"
	"meshscene/internal/scenefile"
	"meshscene/internal/snapshot"
)

func main() {
	narrow := flag.Bool("narrow", false, "Encode cell ids as int32 instead of the platform width")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: inspect [-narrow] scene.yaml|image.webp...")
		os.Exit(2)
	}

	w := cells.Native()
	if *narrow {
		w = cells.Narrow
	}

	failed := false
	for _, path := range flag.Args() {
		run := func() error { return inspect(path, w) }
		if _, err := snapshot.Format(path); err == nil {
			run = func() error { return inspectImage(path) }
		}
		if err := run(); err != nil {
			fmt.Printf("Error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(path string, w cells.IDWidth) error {
	s, err := scenefile.Load(path)
	if err != nil {
		return err
	}
	actors, err := s.Build(w)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d actors, ids %s\n", path, len(actors), w)
	for i, a := range actors {
		pd := a.Geometry
		fmt.Printf("  Actor[%d] %s: points=%d, polys=%d, lines=%d, opacity=%.2f\n",
			i, a.Kind, pd.NumPoints(), pd.Polys().Len(), pd.Lines().Len(), a.Property.Opacity)

		if lo, hi, ok := pd.Bounds(); ok {
			fmt.Printf("    BBox: X[%.1f, %.1f] Y[%.1f, %.1f] Z[%.1f, %.1f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
			fmt.Printf("    Size: %.1f x %.1f x %.1f\n", hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2])
		}

		// Decode the cell arrays back and compare against what was encoded
		c, err := polydata.Decompose(pd)
		if err != nil {
			return fmt.Errorf("actor %d: %w", i, err)
		}
		fmt.Printf("    Round trip: points=%d faces=%s edges=%s\n", len(c.Points), shape(c.Faces), shape(c.Edges))

		if c.Faces != nil {
			printAreaByAxis(c.Points, *c.Faces)
			_, compact := polydata.CompactUnusedVertices(c.Points, *c.Faces)
			if used := compact.Max() + 1; used < len(c.Points) {
				fmt.Printf("    Unreferenced vertices: %d\n", len(c.Points)-used)
			}
		}
	}
	return nil
}

// inspectImage reports the size and coverage of a rendered frame.
func inspectImage(path string) error {
	img, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	b := img.Bounds()
	fmt.Printf("%s: %dx%d\n", path, b.Dx(), b.Dy())
	fmt.Printf("  Coverage: %.1f%% of pixels differ from the background\n", snapshot.Coverage(img)*100)
	return nil
}

func shape(m *cells.Matrix) string {
	if m == nil {
		return "none"
	}
	return fmt.Sprintf("%dx%d", m.Rows, m.Cols)
}

// printAreaByAxis sums triangle area by the dominant axis of each normal.
func printAreaByAxis(pts [][3]float64, faces cells.Matrix) {
	areaByDir := map[string]float64{}
	for i := 0; i < faces.Rows; i++ {
		r := faces.Row(i)
		v0, v1, v2 := pts[r[0]], pts[r[1]], pts[r[2]]
		e1x, e1y, e1z := v1[0]-v0[0], v1[1]-v0[1], v1[2]-v0[2]
		e2x, e2y, e2z := v2[0]-v0[0], v2[1]-v0[1], v2[2]-v0[2]
		cx := e1y*e2z - e1z*e2y
		cy := e1z*e2x - e1x*e2z
		cz := e1x*e2y - e1y*e2x
		area := 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
		acx, acy, acz := math.Abs(cx), math.Abs(cy), math.Abs(cz)
		dir := ""
		switch {
		case acx >= acy && acx >= acz:
			dir = sign(cx) + "X"
		case acy >= acz:
			dir = sign(cy) + "Y"
		default:
			dir = sign(cz) + "Z"
		}
		areaByDir[dir] += area
	}
	fmt.Println("    --- Surface area by direction ---")
	for _, d := range []string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"} {
		fmt.Printf("    %s: %.1f sq units\n", d, areaByDir[d])
	}
}

func sign(v float64) string {
	if v > 0 {
		return "+"
	}
	return "-"
}
