package geometry

import (
	"testing"

	"github.com/Faultbox/propforge/pkg/math"
)

func triangleArea(pts []math.Vec2, tris []uint32) (total float32, allCCW bool) {
	allCCW = true
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := pts[tris[i]], pts[tris[i+1]], pts[tris[i+2]]
		cr := b.Sub(a).Cross(c.Sub(a))
		if cr <= 0 {
			allCCW = false
		}
		total += cr / 2
	}
	return total, allCCW
}

func polygon(pts ...float32) []math.Vec2 {
	var out []math.Vec2
	for i := 0; i+1 < len(pts); i += 2 {
		out = append(out, math.Vec2{X: pts[i], Y: pts[i+1]})
	}
	return out
}

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name string
		pts  []math.Vec2
		area float32
	}{
		{"triangle", polygon(0, 0, 1, 0, 0, 1), 0.5},
		{"square ccw", polygon(0, 0, 1, 0, 1, 1, 0, 1), 1},
		{"square cw", polygon(0, 0, 0, 1, 1, 1, 1, 0), 1},
		{"closed with duplicates", polygon(0, 0, 1, 0, 1, 0, 1, 1, 0, 1, 0, 0), 1},
		{"concave L", polygon(0, 0, 2, 0, 2, 1, 1, 1, 1, 2, 0, 2), 3},
		{"collinear side", polygon(0, 0, 1, 0, 2, 0, 2, 2, 0, 2), 4},
		{"bow tie", polygon(0, 0, 2, 2, 2, 0, 0, 2), 2},
		{"degenerate", polygon(0, 0, 1, 1, 2, 2), 0},
		{"too few", polygon(0, 0, 1, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verts, tris, err := Triangulate(tt.pts)
			if err != nil {
				t.Fatal(err)
			}
			if len(tris)%3 != 0 {
				t.Fatalf("Triangulate() returned %d indices", len(tris))
			}
			for _, i := range tris {
				if int(i) >= len(verts) {
					t.Fatalf("index %d out of range of %d vertices", i, len(verts))
				}
			}
			area, ccw := triangleArea(verts, tris)
			if abs(area-tt.area) > 1e-5 {
				t.Errorf("area = %v, want %v", area, tt.area)
			}
			if !ccw {
				t.Errorf("Triangulate() emitted a clockwise triangle: %v", tris)
			}
		})
	}
}

func TestTriangulate_SquareMakesTwoTriangles(t *testing.T) {
	verts, tris, err := Triangulate(polygon(0, 0, 1, 0, 1, 1, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(verts) != 4 || len(tris) != 6 {
		t.Errorf("Triangulate() = %d vertices, %d triangles; want 4, 2", len(verts), len(tris)/3)
	}
}

func TestTriangulate_BowTieSplitsAtCrossing(t *testing.T) {
	verts, tris, err := Triangulate(polygon(0, 0, 2, 2, 2, 0, 0, 2))
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != 6 {
		t.Fatalf("Triangulate() made %d triangles, want 2", len(tris)/3)
	}
	found := false
	for _, v := range verts {
		if abs(v.X-1) < 1e-5 && abs(v.Y-1) < 1e-5 {
			found = true
		}
	}
	if !found {
		t.Errorf("no vertex at the crossing (1, 1): %v", verts)
	}
}
