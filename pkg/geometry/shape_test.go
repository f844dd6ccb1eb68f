package geometry

import (
	"errors"
	"testing"
)

func TestRoundedShape_SharpPathReturnsInput(t *testing.T) {
	path := []Vertex{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(3, 1)}
	s, err := NewRoundedShape(path)
	if err != nil {
		t.Fatal(err)
	}

	got := s.Points(0)
	if len(got) != len(path) {
		t.Fatalf("Points() returned %d points, want %d", len(got), len(path))
	}
	for i, v := range path {
		if got[i].X != v.X || got[i].Y != v.Y {
			t.Errorf("point %d = (%v, %v), want (%v, %v)", i, got[i].X, got[i].Y, v.X, v.Y)
		}
	}

	// Arc length 4: 0, 1/4, 2/4, 1.
	diff(t, []float32{0, 0.25, 0.5, 1}, []float32{got[0].T, got[1].T, got[2].T, got[3].T}, approx)
	diff(t, []bool{false, true, true, false}, []bool{got[0].Crease, got[1].Crease, got[2].Crease, got[3].Crease})
}

func TestRoundedShape_RoundedCorner(t *testing.T) {
	s, err := NewRoundedShape([]Vertex{Pt(0, 0), Pt(2, 0).Round(1).WithTex(0.5), Pt(2, 2)})
	if err != nil {
		t.Fatal(err)
	}

	got := s.Points(4)
	want := []ProfilePoint{
		{X: 0, Y: 0, T: 0},
		{X: 1, Y: 0},
		{X: 1.4375, Y: 0.0625},
		{X: 1.75, Y: 0.25, T: 0.5},
		{X: 1.9375, Y: 0.5625},
		{X: 2, Y: 1},
		{X: 2, Y: 2, T: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Points() returned %d points, want %d", len(got), len(want))
	}
	for i := range want {
		diff(t, [2]float32{want[i].X, want[i].Y}, [2]float32{got[i].X, got[i].Y}, approx)
		if got[i].Crease {
			t.Errorf("point %d marked as crease on a rounded corner", i)
		}
	}
	diff(t, float32(0.5), got[3].T, approx)
}

func TestRoundedShape_RadiusClamped(t *testing.T) {
	s, err := NewRoundedShape([]Vertex{Pt(0, 0), Pt(1, 0).Round(10), Pt(1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	got := s.Points(2)
	// Tangent points sit at 80% of each edge.
	diff(t, [2]float32{0.2, 0}, [2]float32{got[1].X, got[1].Y}, approx)
	last := got[len(got)-2]
	diff(t, [2]float32{1, 0.8}, [2]float32{last.X, last.Y}, approx)
}

func TestRoundedShape_RadiusClampedToShorterEdge(t *testing.T) {
	s, err := NewRoundedShape([]Vertex{Pt(0, 0), Pt(10, 0).Round(5), Pt(10, 1)})
	if err != nil {
		t.Fatal(err)
	}
	got := s.Points(4)
	corner := ProfilePoint{X: 10}.Vec2()
	in, out := got[1], got[len(got)-2]

	// Both tangent points sit at 80% of the short edge.
	diff(t, [2]float32{9.2, 0}, [2]float32{in.X, in.Y}, approx)
	diff(t, [2]float32{10, 0.8}, [2]float32{out.X, out.Y}, approx)
	diff(t, corner.Distance(in.Vec2()), corner.Distance(out.Vec2()), approx)
}

func TestRoundedShape_EndpointsStaySharp(t *testing.T) {
	s, err := NewRoundedShape([]Vertex{Pt(0, 0).Round(1), Pt(1, 0), Pt(1, 1).Round(1)})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(s.Points(0)); n != 3 {
		t.Errorf("Points() returned %d points, want 3", n)
	}
}

func TestRoundedShape_TextureMonotone(t *testing.T) {
	path := []Vertex{
		Pt(0, 0),
		Pt(1, 0).Round(0.3),
		Pt(1, 1).Round(0.2).WithTex(0.3),
		Pt(0.5, 1.5),
		Pt(0.5, 2).Round(0.1).WithTex(0.7),
		Pt(0, 2),
	}
	s, err := NewRoundedShape(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, div := range []int{1, 2, 4, 9} {
		pts := s.Points(div)
		if pts[0].T != 0 || pts[len(pts)-1].T != 1 {
			t.Errorf("div %d: end T = %v, %v", div, pts[0].T, pts[len(pts)-1].T)
		}
		for i := 1; i < len(pts); i++ {
			if pts[i].T < pts[i-1].T {
				t.Errorf("div %d: T decreases at %d: %v -> %v", div, i, pts[i-1].T, pts[i].T)
			}
		}
	}
}

func TestRoundedShape_FreshSlice(t *testing.T) {
	s, _ := NewRoundedShape([]Vertex{Pt(0, 0), Pt(1, 0)})
	a := s.Points(0)
	a[0].X = 42
	if b := s.Points(0); b[0].X != 0 {
		t.Errorf("Points() shares storage between calls")
	}
}

func TestRoundedShape_TooShort(t *testing.T) {
	tests := []struct {
		name string
		path []Vertex
	}{
		{"empty", nil},
		{"single", []Vertex{Pt(0, 0)}},
		{"disabled", []Vertex{Pt(0, 0), Pt(1, 1).When(false)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoundedShape(tt.path)
			if !errors.Is(err, ErrProfileTooShort) {
				t.Errorf("NewRoundedShape() error = %v, want ErrProfileTooShort", err)
			}
		})
	}
}

func TestRoundedShape_DisabledVertexSkipped(t *testing.T) {
	s, err := NewRoundedShape([]Vertex{Pt(0, 0), Pt(5, 5).When(false), Pt(1, 0)})
	if err != nil {
		t.Fatal(err)
	}
	pts := s.Points(0)
	if len(pts) != 2 || pts[1].X != 1 {
		t.Errorf("Points() = %+v", pts)
	}
	if l := s.Length(); abs(l-1) > 1e-6 {
		t.Errorf("Length() = %v, want 1", l)
	}
}
