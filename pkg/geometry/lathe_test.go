package geometry

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func vase() []Vertex {
	return []Vertex{
		Pt(0.001, 0),
		Pt(1, 0).Round(0.2),
		Pt(1, 1).WithTex(0.6),
		Pt(0.6, 1.5).Round(0.3),
		Pt(0.8, 2),
	}
}

func TestLatheUV_FullTurnSeam(t *testing.T) {
	const segments = 10
	m, err := NewLatheUV(vase(), LatheParams{Segments: segments})
	if err != nil {
		t.Fatal(err)
	}
	checkMesh(t, m)
	checkOutward(t, m)

	profile, _ := LatheProfile(vase())
	n := len(profile)
	if m.VertexCount() != (segments+1)*n {
		t.Fatalf("VertexCount() = %d, want %d", m.VertexCount(), (segments+1)*n)
	}
	if m.TriangleCount() != 2*segments*(n-1) {
		t.Errorf("TriangleCount() = %d, want %d", m.TriangleCount(), 2*segments*(n-1))
	}

	last := segments * n
	for j := 0; j < n; j++ {
		diff(t, m.Position(j), m.Position(last+j), approx)
		diff(t, m.Normal(j), m.Normal(last+j), approx)
		// U jumps from 0 to 1 only across the seam.
		diff(t, float32(0), m.UV(j).X, approx)
		diff(t, float32(1), m.UV(last+j).X, approx)
	}

	// V is the resolved profile texture coordinate on every ring.
	for i := 0; i <= segments; i++ {
		for j, p := range profile {
			diff(t, p.T, m.UV(i*n+j).Y, approx)
		}
		for j := 1; j < n; j++ {
			if m.UV(i*n+j).Y < m.UV(i*n+j-1).Y {
				t.Errorf("ring %d: V decreases at %d", i, j)
			}
		}
	}
}

func TestLatheProfile_CollapsesDuplicates(t *testing.T) {
	got, err := LatheProfile([]Vertex{Pt(1, 0), Pt(1, 1), Pt(1, 1), Pt(0.5, 2), Pt(9, 9).When(false)})
	if err != nil {
		t.Fatal(err)
	}
	want := []ProfilePoint{
		{X: 1, Y: 0, T: 0},
		{X: 1, Y: 1, T: 1 / (1 + math32.Sqrt(1.25)), Crease: true},
		{X: 0.5, Y: 2, T: 1},
	}
	diff(t, want, got, approx)
}

func TestLatheUV_PartialTurn(t *testing.T) {
	m, err := NewLatheUV([]Vertex{Pt(1, 0), Pt(1, 1)}, LatheParams{Segments: 4, PhiLength: math32.Pi / 2})
	if err != nil {
		t.Fatal(err)
	}
	checkMesh(t, m)
	// Ring 0 at phi 0 lies on +Z and the last ring on +X.
	diff(t, vec3(0, 0, 1), m.Position(0), approx)
	diff(t, vec3(1, 0, 0), m.Position(4*2), approx)
	diff(t, vec3(1, 0, 0), m.Normal(4*2), approx)
}

func TestLatheUV_TooShort(t *testing.T) {
	_, err := NewLatheUV([]Vertex{Pt(1, 1), Pt(2, 2).When(false)}, LatheParams{})
	if !errors.Is(err, ErrProfileTooShort) {
		t.Errorf("NewLatheUV() error = %v, want ErrProfileTooShort", err)
	}
}
