package geometry

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func quad() *Mesh {
	m := newMesh(4, 6)
	n := vec3(0, 0, 1)
	m.addVertex(vec3(0, 0, 0), n, 0, 0)
	m.addVertex(vec3(1, 0, 0), n, 1, 0)
	m.addVertex(vec3(1, 1, 0), n, 1, 1)
	m.addVertex(vec3(0, 1, 0), n, 0, 1)
	m.addTriangle(0, 1, 2)
	m.addTriangle(0, 2, 3)
	return m
}

func TestMesh_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Mesh)
		ok     bool
	}{
		{"valid", func(*Mesh) {}, true},
		{"index out of range", func(m *Mesh) { m.Indices[2] = 4 }, false},
		{"short normals", func(m *Mesh) { m.Normals = m.Normals[:9] }, false},
		{"short uvs", func(m *Mesh) { m.UVs = m.UVs[:7] }, false},
		{"partial triangle", func(m *Mesh) { m.Indices = m.Indices[:5] }, false},
		{"ragged positions", func(m *Mesh) { m.Positions = m.Positions[:11] }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := quad()
			tt.mutate(m)
			err := m.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("Validate() = %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	a := quad()
	a.UVChannel = 2
	b := quad().Translate(0, 0, 1)

	m := Merge(a, nil, b)
	checkMesh(t, m)
	if m.VertexCount() != 8 || m.TriangleCount() != 4 {
		t.Fatalf("Merge() = %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}
	diff(t, []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}, m.Indices)
	if m.UVChannel != 2 {
		t.Errorf("UVChannel = %d, want 2", m.UVChannel)
	}
	diff(t, vec3(1, 1, 1), m.Bounds().Max, approx)

	if e := Merge(); e.VertexCount() != 0 {
		t.Errorf("Merge() of nothing has %d vertices", e.VertexCount())
	}
}

func TestMesh_Rotate(t *testing.T) {
	m := quad().RotateY(math32.Pi / 2)
	checkMesh(t, m)
	// +X turns into -Z, and the +Z normal into +X.
	diff(t, vec3(0, 0, -1), m.Position(1), approx)
	diff(t, vec3(1, 0, 0), m.Normal(0), approx)

	m = quad().RotateX(-math32.Pi / 2)
	diff(t, vec3(0, 1, 0), m.Normal(0), approx)

	m = quad().RotateZ(math32.Pi)
	diff(t, vec3(-1, 0, 0), m.Position(1), approx)
}

func TestMesh_Faceted(t *testing.T) {
	m := quad()
	// Bend vertex 2 upward so the two triangles disagree.
	m.Positions[8] = 1
	f := m.Faceted()
	checkMesh(t, f)
	checkOutward(t, f)
	if f.VertexCount() != 6 || f.TriangleCount() != 2 {
		t.Fatalf("Faceted() = %d vertices, %d triangles", f.VertexCount(), f.TriangleCount())
	}
	if f.Normal(0) != f.Normal(2) || f.Normal(0) == f.Normal(3) {
		t.Errorf("Faceted() normals %v %v %v", f.Normal(0), f.Normal(2), f.Normal(3))
	}

	// Degenerate triangles disappear.
	m.addTriangle(0, 0, 1)
	if got := m.Faceted().TriangleCount(); got != 2 {
		t.Errorf("Faceted() kept %d triangles, want 2", got)
	}
}

func TestMesh_CloneAndRelease(t *testing.T) {
	m := quad()
	c := m.Clone()
	m.Release()
	if m.VertexCount() != 0 || len(m.Indices) != 0 {
		t.Errorf("Release() left %d vertices", m.VertexCount())
	}
	if c.VertexCount() != 4 {
		t.Errorf("Clone() shares storage with the released mesh")
	}
}
