package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/propforge/pkg/math"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// checkMesh validates buffer invariants and unit normals.
func checkMesh(t *testing.T, m *Mesh) {
	t.Helper()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	for i := 0; i < m.VertexCount(); i++ {
		if l := m.Normal(i).Length(); abs(l-1) > 1e-4 {
			t.Fatalf("normal %d = %v has length %v", i, m.Normal(i), l)
		}
	}
}

// checkOutward fails for triangles wound against their vertex normals.
func checkOutward(t *testing.T, m *Mesh) {
	t.Helper()
	for k := 0; k+2 < len(m.Indices); k += 3 {
		a, b, c := int(m.Indices[k]), int(m.Indices[k+1]), int(m.Indices[k+2])
		face := m.Position(b).Sub(m.Position(a)).Cross(m.Position(c).Sub(m.Position(a)))
		if face.Length() < 1e-9 {
			continue
		}
		avg := m.Normal(a).Add(m.Normal(b)).Add(m.Normal(c))
		if face.Dot(avg) < 0 {
			t.Fatalf("triangle %d (%d, %d, %d) winds inward", k/3, a, b, c)
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func vec3(x, y, z float32) math.Vec3 {
	return math.Vec3{X: x, Y: y, Z: z}
}
