package geometry

import (
	"github.com/Faultbox/propforge/pkg/math"
)

// TransformUVs applies mat to every UV of m in place.
func TransformUVs(m *Mesh, mat math.Mat3) {
	for i := 0; i+1 < len(m.UVs); i += 2 {
		m.UVs[i], m.UVs[i+1] = mat.ApplyXY(m.UVs[i], m.UVs[i+1])
	}
}

// ProjectUVs replaces the UVs of m with a planar projection along dir. U
// runs along up × dir and V along dir × (up × dir), both shifted by offset.
func ProjectUVs(m *Mesh, dir, up math.Vec3, offset math.Vec2) {
	du := up.Cross(dir)
	dv := dir.Cross(du)
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		m.UVs[2*i] = p.Dot(du) + offset.X
		m.UVs[2*i+1] = p.Dot(dv) + offset.Y
	}
}

// Plane is the set of points p with Normal·p + Constant = 0.
type Plane struct {
	Normal   math.Vec3
	Constant float32
}

// Distance returns the signed distance of p, positive on the normal side.
func (pl Plane) Distance(p math.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.Constant
}

// ClampToPlane moves every vertex of m lying behind pl onto it, travelling
// along dir. The plane is flipped first if dir points against its normal.
// Normals are left unchanged.
func ClampToPlane(m *Mesh, pl Plane, dir math.Vec3) {
	if dir.Dot(pl.Normal) < 0 {
		pl = Plane{Normal: pl.Normal.Scale(-1), Constant: -pl.Constant}
	}
	denom := pl.Normal.Dot(dir)
	if denom == 0 {
		return
	}
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		d := pl.Distance(p)
		if d >= 0 {
			continue
		}
		p = p.Add(dir.Scale(-d / denom))
		m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2] = p.X, p.Y, p.Z
	}
}
