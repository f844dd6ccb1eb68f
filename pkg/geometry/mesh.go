// Package geometry generates indexed triangle meshes for parametric props:
// beveled boxes, profiles swept along 3D curves, lathed vessels and
// cylinders. Every generator returns positions, smooth normals, UVs and a
// counter-clockwise index buffer, and can report its UV footprints up front
// so parts can be packed into a shared atlas before they are built.
package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/propforge/pkg/math"
)

var (
	// ErrProfileTooShort is returned for profiles with fewer than 2 points.
	ErrProfileTooShort = errors.New("geometry: profile needs at least 2 points")
	// ErrZeroSteps is returned for sweeps with no steps.
	ErrZeroSteps = errors.New("geometry: sweep needs at least 1 step")
	// ErrNilPath is returned for sweeps without a path curve.
	ErrNilPath = errors.New("geometry: sweep needs a path")
	// ErrInvalidMesh is returned by Validate.
	ErrInvalidMesh = errors.New("geometry: invalid mesh")
)

// Mesh holds flat vertex attribute buffers and a triangle index list.
// Vertex i uses Positions[3i:3i+3], Normals[3i:3i+3] and UVs[2i:2i+2].
// Triangles wind counter-clockwise seen from the front.
type Mesh struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
	// UVChannel tags which atlas region set the mesh samples from when an
	// asset composites several. The kernel never reads it.
	UVChannel int
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max math.Vec3
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func newMesh(vertices, indices int) *Mesh {
	return &Mesh{
		Positions: make([]float32, 0, vertices*3),
		Normals:   make([]float32, 0, vertices*3),
		UVs:       make([]float32, 0, vertices*2),
		Indices:   make([]uint32, 0, indices),
	}
}

func (m *Mesh) addVertex(p, n math.Vec3, u, v float32) uint32 {
	i := uint32(len(m.Positions) / 3)
	m.Positions = append(m.Positions, p.X, p.Y, p.Z)
	m.Normals = append(m.Normals, n.X, n.Y, n.Z)
	m.UVs = append(m.UVs, u, v)
	return i
}

func (m *Mesh) addTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns vertex i's position.
func (m *Mesh) Position(i int) math.Vec3 {
	return math.Vec3{X: m.Positions[3*i], Y: m.Positions[3*i+1], Z: m.Positions[3*i+2]}
}

// Normal returns vertex i's normal.
func (m *Mesh) Normal(i int) math.Vec3 {
	return math.Vec3{X: m.Normals[3*i], Y: m.Normals[3*i+1], Z: m.Normals[3*i+2]}
}

// UV returns vertex i's texture coordinate.
func (m *Mesh) UV(i int) math.Vec2 {
	return math.Vec2{X: m.UVs[2*i], Y: m.UVs[2*i+1]}
}

// Validate checks buffer lengths and index bounds.
func (m *Mesh) Validate() error {
	n := m.VertexCount()
	switch {
	case len(m.Positions)%3 != 0:
		return fmt.Errorf("%w: %d position floats", ErrInvalidMesh, len(m.Positions))
	case len(m.Normals) != 3*n:
		return fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidMesh, len(m.Normals)/3, n)
	case len(m.UVs) != 2*n:
		return fmt.Errorf("%w: %d uvs for %d vertices", ErrInvalidMesh, len(m.UVs)/2, n)
	case len(m.Indices)%3 != 0:
		return fmt.Errorf("%w: %d indices is not a triangle list", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d = %d out of %d vertices", ErrInvalidMesh, i, idx, n)
		}
	}
	return nil
}

// Bounds returns the bounding box of all vertices. An empty mesh has a zero box.
func (m *Mesh) Bounds() Bounds {
	if m.VertexCount() == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Position(0), Max: m.Position(0)}
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Position(i)
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Transform applies mat to positions and its rotation part to normals in
// place. mat must be rigid or uniformly scaled for normals to stay valid.
func (m *Mesh) Transform(mat math.Mat4) *Mesh {
	for i := 0; i < m.VertexCount(); i++ {
		p := mat.TransformVec3(m.Position(i))
		n := mat.TransformDirection(m.Normal(i))
		copy(m.Positions[3*i:], []float32{p.X, p.Y, p.Z})
		copy(m.Normals[3*i:], []float32{n.X, n.Y, n.Z})
	}
	return m
}

// Translate moves the mesh in place.
func (m *Mesh) Translate(x, y, z float32) *Mesh {
	for i := 0; i < len(m.Positions); i += 3 {
		m.Positions[i] += x
		m.Positions[i+1] += y
		m.Positions[i+2] += z
	}
	return m
}

// RotateX rotates the mesh in place around the X axis.
func (m *Mesh) RotateX(angle float32) *Mesh {
	return m.Transform(math.RotateX(angle))
}

// RotateY rotates the mesh in place around the Y axis.
func (m *Mesh) RotateY(angle float32) *Mesh {
	return m.Transform(math.RotateY(angle))
}

// RotateZ rotates the mesh in place around the Z axis.
func (m *Mesh) RotateZ(angle float32) *Mesh {
	return m.Transform(math.RotateZ(angle))
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Positions: append([]float32(nil), m.Positions...),
		Normals:   append([]float32(nil), m.Normals...),
		UVs:       append([]float32(nil), m.UVs...),
		Indices:   append([]uint32(nil), m.Indices...),
		UVChannel: m.UVChannel,
	}
}

// Release drops the buffers. The mesh is empty afterwards.
func (m *Mesh) Release() {
	m.Positions = nil
	m.Normals = nil
	m.UVs = nil
	m.Indices = nil
}

// Merge concatenates meshes into a new one, offsetting indices. The result
// takes the UV channel of the first mesh. Nil meshes are skipped.
func Merge(meshes ...*Mesh) *Mesh {
	var nv, ni int
	for _, m := range meshes {
		if m != nil {
			nv += m.VertexCount()
			ni += len(m.Indices)
		}
	}

	out := newMesh(nv, ni)
	first := true
	for _, m := range meshes {
		if m == nil {
			continue
		}
		if first {
			out.UVChannel = m.UVChannel
			first = false
		}
		base := uint32(out.VertexCount())
		out.Positions = append(out.Positions, m.Positions...)
		out.Normals = append(out.Normals, m.Normals...)
		out.UVs = append(out.UVs, m.UVs...)
		for _, idx := range m.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	return out
}

// Faceted returns a flat-shaded copy: every triangle gets its own three
// vertices carrying the face normal. Degenerate triangles are dropped.
func (m *Mesh) Faceted() *Mesh {
	out := newMesh(len(m.Indices), len(m.Indices))
	out.UVChannel = m.UVChannel
	for t := 0; t+2 < len(m.Indices); t += 3 {
		ia, ib, ic := int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])
		a, b, c := m.Position(ia), m.Position(ib), m.Position(ic)

		n := b.Sub(a).Cross(c.Sub(a))
		mag := n.Length()
		if mag < 1e-12 || math32.IsNaN(mag) {
			continue
		}
		n = n.Scale(1 / mag)

		ua, ub, uc := m.UV(ia), m.UV(ib), m.UV(ic)
		out.addTriangle(
			out.addVertex(a, n, ua.X, ua.Y),
			out.addVertex(b, n, ub.X, ub.Y),
			out.addVertex(c, n, uc.X, uc.Y),
		)
	}
	return out
}
