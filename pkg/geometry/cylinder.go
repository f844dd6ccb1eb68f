package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/propforge/pkg/binpack"
	"github.com/Faultbox/propforge/pkg/math"
)

// Cylinder face indexes used for UV matrices and footprints.
const (
	CylinderBody = iota
	CylinderTop
	CylinderBottom
)

// CylinderParams describes a capped, possibly tapered cylinder centred on
// the origin with its axis along Y.
type CylinderParams struct {
	RadiusTop, RadiusBottom, Height float32
	// RadialSegments defaults to 32, HeightSegments to 1.
	RadialSegments, HeightSegments int
	OpenEnded                      bool

	// BodyUV, TopUV and BottomUV map the unit UVs of each part. Nil is
	// identity.
	BodyUV, TopUV, BottomUV *math.Mat3
	// AtlasUV switches to atlas mode, indexed by the Cylinder face
	// constants, with UVs in footprint units.
	AtlasUV []math.Mat3
}

func (p CylinderParams) segments() (radial, height int) {
	radial, height = p.RadialSegments, p.HeightSegments
	if radial <= 0 {
		radial = 32
	}
	radial = max(radial, 3)
	if height <= 0 {
		height = 1
	}
	return radial, height
}

// CylinderFootprints returns the body rectangle (circumference by height)
// and, unless open ended, the two cap squares (diameter by diameter).
func CylinderFootprints(owner string, p CylinderParams) []binpack.Request {
	reqs := []binpack.Request{{
		Width:  float64(2 * math32.Pi * max(p.RadiusTop, p.RadiusBottom)),
		Height: float64(p.Height),
		Owner:  owner,
		Face:   CylinderBody,
	}}
	if !p.OpenEnded {
		reqs = append(reqs,
			binpack.Request{Width: float64(2 * p.RadiusTop), Height: float64(2 * p.RadiusTop), Owner: owner, Face: CylinderTop},
			binpack.Request{Width: float64(2 * p.RadiusBottom), Height: float64(2 * p.RadiusBottom), Owner: owner, Face: CylinderBottom},
		)
	}
	return reqs
}

// NewUVCylinder builds the body rings, then a centre-plus-ring fan for the
// bottom and top caps.
func NewUVCylinder(p CylinderParams) *Mesh {
	radial, height := p.segments()

	uvs := [3]math.Mat3{matOrIdentity(p.BodyUV), matOrIdentity(p.TopUV), matOrIdentity(p.BottomUV)}
	scales := [3]math.Vec2{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}
	if p.AtlasUV != nil {
		for f := range uvs {
			uvs[f] = atlasAt(p.AtlasUV, f)
		}
		scales = [3]math.Vec2{
			{X: 2 * math32.Pi * max(p.RadiusTop, p.RadiusBottom), Y: p.Height},
			{X: 2 * p.RadiusTop, Y: 2 * p.RadiusTop},
			{X: 2 * p.RadiusBottom, Y: 2 * p.RadiusBottom},
		}
	}

	nv := (height + 1) * (radial + 1)
	ni := 6 * height * radial
	if !p.OpenEnded {
		nv += 2 * (radial + 2)
		ni += 6 * radial
	}
	m := newMesh(nv, ni)

	var slope float32
	if p.Height != 0 {
		slope = (p.RadiusBottom - p.RadiusTop) / p.Height
	}

	for i := 0; i <= height; i++ {
		w := float32(i) / float32(height)
		r := w*p.RadiusTop + (1-w)*p.RadiusBottom
		for j := 0; j <= radial; j++ {
			s, c := math32.Sincos(float32(j) / float32(radial) * 2 * math32.Pi)
			pos := math.Vec3{X: s * r, Y: (w - 0.5) * p.Height, Z: c * r}
			nrm := math.Vec3{X: s, Y: slope, Z: c}.Normalize()
			u, v := uvs[CylinderBody].ApplyXY(float32(j)/float32(radial)*scales[CylinderBody].X, w*scales[CylinderBody].Y)
			m.addVertex(pos, nrm, u, v)
		}
	}

	row := uint32(radial + 1)
	for i := 0; i < height; i++ {
		for j := 0; j < radial; j++ {
			kv := uint32(i)*row + uint32(j)
			m.Indices = append(m.Indices, kv, kv+1, kv+row, kv+row, kv+1, kv+row+1)
		}
	}

	if p.OpenEnded {
		return m
	}

	// Bottom (top = false) then top.
	for _, top := range []bool{false, true} {
		face, r, y, ny := CylinderBottom, p.RadiusBottom, -0.5*p.Height, float32(-1)
		if top {
			face, r, y, ny = CylinderTop, p.RadiusTop, 0.5*p.Height, 1
		}
		uvm, sc := uvs[face], scales[face]
		nrm := math.Vec3{Y: ny}

		center := m.addVertex(math.Vec3{Y: y}, nrm, 0, 0)
		m.UVs[2*center], m.UVs[2*center+1] = uvm.ApplyXY(0.5*sc.X, 0.5*sc.Y)
		for j := 0; j <= radial; j++ {
			s, c := math32.Sincos(float32(j) / float32(radial) * 2 * math32.Pi)
			u, v := uvm.ApplyXY((0.5*s+0.5)*sc.X, (0.5*c+0.5)*sc.Y)
			m.addVertex(math.Vec3{X: s * r, Y: y, Z: c * r}, nrm, u, v)
		}
		for j := uint32(0); j < uint32(radial); j++ {
			if top {
				m.addTriangle(center, center+1+j, center+2+j)
			} else {
				m.addTriangle(center, center+2+j, center+1+j)
			}
		}
	}
	return m
}
