package geometry

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/propforge/pkg/math"
)

// DefaultLatheSegments is used when LatheParams.Segments is not positive.
const DefaultLatheSegments = 12

// LatheParams controls NewLatheUV.
type LatheParams struct {
	Segments int
	PhiStart float32
	// PhiLength is the swept angle, clamped to [0, 2π]. Zero means a full
	// revolution.
	PhiLength float32
	// UVMatrix maps the final (angle, profile) UVs. Nil is identity.
	UVMatrix *math.Mat3
}

// LatheProfile resolves path into the sample list NewLatheUV revolves:
// disabled vertices are dropped, the end texture coordinates default to 0
// and 1, and consecutive samples equal in position and T are collapsed.
func LatheProfile(path []Vertex) ([]ProfilePoint, error) {
	shape, err := NewRoundedShape(path)
	if err != nil {
		return nil, err
	}
	points := shape.Points(DefaultDivisions)

	uniques := points[:1]
	for _, p := range points[1:] {
		q := uniques[len(uniques)-1]
		if p.X == q.X && p.Y == q.Y && p.T == q.T {
			continue
		}
		uniques = append(uniques, p)
	}
	if len(uniques) < 2 {
		return nil, fmt.Errorf("%w: profile collapses to a point", ErrProfileTooShort)
	}
	return uniques, nil
}

// NewLatheUV revolves the profile around the Y axis. U follows the angle
// from 0 to 1 and V is the profile texture coordinate, so texel density
// along the profile follows the declared Tex values.
func NewLatheUV(path []Vertex, p LatheParams) (*Mesh, error) {
	points, err := LatheProfile(path)
	if err != nil {
		return nil, err
	}
	return lathe(points, p), nil
}

func lathe(points []ProfilePoint, p LatheParams) *Mesh {
	segments := p.Segments
	if segments <= 0 {
		segments = DefaultLatheSegments
	}
	phiLength := p.PhiLength
	if phiLength == 0 {
		phiLength = 2 * math32.Pi
	}
	phiLength = clampf(phiLength, 0, 2*math32.Pi)
	uvm := matOrIdentity(p.UVMatrix)

	n := len(points)
	normals := latheNormals(points)

	m := newMesh((segments+1)*n, segments*(n-1)*6)
	for i := 0; i <= segments; i++ {
		phi := p.PhiStart + float32(i)/float32(segments)*phiLength
		s, c := math32.Sincos(phi)
		for j, pt := range points {
			pos := math.Vec3{X: pt.X * s, Y: pt.Y, Z: pt.X * c}
			nrm := math.Vec3{X: normals[j].X * s, Y: normals[j].Y, Z: normals[j].X * c}
			u, v := uvm.ApplyXY(float32(i)/float32(segments), pt.T)
			m.addVertex(pos, nrm, u, v)
		}
	}

	stride := uint32(n)
	for i := 0; i < segments; i++ {
		for j := 0; j < n-1; j++ {
			a := uint32(j + i*n)
			b := a + stride
			c := a + stride + 1
			d := a + 1
			m.Indices = append(m.Indices, a, b, d, c, d, b)
		}
	}
	return m
}

// latheNormals returns the profile-space normal at each point: the first
// edge's normal, the average of the two adjacent edges inside, and the last
// edge's normal at the end.
func latheNormals(points []ProfilePoint) []math.Vec2 {
	n := len(points)
	out := make([]math.Vec2, n)
	var prev math.Vec2
	for j := 0; j < n; j++ {
		switch {
		case j == n-1:
			out[j] = prev.Normalize()
		case j == 0:
			prev = points[1].Vec2().Sub(points[0].Vec2()).Normal()
			out[j] = prev.Normalize()
		default:
			cur := points[j+1].Vec2().Sub(points[j].Vec2()).Normal()
			out[j] = cur.Add(prev).Normalize()
			prev = cur
		}
	}
	return out
}
