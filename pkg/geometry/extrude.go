package geometry

import (
	"fmt"

	"github.com/Faultbox/propforge/pkg/binpack"
	"github.com/Faultbox/propforge/pkg/math"
)

// degenerateEpsilon is the per-axis distance below which two profile
// samples are treated as the same point.
const degenerateEpsilon = 2.220446049250313e-16

// seamSmoothCos is the cosine of the largest seam angle that is smoothed.
const seamSmoothCos = 0.5

// ExtrudeParams describes a profile sweep.
type ExtrudeParams struct {
	Path  Curve3
	Steps int
	// Caps enables the start and end caps.
	Caps [2]bool
	// Divisions is passed to RoundedShape.Points.
	Divisions int

	// UVMatrix maps body UVs, StartCapUV and EndCapUV map the caps. Nil is
	// identity.
	UVMatrix, StartCapUV, EndCapUV *math.Mat3
	// AtlasUV switches to atlas mode: entries 0, 1 and 2 map the body and
	// the two caps from their footprint units, as returned by Bin.FaceUV.
	AtlasUV []math.Mat3
}

func (p ExtrudeParams) validate(shape *RoundedShape) error {
	switch {
	case shape == nil:
		return fmt.Errorf("%w: nil shape", ErrProfileTooShort)
	case p.Path == nil:
		return ErrNilPath
	case p.Steps < 1:
		return fmt.Errorf("%w: got %d", ErrZeroSteps, p.Steps)
	}
	return nil
}

// ExtrudeFootprints returns the atlas rectangles of a sweep: the body
// (path length by profile length) as face 0, then the enabled caps (profile
// bounding box) as faces 1 and 2. Invalid parameters yield nil.
func ExtrudeFootprints(owner string, shape *RoundedShape, p ExtrudeParams) []binpack.Request {
	if p.validate(shape) != nil {
		return nil
	}
	points := shape.Points(p.Divisions)
	reqs := []binpack.Request{{
		Width:  float64(CurveLength(p.Path, p.Steps)),
		Height: float64(ProfileLength(points)),
		Owner:  owner,
		Face:   0,
	}}
	lo, hi := profileBounds(points)
	size := hi.Sub(lo)
	for c, on := range p.Caps {
		if on {
			reqs = append(reqs, binpack.Request{
				Width:  float64(size.X),
				Height: float64(size.Y),
				Owner:  owner,
				Face:   c + 1,
			})
		}
	}
	return reqs
}

// NewSmoothExtrude sweeps shape along p.Path. Each profile point keeps one
// normal computed in profile space, so the surface shades smoothly except
// at sharp profile corners.
func NewSmoothExtrude(shape *RoundedShape, p ExtrudeParams) (*Mesh, error) {
	if err := p.validate(shape); err != nil {
		return nil, err
	}

	points := shape.Points(p.Divisions)
	ring := expandCreases(points)
	normals := profileNormals(ring)
	frames := ComputeFrenetFrames(p.Path, p.Steps)

	bodyUV := matOrIdentity(p.UVMatrix)
	startUV := matOrIdentity(p.StartCapUV)
	endUV := matOrIdentity(p.EndCapUV)

	lo, hi := profileBounds(points)
	capSize := hi.Sub(lo)
	var scale, capScale = math.Vec2{X: 1, Y: 1}, math.Vec2{X: 1, Y: 1}
	if p.AtlasUV != nil {
		bodyUV = atlasAt(p.AtlasUV, 0)
		startUV = atlasAt(p.AtlasUV, 1)
		endUV = atlasAt(p.AtlasUV, 2)
		scale = math.Vec2{X: CurveLength(p.Path, p.Steps), Y: ProfileLength(points)}
		capScale = capSize
	}

	var (
		capVerts []math.Vec2
		capTris  []uint32
	)
	if p.Caps[0] || p.Caps[1] {
		poly := make([]math.Vec2, len(points))
		for i, pt := range points {
			poly[i] = pt.Vec2()
		}
		var err error
		if capVerts, capTris, err = Triangulate(poly); err != nil {
			return nil, fmt.Errorf("extrude cap: %w", err)
		}
	}

	n := len(ring)
	m := newMesh((p.Steps+1)*n+2*len(capVerts), p.Steps*(n-1)*6+2*len(capTris))

	for i := 0; i <= p.Steps; i++ {
		f := frames[i]
		basis := math.Basis(f.Normal, f.Binormal, f.Tangent, p.Path.Point(float32(i)/float32(p.Steps)))
		for j, pt := range ring {
			pos := basis.TransformVec3(math.Vec3{X: pt.X, Y: pt.Y})
			nrm := basis.TransformDirection(math.Vec3{X: normals[j].X, Y: normals[j].Y})
			u, v := bodyUV.ApplyXY(float32(i)/float32(p.Steps)*scale.X, pt.T*scale.Y)
			m.addVertex(pos, nrm, u, v)
		}
	}

	for i := 0; i < p.Steps; i++ {
		kv := uint32(i * n)
		for j := 0; j < n-1; j++ {
			if isDegenerateEdge(ring[j], ring[j+1]) {
				continue
			}
			a, b := kv+uint32(j), kv+uint32(j+1)
			m.Indices = append(m.Indices, a, b, a+uint32(n), a+uint32(n), b, b+uint32(n))
		}
	}

	addCap := func(step int, uvm math.Mat3, dir float32, flip bool) {
		f := frames[step]
		basis := math.Basis(f.Normal, f.Binormal, f.Tangent, p.Path.Point(float32(step)/float32(p.Steps)))
		nrm := f.Tangent.Scale(dir)
		base := uint32(m.VertexCount())
		for _, pt := range capVerts {
			pos := basis.TransformVec3(math.Vec3{X: pt.X, Y: pt.Y})
			u, v := uvm.ApplyXY(
				unitCoord(pt.X, lo.X, capSize.X)*capScale.X,
				unitCoord(pt.Y, lo.Y, capSize.Y)*capScale.Y,
			)
			m.addVertex(pos, nrm, u, v)
		}
		for t := 0; t+2 < len(capTris); t += 3 {
			a, b, c := capTris[t], capTris[t+1], capTris[t+2]
			if flip {
				a, b = b, a
			}
			m.addTriangle(base+a, base+b, base+c)
		}
	}
	if p.Caps[0] {
		addCap(0, startUV, -1, true)
	}
	if p.Caps[1] {
		addCap(p.Steps, endUV, 1, false)
	}
	return m, nil
}

// expandCreases repeats every crease point so the two edges meeting there
// get separate normals.
func expandCreases(points []ProfilePoint) []ProfilePoint {
	ring := make([]ProfilePoint, 0, len(points)*2)
	for _, p := range points {
		ring = append(ring, p)
		if p.Crease {
			ring = append(ring, p)
		}
	}
	return ring
}

// profileNormals returns the outward normal of each ring point, averaging
// the two edges that meet at it. Edge (a, b) has normal (dy, -dx). A closed
// ring, whose last point repeats the first, shares one normal at the seam
// unless the seam is a sharp corner.
func profileNormals(ring []ProfilePoint) []math.Vec2 {
	n := len(ring)
	normals := make([]math.Vec2, n)
	var in, out math.Vec2
	for i := range ring {
		if i > 0 {
			in = ring[i].Vec2().Sub(ring[i-1].Vec2()).Normal()
		}
		if i < n-1 {
			out = ring[i+1].Vec2().Sub(ring[i].Vec2()).Normal()
		}
		switch {
		case i == 0:
			normals[i] = out.Normalize()
		case i < n-1:
			normals[i] = in.Add(out).Normalize()
		default:
			normals[i] = in.Normalize()
		}
	}
	if n > 2 && ring[0].Vec2() == ring[n-1].Vec2() && normals[0].Dot(normals[n-1]) > seamSmoothCos {
		seam := normals[0].Add(normals[n-1]).Normalize()
		normals[0], normals[n-1] = seam, seam
	}
	return normals
}

func isDegenerateEdge(a, b ProfilePoint) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return max(dx, -dx) < degenerateEpsilon && max(dy, -dy) < degenerateEpsilon
}

func profileBounds(points []ProfilePoint) (lo, hi math.Vec2) {
	lo, hi = points[0].Vec2(), points[0].Vec2()
	for _, p := range points[1:] {
		lo = math.Vec2{X: min(lo.X, p.X), Y: min(lo.Y, p.Y)}
		hi = math.Vec2{X: max(hi.X, p.X), Y: max(hi.Y, p.Y)}
	}
	return lo, hi
}

func unitCoord(v, lo, size float32) float32 {
	if size == 0 {
		return 0
	}
	return (v - lo) / size
}

func matOrIdentity(m *math.Mat3) math.Mat3 {
	if m == nil {
		return math.Identity3()
	}
	return *m
}

func atlasAt(mats []math.Mat3, i int) math.Mat3 {
	if i < len(mats) {
		return mats[i]
	}
	return math.Scale2D(0, 0)
}
