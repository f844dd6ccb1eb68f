package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/propforge/pkg/binpack"
	"github.com/Faultbox/propforge/pkg/math"
)

// Box face indexes. Faces come in pairs perpendicular to Z, X and Y.
const (
	FaceZNeg = iota
	FaceZPos
	FaceXNeg
	FaceXPos
	FaceYNeg
	FaceYPos
)

// FaceMask holds one flag per box face, indexed by the Face constants.
type FaceMask [6]bool

// AllFaces has every flag set.
var AllFaces = FaceMask{true, true, true, true, true, true}

// Faces returns a mask with only the given faces set.
func Faces(ids ...int) FaceMask {
	var m FaceMask
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// Without returns a copy of m with the given faces cleared.
func (m FaceMask) Without(ids ...int) FaceMask {
	for _, id := range ids {
		m[id] = false
	}
	return m
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func b2f(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// BoxParams describes a rounded box centred on the origin.
type BoxParams struct {
	X, Y, Z float32
	// Roundness is relative to the box extents unless AbsoluteRoundness
	// is set, in which case it is the bevel radius.
	Roundness         float32
	AbsoluteRoundness bool
	// Segments per bevel.
	Segments int

	// Faces selects the faces that are built.
	Faces FaceMask
	// RoundFaces selects the faces whose edges are beveled.
	RoundFaces FaceMask
	// FillCenter selects the faces whose flat middle is filled.
	FillCenter FaceMask

	// UVMatrix transforms the shared cross layout. Nil is identity.
	UVMatrix *math.Mat3
	// FaceUV switches to atlas mode: face i is laid out on its own
	// footprint and mapped by FaceUV[i]. Missing entries collapse the face
	// to UV (0, 0).
	FaceUV []math.Mat3
}

// DefaultBoxParams returns a box with every face present, rounded and
// filled, and two bevel segments.
func DefaultBoxParams(x, y, z float32) BoxParams {
	return BoxParams{
		X: x, Y: y, Z: z,
		Segments:   2,
		Faces:      AllFaces,
		RoundFaces: AllFaces,
		FillCenter: AllFaces,
	}
}

// CurveRadius converts a relative roundness into a bevel radius. The radius
// never exceeds half the smallest extent.
func CurveRadius(x, y, z, roundness float32) float32 {
	lo := min(x, y, z)
	hi := max(x, y, z)
	return min(roundness*hi*0.5, lo*0.5)
}

// BoxFootprints returns the atlas rectangles of the present faces: faces
// 0 and 1 need X by Y, 2 and 3 need Y by Z, 4 and 5 need Z by X.
func BoxFootprints(owner string, p BoxParams) []binpack.Request {
	dims := [3][2]float32{{p.X, p.Y}, {p.Y, p.Z}, {p.Z, p.X}}
	var reqs []binpack.Request
	for f := 0; f < 6; f++ {
		if !p.Faces[f] {
			continue
		}
		d := dims[f/2]
		reqs = append(reqs, binpack.Request{
			Width:  float64(d[0]),
			Height: float64(d[1]),
			Owner:  owner,
			Face:   f,
		})
	}
	return reqs
}

// boxLayout holds the values derived from BoxParams that both the builder
// and the counter need.
type boxLayout struct {
	p        BoxParams
	perm     [3]int
	size     [3]float32
	seg      int
	detail   [3]int
	simplify [6]bool
	radius   float32
	// forceGrid disables the single-quad path. Tests use it to compare the
	// two paths.
	forceGrid bool
}

func newBoxLayout(p BoxParams) *boxLayout {
	l := &boxLayout{p: p, perm: [3]int{0, 1, 2}}
	x, y, z := p.X, p.Y, p.Z

	if p.FaceUV == nil {
		// Put the smallest axis where the cross layout wastes least.
		switch {
		case x <= y && x <= z:
			l.perm = [3]int{2, 0, 1}
		case y <= x && y <= z:
			l.perm = [3]int{0, 1, 2}
		default:
			l.perm = [3]int{1, 2, 0}
		}
	}
	orig := [3]float32{x, y, z}
	for a := range l.size {
		l.size[a] = orig[l.perm[a]]
	}

	if p.Roundness > 0 {
		l.seg = max(p.Segments, 0)
	}
	rf := p.RoundFaces
	l.detail = [3]int{
		l.seg*b2i(rf[2]) + l.seg*b2i(rf[3]) + 1,
		l.seg*b2i(rf[4]) + l.seg*b2i(rf[5]) + 1,
		l.seg*b2i(rf[0]) + l.seg*b2i(rf[1]) + 1,
	}

	flatZ := !rf[0] && !rf[1]
	flatX := !rf[2] && !rf[3]
	flatY := !rf[4] && !rf[5]
	l.simplify = [6]bool{
		!rf[0] && (flatX || flatY),
		!rf[1] && (flatX || flatY),
		!rf[2] && (flatZ || flatY),
		!rf[3] && (flatZ || flatY),
		!rf[4] && (flatZ || flatX),
		!rf[5] && (flatZ || flatX),
	}

	s := l.size
	if p.AbsoluteRoundness {
		l.radius = max(0, min(p.Roundness, min(s[0], s[1], s[2])*0.5))
	} else {
		l.radius = CurveRadius(s[0], s[1], s[2], p.Roundness)
	}
	return l
}

// face returns the face id built in slot (axis0, u) and its grid size.
func (l *boxLayout) face(axis0, u int) (id, det0, det1 int) {
	axis1 := (axis0 + 1) % 3
	id = l.perm[axis0]*2 + u
	if l.simplify[id] && !l.forceGrid {
		return id, 1, 1
	}
	return id, l.detail[l.perm[axis0]], l.detail[l.perm[axis1]]
}

// roundedAt reports whether the face closing local axis on the given side
// (0 low, 1 high) is beveled.
func (l *boxLayout) roundedAt(axis, side int) bool {
	return l.p.RoundFaces[l.perm[axis]*2+side]
}

// skipCell reports whether the cell at (i, j) of slot (axis0, u) is the
// unfilled centre.
func (l *boxLayout) skipCell(axis0, u, i, j int) bool {
	id := l.perm[axis0]*2 + u
	if l.p.FillCenter[id] {
		return false
	}
	si, sj := i, j
	if !l.roundedAt((axis0+1)%3, 0) {
		si += l.seg
	}
	if !l.roundedAt((axis0+2)%3, 0) {
		sj += l.seg
	}
	return si == l.seg && sj == l.seg
}

func (l *boxLayout) counts() (vertices, indices int) {
	for axis0 := 0; axis0 < 3; axis0++ {
		for u := 0; u < 2; u++ {
			id, d0, d1 := l.face(axis0, u)
			if !l.p.Faces[id] {
				continue
			}
			vertices += (d0 + 1) * (d1 + 1)
			for i := 0; i < d0; i++ {
				for j := 0; j < d1; j++ {
					if !l.skipCell(axis0, u, i, j) {
						indices += 6
					}
				}
			}
		}
	}
	return vertices, indices
}

// BoxCounts returns the vertex and index counts NewRoundedBox produces for p.
func BoxCounts(p BoxParams) (vertices, indices int) {
	return newBoxLayout(p).counts()
}

// uvRemap returns T(tx, ty) · R(-deg) · S(sx, sy).
func uvRemap(tx, ty, sx, sy, deg float32) math.Mat3 {
	return math.Translate2D(tx, ty).
		Mul(math.Rotate2D(-deg / 180 * math32.Pi)).
		Mul(math.Scale2D(sx, sy))
}

func (l *boxLayout) uvMatrices() [6]math.Mat3 {
	x, y, z := l.size[0], l.size[1], l.size[2]

	if l.p.FaceUV != nil {
		at := func(i int) math.Mat3 { return atlasAt(l.p.FaceUV, i) }
		return [6]math.Mat3{
			at(0).Mul(uvRemap(x, 0, -x, y, 0)),
			at(1).Mul(uvRemap(x, y, -x, -y, 0)),
			at(2).Mul(uvRemap(y, 0, -y, z, 0)),
			at(3).Mul(uvRemap(0, 0, y, z, 0)),
			at(4).Mul(uvRemap(0, 0, z, x, 0)),
			at(5).Mul(uvRemap(0, 0, z, x, 0)),
		}
	}

	shared := math.Identity3()
	if l.p.UVMatrix != nil {
		shared = *l.p.UVMatrix
	}
	return [6]math.Mat3{
		shared.Mul(uvRemap(y+x, 0, -x, y, 0)),
		shared.Mul(uvRemap(y+x, y+z+y, -x, -y, 0)),
		shared.Mul(uvRemap(y+x+y, y, -y, z, 0)),
		shared.Mul(uvRemap(0, y, y, z, 0)),
		shared.Mul(uvRemap(2*y+x, y, -z, x, 90)),
		shared.Mul(uvRemap(y+x, y, -z, -x, 90)),
	}
}

// NewRoundedBox builds a box with beveled edges. All present faces go into
// one buffer. Flat faces whose neighbours are flat along one meeting axis
// collapse to a single quad.
func NewRoundedBox(p BoxParams) *Mesh {
	return newBoxLayout(p).build()
}

func (l *boxLayout) build() *Mesh {
	nv, ni := l.counts()
	m := newMesh(nv, ni)
	uvm := l.uvMatrices()

	for axis0 := 0; axis0 < 3; axis0++ {
		for u := 0; u < 2; u++ {
			id, d0, d1 := l.face(axis0, u)
			if !l.p.Faces[id] {
				continue
			}
			base := uint32(m.VertexCount())
			if d0 == 1 && d1 == 1 && !l.forceGrid {
				l.quadVertices(m, axis0, u, uvm[axis0*2+u])
			} else {
				l.gridVertices(m, axis0, u, d0, d1, uvm[axis0*2+u])
			}
			l.faceIndices(m, base, axis0, u, d0, d1)
		}
	}
	return m
}

// put writes a face-local vector into world axes.
func (l *boxLayout) put(axis0 int, a, b, c float32) math.Vec3 {
	var v math.Vec3
	v = v.WithComponent(l.perm[axis0], a)
	v = v.WithComponent(l.perm[(axis0+1)%3], b)
	v = v.WithComponent(l.perm[(axis0+2)%3], c)
	return v
}

func (l *boxLayout) quadVertices(m *Mesh, axis0, u int, uvm math.Mat3) {
	axis1, axis2 := (axis0+1)%3, (axis0+2)%3
	normal := l.put(axis0, 0, 0, float32(u*2-1))
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			pos := l.put(axis0,
				(float32(i)-0.5)*l.size[axis0],
				(float32(j)-0.5)*l.size[axis1],
				(float32(u)-0.5)*l.size[axis2])
			uu, vv := uvm.ApplyXY(float32(i), float32(j))
			m.addVertex(pos, normal, uu, vv)
		}
	}
}

func (l *boxLayout) gridVertices(m *Mesh, axis0, u, d0, d1 int, uvm math.Mat3) {
	axis1, axis2 := (axis0+1)%3, (axis0+2)%3
	s := l.size
	r := l.radius
	seg := l.seg
	d := float32(max(1, seg))
	half := float32(seg*2+1) / 2
	faceNormal := l.put(axis0, 0, 0, float32(u*2-1))
	ownRounded := l.p.RoundFaces[l.perm[axis0]*2+u]

	coord := func(k int, extent float32) float32 {
		if float32(k) < half {
			return float32(k)*r/d - extent/2
		}
		return extent/2 - r + float32(k-int(d)-1)*r/d
	}

	for gi := 0; gi <= d0; gi++ {
		for gj := 0; gj <= d1; gj++ {
			i, j := gi, gj
			if gi > 0 && !l.roundedAt(axis1, 0) {
				i += seg
			}
			if gi == d0 && !l.roundedAt(axis1, 1) {
				i += seg
			}
			if gj > 0 && !l.roundedAt(axis2, 0) {
				j += seg
			}
			if gj == d1 && !l.roundedAt(axis2, 1) {
				j += seg
			}

			vertex := math.Vec3{
				X: coord(i, s[axis0]),
				Y: coord(j, s[axis1]),
				Z: (float32(u) - 0.5) * s[axis2],
			}
			center := math.Vec3{
				X: clampf(vertex.X, -s[axis0]/2+b2f(l.roundedAt(axis1, 0))*r, s[axis0]/2-b2f(l.roundedAt(axis1, 1))*r),
				Y: clampf(vertex.Y, -s[axis1]/2+b2f(l.roundedAt(axis2, 0))*r, s[axis1]/2-b2f(l.roundedAt(axis2, 1))*r),
				Z: clampf(vertex.Z, -s[axis2]/2+b2f(l.roundedAt(axis0, 0))*r, s[axis2]/2-b2f(l.roundedAt(axis0, 1))*r),
			}

			normal := faceNormal
			if l.p.Roundness != 0 {
				edge := i == 0 || j == 0 || i == 2*seg+1 || j == 2*seg+1
				if !ownRounded && !edge &&
					math32.Abs(float32(i)-half) > 0.5 && math32.Abs(float32(j)-half) > 0.5 {
					vertex = center.Add(vertex.Sub(center).Scale(1 / math32.Sqrt2))
				}

				dir := vertex.Sub(center)
				if ownRounded && dir.LengthSq() > 0 {
					n := dir.Normalize()
					normal = l.put(axis0, n.X, n.Y, n.Z)
				}
				if ls := dir.LengthSq(); ls > r*r {
					dir = dir.Scale(r / math32.Sqrt(ls))
				}
				vertex = center.Add(dir)
			}

			pos := l.put(axis0, vertex.X, vertex.Y, vertex.Z)
			uu, vv := uvm.ApplyXY(
				(vertex.X+s[axis0]/2)/s[axis0],
				(vertex.Y+s[axis1]/2)/s[axis1],
			)
			m.addVertex(pos, normal, uu, vv)
		}
	}
}

func (l *boxLayout) faceIndices(m *Mesh, base uint32, axis0, u, d0, d1 int) {
	seg := l.seg
	row := uint32(d1 + 1)
	for i := 0; i < d0; i++ {
		for j := 0; j < d1; j++ {
			if l.skipCell(axis0, u, i, j) {
				continue
			}
			si, sj := i, j
			if !l.roundedAt((axis0+1)%3, 0) {
				si += seg
			}
			if !l.roundedAt((axis0+2)%3, 0) {
				sj += seg
			}

			kv := base + uint32(i)*row + uint32(j)
			var q [6]uint32
			// Split each cell along the diagonal that follows the bevel.
			if (si < seg && sj > seg) || (si > seg && sj < seg) {
				q = [6]uint32{kv, kv + 1, kv + row, kv + row, kv + 1, kv + row + 1}
			} else {
				q = [6]uint32{kv + row, kv, kv + row + 1, kv + row + 1, kv, kv + 1}
			}
			if u == 1 {
				for a, b := 0, 5; a < b; a, b = a+1, b-1 {
					q[a], q[b] = q[b], q[a]
				}
			}
			m.Indices = append(m.Indices, q[:]...)
		}
	}
}

func clampf(v, lo, hi float32) float32 {
	return max(lo, min(hi, v))
}
