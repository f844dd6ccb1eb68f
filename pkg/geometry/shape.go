package geometry

import (
	"fmt"

	"honnef.co/go/curve"

	"github.com/Faultbox/propforge/pkg/math"
)

// DefaultDivisions is the number of segments per rounded corner when neither
// the vertex nor the caller asks for a count.
const DefaultDivisions = 4

// cornerClamp caps a corner radius at this fraction of the shorter
// adjacent edge.
const cornerClamp = 0.8

// Vertex is one control point of a rounded profile.
type Vertex struct {
	X, Y float32
	// Radius rounds the corner at this vertex. Zero keeps it sharp.
	Radius float32
	// Texture is the profile texture coordinate at this vertex. Nil means
	// it is interpolated by arc length between its neighbours.
	Texture *float32
	// Disabled vertices are dropped before the profile is built.
	Disabled bool
	// Divisions overrides the corner subdivision count when positive.
	Divisions int
}

// Pt returns a sharp vertex at (x, y).
func Pt(x, y float32) Vertex {
	return Vertex{X: x, Y: y}
}

// Round sets the corner radius.
func (v Vertex) Round(r float32) Vertex {
	v.Radius = r
	return v
}

// WithTex pins the texture coordinate.
func (v Vertex) WithTex(t float32) Vertex {
	v.Texture = &t
	return v
}

// Div sets the corner subdivision count.
func (v Vertex) Div(n int) Vertex {
	v.Divisions = n
	return v
}

// When disables the vertex unless active is true.
func (v Vertex) When(active bool) Vertex {
	v.Disabled = !active
	return v
}

// ProfilePoint is a sampled profile point with its resolved texture
// coordinate.
type ProfilePoint struct {
	X, Y float32
	T    float32
	// Crease marks an interior sharp vertex. Sweeps split creases into two
	// vertices so each adjacent edge keeps its own normal.
	Crease bool
}

// Vec2 returns the point position.
func (p ProfilePoint) Vec2() math.Vec2 {
	return math.Vec2{X: p.X, Y: p.Y}
}

// RoundedShape is a 2D polyline whose vertices may be rounded by quadratic
// arcs.
type RoundedShape struct {
	path []Vertex
}

// NewRoundedShape builds a shape from the enabled vertices of path.
func NewRoundedShape(path []Vertex) (*RoundedShape, error) {
	active := make([]Vertex, 0, len(path))
	for _, v := range path {
		if !v.Disabled {
			active = append(active, v)
		}
	}
	if len(active) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrProfileTooShort, len(active))
	}
	return &RoundedShape{path: active}, nil
}

// Vertices returns a copy of the enabled control vertices.
func (s *RoundedShape) Vertices() []Vertex {
	return append([]Vertex(nil), s.path...)
}

type sample struct {
	p      math.Vec2
	t      float32
	set    bool
	crease bool
}

// Points samples the shape. Corners without their own division count use
// divisions, or DefaultDivisions when divisions is not positive. Each call
// returns a fresh slice.
func (s *RoundedShape) Points(divisions int) []ProfilePoint {
	if divisions <= 0 {
		divisions = DefaultDivisions
	}

	last := len(s.path) - 1
	samples := make([]sample, 0, len(s.path)*(divisions+1))

	var cur math.Vec2
	for i, v := range s.path {
		u := math.Vec2{X: v.X, Y: v.Y}

		if v.Radius <= 0 || i == 0 || i == last {
			sm := sample{p: u, crease: i > 0 && i < last}
			if v.Texture != nil {
				sm.t, sm.set = *v.Texture, true
			}
			samples = append(samples, sm)
			cur = u
			continue
		}

		next := math.Vec2{X: s.path[i+1].X, Y: s.path[i+1].Y}
		r := min(v.Radius, cornerClamp*min(u.Distance(cur), u.Distance(next)))
		in := tangentPoint(u, cur, r)
		out := tangentPoint(u, next, r)
		arc := curve.QuadBez{P0: curvePt(in), P1: curvePt(u), P2: curvePt(out)}

		d := divisions
		if v.Divisions > 0 {
			d = v.Divisions
		}
		mid := (d + 1) / 2

		samples = append(samples, sample{p: in})
		for j := 1; j < d; j++ {
			sm := sample{p: vec2Of(arc.Eval(float64(j) / float64(d)))}
			if j == mid && v.Texture != nil {
				sm.t, sm.set = *v.Texture, true
			}
			samples = append(samples, sm)
		}
		samples = append(samples, sample{p: out})
		cur = out
	}

	resolveTextures(samples)

	points := make([]ProfilePoint, len(samples))
	for i, sm := range samples {
		points[i] = ProfilePoint{X: sm.p.X, Y: sm.p.Y, T: sm.t, Crease: sm.crease}
	}
	return points
}

// Length returns the arc length of the shape sampled with DefaultDivisions.
func (s *RoundedShape) Length() float32 {
	return ProfileLength(s.Points(0))
}

// ProfileLength returns the polyline length through points.
func ProfileLength(points []ProfilePoint) float32 {
	var l float32
	for i := 1; i < len(points); i++ {
		l += points[i].Vec2().Distance(points[i-1].Vec2())
	}
	return l
}

// tangentPoint returns the point at distance r from corner toward other.
func tangentPoint(corner, other math.Vec2, r float32) math.Vec2 {
	return corner.Add(other.Sub(corner).SetLength(r))
}

func curvePt(v math.Vec2) curve.Point {
	return curve.Pt(float64(v.X), float64(v.Y))
}

func vec2Of(p curve.Point) math.Vec2 {
	return math.Vec2{X: float32(p.X), Y: float32(p.Y)}
}

// resolveTextures forces the end coordinates to 0 and 1 and fills unset
// coordinates linearly by arc length between the previous sample and the
// next pinned one.
func resolveTextures(samples []sample) {
	n := len(samples)
	samples[0].t, samples[0].set = 0, true
	samples[n-1].t, samples[n-1].set = 1, true

	lengths := make([]float32, n)
	for i := 1; i < n; i++ {
		lengths[i] = lengths[i-1] + samples[i].p.Distance(samples[i-1].p)
	}

	j := 0
	for i := 1; i < n-1; i++ {
		if samples[i].set {
			continue
		}
		if j < i {
			j = i + 1
			for !samples[j].set {
				j++
			}
		}
		prev := samples[i-1].t
		span := lengths[j] - lengths[i-1]
		if span <= 0 {
			samples[i].t = prev
		} else {
			k := (lengths[i] - lengths[i-1]) / span
			samples[i].t = prev + k*(samples[j].t-prev)
		}
		samples[i].set = true
	}
}
