package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/propforge/pkg/math"
)

// Curve3 is a parametric 3D curve over t in [0, 1].
type Curve3 interface {
	Point(t float32) math.Vec3
	// Tangent returns the unit tangent at t.
	Tangent(t float32) math.Vec3
}

// Line3 is a straight segment.
type Line3 struct {
	From, To math.Vec3
}

func (c Line3) Point(t float32) math.Vec3 {
	return c.From.Lerp(c.To, t)
}

func (c Line3) Tangent(float32) math.Vec3 {
	return c.To.Sub(c.From).Normalize()
}

// QuadraticBezier3 is a quadratic Bezier curve.
type QuadraticBezier3 struct {
	P0, P1, P2 math.Vec3
}

func (c QuadraticBezier3) Point(t float32) math.Vec3 {
	k := 1 - t
	return c.P0.Scale(k * k).Add(c.P1.Scale(2 * k * t)).Add(c.P2.Scale(t * t))
}

func (c QuadraticBezier3) Tangent(t float32) math.Vec3 {
	d := c.P1.Sub(c.P0).Scale(2 * (1 - t)).Add(c.P2.Sub(c.P1).Scale(2 * t))
	if d.LengthSq() == 0 {
		return c.P2.Sub(c.P0).Normalize()
	}
	return d.Normalize()
}

// CubicBezier3 is a cubic Bezier curve.
type CubicBezier3 struct {
	P0, P1, P2, P3 math.Vec3
}

func (c CubicBezier3) Point(t float32) math.Vec3 {
	k := 1 - t
	return c.P0.Scale(k * k * k).
		Add(c.P1.Scale(3 * k * k * t)).
		Add(c.P2.Scale(3 * k * t * t)).
		Add(c.P3.Scale(t * t * t))
}

func (c CubicBezier3) Tangent(t float32) math.Vec3 {
	k := 1 - t
	d := c.P1.Sub(c.P0).Scale(3 * k * k).
		Add(c.P2.Sub(c.P1).Scale(6 * k * t)).
		Add(c.P3.Sub(c.P2).Scale(3 * t * t))
	if d.LengthSq() == 0 {
		return c.P3.Sub(c.P0).Normalize()
	}
	return d.Normalize()
}

// CurveLength approximates the arc length of c with a polyline of steps
// segments.
func CurveLength(c Curve3, steps int) float32 {
	if steps < 1 {
		steps = 1
	}
	var l float32
	prev := c.Point(0)
	for i := 1; i <= steps; i++ {
		p := c.Point(float32(i) / float32(steps))
		l += p.Distance(prev)
		prev = p
	}
	return l
}

// Frame is an orthonormal basis along a curve.
type Frame struct {
	Tangent, Normal, Binormal math.Vec3
}

const frameEpsilon = 1e-7

// ComputeFrenetFrames samples c at steps+1 evenly spaced parameters and
// returns a rotation-minimizing frame at each. The first normal is chosen
// perpendicular to the tangent along its smallest component. Later normals
// are parallel-transported, so straight sections keep the previous frame.
// A sample whose tangent vanishes repeats the previous frame.
func ComputeFrenetFrames(c Curve3, steps int) []Frame {
	frames := make([]Frame, steps+1)
	for i := range frames {
		frames[i].Tangent = c.Tangent(float32(i) / float32(steps))
	}

	if frames[0].Tangent.LengthSq() < frameEpsilon {
		frames[0].Tangent = math.Vec3{Z: 1}
		for _, f := range frames[1:] {
			if f.Tangent.LengthSq() >= frameEpsilon {
				frames[0].Tangent = f.Tangent
				break
			}
		}
	}

	t0 := frames[0].Tangent
	var seed math.Vec3
	ax, ay, az := math32.Abs(t0.X), math32.Abs(t0.Y), math32.Abs(t0.Z)
	switch {
	case ax <= ay && ax <= az:
		seed = math.Vec3{X: 1}
	case ay <= az:
		seed = math.Vec3{Y: 1}
	default:
		seed = math.Vec3{Z: 1}
	}
	side := t0.Cross(seed).Normalize()
	frames[0].Normal = t0.Cross(side)
	frames[0].Binormal = t0.Cross(frames[0].Normal)

	for i := 1; i <= steps; i++ {
		prev, cur := frames[i-1], &frames[i]
		if cur.Tangent.LengthSq() < frameEpsilon {
			*cur = prev
			continue
		}
		cur.Normal = prev.Normal

		axis := prev.Tangent.Cross(cur.Tangent)
		if axis.Length() > frameEpsilon {
			axis = axis.Normalize()
			cos := max(-1, min(1, prev.Tangent.Dot(cur.Tangent)))
			cur.Normal = math.RotateAxis(axis, math32.Acos(cos)).TransformDirection(cur.Normal)
		}
		cur.Binormal = cur.Tangent.Cross(cur.Normal)
	}
	return frames
}
