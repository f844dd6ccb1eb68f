package geometry

import (
	"testing"

	"github.com/Faultbox/propforge/pkg/math"
)

func TestTransformUVs(t *testing.T) {
	m := quad()
	TransformUVs(m, math.Translate2D(0.5, 0).Mul(math.Scale2D(0.5, 2)))
	diff(t, []float32{0.5, 0, 1, 0, 1, 2, 0.5, 2}, m.UVs, approx)
}

func TestProjectUVs(t *testing.T) {
	m := quad()
	// U follows up × dir, which is +X here, and V follows +Y.
	ProjectUVs(m, vec3(0, 0, 1), vec3(0, 1, 0), math.Vec2{X: 1, Y: 0})
	diff(t, []float32{1, 0, 2, 0, 2, 1, 1, 1}, m.UVs, approx)
}

func TestClampToPlane(t *testing.T) {
	m := quad()
	// Keep y >= 0.5, pushing offenders along +Y.
	ClampToPlane(m, Plane{Normal: vec3(0, 1, 0), Constant: -0.5}, vec3(0, 1, 0))
	want := []float32{
		0, 0.5, 0,
		1, 0.5, 0,
		1, 1, 0,
		0, 1, 0,
	}
	diff(t, want, m.Positions, approx)

	// A direction against the normal flips the plane: now y <= 0.75 is kept.
	m = quad()
	ClampToPlane(m, Plane{Normal: vec3(0, 1, 0), Constant: -0.75}, vec3(0, -1, 0))
	diff(t, []float32{0, 0, 0, 1, 0, 0, 1, 0.75, 0, 0, 0.75, 0}, m.Positions, approx)
}
