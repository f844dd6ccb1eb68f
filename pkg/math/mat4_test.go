package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3() = %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	got := m.TransformVec3(Vec3{1, 0, 0})

	// (1,0,0) turns into (0,0,-1)
	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
}

func TestRotateAxisMatchesRotateZ(t *testing.T) {
	angle := float32(0.7)
	a := RotateAxis(Vec3{0, 0, 1}, angle)
	b := RotateZ(angle)
	for i := range a {
		if abs(a[i]-b[i]) > 1e-6 {
			t.Fatalf("RotateAxis(z) element %d = %v, want %v", i, a[i], b[i])
		}
	}
}

func TestBasis(t *testing.T) {
	m := Basis(Vec3{0, 1, 0}, Vec3{0, 0, 1}, Vec3{1, 0, 0}, Vec3{5, 0, 0})
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{8, 1, 2}
	if got != want {
		t.Errorf("Basis().TransformVec3() = %v, want %v", got, want)
	}

	d := m.TransformDirection(Vec3{0, 0, 2})
	if d != (Vec3{1, 0, 0}) {
		t.Errorf("TransformDirection() = %v, want (1, 0, 0)", d)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformVec3(eye)
	if got.Length() > 1e-5 {
		t.Errorf("LookAt() maps eye to %v, want origin", got)
	}

	// The target lies straight ahead on -Z.
	target := view.TransformVec3(Vec3{})
	if abs(target.Z+5) > 1e-5 {
		t.Errorf("LookAt() maps target to %v, want (0, 0, -5)", target)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
