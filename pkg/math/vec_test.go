package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2SetLength(t *testing.T) {
	got := Vec2{3, 4}.SetLength(10)
	if abs(got.X-6) > 1e-5 || abs(got.Y-8) > 1e-5 {
		t.Errorf("Vec2.SetLength() = %v, want (6, 8)", got)
	}
	if z := (Vec2{}).SetLength(3); z != (Vec2{}) {
		t.Errorf("zero Vec2.SetLength() = %v, want zero", z)
	}
}

func TestVec2Normal(t *testing.T) {
	// Walking up the +Y axis, the right-hand normal points to +X.
	got := Vec2{0, 1}.Normal()
	want := Vec2{1, 0}
	if got != want {
		t.Errorf("Vec2.Normal() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{1, 2, 2}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero Vec3.Normalize() = %v, want zero", z)
	}
}

func TestVec3Component(t *testing.T) {
	v := Vec3{1, 2, 3}
	for i, want := range []float32{1, 2, 3} {
		if got := v.Component(i); got != want {
			t.Errorf("Component(%d) = %v, want %v", i, got, want)
		}
	}
	if got := v.WithComponent(1, 9); got != (Vec3{1, 9, 3}) {
		t.Errorf("WithComponent(1, 9) = %v", got)
	}
}
