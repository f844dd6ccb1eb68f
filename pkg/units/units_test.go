package units

import (
	"math"
	"testing"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		got  float32
		want float32
	}{
		{"cm", Cm(150), 1.5},
		{"mm", Mm(5), 0.005},
		{"percent", Percent(20), 0.2},
		{"slope 0", Slope(0), 0},
		{"slope 90", Slope(90), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(float64(tt.got-tt.want)) > 1e-6 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestMap(t *testing.T) {
	if got := Map(50, 0, 1, 0, 100); got != 0.5 {
		t.Errorf("Map(50) = %v, want 0.5", got)
	}
	if got := Map(-100, 2, 4, -100, 100); got != 2 {
		t.Errorf("Map(-100) = %v, want 2", got)
	}
	if got := Map(3, 7, 9, 1, 1); got != 7 {
		t.Errorf("Map with empty source = %v, want 7", got)
	}
}

func TestMapExp(t *testing.T) {
	if got := MapExp(0, 5, 30, 0, 1); math.Abs(got-5) > 1e-9 {
		t.Errorf("MapExp(0) = %v, want 5", got)
	}
	if got := MapExp(1, 5, 30, 0, 1); math.Abs(got-30) > 1e-9 {
		t.Errorf("MapExp(1) = %v, want 30", got)
	}
	// Geometric mean at the midpoint.
	if got := MapExp(0.5, 4, 16, 0, 1); math.Abs(got-8) > 1e-9 {
		t.Errorf("MapExp(0.5) = %v, want 8", got)
	}
}

func TestRoundClamp(t *testing.T) {
	if got := Round(1.23456, 2); got != 1.23 {
		t.Errorf("Round() = %v, want 1.23", got)
	}
	if got := Round(2.5, 0); got != 3 {
		t.Errorf("Round(2.5, 0) = %v, want 3", got)
	}
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp() = %v, want 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp() = %v, want 0", got)
	}
}

func TestRandomDeterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 10; i++ {
		x, y := Random(a, 1, 2, 3), Random(b, 1, 2, 3)
		if x != y {
			t.Fatalf("same seed diverged: %v != %v", x, y)
		}
		if x < 1 || x > 2 {
			t.Fatalf("Random() = %v, out of [1, 2]", x)
		}
	}
}
