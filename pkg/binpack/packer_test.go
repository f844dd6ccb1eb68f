package binpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectRelations(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		name       string
		b          Rect
		contains   bool
		intersects bool
	}{
		{"inside", Rect{X: 2, Y: 2, Width: 3, Height: 3}, true, true},
		{"same", a, true, true},
		{"overlap", Rect{X: 5, Y: 5, Width: 10, Height: 10}, false, true},
		{"touching edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, false, false},
		{"far away", Rect{X: 20, Y: 20, Width: 1, Height: 1}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.contains, a.Contains(tt.b))
			assert.Equal(t, tt.intersects, a.Intersects(tt.b))
			assert.Equal(t, tt.intersects, tt.b.Intersects(a))
		})
	}
}

func TestPacker_ExactFit(t *testing.T) {
	p := NewPacker(10, 10)

	r, ok := p.Insert(10, 10)
	require.True(t, ok)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 10, Height: 10}, r)
	assert.Empty(t, p.FreeRects())

	_, ok = p.Insert(1, 1)
	assert.False(t, ok)
	assert.Len(t, p.Unpositioned(), 1)
	assert.Len(t, p.Positioned(), 1)
	assert.InDelta(t, 1.0, p.Used(), 1e-12)
}

func TestPacker_RotatesToFit(t *testing.T) {
	p := NewPacker(10, 5)

	r, ok := p.Insert(5, 10)
	require.True(t, ok)
	assert.True(t, r.Rotated)
	assert.Equal(t, 10.0, r.Width)
	assert.Equal(t, 5.0, r.Height)
}

func TestPacker_SquareNeverRotated(t *testing.T) {
	p := NewPacker(10, 10)
	r, ok := p.Insert(4, 4)
	require.True(t, ok)
	assert.False(t, r.Rotated)
}

func TestPacker_SplitsAroundPlacement(t *testing.T) {
	p := NewPacker(10, 10)

	_, ok := p.Insert(6, 10)
	require.True(t, ok)
	assert.Equal(t, []Rect{{X: 6, Y: 0, Width: 4, Height: 10}}, p.FreeRects())

	// 10x4 only fits the remaining 4x10 column turned sideways.
	r, ok := p.Insert(10, 4)
	require.True(t, ok)
	assert.True(t, r.Rotated)
	assert.Equal(t, 6.0, r.X)
	assert.Equal(t, 0.0, r.Y)
}

func TestPacker_BestShortSideFit(t *testing.T) {
	p := NewPacker(10, 10)
	_, ok := p.Insert(10, 3)
	require.True(t, ok)
	_, ok = p.Insert(3, 7)
	require.True(t, ok)

	// Free space is now the 7x7 block at (3,3). A 7x2 rectangle leaves a
	// zero short side there.
	r, ok := p.Insert(7, 2)
	require.True(t, ok)
	assert.Equal(t, 3.0, r.X)
	assert.Equal(t, 3.0, r.Y)
}

func TestPacker_FreeListInvariants(t *testing.T) {
	p := NewPacker(100, 100)
	sizes := [][2]float64{{30, 20}, {50, 10}, {10, 45}, {25, 25}, {40, 5}, {15, 15}, {60, 30}, {5, 5}}
	for _, s := range sizes {
		p.Insert(s[0], s[1])
	}

	placed := p.Positioned()
	free := p.FreeRects()
	require.NotEmpty(t, placed)

	for _, f := range free {
		for _, r := range placed {
			assert.False(t, f.Intersects(r), "free %v overlaps placed %v", f, r)
		}
	}
	for i := range free {
		for j := range free {
			if i != j {
				assert.False(t, free[i].Contains(free[j]), "free %v contains %v", free[i], free[j])
			}
		}
	}
	assertDisjoint(t, placed, 100, 100)
}

func TestPruneRects(t *testing.T) {
	free := []Rect{
		{X: 0, Y: 0, Width: 5, Height: 5},
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 2, Y: 2, Width: 2, Height: 2},
		{X: 0, Y: 0, Width: 10, Height: 10},
	}
	got := pruneRects(free)
	assert.Equal(t, []Rect{{X: 0, Y: 0, Width: 10, Height: 10}}, got)
}

func assertDisjoint(t *testing.T, rects []Rect, w, h float64) {
	t.Helper()
	for i, a := range rects {
		assert.GreaterOrEqual(t, a.X, 0.0)
		assert.GreaterOrEqual(t, a.Y, 0.0)
		assert.LessOrEqual(t, a.X+a.Width, w)
		assert.LessOrEqual(t, a.Y+a.Height, h)
		for _, b := range rects[i+1:] {
			assert.False(t, a.Intersects(b), "%v overlaps %v", a, b)
		}
	}
}
