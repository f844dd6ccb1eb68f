package viewer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/propforge/pkg/geometry"
	"github.com/Faultbox/propforge/pkg/math"
)

func TestInterleave(t *testing.T) {
	m := &geometry.Mesh{
		Positions: []float32{1, 2, 3, 4, 5, 6},
		Normals:   []float32{0, 1, 0, 0, 0, 1},
		UVs:       []float32{0.25, 0.5, 0.75, 1},
	}
	got := interleave(m)
	require.Len(t, got, 2*vertexStride)
	assert.Equal(t, []float32{1, 2, 3, 0, 1, 0, 0.25, 0.5}, got[:vertexStride])
	assert.Equal(t, []float32{4, 5, 6, 0, 0, 1, 0.75, 1}, got[vertexStride:])
}

func TestOrbitCamera_Position(t *testing.T) {
	c := NewOrbitCamera()
	c.Pitch, c.Yaw, c.Distance = 0, 0, 2
	c.Center = math.Vec3{X: 1}
	p := c.Position()
	assert.InDelta(t, 1, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, 1e-6)
	assert.InDelta(t, 2, p.Z, 1e-6)

	c.Pitch = math32.Pi / 2
	assert.InDelta(t, 2, c.Position().Y, 1e-5)
}

func TestOrbitCamera_Clamps(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.Pitch)
	c.HandleDrag(0, -1e6)
	assert.Equal(t, c.MinPitch, c.Pitch)

	for i := 0; i < 200; i++ {
		c.HandleZoom(1)
	}
	assert.Equal(t, c.MinDistance, c.Distance)
	for i := 0; i < 500; i++ {
		c.HandleZoom(-1)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestOrbitCamera_Fit(t *testing.T) {
	c := NewOrbitCamera()
	box := geometry.NewRoundedBox(geometry.DefaultBoxParams(1, 1, 1)).Translate(2, 0, 0)
	c.Fit(box.Bounds(), 45)
	assert.InDelta(t, 2, c.Center.X, 1e-5)
	// The bounding sphere fits in the vertical fov.
	radius := box.Bounds().Size().Length() / 2
	assert.Greater(t, c.Distance*math32.Sin(45*math32.Pi/360), radius)

	// The box center projects to the middle of the viewport.
	mvp := c.ViewProjection(45, 1)
	p := mvp.TransformVec3(c.Center)
	assert.InDelta(t, 0, p.X, 1e-4)
	assert.InDelta(t, 0, p.Y, 1e-4)
}

func TestPartsBounds(t *testing.T) {
	a := geometry.NewRoundedBox(geometry.DefaultBoxParams(1, 1, 1))
	b := geometry.NewRoundedBox(geometry.DefaultBoxParams(1, 1, 1)).Translate(3, 0, 0)
	got := partsBounds([]*geometry.Mesh{a, nil, &geometry.Mesh{}, b})
	assert.InDelta(t, -0.5, got.Min.X, 1e-5)
	assert.InDelta(t, 3.5, got.Max.X, 1e-5)
	assert.Equal(t, geometry.Bounds{}, partsBounds(nil))
}

func TestFlipRows(t *testing.T) {
	// Two rows of one pixel, bottom row red.
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	img := flipRows(pixels, 1, 2)
	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, b)
	r, _, _, _ = img.At(0, 1).RGBA()
	assert.NotZero(t, r)
}
