package viewer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/propforge/pkg/geometry"
	"github.com/Faultbox/propforge/pkg/math"
)

// OrbitCamera orbits around a center point. Angles are radians.
type OrbitCamera struct {
	Center math.Vec3

	Distance float32
	Pitch    float32
	Yaw      float32

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a camera framing a one meter prop.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        2.5,
		Pitch:           0.45,
		Yaw:             0.6,
		MinDistance:     0.05,
		MaxDistance:     50,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Center.Add(math.Vec3{X: cp * sy, Y: sp, Z: cp * cy}.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ViewProjection returns projection * view for a viewport aspect ratio.
// fov is the vertical field of view in degrees.
func (c *OrbitCamera) ViewProjection(fov, aspect float32) math.Mat4 {
	near := math32.Max(c.Distance*0.01, 0.001)
	proj := math.Perspective(fov*math32.Pi/180, aspect, near, c.Distance*10+10)
	return proj.Mul(c.ViewMatrix())
}

// HandleDrag updates rotation from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(dx, dy float32) {
	c.Yaw -= dx * c.DragSensitivity
	c.Pitch = math32.Min(math32.Max(c.Pitch+dy*c.DragSensitivity, c.MinPitch), c.MaxPitch)
}

// HandleZoom scales the distance by a wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	d := c.Distance - delta*c.Distance*c.ZoomSensitivity
	c.Distance = math32.Min(math32.Max(d, c.MinDistance), c.MaxDistance)
}

// Fit centers the camera on b and backs off until the whole box is in a
// view of the given vertical fov in degrees.
func (c *OrbitCamera) Fit(b geometry.Bounds, fov float32) {
	c.Center = b.Center()
	radius := b.Size().Length() / 2
	if radius == 0 {
		radius = 0.5
	}
	half := fov * math32.Pi / 360
	c.Distance = math32.Min(math32.Max(radius/math32.Sin(half)*1.1, c.MinDistance), c.MaxDistance)
}
