package viewer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/propforge/internal/assets"
	"github.com/Faultbox/propforge/internal/logger"
	"github.com/Faultbox/propforge/pkg/geometry"
	"github.com/Faultbox/propforge/pkg/math"
)

// channelTints colors parts by UV channel.
var channelTints = [][3]float32{
	{0.85, 0.78, 0.66},
	{0.55, 0.72, 0.86},
	{0.86, 0.55, 0.52},
	{0.62, 0.82, 0.56},
}

// Renderer draws a set of parts with a checker-lit shader.
type Renderer struct {
	program uint32

	locMVP       int32
	locLightDir  int32
	locTint      int32
	locChecker   int32
	locWireframe int32

	meshes []*GPUMesh
	bounds geometry.Bounds

	// Checker is the number of checker cells per UV unit.
	Checker   float32
	Wireframe bool
	FOV       float32
	Clear     [3]float32

	log *zap.Logger
}

// NewRenderer compiles the part shader. A GL context must be current.
func NewRenderer() (*Renderer, error) {
	program, err := compileProgram(partVertexShader, partFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("part shader: %w", err)
	}
	r := &Renderer{
		program:      program,
		locMVP:       uniform(program, "uMVP"),
		locLightDir:  uniform(program, "uLightDir"),
		locTint:      uniform(program, "uTint"),
		locChecker:   uniform(program, "uChecker"),
		locWireframe: uniform(program, "uWireframe"),
		Checker:      16,
		FOV:          45,
		Clear:        [3]float32{0.16, 0.17, 0.2},
		log:          logger.Named("viewer"),
	}
	return r, nil
}

// SetParts replaces the drawn meshes, freeing the buffers of the previous
// set first.
func (r *Renderer) SetParts(parts []assets.Part) {
	r.releaseMeshes()

	meshes := make([]*geometry.Mesh, 0, len(parts))
	for _, p := range parts {
		r.meshes = append(r.meshes, Upload(p.Name, p.Mesh))
		meshes = append(meshes, p.Mesh)
	}
	r.bounds = partsBounds(meshes)
	r.log.Debug("uploaded parts", zap.Int("parts", len(parts)))
}

// Bounds returns the bounding box of the current parts.
func (r *Renderer) Bounds() geometry.Bounds {
	return r.bounds
}

// Draw renders the parts into the bound target of the given size.
func (r *Renderer) Draw(cam *OrbitCamera, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(r.Clear[0], r.Clear[1], r.Clear[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	mvp := cam.ViewProjection(r.FOV, float32(width)/float32(height))
	light := cam.Position().Sub(cam.Center).Add(math.Vec3{Y: cam.Distance}).Normalize()

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())
	gl.Uniform3f(r.locLightDir, light.X, light.Y, light.Z)
	gl.Uniform1f(r.locChecker, r.Checker)

	r.pass(false)
	if r.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.Enable(gl.POLYGON_OFFSET_LINE)
		gl.PolygonOffset(-1, -1)
		r.pass(true)
		gl.Disable(gl.POLYGON_OFFSET_LINE)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) pass(wire bool) {
	w := int32(0)
	if wire {
		w = 1
	}
	gl.Uniform1i(r.locWireframe, w)
	for _, m := range r.meshes {
		tint := channelTints[m.Channel%len(channelTints)]
		gl.Uniform3f(r.locTint, tint[0], tint[1], tint[2])
		m.draw()
	}
}

func (r *Renderer) releaseMeshes() {
	for _, m := range r.meshes {
		m.Release()
	}
	r.meshes = r.meshes[:0]
}

// Destroy frees all GPU resources.
func (r *Renderer) Destroy() {
	r.releaseMeshes()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// partsBounds merges the bounds of non-empty meshes.
func partsBounds(meshes []*geometry.Mesh) geometry.Bounds {
	var b geometry.Bounds
	first := true
	for _, m := range meshes {
		if m == nil || m.VertexCount() == 0 {
			continue
		}
		mb := m.Bounds()
		if first {
			b, first = mb, false
			continue
		}
		b.Min = b.Min.Min(mb.Min)
		b.Max = b.Max.Max(mb.Max)
	}
	return b
}
