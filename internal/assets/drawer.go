package assets

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/propforge/internal/config"
	"github.com/Faultbox/propforge/pkg/binpack"
	"github.com/Faultbox/propforge/pkg/geometry"
	pmath "github.com/Faultbox/propforge/pkg/math"
)

// DrawerKind is a chest of drawers. The carcass shares one atlas on UV
// channel 0, every drawer box shares a second atlas on channel 1 and the
// handles use channel 2.
var DrawerKind = &Kind{
	Name: "drawer",
	Params: []Param{
		{Key: "width", Name: "width", Folder: "general", Unit: Centimeter, Default: 40, Min: 20, Max: 80, Prec: 1},
		{Key: "thickness", Name: "thickness", Folder: "general", Unit: Centimeter, Default: 1.5, Min: 0.2, Max: 2, Prec: 1},
		{Key: "depth", Name: "depth", Folder: "general", Unit: Centimeter, Default: 40, Min: 20, Max: 80, Prec: 1},
		{Key: "roundness", Name: "roundness", Folder: "general", Unit: Millimeter, Default: 2, Min: 0, Max: 5, Prec: 1},

		{Key: "drawerHeight", Name: "height", Folder: "drawers", Unit: Centimeter, Default: 15, Min: 7, Max: 60, Prec: 1},
		{Key: "drawerCount", Name: "drawers", Folder: "drawers", Unit: Count, Default: 4, Min: 1, Max: 10},
		{Key: "doorRoundness", Name: "roundness", Folder: "drawers", Default: 0.02, Min: 0, Max: 0.05, Prec: 3},
		{Key: "openness", Name: "openness", Folder: "drawers", Default: 0, Min: 0, Max: 1, Prec: 2},

		{Key: "handleThickness", Name: "thickness", Folder: "handles", Unit: Centimeter, Default: 0.5, Min: 0.1, Max: 1, Prec: 2},
		{Key: "handleSize", Name: "size", Folder: "handles", Unit: Centimeter, Default: 10, Min: 5, Max: 15, Prec: 1},
		{Key: "handleHeight", Name: "height", Folder: "handles", Default: 0.5, Min: 0.1, Max: 0.9, Prec: 2},

		{Key: "handleRoundDetail", Name: "handle bevel", Folder: "complexity", Unit: Count, Default: 1, Min: 1, Max: 3},
		{Key: "roundDetail", Name: "body bevel", Folder: "complexity", Unit: Count, Default: 1, Min: 1, Max: 4},
		{Key: "doorRoundDetail", Name: "faces bevel", Folder: "complexity", Unit: Count, Default: 1, Min: 1, Max: 4},
		flag("flat", "complexity", "flat", false, 0.3),
		flag("simple", "complexity", "simple", false, 0.3),
	},
	build: buildDrawer,
}

// PackConfig holds the atlas settings used by assets that pack their own
// footprints. Commands replace it with the loaded configuration.
var PackConfig = config.Default().Atlas

// boxPart is a box waiting for its atlas placement.
type boxPart struct {
	name    string
	p       geometry.BoxParams
	x, y, z float32
}

// packBoxes packs the footprints of every box into one atlas, scaled from
// startSize, and builds the boxes with their face matrices.
func packBoxes(name string, boxes []boxPart, startSize float64) ([]*geometry.Mesh, Atlas, error) {
	var reqs []binpack.Request
	for _, b := range boxes {
		reqs = append(reqs, geometry.BoxFootprints(b.name, b.p)...)
	}

	res, err := binpack.MinimalPacking(reqs, startSize, PackConfig.PackOptions())
	if err != nil {
		return nil, Atlas{}, fmt.Errorf("packing %s: %w", name, err)
	}

	meshes := make([]*geometry.Mesh, len(boxes))
	for i, b := range boxes {
		b.p.FaceUV = res.FaceUV(b.name, 6)
		meshes[i] = geometry.NewRoundedBox(b.p).Translate(b.x, b.y, b.z)
	}
	return meshes, Atlas{Name: name, Result: res}, nil
}

func boxOf(x, y, z float32, faces geometry.FaceMask) geometry.BoxParams {
	p := geometry.DefaultBoxParams(x, y, z)
	p.Faces = faces
	return p
}

func beveled(p geometry.BoxParams, radius float32, segments int, round geometry.FaceMask) geometry.BoxParams {
	p.Roundness = radius
	p.AbsoluteRoundness = true
	p.Segments = segments
	p.RoundFaces = round
	return p
}

func buildDrawer(v Values) ([]Part, []Atlas, error) {
	simple := v.Bool("simple")

	width := v.Cm("width")
	drawerHeight := v.Cm("drawerHeight")
	thickness := v.Cm("thickness")
	depth := v.Cm("depth")
	count := v.Int("drawerCount")

	handleThickness := v.Cm("handleThickness")
	handleSize := v.Cm("handleSize")
	handleHeight := v.F32("handleHeight")

	height := drawerHeight*float32(count) + 2*thickness
	drawerWidth := width - 2*thickness - 0.02

	r := v.Mm("roundness")
	rd := v.Int("roundDetail")
	all := geometry.AllFaces
	inner := height - 2*thickness

	carcass := []boxPart{
		{"bottom", beveled(boxOf(width, thickness, depth, all), r, rd, all.Without(geometry.FaceYPos)), 0, thickness / 2, 0},
		{"top", beveled(boxOf(width, thickness, depth, all), r, rd, all.Without(geometry.FaceYNeg)), 0, height - thickness/2, 0},
		{"sideL", beveled(boxOf(thickness, inner, depth-thickness, geometry.Faces(0, 1, 2, 3)), r, rd, geometry.Faces(0, 1, 2)), -width/2 + thickness/2, height / 2, -thickness / 2},
		{"sideR", beveled(boxOf(thickness, inner, depth-thickness, geometry.Faces(0, 1, 2, 3)), r, rd, geometry.Faces(0, 1, 3)), width/2 - thickness/2, height / 2, -thickness / 2},
		{"back", beveled(boxOf(width-2*thickness, inner, thickness, all), r, rd, all), 0, height / 2, -depth/2 + thickness/2},
	}
	carcassMeshes, carcassAtlas, err := packBoxes("carcass", carcass, PackConfig.StartSize)
	if err != nil {
		return nil, nil, err
	}
	body := geometry.Merge(carcassMeshes...)
	for _, m := range carcassMeshes {
		m.Release()
	}

	front := geometry.DefaultBoxParams(width, drawerHeight, thickness)
	front.Segments = v.Int("doorRoundDetail")
	if !simple {
		front.Roundness = v.F32("doorRoundness")
	}
	box := []boxPart{
		{"back", boxOf(drawerWidth, drawerHeight-2*thickness, thickness, all.Without(geometry.FaceYNeg)), 0, drawerHeight / 2, -depth/2 + thickness + thickness/2},
		{"bottom", boxOf(drawerWidth, thickness, depth-2*thickness, all), 0, thickness / 2, 0},
		{"sideL", boxOf(thickness, drawerHeight-2*thickness, depth-3*thickness, geometry.Faces(2, 3, 5)), -drawerWidth/2 + thickness/2, drawerHeight / 2, thickness / 2},
		{"sideR", boxOf(thickness, drawerHeight-2*thickness, depth-3*thickness, geometry.Faces(2, 3, 5)), drawerWidth/2 - thickness/2, drawerHeight / 2, thickness / 2},
		{"front", front, 0, drawerHeight / 2, depth/2 - thickness/2},
	}
	boxMeshes, boxAtlas, err := packBoxes("drawer", box, float64(depth+width/2))
	if err != nil {
		body.Release()
		return nil, nil, err
	}
	drawer := geometry.Merge(boxMeshes...)
	drawer.UVChannel = 1
	for _, m := range boxMeshes {
		m.Release()
	}

	var handle *geometry.Mesh
	if !simple {
		handle, err = drawerHandle(handleThickness, handleSize, v.Int("handleRoundDetail"))
		if err != nil {
			body.Release()
			drawer.Release()
			return nil, nil, err
		}
		handle.Translate(0, drawerHeight*handleHeight, depth/2-handleThickness/2)
	}

	parts := []Part{{Name: "body", Mesh: body.Translate(0, -height/2, 0)}}
	open := v.F32("openness") * (depth - 2*thickness)
	for i := 0; i < count; i++ {
		base := thickness + float32(i)*drawerHeight - height/2
		parts = append(parts, Part{
			Name: fmt.Sprintf("drawer_%d", i+1),
			Mesh: drawer.Clone().Translate(0, base, open),
		})
		if handle != nil {
			parts = append(parts, Part{
				Name: fmt.Sprintf("handle_%d", i+1),
				Mesh: handle.Clone().Translate(0, base, open),
			})
		}
	}
	drawer.Release()
	if handle != nil {
		handle.Release()
	}

	return parts, []Atlas{carcassAtlas, boxAtlas}, nil
}

func drawerHandle(thickness, size float32, detail int) (*geometry.Mesh, error) {
	t, g := thickness/2, thickness*0.2
	shape, err := geometry.NewRoundedShape([]geometry.Vertex{
		geometry.Pt(0, t),
		geometry.Pt(-t, t).Round(g).WithTex(0.2).Div(detail),
		geometry.Pt(-t, -t).Round(g).WithTex(0.4).Div(detail),
		geometry.Pt(t, -t).Round(g).WithTex(0.6).Div(detail),
		geometry.Pt(t, t).Round(g).WithTex(0.8).Div(detail),
		geometry.Pt(0, t),
	})
	if err != nil {
		return nil, err
	}

	reach := 0.2*size + t
	m, err := geometry.NewSmoothExtrude(shape, geometry.ExtrudeParams{
		Path: geometry.CubicBezier3{
			P0: pmath.Vec3{Y: size / 2},
			P1: pmath.Vec3{Y: size * 0.3, Z: reach},
			P2: pmath.Vec3{Y: -size * 0.3, Z: reach},
			P3: pmath.Vec3{Y: -size / 2},
		},
		Steps: 10,
	})
	if err != nil {
		return nil, err
	}
	m.UVChannel = 2
	return m.RotateZ(math32.Pi / 2), nil
}
