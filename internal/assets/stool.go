package assets

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/propforge/pkg/binpack"
	"github.com/Faultbox/propforge/pkg/geometry"
	pmath "github.com/Faultbox/propforge/pkg/math"
)

// StoolKind is a round seat on swept legs. One leg and the seat are packed
// into a single atlas that every leg shares.
var StoolKind = &Kind{
	Name: "stool",
	Params: []Param{
		{Key: "legWidth", Name: "width", Folder: "legs", Unit: Centimeter, Default: 10, Min: 2, Max: 30, Prec: 2},
		{Key: "legThickness", Name: "thickness", Folder: "legs", Unit: Centimeter, Default: 10, Min: 2, Max: 30, Prec: 2},
		{Key: "legRoundness", Name: "roundness", Folder: "legs", Unit: Meter, Default: 0.04, Min: 0, Max: 0.1, Prec: 2},
		{Key: "legCount", Name: "count", Folder: "legs", Unit: Count, Default: 4, Min: 3, Max: 6},
		{Key: "legOffset", Name: "offset", Folder: "legs", Unit: Centimeter, Default: 10, Min: 0, Max: 100, Prec: 2},
		{Key: "legSpread", Name: "spread", Folder: "legs", Unit: Centimeter, Default: 50, Min: 0, Max: 100, Prec: 2},
		{Key: "legAngle", Name: "angle", Folder: "legs", Unit: Degree, Default: 0, Min: 0, Max: 90, Prec: 2},
		{Key: "legShape", Name: "shape", Folder: "legs", Default: 0.6, Min: 0, Max: 0.9, Prec: 2},
		{Key: "seatSize", Name: "size", Folder: "seat", Unit: Centimeter, Default: 50, Min: 10, Max: 100, Prec: 2},
		{Key: "seatHeight", Name: "height", Folder: "seat", Unit: Centimeter, Default: 100, Min: 10, Max: 100, Prec: 2},
		{Key: "seatThickness", Name: "thickness", Folder: "seat", Unit: Centimeter, Default: 10, Min: 10, Max: 100, Prec: 2},

		{Key: "legDetail", Name: "legs", Folder: "complexity", Unit: Count, Default: 10, Min: 5, Max: 30, Exp: true},
		{Key: "legRoundDetail", Name: "legs bevel", Folder: "complexity", Unit: Count, Default: 3, Min: 1, Max: 10, Exp: true},
		{Key: "seatDetail", Name: "seat", Folder: "complexity", Unit: Count, Default: 30, Min: 6, Max: 50, Exp: true},

		flag("flat", "complexity", "flat", false, 0.3),
		flag("simple", "complexity", "simple", false, 0.3),
	},
	build: buildStool,
}

func buildStool(v Values) ([]Part, []Atlas, error) {
	size := v.Cm("seatSize")
	height := v.Cm("seatHeight")
	thickness := min(height, v.Cm("seatThickness"))

	legWidth := v.Cm("legWidth")
	legThickness := v.Cm("legThickness")
	legRoundness := v.F32("legRoundness")
	if v.Bool("simple") {
		legRoundness = 0
	}
	legCount := v.Int("legCount")
	legOffset := min(size-legThickness, v.Cm("legOffset"))
	legSpread := v.Cm("legSpread")
	legAngle := v.F32("legAngle") / 180 * math32.Pi
	legShape := v.F32("legShape")
	detail := v.Int("legRoundDetail")

	shape, err := geometry.NewRoundedShape([]geometry.Vertex{
		geometry.Pt(0, legThickness),
		geometry.Pt(-legWidth, legThickness).Round(legRoundness).WithTex(0.2).Div(detail),
		geometry.Pt(-legWidth, -legThickness).Round(legRoundness).WithTex(0.4).Div(detail),
		geometry.Pt(legWidth, -legThickness).Round(legRoundness).WithTex(0.6).Div(detail),
		geometry.Pt(legWidth, legThickness).Round(legRoundness).WithTex(0.8).Div(detail),
		geometry.Pt(0, legThickness),
	})
	if err != nil {
		return nil, nil, err
	}

	a := math32.Cos(legAngle) * legShape
	b := math32.Sin(legAngle) * legShape
	top := height - thickness
	if legShape != 0 {
		top -= legThickness * math32.Sin(legAngle)
	}

	leg := geometry.ExtrudeParams{
		Path: geometry.CubicBezier3{
			P0: pmath.Vec3{X: -legOffset, Y: top},
			P1: pmath.Vec3{X: -(legOffset + b), Y: top * (1 - a)},
			P2: pmath.Vec3{X: -legSpread, Y: top * legShape},
			P3: pmath.Vec3{X: -legSpread},
		},
		Steps: v.Int("legDetail"),
		Caps:  [2]bool{true, true},
	}
	seat := geometry.CylinderParams{
		RadiusTop:      size,
		RadiusBottom:   size,
		Height:         thickness,
		RadialSegments: v.Int("seatDetail"),
	}

	reqs := append(geometry.ExtrudeFootprints("leg", shape, leg), geometry.CylinderFootprints("seat", seat)...)
	res, err := binpack.MinimalPacking(reqs, PackConfig.StartSize, PackConfig.PackOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("packing stool: %w", err)
	}
	leg.AtlasUV = res.FaceUV("leg", 3)
	seat.AtlasUV = res.FaceUV("seat", 3)

	legMesh, err := geometry.NewSmoothExtrude(shape, leg)
	if err != nil {
		return nil, nil, err
	}

	var parts []Part
	for i := 0; i < legCount; i++ {
		m := legMesh.Clone().RotateY(float32(i) * 2 * math32.Pi / float32(legCount))
		parts = append(parts, Part{Name: fmt.Sprintf("leg_%d", i), Mesh: m.Translate(0, -height/2, 0)})
	}
	legMesh.Release()

	seatMesh := geometry.NewUVCylinder(seat).Translate(0, height/2-thickness/2, 0)
	parts = append(parts, Part{Name: "seat", Mesh: seatMesh})

	return parts, []Atlas{{Name: "stool", Result: res}}, nil
}
