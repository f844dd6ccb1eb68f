package assets

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/propforge/pkg/geometry"
	pmath "github.com/Faultbox/propforge/pkg/math"
	"github.com/Faultbox/propforge/pkg/units"
)

// MugKind is a lathed mug with a swept handle. The body uses UV channel 0
// and the handle channel 1.
var MugKind = &Kind{
	Name: "mug",
	Params: []Param{
		{Key: "mugHeight", Name: "height", Folder: "mug", Unit: Centimeter, Default: 10, Min: 7, Max: 20, Prec: 2},
		{Key: "mugSize", Name: "size", Folder: "mug", Unit: Centimeter, Default: 8, Min: 6, Max: 12, Prec: 2},
		{Key: "mugShape", Name: "shape", Folder: "mug", Unit: Degree, Default: 0, Min: -15, Max: 15, Prec: 2},
		{Key: "mugWidth", Name: "width", Folder: "mug", Unit: Centimeter, Default: 0.4, Min: 0.3, Max: 1, Prec: 2},

		{Key: "handlePosition", Name: "position", Folder: "handle", Unit: Percent, Default: 20, Min: -100, Max: 100, Prec: 2},
		{Key: "handleHeight", Name: "height", Folder: "handle", Unit: Centimeter, Default: 6, Min: 3, Max: 18, Prec: 2},
		{Key: "handleSize", Name: "size", Folder: "handle", Unit: Centimeter, Default: 7, Min: 3, Max: 10, Prec: 2},
		{Key: "handleShape", Name: "shape", Folder: "handle", Unit: Degree, Default: 20, Min: -80, Max: 80, Prec: 2},
		{Key: "handleWidth", Name: "width", Folder: "handle", Unit: Centimeter, Default: 1.5, Min: 1, Max: 2, Prec: 2},
		{Key: "handleThickness", Name: "thickness", Folder: "handle", Unit: Centimeter, Default: 0.6, Min: 0.3, Max: 1, Prec: 2},

		{Key: "mugComplexity", Name: "mug", Folder: "complexity", Unit: Count, Default: 50, Min: 8, Max: 100},
		{Key: "handleComplexity", Name: "handle", Folder: "complexity", Unit: Count, Default: 30, Min: 5, Max: 100},

		flag("flat", "complexity", "flat", false, 0.3),
		flag("simple", "complexity", "simple", false, 0.3),
	},
	build: buildMug,
	tweak: func(r *rand.Rand, v Values) {
		// Sums of two draws favour mid-range complexity.
		v["mugComplexity"] = units.Random(r, 0, 50, 0) + units.Random(r, 0, 50, 0)
		v["handleComplexity"] = units.Random(r, 0, 50, 0) + units.Random(r, 0, 50, 0)
	},
}

func buildMug(v Values) ([]Part, []Atlas, error) {
	simple := v.Bool("simple")

	mH := v.Cm("mugHeight")
	mS := v.Cm("mugSize")
	mSh := v.Slope("mugShape")
	mW := v.Cm("mugWidth")
	mBot := mS / 2 * (1 - mSh)
	mTop := mS / 2 * (1 + mSh)

	hH := min(v.Cm("handleHeight"), mH-0.02)
	hS := v.Cm("handleSize")
	hSh := v.Slope("handleShape")
	hW := v.Cm("handleWidth") / 2
	hT := v.Cm("handleThickness") / 2
	hP := float32(units.Map(v.Float("handlePosition"), float64(hH/2+0.01), float64(mH-hH/2-0.01), -100, 100))

	hBot := hS / 2 * (1 - hSh)
	hTop := hS / 2 * (1 + hSh)
	hBotH := hP - hH/2
	hTopH := hP + hH/2

	mC := v.Int("mugComplexity")
	hC := v.Int("handleComplexity")

	var mG, hG float32
	if !simple {
		mG = min(0.01, 0.48*mW)
		hG = 0.48 * min(hW, hT)
	}

	var profile []geometry.Vertex
	if simple {
		profile = []geometry.Vertex{
			geometry.Pt(0, 0),
			geometry.Pt(mBot*0.9, 0),
			geometry.Pt(mBot, 0).WithTex(0.1),
			geometry.Pt(mTop, mH).WithTex(0.5),
			geometry.Pt(mTop-mW, mH),
			geometry.Pt(mBot-mW, mW).WithTex(0.9),
			geometry.Pt(mBot-mW*1.1, mW),
			geometry.Pt(0, mW),
		}
	} else {
		profile = []geometry.Vertex{
			geometry.Pt(0, mW/4),
			geometry.Pt(mBot-2*mW, mW/4).Round(mG),
			geometry.Pt(mBot-mW, 0).Round(mG),
			geometry.Pt(mBot, 0).Round(2 * mG).WithTex(0.1),
			geometry.Pt(mTop, mH).Round(mG).WithTex(0.5),
			geometry.Pt(mTop-mW, mH).Round(mG),
			geometry.Pt(mBot-mW, mW).Round(2 * mG).WithTex(0.9),
			geometry.Pt(0, mW),
		}
	}

	body, err := geometry.NewLatheUV(profile, geometry.LatheParams{Segments: mC})
	if err != nil {
		return nil, nil, err
	}
	// Turn the body so a face, not an edge, points at the handle, and
	// shift U by half a segment to match.
	geometry.TransformUVs(body, pmath.Translate2D(1/float32(mC)/2, 0))
	body.RotateY(math32.Pi/2 + math32.Pi/float32(mC))

	shape, err := geometry.NewRoundedShape([]geometry.Vertex{
		geometry.Pt(0, hT),
		geometry.Pt(-hW, hT).Round(hG),
		geometry.Pt(-hW, -hT).Round(hG),
		geometry.Pt(hW, -hT).Round(hG),
		geometry.Pt(hW, hT).Round(hG),
		geometry.Pt(0, hT),
	})
	if err != nil {
		return nil, nil, err
	}

	// The polygonal body is smaller than the ideal radius.
	apothem := math32.Cos(math32.Pi / float32(mC))
	hBotX := float32(units.Map(float64(hBotH), float64(mBot), float64(mTop), 0, float64(mH)))*apothem - 0.0013
	hTopX := float32(units.Map(float64(hTopH), float64(mBot), float64(mTop), 0, float64(mH)))*apothem - 0.0013
	hMaxX := max(hBotX, hTopX)

	handle, err := geometry.NewSmoothExtrude(shape, geometry.ExtrudeParams{
		Path: geometry.CubicBezier3{
			P0: pmath.Vec3{X: hBotX, Y: hBotH},
			P1: pmath.Vec3{X: hMaxX + hBot, Y: hBotH},
			P2: pmath.Vec3{X: hMaxX + hTop, Y: hTopH},
			P3: pmath.Vec3{X: hTopX, Y: hTopH},
		},
		Steps: hC,
	})
	if err != nil {
		body.Release()
		return nil, nil, err
	}
	handle.UVChannel = 1

	body.Translate(0, -mH/2, 0)
	handle.Translate(0, -mH/2, 0)

	return []Part{
		{Name: "body", Mesh: body},
		{Name: "handle", Mesh: handle},
	}, nil, nil
}
