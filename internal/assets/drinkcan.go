package assets

import (
	"github.com/Faultbox/propforge/pkg/geometry"
	pmath "github.com/Faultbox/propforge/pkg/math"
	"github.com/Faultbox/propforge/pkg/units"
)

// DrinkCanKind is a lathed can with a lid disc and an optional pull tab.
// Body, lid and tab use UV channels 0, 1 and 2.
var DrinkCanKind = &Kind{
	Name:  "drinkcan",
	Title: "drink can",
	Params: []Param{
		{Key: "canHeight", Name: "height", Folder: "can", Unit: Centimeter, Default: 12, Min: 5, Max: 20, Prec: 1},
		{Key: "canSize", Name: "size", Folder: "can", Unit: Centimeter, Default: 6, Min: 5, Max: 8, Prec: 1},

		{Key: "neckHeight", Name: "height", Folder: "neck", Unit: Centimeter, Default: 1.5, Min: 1, Max: 3, Prec: 1},
		{Key: "neckSize", Name: "size", Folder: "neck", Unit: Centimeter, Default: 5, Min: 4, Max: 9, Prec: 1},

		{Key: "canComplexity", Name: "can", Folder: "complexity", Unit: Count, Default: 50, Min: 8, Max: 120, Exp: true},
		flag("hasTag", "complexity", "3d tag", true, 0.7),
		flag("flat", "complexity", "flat", false, 0.3),
		flag("simple", "complexity", "simple", false, 0.3),
	},
	build: buildDrinkCan,
}

// Fixed can details, in meters.
const (
	canInset     = 0.005  // outer inset of neck and base
	canLip       = 0.0015 // lip width
	canLidDepth  = 0.003  // inner inset of neck and base
	canEdgeRound = 0.001
	tabDepth     = 0.001
)

func buildDrinkCan(v Values) ([]Part, []Atlas, error) {
	simple := v.Bool("simple")

	cH := v.Cm("canHeight")
	cS := v.Cm("canSize") / 2
	nH := v.Cm("neckHeight")
	nS := min(v.Cm("neckSize")/2, cS)
	nK, nP, nL, cG := float32(canInset), float32(canLip), float32(canLidDepth), float32(canEdgeRound)

	cC := v.Int("canComplexity")
	tC := int(units.Map(v.Float("canComplexity"), 4, 30, 8, 120))

	var profile []geometry.Vertex
	if simple {
		profile = []geometry.Vertex{
			geometry.Pt(0, 0),
			geometry.Pt(nS*0.95, 0),
			geometry.Pt(nS, 0),
			geometry.Pt(cS, nK).WithTex(0.15),
			geometry.Pt(cS, cH-nH).WithTex(0.85).When(cS != nS),
			geometry.Pt(nS, cH),
		}
	} else {
		profile = []geometry.Vertex{
			geometry.Pt(0, 2*nL),
			geometry.Pt(nS-2*nP, 2*nL).Round(nS),
			geometry.Pt(nS-2*nP, 0).Round(cG),
			geometry.Pt(nS-nP, 0).Round(cG),
			geometry.Pt(nS-nP, nK/2).Round(nS),
			geometry.Pt(cS, nK).Round(cG).WithTex(0.15),
			geometry.Pt(cS, cH-nH).Round(2 * cG).When(cS != nS),
			geometry.Pt(nS, cH-2*nP).Round(cG),
			geometry.Pt(nS, cH).Round(cG),
			geometry.Pt(nS-nP, cH).Round(cG),
			geometry.Pt(nS-nP, cH-nL),
		}
	}

	body, err := geometry.NewLatheUV(profile, geometry.LatheParams{Segments: cC})
	if err != nil {
		return nil, nil, err
	}

	lidR, lidY := nS-nP/2, cH-nL
	if simple {
		lidR, lidY = nS, cH
	}
	lid, err := canLid(lidR, cC)
	if err != nil {
		body.Release()
		return nil, nil, err
	}
	lid.Translate(0, lidY, 0)

	parts := []Part{{Name: "body", Mesh: body}, {Name: "lid", Mesh: lid}}

	if v.Bool("hasTag") {
		y := cH + 0.0005
		if !simple {
			y -= nL
		}
		tag, err := canTab(nS, tC)
		if err != nil {
			body.Release()
			lid.Release()
			return nil, nil, err
		}
		parts = append(parts, Part{Name: "tag", Mesh: tag.Translate(0, y, 0)})
	}

	for _, p := range parts {
		p.Mesh.Translate(0, -cH/2, 0)
	}
	return parts, nil, nil
}

// canLid is an upward facing disc with planar UVs covering the unit square.
func canLid(radius float32, segments int) (*geometry.Mesh, error) {
	lid, err := geometry.NewLatheUV([]geometry.Vertex{geometry.Pt(radius, 0), geometry.Pt(0, 0)},
		geometry.LatheParams{Segments: segments})
	if err != nil {
		return nil, err
	}
	lid.UVChannel = 1
	// U follows +X and V follows -Z when looking down.
	geometry.ProjectUVs(lid, pmath.Vec3{Y: 1}, pmath.Vec3{Z: -1}, pmath.Vec2{})
	geometry.TransformUVs(lid, pmath.Translate2D(0.5, 0.5).Mul(pmath.Scale2D(1/(2*radius), 1/(2*radius))))
	return lid, nil
}

// canTab is the pull tab, a thin rounded plate lying on the lid.
func canTab(neck float32, divisions int) (*geometry.Mesh, error) {
	size := 0.7 * neck
	width := 0.4 * neck
	pad := 0.07 * neck
	hole := width - 2*pad
	round := 0.4 * width

	lo := -hole/2 - pad
	hi := lo + size
	mid := (lo + hi) / 2

	shape, err := geometry.NewRoundedShape([]geometry.Vertex{
		geometry.Pt(width/2, mid),
		geometry.Pt(width/2, hi).Round(round),
		geometry.Pt(-width/2, hi).Round(round),
		geometry.Pt(-width/2, lo).Round(round),
		geometry.Pt(width/2, lo).Round(round),
		geometry.Pt(width/2, mid),
	})
	if err != nil {
		return nil, err
	}

	tab, err := geometry.NewSmoothExtrude(shape, geometry.ExtrudeParams{
		Path:      geometry.Line3{To: pmath.Vec3{Y: tabDepth}},
		Steps:     1,
		Caps:      [2]bool{true, true},
		Divisions: divisions,
	})
	if err != nil {
		return nil, err
	}
	tab.UVChannel = 2
	return tab.Translate(hole*0.26, 0, 0), nil
}
