package assets

import (
	"github.com/Faultbox/propforge/pkg/geometry"
)

// WineGlassKind is a single lathed glass on UV channel 0. The profile pins
// V at the base, the stem and the rim so the bowl gets most of the texture.
var WineGlassKind = &Kind{
	Name: "wineglass",
	Params: []Param{
		{Key: "baseSize", Name: "size", Folder: "base", Unit: Centimeter, Default: 2.5, Min: 1, Max: 3, Prec: 1},
		{Key: "baseThickness", Name: "thickness", Folder: "base", Unit: Centimeter, Default: 0.3, Min: 0.1, Max: 0.5, Prec: 2},
		{Key: "stemSize", Name: "size", Folder: "stem", Unit: Centimeter, Default: 0.2, Min: 0.1, Max: 0.4, Prec: 2},
		{Key: "stemHeight", Name: "height", Folder: "stem", Unit: Centimeter, Default: 5, Min: 2, Max: 10, Prec: 1},
		{Key: "bowlSize", Name: "size", Folder: "bowl", Unit: Centimeter, Default: 3, Min: 1, Max: 4, Prec: 1},
		{Key: "bowlHeight", Name: "height", Folder: "bowl", Unit: Centimeter, Default: 5, Min: 3, Max: 7, Prec: 1},
		{Key: "bowlShape", Name: "shape", Folder: "bowl", Unit: Percent, Default: 40, Min: 10, Max: 90, Prec: 0},
		{Key: "bowlThickness", Name: "thickness", Folder: "bowl", Unit: Centimeter, Default: 0.1, Min: 0.05, Max: 0.3, Prec: 2},
		{Key: "rimSize", Name: "rim size", Folder: "bowl", Unit: Centimeter, Default: 2.1, Min: 1, Max: 4, Prec: 1},
		{Key: "roundness", Name: "bevel size", Folder: "bowl", Unit: Number, Default: 0.02, Min: 0, Max: 0.03, Prec: 3},

		{Key: "bevelDetail", Name: "bevels", Folder: "complexity", Unit: Count, Default: 6, Min: 1, Max: 10},
		{Key: "latheDetail", Name: "lathe", Folder: "complexity", Unit: Count, Default: 30, Min: 6, Max: 50},

		flag("flat", "complexity", "flat", false, 0.3),
		flag("simple", "complexity", "simple", false, 0.3),
	},
	build: buildWineGlass,
}

func buildWineGlass(v Values) ([]Part, []Atlas, error) {
	baseSize := v.Cm("baseSize")
	baseT := v.Cm("baseThickness")
	stemSize := v.Cm("stemSize")
	stemH := v.Cm("stemHeight")
	bowlSize := v.Cm("bowlSize")
	bowlH := v.Cm("bowlHeight")
	bowlT := v.Cm("bowlThickness")
	rimSize := v.Cm("rimSize")
	shape := v.F32("bowlShape") / 100

	var r float32
	if !v.Bool("simple") {
		r = v.F32("roundness")
	}
	d := v.Int("bevelDetail")
	rimD := (d + 1) / 2
	top := stemH + bowlH
	belly := stemH + bowlH*shape

	profile := []geometry.Vertex{
		geometry.Pt(0, 0),
		geometry.Pt(baseSize, 0).WithTex(0.1),
		geometry.Pt(baseSize*0.9, baseT).Round(r).WithTex(0.14).Div(d),
		geometry.Pt(stemSize, baseT).Round(r).WithTex(0.2).Div(d),
		geometry.Pt(stemSize, stemH/2).Round(r).Div(d),
		geometry.Pt(stemSize*1.2, stemH).Round(r).WithTex(0.5).Div(d),
		geometry.Pt(bowlSize, belly).Round(r).Div(d),
		geometry.Pt(rimSize, top).Round(bowlT / 2).WithTex(0.8).Div(rimD),
		geometry.Pt(rimSize-bowlT, top).Round(bowlT / 2).Div(rimD),
		geometry.Pt(bowlSize-bowlT, belly).Round(r).Div(d),
		geometry.Pt(0, stemH),
	}

	body, err := geometry.NewLatheUV(profile, geometry.LatheParams{Segments: v.Int("latheDetail")})
	if err != nil {
		return nil, nil, err
	}
	body.Translate(0, -top/2, 0)
	return []Part{{Name: "body", Mesh: body}}, nil, nil
}
