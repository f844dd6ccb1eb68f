package assets

import (
	"fmt"

	"github.com/Faultbox/propforge/pkg/geometry"
)

var faceNames = [6]string{"Z-", "Z+", "X-", "X+", "Y-", "Y+"}

func faceFlags(prefix, folder string, chance float64) []Param {
	out := make([]Param, len(faceNames))
	for i, name := range faceNames {
		out[i] = flag(fmt.Sprintf("%s%d", prefix, i), folder, name, true, chance)
	}
	return out
}

func faceMask(v Values, prefix string) geometry.FaceMask {
	var m geometry.FaceMask
	for i := range m {
		m[i] = v.Bool(fmt.Sprintf("%s%d", prefix, i))
	}
	return m
}

// RoundBoxKind is a single beveled box with per-face switches.
var RoundBoxKind = &Kind{
	Name:  "roundbox",
	Title: "round box",
	Params: concat(
		[]Param{
			{Key: "x", Name: "x", Unit: Meter, Default: 1, Min: 0.1, Max: 1, Prec: 1},
			{Key: "y", Name: "y", Unit: Meter, Default: 1, Min: 0.1, Max: 1, Prec: 1},
			{Key: "z", Name: "z", Unit: Meter, Default: 1, Min: 0.1, Max: 1, Prec: 1},
		},
		faceFlags("f", "face", 1),
		faceFlags("r", "round", 0.7),
		faceFlags("c", "center", 1),
		[]Param{
			{Key: "roundness", Name: "roundness", Default: 0.2, Min: 0, Max: 1, Prec: 2},
			{Key: "roundDetail", Name: "bevel", Folder: "complexity", Unit: Count, Default: 3, Min: 1, Max: 10, Exp: true},
			flag("flat", "complexity", "flat", false, 0.3),
			flag("simple", "complexity", "simple", false, 0.3),
		},
	),
	build: buildRoundBox,
}

func buildRoundBox(v Values) ([]Part, []Atlas, error) {
	p := geometry.BoxParams{
		X:          v.F32("x"),
		Y:          v.F32("y"),
		Z:          v.F32("z"),
		Roundness:  v.F32("roundness"),
		Segments:   v.Int("roundDetail"),
		Faces:      faceMask(v, "f"),
		RoundFaces: faceMask(v, "r"),
		FillCenter: faceMask(v, "c"),
	}
	if v.Bool("simple") {
		p.Segments = 0
	}
	return []Part{{Name: "box", Mesh: geometry.NewRoundedBox(p)}}, nil, nil
}

func concat(groups ...[]Param) []Param {
	var out []Param
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
