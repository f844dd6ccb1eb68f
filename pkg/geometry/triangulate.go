package geometry

import (
	"fmt"

	"github.com/hajimehoshi/go-libtess2"

	"github.com/Faultbox/propforge/pkg/math"
)

// Triangulate tessellates the polygon pts with the odd winding rule. It
// returns the tessellated vertices, which may merge repeated points or add
// points where edges cross, and triangle indices into them wound
// counter-clockwise whatever the polygon orientation. Zero-area triangles
// are dropped. Fewer than three points yield no triangles.
func Triangulate(pts []math.Vec2) ([]math.Vec2, []uint32, error) {
	if len(pts) < 3 {
		return nil, nil, nil
	}
	contour := make(libtess2.Contour, len(pts))
	for i, p := range pts {
		contour[i] = libtess2.Vertex{X: p.X, Y: p.Y}
	}
	elems, verts, err := libtess2.Tesselate([]libtess2.Contour{contour}, libtess2.WindingRuleOdd)
	if err != nil {
		return nil, nil, fmt.Errorf("triangulate %d points: %w", len(pts), err)
	}

	out := make([]math.Vec2, len(verts))
	for i, v := range verts {
		out[i] = math.Vec2{X: v.X, Y: v.Y}
	}
	tris := make([]uint32, 0, len(elems))
	for i := 0; i+2 < len(elems); i += 3 {
		a, b, c := elems[i], elems[i+1], elems[i+2]
		if a < 0 || b < 0 || c < 0 {
			continue
		}
		turn := out[b].Sub(out[a]).Cross(out[c].Sub(out[a]))
		switch {
		case turn > 0:
			tris = append(tris, uint32(a), uint32(b), uint32(c))
		case turn < 0:
			tris = append(tris, uint32(a), uint32(c), uint32(b))
		}
	}
	return out, tris, nil
}
