// Package export writes generated parts and atlas layouts to disk formats.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/propforge/internal/assets"
)

// WriteOBJ writes parts as Wavefront OBJ objects. Each part becomes an "o"
// group with a "usemtl uvN" line naming its UV channel, so parts that share
// an atlas share a material.
func WriteOBJ(w io.Writer, name string, parts []assets.Part) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", name)

	// OBJ indices are 1-based and global to the file.
	base := 1
	for _, p := range parts {
		m := p.Mesh
		if err := m.Validate(); err != nil {
			return fmt.Errorf("part %s: %w", p.Name, err)
		}

		fmt.Fprintf(bw, "o %s\n", objName(p.Name))
		fmt.Fprintf(bw, "usemtl uv%d\n", m.UVChannel)
		for i := 0; i < m.VertexCount(); i++ {
			v := m.Position(i)
			fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
		}
		for i := 0; i < m.VertexCount(); i++ {
			uv := m.UV(i)
			fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
		}
		for i := 0; i < m.VertexCount(); i++ {
			n := m.Normal(i)
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}
		for t := 0; t+2 < len(m.Indices); t += 3 {
			a := base + int(m.Indices[t])
			b := base + int(m.Indices[t+1])
			c := base + int(m.Indices[t+2])
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		base += m.VertexCount()
	}
	return bw.Flush()
}

func objName(s string) string {
	return strings.Join(strings.Fields(s), "_")
}
