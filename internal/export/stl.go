package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/Faultbox/propforge/internal/assets"
)

// WriteSTL writes every part into one binary STL solid. UVs and vertex
// normals are dropped; each facet carries its face normal.
func WriteSTL(w io.Writer, name string, parts []assets.Part) error {
	var count uint32
	for _, p := range parts {
		count += uint32(p.Mesh.TriangleCount())
	}

	bw := bufio.NewWriter(w)
	var header [80]byte
	copy(header[:], fmt.Sprintf("propforge %s", name))
	bw.Write(header[:])
	if err := binary.Write(bw, binary.LittleEndian, count); err != nil {
		return err
	}

	var rec [50]byte
	putVec := func(off int, x, y, z float32) {
		binary.LittleEndian.PutUint32(rec[off:], math.Float32bits(x))
		binary.LittleEndian.PutUint32(rec[off+4:], math.Float32bits(y))
		binary.LittleEndian.PutUint32(rec[off+8:], math.Float32bits(z))
	}
	for _, p := range parts {
		m := p.Mesh
		for t := 0; t+2 < len(m.Indices); t += 3 {
			a, b, c := m.Position(int(m.Indices[t])), m.Position(int(m.Indices[t+1])), m.Position(int(m.Indices[t+2]))
			n := b.Sub(a).Cross(c.Sub(a)).Normalize()
			putVec(0, n.X, n.Y, n.Z)
			putVec(12, a.X, a.Y, a.Z)
			putVec(24, b.X, b.Y, b.Z)
			putVec(36, c.X, c.Y, c.Z)
			if _, err := bw.Write(rec[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
