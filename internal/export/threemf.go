package export

import (
	"fmt"

	"github.com/hpinc/go3mf"

	"github.com/Faultbox/propforge/internal/assets"
)

// Model3MF converts parts into a 3MF model with one object and one build
// item per part. Units are meters.
func Model3MF(parts []assets.Part) *go3mf.Model {
	model := &go3mf.Model{Units: go3mf.UnitMeter}

	for i, p := range parts {
		id := uint32(i + 1)
		mesh := new(go3mf.Mesh)
		m := p.Mesh
		for v := 0; v < m.VertexCount(); v++ {
			pos := m.Position(v)
			mesh.Vertices.Vertex = append(mesh.Vertices.Vertex, go3mf.Point3D{pos.X, pos.Y, pos.Z})
		}
		for t := 0; t+2 < len(m.Indices); t += 3 {
			mesh.Triangles.Triangle = append(mesh.Triangles.Triangle, go3mf.Triangle{
				V1: m.Indices[t], V2: m.Indices[t+1], V3: m.Indices[t+2],
			})
		}
		model.Resources.Objects = append(model.Resources.Objects, &go3mf.Object{
			ID:   id,
			Name: p.Name,
			Type: go3mf.ObjectTypeModel,
			Mesh: mesh,
		})
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: id})
	}
	return model
}

// Write3MF writes parts to a 3MF package at path.
func Write3MF(path string, parts []assets.Part) error {
	w, err := go3mf.CreateWriter(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := w.Encode(Model3MF(parts)); err != nil {
		w.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return w.Close()
}
