package viewer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/propforge/pkg/geometry"
)

// vertexStride is position, normal and uv as float32.
const vertexStride = 8

// interleave packs a mesh into position/normal/uv vertex records.
func interleave(m *geometry.Mesh) []float32 {
	n := m.VertexCount()
	out := make([]float32, 0, n*vertexStride)
	for i := 0; i < n; i++ {
		out = append(out, m.Positions[3*i:3*i+3]...)
		out = append(out, m.Normals[3*i:3*i+3]...)
		out = append(out, m.UVs[2*i:2*i+2]...)
	}
	return out
}

// GPUMesh is a mesh uploaded to a vertex array.
type GPUMesh struct {
	Name    string
	Channel int

	vao, vbo, ebo uint32
	indexCount    int32
}

// Upload copies m into GPU buffers. Empty meshes get no buffers and draw
// nothing.
func Upload(name string, m *geometry.Mesh) *GPUMesh {
	g := &GPUMesh{Name: name, Channel: m.UVChannel}
	if len(m.Indices) == 0 {
		return g
	}
	verts := interleave(m)

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	stride := int32(vertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	g.indexCount = int32(len(m.Indices))

	gl.BindVertexArray(0)
	return g
}

func (g *GPUMesh) draw() {
	if g.vao == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
}

// Release frees the GPU buffers. It is safe to call twice.
func (g *GPUMesh) Release() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
	g.indexCount = 0
}
