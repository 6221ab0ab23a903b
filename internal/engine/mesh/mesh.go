// Package mesh builds procedural geometry and uploads it to the GPU.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/island/internal/engine/gfx"
)

// Vertex layout: position (3), normal (3), texcoord (2).
const (
	FloatsPerVertex = 8
	Stride          = FloatsPerVertex * 4
)

// Layout is the attribute layout shared by every mesh.
var Layout = []gfx.Attrib{
	{Index: 0, Size: 3, Offset: 0},
	{Index: 1, Size: 3, Offset: 3 * 4},
	{Index: 2, Size: 2, Offset: 6 * 4},
}

// Data is CPU-side geometry. Indices may be empty for unindexed triangles.
type Data struct {
	Name     string
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices in d.
func (d *Data) VertexCount() int {
	return len(d.Vertices) / FloatsPerVertex
}

// Position returns the position of vertex i.
func (d *Data) Position(i int) mgl32.Vec3 {
	o := i * FloatsPerVertex
	return mgl32.Vec3{d.Vertices[o], d.Vertices[o+1], d.Vertices[o+2]}
}

// Normal returns the normal of vertex i.
func (d *Data) Normal(i int) mgl32.Vec3 {
	o := i*FloatsPerVertex + 3
	return mgl32.Vec3{d.Vertices[o], d.Vertices[o+1], d.Vertices[o+2]}
}

// Bounds returns the axis-aligned bounding box of the vertex positions.
func (d *Data) Bounds() (lo, hi mgl32.Vec3) {
	n := d.VertexCount()
	if n == 0 {
		return lo, hi
	}
	lo, hi = d.Position(0), d.Position(0)
	for i := 1; i < n; i++ {
		p := d.Position(i)
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi
}

func (d *Data) add(pos, normal mgl32.Vec3, u, v float32) uint32 {
	idx := uint32(d.VertexCount())
	d.Vertices = append(d.Vertices,
		pos[0], pos[1], pos[2],
		normal[0], normal[1], normal[2],
		u, v,
	)
	return idx
}

// Mesh is geometry resident on the GPU.
type Mesh struct {
	dev     gfx.Device
	name    string
	vao     uint32
	vbo     uint32
	ebo     uint32
	count   int32
	indexed bool
}

// Upload copies d into a new vertex array.
func Upload(dev gfx.Device, d *Data) *Mesh {
	m := &Mesh{
		dev:  dev,
		name: d.Name,
		vao:  dev.GenVertexArray(),
		vbo:  dev.GenBuffer(),
	}

	dev.BindVertexArray(m.vao)
	dev.BufferVertices(m.vbo, d.Vertices, Stride, Layout)

	if len(d.Indices) > 0 {
		m.ebo = dev.GenBuffer()
		dev.BufferIndices(m.ebo, d.Indices)
		m.indexed = true
		m.count = int32(len(d.Indices))
	} else {
		m.count = int32(d.VertexCount())
	}

	dev.BindVertexArray(0)
	return m
}

// Draw issues one draw call for the whole mesh.
func (m *Mesh) Draw() {
	m.dev.BindVertexArray(m.vao)
	if m.indexed {
		m.dev.DrawElements(gfx.Triangles, m.count)
	} else {
		m.dev.DrawArrays(gfx.Triangles, 0, m.count)
	}
	m.dev.BindVertexArray(0)
}

// Name returns the geometry name.
func (m *Mesh) Name() string { return m.name }

// VAO returns the vertex array handle.
func (m *Mesh) VAO() uint32 { return m.vao }

// Count returns the number of vertices or indices drawn.
func (m *Mesh) Count() int32 { return m.count }

// Destroy releases GPU buffers. Safe to call more than once.
func (m *Mesh) Destroy() {
	if m.vao == 0 {
		return
	}
	m.dev.DeleteVertexArray(m.vao)
	m.dev.DeleteBuffer(m.vbo)
	if m.ebo != 0 {
		m.dev.DeleteBuffer(m.ebo)
	}
	m.vao, m.vbo, m.ebo = 0, 0, 0
}
