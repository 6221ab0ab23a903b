package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/island/internal/engine/gfx/gfxtest"
)

func checkIndices(t *testing.T, d *Data) {
	t.Helper()
	require.Zero(t, len(d.Indices)%3, "%s: index count not a multiple of 3", d.Name)
	n := uint32(d.VertexCount())
	for _, i := range d.Indices {
		require.Less(t, i, n, "%s: index out of range", d.Name)
	}
}

func checkNormals(t *testing.T, d *Data) {
	t.Helper()
	for i := 0; i < d.VertexCount(); i++ {
		assert.InDelta(t, 1, d.Normal(i).Len(), 1e-4, "%s vertex %d", d.Name, i)
	}
}

func TestCube(t *testing.T) {
	d := Cube(2)
	assert.Equal(t, 24, d.VertexCount())
	assert.Len(t, d.Indices, 36)
	checkIndices(t, d)
	checkNormals(t, d)

	lo, hi := d.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, lo)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, hi)
}

func TestCylinder(t *testing.T) {
	d := Cylinder(0.5, 4, 8)
	assert.Equal(t, 18, d.VertexCount())
	assert.Len(t, d.Indices, 8*6)
	checkIndices(t, d)
	checkNormals(t, d)

	lo, hi := d.Bounds()
	assert.InDelta(t, 0, lo.Y(), 1e-6)
	assert.InDelta(t, 4, hi.Y(), 1e-6)
}

func TestCone(t *testing.T) {
	d := Cone(2, 1, 2) // clamped to 3 segments
	assert.Len(t, d.Indices, 3*3)
	checkIndices(t, d)
	checkNormals(t, d)
}

func TestIsland(t *testing.T) {
	d := Island(10, 3, 2, 4, 16)
	checkIndices(t, d)
	checkNormals(t, d)

	assert.Equal(t, 1+4*17, d.VertexCount())
	assert.Len(t, d.Indices, 16*3+3*16*6)

	lo, hi := d.Bounds()
	assert.InDelta(t, 3, hi.Y(), 1e-5)
	assert.InDelta(t, -2, lo.Y(), 1e-5)

	// Part of the island must sit below the water line.
	assert.Less(t, lo.Y(), float32(0))
}

func TestBoundsEmpty(t *testing.T) {
	lo, hi := (&Data{}).Bounds()
	assert.Equal(t, mgl32.Vec3{}, lo)
	assert.Equal(t, mgl32.Vec3{}, hi)
}

func TestUploadIndexed(t *testing.T) {
	dev := gfxtest.New()

	m := Upload(dev, Cube(1))
	assert.Equal(t, "cube", m.Name())
	assert.Equal(t, int32(36), m.Count())
	assert.Equal(t, 1, dev.Live("VertexArray"))
	assert.Equal(t, 2, dev.Live("Buffer"))

	m.Draw()
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, m.VAO(), dev.Draws[0].VAO)
	assert.Equal(t, int32(36), dev.Draws[0].Count)
	assert.Equal(t, 1, dev.Count("DrawElements"))
	assert.Zero(t, dev.VAO, "vertex array must be unbound after drawing")

	m.Destroy()
	assert.NotPanics(t, m.Destroy)
	assert.Zero(t, dev.Live("VertexArray"))
	assert.Zero(t, dev.Live("Buffer"))
}

func TestUploadUnindexed(t *testing.T) {
	dev := gfxtest.New()

	verts := make([]float32, 6*FloatsPerVertex)
	m := Upload(dev, FromVertices("quad", verts))
	assert.Equal(t, int32(6), m.Count())
	assert.Equal(t, 1, dev.Live("Buffer"))

	m.Draw()
	assert.Equal(t, 1, dev.Count("DrawArrays"))
	assert.Zero(t, dev.Count("DrawElements"))

	m.Destroy()
	assert.Zero(t, dev.Live("Buffer"))
}
