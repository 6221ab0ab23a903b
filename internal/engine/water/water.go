// Package water provides water plane geometry, clip planes and ripple animation.
package water

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ClipPlane is a plane a*x + b*y + c*z + d = 0. Points with a negative
// distance are clipped by the rasterizer.
type ClipPlane mgl32.Vec4

// Vec4 returns the plane as a shader-ready vector.
func (p ClipPlane) Vec4() mgl32.Vec4 {
	return mgl32.Vec4(p)
}

// Negate returns the plane facing the opposite side.
func (p ClipPlane) Negate() ClipPlane {
	return ClipPlane{-p[0], -p[1], -p[2], -p[3]}
}

// Distance returns the signed distance of a world point to the plane.
func (p ClipPlane) Distance(point mgl32.Vec3) float32 {
	return mgl32.Vec4(p).Dot(point.Vec4(1))
}

// Keeps reports whether a world point survives clipping.
func (p ClipPlane) Keeps(point mgl32.Vec3) bool {
	return p.Distance(point) >= 0
}

// ClipPlanes returns the clip planes for water at height h.
// The reflection plane faces up and culls everything below the surface;
// the refraction plane is its exact negation and culls everything above.
func ClipPlanes(h float32) (reflection, refraction ClipPlane) {
	reflection = ClipPlane{0, 1, 0, -h}
	return reflection, reflection.Negate()
}

// SamplingOffset returns the ripple texture offset for the given elapsed
// time in seconds. The result wraps into [0, 1) so that long runtimes do
// not lose precision.
func SamplingOffset(elapsed, waveSpeed float64) float32 {
	_, frac := math.Modf(elapsed * waveSpeed)
	if frac < 0 {
		frac++
	}
	offset := float32(frac)
	// Values just below 1 can round up when narrowed to float32.
	if offset >= 1 {
		offset = 0
	}
	return offset
}

// QuadVertices is the water plane in local space: two triangles on y=0
// spanning [-1, 1] in X and Z, with an up normal and texture coordinates.
// Layout matches mesh vertices: position(3), normal(3), uv(2).
var QuadVertices = []float32{
	-1, 0, -1, 0, 1, 0, 0, 0,
	1, 0, -1, 0, 1, 0, 1, 0,
	1, 0, 1, 0, 1, 0, 1, 1,
	-1, 0, -1, 0, 1, 0, 0, 0,
	1, 0, 1, 0, 1, 0, 1, 1,
	-1, 0, 1, 0, 1, 0, 0, 1,
}

// ModelMatrix places the local quad at height h scaled to half-extent size.
func ModelMatrix(h, size float32) mgl32.Mat4 {
	return mgl32.Translate3D(0, h, 0).Mul4(mgl32.Scale3D(size, 1, size))
}

// MirrorHeight reflects a Y coordinate across the water plane at height h.
func MirrorHeight(y, h float32) float32 {
	return 2*h - y
}

// DefaultWaveSpeed is the ripple speed used when the config does not set one.
const DefaultWaveSpeed = 0.03
