package water

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipPlanesAreNegations(t *testing.T) {
	for _, h := range []float32{0, 1.5, -3, 12.25} {
		reflection, refraction := ClipPlanes(h)
		for i := 0; i < 4; i++ {
			assert.Equal(t, reflection[i], -refraction[i], "h=%v component %d", h, i)
		}
		assert.Equal(t, reflection, refraction.Negate())
	}
}

func TestClipPlanesAtSeaLevel(t *testing.T) {
	reflection, _ := ClipPlanes(0)
	assert.Equal(t, ClipPlane{0, 1, 0, 0}, reflection)
}

func TestClipPlanesKeepCorrectSide(t *testing.T) {
	reflection, refraction := ClipPlanes(2)

	above := mgl32.Vec3{4, 5, -1}
	below := mgl32.Vec3{4, -1, -1}

	assert.True(t, reflection.Keeps(above))
	assert.False(t, reflection.Keeps(below))
	assert.False(t, refraction.Keeps(above))
	assert.True(t, refraction.Keeps(below))

	assert.InDelta(t, 3, reflection.Distance(above), 1e-6)
	assert.InDelta(t, -3, reflection.Distance(below), 1e-6)
}

func TestSamplingOffsetRange(t *testing.T) {
	speeds := []float64{DefaultWaveSpeed, 0.5, 1, 7.3}
	for _, speed := range speeds {
		period := 1 / speed
		// Sample several periods, including points right at and around each wrap.
		for k := 0.0; k < 5; k++ {
			for _, dt := range []float64{-1e-9, 0, 1e-9, 0.25, 0.5, 0.999999} {
				elapsed := k*period + dt*period
				if elapsed < 0 {
					continue
				}
				off := SamplingOffset(elapsed, speed)
				require.GreaterOrEqual(t, off, float32(0), "speed=%v t=%v", speed, elapsed)
				require.Less(t, off, float32(1), "speed=%v t=%v", speed, elapsed)
			}
		}
	}
}

func TestSamplingOffsetLongRuntime(t *testing.T) {
	// A week of uptime stays bounded.
	off := SamplingOffset(7*24*3600+0.5, 1)
	assert.InDelta(t, 0.5, off, 1e-4)
}

func TestSamplingOffsetNegativeTime(t *testing.T) {
	off := SamplingOffset(-0.25, 1)
	assert.InDelta(t, 0.75, off, 1e-6)
}

func TestSamplingOffsetDeterministic(t *testing.T) {
	assert.Equal(t, SamplingOffset(123.456, 0.03), SamplingOffset(123.456, 0.03))
}

func TestQuadVertices(t *testing.T) {
	require.Len(t, QuadVertices, 6*8)
	for v := 0; v < 6; v++ {
		base := v * 8
		assert.Zero(t, QuadVertices[base+1], "quad lies on y=0")
		assert.Equal(t, float32(1), QuadVertices[base+4], "normal points up")
		assert.Equal(t, float32(1), float32(math.Abs(float64(QuadVertices[base]))))
	}
}

func TestModelMatrix(t *testing.T) {
	m := ModelMatrix(2, 10)
	corner := m.Mul4x1(mgl32.Vec4{1, 0, -1, 1})
	assert.InDelta(t, 10, corner.X(), 1e-6)
	assert.InDelta(t, 2, corner.Y(), 1e-6)
	assert.InDelta(t, -10, corner.Z(), 1e-6)
}

func TestMirrorHeightInvolution(t *testing.T) {
	for _, y := range []float32{5, -2, 0.1} {
		assert.InDelta(t, y, MirrorHeight(MirrorHeight(y, 1.5), 1.5), 1e-5)
	}
	assert.Equal(t, float32(-5), MirrorHeight(5, 0))
}
