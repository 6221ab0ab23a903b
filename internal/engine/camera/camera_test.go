package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/island/internal/config"
	"github.com/Faultbox/island/internal/engine/water"
)

func TestNewLooksDownNegativeZ(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 0}, -90, 0)
	assert.True(t, c.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-6))
	assert.True(t, c.Right.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-6))
	assert.True(t, c.Up.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-6))
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default().Camera
	cfg.Zoom = 90

	c := FromConfig(cfg)
	assert.Equal(t, mgl32.Vec3{5, 5, 10}, c.Position)
	assert.Equal(t, cfg.Speed, c.Speed)
	assert.Equal(t, float32(MaxZoom), c.Zoom)
}

func TestProcessKeyboard(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 0}, -90, 0)
	c.Speed = 10

	c.ProcessKeyboard(Forward, 0.5)
	assert.True(t, c.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, -5}, 1e-5))

	c.ProcessKeyboard(Right, 0.1)
	assert.True(t, c.Position.ApproxEqualThreshold(mgl32.Vec3{1, 0, -5}, 1e-5))

	c.ProcessKeyboard(Up, 0.2)
	assert.InDelta(t, 2, c.Position.Y(), 1e-5)
}

func TestPitchClamp(t *testing.T) {
	c := New(mgl32.Vec3{}, -90, 0)
	c.ProcessMouseMovement(0, 10000, true)
	assert.Equal(t, float32(89), c.Pitch)

	c.ProcessMouseMovement(0, -20000, true)
	assert.Equal(t, float32(-89), c.Pitch)

	c.ProcessMouseMovement(0, -1000, false)
	assert.Less(t, c.Pitch, float32(-89))
}

func TestScrollZoomClamp(t *testing.T) {
	c := New(mgl32.Vec3{}, -90, 0)
	c.ProcessMouseScroll(100)
	assert.Equal(t, float32(MinZoom), c.Zoom)

	c.ProcessMouseScroll(-100)
	assert.Equal(t, float32(MaxZoom), c.Zoom)

	c.ProcessMouseScroll(5)
	assert.Equal(t, float32(40), c.Zoom)
}

func TestMirror(t *testing.T) {
	c := New(mgl32.Vec3{1, 5, 2}, -90, 20)

	c.Mirror(1)
	assert.InDelta(t, -3, c.Position.Y(), 1e-6)
	assert.Equal(t, float32(-20), c.Pitch)
	assert.Less(t, c.Front.Y(), float32(0))
}

func TestMirrorMatchesWaterPlane(t *testing.T) {
	for _, h := range []float32{0, 1.5, -2} {
		c := New(mgl32.Vec3{3, 7, -4}, -60, 15)
		c.Mirror(h)
		assert.Equal(t, water.MirrorHeight(7, h), c.Position.Y(), "h=%v", h)
	}
}

func TestMirrorInvolution(t *testing.T) {
	for _, h := range []float32{0, 1.5, -2} {
		c := New(mgl32.Vec3{3, 7, -4}, -60, 15)
		before := *c

		c.Mirror(h)
		c.Mirror(h)

		assert.True(t, c.Position.ApproxEqualThreshold(before.Position, 1e-5), "h=%v", h)
		assert.Equal(t, before.Pitch, c.Pitch)
		assert.True(t, c.Front.ApproxEqualThreshold(before.Front, 1e-6))
	}
}

func TestReflectRestores(t *testing.T) {
	c := New(mgl32.Vec3{3, 7, -4}, -60, 15)
	before := *c

	func() {
		restore := c.Reflect(0)
		defer restore()
		assert.Equal(t, float32(-7), c.Position.Y())
	}()

	assert.Equal(t, before, *c)
}

func TestReflectRestoresOnPanic(t *testing.T) {
	c := New(mgl32.Vec3{3, 7, -4}, -60, 15)
	before := *c

	require.Panics(t, func() {
		restore := c.Reflect(2)
		defer restore()
		panic("draw failed")
	})

	assert.Equal(t, before, *c)
}

func TestReflectRestoresOnEarlyReturn(t *testing.T) {
	c := New(mgl32.Vec3{0, 4, 0}, -90, -30)
	before := *c

	pass := func(skip bool) int {
		restore := c.Reflect(0)
		defer restore()
		if skip {
			return 0
		}
		return 1
	}

	pass(true)
	assert.Equal(t, before, *c)
	pass(false)
	assert.Equal(t, before, *c)
}

func TestProjectionAspectGuard(t *testing.T) {
	c := New(mgl32.Vec3{}, -90, 0)
	assert.Equal(t, c.Projection(1), c.Projection(0))
}
