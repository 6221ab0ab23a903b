package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/island/internal/engine/gfx/gfxtest"
	"github.com/Faultbox/island/internal/engine/shader/shaders"
)

func TestCompileReleasesStages(t *testing.T) {
	dev := gfxtest.New()

	p, err := Compile(dev, "scene", shaders.SceneVertex, shaders.SceneFragment)
	require.NoError(t, err)

	assert.NotZero(t, p.ID())
	assert.Equal(t, "scene", p.Name())
	assert.Equal(t, 1, dev.Live("Program"))
	assert.Zero(t, dev.Live("Shader"))
}

func TestCompileFailure(t *testing.T) {
	dev := gfxtest.New()
	dev.FailCompile = "BROKEN"

	_, err := Compile(dev, "water", "void main() {}", "BROKEN")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCompile))
	assert.True(t, errors.Is(err, gfxtest.ErrCompile))
	assert.Contains(t, err.Error(), "water fragment")

	// The vertex stage compiled before the failure must still be released.
	assert.Zero(t, dev.Live("Shader"))
	assert.Zero(t, dev.Live("Program"))
}

func TestLocationCache(t *testing.T) {
	dev := gfxtest.New()
	p, err := Compile(dev, "lamp", shaders.LampVertex, shaders.LampFragment)
	require.NoError(t, err)

	p.SetVec3("uColor", mgl32.Vec3{1, 1, 1})
	p.SetVec3("uColor", mgl32.Vec3{1, 0, 0})
	assert.Equal(t, 1, dev.Count("UniformLocation"))

	v, ok := dev.Uniform(p.ID(), "uColor")
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, v)
}

func TestSetters(t *testing.T) {
	dev := gfxtest.New()
	p, err := Compile(dev, "scene", shaders.SceneVertex, shaders.SceneFragment)
	require.NoError(t, err)
	p.Use()
	assert.Equal(t, p.ID(), dev.Program)

	p.SetBool("uPointEnabled", true)
	p.SetInt("uSampler", 3)
	p.SetFloat("uShininess", 32)
	p.SetVec2("uScale", mgl32.Vec2{1, 2})
	p.SetVec4("uClipPlane", mgl32.Vec4{0, 1, 0, 0})
	p.SetMat3("uNormalMatrix", mgl32.Ident3())
	p.SetMat4("uModel", mgl32.Ident4())

	cases := map[string]any{
		"uPointEnabled": int32(1),
		"uSampler":      int32(3),
		"uShininess":    float32(32),
		"uScale":        mgl32.Vec2{1, 2},
		"uClipPlane":    mgl32.Vec4{0, 1, 0, 0},
		"uNormalMatrix": mgl32.Ident3(),
		"uModel":        mgl32.Ident4(),
	}
	for name, want := range cases {
		got, ok := dev.Uniform(p.ID(), name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestDestroyIdempotent(t *testing.T) {
	dev := gfxtest.New()
	p, err := Compile(dev, "water", shaders.WaterVertex, shaders.WaterFragment)
	require.NoError(t, err)

	p.Destroy()
	assert.NotPanics(t, p.Destroy)
	assert.Zero(t, dev.Live("Program"))
}

func TestEmbeddedSources(t *testing.T) {
	sources := map[string]string{
		"scene.vert": shaders.SceneVertex,
		"scene.frag": shaders.SceneFragment,
		"water.vert": shaders.WaterVertex,
		"water.frag": shaders.WaterFragment,
		"lamp.vert":  shaders.LampVertex,
		"lamp.frag":  shaders.LampFragment,
	}
	for name, src := range sources {
		assert.True(t, strings.HasPrefix(src, "#version 410 core"), name)
	}

	assert.Contains(t, shaders.SceneVertex, "gl_ClipDistance[0]")
	for _, sampler := range []string{"uReflection", "uRefraction", "uDuDvMap", "uNormalMap", "uDepthMap"} {
		assert.Contains(t, shaders.WaterFragment, sampler)
	}
}
