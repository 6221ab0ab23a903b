package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/island/internal/engine/camera"
	"github.com/Faultbox/island/internal/engine/framebuffer"
	"github.com/Faultbox/island/internal/engine/gfx"
	"github.com/Faultbox/island/internal/engine/gfx/gfxtest"
	"github.com/Faultbox/island/internal/engine/lighting"
	"github.com/Faultbox/island/internal/engine/mesh"
	"github.com/Faultbox/island/internal/engine/shader"
	"github.com/Faultbox/island/internal/engine/water"
)

func testRig(directionalOnly bool) lighting.Rig {
	return lighting.Rig{
		Sun: lighting.NewSun(0, 90,
			mgl32.Vec3{0.1, 0.1, 0.1}, mgl32.Vec3{0.8, 0.8, 0.8}, mgl32.Vec3{1, 1, 1}),
		Lamp: lighting.PointLight{
			Position: mgl32.Vec3{3, 6, -3},
			Diffuse:  mgl32.Vec3{0.8, 0.8, 0.8},
			Constant: 1,
		},
		Spot: lighting.NewSpotLight(lighting.PointLight{
			Position: mgl32.Vec3{0, 6, 10},
			Diffuse:  mgl32.Vec3{0.8, 0.8, 0.8},
			Constant: 1,
		}, mgl32.Vec3{0, -1, 0}, 12.5, 15),
		SkyColor:        mgl32.Vec3{0.5, 0.8, 0.9},
		DaySpeed:        0.1,
		LampAmplitude:   2,
		DirectionalOnly: directionalOnly,
	}
}

func TestNormalMatrix(t *testing.T) {
	rot := mgl32.HomogRotate3DY(0.7)
	assert.True(t, NormalMatrix(rot).ApproxEqualThreshold(rot.Mat3(), 1e-5),
		"rotation-only normal matrix is the rotation itself")

	scaled := mgl32.Scale3D(2, 1, 4)
	want := mgl32.Diag3(mgl32.Vec3{0.5, 1, 0.25})
	assert.True(t, NormalMatrix(scaled).ApproxEqualThreshold(want, 1e-6))

	// Translation does not affect normals.
	moved := mgl32.Translate3D(5, -2, 9).Mul4(scaled)
	assert.True(t, NormalMatrix(moved).ApproxEqualThreshold(want, 1e-6))
}

func TestInstanceSetTransform(t *testing.T) {
	inst := NewInstance("rock", nil, mgl32.Ident4(), DefaultMaterial())
	assert.NotEqual(t, inst.ID.String(), NewInstance("rock", nil, mgl32.Ident4(), DefaultMaterial()).ID.String())
	assert.Equal(t, mgl32.Ident3(), inst.NormalMatrix())

	inst.SetTransform(mgl32.Scale3D(2, 2, 2))
	assert.True(t, inst.NormalMatrix().ApproxEqualThreshold(mgl32.Diag3(mgl32.Vec3{0.5, 0.5, 0.5}), 1e-6))
}

func TestModelRendererClipDoesNotLeak(t *testing.T) {
	dev := gfxtest.New()
	r, err := NewModelRenderer(dev)
	require.NoError(t, err)

	cube := mesh.Upload(dev, mesh.Cube(1))
	insts := []*Instance{NewInstance("cube", cube, mgl32.Ident4(), DefaultMaterial())}
	frame := testRig(false).At(0)

	clip, _ := water.ClipPlanes(0)
	r.Render(insts, View{}, &clip, frame)
	require.Len(t, dev.Draws, 1)
	assert.True(t, dev.Draws[0].ClipEnabled)
	assert.False(t, dev.Enabled[gfx.ClipDistance0], "clip distance must be disabled after a clipped render")

	got, ok := dev.Uniform(r.Program().ID(), "uClipPlane")
	require.True(t, ok)
	assert.Equal(t, clip.Vec4(), got)

	// Simulate state leaked by some other code path.
	dev.Enable(gfx.ClipDistance0)
	r.Render(insts, View{}, nil, frame)
	require.Len(t, dev.Draws, 2)
	assert.False(t, dev.Draws[1].ClipEnabled)
}

func TestModelRendererUniforms(t *testing.T) {
	dev := gfxtest.New()
	r, err := NewModelRenderer(dev)
	require.NoError(t, err)

	cube := mesh.Upload(dev, mesh.Cube(1))
	model := mgl32.Scale3D(1, 3, 1)
	inst := NewInstance("pillar", cube, model, Material{Color: mgl32.Vec3{1, 0, 0}, Shininess: 64, Specular: 1})

	r.Render([]*Instance{inst}, View{CameraPos: mgl32.Vec3{1, 2, 3}}, nil, testRig(true).At(0))

	id := r.Program().ID()
	checks := map[string]any{
		"uModel":        model,
		"uNormalMatrix": NormalMatrix(model),
		"uColor":        mgl32.Vec3{1, 0, 0},
		"uShininess":    float32(64),
		"uViewPos":      mgl32.Vec3{1, 2, 3},
		"uPointEnabled": int32(0),
		"uSpotEnabled":  int32(0),
	}
	for name, want := range checks {
		got, ok := dev.Uniform(id, name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestModelRendererSpotUniforms(t *testing.T) {
	dev := gfxtest.New()
	r, err := NewModelRenderer(dev)
	require.NoError(t, err)

	cube := mesh.Upload(dev, mesh.Cube(1))
	inst := NewInstance("rock", cube, mgl32.Ident4(), DefaultMaterial())

	rig := testRig(false)
	night := rig.Blend(0)
	r.Render([]*Instance{inst}, View{}, nil, night)

	id := r.Program().ID()
	checks := map[string]any{
		"uSpotEnabled":      int32(1),
		"uSpot.position":    rig.Spot.Position,
		"uSpot.direction":   mgl32.Vec3{0, -1, 0},
		"uSpot.diffuse":     rig.Spot.Diffuse,
		"uSpot.constant":    float32(1),
		"uSpot.innerCutOff": rig.Spot.InnerCutOff,
		"uSpot.outerCutOff": rig.Spot.OuterCutOff,
	}
	for name, want := range checks {
		got, ok := dev.Uniform(id, name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	r.Render([]*Instance{inst}, View{}, nil, rig.Blend(1))
	got, _ := dev.Uniform(id, "uSpot.diffuse")
	assert.Equal(t, mgl32.Vec3{}, got, "spot is dark at full day")
}

func TestLampRendererDirectionalOnly(t *testing.T) {
	dev := gfxtest.New()
	r, err := NewLampRenderer(dev)
	require.NoError(t, err)
	cube := mesh.Upload(dev, mesh.Cube(1))

	r.Render(cube, View{}, nil, testRig(true).At(0))
	assert.Empty(t, dev.Draws)

	r.Render(cube, View{}, nil, testRig(false).At(0))
	assert.Len(t, dev.Draws, 1)
}

func TestWaterRendererTextureUnits(t *testing.T) {
	dev := gfxtest.New()
	r, err := NewWaterRenderer(dev, DefaultWaterParams())
	require.NoError(t, err)

	for name, unit := range map[string]int32{
		"uReflection": 0, "uRefraction": 1, "uDuDvMap": 2, "uNormalMap": 3, "uDepthMap": 4,
	} {
		got, ok := dev.Uniform(r.program.ID(), name)
		require.True(t, ok, name)
		assert.Equal(t, unit, got, name)
	}

	dev.Enable(gfx.ClipDistance0)
	r.Render(WaterInputs{
		Reflection: 11, Refraction: 12, DuDv: 13, Normal: 14, Depth: 15,
		Offset: 0.25,
		Model:  water.ModelMatrix(0, 10),
	})

	assert.Equal(t, uint32(11), dev.Bound[UnitReflection])
	assert.Equal(t, uint32(12), dev.Bound[UnitRefraction])
	assert.Equal(t, uint32(13), dev.Bound[UnitDuDv])
	assert.Equal(t, uint32(14), dev.Bound[UnitNormal])
	assert.Equal(t, uint32(15), dev.Bound[UnitDepth])
	assert.Equal(t, gfx.TextureUnit(0), dev.ActiveUnit)

	draws := dev.DrawsWithVAO(r.Quad().VAO())
	require.Len(t, draws, 1)
	assert.Equal(t, int32(6), draws[0].Count)
	assert.False(t, draws[0].ClipEnabled)
	assert.True(t, draws[0].Blend)
	assert.False(t, dev.Enabled[gfx.Blend])

	got, _ := dev.Uniform(r.program.ID(), "uMoveFactor")
	assert.Equal(t, float32(0.25), got)
}

type pipelineFixture struct {
	dev     *gfxtest.Recorder
	targets *framebuffer.Manager
	scene   *Scene
	pipe    *Pipeline
	cam     *camera.Camera
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	dev := gfxtest.New()

	targets, err := framebuffer.NewManager(dev, framebuffer.DefaultWaterConfig(), 1200, 900)
	require.NoError(t, err)

	s := BuildIsland(dev)
	pipe, err := NewPipeline(dev, targets, s, DefaultWaterParams())
	require.NoError(t, err)

	t.Cleanup(func() {
		pipe.Destroy()
		s.Destroy()
		targets.Destroy()
	})

	return &pipelineFixture{
		dev:     dev,
		targets: targets,
		scene:   s,
		pipe:    pipe,
		cam:     camera.New(mgl32.Vec3{0, 5, 20}, -90, -10),
	}
}

func (f *pipelineFixture) state(directionalOnly bool) FrameState {
	return FrameState{
		Camera:     f.cam,
		Light:      testRig(directionalOnly).At(12),
		WaterModel: water.ModelMatrix(0, 60),
		WaveOffset: 0.4,
		DuDv:       101,
		Normal:     102,
	}
}

func TestPassesOrder(t *testing.T) {
	f := newPipelineFixture(t)

	passes := Passes(f.targets, 1.5)
	require.Len(t, passes, 3)
	assert.Equal(t, "reflection", passes[0].Name)
	assert.Equal(t, "refraction", passes[1].Name)
	assert.Equal(t, "main", passes[2].Name)

	assert.True(t, passes[0].Mirror)
	assert.False(t, passes[1].Mirror)
	assert.Nil(t, passes[2].Target)
	assert.Nil(t, passes[2].Clip)
	assert.True(t, passes[2].Water)

	assert.Equal(t, water.ClipPlane{0, 1, 0, -1.5}, *passes[0].Clip)
	assert.Equal(t, passes[0].Clip.Negate(), *passes[1].Clip)
}

func TestPipelineRender(t *testing.T) {
	f := newPipelineFixture(t)
	f.dev.Reset()
	before := *f.cam

	f.pipe.Render(f.state(false))

	// Draws are grouped by framebuffer in pass order.
	var order []uint32
	for _, d := range f.dev.Draws {
		if len(order) == 0 || order[len(order)-1] != d.Framebuffer {
			order = append(order, d.Framebuffer)
		}
	}
	assert.Equal(t, []uint32{f.targets.Reflection.FBO(), f.targets.Refraction.FBO(), 0}, order)

	for _, d := range f.dev.Draws {
		switch d.Framebuffer {
		case f.targets.Reflection.FBO():
			assert.Equal(t, [4]int32{0, 0, 320, 180}, d.Viewport)
			assert.True(t, d.ClipEnabled)
		case f.targets.Refraction.FBO():
			assert.Equal(t, [4]int32{0, 0, 320, 720}, d.Viewport)
			assert.True(t, d.ClipEnabled)
		default:
			assert.Equal(t, [4]int32{0, 0, 1200, 900}, d.Viewport)
			assert.False(t, d.ClipEnabled)
		}
	}

	last := f.dev.Draws[len(f.dev.Draws)-1]
	assert.Equal(t, f.pipe.Water.Quad().VAO(), last.VAO, "water is drawn last")
	assert.Len(t, f.dev.DrawsWithVAO(f.pipe.Water.Quad().VAO()), 1)
	assert.Len(t, f.dev.DrawsWithVAO(f.scene.Lamp.VAO()), 3, "lamp drawn once per pass")

	assert.False(t, f.dev.Enabled[gfx.ClipDistance0])
	assert.Equal(t, before, *f.cam, "camera must be restored after the reflection pass")

	assert.Equal(t, f.targets.ReflectionTexture(), f.dev.Bound[UnitReflection])
	assert.Equal(t, f.targets.RefractionTexture(), f.dev.Bound[UnitRefraction])
	assert.Equal(t, uint32(101), f.dev.Bound[UnitDuDv])
	assert.Equal(t, uint32(102), f.dev.Bound[UnitNormal])
	assert.Equal(t, f.targets.RefractionDepthTexture(), f.dev.Bound[UnitDepth])
}

func TestPipelineReflectionUsesMirroredView(t *testing.T) {
	f := newPipelineFixture(t)
	f.dev.Reset()

	fs := f.state(false)
	fs.WaterHeight = 1
	y0 := f.cam.Position.Y()

	f.pipe.Render(fs)

	var fbo uint32
	viewY := map[uint32]float32{}
	for _, c := range f.dev.Calls {
		switch c.Name {
		case "BindFramebuffer":
			fbo = c.Args[0].(uint32)
		case "Uniform":
			if c.Args[0] == "uViewPos" {
				viewY[fbo] = c.Args[1].(mgl32.Vec3).Y()
			}
		}
	}

	require.Contains(t, viewY, f.targets.Reflection.FBO())
	assert.InDelta(t, 2*1-y0, viewY[f.targets.Reflection.FBO()], 1e-5)
	assert.InDelta(t, y0, viewY[f.targets.Refraction.FBO()], 1e-5)
	assert.InDelta(t, y0, viewY[0], 1e-5)
}

func TestPipelineDirectionalOnly(t *testing.T) {
	f := newPipelineFixture(t)
	f.dev.Reset()

	f.pipe.Render(f.state(true))

	assert.Empty(t, f.dev.DrawsWithVAO(f.scene.Lamp.VAO()))
	got, ok := f.dev.Uniform(f.pipe.Models.Program().ID(), "uPointEnabled")
	require.True(t, ok)
	assert.Equal(t, int32(0), got)
}

func TestPipelineHiDPIResize(t *testing.T) {
	f := newPipelineFixture(t)
	f.targets.SetDrawableSize(2400, 1800)
	f.dev.Reset()

	f.pipe.Render(f.state(false))

	last := f.dev.Draws[len(f.dev.Draws)-1]
	assert.Equal(t, [4]int32{0, 0, 2400, 1800}, last.Viewport)
}

func TestNewPipelineCompileFailure(t *testing.T) {
	dev := gfxtest.New()
	dev.FailCompile = "uReflection"

	targets, err := framebuffer.NewManager(dev, framebuffer.DefaultWaterConfig(), 100, 100)
	require.NoError(t, err)
	defer targets.Destroy()

	s := BuildIsland(dev)
	defer s.Destroy()

	_, err = NewPipeline(dev, targets, s, DefaultWaterParams())
	require.ErrorIs(t, err, shader.ErrCompile)
	assert.Zero(t, dev.Live("Program"), "renderers compiled before the failure must be released")
	assert.Zero(t, dev.Live("Shader"))
}

func TestBuildIsland(t *testing.T) {
	dev := gfxtest.New()
	s := BuildIsland(dev)

	assert.Len(t, s.Instances, 1+4*2+3)
	assert.NotNil(t, s.Lamp)

	var below, above bool
	for _, inst := range s.Instances {
		y := inst.Model().Col(3).Y()
		if y < 0 {
			below = true
		}
		if y > 0 {
			above = true
		}
	}
	assert.True(t, below, "some geometry must sit under the water")
	assert.True(t, above)

	s.Destroy()
	assert.Zero(t, dev.Live("VertexArray"))
	assert.Zero(t, dev.Live("Buffer"))
}

func TestIslandHeight(t *testing.T) {
	assert.Equal(t, float32(IslandPeak), IslandHeight(0))
	assert.InDelta(t, -IslandDepth, IslandHeight(IslandRadius), 1e-5)
}
