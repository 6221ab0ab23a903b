package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/island/internal/engine/camera"
	"github.com/Faultbox/island/internal/engine/framebuffer"
	"github.com/Faultbox/island/internal/engine/gfx"
	"github.com/Faultbox/island/internal/engine/lighting"
	"github.com/Faultbox/island/internal/engine/water"
	"github.com/Faultbox/island/internal/logger"
)

// Pass describes one render of the scene.
type Pass struct {
	Name string
	// Target is the offscreen destination; nil renders to the window.
	Target *framebuffer.Target
	Clip   *water.ClipPlane
	// Mirror reflects the camera about the water plane for this pass only.
	Mirror bool
	// Water draws the water surface after the scene.
	Water bool
}

// Passes returns the passes of one frame in execution order: reflection,
// refraction, then the main pass that also draws the water.
func Passes(targets *framebuffer.Manager, waterHeight float32) []Pass {
	reflection, refraction := water.ClipPlanes(waterHeight)
	return []Pass{
		{Name: "reflection", Target: targets.Reflection, Clip: &reflection, Mirror: true},
		{Name: "refraction", Target: targets.Refraction, Clip: &refraction},
		{Name: "main", Water: true},
	}
}

// FrameState is everything a frame depends on.
type FrameState struct {
	Camera      *camera.Camera
	Light       lighting.Frame
	WaterHeight float32
	WaterModel  mgl32.Mat4
	WaveOffset  float32
	DuDv        uint32
	Normal      uint32
}

// Pipeline renders a frame as an ordered list of passes.
type Pipeline struct {
	dev     gfx.Device
	log     *zap.Logger
	Targets *framebuffer.Manager
	Scene   *Scene

	Models *ModelRenderer
	Lamp   *LampRenderer
	Water  *WaterRenderer
}

// NewPipeline compiles every renderer. Any compile failure is returned and
// the renderers already created are released.
func NewPipeline(dev gfx.Device, targets *framebuffer.Manager, s *Scene, params WaterParams) (*Pipeline, error) {
	p := &Pipeline{
		dev:     dev,
		log:     logger.Named("scene"),
		Targets: targets,
		Scene:   s,
	}

	var err error
	if p.Models, err = NewModelRenderer(dev); err != nil {
		return nil, err
	}
	if p.Lamp, err = NewLampRenderer(dev); err != nil {
		p.Destroy()
		return nil, err
	}
	if p.Water, err = NewWaterRenderer(dev, params); err != nil {
		p.Destroy()
		return nil, err
	}

	p.log.Info("pipeline ready",
		zap.Stringer("targets", targets),
		zap.Int("instances", len(s.Instances)))
	return p, nil
}

// Render draws one frame.
func (p *Pipeline) Render(fs FrameState) {
	w, h := p.Targets.DrawableSize()
	aspect := float32(w) / float32(h)

	for _, pass := range Passes(p.Targets, fs.WaterHeight) {
		p.runPass(pass, fs, aspect)
	}
}

// runPass always projects with the window aspect so the offscreen images
// line up with the screen-space coordinates the water shader samples them at.
func (p *Pipeline) runPass(pass Pass, fs FrameState, aspect float32) {
	if pass.Target != nil {
		pass.Target.Bind()
	} else {
		p.Targets.Unbind()
	}

	p.dev.ClearColor(fs.Light.Sky[0], fs.Light.Sky[1], fs.Light.Sky[2], 1)
	p.dev.Clear(gfx.ColorBufferBit | gfx.DepthBufferBit)

	if pass.Mirror {
		restore := fs.Camera.Reflect(fs.WaterHeight)
		defer restore()
	}

	view := ViewOf(fs.Camera, aspect)
	p.Models.Render(p.Scene.Instances, view, pass.Clip, fs.Light)
	p.Lamp.Render(p.Scene.Lamp, view, pass.Clip, fs.Light)

	if pass.Water {
		p.Water.Render(WaterInputs{
			Reflection: p.Targets.ReflectionTexture(),
			Refraction: p.Targets.RefractionTexture(),
			DuDv:       fs.DuDv,
			Normal:     fs.Normal,
			Depth:      p.Targets.RefractionDepthTexture(),
			Offset:     fs.WaveOffset,
			View:       view,
			Model:      fs.WaterModel,
			Light:      fs.Light.Sun,
		})
	}
}

// Destroy releases the renderers. Targets and scene meshes are owned by
// the caller.
func (p *Pipeline) Destroy() {
	if p.Models != nil {
		p.Models.Destroy()
	}
	if p.Lamp != nil {
		p.Lamp.Destroy()
	}
	if p.Water != nil {
		p.Water.Destroy()
	}
}
