package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/island/internal/engine/gfx"
	"github.com/Faultbox/island/internal/engine/lighting"
	"github.com/Faultbox/island/internal/engine/shader"
	"github.com/Faultbox/island/internal/engine/shader/shaders"
	"github.com/Faultbox/island/internal/engine/water"
)

// LampRenderer draws a small unlit cube at the point light's position.
type LampRenderer struct {
	dev     gfx.Device
	program *shader.Program

	Color mgl32.Vec3
	Scale float32
}

// NewLampRenderer compiles the lamp program.
func NewLampRenderer(dev gfx.Device) (*LampRenderer, error) {
	prog, err := shader.Compile(dev, "lamp", shaders.LampVertex, shaders.LampFragment)
	if err != nil {
		return nil, fmt.Errorf("lamp renderer: %w", err)
	}
	return &LampRenderer{
		dev:     dev,
		program: prog,
		Color:   mgl32.Vec3{1, 0.95, 0.8},
		Scale:   0.3,
	}, nil
}

// Render draws the lamp. Nothing is drawn in directional-only mode.
// The marker fades with the point light's 1-osc weight.
func (r *LampRenderer) Render(lamp Drawable, view View, clip *water.ClipPlane, light lighting.Frame) {
	if light.DirectionalOnly {
		return
	}

	p := r.program
	p.Use()

	if clip != nil {
		p.SetVec4("uClipPlane", clip.Vec4())
		r.dev.Enable(gfx.ClipDistance0)
		defer r.dev.Disable(gfx.ClipDistance0)
	} else {
		r.dev.Disable(gfx.ClipDistance0)
		p.SetVec4("uClipPlane", mgl32.Vec4{})
	}

	model := mgl32.Translate3D(light.Lamp.Position.Elem()).Mul4(mgl32.Scale3D(r.Scale, r.Scale, r.Scale))
	p.SetMat4("uModel", model)
	p.SetMat4("uView", view.View)
	p.SetMat4("uProjection", view.Projection)
	p.SetVec3("uColor", r.Color.Mul(1-light.Osc))

	lamp.Draw()
}

// Destroy releases the program.
func (r *LampRenderer) Destroy() {
	r.program.Destroy()
}
