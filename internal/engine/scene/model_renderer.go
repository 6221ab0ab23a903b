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

// ModelRenderer draws lit scene geometry with an optional clip plane.
type ModelRenderer struct {
	dev     gfx.Device
	program *shader.Program
}

// NewModelRenderer compiles the scene program.
func NewModelRenderer(dev gfx.Device) (*ModelRenderer, error) {
	prog, err := shader.Compile(dev, "scene", shaders.SceneVertex, shaders.SceneFragment)
	if err != nil {
		return nil, fmt.Errorf("model renderer: %w", err)
	}
	return &ModelRenderer{dev: dev, program: prog}, nil
}

// Program returns the scene program.
func (r *ModelRenderer) Program() *shader.Program {
	return r.program
}

// Render draws every instance. When clip is non-nil, geometry on the
// negative side of the plane is discarded; clip distance 0 is disabled
// again before Render returns. When clip is nil, clip distance 0 is
// explicitly disabled.
func (r *ModelRenderer) Render(instances []*Instance, view View, clip *water.ClipPlane, light lighting.Frame) {
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

	p.SetMat4("uView", view.View)
	p.SetMat4("uProjection", view.Projection)
	p.SetVec3("uViewPos", view.CameraPos)
	r.setLights(light)

	for _, inst := range instances {
		p.SetMat4("uModel", inst.Model())
		p.SetMat3("uNormalMatrix", inst.NormalMatrix())
		p.SetVec3("uColor", inst.Material.Color)
		p.SetFloat("uShininess", inst.Material.Shininess)
		p.SetFloat("uSpecularStrength", inst.Material.Specular)
		inst.Mesh.Draw()
	}
}

func (r *ModelRenderer) setLights(f lighting.Frame) {
	p := r.program

	p.SetVec3("uSun.direction", f.Sun.Direction)
	p.SetVec3("uSun.ambient", f.Sun.Ambient)
	p.SetVec3("uSun.diffuse", f.Sun.Diffuse)
	p.SetVec3("uSun.specular", f.Sun.Specular)

	p.SetBool("uPointEnabled", !f.DirectionalOnly)
	p.SetVec3("uLamp.position", f.Lamp.Position)
	p.SetVec3("uLamp.ambient", f.Lamp.Ambient)
	p.SetVec3("uLamp.diffuse", f.Lamp.Diffuse)
	p.SetVec3("uLamp.specular", f.Lamp.Specular)
	p.SetFloat("uLamp.constant", f.Lamp.Constant)
	p.SetFloat("uLamp.linear", f.Lamp.Linear)
	p.SetFloat("uLamp.quadratic", f.Lamp.Quadratic)

	p.SetBool("uSpotEnabled", !f.DirectionalOnly)
	p.SetVec3("uSpot.position", f.Spot.Position)
	p.SetVec3("uSpot.direction", f.Spot.Direction)
	p.SetVec3("uSpot.ambient", f.Spot.Ambient)
	p.SetVec3("uSpot.diffuse", f.Spot.Diffuse)
	p.SetVec3("uSpot.specular", f.Spot.Specular)
	p.SetFloat("uSpot.constant", f.Spot.Constant)
	p.SetFloat("uSpot.linear", f.Spot.Linear)
	p.SetFloat("uSpot.quadratic", f.Spot.Quadratic)
	p.SetFloat("uSpot.innerCutOff", f.Spot.InnerCutOff)
	p.SetFloat("uSpot.outerCutOff", f.Spot.OuterCutOff)
}

// Destroy releases the program.
func (r *ModelRenderer) Destroy() {
	r.program.Destroy()
}
