package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/island/internal/engine/gfx"
	"github.com/Faultbox/island/internal/engine/lighting"
	"github.com/Faultbox/island/internal/engine/mesh"
	"github.com/Faultbox/island/internal/engine/shader"
	"github.com/Faultbox/island/internal/engine/shader/shaders"
	"github.com/Faultbox/island/internal/engine/water"
)

// Texture units read by the water shader.
const (
	UnitReflection = 0
	UnitRefraction = 1
	UnitDuDv       = 2
	UnitNormal     = 3
	UnitDepth      = 4
)

var waterSamplers = [...]struct {
	name string
	unit int
}{
	{"uReflection", UnitReflection},
	{"uRefraction", UnitRefraction},
	{"uDuDvMap", UnitDuDv},
	{"uNormalMap", UnitNormal},
	{"uDepthMap", UnitDepth},
}

// WaterParams are the appearance settings of the water surface.
type WaterParams struct {
	WaveStrength float32
	Tiling       float32
	Tint         mgl32.Vec3
	Shininess    float32
	Reflectivity float32
	// Near and Far must match the projection used for the refraction pass
	// so the depth texture can be linearized.
	Near float32
	Far  float32
}

// DefaultWaterParams returns the default water appearance.
func DefaultWaterParams() WaterParams {
	return WaterParams{
		WaveStrength: 0.02,
		Tiling:       6,
		Tint:         mgl32.Vec3{0, 0.3, 0.5},
		Shininess:    20,
		Reflectivity: 0.5,
		Near:         0.1,
		Far:          500,
	}
}

// WaterInputs are the per-frame inputs of the water draw.
type WaterInputs struct {
	Reflection uint32
	Refraction uint32
	DuDv       uint32
	Normal     uint32
	Depth      uint32

	// Offset is the du/dv sampling offset in [0, 1).
	Offset float32
	View   View
	Model  mgl32.Mat4
	Light  lighting.DirectionalLight
}

// WaterRenderer draws the water quad, sampling the reflection and
// refraction targets through projective texture coordinates.
type WaterRenderer struct {
	dev     gfx.Device
	program *shader.Program
	quad    *mesh.Mesh
	Params  WaterParams
}

// NewWaterRenderer compiles the water program and uploads the quad.
func NewWaterRenderer(dev gfx.Device, params WaterParams) (*WaterRenderer, error) {
	prog, err := shader.Compile(dev, "water", shaders.WaterVertex, shaders.WaterFragment)
	if err != nil {
		return nil, fmt.Errorf("water renderer: %w", err)
	}

	// Sampler bindings never change.
	prog.Use()
	for _, s := range waterSamplers {
		prog.SetInt(s.name, int32(s.unit))
	}

	return &WaterRenderer{
		dev:     dev,
		program: prog,
		quad:    mesh.Upload(dev, mesh.FromVertices("water", water.QuadVertices)),
		Params:  params,
	}, nil
}

// Quad returns the water mesh.
func (r *WaterRenderer) Quad() *mesh.Mesh {
	return r.quad
}

// Render draws the water surface. Clip distance 0 is disabled for the draw.
func (r *WaterRenderer) Render(in WaterInputs) {
	p := r.program
	p.Use()
	r.dev.Disable(gfx.ClipDistance0)

	bind := [...]uint32{
		UnitReflection: in.Reflection,
		UnitRefraction: in.Refraction,
		UnitDuDv:       in.DuDv,
		UnitNormal:     in.Normal,
		UnitDepth:      in.Depth,
	}
	for unit, tex := range bind {
		r.dev.ActiveTexture(gfx.TextureUnit(unit))
		r.dev.BindTexture(tex)
	}

	p.SetMat4("uModel", in.Model)
	p.SetMat4("uView", in.View.View)
	p.SetMat4("uProjection", in.View.Projection)
	p.SetVec3("uCameraPos", in.View.CameraPos)

	p.SetFloat("uMoveFactor", in.Offset)
	p.SetFloat("uWaveStrength", r.Params.WaveStrength)
	p.SetFloat("uTiling", r.Params.Tiling)
	p.SetVec3("uTint", r.Params.Tint)
	p.SetFloat("uShininess", r.Params.Shininess)
	p.SetFloat("uReflectivity", r.Params.Reflectivity)
	p.SetFloat("uNear", r.Params.Near)
	p.SetFloat("uFar", r.Params.Far)

	p.SetVec3("uLightDirection", in.Light.Direction)
	p.SetVec3("uLightColor", in.Light.Specular)

	r.dev.Enable(gfx.Blend)
	r.dev.BlendFunc(gfx.SrcAlpha, gfx.OneMinusSrcAlpha)
	r.quad.Draw()
	r.dev.Disable(gfx.Blend)

	r.dev.ActiveTexture(gfx.TextureUnit(0))
}

// Destroy releases the program and the quad.
func (r *WaterRenderer) Destroy() {
	r.quad.Destroy()
	r.program.Destroy()
}
