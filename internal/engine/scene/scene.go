// Package scene renders the island, its lamp and the water surface, and
// sequences the offscreen passes that feed the water shader.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Faultbox/island/internal/engine/camera"
)

// Drawable is anything that can issue its own draw call.
type Drawable interface {
	Draw()
}

// Material holds per-instance surface properties.
type Material struct {
	Color     mgl32.Vec3
	Shininess float32
	Specular  float32
}

// DefaultMaterial is a matte light grey.
func DefaultMaterial() Material {
	return Material{Color: mgl32.Vec3{0.8, 0.8, 0.8}, Shininess: 32, Specular: 0.5}
}

// Instance places a mesh in the world.
type Instance struct {
	ID       uuid.UUID
	Name     string
	Mesh     Drawable
	Material Material

	model  mgl32.Mat4
	normal mgl32.Mat3
}

// NewInstance creates an instance with a fresh ID.
func NewInstance(name string, mesh Drawable, model mgl32.Mat4, mat Material) *Instance {
	inst := &Instance{
		ID:       uuid.New(),
		Name:     name,
		Mesh:     mesh,
		Material: mat,
	}
	inst.SetTransform(model)
	return inst
}

// SetTransform replaces the model matrix and recomputes the normal matrix.
func (i *Instance) SetTransform(model mgl32.Mat4) {
	i.model = model
	i.normal = NormalMatrix(model)
}

// Model returns the model matrix.
func (i *Instance) Model() mgl32.Mat4 { return i.model }

// NormalMatrix returns the cached normal matrix.
func (i *Instance) NormalMatrix() mgl32.Mat3 { return i.normal }

// NormalMatrix returns transpose(inverse(mat3(model))), which keeps normals
// perpendicular to surfaces under non-uniform scale.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	return model.Mat3().Inv().Transpose()
}

// View is the camera state shared by every draw in a pass.
type View struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CameraPos  mgl32.Vec3
}

// ViewOf snapshots a camera for the given aspect ratio.
func ViewOf(cam *camera.Camera, aspect float32) View {
	return View{
		View:       cam.ViewMatrix(),
		Projection: cam.Projection(aspect),
		CameraPos:  cam.Position,
	}
}
