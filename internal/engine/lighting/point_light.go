package lighting

import "github.com/go-gl/mathgl/mgl32"

// PointLight is the "night" light with distance attenuation.
type PointLight struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3

	// Attenuation = 1 / (Constant + Linear*d + Quadratic*d^2)
	Constant  float32
	Linear    float32
	Quadratic float32
}

// Scaled returns the light with all intensities multiplied by s.
// Position and attenuation are unchanged.
func (l PointLight) Scaled(s float32) PointLight {
	l.Ambient = l.Ambient.Mul(s)
	l.Diffuse = l.Diffuse.Mul(s)
	l.Specular = l.Specular.Mul(s)
	return l
}
