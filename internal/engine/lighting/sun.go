// Package lighting provides the day/night light rig for the island scene.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DirectionalLight is the "day" light.
type DirectionalLight struct {
	Direction mgl32.Vec3 // Direction light travels (normalized)
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

// SunDirection converts longitude/latitude angles in degrees to a
// normalized vector pointing towards the sun. Longitude rotates around the
// Y axis, latitude is elevation from the horizon.
func SunDirection(longitude, latitude float32) mgl32.Vec3 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return mgl32.Vec3{x, y, z}.Normalize()
}

// NewSun builds a directional light shining from the given sky position.
func NewSun(longitude, latitude float32, ambient, diffuse, specular mgl32.Vec3) DirectionalLight {
	return DirectionalLight{
		Direction: SunDirection(longitude, latitude).Mul(-1),
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
	}
}

// Scaled returns the light with all intensities multiplied by s.
func (l DirectionalLight) Scaled(s float32) DirectionalLight {
	l.Ambient = l.Ambient.Mul(s)
	l.Diffuse = l.Diffuse.Mul(s)
	l.Specular = l.Specular.Mul(s)
	return l
}
