package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SpotLight is a point light restricted to a cone around Direction.
// Between the inner and outer cutoffs the intensity fades linearly in
// cosine space.
type SpotLight struct {
	PointLight
	Direction mgl32.Vec3

	// Cosines of the cone half-angles. InnerCutOff >= OuterCutOff.
	InnerCutOff float32
	OuterCutOff float32
}

// NewSpotLight builds a spot light from cone half-angles in degrees.
// The direction is normalized; a zero direction points straight down.
func NewSpotLight(base PointLight, direction mgl32.Vec3, innerDeg, outerDeg float32) SpotLight {
	if direction.Len() == 0 {
		direction = mgl32.Vec3{0, -1, 0}
	}
	if outerDeg < innerDeg {
		outerDeg = innerDeg
	}
	return SpotLight{
		PointLight:  base,
		Direction:   direction.Normalize(),
		InnerCutOff: float32(math.Cos(float64(mgl32.DegToRad(innerDeg)))),
		OuterCutOff: float32(math.Cos(float64(mgl32.DegToRad(outerDeg)))),
	}
}

// Scaled returns the light with all intensities multiplied by s.
// Position, direction, cone and attenuation are unchanged.
func (l SpotLight) Scaled(s float32) SpotLight {
	l.PointLight = l.PointLight.Scaled(s)
	return l
}
