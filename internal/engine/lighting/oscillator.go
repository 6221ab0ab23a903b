package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Oscillate returns (cos(elapsed*daySpeed) + 1) / 2, a smooth periodic value
// in [0, 1] with period 2π/daySpeed. It is 1 at elapsed = 0 (full day).
func Oscillate(elapsed, daySpeed float64) float32 {
	osc := float32((math.Cos(elapsed*daySpeed) + 1) / 2)
	return mgl32.Clamp(osc, 0, 1)
}

// Rig holds the unscaled lights and the parameters of the day/night cycle.
type Rig struct {
	Sun  DirectionalLight
	Lamp PointLight
	Spot SpotLight

	SkyColor mgl32.Vec3
	DaySpeed float64
	// LampAmplitude is how far the lamp sinks below Lamp.Position.Y at full day.
	LampAmplitude float32
	// DirectionalOnly disables the lamp and the spot light.
	DirectionalOnly bool
}

// Frame is the rig sampled at one instant.
type Frame struct {
	Osc             float32
	Sun             DirectionalLight
	Lamp            PointLight
	Spot            SpotLight
	Sky             mgl32.Vec3
	DirectionalOnly bool
}

// At samples the rig at the given elapsed time. It is a pure function of
// elapsed and the rig's fields.
func (r Rig) At(elapsed float64) Frame {
	return r.Blend(Oscillate(elapsed, r.DaySpeed))
}

// Blend fans a single oscillator value out to every consumer: sun scaled by
// osc, lamp scaled by 1-osc, sky scaled by osc, and the lamp bobbing down
// by osc*amplitude. The spot light follows the lamp's night weight.
func (r Rig) Blend(osc float32) Frame {
	night := 1 - osc
	if r.DirectionalOnly {
		night = 0
	}
	lamp := r.Lamp.Scaled(night)
	lamp.Position[1] = r.Lamp.Position.Y() - osc*r.LampAmplitude

	return Frame{
		Osc:             osc,
		Sun:             r.Sun.Scaled(osc),
		Lamp:            lamp,
		Spot:            r.Spot.Scaled(night),
		Sky:             r.SkyColor.Mul(osc),
		DirectionalOnly: r.DirectionalOnly,
	}
}
