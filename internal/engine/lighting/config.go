package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/island/internal/config"
)

// FromConfig builds the day/night rig from configuration.
func FromConfig(cfg config.LightingConfig) Rig {
	return Rig{
		Sun: NewSun(cfg.SunLongitude, cfg.SunLatitude,
			mgl32.Vec3(cfg.SunAmbient), mgl32.Vec3(cfg.SunDiffuse), mgl32.Vec3(cfg.SunSpecular)),
		Lamp: PointLight{
			Position:  mgl32.Vec3(cfg.LampPosition),
			Ambient:   mgl32.Vec3(cfg.LampAmbient),
			Diffuse:   mgl32.Vec3(cfg.LampDiffuse),
			Specular:  mgl32.Vec3(cfg.LampSpecular),
			Constant:  cfg.LampConstant,
			Linear:    cfg.LampLinear,
			Quadratic: cfg.LampQuadratic,
		},
		Spot: NewSpotLight(PointLight{
			Position:  mgl32.Vec3(cfg.SpotPosition),
			Ambient:   mgl32.Vec3(cfg.SpotAmbient),
			Diffuse:   mgl32.Vec3(cfg.SpotDiffuse),
			Specular:  mgl32.Vec3(cfg.SpotSpecular),
			Constant:  cfg.SpotConstant,
			Linear:    cfg.SpotLinear,
			Quadratic: cfg.SpotQuadratic,
		}, mgl32.Vec3(cfg.SpotDirection), cfg.SpotInnerCutOff, cfg.SpotOuterCutOff),
		SkyColor:        mgl32.Vec3(cfg.SkyColor),
		DaySpeed:        cfg.DaySpeed,
		LampAmplitude:   cfg.LampAmplitude,
		DirectionalOnly: cfg.DirectionalOnly,
	}
}
