// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all demo settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Water    WaterConfig    `yaml:"water"`
	Lighting LightingConfig `yaml:"lighting"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
	Debug    DebugConfig    `yaml:"debug"`
}

// Window backends.
const (
	BackendGLFW = "glfw"
	BackendSDL  = "sdl"
)

// WindowConfig holds display settings.
// Width and Height are logical window units; the drawable may be larger on HiDPI screens.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Backend    string `yaml:"backend"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the fly camera's starting state and tuning.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Zoom        float32    `yaml:"zoom"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// WaterConfig holds water surface and render target settings.
type WaterConfig struct {
	Height       float32    `yaml:"height"`
	Size         float32    `yaml:"size"`
	WaveSpeed    float64    `yaml:"wave_speed"`
	WaveStrength float32    `yaml:"wave_strength"`
	Tiling       float32    `yaml:"tiling"`
	Tint         [3]float32 `yaml:"tint"`
	DuDvMap      string     `yaml:"dudv_map"`
	NormalMap    string     `yaml:"normal_map"`

	ReflectionWidth  int `yaml:"reflection_width"`
	ReflectionHeight int `yaml:"reflection_height"`
	RefractionWidth  int `yaml:"refraction_width"`
	RefractionHeight int `yaml:"refraction_height"`
}

// LightingConfig holds the day/night rig. Spot cutoffs are cone
// half-angles in degrees.
type LightingConfig struct {
	DaySpeed        float64    `yaml:"day_speed"`
	DirectionalOnly bool       `yaml:"directional_only"`
	SkyColor        [3]float32 `yaml:"sky_color"`

	SunLongitude float32    `yaml:"sun_longitude"`
	SunLatitude  float32    `yaml:"sun_latitude"`
	SunAmbient   [3]float32 `yaml:"sun_ambient"`
	SunDiffuse   [3]float32 `yaml:"sun_diffuse"`
	SunSpecular  [3]float32 `yaml:"sun_specular"`

	LampPosition  [3]float32 `yaml:"lamp_position"`
	LampAmplitude float32    `yaml:"lamp_amplitude"`
	LampAmbient   [3]float32 `yaml:"lamp_ambient"`
	LampDiffuse   [3]float32 `yaml:"lamp_diffuse"`
	LampSpecular  [3]float32 `yaml:"lamp_specular"`
	LampConstant  float32    `yaml:"lamp_constant"`
	LampLinear    float32    `yaml:"lamp_linear"`
	LampQuadratic float32    `yaml:"lamp_quadratic"`

	SpotPosition    [3]float32 `yaml:"spot_position"`
	SpotDirection   [3]float32 `yaml:"spot_direction"`
	SpotAmbient     [3]float32 `yaml:"spot_ambient"`
	SpotDiffuse     [3]float32 `yaml:"spot_diffuse"`
	SpotSpecular    [3]float32 `yaml:"spot_specular"`
	SpotConstant    float32    `yaml:"spot_constant"`
	SpotLinear      float32    `yaml:"spot_linear"`
	SpotQuadratic   float32    `yaml:"spot_quadratic"`
	SpotInnerCutOff float32    `yaml:"spot_inner_cut_off"`
	SpotOuterCutOff float32    `yaml:"spot_outer_cut_off"`
}

// AssetsConfig lists directories searched for asset files.
// Later entries take priority.
type AssetsConfig struct {
	Dirs []string `yaml:"dirs"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
	LogFPS        bool   `yaml:"log_fps"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "Island Demo",
			Width:   1200,
			Height:  900,
			Backend: BackendGLFW,
			VSync:   true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{5, 5, 10},
			Yaw:         -90,
			Pitch:       0,
			Speed:       20,
			Sensitivity: 0.1,
			Zoom:        45,
			Near:        0.1,
			Far:         500,
		},
		Water: WaterConfig{
			Height:           0,
			Size:             60,
			WaveSpeed:        0.03,
			WaveStrength:     0.02,
			Tiling:           6,
			Tint:             [3]float32{0.0, 0.3, 0.5},
			DuDvMap:          "assets/textures/water_dudv.png",
			NormalMap:        "assets/textures/water_normal.png",
			ReflectionWidth:  320,
			ReflectionHeight: 180,
			RefractionWidth:  320,
			RefractionHeight: 720,
		},
		Lighting: LightingConfig{
			DaySpeed:      0.1,
			SkyColor:      [3]float32{0.53, 0.81, 0.92},
			SunLongitude:  0,
			SunLatitude:   90,
			SunAmbient:    [3]float32{0.1, 0.1, 0.1},
			SunDiffuse:    [3]float32{0.8, 0.8, 0.8},
			SunSpecular:   [3]float32{1, 1, 1},
			LampPosition:  [3]float32{3, 6, -3},
			LampAmplitude: 2,
			LampAmbient:   [3]float32{0.1, 0.1, 0.1},
			LampDiffuse:   [3]float32{0.8, 0.8, 0.8},
			LampSpecular:  [3]float32{1, 1, 1},
			LampConstant:  1,
			LampLinear:    0.09,
			LampQuadratic: 0.032,

			SpotPosition:    [3]float32{0, 6, 10},
			SpotDirection:   [3]float32{0, -0.5, -1},
			SpotAmbient:     [3]float32{0.1, 0.1, 0.1},
			SpotDiffuse:     [3]float32{0.8, 0.8, 0.8},
			SpotSpecular:    [3]float32{1, 1, 1},
			SpotConstant:    1,
			SpotLinear:      0.09,
			SpotQuadratic:   0.032,
			SpotInnerCutOff: 12.5,
			SpotOuterCutOff: 15,
		},
		Assets: AssetsConfig{
			Dirs: []string{"."},
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}

// Validate reports settings the demo cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Window.Backend {
	case BackendGLFW, BackendSDL:
	default:
		errs = append(errs, fmt.Errorf("window.backend: unknown backend %q", c.Window.Backend))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Water.ReflectionWidth <= 0 || c.Water.ReflectionHeight <= 0 {
		errs = append(errs, fmt.Errorf("water: invalid reflection size %dx%d", c.Water.ReflectionWidth, c.Water.ReflectionHeight))
	}
	if c.Water.RefractionWidth <= 0 || c.Water.RefractionHeight <= 0 {
		errs = append(errs, fmt.Errorf("water: invalid refraction size %dx%d", c.Water.RefractionWidth, c.Water.RefractionHeight))
	}
	if c.Water.WaveSpeed < 0 {
		errs = append(errs, errors.New("water.wave_speed must not be negative"))
	}
	if c.Lighting.DaySpeed < 0 {
		errs = append(errs, errors.New("lighting.day_speed must not be negative"))
	}
	if c.Lighting.SpotInnerCutOff < 0 || c.Lighting.SpotOuterCutOff < c.Lighting.SpotInnerCutOff || c.Lighting.SpotOuterCutOff >= 90 {
		errs = append(errs, fmt.Errorf("lighting: invalid spot cone %g..%g", c.Lighting.SpotInnerCutOff, c.Lighting.SpotOuterCutOff))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: invalid clip range %g..%g", c.Camera.Near, c.Camera.Far))
	}

	return errors.Join(errs...)
}
