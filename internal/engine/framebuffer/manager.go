package framebuffer

import (
	"fmt"

	"github.com/Faultbox/island/internal/engine/gfx"
)

// Default water target resolutions.
const (
	DefaultReflectionWidth  = 320
	DefaultReflectionHeight = 180
	DefaultRefractionWidth  = 320
	DefaultRefractionHeight = 720
)

// WaterConfig sizes the reflection and refraction targets.
type WaterConfig struct {
	ReflectionWidth  int32
	ReflectionHeight int32
	RefractionWidth  int32
	RefractionHeight int32
}

// DefaultWaterConfig returns the default water target sizes.
func DefaultWaterConfig() WaterConfig {
	return WaterConfig{
		ReflectionWidth:  DefaultReflectionWidth,
		ReflectionHeight: DefaultReflectionHeight,
		RefractionWidth:  DefaultRefractionWidth,
		RefractionHeight: DefaultRefractionHeight,
	}
}

// Manager owns the reflection and refraction targets for the lifetime of
// the water subsystem and restores the window framebuffer between passes.
type Manager struct {
	dev        gfx.Device
	Reflection *Target
	Refraction *Target

	// Physical (DPI-scaled) size of the window's drawable area.
	drawableWidth  int32
	drawableHeight int32

	destroyed bool
}

// NewManager creates both water targets. Reflection depth uses a
// renderbuffer; refraction depth uses a texture so it can be sampled by
// the water shader. drawableWidth/Height are in physical pixels.
func NewManager(dev gfx.Device, cfg WaterConfig, drawableWidth, drawableHeight int) (*Manager, error) {
	m := &Manager{dev: dev}
	m.SetDrawableSize(drawableWidth, drawableHeight)

	var err error
	m.Reflection, err = New(dev, Spec{
		Name:   "reflection",
		Width:  cfg.ReflectionWidth,
		Height: cfg.ReflectionHeight,
		Depth:  DepthRenderbuffer,
	})
	if err != nil {
		return nil, err
	}

	m.Refraction, err = New(dev, Spec{
		Name:   "refraction",
		Width:  cfg.RefractionWidth,
		Height: cfg.RefractionHeight,
		Depth:  DepthTexture,
	})
	if err != nil {
		m.Reflection.Destroy()
		return nil, err
	}

	m.Unbind()
	return m, nil
}

// SetDrawableSize records the window's physical pixel size. Call it from the
// framebuffer-resize handler with framebuffer (not window) coordinates.
func (m *Manager) SetDrawableSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	m.drawableWidth = int32(width)
	m.drawableHeight = int32(height)
}

// DrawableSize returns the physical size used by Unbind.
func (m *Manager) DrawableSize() (width, height int32) {
	return m.drawableWidth, m.drawableHeight
}

// Unbind restores the window framebuffer and resets the viewport to the
// physical drawable size.
func (m *Manager) Unbind() {
	m.dev.BindFramebuffer(0)
	m.dev.Viewport(0, 0, m.drawableWidth, m.drawableHeight)
}

// ReflectionTexture returns the reflection color texture.
func (m *Manager) ReflectionTexture() uint32 {
	return m.Reflection.ColorTexture()
}

// RefractionTexture returns the refraction color texture.
func (m *Manager) RefractionTexture() uint32 {
	return m.Refraction.ColorTexture()
}

// RefractionDepthTexture returns the refraction depth texture.
func (m *Manager) RefractionDepthTexture() uint32 {
	return m.Refraction.DepthTexture()
}

// String describes the managed targets.
func (m *Manager) String() string {
	rw, rh := m.Reflection.Size()
	fw, fh := m.Refraction.Size()
	return fmt.Sprintf("reflection %dx%d (%s), refraction %dx%d (%s)",
		rw, rh, m.Reflection.DepthKind(), fw, fh, m.Refraction.DepthKind())
}

// Destroy releases both targets. Subsequent calls do nothing.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	if m.Reflection != nil {
		m.Reflection.Destroy()
	}
	if m.Refraction != nil {
		m.Refraction.Destroy()
	}
}
