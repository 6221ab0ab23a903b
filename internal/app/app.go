// Package app runs the island demo: it owns every subsystem and drives the
// per-frame input, update and render sequence.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/island/internal/assets"
	"github.com/Faultbox/island/internal/config"
	"github.com/Faultbox/island/internal/engine/camera"
	"github.com/Faultbox/island/internal/engine/debug"
	"github.com/Faultbox/island/internal/engine/framebuffer"
	"github.com/Faultbox/island/internal/engine/gfx"
	"github.com/Faultbox/island/internal/engine/input"
	"github.com/Faultbox/island/internal/engine/lighting"
	"github.com/Faultbox/island/internal/engine/scene"
	"github.com/Faultbox/island/internal/engine/texture"
	"github.com/Faultbox/island/internal/engine/water"
	"github.com/Faultbox/island/internal/logger"
)

// Window is the part of the OS window the app drives.
type Window interface {
	PollEvents(in *input.Input)
	SwapBuffers()
	DrawableSize() (width, height int)
	SetTitle(title string)
	Close()
}

// App holds all state that the frame loop reads or writes.
type App struct {
	cfg *config.Config
	log *zap.Logger
	win Window
	dev gfx.Device

	input  *input.Input
	camera *camera.Camera
	rig    lighting.Rig

	assets  *assets.Manager
	targets *framebuffer.Manager
	scene   *scene.Scene
	pipe    *scene.Pipeline
	dudv    *texture.Texture
	normal  *texture.Texture
	shots   *debug.ScreenshotCapture

	now     func() time.Time
	start   time.Time
	last    time.Time
	elapsed float64
	frames  int
}

// New creates every GPU resource. On success it takes ownership of win,
// which is then closed by Close; on error the caller still owns it. Shader
// and framebuffer failures are fatal.
func New(cfg *config.Config, win Window, dev gfx.Device) (*App, error) {
	a := &App{
		cfg:    cfg,
		log:    logger.Named("app"),
		win:    win,
		dev:    dev,
		input:  input.New(),
		camera: camera.FromConfig(cfg.Camera),
		rig:    lighting.FromConfig(cfg.Lighting),
		shots:  debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "island"),
		now:    time.Now,
	}

	dw, dh := win.DrawableSize()
	var err error
	a.targets, err = framebuffer.NewManager(dev, framebuffer.WaterConfig{
		ReflectionWidth:  int32(cfg.Water.ReflectionWidth),
		ReflectionHeight: int32(cfg.Water.ReflectionHeight),
		RefractionWidth:  int32(cfg.Water.RefractionWidth),
		RefractionHeight: int32(cfg.Water.RefractionHeight),
	}, dw, dh)
	if err != nil {
		return nil, fmt.Errorf("creating water targets: %w", err)
	}

	a.assets = assets.NewManager()
	for _, dir := range cfg.Assets.Dirs {
		if err := a.assets.AddDir(dir); err != nil {
			a.log.Warn("skipping asset dir", zap.Error(err))
		}
	}

	opts := texture.DefaultOptions()
	opts.Read = a.assets.Load
	a.dudv = texture.LoadOrFallback(dev, cfg.Water.DuDvMap, opts, texture.FlatDuDv)
	a.normal = texture.LoadOrFallback(dev, cfg.Water.NormalMap, opts, texture.FlatNormal)
	a.scene = scene.BuildIsland(dev)

	a.pipe, err = scene.NewPipeline(dev, a.targets, a.scene, a.waterParams())
	if err != nil {
		a.release()
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}

	a.start = a.now()
	a.last = a.start

	a.log.Info("app initialized",
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
		zap.Bool("directional_only", a.rig.DirectionalOnly),
		zap.Float64("day_speed", a.rig.DaySpeed),
		zap.Float64("wave_speed", cfg.Water.WaveSpeed))
	return a, nil
}

func (a *App) waterParams() scene.WaterParams {
	p := scene.DefaultWaterParams()
	p.WaveStrength = a.cfg.Water.WaveStrength
	p.Tiling = a.cfg.Water.Tiling
	p.Tint = mgl32.Vec3(a.cfg.Water.Tint)
	p.Near = a.cfg.Camera.Near
	p.Far = a.cfg.Camera.Far
	return p
}

// Run drives frames until a quit is requested.
func (a *App) Run() error {
	a.log.Info("starting frame loop")

	fpsTimer := a.now()
	for !a.input.ShouldQuit() {
		a.Frame(a.now())

		if a.now().Sub(fpsTimer) >= time.Second {
			a.win.SetTitle(fmt.Sprintf("%s | %d FPS", a.cfg.Window.Title, a.frames))
			if a.cfg.Debug.LogFPS {
				a.log.Debug("fps",
					zap.Int("count", a.frames),
					zap.Float64("elapsed", a.elapsed))
			}
			a.frames = 0
			fpsTimer = a.now()
		}
	}

	a.log.Info("frame loop stopped", zap.Float64("elapsed", a.elapsed))
	return nil
}

// Frame runs one iteration of the loop at the given wall time.
func (a *App) Frame(now time.Time) {
	dt := float32(now.Sub(a.last).Seconds())
	a.last = now
	a.elapsed = now.Sub(a.start).Seconds()

	a.input.Begin()
	a.win.PollEvents(a.input)
	a.handleInput(dt)

	a.render()
	if a.input.IsKeyPressed(input.KeyF12) {
		a.screenshot()
	}

	a.win.SwapBuffers()
	a.frames++
}

func (a *App) handleInput(dt float32) {
	in := a.input

	if w, h, ok := in.Resized(); ok {
		a.targets.SetDrawableSize(w, h)
		a.log.Debug("drawable resized", zap.Int("width", w), zap.Int("height", h))
	}
	if in.IsKeyPressed(input.KeyEscape) {
		in.RequestQuit()
	}
	if in.IsKeyPressed(input.KeyL) {
		a.rig.DirectionalOnly = !a.rig.DirectionalOnly
		a.log.Info("night lights toggled", zap.Bool("directional_only", a.rig.DirectionalOnly))
	}

	moves := []struct {
		key input.Key
		dir camera.Movement
	}{
		{input.KeyW, camera.Forward},
		{input.KeyS, camera.Backward},
		{input.KeyA, camera.Left},
		{input.KeyD, camera.Right},
		{input.KeySpace, camera.Up},
		{input.KeyLeftShift, camera.Down},
	}
	for _, m := range moves {
		if in.IsKeyDown(m.key) {
			a.camera.ProcessKeyboard(m.dir, dt)
		}
	}

	if dx, dy := in.MouseDelta(); dx != 0 || dy != 0 {
		a.camera.ProcessMouseMovement(dx, dy, true)
	}
	if s := in.Scroll(); s != 0 {
		a.camera.ProcessMouseScroll(s)
	}
}

func (a *App) render() {
	h := a.cfg.Water.Height
	a.pipe.Render(scene.FrameState{
		Camera:      a.camera,
		Light:       a.rig.At(a.elapsed),
		WaterHeight: h,
		WaterModel:  water.ModelMatrix(h, a.cfg.Water.Size),
		WaveOffset:  water.SamplingOffset(a.elapsed, a.cfg.Water.WaveSpeed),
		DuDv:        a.dudv.ID(),
		Normal:      a.normal.ID(),
	})
}

func (a *App) screenshot() {
	files, err := a.shots.CaptureFrame(a.dev, a.targets)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.Strings("files", files))
}

// Close releases GPU resources and closes the window.
func (a *App) Close() {
	a.log.Info("closing app")
	a.release()
	if a.win != nil {
		a.win.Close()
		a.win = nil
	}
}

func (a *App) release() {
	if a.pipe != nil {
		a.pipe.Destroy()
		a.pipe = nil
	}
	if a.scene != nil {
		a.scene.Destroy()
		a.scene = nil
	}
	if a.dudv != nil {
		a.dudv.Destroy()
	}
	if a.normal != nil {
		a.normal.Destroy()
	}
	if a.targets != nil {
		a.targets.Destroy()
		a.targets = nil
	}
	if a.assets != nil {
		a.assets.Close()
	}
}
