package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/island/internal/config"
	"github.com/Faultbox/island/internal/engine/input"
	"github.com/Faultbox/island/internal/logger"
)

// SDL is a window backed by SDL2.
type SDL struct {
	window    *sdl.Window
	glContext sdl.GLContext

	// Virtual cursor position integrated from relative motion.
	cursorX, cursorY float64
}

// NewSDL creates an SDL2 window with an OpenGL 4.1 core context.
func NewSDL(cfg config.WindowConfig) (*SDL, error) {
	log := logger.Named("window")
	log.Info("initializing SDL2")

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window is created.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	win, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}
	sdl.SetRelativeMouseMode(true)

	w := &SDL{window: win, glContext: ctx}
	dw, dh := w.DrawableSize()
	log.Info("window created",
		zap.String("backend", config.BackendSDL),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync))

	return w, nil
}

// PollEvents drains the SDL event queue into in.
func (w *SDL) PollEvents(in *input.Input) {
	// Relative mode reports deltas; feed an absolute position so Input can
	// difference it like any other backend.
	var x, y float64
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			in.Push(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.DrawableSize()
				in.Push(input.Event{Type: input.EventResize, Width: width, Height: height})
			}

		case *sdl.KeyboardEvent:
			k := sdlKey(e.Keysym.Scancode)
			if e.Type == sdl.KEYDOWN {
				in.Push(input.Event{Type: input.EventKeyDown, Key: k})
			} else if e.Type == sdl.KEYUP {
				in.Push(input.Event{Type: input.EventKeyUp, Key: k})
			}

		case *sdl.MouseMotionEvent:
			x += float64(e.XRel)
			y += float64(e.YRel)
			in.Push(input.Event{Type: input.EventMouseMove, X: w.cursorX + x, Y: w.cursorY + y})

		case *sdl.MouseWheelEvent:
			in.Push(input.Event{Type: input.EventScroll, ScrollY: float64(e.Y)})
		}
	}
	w.cursorX += x
	w.cursorY += y
}

func sdlKey(s sdl.Scancode) input.Key {
	switch s {
	case sdl.SCANCODE_W:
		return input.KeyW
	case sdl.SCANCODE_A:
		return input.KeyA
	case sdl.SCANCODE_S:
		return input.KeyS
	case sdl.SCANCODE_D:
		return input.KeyD
	case sdl.SCANCODE_SPACE:
		return input.KeySpace
	case sdl.SCANCODE_LSHIFT:
		return input.KeyLeftShift
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	case sdl.SCANCODE_F12:
		return input.KeyF12
	case sdl.SCANCODE_L:
		return input.KeyL
	default:
		return input.KeyUnknown
	}
}

// SwapBuffers swaps the OpenGL buffers.
func (w *SDL) SwapBuffers() {
	w.window.GLSwap()
}

// DrawableSize returns the GL drawable size in pixels.
func (w *SDL) DrawableSize() (int, int) {
	width, height := w.window.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *SDL) SetTitle(title string) {
	w.window.SetTitle(title)
}

// Close destroys the context and window and shuts down SDL2.
func (w *SDL) Close() {
	logger.Named("window").Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.window != nil {
		w.window.Destroy()
	}
	sdl.Quit()
}
