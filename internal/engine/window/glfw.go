package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/island/internal/config"
	"github.com/Faultbox/island/internal/engine/input"
	"github.com/Faultbox/island/internal/logger"
)

// GLFW is a window backed by GLFW 3.3.
type GLFW struct {
	handle  *glfw.Window
	pending []input.Event
}

// NewGLFW creates a GLFW window with an OpenGL 4.1 core context. The cursor
// is captured for mouse look.
func NewGLFW(cfg config.WindowConfig) (*GLFW, error) {
	log := logger.Named("window")
	log.Info("initializing GLFW")

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	handle.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	w := &GLFW{handle: handle}
	w.installCallbacks()

	fw, fh := handle.GetFramebufferSize()
	log.Info("window created",
		zap.String("backend", config.BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("drawable_width", fw),
		zap.Int("drawable_height", fh),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync))

	return w, nil
}

func (w *GLFW) installCallbacks() {
	w.handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press, glfw.Repeat:
			w.push(input.Event{Type: input.EventKeyDown, Key: glfwKey(key)})
		case glfw.Release:
			w.push(input.Event{Type: input.EventKeyUp, Key: glfwKey(key)})
		}
	})
	w.handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.push(input.Event{Type: input.EventMouseMove, X: x, Y: y})
	})
	w.handle.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.push(input.Event{Type: input.EventScroll, ScrollY: yoff})
	})
	// Framebuffer size, not window size: the viewport is in physical pixels.
	w.handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(input.Event{Type: input.EventResize, Width: width, Height: height})
	})
	w.handle.SetCloseCallback(func(_ *glfw.Window) {
		w.push(input.Event{Type: input.EventQuit})
	})
}

func (w *GLFW) push(e input.Event) {
	w.pending = append(w.pending, e)
}

func glfwKey(k glfw.Key) input.Key {
	switch k {
	case glfw.KeyW:
		return input.KeyW
	case glfw.KeyA:
		return input.KeyA
	case glfw.KeyS:
		return input.KeyS
	case glfw.KeyD:
		return input.KeyD
	case glfw.KeySpace:
		return input.KeySpace
	case glfw.KeyLeftShift:
		return input.KeyLeftShift
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeyF12:
		return input.KeyF12
	case glfw.KeyL:
		return input.KeyL
	default:
		return input.KeyUnknown
	}
}

// PollEvents processes pending GLFW events.
func (w *GLFW) PollEvents(in *input.Input) {
	glfw.PollEvents()
	for _, e := range w.pending {
		in.Push(e)
	}
	w.pending = w.pending[:0]
}

// SwapBuffers swaps the OpenGL buffers.
func (w *GLFW) SwapBuffers() {
	w.handle.SwapBuffers()
}

// DrawableSize returns the framebuffer size in pixels.
func (w *GLFW) DrawableSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

// SetTitle sets the window title.
func (w *GLFW) SetTitle(title string) {
	w.handle.SetTitle(title)
}

// Close destroys the window and terminates GLFW.
func (w *GLFW) Close() {
	logger.Named("window").Info("closing window")
	w.handle.Destroy()
	glfw.Terminate()
}
