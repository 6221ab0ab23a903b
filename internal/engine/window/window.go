// Package window creates the OS window and OpenGL 4.1 core context.
// Two backends are available: GLFW (default) and SDL2.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/island/internal/config"
	"github.com/Faultbox/island/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Window is an OS window owning the current OpenGL context.
type Window interface {
	// PollEvents pushes pending events into in.
	PollEvents(in *input.Input)
	SwapBuffers()
	// DrawableSize returns the framebuffer size in physical pixels. On HiDPI
	// displays it is larger than the logical window size.
	DrawableSize() (width, height int)
	SetTitle(title string)
	Close()
}

// New creates a window using the configured backend.
func New(cfg config.WindowConfig) (Window, error) {
	switch cfg.Backend {
	case config.BackendGLFW, "":
		return NewGLFW(cfg)
	case config.BackendSDL:
		return NewSDL(cfg)
	default:
		return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
	}
}
