// Package input turns window backend events into per-frame input state.
package input

// Key identifies a key the demo reacts to. Backends map their native
// codes onto these and report everything else as KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyLeftShift
	KeyEscape
	KeyF12
	KeyL
)

// Event types.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventScroll
)

// Event is a backend-neutral input event.
type Event struct {
	Type EventType
	Key  Key
	// Width and Height carry the new drawable size in physical pixels.
	Width  int
	Height int
	// X and Y are the cursor position; ScrollY the wheel offset.
	X       float64
	Y       float64
	ScrollY float64
}

// Input accumulates events between frames.
type Input struct {
	events  []Event
	down    map[Key]bool
	pressed map[Key]bool

	firstMouse   bool
	lastX, lastY float64
	dx, dy       float64
	scroll       float64

	quit          bool
	resized       bool
	width, height int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:     make([]Event, 0, 16),
		down:       make(map[Key]bool),
		pressed:    make(map[Key]bool),
		firstMouse: true,
	}
}

// Begin starts a new frame, dropping per-frame state. Held keys and the
// quit flag persist.
func (i *Input) Begin() {
	i.events = i.events[:0]
	clear(i.pressed)
	i.dx, i.dy = 0, 0
	i.scroll = 0
	i.resized = false
}

// Push applies one event.
func (i *Input) Push(e Event) {
	i.events = append(i.events, e)

	switch e.Type {
	case EventQuit:
		i.quit = true

	case EventResize:
		i.resized = true
		i.width, i.height = e.Width, e.Height

	case EventKeyDown:
		if !i.down[e.Key] {
			i.pressed[e.Key] = true
		}
		i.down[e.Key] = true

	case EventKeyUp:
		i.down[e.Key] = false

	case EventMouseMove:
		// The first position only seeds the tracker so the camera does not
		// jump when the cursor enters the window.
		if i.firstMouse {
			i.lastX, i.lastY = e.X, e.Y
			i.firstMouse = false
		}
		i.dx += e.X - i.lastX
		i.dy += i.lastY - e.Y // y grows downward on screen
		i.lastX, i.lastY = e.X, e.Y

	case EventScroll:
		i.scroll += e.ScrollY
	}
}

// Events returns the events pushed since Begin.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyDown reports whether the key is held.
func (i *Input) IsKeyDown(k Key) bool {
	return i.down[k]
}

// IsKeyPressed reports whether the key went down this frame.
func (i *Input) IsKeyPressed(k Key) bool {
	return i.pressed[k]
}

// MouseDelta returns the cursor movement this frame. Positive dy is up.
func (i *Input) MouseDelta() (dx, dy float32) {
	return float32(i.dx), float32(i.dy)
}

// Scroll returns the accumulated wheel offset this frame.
func (i *Input) Scroll() float32 {
	return float32(i.scroll)
}

// Resized returns the latest drawable size if it changed this frame.
func (i *Input) Resized() (width, height int, ok bool) {
	return i.width, i.height, i.resized
}

// ShouldQuit reports whether a quit was requested.
func (i *Input) ShouldQuit() bool {
	return i.quit
}

// RequestQuit asks the loop to stop after the current frame.
func (i *Input) RequestQuit() {
	i.quit = true
}
