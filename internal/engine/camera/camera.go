// Package camera provides the fly camera used to view the island.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/island/internal/config"
	"github.com/Faultbox/island/internal/engine/water"
)

// Movement directions for ProcessKeyboard.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Up
	Down
)

// Zoom (field of view) limits in degrees.
const (
	MinZoom = 1.0
	MaxZoom = 45.0

	maxPitch = 89.0
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera is a free-flying camera driven by Euler angles in degrees.
type Camera struct {
	Position mgl32.Vec3

	// Derived from Yaw/Pitch by updateVectors.
	Front mgl32.Vec3
	Up    mgl32.Vec3
	Right mgl32.Vec3

	Yaw   float32
	Pitch float32

	Speed       float32
	Sensitivity float32
	Zoom        float32

	Near float32
	Far  float32
}

// New creates a camera at position looking along yaw/pitch.
func New(position mgl32.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:    position,
		Yaw:         yaw,
		Pitch:       pitch,
		Speed:       20,
		Sensitivity: 0.1,
		Zoom:        MaxZoom,
		Near:        0.1,
		Far:         500,
	}
	c.updateVectors()
	return c
}

// FromConfig creates a camera from configuration.
func FromConfig(cfg config.CameraConfig) *Camera {
	c := New(mgl32.Vec3(cfg.Position), cfg.Yaw, cfg.Pitch)
	c.Speed = cfg.Speed
	c.Sensitivity = cfg.Sensitivity
	c.Zoom = mgl32.Clamp(cfg.Zoom, MinZoom, MaxZoom)
	c.Near = cfg.Near
	c.Far = cfg.Far
	return c
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// Projection returns a perspective projection for the given aspect ratio.
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, c.Near, c.Far)
}

// ProcessKeyboard moves the camera. dt is the frame delta in seconds.
func (c *Camera) ProcessKeyboard(dir Movement, dt float32) {
	v := c.Speed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(v))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(v))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(v))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(v))
	case Up:
		c.Position = c.Position.Add(worldUp.Mul(v))
	case Down:
		c.Position = c.Position.Sub(worldUp.Mul(v))
	}
}

// ProcessMouseMovement turns the camera by a cursor delta in pixels.
// Positive dy looks up.
func (c *Camera) ProcessMouseMovement(dx, dy float32, constrainPitch bool) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity

	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -maxPitch, maxPitch)
	}
	c.updateVectors()
}

// ProcessMouseScroll zooms by changing the field of view.
func (c *Camera) ProcessMouseScroll(dy float32) {
	c.Zoom = mgl32.Clamp(c.Zoom-dy, MinZoom, MaxZoom)
}

// InvertPitch negates the pitch angle.
func (c *Camera) InvertPitch() {
	c.Pitch = -c.Pitch
	c.updateVectors()
}

// Mirror reflects the camera about the horizontal plane y = h:
// y becomes 2h - y and pitch is negated. Applying it twice restores the
// original pose.
func (c *Camera) Mirror(h float32) {
	c.Position[1] = water.MirrorHeight(c.Position[1], h)
	c.InvertPitch()
}

// Reflect mirrors the camera about y = h and returns a func that restores
// the exact previous pose. Use it with defer so the camera is restored on
// every exit path:
//
//	restore := cam.Reflect(h)
//	defer restore()
func (c *Camera) Reflect(h float32) (restore func()) {
	saved := c.pose()
	c.Mirror(h)
	return func() { c.setPose(saved) }
}

type pose struct {
	position mgl32.Vec3
	yaw      float32
	pitch    float32
}

func (c *Camera) pose() pose {
	return pose{position: c.Position, yaw: c.Yaw, pitch: c.Pitch}
}

func (c *Camera) setPose(p pose) {
	c.Position = p.position
	c.Yaw = p.yaw
	c.Pitch = p.pitch
	c.updateVectors()
}

func (c *Camera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(worldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
