// Package framebuffer provides offscreen render targets for the water passes.
package framebuffer

import (
	"errors"
	"fmt"

	"github.com/Faultbox/island/internal/engine/gfx"
)

// ErrIncomplete is returned when a framebuffer fails its completeness check.
// It indicates a driver capability mismatch and is not retried.
var ErrIncomplete = errors.New("framebuffer incomplete")

// DepthKind selects how a target stores depth.
type DepthKind int

const (
	// DepthRenderbuffer stores depth in a renderbuffer that cannot be sampled.
	DepthRenderbuffer DepthKind = iota
	// DepthTexture stores depth in a texture that can be sampled later.
	DepthTexture
)

func (k DepthKind) String() string {
	switch k {
	case DepthRenderbuffer:
		return "renderbuffer"
	case DepthTexture:
		return "texture"
	default:
		return fmt.Sprintf("DepthKind(%d)", int(k))
	}
}

// Spec describes a render target to create.
type Spec struct {
	Name   string
	Width  int32
	Height int32
	Depth  DepthKind
	// Wrap is the color texture wrap mode; zero means gfx.ClampToEdge.
	Wrap int32
}

// Target is an offscreen render destination with a color texture and a
// depth attachment. Its dimensions are fixed at creation.
type Target struct {
	dev          gfx.Device
	name         string
	fbo          uint32
	colorTexture uint32
	depthRBO     uint32
	depthTexture uint32
	depthKind    DepthKind
	width        int32
	height       int32
}

// New creates a render target. The default framebuffer is bound on return.
func New(dev gfx.Device, spec Spec) (*Target, error) {
	if spec.Width < 1 {
		spec.Width = 1
	}
	if spec.Height < 1 {
		spec.Height = 1
	}
	if spec.Wrap == 0 {
		spec.Wrap = gfx.ClampToEdge
	}

	t := &Target{
		dev:       dev,
		name:      spec.Name,
		depthKind: spec.Depth,
		width:     spec.Width,
		height:    spec.Height,
	}

	if err := t.create(spec.Wrap); err != nil {
		return nil, fmt.Errorf("creating %s target: %w", spec.Name, err)
	}

	return t, nil
}

func (t *Target) create(wrap int32) error {
	d := t.dev

	t.fbo = d.GenFramebuffer()
	d.BindFramebuffer(t.fbo)
	d.DrawBuffer(gfx.ColorAttachment0)

	// Color attachment
	t.colorTexture = d.GenTexture()
	d.BindTexture(t.colorTexture)
	d.TexImage2D(gfx.RGB8, t.width, t.height, gfx.RGB, gfx.UnsignedByte, nil)
	d.TexParameteri(gfx.TextureMinFilter, gfx.Linear)
	d.TexParameteri(gfx.TextureMagFilter, gfx.Linear)
	d.TexParameteri(gfx.TextureWrapS, wrap)
	d.TexParameteri(gfx.TextureWrapT, wrap)
	d.FramebufferTexture2D(gfx.ColorAttachment0, t.colorTexture)

	// Depth attachment
	switch t.depthKind {
	case DepthTexture:
		t.depthTexture = d.GenTexture()
		d.BindTexture(t.depthTexture)
		d.TexImage2D(gfx.DepthComponent24, t.width, t.height, gfx.DepthComponent, gfx.Float, nil)
		d.TexParameteri(gfx.TextureMinFilter, gfx.Linear)
		d.TexParameteri(gfx.TextureMagFilter, gfx.Linear)
		d.TexParameteri(gfx.TextureWrapS, gfx.ClampToEdge)
		d.TexParameteri(gfx.TextureWrapT, gfx.ClampToEdge)
		d.FramebufferTexture2D(gfx.DepthAttachment, t.depthTexture)
	default:
		t.depthRBO = d.GenRenderbuffer()
		d.BindRenderbuffer(t.depthRBO)
		d.RenderbufferStorage(gfx.DepthComponent24, t.width, t.height)
		d.FramebufferRenderbuffer(gfx.DepthAttachment, t.depthRBO)
	}
	d.BindTexture(0)

	if status := d.CheckFramebufferStatus(); status != gfx.FramebufferComplete {
		d.BindFramebuffer(0)
		t.Destroy()
		return fmt.Errorf("%w: status 0x%x", ErrIncomplete, status)
	}

	d.BindFramebuffer(0)
	return nil
}

// Bind makes this target the render destination and sets the viewport to
// its stored size.
func (t *Target) Bind() {
	t.dev.BindTexture(0)
	t.dev.BindFramebuffer(t.fbo)
	t.dev.Viewport(0, 0, t.width, t.height)
}

// Clear clears color and depth with the given color.
func (t *Target) Clear(r, g, b, a float32) {
	t.dev.ClearColor(r, g, b, a)
	t.dev.Clear(gfx.ColorBufferBit | gfx.DepthBufferBit)
}

// Name returns the target's name.
func (t *Target) Name() string {
	return t.name
}

// ColorTexture returns the color attachment texture ID.
func (t *Target) ColorTexture() uint32 {
	return t.colorTexture
}

// DepthTexture returns the depth texture ID, or 0 for renderbuffer depth.
func (t *Target) DepthTexture() uint32 {
	return t.depthTexture
}

// DepthKind returns how the target stores depth.
func (t *Target) DepthKind() DepthKind {
	return t.depthKind
}

// FBO returns the underlying framebuffer object ID.
func (t *Target) FBO() uint32 {
	return t.fbo
}

// Size returns the target dimensions.
func (t *Target) Size() (width, height int32) {
	return t.width, t.height
}

// ReadPixels reads the color attachment as RGBA, bottom row first.
// The target is left bound.
func (t *Target) ReadPixels() []byte {
	t.dev.BindFramebuffer(t.fbo)
	return t.dev.ReadPixels(0, 0, t.width, t.height)
}

// Destroy releases all GPU resources. Safe to call more than once.
func (t *Target) Destroy() {
	if t.fbo != 0 {
		t.dev.DeleteFramebuffer(t.fbo)
		t.fbo = 0
	}
	if t.colorTexture != 0 {
		t.dev.DeleteTexture(t.colorTexture)
		t.colorTexture = 0
	}
	if t.depthTexture != 0 {
		t.dev.DeleteTexture(t.depthTexture)
		t.depthTexture = 0
	}
	if t.depthRBO != 0 {
		t.dev.DeleteRenderbuffer(t.depthRBO)
		t.depthRBO = 0
	}
}
