// Package gfx defines the graphics command surface used by the engine.
//
// Engine packages issue draw and state calls through Device rather than
// calling OpenGL directly, so that pass ordering and state leaks can be
// verified without a live context. Enum values match their OpenGL
// counterparts and are passed through unchanged by the opengl backend.
package gfx

import "github.com/go-gl/mathgl/mgl32"

// Capabilities for Enable/Disable.
const (
	DepthTest     uint32 = 0x0B71
	Blend         uint32 = 0x0BE2
	CullFace      uint32 = 0x0B44
	ClipDistance0 uint32 = 0x3000
)

// Clear mask bits.
const (
	ColorBufferBit uint32 = 0x4000
	DepthBufferBit uint32 = 0x0100
)

// Texture parameters and values.
const (
	TextureMagFilter   uint32 = 0x2800
	TextureMinFilter   uint32 = 0x2801
	TextureWrapS       uint32 = 0x2802
	TextureWrapT       uint32 = 0x2803
	Linear             int32  = 0x2601
	LinearMipmapLinear int32  = 0x2703
	Repeat             int32  = 0x2901
	ClampToEdge        int32  = 0x812F
)

// Pixel formats and component types.
const (
	DepthComponent   uint32 = 0x1902
	RGB              uint32 = 0x1907
	RGBA             uint32 = 0x1908
	RGB8             uint32 = 0x8051
	RGBA8            uint32 = 0x8058
	DepthComponent24 uint32 = 0x81A6
	UnsignedByte     uint32 = 0x1401
	Float            uint32 = 0x1406
)

// Framebuffer attachments and status.
const (
	ColorAttachment0    uint32 = 0x8CE0
	DepthAttachment     uint32 = 0x8D00
	FramebufferComplete uint32 = 0x8CD5
)

// Blend factors.
const (
	SrcAlpha         uint32 = 0x0302
	OneMinusSrcAlpha uint32 = 0x0303
)

// Primitive modes.
const (
	Lines     uint32 = 0x0001
	Triangles uint32 = 0x0004
)

// Shader stages.
const (
	FragmentShader uint32 = 0x8B30
	VertexShader   uint32 = 0x8B31
)

// Attrib describes one float vertex attribute inside an interleaved buffer.
type Attrib struct {
	Index  uint32
	Size   int32
	Offset int
}

// Device is the subset of the graphics API the engine relies on.
// All methods must be called from the thread owning the context.
type Device interface {
	// Framebuffers and renderbuffers.
	GenFramebuffer() uint32
	BindFramebuffer(fbo uint32)
	FramebufferTexture2D(attachment, texture uint32)
	FramebufferRenderbuffer(attachment, rbo uint32)
	CheckFramebufferStatus() uint32
	DrawBuffer(attachment uint32)
	DeleteFramebuffer(fbo uint32)
	GenRenderbuffer() uint32
	BindRenderbuffer(rbo uint32)
	RenderbufferStorage(format uint32, width, height int32)
	DeleteRenderbuffer(rbo uint32)

	// Textures.
	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(texture uint32)
	TexImage2D(internalFormat uint32, width, height int32, format, xtype uint32, pixels []byte)
	TexParameteri(pname uint32, value int32)
	GenerateMipmap()
	DeleteTexture(texture uint32)

	// Fixed-function state.
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Enable(capability uint32)
	Disable(capability uint32)
	BlendFunc(src, dst uint32)
	ReadPixels(x, y, width, height int32) []byte

	// Programs.
	CompileShader(stage uint32, source string) (uint32, error)
	LinkProgram(shaders ...uint32) (uint32, error)
	DeleteShader(shader uint32)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, v mgl32.Vec2)
	Uniform3f(location int32, v mgl32.Vec3)
	Uniform4f(location int32, v mgl32.Vec4)
	UniformMatrix3f(location int32, m mgl32.Mat3)
	UniformMatrix4f(location int32, m mgl32.Mat4)

	// Geometry.
	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BufferVertices(vbo uint32, data []float32, stride int32, attribs []Attrib)
	BufferIndices(ebo uint32, data []uint32)
	DeleteBuffer(buffer uint32)
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32)
}

// TextureUnit returns the GL_TEXTUREn enum for a zero-based unit index.
func TextureUnit(i int) uint32 {
	return 0x84C0 + uint32(i)
}
