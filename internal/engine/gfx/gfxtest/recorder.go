// Package gfxtest provides a recording gfx.Device for tests.
package gfxtest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/island/internal/engine/gfx"
)

// Call is one recorded device command.
type Call struct {
	Name string
	Args []any
}

// Draw is a recorded draw command with the state it was issued under.
type Draw struct {
	VAO         uint32
	Program     uint32
	Framebuffer uint32
	Viewport    [4]int32
	ClipEnabled bool
	Blend       bool
	Count       int32
}

// Recorder implements gfx.Device by tracking state and recording calls.
type Recorder struct {
	Calls []Call
	Draws []Draw

	Framebuffer uint32
	ViewportBox [4]int32
	Program     uint32
	VAO         uint32
	Texture     uint32
	ActiveUnit  uint32
	Enabled     map[uint32]bool

	// Bound maps texture unit index to texture handle.
	Bound map[int]uint32
	// Uniforms holds the last value set per program and uniform name.
	Uniforms map[uint32]map[string]any

	// FramebufferStatus is returned by CheckFramebufferStatus.
	FramebufferStatus uint32
	// FailCompile makes CompileShader fail for sources containing this marker.
	FailCompile string
	// Pixels is returned by ReadPixels when non-nil.
	Pixels []byte

	next      uint32
	locations map[int32]string
	programOf map[int32]uint32
	live      map[string]map[uint32]bool
}

var _ gfx.Device = (*Recorder)(nil)

// ErrCompile is returned when FailCompile matches a shader source.
var ErrCompile = errors.New("recorder: forced compile failure")

// New returns an empty recorder reporting complete framebuffers.
func New() *Recorder {
	return &Recorder{
		Enabled:           make(map[uint32]bool),
		Bound:             make(map[int]uint32),
		Uniforms:          make(map[uint32]map[string]any),
		FramebufferStatus: gfx.FramebufferComplete,
		locations:         make(map[int32]string),
		programOf:         make(map[int32]uint32),
		live:              make(map[string]map[uint32]bool),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) gen(kind string) uint32 {
	r.next++
	if r.live[kind] == nil {
		r.live[kind] = make(map[uint32]bool)
	}
	r.live[kind][r.next] = true
	r.record("Gen"+kind, r.next)
	return r.next
}

func (r *Recorder) release(kind string, id uint32) {
	r.record("Delete"+kind, id)
	if !r.live[kind][id] {
		panic(fmt.Sprintf("gfxtest: delete of unknown or already deleted %s %d", kind, id))
	}
	delete(r.live[kind], id)
}

// Live returns how many objects of the given kind are currently allocated.
// Kinds: Framebuffer, Renderbuffer, Texture, Program, Shader, VertexArray, Buffer.
func (r *Recorder) Live(kind string) int {
	return len(r.live[kind])
}

// Count returns how many times the named call was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// DrawsWithVAO returns the draws issued with the given vertex array bound.
func (r *Recorder) DrawsWithVAO(vao uint32) []Draw {
	var out []Draw
	for _, d := range r.Draws {
		if d.VAO == vao {
			out = append(out, d)
		}
	}
	return out
}

// Uniform returns the last value uploaded for name in program.
func (r *Recorder) Uniform(program uint32, name string) (any, bool) {
	v, ok := r.Uniforms[program][name]
	return v, ok
}

// Reset drops recorded calls and draws but keeps object and binding state.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Draws = nil
}

func (r *Recorder) GenFramebuffer() uint32 { return r.gen("Framebuffer") }

func (r *Recorder) BindFramebuffer(fbo uint32) {
	r.record("BindFramebuffer", fbo)
	r.Framebuffer = fbo
}

func (r *Recorder) FramebufferTexture2D(attachment, texture uint32) {
	r.record("FramebufferTexture2D", attachment, texture)
}

func (r *Recorder) FramebufferRenderbuffer(attachment, rbo uint32) {
	r.record("FramebufferRenderbuffer", attachment, rbo)
}

func (r *Recorder) CheckFramebufferStatus() uint32 {
	r.record("CheckFramebufferStatus")
	return r.FramebufferStatus
}

func (r *Recorder) DrawBuffer(attachment uint32) { r.record("DrawBuffer", attachment) }

func (r *Recorder) DeleteFramebuffer(fbo uint32) { r.release("Framebuffer", fbo) }

func (r *Recorder) GenRenderbuffer() uint32 { return r.gen("Renderbuffer") }

func (r *Recorder) BindRenderbuffer(rbo uint32) { r.record("BindRenderbuffer", rbo) }

func (r *Recorder) RenderbufferStorage(format uint32, width, height int32) {
	r.record("RenderbufferStorage", format, width, height)
}

func (r *Recorder) DeleteRenderbuffer(rbo uint32) { r.release("Renderbuffer", rbo) }

func (r *Recorder) GenTexture() uint32 { return r.gen("Texture") }

func (r *Recorder) ActiveTexture(unit uint32) {
	r.record("ActiveTexture", unit)
	r.ActiveUnit = unit
}

func (r *Recorder) BindTexture(texture uint32) {
	r.record("BindTexture", texture)
	r.Texture = texture
	if r.ActiveUnit >= gfx.TextureUnit(0) {
		r.Bound[int(r.ActiveUnit-gfx.TextureUnit(0))] = texture
	}
}

func (r *Recorder) TexImage2D(internalFormat uint32, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("TexImage2D", internalFormat, width, height, format, xtype, len(pixels))
}

func (r *Recorder) TexParameteri(pname uint32, value int32) { r.record("TexParameteri", pname, value) }

func (r *Recorder) GenerateMipmap() { r.record("GenerateMipmap") }

func (r *Recorder) DeleteTexture(texture uint32) { r.release("Texture", texture) }

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
	r.ViewportBox = [4]int32{x, y, width, height}
}

func (r *Recorder) ClearColor(cr, cg, cb, ca float32) { r.record("ClearColor", cr, cg, cb, ca) }

func (r *Recorder) Clear(mask uint32) { r.record("Clear", mask) }

func (r *Recorder) Enable(capability uint32) {
	r.record("Enable", capability)
	r.Enabled[capability] = true
}

func (r *Recorder) Disable(capability uint32) {
	r.record("Disable", capability)
	r.Enabled[capability] = false
}

func (r *Recorder) BlendFunc(src, dst uint32) { r.record("BlendFunc", src, dst) }

func (r *Recorder) ReadPixels(x, y, width, height int32) []byte {
	r.record("ReadPixels", x, y, width, height)
	if r.Pixels != nil {
		return r.Pixels
	}
	return make([]byte, width*height*4)
}

func (r *Recorder) CompileShader(stage uint32, source string) (uint32, error) {
	if r.FailCompile != "" && strings.Contains(source, r.FailCompile) {
		r.record("CompileShader", stage, false)
		return 0, ErrCompile
	}
	return r.gen("Shader"), nil
}

func (r *Recorder) LinkProgram(shaders ...uint32) (uint32, error) {
	return r.gen("Program"), nil
}

func (r *Recorder) DeleteShader(shader uint32) { r.release("Shader", shader) }

func (r *Recorder) DeleteProgram(program uint32) { r.release("Program", program) }

func (r *Recorder) UseProgram(program uint32) {
	r.record("UseProgram", program)
	r.Program = program
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	loc := int32(len(r.locations))
	r.locations[loc] = name
	r.programOf[loc] = program
	r.record("UniformLocation", program, name)
	return loc
}

func (r *Recorder) setUniform(location int32, v any) {
	name, ok := r.locations[location]
	if !ok {
		return
	}
	program := r.programOf[location]
	if r.Uniforms[program] == nil {
		r.Uniforms[program] = make(map[string]any)
	}
	r.Uniforms[program][name] = v
	r.record("Uniform", name, v)
}

func (r *Recorder) Uniform1i(location int32, v int32) { r.setUniform(location, v) }
func (r *Recorder) Uniform1f(location int32, v float32) { r.setUniform(location, v) }
func (r *Recorder) Uniform2f(location int32, v mgl32.Vec2) { r.setUniform(location, v) }
func (r *Recorder) Uniform3f(location int32, v mgl32.Vec3) { r.setUniform(location, v) }
func (r *Recorder) Uniform4f(location int32, v mgl32.Vec4) { r.setUniform(location, v) }
func (r *Recorder) UniformMatrix3f(location int32, m mgl32.Mat3) { r.setUniform(location, m) }
func (r *Recorder) UniformMatrix4f(location int32, m mgl32.Mat4) { r.setUniform(location, m) }

func (r *Recorder) GenVertexArray() uint32 { return r.gen("VertexArray") }

func (r *Recorder) BindVertexArray(vao uint32) {
	r.record("BindVertexArray", vao)
	r.VAO = vao
}

func (r *Recorder) DeleteVertexArray(vao uint32) { r.release("VertexArray", vao) }

func (r *Recorder) GenBuffer() uint32 { return r.gen("Buffer") }

func (r *Recorder) BufferVertices(vbo uint32, data []float32, stride int32, attribs []gfx.Attrib) {
	r.record("BufferVertices", vbo, len(data), stride, len(attribs))
}

func (r *Recorder) BufferIndices(ebo uint32, data []uint32) {
	r.record("BufferIndices", ebo, len(data))
}

func (r *Recorder) DeleteBuffer(buffer uint32) { r.release("Buffer", buffer) }

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record("DrawArrays", mode, first, count)
	r.draw(count)
}

func (r *Recorder) DrawElements(mode uint32, count int32) {
	r.record("DrawElements", mode, count)
	r.draw(count)
}

func (r *Recorder) draw(count int32) {
	r.Draws = append(r.Draws, Draw{
		VAO:         r.VAO,
		Program:     r.Program,
		Framebuffer: r.Framebuffer,
		Viewport:    r.ViewportBox,
		ClipEnabled: r.Enabled[gfx.ClipDistance0],
		Blend:       r.Enabled[gfx.Blend],
		Count:       count,
	})
}
