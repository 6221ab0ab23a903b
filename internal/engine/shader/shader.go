// Package shader compiles GLSL programs and caches their uniform locations.
package shader

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/island/internal/engine/gfx"
)

// ErrCompile is returned when a stage fails to compile or the program fails
// to link. Startup treats it as fatal.
var ErrCompile = errors.New("shader compile failed")

// Program is a linked shader program.
type Program struct {
	dev       gfx.Device
	id        uint32
	name      string
	locations map[string]int32
}

// Compile compiles vertex and fragment sources and links them into a program.
// Intermediate shader objects are released on every path.
func Compile(dev gfx.Device, name, vertexSrc, fragmentSrc string) (*Program, error) {
	vert, err := dev.CompileShader(gfx.VertexShader, vertexSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s vertex: %w", ErrCompile, name, err)
	}
	defer dev.DeleteShader(vert)

	frag, err := dev.CompileShader(gfx.FragmentShader, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s fragment: %w", ErrCompile, name, err)
	}
	defer dev.DeleteShader(frag)

	id, err := dev.LinkProgram(vert, frag)
	if err != nil {
		return nil, fmt.Errorf("%w: %s link: %w", ErrCompile, name, err)
	}

	return &Program{
		dev:       dev,
		id:        id,
		name:      name,
		locations: make(map[string]int32),
	}, nil
}

// ID returns the program handle.
func (p *Program) ID() uint32 {
	return p.id
}

// Name returns the name given at compile time.
func (p *Program) Name() string {
	return p.name
}

// Use makes the program current.
func (p *Program) Use() {
	p.dev.UseProgram(p.id)
}

// Location returns the cached location of a uniform, -1 if it is inactive.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.dev.UniformLocation(p.id, name)
	p.locations[name] = loc
	return loc
}

func (p *Program) SetInt(name string, v int32) {
	p.dev.Uniform1i(p.Location(name), v)
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.dev.Uniform1i(p.Location(name), i)
}

func (p *Program) SetFloat(name string, v float32) {
	p.dev.Uniform1f(p.Location(name), v)
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	p.dev.Uniform2f(p.Location(name), v)
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	p.dev.Uniform3f(p.Location(name), v)
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	p.dev.Uniform4f(p.Location(name), v)
}

func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	p.dev.UniformMatrix3f(p.Location(name), m)
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	p.dev.UniformMatrix4f(p.Location(name), m)
}

// Destroy deletes the program. Safe to call more than once.
func (p *Program) Destroy() {
	if p.id != 0 {
		p.dev.DeleteProgram(p.id)
		p.id = 0
	}
}
