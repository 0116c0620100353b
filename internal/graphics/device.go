package graphics

import "github.com/go-gl/mathgl/mgl32"

// InfoLogLimit bounds compiler, linker and validator diagnostics.
const InfoLogLimit = 512

// Device is the subset of the GL API needed to compile, link, bind and feed
// shader programs. gldevice provides the OpenGL implementation.
//
// Handles are GL object names; zero means "no object".
type Device interface {
	CreateShader(kind ShaderKind) uint32
	CompileShader(shader uint32, source string)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32, limit int) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ValidateProgram(program uint32) bool
	ProgramInfoLog(program uint32, limit int) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// UniformLocation returns -1 when the linked program has no active
	// uniform with that name.
	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform1i(location int32, v int32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4f(location int32, m mgl32.Mat4)
}

// Context tracks which program is bound on a device. The bound program is
// global GL state, so every Program built against the same device must share
// one Context.
type Context struct {
	dev     Device
	current uint32
}

func NewContext(dev Device) *Context {
	return &Context{dev: dev}
}

func (c *Context) Device() Device { return c.dev }

// CurrentProgram returns the handle of the bound program, or 0.
func (c *Context) CurrentProgram() uint32 { return c.current }

// Unbind binds no program.
func (c *Context) Unbind() {
	if c.current == 0 {
		return
	}
	c.dev.UseProgram(0)
	c.current = 0
}

func (c *Context) bind(program uint32) {
	if c.current == program {
		return
	}
	c.dev.UseProgram(program)
	c.current = program
}
