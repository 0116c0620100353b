package graphics

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrBuildFailed is returned when a program cannot be compiled or linked.
var ErrBuildFailed = errors.New("program build failed")

// ProgramState tracks where a Program is in its lifecycle.
type ProgramState int

const (
	ProgramUnbuilt ProgramState = iota
	ProgramReady
	ProgramFailed
	ProgramDeleted
)

func (s ProgramState) String() string {
	switch s {
	case ProgramUnbuilt:
		return "unbuilt"
	case ProgramReady:
		return "ready"
	case ProgramFailed:
		return "failed"
	case ProgramDeleted:
		return "deleted"
	}
	return fmt.Sprintf("ProgramState(%d)", int(s))
}

// Program links a set of shaders into a GPU program and feeds it uniforms.
//
// Register shaders, call Build once, then Use it every frame before setting
// uniforms or drawing. A Program that failed to build can never be bound.
type Program struct {
	ctx     *Context
	name    string
	shaders []*Shader
	id      uint32
	state   ProgramState

	locations map[string]int32
	warned    map[string]bool
}

func NewProgram(ctx *Context, name string) *Program {
	return &Program{
		ctx:       ctx,
		name:      name,
		locations: make(map[string]int32),
		warned:    make(map[string]bool),
	}
}

func (p *Program) Name() string        { return p.name }
func (p *Program) ID() uint32          { return p.id }
func (p *Program) State() ProgramState { return p.state }
func (p *Program) Shaders() []*Shader  { return p.shaders }

// Active reports whether this program is the one bound on the device.
func (p *Program) Active() bool {
	return p.state == ProgramReady && p.id != 0 && p.ctx.current == p.id
}

// RegisterShader hands ownership of s to the program. Shaders attach in
// registration order. Registration after Build is ignored.
func (p *Program) RegisterShader(s *Shader) {
	if s == nil {
		return
	}
	if p.state != ProgramUnbuilt {
		slog.Warn("shader registered after build, ignoring", "program", p.name, "shader", s.Name())
		return
	}
	p.shaders = append(p.shaders, s)
}

// Build links the registered shaders. Every shader must have compiled before
// anything is allocated or attached; otherwise the program goes straight to
// the failed state and no shader object is touched. Shader objects are
// released only after a successful link.
func (p *Program) Build() bool {
	switch p.state {
	case ProgramReady:
		return true
	case ProgramFailed, ProgramDeleted:
		return false
	}

	if len(p.shaders) == 0 {
		slog.Error("program has no shaders", "program", p.name)
		p.state = ProgramFailed
		return false
	}
	for _, s := range p.shaders {
		if !s.CheckCompiled() {
			slog.Error("program not linked, shader failed to compile", "program", p.name, "shader", s.Name())
			p.state = ProgramFailed
			return false
		}
	}

	dev := p.ctx.dev
	id := dev.CreateProgram()
	if id == 0 {
		slog.Error("program object allocation failed", "program", p.name)
		p.state = ProgramFailed
		return false
	}

	for _, s := range p.shaders {
		dev.AttachShader(id, s.ID())
	}
	dev.LinkProgram(id)

	if !dev.ProgramLinked(id) {
		diag := truncateLog(dev.ProgramInfoLog(id, InfoLogLimit))
		slog.Error("program link failed", "program", p.name, "log", diag)
		dev.DeleteProgram(id)
		p.state = ProgramFailed
		return false
	}

	for _, s := range p.shaders {
		dev.DetachShader(id, s.ID())
		s.Delete()
	}

	p.id = id
	p.state = ProgramReady
	clear(p.locations)
	clear(p.warned)
	slog.Debug("program linked", "program", p.name, "id", id, "shaders", len(p.shaders))
	return true
}

// Validate checks the program against the current GL state. Only
// meaningful once vertex arrays are bound; use it as a debug aid.
func (p *Program) Validate() bool {
	if p.state != ProgramReady {
		return false
	}
	dev := p.ctx.dev
	if dev.ValidateProgram(p.id) {
		return true
	}
	diag := truncateLog(dev.ProgramInfoLog(p.id, InfoLogLimit))
	slog.Warn("program validation failed", "program", p.name, "log", diag)
	return false
}

// Use binds the program. It returns false, and binds nothing, unless the
// program built successfully. Binding an already bound program is a no-op.
func (p *Program) Use() bool {
	if p.state != ProgramReady {
		p.warnOnce("\x00use", "program is not usable", "state", p.state)
		return false
	}
	p.ctx.bind(p.id)
	return true
}

// Delete releases the program object and any shader object it still owns.
func (p *Program) Delete() {
	if p.state == ProgramDeleted {
		return
	}
	if p.id != 0 {
		if p.ctx.current == p.id {
			p.ctx.Unbind()
		}
		p.ctx.dev.DeleteProgram(p.id)
		p.id = 0
	}
	for _, s := range p.shaders {
		s.Delete()
	}
	p.state = ProgramDeleted
}

func (p *Program) SetFloat(name string, v float32) {
	if loc, ok := p.location(name); ok {
		p.ctx.dev.Uniform1f(loc, v)
	}
}

func (p *Program) SetInt(name string, v int32) {
	if loc, ok := p.location(name); ok {
		p.ctx.dev.Uniform1i(loc, v)
	}
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc, ok := p.location(name); ok {
		p.ctx.dev.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc, ok := p.location(name); ok {
		p.ctx.dev.UniformMatrix4f(loc, m)
	}
}

// SetUniform dispatches on the dynamic type of v. Supported: float32,
// float64, int, int32, bool, mgl32.Vec3 and mgl32.Mat4. Other types are
// logged once and dropped.
func (p *Program) SetUniform(name string, v any) {
	switch x := v.(type) {
	case float32:
		p.SetFloat(name, x)
	case float64:
		p.SetFloat(name, float32(x))
	case int:
		p.SetInt(name, int32(x))
	case int32:
		p.SetInt(name, x)
	case bool:
		p.SetBool(name, x)
	case mgl32.Vec3:
		p.SetVec3(name, x)
	case mgl32.Mat4:
		p.SetMat4(name, x)
	default:
		p.warnOnce(name+"\x00type", "unsupported uniform type", "uniform", name, "type", fmt.Sprintf("%T", v))
	}
}

// location resolves a uniform name, caching hits and misses. It refuses to
// resolve anything while another program is bound, so a stray call never
// writes into whatever program happens to be current.
func (p *Program) location(name string) (int32, bool) {
	if !p.Active() {
		p.warnOnce("\x00inactive", "uniform set on a program that is not bound", "uniform", name, "state", p.state)
		return -1, false
	}

	loc, ok := p.locations[name]
	if !ok {
		loc = p.ctx.dev.UniformLocation(p.id, name)
		p.locations[name] = loc
	}
	if loc < 0 {
		p.warnOnce(name, "unknown uniform", "uniform", name)
		return -1, false
	}
	return loc, true
}

func (p *Program) warnOnce(key, msg string, args ...any) {
	if p.warned[key] {
		return
	}
	p.warned[key] = true
	slog.Warn(msg, append([]any{"program", p.name}, args...)...)
}
