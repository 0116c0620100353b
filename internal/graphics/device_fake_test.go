package graphics_test

import (
	"fmt"
	"strings"

	"gldemos/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// fakeDevice mimics just enough GL behaviour to drive the program lifecycle:
// sources containing "#error" fail to compile, "#link-error" fails to link,
// and "uniform <type> <name>;" declarations become active uniforms.
type fakeDevice struct {
	next     uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram
	current  uint32

	useCalls int
	calls    []string

	// programs that link but fail validation
	invalid map[uint32]bool
}

type fakeShader struct {
	kind     graphics.ShaderKind
	source   string
	compiles int
	deleted  bool
}

type fakeProgram struct {
	attached []uint32
	linked   bool
	deleted  bool
	uniforms map[string]int32
	values   map[int32]any
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		shaders:  make(map[uint32]*fakeShader),
		programs: make(map[uint32]*fakeProgram),
		invalid:  make(map[uint32]bool),
	}
}

func (d *fakeDevice) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeDevice) CreateShader(kind graphics.ShaderKind) uint32 {
	d.next++
	d.shaders[d.next] = &fakeShader{kind: kind}
	d.record("CreateShader %d", d.next)
	return d.next
}

func (d *fakeDevice) CompileShader(shader uint32, source string) {
	s := d.shaders[shader]
	s.source = source
	s.compiles++
	d.record("CompileShader %d", shader)
}

func (d *fakeDevice) ShaderCompiled(shader uint32) bool {
	return !strings.Contains(d.shaders[shader].source, "#error")
}

func (d *fakeDevice) ShaderInfoLog(shader uint32, limit int) string {
	msg := strings.Repeat("0:1(1): error: syntax error\n", 40)
	if len(msg) > limit {
		msg = msg[:limit]
	}
	return msg
}

func (d *fakeDevice) DeleteShader(shader uint32) {
	d.shaders[shader].deleted = true
	d.record("DeleteShader %d", shader)
}

func (d *fakeDevice) CreateProgram() uint32 {
	d.next++
	d.programs[d.next] = &fakeProgram{
		uniforms: make(map[string]int32),
		values:   make(map[int32]any),
	}
	d.record("CreateProgram %d", d.next)
	return d.next
}

func (d *fakeDevice) AttachShader(program, shader uint32) {
	p := d.programs[program]
	p.attached = append(p.attached, shader)
	d.record("AttachShader %d %d", program, shader)
}

func (d *fakeDevice) DetachShader(program, shader uint32) {
	d.record("DetachShader %d %d", program, shader)
}

func (d *fakeDevice) LinkProgram(program uint32) {
	p := d.programs[program]
	d.record("LinkProgram %d", program)
	for _, id := range p.attached {
		if strings.Contains(d.shaders[id].source, "#link-error") {
			return
		}
	}
	p.linked = true
	next := int32(0)
	for _, id := range p.attached {
		for _, line := range strings.Split(d.shaders[id].source, "\n") {
			f := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
			if len(f) == 3 && f[0] == "uniform" {
				if _, ok := p.uniforms[f[2]]; !ok {
					p.uniforms[f[2]] = next
					next++
				}
			}
		}
	}
}

func (d *fakeDevice) ProgramLinked(program uint32) bool { return d.programs[program].linked }

func (d *fakeDevice) ValidateProgram(program uint32) bool {
	d.record("ValidateProgram %d", program)
	return d.programs[program].linked && !d.invalid[program]
}

func (d *fakeDevice) ProgramInfoLog(program uint32, limit int) string {
	return "error: unresolved symbol"
}

func (d *fakeDevice) DeleteProgram(program uint32) {
	d.programs[program].deleted = true
	d.record("DeleteProgram %d", program)
}

func (d *fakeDevice) UseProgram(program uint32) {
	d.useCalls++
	d.current = program
	d.record("UseProgram %d", program)
}

func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	if loc, ok := d.programs[program].uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDevice) set(location int32, v any) {
	if d.current == 0 {
		panic("uniform upload with no program bound")
	}
	d.programs[d.current].values[location] = v
}

func (d *fakeDevice) Uniform1f(location int32, v float32)       { d.set(location, v) }
func (d *fakeDevice) Uniform1i(location int32, v int32)         { d.set(location, v) }
func (d *fakeDevice) Uniform3f(location int32, x, y, z float32) { d.set(location, mgl32.Vec3{x, y, z}) }
func (d *fakeDevice) UniformMatrix4f(location int32, m mgl32.Mat4) {
	d.set(location, m)
}

// value returns the last value uploaded to a named uniform of program.
func (d *fakeDevice) value(program uint32, name string) (any, bool) {
	p := d.programs[program]
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

func (d *fakeDevice) countCalls(prefix string) int {
	n := 0
	for _, c := range d.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

const (
	vertexSrc = `#version 410 core
uniform mat4 projectionMatrix;
uniform mat4 viewMatrix;
uniform float frameNumber;
void main() {}
`
	fragmentSrc = `#version 410 core
uniform vec3 lightColor;
uniform int mode;
void main() {}
`
	brokenSrc = "#version 410 core\n#error broken\n"
)
