// Package gldevice implements graphics.Device on top of OpenGL 4.1 core.
// Every call must happen on the thread that owns the GL context.
package gldevice

import (
	"fmt"
	"log/slog"
	"strings"

	"gldemos/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Device forwards to the global OpenGL function table. Call gl.Init (via
// Init) once a context is current before using it.
type Device struct{}

// Init loads the OpenGL function pointers for the current context.
func Init() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	slog.Info("opengl initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Device{}, nil
}

var _ graphics.Device = (*Device)(nil)

func (Device) CreateShader(kind graphics.ShaderKind) uint32 {
	switch kind {
	case graphics.VertexShader:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case graphics.FragmentShader:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return 0
}

func (Device) CompileShader(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)
}

func (Device) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ShaderInfoLog(shader uint32, limit int) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	logLength = min(logLength, int32(limit))
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Device) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (Device) CreateProgram() uint32 { return gl.CreateProgram() }

func (Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (Device) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (Device) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (Device) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ValidateProgram(program uint32) bool {
	gl.ValidateProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ProgramInfoLog(program uint32, limit int) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logLength = min(logLength, int32(limit))
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Device) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (Device) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (Device) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (Device) UniformMatrix4f(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

// CheckError drains the GL error queue, logging each entry under label.
// It reports whether any error was pending.
func CheckError(label string) bool {
	found := false
	for {
		err := gl.GetError()
		if err == gl.NO_ERROR {
			return found
		}
		found = true
		slog.Error("gl error", "at", label, "code", fmt.Sprintf("0x%x", err))
	}
}
