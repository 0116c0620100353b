package graphics

import (
	"fmt"
	"log/slog"
	"strings"
)

// ShaderKind is the pipeline stage a shader is compiled for.
type ShaderKind int

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderKind(%d)", int(k))
	}
}

// ParseShaderKind maps "vertex"/"vert" and "fragment"/"frag" to a kind.
func ParseShaderKind(s string) (ShaderKind, error) {
	switch strings.ToLower(s) {
	case "vertex", "vert":
		return VertexShader, nil
	case "fragment", "frag":
		return FragmentShader, nil
	}
	return 0, fmt.Errorf("unknown shader kind %q", s)
}

// Shader owns one compiled shader object. It is compiled exactly once, in
// NewShader; the outcome never changes afterwards.
type Shader struct {
	dev  Device
	kind ShaderKind
	name string
	id   uint32

	checked  bool
	compiled bool
	released bool
}

// NewShader allocates a shader object of the given kind, uploads source and
// compiles it.
func NewShader(dev Device, kind ShaderKind, name, source string) *Shader {
	s := &Shader{
		dev:  dev,
		kind: kind,
		name: name,
	}
	s.id = dev.CreateShader(kind)
	if s.id != 0 {
		dev.CompileShader(s.id, source)
	}
	return s
}

// CheckCompiled reports whether compilation succeeded. The first failing
// check logs the compiler diagnostic, truncated to InfoLogLimit bytes.
func (s *Shader) CheckCompiled() bool {
	if s.checked {
		return s.compiled
	}
	s.checked = true

	if s.id == 0 {
		slog.Error("shader object allocation failed", "shader", s.name, "kind", s.kind)
		return false
	}

	s.compiled = s.dev.ShaderCompiled(s.id)
	if !s.compiled {
		diag := truncateLog(s.dev.ShaderInfoLog(s.id, InfoLogLimit))
		slog.Error("shader compile failed", "shader", s.name, "kind", s.kind, "log", diag)
	}
	return s.compiled
}

func (s *Shader) ID() uint32       { return s.id }
func (s *Shader) Name() string     { return s.name }
func (s *Shader) Kind() ShaderKind { return s.kind }

// Released reports whether the underlying shader object has been deleted.
func (s *Shader) Released() bool { return s.released }

// Delete releases the shader object. Safe to call more than once and after a
// failed compile.
func (s *Shader) Delete() {
	if s.released {
		return
	}
	s.released = true
	if s.id != 0 {
		s.dev.DeleteShader(s.id)
	}
}

func truncateLog(s string) string {
	s = strings.TrimRight(s, "\x00 \n")
	if len(s) > InfoLogLimit {
		s = s[:InfoLogLimit]
	}
	return s
}
