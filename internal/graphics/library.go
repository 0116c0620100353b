package graphics

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
)

// StageSource names the file a shader stage is read from.
type StageSource struct {
	Kind ShaderKind
	Path string
}

// ProgramSource describes a program as a list of stage files.
type ProgramSource struct {
	Name   string
	Stages []StageSource
}

// Library builds named programs from shader files in fsys and can rebuild
// them when their sources change.
type Library struct {
	ctx      *Context
	fsys     fs.FS
	sources  map[string]ProgramSource
	programs map[string]*Program
	order    []string
}

func NewLibrary(ctx *Context, fsys fs.FS) *Library {
	return &Library{
		ctx:      ctx,
		fsys:     fsys,
		sources:  make(map[string]ProgramSource),
		programs: make(map[string]*Program),
	}
}

// Load reads, compiles and links src. A missing or unreadable file is
// reported before any GPU object is created. The source stays registered
// even when the build fails, so a later Reload can bring the program up;
// until then Get returns the previous program, if any, or nil.
func (l *Library) Load(src ProgramSource) error {
	if _, ok := l.sources[src.Name]; !ok {
		l.order = append(l.order, src.Name)
	}
	l.sources[src.Name] = src
	return l.swap(src)
}

// Get returns the live program with the given name, or nil if it has never
// built.
func (l *Library) Get(name string) *Program {
	return l.programs[name]
}

// Names returns program names in load order.
func (l *Library) Names() []string {
	return slices.Clone(l.order)
}

// Paths returns every stage file referenced by a loaded program, sorted.
func (l *Library) Paths() []string {
	var out []string
	for _, src := range l.sources {
		for _, st := range src.Stages {
			p := path.Clean(st.Path)
			if !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	slices.Sort(out)
	return out
}

// Reload rebuilds every program that reads file. A program whose rebuild
// fails keeps running its previous, still valid, version.
func (l *Library) Reload(file string) ([]string, error) {
	file = path.Clean(file)
	var (
		reloaded []string
		errs     []error
	)
	for _, name := range l.order {
		src := l.sources[name]
		if !src.uses(file) {
			continue
		}
		if err := l.swap(src); err != nil {
			errs = append(errs, err)
			continue
		}
		reloaded = append(reloaded, name)
	}
	return reloaded, errors.Join(errs...)
}

// ReloadAll rebuilds every program.
func (l *Library) ReloadAll() error {
	var errs []error
	for _, name := range l.order {
		if err := l.swap(l.sources[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate runs Program.Validate on every program that built and returns
// the names of those that failed, in load order.
func (l *Library) Validate() []string {
	var failed []string
	for _, name := range l.order {
		p := l.programs[name]
		if p == nil || p.State() != ProgramReady {
			continue
		}
		if !p.Validate() {
			failed = append(failed, name)
		}
	}
	return failed
}

// Delete releases every program.
func (l *Library) Delete() {
	for _, p := range l.programs {
		p.Delete()
	}
	clear(l.programs)
	clear(l.sources)
	l.order = nil
}

func (l *Library) swap(src ProgramSource) error {
	p, err := l.build(src)
	old, ok := l.programs[src.Name]
	if err != nil {
		if ok {
			slog.Warn("keeping previous program", "program", src.Name, "err", err)
		}
		return err
	}
	if ok {
		old.Delete()
		slog.Info("program reloaded", "program", src.Name)
	}
	l.programs[src.Name] = p
	return nil
}

func (l *Library) build(src ProgramSource) (*Program, error) {
	sources := make([]string, len(src.Stages))
	for i, st := range src.Stages {
		b, err := fs.ReadFile(l.fsys, st.Path)
		if err != nil {
			return nil, fmt.Errorf("program %s: read %s shader: %w", src.Name, st.Kind, err)
		}
		sources[i] = string(b)
	}

	p := NewProgram(l.ctx, src.Name)
	for i, st := range src.Stages {
		p.RegisterShader(NewShader(l.ctx.dev, st.Kind, st.Path, sources[i]))
	}
	if !p.Build() {
		p.Delete()
		return nil, fmt.Errorf("%w: %s", ErrBuildFailed, src.Name)
	}
	return p, nil
}

func (src ProgramSource) uses(file string) bool {
	for _, st := range src.Stages {
		if path.Clean(st.Path) == file {
			return true
		}
	}
	return false
}
