package particles

import (
	"gldemos/internal/config"
	"gldemos/internal/geometry"
	"gldemos/internal/graphics"
	"gldemos/internal/graphics/gldevice"
	renderer "gldemos/internal/graphics/renderer"
	"gldemos/internal/scene"
)

// Programs drawn over the shared point line, in draw order.
var Programs = []string{"wave", "wave_alt"}

// Particles draws one line strip of points once per wave program.
type Particles struct {
	lib   *graphics.Library
	scene scene.Particles
	mesh  *gldevice.Mesh
}

func NewParticles(lib *graphics.Library, cfg config.ParticlesConfig) *Particles {
	return &Particles{
		lib:   lib,
		scene: scene.Particles{Count: cfg.Count, Amplitude: cfg.Amplitude},
	}
}

func (p *Particles) Init() error {
	var err error
	p.mesh, err = gldevice.NewMesh(geometry.ParticleLine(p.scene.Count), false)
	return err
}

func (p *Particles) Render(f renderer.Frame) {
	v := f.Scene()
	for _, name := range Programs {
		if p.scene.Bind(p.lib.Get(name), v) {
			p.mesh.Draw(gldevice.LineStrip)
		}
	}
}

func (p *Particles) Dispose() {
	if p.mesh != nil {
		p.mesh.Delete()
	}
}

func (p *Particles) SetViewport(width, height int) {}
