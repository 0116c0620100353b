package litcube

import (
	"log/slog"

	"gldemos/internal/config"
	"gldemos/internal/geometry"
	"gldemos/internal/graphics"
	"gldemos/internal/graphics/gldevice"
	renderer "gldemos/internal/graphics/renderer"
	"gldemos/internal/lighting"
	"gldemos/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ObjectProgram = "geometry"
	MarkerProgram = "light"
)

// LitCube draws a lit object at the origin and a small marker at the
// orbiting light. Both share one vertex buffer through separate vertex
// arrays.
type LitCube struct {
	lib    *graphics.Library
	model  string
	scene  scene.Lighting
	object *gldevice.Mesh
	marker *gldevice.Mesh
}

func NewLitCube(lib *graphics.Library, cfg config.LightingConfig) *LitCube {
	return &LitCube{
		lib:   lib,
		model: cfg.Model,
		scene: scene.Lighting{
			Light:       lighting.LightSource{Color: mgl32.Vec3(cfg.LightColor)},
			Orbit:       lighting.Orbit{Radius: cfg.OrbitRadius},
			ObjectColor: mgl32.Vec3(cfg.ObjectColor),
			Ambient:     cfg.Ambient,
			MarkerScale: cfg.MarkerScale,
		},
	}
}

func (c *LitCube) Init() error {
	data := geometry.Cube(mgl32.Vec3{0.5, 0.5, 0.5}, 1)
	if c.model != "" {
		m, err := geometry.LoadGLTF(c.model)
		if err != nil {
			return err
		}
		slog.Info("loaded model", "path", c.model, "vertices", m.VertexCount())
		data = m
	}

	var err error
	c.object, err = gldevice.NewMesh(data, false)
	if err != nil {
		return err
	}
	c.marker = c.object.Share(data.Components)
	return nil
}

func (c *LitCube) Render(f renderer.Frame) {
	c.scene.Advance(f.Number)
	v := f.Scene()
	if c.scene.BindObject(c.lib.Get(ObjectProgram), v) {
		c.object.Draw(gldevice.Triangles)
	}
	if c.scene.BindMarker(c.lib.Get(MarkerProgram), v) {
		c.marker.Draw(gldevice.Triangles)
	}
}

// Dispose deletes the marker first since it borrows the object's buffers.
func (c *LitCube) Dispose() {
	if c.marker != nil {
		c.marker.Delete()
	}
	if c.object != nil {
		c.object.Delete()
	}
}

func (c *LitCube) SetViewport(width, height int) {}
