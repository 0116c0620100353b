package terrain

import (
	"log/slog"
	"os"
	"path/filepath"

	"gldemos/internal/config"
	"gldemos/internal/geometry"
	"gldemos/internal/graphics"
	"gldemos/internal/graphics/gldevice"
	renderer "gldemos/internal/graphics/renderer"
	"gldemos/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const Program = "terrain"

// Terrain draws a height-field grid, either from an image or from noise.
type Terrain struct {
	lib   *graphics.Library
	cfg   config.TerrainConfig
	scene scene.Terrain
	mesh  *gldevice.Mesh
}

func NewTerrain(lib *graphics.Library, cfg config.TerrainConfig) *Terrain {
	return &Terrain{
		lib: lib,
		cfg: cfg,
		scene: scene.Terrain{
			LightDirection: mgl32.Vec3(cfg.LightDirection),
			LightColor:     mgl32.Vec3(cfg.LightColor),
			HeightScale:    cfg.HeightScale,
		},
	}
}

func (t *Terrain) Init() error {
	field, err := t.heightField()
	if err != nil {
		return err
	}
	t.mesh, err = gldevice.NewMesh(geometry.Terrain(field, t.cfg.CellSize, t.cfg.HeightScale), false)
	return err
}

func (t *Terrain) heightField() (geometry.HeightField, error) {
	size := t.cfg.Size
	if t.cfg.HeightMap == "" {
		opts := geometry.DefaultNoiseOptions()
		opts.Seed = t.cfg.Seed
		opts.Octaves = t.cfg.Octaves
		return geometry.NoiseHeightField(size, size, opts), nil
	}
	dir, name := filepath.Split(t.cfg.HeightMap)
	if dir == "" {
		dir = "."
	}
	field, err := geometry.LoadHeightMap(os.DirFS(dir), name, size, size)
	if err != nil {
		return geometry.HeightField{}, err
	}
	slog.Info("loaded height map", "path", t.cfg.HeightMap, "size", size)
	return field, nil
}

func (t *Terrain) Render(f renderer.Frame) {
	v := f.Scene()
	if t.scene.Bind(t.lib.Get(Program), v) {
		t.mesh.Draw(gldevice.Triangles)
	}
}

func (t *Terrain) Dispose() {
	if t.mesh != nil {
		t.mesh.Delete()
	}
}

func (t *Terrain) SetViewport(width, height int) {}
