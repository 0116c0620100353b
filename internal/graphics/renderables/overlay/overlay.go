package overlay

import (
	"gldemos/internal/geometry"
	"gldemos/internal/graphics"
	"gldemos/internal/graphics/gldevice"
	renderer "gldemos/internal/graphics/renderer"
	"gldemos/internal/scene"
	"gldemos/internal/text"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	Program    = "text"
	fontPixels = 16
	margin     = 8
)

// Overlay draws a few lines of status text in the top-left corner. The
// lines come from a callback evaluated every visible frame.
type Overlay struct {
	lib     *graphics.Library
	status  func() []string
	scene   scene.Overlay
	atlas   *text.Atlas
	texture uint32
	mesh    *gldevice.Mesh
	visible bool
}

func NewOverlay(lib *graphics.Library, visible bool, status func() []string) *Overlay {
	return &Overlay{
		lib:     lib,
		status:  status,
		visible: visible,
		scene: scene.Overlay{
			Projection: scene.ScreenProjection(1, 1),
			Color:      mgl32.Vec3{1, 1, 1},
		},
	}
}

func (o *Overlay) Init() error {
	var err error
	o.atlas, err = text.DefaultAtlas(fontPixels)
	if err != nil {
		return err
	}
	o.texture = gldevice.NewAlphaTexture(o.atlas.Image)

	// one placeholder quad; Update replaces it every frame
	o.mesh, err = gldevice.NewMesh(geometry.Data{
		Vertices:   make([]float32, 6*4),
		Components: []int{4},
	}, true)
	return err
}

// Toggle flips visibility and returns the new state.
func (o *Overlay) Toggle() bool {
	o.visible = !o.visible
	return o.visible
}

func (o *Overlay) Render(f renderer.Frame) {
	if !o.visible {
		return
	}
	verts := o.atlas.Layout(o.status(), margin, margin, 1)
	if len(verts) == 0 || !o.scene.Bind(o.lib.Get(Program)) {
		return
	}

	if f.Wireframe {
		gldevice.SetWireframe(false)
		defer gldevice.SetWireframe(true)
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gldevice.BindTexture(o.texture)
	o.mesh.Update(verts)
	o.mesh.Draw(gldevice.Triangles)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (o *Overlay) Dispose() {
	if o.mesh != nil {
		o.mesh.Delete()
	}
	gldevice.DeleteTexture(o.texture)
	o.texture = 0
}

// SetViewport takes framebuffer pixels.
func (o *Overlay) SetViewport(width, height int) {
	o.scene.Projection = scene.ScreenProjection(width, height)
}
