package renderer

import (
	"fmt"

	"gldemos/internal/camera"
	"gldemos/internal/graphics/gldevice"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *camera.Camera
	clearColor  mgl32.Vec3
	wireframe   bool
	frame       int

	clear func()
}

// NewRenderer configures global GL state and initialises rs in order. If
// one fails, the ones already initialised are disposed before returning.
func NewRenderer(cam *camera.Camera, clearColor mgl32.Vec3, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)

	r := &Renderer{
		camera:     cam,
		clearColor: clearColor,
	}
	r.clear = func() {
		gl.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}

	for i, rb := range rs {
		if err := rb.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, fmt.Errorf("init renderable %d: %w", i, err)
		}
		r.renderables = append(r.renderables, rb)
	}

	return r, nil
}

// Render clears the framebuffer, rebuilds the view matrix from the camera
// and renders every feature as the next frame.
func (r *Renderer) Render(dt, now float64) {
	r.draw(dt, now, r.frame)
	r.frame++
}

// Redraw repaints the last rendered frame, for expose events. The frame
// counter does not advance, so nothing driven by it moves.
func (r *Renderer) Redraw(now float64) {
	r.draw(0, now, max(r.frame-1, 0))
}

func (r *Renderer) draw(dt, now float64, number int) {
	r.clear()

	f := Frame{
		Camera: r.camera,
		View:   r.camera.ViewMatrix(),
		Proj:   r.camera.ProjectionMatrix(),
		DT:     dt,
		Time:   now,
		Number: number,

		Wireframe: r.wireframe,
	}

	for _, rb := range r.renderables {
		rb.Render(f)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.renderables = nil
}

// FrameNumber returns how many frames Render has produced.
func (r *Renderer) FrameNumber() int { return r.frame }

func (r *Renderer) Wireframe() bool { return r.wireframe }

func (r *Renderer) SetWireframe(on bool) {
	r.wireframe = on
	gldevice.SetWireframe(on)
}

// ToggleWireframe flips polygon mode and returns the new setting.
func (r *Renderer) ToggleWireframe() bool {
	r.SetWireframe(!r.wireframe)
	return r.wireframe
}

// UpdateViewport resizes the GL viewport and tells the camera and every
// renderable about the new framebuffer size.
func (r *Renderer) UpdateViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
	for _, rb := range r.renderables {
		rb.SetViewport(width, height)
	}
}
