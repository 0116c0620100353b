package renderer

import (
	"gldemos/internal/camera"
	"gldemos/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Frame is the per-frame context handed to every renderable.
type Frame struct {
	Camera *camera.Camera
	View   mgl32.Mat4
	Proj   mgl32.Mat4
	DT     float64 // seconds since the previous frame
	Time   float64 // seconds since start
	Number int     // frames rendered before this one

	Wireframe bool
}

// Scene returns the camera state uniform binders need.
func (f Frame) Scene() scene.View {
	return scene.View{
		Proj:  f.Proj,
		View:  f.View,
		Eye:   f.Camera.Position(),
		Frame: f.Number,
		Time:  f.Time,
	}
}

// Renderable defines the lifecycle of one drawable feature. Init runs once
// with a current GL context; Dispose releases everything Init acquired.
type Renderable interface {
	Init() error
	Render(f Frame)
	Dispose()
	SetViewport(width, height int)
}
