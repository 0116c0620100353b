// Package scene binds the per-frame uniforms of each demo. It knows the
// uniform names the shipped shaders declare and nothing about buffers or
// draw calls, so it runs against any graphics.Device.
package scene

import (
	"gldemos/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// View is the camera state shared by every pass of a frame.
type View struct {
	Proj  mgl32.Mat4
	View  mgl32.Mat4
	Eye   mgl32.Vec3
	Frame int
	Time  float64
}

// use makes p current. A nil or unbuilt program skips the pass.
func use(p *graphics.Program) bool {
	return p != nil && p.Use()
}

func bindCamera(p *graphics.Program, v View) {
	p.SetMat4("projectionMatrix", v.Proj)
	p.SetMat4("viewMatrix", v.View)
}
