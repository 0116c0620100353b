package scene

import (
	"gldemos/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Overlay draws screen-space text sampled from a glyph atlas on unit 0.
type Overlay struct {
	Projection mgl32.Mat4
	Color      mgl32.Vec3
}

// ScreenProjection maps pixels to clip space with the origin at the top left.
func ScreenProjection(width, height int) mgl32.Mat4 {
	return mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

func (s Overlay) Bind(p *graphics.Program) bool {
	if !use(p) {
		return false
	}
	p.SetMat4("projectionMatrix", s.Projection)
	p.SetVec3("textColor", s.Color)
	p.SetInt("glyphs", 0)
	return true
}
