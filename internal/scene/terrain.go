package scene

import (
	"gldemos/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Terrain is a height-mapped grid under a directional light.
type Terrain struct {
	LightDirection mgl32.Vec3
	LightColor     mgl32.Vec3
	HeightScale    float32
}

func (s Terrain) Bind(p *graphics.Program, v View) bool {
	if !use(p) {
		return false
	}
	dir := s.LightDirection
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	bindCamera(p, v)
	p.SetMat4("modelMatrix", mgl32.Ident4())
	p.SetVec3("lightDirection", dir)
	p.SetVec3("lightColor", s.LightColor)
	p.SetFloat("heightScale", s.HeightScale)
	return true
}
