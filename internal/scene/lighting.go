package scene

import (
	"gldemos/internal/graphics"
	"gldemos/internal/lighting"

	"github.com/go-gl/mathgl/mgl32"
)

// Lighting is a lit object at the origin and a point light orbiting it.
type Lighting struct {
	Light       lighting.LightSource
	Orbit       lighting.Orbit
	ObjectColor mgl32.Vec3
	Ambient     float32
	MarkerScale float32
}

// Advance moves the light to its orbit position for frame.
func (s *Lighting) Advance(frame int) {
	s.Light.Update(s.Orbit, frame)
}

// BindObject prepares p for drawing the lit object.
func (s *Lighting) BindObject(p *graphics.Program, v View) bool {
	if !use(p) {
		return false
	}
	bindCamera(p, v)
	p.SetMat4("modelMatrix", mgl32.Ident4())
	p.SetVec3("objectColor", s.ObjectColor)
	p.SetVec3("lightColor", s.Light.Color)
	p.SetVec3("lightPosition", s.Light.Position)
	p.SetVec3("viewPosition", v.Eye)
	p.SetFloat("ambientScale", s.Ambient)
	return true
}

// BindMarker prepares p for drawing the unlit marker at the light.
func (s *Lighting) BindMarker(p *graphics.Program, v View) bool {
	if !use(p) {
		return false
	}
	bindCamera(p, v)
	p.SetMat4("modelMatrix", s.Light.ModelMatrix(s.MarkerScale))
	p.SetVec3("lightColor", s.Light.Color)
	return true
}
