package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitPeriod is the number of frames per radian of orbit.
const OrbitPeriod = 4096

// LightSource is a point light. It has no identity beyond the current frame;
// drivers recompute it every frame.
type LightSource struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Orbit describes a light circling the origin in the xz plane.
type Orbit struct {
	Radius float32
	Phase  float32 // radians
	Height float32
}

// At returns the light position for the given frame number:
// (r·sin(phase + n/OrbitPeriod), height, r·cos(phase + n/OrbitPeriod)).
func (o Orbit) At(frame int) mgl32.Vec3 {
	a := float64(o.Phase) + float64(frame)/OrbitPeriod
	return mgl32.Vec3{
		o.Radius * float32(math.Sin(a)),
		o.Height,
		o.Radius * float32(math.Cos(a)),
	}
}

// Update moves l to its orbit position for frame.
func (l *LightSource) Update(o Orbit, frame int) {
	l.Position = o.At(frame)
}

// ModelMatrix places a marker at the light position.
func (l LightSource) ModelMatrix(scale float32) mgl32.Mat4 {
	p := l.Position
	return mgl32.Translate3D(p[0], p[1], p[2]).Mul4(mgl32.Scale3D(scale, scale, scale))
}
