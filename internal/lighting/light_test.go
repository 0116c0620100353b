package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOrbitStartsOnPositiveZ(t *testing.T) {
	o := Orbit{Radius: 50}
	p := o.At(0)
	if p != (mgl32.Vec3{0, 0, 50}) {
		t.Errorf("expected (0,0,50), got %v", p)
	}
}

func TestOrbitKeepsRadius(t *testing.T) {
	o := Orbit{Radius: 50, Height: 3}
	for _, frame := range []int{1, 100, 4096, 12345, 1 << 20} {
		p := o.At(frame)
		r := math.Hypot(float64(p.X()), float64(p.Z()))
		if math.Abs(r-50) > 1e-3 {
			t.Errorf("frame %d: radius %v", frame, r)
		}
		if p.Y() != 3 {
			t.Errorf("frame %d: height %v", frame, p.Y())
		}
	}
}

func TestOrbitQuarterTurn(t *testing.T) {
	o := Orbit{Radius: 10}
	frame := int(math.Round(math.Pi / 2 * OrbitPeriod))
	p := o.At(frame)
	if math.Abs(float64(p.X())-10) > 1e-3 || math.Abs(float64(p.Z())) > 1e-3 {
		t.Errorf("expected about (10,0,0), got %v", p)
	}
}

func TestLightModelMatrix(t *testing.T) {
	l := LightSource{Position: mgl32.Vec3{1, 2, 3}, Color: mgl32.Vec3{1, 1, 1}}
	l.Update(Orbit{Radius: 5}, 0)

	got := l.ModelMatrix(0.5).Mul4x1(mgl32.Vec4{2, 0, 0, 1})
	want := mgl32.Vec4{1, 0, 5, 1}
	if !got.ApproxEqual(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
