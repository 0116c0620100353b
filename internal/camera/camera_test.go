package camera_test

import (
	"math"
	"testing"

	"gldemos/internal/camera"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= eps
}

func TestFrontAtYaw90(t *testing.T) {
	c := camera.New(camera.DefaultOptions())

	f := c.Front()
	if !near(f.X(), 0) || !near(f.Y(), 0) || !near(f.Z(), 1) {
		t.Fatalf("expected front (0,0,1), got %v", f)
	}
}

func TestLookRightFourTimes(t *testing.T) {
	c := camera.New(camera.DefaultOptions())
	yaw0, pitch0 := c.Yaw(), c.Pitch()

	for i := 0; i < 4; i++ {
		c.LookRight()
	}

	if got := c.Yaw() - yaw0; got != 16 {
		t.Errorf("expected yaw to increase by 16, got %v", got)
	}
	if c.Pitch() != pitch0 {
		t.Errorf("expected pitch unchanged at %v, got %v", pitch0, c.Pitch())
	}
}

func TestPitchIsClamped(t *testing.T) {
	c := camera.New(camera.DefaultOptions())

	for i := 0; i < 100; i++ {
		c.LookUp()
		if c.Pitch() > camera.MaxPitch {
			t.Fatalf("pitch %v above clamp", c.Pitch())
		}
	}
	if c.Pitch() != camera.MaxPitch {
		t.Errorf("expected pitch pinned at %v, got %v", camera.MaxPitch, c.Pitch())
	}

	for i := 0; i < 100; i++ {
		c.LookDown()
		if c.Pitch() < camera.MinPitch {
			t.Fatalf("pitch %v below clamp", c.Pitch())
		}
	}
	if c.Pitch() != camera.MinPitch {
		t.Errorf("expected pitch pinned at %v, got %v", camera.MinPitch, c.Pitch())
	}

	c.Rotate(0, 1000)
	if c.Pitch() != camera.MaxPitch {
		t.Errorf("large delta: expected %v, got %v", camera.MaxPitch, c.Pitch())
	}
}

func TestFrontStaysUnitUnderRotation(t *testing.T) {
	c := camera.New(camera.DefaultOptions())
	deltas := [][2]float32{{13, 7}, {-250, 40}, {3.3, -170}, {720, 0.5}, {-0.01, 95}}

	for _, d := range deltas {
		c.Rotate(d[0], d[1])
		if l := c.Front().Len(); !near(l, 1) {
			t.Errorf("front not unit after rotate %v: len=%v", d, l)
		}
		if c.Pitch() < camera.MinPitch || c.Pitch() > camera.MaxPitch {
			t.Errorf("pitch %v out of range after rotate %v", c.Pitch(), d)
		}
	}
}

func TestTranslationKeepsOrientation(t *testing.T) {
	c := camera.New(camera.DefaultOptions())
	c.Rotate(30, -20)
	front, up := c.Front(), c.Up()

	moves := []func(){c.MoveForward, c.MoveRight, c.MoveBackward, c.MoveLeft, c.MoveForward, c.MoveForward}
	for _, m := range moves {
		m()
		if c.Front() != front {
			t.Fatalf("front changed by translation: %v -> %v", front, c.Front())
		}
		if c.Up() != up {
			t.Fatalf("up changed by translation: %v -> %v", up, c.Up())
		}
	}
	if !near(c.Front().Len(), 1) || !near(c.Up().Len(), 1) {
		t.Errorf("front/up not unit: %v %v", c.Front().Len(), c.Up().Len())
	}
}

func TestMovementDirections(t *testing.T) {
	opts := camera.DefaultOptions()
	opts.Position = mgl32.Vec3{0, 0, 0}
	opts.Speed = 1
	c := camera.New(opts)

	c.MoveForward()
	if p := c.Position(); !near(p.Z(), 1) || !near(p.X(), 0) {
		t.Errorf("forward: expected (0,0,1), got %v", p)
	}

	c.MoveBackward()
	// front (0,0,1) x up (0,1,0) = (-1,0,0)
	c.MoveRight()
	if p := c.Position(); !near(p.X(), -1) || !near(p.Z(), 0) {
		t.Errorf("right: expected (-1,0,0), got %v", p)
	}

	c.MoveLeft()
	c.MoveLeft()
	if p := c.Position(); !near(p.X(), 1) {
		t.Errorf("left: expected x=1, got %v", p)
	}
}

func TestPointerLook(t *testing.T) {
	c := camera.New(camera.DefaultOptions())
	yaw0 := c.Yaw()

	// the first sample only records the position
	c.UpdateFromPointer(250, 250)
	if c.Yaw() != yaw0 || c.Pitch() != 0 {
		t.Fatalf("first pointer sample rotated the camera")
	}

	c.UpdateFromPointer(260, 240)
	if !near(c.Yaw(), yaw0+5) {
		t.Errorf("expected yaw %v, got %v", yaw0+5, c.Yaw())
	}
	if !near(c.Pitch(), 5) {
		t.Errorf("expected pitch 5, got %v", c.Pitch())
	}

	c.ResetPointer()
	c.UpdateFromPointer(0, 0)
	if !near(c.Yaw(), yaw0+5) {
		t.Errorf("reset pointer should swallow the jump, yaw=%v", c.Yaw())
	}
}

func TestViewMatrixLooksAlongFront(t *testing.T) {
	c := camera.New(camera.DefaultOptions())
	view := c.ViewMatrix()

	target := c.Position().Add(c.Front())
	eyeSpace := view.Mul4x1(target.Vec4(1))
	// camera looks down -Z in eye space
	if !near(eyeSpace.X(), 0) || !near(eyeSpace.Y(), 0) || !near(eyeSpace.Z(), -1) {
		t.Errorf("expected target at (0,0,-1) in eye space, got %v", eyeSpace)
	}
}

func TestSetViewport(t *testing.T) {
	c := camera.New(camera.DefaultOptions())
	c.SetViewport(800, 400)
	if c.AspectRatio != 2 {
		t.Errorf("expected aspect 2, got %v", c.AspectRatio)
	}
	c.SetViewport(800, 0)
	if c.AspectRatio != 2 {
		t.Errorf("zero height must be ignored, got %v", c.AspectRatio)
	}
}
