package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pitch is kept inside this range so the front vector never flips at the poles.
const (
	MinPitch = -89.0
	MaxPitch = 89.0
)

// Options describes the initial state of a camera.
type Options struct {
	Position mgl32.Vec3
	Up       mgl32.Vec3
	Yaw      float32 // degrees
	Pitch    float32 // degrees

	Speed       float32 // world units per move
	LookStep    float32 // degrees per discrete look
	Sensitivity float32 // degrees per pointer pixel

	FOV         float32 // vertical, degrees
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Position:    mgl32.Vec3{2, 3, 2},
		Up:          mgl32.Vec3{0, 1, 0},
		Yaw:         90,
		Pitch:       0,
		Speed:       0.5,
		LookStep:    4,
		Sensitivity: 0.5,
		FOV:         45,
		AspectRatio: 1,
		NearPlane:   0.1,
		FarPlane:    500,
	}
}

// Camera is a free-fly camera driven by yaw and pitch Euler angles.
// It is not safe for concurrent use; the render thread owns it.
type Camera struct {
	position mgl32.Vec3
	up       mgl32.Vec3
	front    mgl32.Vec3

	yaw   float32
	pitch float32
	roll  float32

	speed       float32
	lookStep    float32
	sensitivity float32

	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	firstPointer bool
	lastX, lastY float64
}

// New creates a camera and derives its front vector from the given angles.
func New(opts Options) *Camera {
	up := opts.Up
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	c := &Camera{
		position:     opts.Position,
		up:           up.Normalize(),
		yaw:          opts.Yaw,
		pitch:        opts.Pitch,
		speed:        opts.Speed,
		lookStep:     opts.LookStep,
		sensitivity:  opts.Sensitivity,
		FOV:          opts.FOV,
		AspectRatio:  opts.AspectRatio,
		NearPlane:    opts.NearPlane,
		FarPlane:     opts.FarPlane,
		firstPointer: true,
	}
	c.Rotate(0, 0)
	return c
}

func (c *Camera) MoveForward() {
	c.position = c.position.Add(c.front.Mul(c.speed))
}

func (c *Camera) MoveBackward() {
	c.position = c.position.Sub(c.front.Mul(c.speed))
}

func (c *Camera) MoveLeft() {
	c.position = c.position.Sub(c.right().Mul(c.speed))
}

func (c *Camera) MoveRight() {
	c.position = c.position.Add(c.right().Mul(c.speed))
}

func (c *Camera) LookLeft()  { c.Rotate(-c.lookStep, 0) }
func (c *Camera) LookRight() { c.Rotate(c.lookStep, 0) }
func (c *Camera) LookUp()    { c.Rotate(0, c.lookStep) }
func (c *Camera) LookDown()  { c.Rotate(0, -c.lookStep) }

// Rotate adds the given deltas (degrees) to yaw and pitch, clamps pitch and
// recomputes the front vector. Every orientation change goes through here.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.yaw += dYaw
	c.pitch = mgl32.Clamp(c.pitch+dPitch, MinPitch, MaxPitch)
	c.front = frontFromAngles(c.yaw, c.pitch)
}

// ResetPointer makes the next pointer update only record its position.
// Call it whenever the cursor is (re)captured so the view does not jump.
func (c *Camera) ResetPointer() {
	c.firstPointer = true
}

// UpdateFromPointer applies a sensitivity-scaled mouse-look step from the
// delta between the previous and current pointer positions.
func (c *Camera) UpdateFromPointer(x, y float64) {
	if c.firstPointer {
		c.lastX, c.lastY = x, y
		c.firstPointer = false
		return
	}

	dx := float32(x-c.lastX) * c.sensitivity
	// screen y grows downwards
	dy := float32(c.lastY-y) * c.sensitivity
	c.lastX, c.lastY = x, y

	c.Rotate(dx, dy)
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Up() mgl32.Vec3       { return c.up }
func (c *Camera) Front() mgl32.Vec3    { return c.front }
func (c *Camera) Yaw() float32         { return c.yaw }
func (c *Camera) Pitch() float32       { return c.pitch }

// Roll is carried for completeness; nothing rotates around the front axis.
func (c *Camera) Roll() float32 { return c.roll }

// ViewMatrix builds a look-at matrix from position, front and up.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// SetViewport updates the aspect ratio for a framebuffer of the given size.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) right() mgl32.Vec3 {
	return c.front.Cross(c.up).Normalize()
}

func frontFromAngles(yaw, pitch float32) mgl32.Vec3 {
	y := float64(mgl32.DegToRad(yaw))
	p := float64(mgl32.DegToRad(pitch))
	fx := float32(math.Cos(y) * math.Cos(p))
	fy := float32(math.Sin(p))
	fz := float32(math.Sin(y) * math.Cos(p))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}
