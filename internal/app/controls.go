package app

import "gldemos/internal/input"

// cameraControls is the part of camera.Camera driven by discrete key steps.
type cameraControls interface {
	MoveForward()
	MoveBackward()
	MoveLeft()
	MoveRight()
	LookLeft()
	LookRight()
	LookUp()
	LookDown()
}

var cameraBindings = []struct {
	action input.Action
	apply  func(cameraControls)
}{
	{input.ActionMoveForward, cameraControls.MoveForward},
	{input.ActionMoveBackward, cameraControls.MoveBackward},
	{input.ActionMoveLeft, cameraControls.MoveLeft},
	{input.ActionMoveRight, cameraControls.MoveRight},
	{input.ActionLookLeft, cameraControls.LookLeft},
	{input.ActionLookRight, cameraControls.LookRight},
	{input.ActionLookUp, cameraControls.LookUp},
	{input.ActionLookDown, cameraControls.LookDown},
}

// steerCamera applies one camera step per press or repeat received this
// frame.
func steerCamera(im *input.InputManager, cam cameraControls) {
	for _, b := range cameraBindings {
		for range im.Triggers(b.action) {
			b.apply(cam)
		}
	}
}
