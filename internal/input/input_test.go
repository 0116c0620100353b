package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestPressRepeatRelease(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	im.HandleKeyEvent(glfw.KeyW, glfw.Repeat)
	im.HandleKeyEvent(glfw.KeyW, glfw.Repeat)

	if !im.IsActive(ActionMoveForward) {
		t.Fatal("expected move_forward held")
	}
	if !im.JustPressed(ActionMoveForward) {
		t.Error("expected just pressed")
	}
	if got := im.Triggers(ActionMoveForward); got != 3 {
		t.Errorf("expected 3 triggers, got %d", got)
	}

	im.PostUpdate()
	if im.JustPressed(ActionMoveForward) || im.Triggers(ActionMoveForward) != 0 {
		t.Error("frame state not reset")
	}
	if !im.IsActive(ActionMoveForward) {
		t.Error("held state must survive PostUpdate")
	}

	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	if !im.JustReleased(ActionMoveForward) {
		t.Error("expected just released")
	}
	if im.Triggers(ActionMoveForward) != 0 {
		t.Error("release must not trigger")
	}
}

func TestBindings(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	for a := range ActionCount {
		if im.IsActive(a) {
			t.Errorf("unbound key activated %v", a)
		}
	}

	im.BindKey(glfw.KeyZ, ActionQuit)
	im.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	if im.Triggers(ActionQuit) != 1 {
		t.Error("expected rebound key to trigger quit")
	}

	im.UnbindKey(glfw.KeyLeft)
	im.HandleKeyEvent(glfw.KeyLeft, glfw.Press)
	if im.IsActive(ActionLookLeft) {
		t.Error("unbound key still active")
	}

	if im.IsActive(ActionCount) || im.Triggers(-1) != 0 {
		t.Error("out of range actions must read as inactive")
	}
}

func TestActionString(t *testing.T) {
	if ActionLookRight.String() != "look_right" {
		t.Errorf("got %q", ActionLookRight.String())
	}
	if ActionCount.String() != "unknown" {
		t.Errorf("got %q", ActionCount.String())
	}
}
