package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical demo action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionLookLeft
	ActionLookRight
	ActionLookUp
	ActionLookDown
	ActionToggleWireframe
	ActionToggleMouseLook
	ActionReloadShaders
	ActionQuit
	ActionToggleOverlay
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	"move_forward", "move_backward", "move_left", "move_right",
	"look_left", "look_right", "look_up", "look_down",
	"toggle_wireframe", "toggle_mouse_look", "reload_shaders", "quit",
	"toggle_overlay",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// InputManager maps physical keys to logical actions and keeps per-frame
// state for them.
//
// Besides held/edge state it counts triggers: every press and every key
// repeat of a bound key counts once, so discrete camera steps follow the
// OS key-repeat rate.
type InputManager struct {
	mu sync.RWMutex

	// one key can map to multiple actions
	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool
	prevState    [ActionCount]bool

	// reset each frame
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
	triggers     [ActionCount]int
}

// NewInputManager creates an InputManager with the default bindings:
// WASD to move, arrow keys to look, Space wireframe, Escape mouse look,
// R reload shaders, Q quit, F3 status overlay.
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions: make(map[glfw.Key][]Action),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyLeft, ActionLookLeft)
	im.BindKey(glfw.KeyRight, ActionLookRight)
	im.BindKey(glfw.KeyUp, ActionLookUp)
	im.BindKey(glfw.KeyDown, ActionLookDown)
	im.BindKey(glfw.KeySpace, ActionToggleWireframe)
	im.BindKey(glfw.KeyEscape, ActionToggleMouseLook)
	im.BindKey(glfw.KeyR, ActionReloadShaders)
	im.BindKey(glfw.KeyQ, ActionQuit)
	im.BindKey(glfw.KeyF3, ActionToggleOverlay)

	return im
}

// BindKey binds a physical key to a logical action
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.keyToActions[key]
	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat

	for _, act := range actions {
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		if isPressed {
			im.triggers[act]++
		}
		im.currentState[act] = isPressed
	}
}

// SetKeyCallback installs the GLFW key callback for this input manager
func (im *InputManager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
}

// PostUpdate must be called at the end of each frame, after all input checks
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
		im.triggers[i] = 0
		im.prevState[i] = im.currentState[i]
	}
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}

// Triggers returns how many press or repeat events the action received this
// frame.
func (im *InputManager) Triggers(action Action) int {
	if action < 0 || action >= ActionCount {
		return 0
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.triggers[action]
}
