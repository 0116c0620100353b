package app

import (
	"gldemos/internal/config"
	"gldemos/internal/graphics/gldevice"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupWindow opens a window with an OpenGL 4.1 core context and loads the
// GL function table. glfw.Init must already have succeeded.
func SetupWindow(cfg config.WindowConfig) (*glfw.Window, *gldevice.Device, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	window.MakeContextCurrent()

	dev, err := gldevice.Init()
	if err != nil {
		window.Destroy()
		return nil, nil, err
	}

	// with vsync off the FPS limiter paces frames
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	return window, dev, nil
}
