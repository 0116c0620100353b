package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gldemos/internal/assets"
	"gldemos/internal/camera"
	"gldemos/internal/config"
	"gldemos/internal/graphics"
	"gldemos/internal/graphics/renderables/litcube"
	"gldemos/internal/graphics/renderables/overlay"
	"gldemos/internal/graphics/renderables/particles"
	"gldemos/internal/graphics/renderables/terrain"
	"gldemos/internal/graphics/renderer"
	"gldemos/internal/input"
	"gldemos/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const slowFrame = 50 * time.Millisecond

// App owns one running demo: window, camera, shader library and the
// renderer drawing with them. All methods run on the main thread.
type App struct {
	cfg    config.Config
	window *glfw.Window

	input    *input.InputManager
	camera   *camera.Camera
	library  *graphics.Library
	renderer *renderer.Renderer
	overlay  *overlay.Overlay
	watcher  *assets.Watcher
	profiler *profiling.Profiler
	limiter  *FPSLimiter

	mouseLook bool
	start     time.Time
	lastTime  time.Time

	frames       int
	fps          float64
	lastFPSCheck time.Time
}

// New loads the demo's programs, builds its renderables and installs the
// window callbacks. Programs that fail to build are logged and left
// inactive; the demo still runs and skips their passes.
func New(window *glfw.Window, dev graphics.Device, cfg config.Config) (*App, error) {
	lib := graphics.NewLibrary(graphics.NewContext(dev), os.DirFS(cfg.Shaders.Dir))
	for _, src := range cfg.ProgramSources() {
		if err := lib.Load(src); err != nil {
			slog.Error("program unavailable", "program", src.Name, "err", err)
		}
	}

	now := time.Now()
	a := &App{
		cfg:          cfg,
		window:       window,
		input:        input.NewInputManager(),
		camera:       camera.New(cfg.CameraOptions()),
		library:      lib,
		profiler:     profiling.New(),
		limiter:      NewFPSLimiter(cfg.Window.FPSLimit),
		start:        now,
		lastTime:     now,
		lastFPSCheck: now,
	}
	a.overlay = overlay.NewOverlay(lib, cfg.Window.Overlay, a.statusLines)

	rs := append(demoRenderables(cfg, lib), a.overlay)
	r, err := renderer.NewRenderer(a.camera, mgl32.Vec3(cfg.Window.ClearColor), rs...)
	if err != nil {
		lib.Delete()
		return nil, fmt.Errorf("demo %s: %w", cfg.Demo, err)
	}
	a.renderer = r
	r.SetWireframe(cfg.Window.Wireframe)

	if cfg.Shaders.Validate {
		if failed := lib.Validate(); len(failed) > 0 {
			slog.Warn("programs failed validation", "programs", failed)
		}
	}

	if cfg.Shaders.HotReload {
		a.watcher, err = assets.NewWatcher(cfg.Shaders.Dir, lib.Paths())
		if err != nil {
			slog.Warn("shader hot reload disabled", "err", err)
		}
	}

	a.setupCallbacks()
	a.setMouseLook(cfg.Camera.MouseLook)

	fbW, fbH := window.GetFramebufferSize()
	r.UpdateViewport(fbW, fbH)

	slog.Info("demo ready", "demo", cfg.Demo, "programs", lib.Names())
	return a, nil
}

func demoRenderables(cfg config.Config, lib *graphics.Library) []renderer.Renderable {
	switch cfg.Demo {
	case config.DemoParticles:
		return []renderer.Renderable{particles.NewParticles(lib, cfg.Particles)}
	case config.DemoLighting:
		return []renderer.Renderable{litcube.NewLitCube(lib, cfg.Lighting)}
	case config.DemoTerrain:
		return []renderer.Renderable{terrain.NewTerrain(lib, cfg.Terrain)}
	}
	return nil
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	a.profiler.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	glfw.PollEvents()

	a.handleInput()
	a.reloadChangedShaders()

	func() {
		defer a.profiler.Track("renderer.Render")()
		a.renderer.Render(dt, time.Since(a.start).Seconds())
	}()

	if d := time.Since(startTick); d > slowFrame {
		slog.Warn("slow frame", "duration", d, "top", a.profiler.TopN(5))
	}

	a.window.SwapBuffers()
	a.input.PostUpdate()
	a.updateFPS()
	a.limiter.Wait()
}

func (a *App) handleInput() {
	defer a.profiler.Track("app.input")()

	steerCamera(a.input, a.camera)

	if a.input.JustPressed(input.ActionToggleWireframe) {
		slog.Debug("wireframe", "on", a.renderer.ToggleWireframe())
	}
	if a.input.JustPressed(input.ActionToggleMouseLook) {
		a.setMouseLook(!a.mouseLook)
	}
	if a.input.JustPressed(input.ActionReloadShaders) {
		if err := a.library.ReloadAll(); err != nil {
			slog.Error("shader reload", "err", err)
		} else {
			slog.Info("shaders reloaded", "programs", a.library.Names())
		}
	}
	if a.input.JustPressed(input.ActionToggleOverlay) {
		a.overlay.Toggle()
	}
	if a.input.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
}

func (a *App) reloadChangedShaders() {
	if a.watcher == nil {
		return
	}
	for _, file := range a.watcher.Pending() {
		names, err := a.library.Reload(file)
		if len(names) > 0 {
			slog.Info("shader reloaded", "file", file, "programs", names)
		}
		if err != nil {
			slog.Error("shader reload", "file", file, "err", err)
		}
	}
}

func (a *App) setMouseLook(on bool) {
	a.mouseLook = on
	if on {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		a.camera.ResetPointer()
	} else {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (a *App) updateFPS() {
	a.frames++
	if elapsed := time.Since(a.lastFPSCheck); elapsed >= time.Second {
		a.fps = float64(a.frames) / elapsed.Seconds()
		a.window.SetTitle(fmt.Sprintf("%s - %.0f FPS", a.cfg.Window.Title, a.fps))
		a.frames = 0
		a.lastFPSCheck = time.Now()
	}
}

func (a *App) statusLines() []string {
	return statusLines(a.cfg.Demo, a.fps, a.renderer.FrameNumber(), a.camera, a.library, a.renderer.Wireframe(), a.mouseLook)
}

func (a *App) setupCallbacks() {
	a.input.SetKeyCallback(a.window)

	a.window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if a.mouseLook {
			a.camera.UpdateFromPointer(xpos, ypos)
		}
	})

	a.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.renderer.UpdateViewport(width, height)
	})

	a.window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused && a.mouseLook {
			a.setMouseLook(false)
		}
	})

	a.window.SetRefreshCallback(func(w *glfw.Window) {
		a.renderer.Redraw(time.Since(a.start).Seconds())
		w.SwapBuffers()
	})
}

// StopWatching closes the shader watcher. It may run on any goroutine.
func (a *App) StopWatching() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Close(); err != nil {
		slog.Warn("close shader watcher", "err", err)
	}
}

// Close stops the shader watcher and releases GPU resources in reverse
// order of creation. It must run on the main thread. Safe to call twice.
func (a *App) Close() {
	a.StopWatching()
	if a.renderer != nil {
		a.renderer.Dispose()
		a.renderer = nil
	}
	if a.library != nil {
		a.library.Delete()
		a.library = nil
	}
}
