// Command shadercheck builds every program a demo config names in a hidden
// OpenGL 4.1 context and reports which ones compile and link.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"gldemos/internal/config"
	"gldemos/internal/graphics"
	"gldemos/internal/graphics/gldevice"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	demo := flag.String("demo", "", "check one built-in demo instead of all of them")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfgs, err := configs(*configPath, *demo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	failed, err := check(cfgs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func configs(path, demo string) ([]config.Config, error) {
	if path != "" {
		c, err := config.Load(path)
		return []config.Config{c}, err
	}
	demos := []string{config.DemoParticles, config.DemoLighting, config.DemoTerrain}
	if demo != "" {
		demos = []string{demo}
	}
	var out []config.Config
	for _, d := range demos {
		c, err := config.Default(d)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func check(cfgs []config.Config) (int, error) {
	if err := glfw.Init(); err != nil {
		return 0, err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(64, 64, "shadercheck", nil, nil)
	if err != nil {
		return 0, err
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	dev, err := gldevice.Init()
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, cfg := range cfgs {
		lib := graphics.NewLibrary(graphics.NewContext(dev), os.DirFS(cfg.Shaders.Dir))
		for _, src := range cfg.ProgramSources() {
			status := "ok"
			if err := lib.Load(src); err != nil {
				status = "FAIL: " + err.Error()
				failed++
			}
			fmt.Printf("%-10s %-10s %s\n", cfg.Demo, src.Name, status)
		}
		lib.Delete()
	}
	return failed, nil
}
