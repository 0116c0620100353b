package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"gldemos/internal/app"
	"gldemos/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		demo       = flag.String("demo", config.DemoLighting, "demo to run: particles, lighting or terrain")
		configPath = flag.String("config", "", "TOML config file; overrides -demo")
		shaderDir  = flag.String("shaders", "", "shader directory; overrides the config")
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := loadConfig(*configPath, *demo)
	if err != nil {
		closer.Fatalln(err)
	}
	if *shaderDir != "" {
		cfg.Shaders.Dir = *shaderDir
	}

	if err := run(cfg); err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}

func loadConfig(path, demo string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Default(demo)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, cfg.Validate()
}

// run owns every GL object and releases them on the main thread before
// returning. An interrupt only stops the shader watcher; the process exit
// reclaims the rest.
func run(cfg config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	window, dev, err := app.SetupWindow(cfg.Window)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer window.Destroy()

	a, err := app.New(window, dev, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	closer.Bind(a.StopWatching)

	a.Run()
	return nil
}
