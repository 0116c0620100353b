package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gldemos/internal/camera"
	"gldemos/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Demo names.
const (
	DemoParticles = "particles"
	DemoLighting  = "lighting"
	DemoTerrain   = "terrain"
)

// Config describes one demo run: window, camera, which programs to build
// and the demo's own knobs.
type Config struct {
	Demo      string          `toml:"demo"`
	Window    WindowConfig    `toml:"window"`
	Camera    CameraConfig    `toml:"camera"`
	Shaders   ShaderConfig    `toml:"shaders"`
	Programs  []ProgramConfig `toml:"programs"`
	Particles ParticlesConfig `toml:"particles"`
	Lighting  LightingConfig  `toml:"lighting"`
	Terrain   TerrainConfig   `toml:"terrain"`
}

type WindowConfig struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Title      string     `toml:"title"`
	VSync      bool       `toml:"vsync"`
	FPSLimit   int        `toml:"fps_limit"` // 0 = uncapped
	Wireframe  bool       `toml:"wireframe"`
	Overlay    bool       `toml:"overlay"` // status text, toggled with F3
	ClearColor [3]float32 `toml:"clear_color"`
}

type CameraConfig struct {
	Position    [3]float32 `toml:"position"`
	Yaw         float32    `toml:"yaw"`
	Pitch       float32    `toml:"pitch"`
	Speed       float32    `toml:"speed"`
	LookStep    float32    `toml:"look_step"`
	Sensitivity float32    `toml:"sensitivity"`
	MouseLook   bool       `toml:"mouse_look"`
	FOV         float32    `toml:"fov"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
}

type ShaderConfig struct {
	Dir       string `toml:"dir"`
	HotReload bool   `toml:"hot_reload"`
	Validate  bool   `toml:"validate"`
}

// ProgramConfig names a program and its stage files, relative to
// ShaderConfig.Dir.
type ProgramConfig struct {
	Name     string `toml:"name"`
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
}

type ParticlesConfig struct {
	Count     int     `toml:"count"`
	Amplitude float32 `toml:"amplitude"`
}

type LightingConfig struct {
	OrbitRadius float32    `toml:"orbit_radius"`
	Ambient     float32    `toml:"ambient"`
	ObjectColor [3]float32 `toml:"object_color"`
	LightColor  [3]float32 `toml:"light_color"`
	MarkerScale float32    `toml:"marker_scale"`
	Model       string     `toml:"model"` // optional .gltf/.glb replacing the cube
}

type TerrainConfig struct {
	HeightMap      string     `toml:"height_map"` // optional image; noise when empty
	Size           int        `toml:"size"`
	CellSize       float32    `toml:"cell_size"`
	HeightScale    float32    `toml:"height_scale"`
	Seed           int64      `toml:"seed"`
	Octaves        int        `toml:"octaves"`
	LightDirection [3]float32 `toml:"light_direction"`
	LightColor     [3]float32 `toml:"light_color"`
}

// OverlayProgram draws the status overlay. Every demo loads it, but none
// requires it: without it the overlay stays blank.
const OverlayProgram = "text"

// RequiredPrograms lists the program names a demo draws with.
func RequiredPrograms(demo string) []string {
	switch demo {
	case DemoParticles:
		return []string{"wave", "wave_alt"}
	case DemoLighting:
		return []string{"geometry", "light"}
	case DemoTerrain:
		return []string{"terrain"}
	}
	return nil
}

// Default returns the built-in configuration for a demo.
func Default(demo string) (Config, error) {
	c := Config{
		Demo: demo,
		Window: WindowConfig{
			Width:      1000,
			Height:     1000,
			Title:      demo,
			VSync:      true,
			Overlay:    true,
			ClearColor: [3]float32{0.2, 0.2, 0.2},
		},
		Camera: CameraConfig{
			Position:    [3]float32{2, 3, 2},
			Yaw:         90,
			Speed:       0.5,
			LookStep:    4,
			Sensitivity: 0.5,
			FOV:         45,
			Near:        0.1,
			Far:         500,
		},
		Shaders: ShaderConfig{Dir: "assets/shaders", HotReload: true},
		Particles: ParticlesConfig{
			Count:     1000,
			Amplitude: 1,
		},
		Lighting: LightingConfig{
			OrbitRadius: 50,
			Ambient:     0.7,
			ObjectColor: [3]float32{0.2, 0.7, 0},
			LightColor:  [3]float32{1, 1, 1},
			MarkerScale: 1,
		},
		Terrain: TerrainConfig{
			Size:           128,
			CellSize:       1,
			HeightScale:    16,
			Seed:           1,
			Octaves:        4,
			LightDirection: [3]float32{-0.3, -1, -0.2},
			LightColor:     [3]float32{1, 0.95, 0.85},
		},
	}

	switch demo {
	case DemoParticles:
		c.Programs = []ProgramConfig{
			{Name: "wave", Vertex: "wave.vert", Fragment: "color.frag"},
			{Name: "wave_alt", Vertex: "wave_alt.vert", Fragment: "color.frag"},
		}
	case DemoLighting:
		c.Window.Width, c.Window.Height = 500, 500
		c.Camera.Position = [3]float32{1, 0, -10}
		c.Camera.Speed = 1
		c.Camera.LookStep = 20
		c.Camera.MouseLook = true
		c.Camera.Far = 10000
		c.Programs = []ProgramConfig{
			{Name: "geometry", Vertex: "lit.vert", Fragment: "lit.frag"},
			{Name: "light", Vertex: "lit.vert", Fragment: "light.frag"},
		}
	case DemoTerrain:
		c.Window.Width, c.Window.Height = 1280, 720
		c.Camera.Position = [3]float32{0, 30, -80}
		c.Camera.Pitch = -20
		c.Camera.Speed = 2
		c.Camera.MouseLook = true
		c.Camera.Far = 2000
		c.Window.ClearColor = [3]float32{0.53, 0.81, 0.92}
		c.Programs = []ProgramConfig{
			{Name: "terrain", Vertex: "terrain.vert", Fragment: "terrain.frag"},
		}
	default:
		return Config{}, fmt.Errorf("%w: unknown demo %q", ErrInvalid, demo)
	}
	c.Programs = append(c.Programs, ProgramConfig{Name: OverlayProgram, Vertex: "text.vert", Fragment: "text.frag"})
	return c, nil
}

// Load reads a TOML file on top of the defaults of the demo it names.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes TOML on top of the defaults of the demo it names (lighting
// when none is given), then validates. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var head struct {
		Demo string `toml:"demo"`
	}
	if err := toml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if head.Demo == "" {
		head.Demo = DemoLighting
	}

	c, err := Default(head.Demo)
	if err != nil {
		return Config{}, err
	}

	// a file that lists programs replaces the default list entirely
	defaults := c.Programs
	c.Programs = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(c.Programs) == 0 {
		c.Programs = defaults
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate clamps tunables into their supported ranges and rejects
// configurations that cannot run.
func (c *Config) Validate() error {
	if RequiredPrograms(c.Demo) == nil {
		return fmt.Errorf("%w: unknown demo %q", ErrInvalid, c.Demo)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}

	seen := make(map[string]bool, len(c.Programs))
	for i, p := range c.Programs {
		if p.Name == "" || p.Vertex == "" || p.Fragment == "" {
			return fmt.Errorf("%w: program %d needs name, vertex and fragment", ErrInvalid, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate program %q", ErrInvalid, p.Name)
		}
		seen[p.Name] = true
	}
	for _, name := range RequiredPrograms(c.Demo) {
		if !seen[name] {
			return fmt.Errorf("%w: demo %s needs program %q", ErrInvalid, c.Demo, name)
		}
	}

	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}

	c.Window.FPSLimit = clamp(c.Window.FPSLimit, 0, 1000)
	c.Camera.Pitch = mgl32.Clamp(c.Camera.Pitch, camera.MinPitch, camera.MaxPitch)
	c.Camera.Sensitivity = mgl32.Clamp(c.Camera.Sensitivity, 0.01, 10)
	c.Camera.FOV = mgl32.Clamp(c.Camera.FOV, 1, 179)
	if c.Camera.Speed <= 0 {
		c.Camera.Speed = 0.5
	}
	c.Particles.Count = clamp(c.Particles.Count, 2, 1_000_000)
	c.Terrain.Size = clamp(c.Terrain.Size, 2, 1024)
	c.Terrain.Octaves = clamp(c.Terrain.Octaves, 1, 8)
	if c.Terrain.CellSize <= 0 {
		c.Terrain.CellSize = 1
	}
	if c.Lighting.MarkerScale <= 0 {
		c.Lighting.MarkerScale = 1
	}
	return nil
}

// CameraOptions converts the camera section for camera.New.
func (c Config) CameraOptions() camera.Options {
	return camera.Options{
		Position:    mgl32.Vec3(c.Camera.Position),
		Up:          mgl32.Vec3{0, 1, 0},
		Yaw:         c.Camera.Yaw,
		Pitch:       c.Camera.Pitch,
		Speed:       c.Camera.Speed,
		LookStep:    c.Camera.LookStep,
		Sensitivity: c.Camera.Sensitivity,
		FOV:         c.Camera.FOV,
		AspectRatio: float32(c.Window.Width) / float32(c.Window.Height),
		NearPlane:   c.Camera.Near,
		FarPlane:    c.Camera.Far,
	}
}

// ProgramSources converts the program list for graphics.Library. Paths are
// relative to the shader directory.
func (c Config) ProgramSources() []graphics.ProgramSource {
	out := make([]graphics.ProgramSource, 0, len(c.Programs))
	for _, p := range c.Programs {
		out = append(out, graphics.ProgramSource{
			Name: p.Name,
			Stages: []graphics.StageSource{
				{Kind: graphics.VertexShader, Path: p.Vertex},
				{Kind: graphics.FragmentShader, Path: p.Fragment},
			},
		})
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
