package scene_test

import (
	"os"
	"strings"
	"testing"

	"gldemos/internal/config"
	"gldemos/internal/graphics"
	"gldemos/internal/lighting"
	"gldemos/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDevice links every program and exposes the uniforms declared in its
// sources. Values are recorded per program and uniform name.
type stubDevice struct {
	next     uint32
	sources  map[uint32]string
	attached map[uint32][]uint32
	names    map[uint32]map[int32]string
	values   map[uint32]map[string]any
	current  uint32
}

func newStubDevice() *stubDevice {
	return &stubDevice{
		sources:  make(map[uint32]string),
		attached: make(map[uint32][]uint32),
		names:    make(map[uint32]map[int32]string),
		values:   make(map[uint32]map[string]any),
	}
}

func (d *stubDevice) CreateShader(graphics.ShaderKind) uint32 {
	d.next++
	return d.next
}
func (d *stubDevice) CompileShader(s uint32, src string)      { d.sources[s] = src }
func (d *stubDevice) ShaderCompiled(uint32) bool              { return true }
func (d *stubDevice) ShaderInfoLog(uint32, int) string        { return "" }
func (d *stubDevice) DeleteShader(uint32)                     {}
func (d *stubDevice) AttachShader(p, s uint32)                { d.attached[p] = append(d.attached[p], s) }
func (d *stubDevice) DetachShader(uint32, uint32)             {}
func (d *stubDevice) ProgramLinked(uint32) bool               { return true }
func (d *stubDevice) ValidateProgram(uint32) bool             { return true }
func (d *stubDevice) ProgramInfoLog(uint32, int) string       { return "" }
func (d *stubDevice) DeleteProgram(uint32)                    {}
func (d *stubDevice) UseProgram(p uint32)                     { d.current = p }
func (d *stubDevice) Uniform1f(loc int32, v float32)          { d.set(loc, v) }
func (d *stubDevice) Uniform1i(loc int32, v int32)            { d.set(loc, v) }
func (d *stubDevice) Uniform3f(loc int32, x, y, z float32)    { d.set(loc, mgl32.Vec3{x, y, z}) }
func (d *stubDevice) UniformMatrix4f(loc int32, m mgl32.Mat4) { d.set(loc, m) }

func (d *stubDevice) CreateProgram() uint32 {
	d.next++
	d.names[d.next] = make(map[int32]string)
	d.values[d.next] = make(map[string]any)
	return d.next
}

func (d *stubDevice) LinkProgram(p uint32) {
	for _, s := range d.attached[p] {
		for _, line := range strings.Split(d.sources[s], "\n") {
			f := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
			if len(f) == 3 && f[0] == "uniform" {
				d.names[p][int32(len(d.names[p]))] = f[2]
			}
		}
	}
}

func (d *stubDevice) UniformLocation(p uint32, name string) int32 {
	for loc, n := range d.names[p] {
		if n == name {
			return loc
		}
	}
	return -1
}

func (d *stubDevice) set(loc int32, v any) {
	d.values[d.current][d.names[d.current][loc]] = v
}

func build(t *testing.T, dev *stubDevice, ctx *graphics.Context, vertex string) *graphics.Program {
	t.Helper()
	p := graphics.NewProgram(ctx, "test")
	p.RegisterShader(graphics.NewShader(dev, graphics.VertexShader, "vs", vertex))
	p.RegisterShader(graphics.NewShader(dev, graphics.FragmentShader, "fs", "void main() {}"))
	require.True(t, p.Build())
	return p
}

func uniforms(names ...string) string {
	var b strings.Builder
	for _, n := range names {
		b.WriteString("uniform x " + n + ";\n")
	}
	return b.String()
}

func testView() scene.View {
	return scene.View{
		Proj:  mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100),
		View:  mgl32.LookAtV(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		Eye:   mgl32.Vec3{0, 0, -5},
		Frame: 42,
		Time:  1.5,
	}
}

func TestParticlesBind(t *testing.T) {
	dev := newStubDevice()
	ctx := graphics.NewContext(dev)
	p := build(t, dev, ctx, uniforms("projectionMatrix", "viewMatrix", "amplitude", "particleCount", "frameNumber", "time"))
	v := testView()

	ok := scene.Particles{Count: 1000, Amplitude: 2}.Bind(p, v)
	require.True(t, ok)
	assert.Equal(t, p.ID(), ctx.CurrentProgram())

	got := dev.values[p.ID()]
	assert.Equal(t, v.Proj, got["projectionMatrix"])
	assert.Equal(t, v.View, got["viewMatrix"])
	assert.Equal(t, float32(2), got["amplitude"])
	assert.Equal(t, float32(1000), got["particleCount"])
	assert.Equal(t, float32(42), got["frameNumber"])
	assert.Equal(t, float32(1.5), got["time"])
}

func TestBindSkipsUnusablePrograms(t *testing.T) {
	dev := newStubDevice()
	ctx := graphics.NewContext(dev)

	assert.False(t, scene.Particles{}.Bind(nil, testView()))

	unbuilt := graphics.NewProgram(ctx, "unbuilt")
	assert.False(t, scene.Terrain{}.Bind(unbuilt, testView()))
	assert.Zero(t, ctx.CurrentProgram())
}

func TestLightingPassesTargetTheirOwnProgram(t *testing.T) {
	dev := newStubDevice()
	ctx := graphics.NewContext(dev)
	object := build(t, dev, ctx, uniforms("projectionMatrix", "viewMatrix", "modelMatrix",
		"objectColor", "lightColor", "lightPosition", "viewPosition", "ambientScale"))
	marker := build(t, dev, ctx, uniforms("projectionMatrix", "viewMatrix", "modelMatrix", "lightColor"))

	s := &scene.Lighting{
		Light:       lighting.LightSource{Color: mgl32.Vec3{1, 1, 1}},
		Orbit:       lighting.Orbit{Radius: 50},
		ObjectColor: mgl32.Vec3{0.2, 0.7, 0},
		Ambient:     0.7,
		MarkerScale: 2,
	}
	v := testView()
	s.Advance(0)
	assert.Equal(t, mgl32.Vec3{0, 0, 50}, s.Light.Position)

	require.True(t, s.BindObject(object, v))
	require.True(t, s.BindMarker(marker, v))

	o := dev.values[object.ID()]
	assert.Equal(t, v.View, o["viewMatrix"])
	assert.Equal(t, mgl32.Ident4(), o["modelMatrix"])
	assert.Equal(t, s.ObjectColor, o["objectColor"])
	assert.Equal(t, s.Light.Position, o["lightPosition"])
	assert.Equal(t, v.Eye, o["viewPosition"])
	assert.Equal(t, float32(0.7), o["ambientScale"])

	m := dev.values[marker.ID()]
	assert.Equal(t, v.View, m["viewMatrix"], "the marker gets its own view matrix")
	assert.Equal(t, s.Light.ModelMatrix(2), m["modelMatrix"])
	assert.Equal(t, marker.ID(), ctx.CurrentProgram())
}

func TestTerrainNormalisesLightDirection(t *testing.T) {
	dev := newStubDevice()
	ctx := graphics.NewContext(dev)
	p := build(t, dev, ctx, uniforms("projectionMatrix", "viewMatrix", "modelMatrix",
		"lightDirection", "lightColor", "heightScale"))

	s := scene.Terrain{LightDirection: mgl32.Vec3{0, -2, 0}, LightColor: mgl32.Vec3{1, 1, 1}, HeightScale: 16}
	require.True(t, s.Bind(p, testView()))

	got := dev.values[p.ID()]
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, got["lightDirection"])
	assert.Equal(t, float32(16), got["heightScale"])
}

func loadDemo(t *testing.T, dev *stubDevice, demo string) *graphics.Library {
	t.Helper()
	cfg, err := config.Default(demo)
	require.NoError(t, err)
	lib := graphics.NewLibrary(graphics.NewContext(dev), os.DirFS("../../assets/shaders"))
	for _, src := range cfg.ProgramSources() {
		require.NoError(t, lib.Load(src))
	}
	return lib
}

func TestShippedShadersDeclareBoundUniforms(t *testing.T) {
	v := testView()

	t.Run("particles", func(t *testing.T) {
		dev := newStubDevice()
		lib := loadDemo(t, dev, config.DemoParticles)
		for _, name := range []string{"wave", "wave_alt"} {
			p := lib.Get(name)
			require.True(t, scene.Particles{Count: 10, Amplitude: 1}.Bind(p, v))
			assert.Len(t, dev.values[p.ID()], 6, name)
		}
	})

	t.Run("lighting", func(t *testing.T) {
		dev := newStubDevice()
		lib := loadDemo(t, dev, config.DemoLighting)
		s := &scene.Lighting{MarkerScale: 1}
		object, marker := lib.Get("geometry"), lib.Get("light")
		require.True(t, s.BindObject(object, v))
		require.True(t, s.BindMarker(marker, v))
		assert.Len(t, dev.values[object.ID()], 8)
		assert.Len(t, dev.values[marker.ID()], 4)
	})

	t.Run("terrain", func(t *testing.T) {
		dev := newStubDevice()
		lib := loadDemo(t, dev, config.DemoTerrain)
		p := lib.Get("terrain")
		require.True(t, scene.Terrain{LightDirection: mgl32.Vec3{0, -1, 0}}.Bind(p, v))
		assert.Len(t, dev.values[p.ID()], 6)
	})

	t.Run("overlay", func(t *testing.T) {
		dev := newStubDevice()
		lib := loadDemo(t, dev, config.DemoTerrain)
		p := lib.Get(config.OverlayProgram)
		s := scene.Overlay{Projection: scene.ScreenProjection(800, 600), Color: mgl32.Vec3{1, 1, 1}}
		require.True(t, s.Bind(p))
		assert.Len(t, dev.values[p.ID()], 3)
		assert.Equal(t, int32(0), dev.values[p.ID()]["glyphs"])
	})
}
