package renderer

import (
	"testing"

	"gldemos/internal/camera"

	"github.com/stretchr/testify/assert"
)

type recordingRenderable struct {
	numbers []int
}

func (r *recordingRenderable) Init() error                   { return nil }
func (r *recordingRenderable) Render(f Frame)                { r.numbers = append(r.numbers, f.Number) }
func (r *recordingRenderable) Dispose()                      {}
func (r *recordingRenderable) SetViewport(width, height int) {}

func newTestRenderer(rs ...Renderable) *Renderer {
	return &Renderer{
		renderables: rs,
		camera:      camera.New(camera.DefaultOptions()),
		clear:       func() {},
	}
}

func TestRedrawKeepsFrameNumber(t *testing.T) {
	rec := &recordingRenderable{}
	r := newTestRenderer(rec)

	r.Redraw(0)
	r.Render(0.016, 0.016)
	r.Render(0.016, 0.032)
	r.Redraw(0.04)
	r.Redraw(0.05)

	assert.Equal(t, []int{0, 0, 1, 1, 1}, rec.numbers)
	assert.Equal(t, 2, r.FrameNumber(), "redraws must not advance the frame counter")
}

func TestDisposeRunsInReverse(t *testing.T) {
	var order []string
	a := &disposeRecorder{name: "a", order: &order}
	b := &disposeRecorder{name: "b", order: &order}
	r := newTestRenderer(a, b)

	r.Dispose()
	assert.Equal(t, []string{"b", "a"}, order)
	r.Dispose()
	assert.Len(t, order, 2)
}

type disposeRecorder struct {
	recordingRenderable
	name  string
	order *[]string
}

func (d *disposeRecorder) Dispose() { *d.order = append(*d.order, d.name) }
