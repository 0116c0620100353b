package scene

import "gldemos/internal/graphics"

// Particles animates a line of points with a vertex-shader wave.
type Particles struct {
	Count     int
	Amplitude float32
}

// Bind makes p current and uploads the wave uniforms. It reports whether
// the caller should draw.
func (s Particles) Bind(p *graphics.Program, v View) bool {
	if !use(p) {
		return false
	}
	bindCamera(p, v)
	p.SetFloat("amplitude", s.Amplitude)
	p.SetFloat("particleCount", float32(s.Count))
	p.SetFloat("frameNumber", float32(v.Frame))
	p.SetFloat("time", float32(v.Time))
	return true
}
