// Package text bakes a font into a single-channel glyph atlas and lays out
// strings as textured quads in pixel coordinates.
package text

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	firstRune = ' '
	lastRune  = '~'
	padding   = 1
	atlasW    = 512
)

// Glyph describes one character's placement within the atlas and its
// metrics, all in pixels.
type Glyph struct {
	AtlasX, AtlasY float32
	Width, Height  float32
	BearingX       float32
	BearingY       float32
	Advance        float32
}

// Atlas holds the baked glyph bitmap and per-rune metrics.
type Atlas struct {
	Image      *image.Alpha
	Glyphs     map[rune]Glyph
	LineHeight float32
}

// DefaultAtlas bakes the embedded Go Regular font.
func DefaultAtlas(pixels float64) (*Atlas, error) {
	return NewAtlas(goregular.TTF, pixels)
}

// NewAtlas parses a TrueType/OpenType font and bakes printable ASCII at the
// given pixel size.
func NewAtlas(fontData []byte, pixels float64) (*Atlas, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: pixels, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	// first pass: pack rows to find the atlas height
	offsetX, offsetY, rowH := 0, 0, 0
	for r := rune(firstRune); r <= lastRune; r++ {
		dr, _, _, _, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || dr.Empty() {
			continue
		}
		if offsetX+dr.Dx() > atlasW {
			offsetX = 0
			offsetY += rowH + padding
			rowH = 0
		}
		offsetX += dr.Dx() + padding
		rowH = max(rowH, dr.Dy())
	}
	atlasH := nextPow2(offsetY + rowH + padding)

	a := &Atlas{
		Image:      image.NewAlpha(image.Rect(0, 0, atlasW, atlasH)),
		Glyphs:     make(map[rune]Glyph, lastRune-firstRune+1),
		LineHeight: float32(face.Metrics().Height.Ceil()),
	}

	// second pass: draw each glyph and record metrics
	offsetX, offsetY, rowH = 0, 0, 0
	for r := rune(firstRune); r <= lastRune; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		g := Glyph{
			BearingX: float32(dr.Min.X),
			BearingY: float32(-dr.Min.Y),
			Advance:  float32(math.Round(float64(advance) / 64)),
		}
		if !dr.Empty() {
			if offsetX+dr.Dx() > atlasW {
				offsetX = 0
				offsetY += rowH + padding
				rowH = 0
			}
			dst := image.Rect(offsetX, offsetY, offsetX+dr.Dx(), offsetY+dr.Dy())
			draw.Draw(a.Image, dst, mask, maskp, draw.Src)

			g.AtlasX, g.AtlasY = float32(offsetX), float32(offsetY)
			g.Width, g.Height = float32(dr.Dx()), float32(dr.Dy())
			offsetX += dr.Dx() + padding
			rowH = max(rowH, dr.Dy())
		}
		a.Glyphs[r] = g
	}
	return a, nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Measure returns the width and tallest glyph height of s at scale.
// Unknown runes advance like a space.
func (a *Atlas) Measure(s string, scale float32) (float32, float32) {
	var w, h float32
	for _, r := range s {
		g, ok := a.Glyphs[r]
		if !ok {
			w += a.Glyphs[' '].Advance * scale
			continue
		}
		w += g.Advance * scale
		h = max(h, g.Height*scale)
	}
	return w, h
}

// AppendQuads appends two triangles per visible glyph of s, each vertex as
// (x, y, u, v), with the baseline starting at (x, y).
func (a *Atlas) AppendQuads(dst []float32, s string, x, y, scale float32) []float32 {
	aw, ah := float32(a.Image.Rect.Dx()), float32(a.Image.Rect.Dy())
	for _, r := range s {
		g, ok := a.Glyphs[r]
		if !ok {
			x += a.Glyphs[' '].Advance * scale
			continue
		}
		if g.Width > 0 && g.Height > 0 {
			x0 := x + g.BearingX*scale
			y0 := y - g.BearingY*scale
			x1, y1 := x0+g.Width*scale, y0+g.Height*scale
			u0, v0 := g.AtlasX/aw, g.AtlasY/ah
			u1, v1 := (g.AtlasX+g.Width)/aw, (g.AtlasY+g.Height)/ah
			dst = append(dst,
				x0, y1, u0, v1,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x0, y1, u0, v1,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
			)
		}
		x += g.Advance * scale
	}
	return dst
}

// Layout lays out lines top to bottom. The first baseline sits one line
// height below y.
func (a *Atlas) Layout(lines []string, x, y, scale float32) []float32 {
	var out []float32
	step := a.LineHeight * scale
	for _, line := range lines {
		y += step
		out = a.AppendQuads(out, line, x, y, scale)
	}
	return out
}
