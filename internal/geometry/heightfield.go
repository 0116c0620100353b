package geometry

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	"golang.org/x/image/draw"
)

// HeightField is a row-major grid of heights in [0,1].
type HeightField struct {
	Width, Depth int
	Heights      []float32
}

func NewHeightField(width, depth int) HeightField {
	return HeightField{Width: width, Depth: depth, Heights: make([]float32, width*depth)}
}

// At returns the height at grid cell (x, z), clamping to the border.
func (h HeightField) At(x, z int) float32 {
	x = max(0, min(x, h.Width-1))
	z = max(0, min(z, h.Depth-1))
	return h.Heights[z*h.Width+x]
}

// NoiseOptions controls procedural height fields.
type NoiseOptions struct {
	Seed        int64
	Frequency   float64 // lattice cells per grid cell
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

func DefaultNoiseOptions() NoiseOptions {
	return NoiseOptions{
		Seed:        1,
		Frequency:   1.0 / 32,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2,
	}
}

// NoiseHeightField fills a width x depth grid with octave value noise.
func NoiseHeightField(width, depth int, opts NoiseOptions) HeightField {
	h := NewHeightField(width, depth)
	for z := range depth {
		for x := range width {
			v := octaveNoise2D(float64(x)*opts.Frequency, float64(z)*opts.Frequency,
				opts.Seed, opts.Octaves, opts.Persistence, opts.Lacunarity)
			h.Heights[z*width+x] = float32(v)
		}
	}
	return h
}

// HeightFieldFromImage resamples img to width x depth with bilinear
// filtering and uses its luminance as height.
func HeightFieldFromImage(img image.Image, width, depth int) HeightField {
	dst := image.NewGray16(image.Rect(0, 0, width, depth))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	h := NewHeightField(width, depth)
	for z := range depth {
		for x := range width {
			h.Heights[z*width+x] = float32(dst.Gray16At(x, z).Y) / 0xffff
		}
	}
	return h
}

// LoadHeightMap decodes a PNG or JPEG height map from fsys.
func LoadHeightMap(fsys fs.FS, name string, width, depth int) (HeightField, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return HeightField{}, fmt.Errorf("open height map: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return HeightField{}, fmt.Errorf("decode height map %s: %w", name, err)
	}
	return HeightFieldFromImage(img, width, depth), nil
}
