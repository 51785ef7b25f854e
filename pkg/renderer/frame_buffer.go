package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// FrameBuffer accumulates per-pixel color sums in row-major order, y = 0
// being the top row. It is not safe for concurrent use; the orchestrator
// is its only writer.
type FrameBuffer struct {
	width, height int
	pixels        []core.Vec3
}

// NewFrameBuffer creates a zeroed buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the buffer width in pixels
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the buffer height in pixels
func (fb *FrameBuffer) Height() int { return fb.height }

// Accumulate adds a color sum into pixel (x, y)
func (fb *FrameBuffer) Accumulate(x, y int, c core.Vec3) {
	i := y*fb.width + x
	fb.pixels[i] = fb.pixels[i].Add(c)
}

// At returns the accumulated sum for pixel (x, y)
func (fb *FrameBuffer) At(x, y int) core.Vec3 {
	return fb.pixels[y*fb.width+x]
}

// Finalize tone maps every pixel and returns packed 8-bit RGB, row-major,
// top row first, of length width*height*3.
func (fb *FrameBuffer) Finalize(samplesPerPixel int) []byte {
	out := make([]byte, 0, len(fb.pixels)*3)
	for _, sum := range fb.pixels {
		c := ToneMap(sum, samplesPerPixel)
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

// Image tone maps the buffer into an RGBA image
func (fb *FrameBuffer) Image(samplesPerPixel int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetRGBA(x, y, ToneMap(fb.At(x, y), samplesPerPixel))
		}
	}
	return img
}

// ToneMap averages a sample sum, applies gamma 2 and quantizes to 8 bits
func ToneMap(sum core.Vec3, samplesPerPixel int) color.RGBA {
	c := sum.Divide(float64(samplesPerPixel)).Sqrt()
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

// quantize scales by 255.999, clamps to [0, 255] and truncates.
// NaN (from negative sums or zero sample counts) maps to 0.
func quantize(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(max(0, min(255, v*255.999)))
}
