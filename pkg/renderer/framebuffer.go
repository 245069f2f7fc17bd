package renderer

import (
	"image"
	"image/color"

	"golang.org/x/image/math/f32"

	"github.com/df07/go-pathtracer/pkg/core"
)

// FrameBuffer holds display-ready pixel colors: gamma corrected and clamped
// to [0, 1]. Row 0 is the top image row.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []f32.Vec3
}

// NewFrameBuffer allocates a black frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]f32.Vec3, width*height),
	}
}

// At returns the stored color of pixel (x, y)
func (fb *FrameBuffer) At(x, y int) f32.Vec3 {
	return fb.Pix[y*fb.Width+x]
}

// Set stores a display color for pixel (x, y)
func (fb *FrameBuffer) Set(x, y int, c core.Vec3) {
	fb.Pix[y*fb.Width+x] = f32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
}

// RGB8 quantizes pixel (x, y) to 8 bits per channel
func (fb *FrameBuffer) RGB8(x, y int) (r, g, b uint8) {
	p := fb.At(x, y)
	return quantize(p[0]), quantize(p[1]), quantize(p[2])
}

// ToRGBA converts the frame buffer to an opaque image
func (fb *FrameBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.RGB8(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// quantize maps [0, 1] to [0, 255] the way 255.99·c truncation does
func quantize(c float32) uint8 {
	v := 255.99 * float64(c)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
