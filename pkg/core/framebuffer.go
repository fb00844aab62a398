package core

import (
	"fmt"
	"image"
	"image/color"
)

// FrameBuffer is a width x height grid of RGB byte triples.
// Storage is row-major with row 0 at the top of the image.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // len == Width*Height*3, channel order R,G,B
}

// NewFrameBuffer allocates a black frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

func (fb *FrameBuffer) offset(x, y int) int {
	return (y*fb.Width + x) * 3
}

// At returns the RGB triple at column x, row y
func (fb *FrameBuffer) At(x, y int) (r, g, b uint8) {
	i := fb.offset(x, y)
	return fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]
}

// Set writes the RGB triple at column x, row y
func (fb *FrameBuffer) Set(x, y int, r, g, b uint8) {
	i := fb.offset(x, y)
	fb.Pix[i] = r
	fb.Pix[i+1] = g
	fb.Pix[i+2] = b
}

// Row returns the bytes of row y
func (fb *FrameBuffer) Row(y int) []uint8 {
	start := fb.offset(0, y)
	return fb.Pix[start : start+fb.Width*3]
}

// ToImage converts the frame buffer to an opaque RGBA image
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// FrameBufferFromImage copies any image into a frame buffer. Alpha is dropped
// without premultiplying, so translucent pixels keep their color.
func FrameBufferFromImage(img image.Image) *FrameBuffer {
	bounds := img.Bounds()
	fb := NewFrameBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			fb.Set(x, y, c.R, c.G, c.B)
		}
	}
	return fb
}

// Validate checks that the pixel slice matches the dimensions
func (fb *FrameBuffer) Validate() error {
	if fb.Width <= 0 || fb.Height <= 0 {
		return fmt.Errorf("invalid frame buffer size %dx%d", fb.Width, fb.Height)
	}
	if want := fb.Width * fb.Height * 3; len(fb.Pix) != want {
		return fmt.Errorf("pixel buffer length mismatch: got %d, expected %d", len(fb.Pix), want)
	}
	return nil
}

// QuantizeColor clamps each channel to [0,1] and truncates it to a byte
func QuantizeColor(c Vec3) (r, g, b uint8) {
	return uint8(255 * Clamp(c.X)), uint8(255 * Clamp(c.Y)), uint8(255 * Clamp(c.Z))
}
