package renderer

import (
	"image"
	"image/color"
	"sync/atomic"
)

// Framebuffer holds the published 8-bit image. Each pixel is a single packed
// word, so concurrent readers never observe a partially written pixel.
// Index 0 is the top-left pixel, rows are stored top to bottom.
type Framebuffer struct {
	width, height int
	pixels        []atomic.Uint32
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]atomic.Uint32, width*height),
	}
}

// Width returns the image width in pixels
func (f *Framebuffer) Width() int { return f.width }

// Height returns the image height in pixels
func (f *Framebuffer) Height() int { return f.height }

// Set publishes the color of the pixel at index
func (f *Framebuffer) Set(index int, r, g, b uint8) {
	f.pixels[index].Store(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// At returns the color of pixel (x, y), where y=0 is the top row
func (f *Framebuffer) At(x, y int) (r, g, b uint8) {
	return unpack(f.pixels[y*f.width+x].Load())
}

// RGB returns the image as dense row-major 8-bit RGB triples
func (f *Framebuffer) RGB() []byte {
	out := make([]byte, 0, len(f.pixels)*3)
	for i := range f.pixels {
		r, g, b := unpack(f.pixels[i].Load())
		out = append(out, r, g, b)
	}
	return out
}

// Snapshot copies the current contents into an opaque RGBA image
func (f *Framebuffer) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for i := range f.pixels {
		r, g, b := unpack(f.pixels[i].Load())
		img.SetRGBA(i%f.width, i/f.width, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return img
}

func unpack(v uint32) (r, g, b uint8) {
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}
