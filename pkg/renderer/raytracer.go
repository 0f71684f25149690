package renderer

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/integrator"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// Raytracer samples pixels, accumulates them and publishes the tone-mapped
// result to a framebuffer
type Raytracer struct {
	camera     *Camera
	integrator integrator.Integrator
	config     scene.SamplingConfig
	pixels     []PixelStats // Indexed like the framebuffer
	frame      *Framebuffer
}

// NewRaytracer creates a raytracer for the scene's camera and sampling config
func NewRaytracer(s *scene.Scene, integratorInst integrator.Integrator) *Raytracer {
	config := s.Sampling
	return &Raytracer{
		camera:     NewCamera(s.Camera, config.Width, config.Height, config.Subpixels),
		integrator: integratorInst,
		config:     config,
		pixels:     make([]PixelStats, config.Width*config.Height),
		frame:      NewFramebuffer(config.Width, config.Height),
	}
}

// SamplePixel returns the clamped radiance of pixel (x, y) averaged over the
// sub-pixel grid. Row 0 is the bottom of the image.
func (rt *Raytracer) SamplePixel(x, y int, ctx *core.RenderContext) core.Vec3 {
	n := rt.config.Subpixels
	sum := core.Vec3{}

	for si := 0; si < n*n; si++ {
		ray := rt.camera.GetRay(x, y, si%n, si/n, ctx)
		sum = sum.Add(rt.integrator.Trace(ray, ctx))
	}

	return sum.Multiply(1 / float64(n*n)).Sanitize().Clamp(0, 1)
}

// RenderPixel samples the pixel with visit index i, adds the sample to its
// accumulator and publishes the new average. Visit indices count rows from the
// bottom; storage is flipped so row 0 is the top.
func (rt *Raytracer) RenderPixel(i int, ctx *core.RenderContext) {
	w, h := rt.config.Width, rt.config.Height
	x, y := i%w, i/w

	color := rt.SamplePixel(x, y, ctx)
	index := (h-1-y)*w + x

	rt.pixels[index].AddSample(color)
	rt.publish(index)
}

// PublishAll writes every pixel's current average to the framebuffer
func (rt *Raytracer) PublishAll() {
	for i := range rt.pixels {
		rt.publish(i)
	}
}

// publish tone-maps the average of pixel index into the framebuffer
func (rt *Raytracer) publish(index int) {
	r, g, b := rt.vec3ToColor(rt.pixels[index].GetColor())
	rt.frame.Set(index, r, g, b)
}

// vec3ToColor converts a Vec3 color to 8-bit channels with gamma correction and clamping
func (rt *Raytracer) vec3ToColor(colorVec core.Vec3) (r, g, b uint8) {
	c := colorVec.Sanitize().GammaCorrect(rt.config.Gamma).Clamp(0, 1)
	return uint8(255 * c.X), uint8(255 * c.Y), uint8(255 * c.Z)
}

// Framebuffer returns the buffer the raytracer publishes to
func (rt *Raytracer) Framebuffer() *Framebuffer {
	return rt.frame
}

// PixelStats returns the accumulator of the pixel at framebuffer index
func (rt *Raytracer) PixelStats(index int) PixelStats {
	return rt.pixels[index]
}

// collectStats gathers sample statistics over every pixel
func (rt *Raytracer) collectStats() RenderStats {
	stats := RenderStats{
		TotalPixels: len(rt.pixels),
		MinSamples:  math.MaxInt,
	}

	for i := range rt.pixels {
		count := rt.pixels[i].SampleCount
		stats.TotalSamples += count
		stats.MinSamples = min(stats.MinSamples, count)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	} else {
		stats.MinSamples = 0
	}

	return stats
}
