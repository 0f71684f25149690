package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

func TestRaytracer_VisitIndexFlipsRows(t *testing.T) {
	s := emptyScene(testSampling(2, 3))
	rt := NewRaytracer(s, &constantIntegrator{color: core.Splat(1)})
	ctx := core.NewRenderContext(1)

	// Visit index 0 is the bottom-left pixel, stored in the last row
	rt.RenderPixel(0, ctx)

	if got := rt.PixelStats(4).SampleCount; got != 1 {
		t.Errorf("Expected bottom-left storage slot to hold 1 sample, got %d", got)
	}
	if r, g, b := rt.Framebuffer().At(0, 2); r != 255 || g != 255 || b != 255 {
		t.Errorf("Bottom-left pixel should be published white, got (%d,%d,%d)", r, g, b)
	}
	if r, _, _ := rt.Framebuffer().At(0, 0); r != 0 {
		t.Errorf("Top-left pixel should still be black, got %d", r)
	}

	// Visit index 5 is the top-right pixel, stored at index 1
	rt.RenderPixel(5, ctx)
	if got := rt.PixelStats(1).SampleCount; got != 1 {
		t.Errorf("Expected top-right storage slot to hold 1 sample, got %d", got)
	}
}

func TestRaytracer_SamplePixelAveragesSubpixels(t *testing.T) {
	sampling := testSampling(1, 1)
	sampling.Subpixels = 3
	integ := &constantIntegrator{color: core.NewVec3(0.2, 4, -1)}
	rt := NewRaytracer(emptyScene(sampling), integ)
	ctx := core.NewRenderContext(1)

	got := rt.SamplePixel(0, 0, ctx)

	if integ.calls.Load() != 9 {
		t.Errorf("Expected 9 sub-pixel traces, got %d", integ.calls.Load())
	}
	if ctx.Rays() != 9 {
		t.Errorf("Expected 9 camera rays, got %d", ctx.Rays())
	}
	// Channels are clamped to [0,1]
	want := core.NewVec3(0.2, 1, 0)
	if got.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRaytracer_Vec3ToColor(t *testing.T) {
	rt := NewRaytracer(emptyScene(testSampling(1, 1)), &constantIntegrator{})

	tests := []struct {
		name  string
		input core.Vec3
		want  [3]uint8
	}{
		{"black", core.Splat(0), [3]uint8{0, 0, 0}},
		{"white", core.Splat(1), [3]uint8{255, 255, 255}},
		{"over-exposed", core.Splat(3), [3]uint8{255, 255, 255}},
		{"negative", core.Splat(-1), [3]uint8{0, 0, 0}},
		{"not a number", core.NewVec3(math.NaN(), math.Inf(1), 0.5), [3]uint8{0, 255, uint8(255 * math.Pow(0.5, 1/2.2))}},
		{"gamma", core.NewVec3(0.25, 0, 1), [3]uint8{uint8(255 * math.Pow(0.25, 1/2.2)), 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := rt.vec3ToColor(tt.input)
			if got := [3]uint8{r, g, b}; got != tt.want {
				t.Errorf("vec3ToColor(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
