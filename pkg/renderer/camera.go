package renderer

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// Camera is a pinhole camera that generates tent-filtered primary rays.
// The horizontal image axis is always world X, so the gaze must not be
// parallel to it.
type Camera struct {
	eye       core.Vec3
	gaze      core.Vec3 // Unit view direction
	cx, cy    core.Vec3 // Image plane axes scaled by the field of view
	distance  float64
	width     int
	height    int
	subpixels int
}

// NewCamera creates a camera for an image of the given size
func NewCamera(config scene.CameraConfig, width, height, subpixels int) *Camera {
	gaze := config.LookAt.Subtract(config.Eye).Normalize()
	cx := core.NewVec3(float64(width)*config.FOV/float64(height), 0, 0)
	cy := cx.Cross(gaze).Normalize().Multiply(config.FOV)

	return &Camera{
		eye:       config.Eye,
		gaze:      gaze,
		cx:        cx,
		cy:        cy,
		distance:  config.Distance,
		width:     width,
		height:    height,
		subpixels: subpixels,
	}
}

// tent maps u in [0,2) to [-1,1) with a triangular density peaking at 0
func tent(u float64) float64 {
	if u < 1 {
		return math.Sqrt(u) - 1
	}
	return 1 - math.Sqrt(2-u)
}

// GetRay generates a jittered ray through sub-cell (sx, sy) of pixel (x, y).
// Pixel row 0 is the bottom of the image.
func (c *Camera) GetRay(x, y, sx, sy int, ctx *core.RenderContext) core.Ray {
	n := float64(c.subpixels)
	// The tent spans at most half a pixel either side, so a single sub-cell
	// stays inside its pixel
	radius := 1 / max(n, 2)
	dx := (float64(sx)+0.5)/n + tent(2*ctx.Random.Float64())*radius
	dy := (float64(sy)+0.5)/n + tent(2*ctx.Random.Float64())*radius

	d := c.cx.Multiply((dx+float64(x))/float64(c.width) - 0.5).
		Add(c.cy.Multiply((dy+float64(y))/float64(c.height) - 0.5)).
		Add(c.gaze)

	// Rays start on the near plane in front of the eye
	return ctx.NewRay(c.eye.Add(d.Multiply(c.distance)), d.Normalize(), core.Splat(core.EtaAir), false, 0)
}

// CenterRay returns the uncounted ray through the center of pixel (x, y),
// with row 0 at the top of the image as displayed
func (c *Camera) CenterRay(x, y int) core.Ray {
	row := c.height - 1 - y
	d := c.cx.Multiply((0.5+float64(x))/float64(c.width) - 0.5).
		Add(c.cy.Multiply((0.5+float64(row))/float64(c.height) - 0.5)).
		Add(c.gaze)

	return core.NewRay(c.eye.Add(d.Multiply(c.distance)), d.Normalize())
}
