package material

import (
	"github.com/df07/go-path-tracer/pkg/core"
)

// Material describes how a surface interacts with light. The set of
// implementations is closed (Diffuse, Specular, Glow, Reflective, Refractive):
// the integrator dispatches on the concrete type and treats anything else as an
// invariant violation.
type Material interface {
	// BaseColor returns the color the material was built from, including opacity
	BaseColor() core.Color

	// Color returns the RGB channels of the base color
	Color() core.Vec3

	// Opacity returns the base color's alpha clamped to [0,1]
	Opacity() float64

	// PremultipliedColor returns Color scaled by Opacity
	PremultipliedColor() core.Vec3

	sealed()
}

// surface holds the color state shared by every material
type surface struct {
	color core.Color
}

func newSurface(color core.Color) surface {
	return surface{color: color}
}

func (s surface) BaseColor() core.Color         { return s.color }
func (s surface) Color() core.Vec3              { return s.color.RGB() }
func (s surface) Opacity() float64              { return s.color.Opacity() }
func (s surface) PremultipliedColor() core.Vec3 { return s.color.Premultiplied() }
func (surface) sealed()                         {}
