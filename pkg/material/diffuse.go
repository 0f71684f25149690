package material

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
)

// Diffuse is a matte surface lit only by direct illumination
type Diffuse struct {
	surface
}

// NewDiffuse creates a diffuse material
func NewDiffuse(color core.Color) *Diffuse {
	return &Diffuse{surface: newSurface(color)}
}

// NewDiffuseARGB creates a diffuse material from a packed ARGB value
func NewDiffuseARGB(argb uint32) *Diffuse {
	return NewDiffuse(core.ColorFromARGB(argb))
}

// Specular is a glossy surface shaded with a Phong highlight
type Specular struct {
	surface
	Specularity float64 // Weight of the highlight against the diffuse term, [0,1]
	Shininess   float64 // Highlight exponent
}

// NewSpecular creates a specular material
func NewSpecular(color core.Color, specularity, shininess float64) *Specular {
	return &Specular{
		surface:     newSurface(color),
		Specularity: specularity,
		Shininess:   shininess,
	}
}

// Glow is an emissive surface. Lights always use a Glow material.
type Glow struct {
	surface
	Intensity float64 // Emission strength, non-negative and unbounded
}

// NewGlow creates an emissive material; negative intensities are clamped to zero
func NewGlow(color core.Color, intensity float64) *Glow {
	if intensity < 0 || math.IsNaN(intensity) {
		intensity = 0
	}
	return &Glow{surface: newSurface(color), Intensity: intensity}
}
