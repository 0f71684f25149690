package material

import (
	"github.com/df07/go-path-tracer/pkg/core"
)

// Refractive represents a transparent material like glass. Each color channel
// has its own refractive index, which lets channels disperse differently.
type Refractive struct {
	surface
	Refractiveness  float64   // Fraction of light transmitted through the surface, [0,1]
	RefractiveIndex core.Vec3 // Per-channel index of refraction (e.g., 1.5 for glass)
	Underlying      Material  // Look of the non-transmitted fraction
}

// NewRefractive wraps a material into a refractive one. The wrapped color is
// copied at construction.
func NewRefractive(refractiveness float64, index core.Vec3, underlying Material) *Refractive {
	return &Refractive{
		surface:         newSurface(underlying.BaseColor()),
		Refractiveness:  max(0, min(1, refractiveness)),
		RefractiveIndex: index,
		Underlying:      underlying,
	}
}

// NewGlass creates a clear refractive material with one index for all channels
func NewGlass(index float64) *Refractive {
	return NewRefractive(1, core.Splat(index), NewDiffuseARGB(0xf000))
}
