package material

// Reflective is a mirror-like surface. The fraction of light that is not
// mirrored is shaded with the wrapped material's color.
type Reflective struct {
	surface
	Reflectiveness float64  // 0.0 = no mirroring, 1.0 = perfect mirror
	Underlying     Material // Look of the surface where it does not mirror
}

// NewReflective wraps a material into a reflective one. The wrapped color is
// copied at construction.
func NewReflective(reflectiveness float64, underlying Material) *Reflective {
	// Clamp reflectiveness to valid range
	if reflectiveness > 1.0 {
		reflectiveness = 1.0
	}
	if reflectiveness < 0.0 {
		reflectiveness = 0.0
	}
	return &Reflective{
		surface:        newSurface(underlying.BaseColor()),
		Reflectiveness: reflectiveness,
		Underlying:     underlying,
	}
}

// PerfectMirror returns a fully reflective material over opaque black
func PerfectMirror() *Reflective {
	return NewReflective(1, NewDiffuseARGB(0xf000))
}
