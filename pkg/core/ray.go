package core

import "fmt"

// EtaAir is the refractive index rays start in
const EtaAir = 1.0

// Ray is an immutable ray segment. Eta holds the per-channel refractive index of
// the medium the ray currently travels through and Inside reports whether it is
// inside a refractive volume.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Eta       Vec3
	Inside    bool
	Depth     int
}

// NewRay creates a depth-0 ray in air. It is not counted by any RenderContext;
// the renderer creates rays through RenderContext.NewRay instead.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Eta: Splat(EtaAir)}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

func (r Ray) String() string {
	return fmt.Sprintf("o: %v d: %v depth: %d", r.Origin, r.Direction, r.Depth)
}
