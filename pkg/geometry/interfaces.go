package geometry

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// Intersection describes where a ray hits a shape
type Intersection struct {
	Distance float64 // Parameter t along the ray
	Inside   bool    // Whether the ray origin lies inside the shape
}

// Shape is a geometric primitive that can be hit by rays. The set of shapes is
// closed: Triangle, Plane, Sphere, Volume, PointLight and SpotLight.
type Shape interface {
	// Intersect returns the hit of ray with the shape, if any
	Intersect(ray core.Ray) (Intersection, bool)

	// NormalAt returns the unit surface normal at a point on the shape
	NormalAt(point core.Vec3) core.Vec3

	// Material returns the material the shape is made of
	Material() material.Material

	sealed()
}

// Light is a shape that contributes direct illumination
type Light interface {
	Shape

	// GenerateShadowRay returns the unit direction from point toward the light
	// and the distance to it
	GenerateShadowRay(point core.Vec3) (direction core.Vec3, distance float64)

	// GetIntensity returns the scalar intensity arriving at an object lying in
	// directionToObject (unit, pointing away from the light) at distance
	GetIntensity(directionToObject core.Vec3, distance float64) float64

	// Glow returns the light's emissive material
	Glow() *material.Glow
}

// shape holds the material shared by every primitive
type shape struct {
	material material.Material
}

func (s shape) Material() material.Material { return s.material }
func (shape) sealed()                       {}
