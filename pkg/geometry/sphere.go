package geometry

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	shape
	Center  core.Vec3
	Radius  float64
	radius2 float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		shape:   shape{material: mat},
		Center:  center,
		Radius:  radius,
		radius2: radius * radius,
	}
}

// Intersect tests if a ray hits the sphere. When the ray starts inside the
// sphere the far root is returned and Inside is set.
func (s *Sphere) Intersect(ray core.Ray) (Intersection, bool) {
	// Vector from ray origin to sphere center
	l := s.Center.Subtract(ray.Origin)
	tca := l.Dot(ray.Direction)

	// Center lies behind the origin
	if tca < 0 {
		return Intersection{}, false
	}

	// Squared distance from the center to the ray
	d2 := l.Dot(l) - tca*tca
	if d2 > s.radius2 {
		return Intersection{}, false
	}

	thc := math.Sqrt(s.radius2 - d2)
	t0 := tca - thc
	t1 := tca + thc
	inside := false

	t := math.Min(t0, t1)
	if t < 0 {
		// Origin is inside the sphere, use the far root
		inside = true
		t = math.Max(t0, t1)
	}

	if t < 0 {
		return Intersection{}, false
	}

	return Intersection{Distance: t, Inside: inside}, true
}

// NormalAt returns the outward normal at point
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}
