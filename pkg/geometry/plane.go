package geometry

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// Plane is a planar quad made of two triangles sharing the diagonal b-d
type Plane struct {
	shape
	first, second *Triangle
}

// NewPlane creates a quad from four coplanar corners given in winding order
func NewPlane(a, b, c, d core.Vec3, mat material.Material) *Plane {
	return &Plane{
		shape:  shape{material: mat},
		first:  NewTriangle(a, b, d, mat),
		second: NewTriangle(b, c, d, mat),
	}
}

// Triangles returns the two triangles the quad is made of
func (p *Plane) Triangles() (*Triangle, *Triangle) {
	return p.first, p.second
}

// Intersect returns the hit of whichever triangle is hit first in order.
// The triangles do not overlap, so at most one reports a hit.
func (p *Plane) Intersect(ray core.Ray) (Intersection, bool) {
	if hit, ok := p.first.Intersect(ray); ok {
		return hit, true
	}
	return p.second.Intersect(ray)
}

// NormalAt returns the normalized sum of both triangle normals. Both triangles
// are coplanar, so this equals either normal.
func (p *Plane) NormalAt(point core.Vec3) core.Vec3 {
	return p.first.NormalAt(point).Add(p.second.NormalAt(point)).Normalize()
}
