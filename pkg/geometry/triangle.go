package geometry

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// Triangle represents a single triangle defined by three corners
type Triangle struct {
	shape
	A, B, C core.Vec3 // The three corners
	normal  core.Vec3 // Cached face normal
}

// NewTriangle creates a new triangle from three corners. The face normal is
// (B-A) x (C-A), normalized.
func NewTriangle(a, b, c core.Vec3, mat material.Material) *Triangle {
	return &Triangle{
		shape:  shape{material: mat},
		A:      a,
		B:      b,
		C:      c,
		normal: b.Subtract(a).Cross(c.Subtract(a)).Normalize(),
	}
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm.
// Triangles have no interior, so Inside is always false.
func (t *Triangle) Intersect(ray core.Ray) (Intersection, bool) {
	// Calculate two edge vectors
	edge1 := t.B.Subtract(t.A)
	edge2 := t.C.Subtract(t.A)

	// Calculate determinant
	pvec := ray.Direction.Cross(edge2)
	det := edge1.Dot(pvec)

	// If determinant is near zero, ray lies in plane of triangle
	if math.Abs(det) <= core.Epsilon {
		return Intersection{}, false
	}

	invDet := 1.0 / det
	tvec := ray.Origin.Subtract(t.A)
	u := tvec.Dot(pvec) * invDet

	// Check if intersection is outside triangle
	if u < 0.0 || u > 1.0 {
		return Intersection{}, false
	}

	qvec := tvec.Cross(edge1)
	v := ray.Direction.Dot(qvec) * invDet

	if v < 0.0 || u+v > 1.0 {
		return Intersection{}, false
	}

	distance := edge2.Dot(qvec) * invDet

	// Hits behind the ray origin do not count
	if distance <= 0 {
		return Intersection{}, false
	}

	return Intersection{Distance: distance, Inside: false}, true
}

// NormalAt returns the triangle's face normal
func (t *Triangle) NormalAt(core.Vec3) core.Vec3 {
	return t.normal
}

// Barycentric returns the barycentric coordinates (u, v, w) of p with respect to
// corners B, C and A, so that p = A*w + B*u + C*v
func (t *Triangle) Barycentric(p core.Vec3) (u, v, w float64) {
	v0 := t.B.Subtract(t.A)
	v1 := t.C.Subtract(t.A)
	v2 := p.Subtract(t.A)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01

	u = (d11*d20 - d01*d21) / denom
	v = (d00*d21 - d01*d20) / denom
	w = 1 - u - v
	return u, v, w
}
