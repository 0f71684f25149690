package geometry

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// Volume is an oriented box made of six planes
type Volume struct {
	shape
	Center core.Vec3
	axes   [3]core.Vec3 // Unit left, up and back axes
	half   [3]float64   // Half extents along each axis
	faces  [6]*Plane
	bounds core.AABB
}

// NewVolume creates a box centered at center. The axes are normalized and the
// box extends halfLeft, halfUp and halfBack along them in both directions.
func NewVolume(center, left, up, back core.Vec3, halfLeft, halfUp, halfBack float64, mat material.Material) *Volume {
	l := left.Normalize().Multiply(halfLeft)
	u := up.Normalize().Multiply(halfUp)
	b := back.Normalize().Multiply(halfBack)

	// Corners named by left/right, bottom/up, front/back
	lbf := center.Subtract(l).Subtract(u).Subtract(b)
	lbb := center.Subtract(l).Subtract(u).Add(b)
	luf := center.Subtract(l).Add(u).Subtract(b)
	lub := center.Subtract(l).Add(u).Add(b)
	rbf := center.Add(l).Subtract(u).Subtract(b)
	rbb := center.Add(l).Subtract(u).Add(b)
	ruf := center.Add(l).Add(u).Subtract(b)
	rub := center.Add(l).Add(u).Add(b)

	return &Volume{
		shape:  shape{material: mat},
		Center: center,
		axes:   [3]core.Vec3{left.Normalize(), up.Normalize(), back.Normalize()},
		half:   [3]float64{halfLeft, halfUp, halfBack},
		faces: [6]*Plane{
			NewPlane(lbf, lbb, lub, luf, mat),
			NewPlane(lbf, rbf, rbb, lbb, mat),
			NewPlane(lbf, rbf, ruf, luf, mat),
			NewPlane(rbf, rbb, rub, ruf, mat),
			NewPlane(luf, ruf, rub, lub, mat),
			NewPlane(lbb, rbb, rub, lub, mat),
		},
		bounds: core.NewAABBFromPoints(lbf, lbb, luf, lub, rbf, rbb, ruf, rub),
	}
}

// NewCube creates an axis-aligned cube with the given side length
func NewCube(center core.Vec3, side float64, mat material.Material) *Volume {
	half := side / 2
	return NewVolume(center,
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1),
		half, half, half, mat)
}

// BoundingBox returns the world-space bounds of the volume
func (v *Volume) BoundingBox() core.AABB {
	return v.bounds
}

// Intersect returns the nearest face hit. Inside reports whether the ray
// origin lies within the box.
func (v *Volume) Intersect(ray core.Ray) (Intersection, bool) {
	// Quick reject against the bounding box
	if !v.bounds.Hit(ray, 0, math.Inf(1)) {
		return Intersection{}, false
	}

	closest := math.Inf(1)
	found := false
	for _, face := range v.faces {
		if hit, ok := face.Intersect(ray); ok && hit.Distance < closest {
			closest = hit.Distance
			found = true
		}
	}

	if !found {
		return Intersection{}, false
	}
	return Intersection{Distance: closest, Inside: v.Contains(ray.Origin)}, true
}

// Contains reports whether p lies strictly inside the box
func (v *Volume) Contains(p core.Vec3) bool {
	local := p.Subtract(v.Center)
	for i, axis := range v.axes {
		if math.Abs(local.Dot(axis)) >= v.half[i] {
			return false
		}
	}
	return true
}

// NormalAt returns the outward normal of the face closest to point, chosen as
// the axis with the largest coordinate relative to its half extent
func (v *Volume) NormalAt(point core.Vec3) core.Vec3 {
	local := point.Subtract(v.Center)

	best := 0
	bestCoord := 0.0
	bestAbs := -1.0
	for i, axis := range v.axes {
		coord := local.Dot(axis) / v.half[i]
		if math.Abs(coord) > bestAbs {
			best, bestCoord, bestAbs = i, coord, math.Abs(coord)
		}
	}

	if bestCoord < 0 {
		return v.axes[best].Negate()
	}
	return v.axes[best]
}
