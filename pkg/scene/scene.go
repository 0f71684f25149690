package scene

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering. It is built once and
// only read afterwards.
type Scene struct {
	Objects  []geometry.Shape // Shapes rays can hit and that cast shadows
	Lights   []geometry.Light // Shapes queried for direct illumination
	Camera   CameraConfig
	Sampling SamplingConfig
}

// New splits shapes into objects and lights, preserving their order
func New(shapes []geometry.Shape, camera CameraConfig, sampling SamplingConfig) *Scene {
	s := &Scene{
		Objects:  make([]geometry.Shape, 0, len(shapes)),
		Lights:   make([]geometry.Light, 0),
		Camera:   camera,
		Sampling: sampling,
	}

	for _, shape := range shapes {
		if light, ok := shape.(geometry.Light); ok {
			s.Lights = append(s.Lights, light)
		} else {
			s.Objects = append(s.Objects, shape)
		}
	}

	return s
}

// ShapeCount returns the total number of shapes in the scene
func (s *Scene) ShapeCount() int {
	return len(s.Objects) + len(s.Lights)
}

// NearestHit returns the first object with the smallest hit distance along ray
func (s *Scene) NearestHit(ray core.Ray) (geometry.Shape, geometry.Intersection, bool) {
	var nearest geometry.Shape
	var nearestHit geometry.Intersection
	closest := math.Inf(1)

	for _, obj := range s.Objects {
		if hit, ok := obj.Intersect(ray); ok && hit.Distance < closest {
			nearest, nearestHit, closest = obj, hit, hit.Distance
		}
	}

	return nearest, nearestHit, nearest != nil
}

// Bounds returns the box enclosing every shape. Lights count with their
// position. Returns false for an empty scene.
func (s *Scene) Bounds() (core.AABB, bool) {
	var bounds core.AABB
	found := false

	add := func(box core.AABB) {
		if !found {
			bounds = box
			found = true
			return
		}
		bounds = bounds.Union(box)
	}

	for _, shape := range s.Objects {
		add(shapeBounds(shape))
	}
	for _, light := range s.Lights {
		add(shapeBounds(light))
	}

	return bounds, found
}

// shapeBounds returns the bounding box of a single shape
func shapeBounds(shape geometry.Shape) core.AABB {
	switch obj := shape.(type) {
	case *geometry.Triangle:
		return core.NewAABBFromPoints(obj.A, obj.B, obj.C)
	case *geometry.Plane:
		first, second := obj.Triangles()
		return shapeBounds(first).Union(shapeBounds(second))
	case *geometry.Sphere:
		r := core.Splat(obj.Radius)
		return core.AABB{Min: obj.Center.Subtract(r), Max: obj.Center.Add(r)}
	case *geometry.Volume:
		return obj.BoundingBox()
	case *geometry.PointLight:
		return core.NewAABBFromPoints(obj.Position)
	case *geometry.SpotLight:
		return core.NewAABBFromPoints(obj.Position)
	default:
		panic("scene: unsupported shape type")
	}
}
