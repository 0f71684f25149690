package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

func floorPlane() *Plane {
	return NewPlane(
		core.NewVec3(-1, 0, -1),
		core.NewVec3(1, 0, -1),
		core.NewVec3(1, 0, 1),
		core.NewVec3(-1, 0, 1),
		testMaterial(),
	)
}

func TestPlane_Intersect(t *testing.T) {
	plane := floorPlane()

	hit, ok := plane.Intersect(core.NewRay(core.NewVec3(0.5, 1, 0.3), core.NewVec3(0, -1, 0)))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.Distance-1) > tolerance {
		t.Errorf("Expected t=1, got %f", hit.Distance)
	}

	if _, ok := plane.Intersect(core.NewRay(core.NewVec3(3, 1, 0), core.NewVec3(0, -1, 0))); ok {
		t.Error("Expected miss outside the quad")
	}
}

func TestPlane_Normal(t *testing.T) {
	plane := floorPlane()
	first, second := plane.Triangles()

	n := plane.NormalAt(core.NewVec3(0, 0, 0))
	if !vecNear(n, core.NewVec3(0, -1, 0), tolerance) {
		t.Errorf("Expected (0,-1,0), got %v", n)
	}
	if !vecNear(n, first.NormalAt(core.Vec3{}), tolerance) || !vecNear(n, second.NormalAt(core.Vec3{}), tolerance) {
		t.Error("Expected plane normal to equal both triangle normals")
	}
}

func TestPlane_MatchesItsTriangles(t *testing.T) {
	plane := floorPlane()
	first, second := plane.Triangles()

	for i := -6; i <= 6; i++ {
		for j := -6; j <= 6; j++ {
			origin := core.NewVec3(float64(i)*0.23, 2, float64(j)*0.19)
			ray := core.NewRay(origin, core.NewVec3(0.1, -1, 0.05).Normalize())

			planeHit, planeOk := plane.Intersect(ray)
			firstHit, firstOk := first.Intersect(ray)
			secondHit, secondOk := second.Intersect(ray)

			if planeOk != (firstOk || secondOk) {
				t.Errorf("Ray from %v: plane hit=%v, triangles hit=%v/%v", origin, planeOk, firstOk, secondOk)
				continue
			}
			if !planeOk {
				continue
			}

			expected := firstHit.Distance
			if !firstOk {
				expected = secondHit.Distance
			}
			if math.Abs(planeHit.Distance-expected) > tolerance {
				t.Errorf("Ray from %v: expected t=%f, got %f", origin, expected, planeHit.Distance)
			}
		}
	}
}
