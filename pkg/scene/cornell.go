package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box with a mirror sphere, a glass
// sphere and a cube lit by a point light under the ceiling
func NewCornellScene(sampling SamplingConfig) *Scene {
	camera := CameraConfig{
		Eye:      core.NewVec3(50, 50, 260), // Position camera outside the box looking in
		LookAt:   core.NewVec3(50, 50, 0),   // Look at the center of the back wall
		Distance: 140,
		FOV:      0.5135,
	}

	// Create materials
	white := material.NewDiffuseARGB(0xffbbbbbb)
	red := material.NewDiffuseARGB(0xffa61111)
	green := material.NewDiffuseARGB(0xff1f7326)
	mirror := material.PerfectMirror()
	glass := material.NewGlass(1.5)
	shiny := material.NewSpecular(core.ColorFromARGB(0xffddaa33), 0.4, 25)

	// Cornell box dimensions
	size := 100.0
	p := func(x, y, z float64) core.Vec3 { return core.NewVec3(x, y, z) }

	shapes := []geometry.Shape{
		// Floor (white) - XZ plane at y=0
		geometry.NewPlane(p(0, 0, 0), p(0, 0, size), p(size, 0, size), p(size, 0, 0), white),
		// Ceiling (white) - XZ plane at y=size
		geometry.NewPlane(p(0, size, 0), p(size, size, 0), p(size, size, size), p(0, size, size), white),
		// Back wall (white) - XY plane at z=0
		geometry.NewPlane(p(0, 0, 0), p(size, 0, 0), p(size, size, 0), p(0, size, 0), white),
		// Left wall (red) - YZ plane at x=0
		geometry.NewPlane(p(0, 0, 0), p(0, size, 0), p(0, size, size), p(0, 0, size), red),
		// Right wall (green) - YZ plane at x=size
		geometry.NewPlane(p(size, 0, 0), p(size, 0, size), p(size, size, size), p(size, size, 0), green),

		geometry.NewSphere(p(28, 18, 35), 18, mirror),
		geometry.NewSphere(p(72, 16, 65), 16, glass),
		geometry.NewCube(p(70, 12, 25), 24, shiny),

		geometry.NewPointLight(p(50, 92, 50), core.ColorFromARGB(0xffffffff), 3500, 1),
	}

	return New(shapes, camera, sampling)
}
