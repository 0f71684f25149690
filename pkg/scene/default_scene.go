package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
)

// NewDefaultScene creates a showcase scene with one object per material kind,
// a floor, a back wall, a point light and a spot light
func NewDefaultScene(sampling SamplingConfig) *Scene {
	// Create materials
	floor := material.NewDiffuseARGB(0xffccccbb)
	wall := material.NewDiffuseARGB(0xff8899aa)
	red := material.NewDiffuseARGB(0xffcc3322)
	shiny := material.NewSpecular(core.ColorFromARGB(0xff2255cc), 0.6, 40)
	mirror := material.NewReflective(0.85, material.NewDiffuseARGB(0xff222222))
	glass := material.NewRefractive(0.9, core.NewVec3(1.50, 1.53, 1.56), material.NewDiffuseARGB(0xffeeffee))
	tinted := material.NewDiffuseARGB(0xaa33aa55)
	lamp := material.NewGlow(core.ColorFromARGB(0xffffeecc), 2)

	shapes := []geometry.Shape{
		// Floor and back wall
		geometry.NewPlane(
			core.NewVec3(-200, 0, -100),
			core.NewVec3(-200, 0, 200),
			core.NewVec3(200, 0, 200),
			core.NewVec3(200, 0, -100),
			floor,
		),
		geometry.NewPlane(
			core.NewVec3(-200, 0, -100),
			core.NewVec3(200, 0, -100),
			core.NewVec3(200, 200, -100),
			core.NewVec3(-200, 200, -100),
			wall,
		),

		// Spheres
		geometry.NewSphere(core.NewVec3(-70, 30, 0), 30, red),
		geometry.NewSphere(core.NewVec3(10, 35, -20), 35, mirror),
		geometry.NewSphere(core.NewVec3(75, 25, 40), 25, glass),
		geometry.NewSphere(core.NewVec3(-20, 15, 70), 15, shiny),
		geometry.NewSphere(core.NewVec3(40, 6, 90), 6, lamp),

		// Rotated box and a translucent pyramid face
		geometry.NewVolume(
			core.NewVec3(90, 20, -50),
			core.NewVec3(1, 0, 1), core.NewVec3(0, 1, 0), core.NewVec3(-1, 0, 1),
			20, 20, 20,
			tinted,
		),
		geometry.NewTriangle(
			core.NewVec3(-140, 0, 30),
			core.NewVec3(-100, 0, 60),
			core.NewVec3(-120, 50, 40),
			tinted,
		),

		// Lights
		geometry.NewPointLight(core.NewVec3(0, 250, 120), core.ColorFromARGB(0xffffffff), 60000, 1),
		geometry.NewSpotLight(
			core.NewVec3(-150, 200, 150),
			core.NewVec3(150, -200, -150),
			core.ColorFromARGB(0xffffddaa),
			50000, 1, 8,
		),
	}

	return New(shapes, DefaultCameraConfig(), sampling)
}
