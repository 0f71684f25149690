package geometry

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// PointLight is an omnidirectional light with inverse-square falloff. It is
// never hit by rays.
type PointLight struct {
	shape
	Position core.Vec3 // Light position in world space
	Falloff  float64   // Divisor applied on top of the squared distance
	glow     *material.Glow
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, color core.Color, intensity, falloff float64) *PointLight {
	glow := material.NewGlow(color, intensity)
	return &PointLight{
		shape:    shape{material: glow},
		Position: position,
		Falloff:  falloff,
		glow:     glow,
	}
}

// GenerateShadowRay returns the unit direction from point to the light and its distance
func (pl *PointLight) GenerateShadowRay(point core.Vec3) (core.Vec3, float64) {
	delta := pl.Position.Subtract(point)
	return delta.Normalize(), delta.Length()
}

// GetIntensity returns intensity / (distance² · falloff)
func (pl *PointLight) GetIntensity(_ core.Vec3, distance float64) float64 {
	return pl.glow.Intensity / (distance * distance * pl.Falloff)
}

// Glow returns the light's emissive material
func (pl *PointLight) Glow() *material.Glow {
	return pl.glow
}

// Intersect always misses
func (pl *PointLight) Intersect(core.Ray) (Intersection, bool) {
	return Intersection{}, false
}

// NormalAt returns the zero vector
func (pl *PointLight) NormalAt(core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// SpotLight is a point light narrowed to a cone around Direction
type SpotLight struct {
	PointLight
	Direction core.Vec3 // Normalized aim direction
	Sharpness float64   // Cosine exponent of the cone
}

// NewSpotLight creates a new spot light. The direction is normalized.
func NewSpotLight(position, direction core.Vec3, color core.Color, intensity, falloff, sharpness float64) *SpotLight {
	return &SpotLight{
		PointLight: *NewPointLight(position, color, intensity, falloff),
		Direction:  direction.Normalize(),
		Sharpness:  sharpness,
	}
}

// GetIntensity scales the point light intensity by cos^sharpness of the angle
// between the aim direction and directionToObject. Objects behind the light get nothing.
func (sl *SpotLight) GetIntensity(directionToObject core.Vec3, distance float64) float64 {
	dot := sl.Direction.Dot(directionToObject)
	if dot <= 0 {
		return 0
	}
	return math.Pow(dot, sl.Sharpness) * sl.PointLight.GetIntensity(directionToObject, distance)
}
