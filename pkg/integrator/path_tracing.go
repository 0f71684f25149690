package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// exitReason records why the bounce loop stopped
type exitReason int

const (
	exitGuard      exitReason = iota // Depth, intensity or direction guard failed
	exitMiss                         // Ray left the scene
	exitTerminated                   // Material ended the path
	exitVisualized                   // A debug mode produced the pixel value
)

// Tracer is the iterative light-transport kernel
type Tracer struct {
	scene        *scene.Scene
	config       scene.SamplingConfig
	viewDistance float64 // Distance from the eye to the look-at point, used by depth mode
}

// NewTracer creates a tracer for the given scene using its sampling config
func NewTracer(s *scene.Scene) *Tracer {
	return &Tracer{
		scene:        s,
		config:       s.Sampling,
		viewDistance: s.Camera.Eye.Subtract(s.Camera.LookAt).Length(),
	}
}

// Trace follows ray through the scene and returns the accumulated radiance.
// Every bounce adds the surface color weighted by the running intensity; the
// intensity is then scaled by the material's carry-forward factor.
func (t *Tracer) Trace(ray core.Ray, ctx *core.RenderContext) core.Vec3 {
	result := core.Vec3{}
	intensity := 1.0
	reason := exitGuard
	var visualized core.Vec3

	for ray.Depth < t.config.MaxDepth && intensity > core.Epsilon && !ray.Direction.IsZero() {
		shape, hit, ok := t.scene.NearestHit(ray)
		if !ok {
			reason = exitMiss
			break
		}

		if t.config.Mode == scene.ModeDepth {
			visualized = core.Splat(1 - hit.Distance/t.viewDistance)
			reason = exitVisualized
			break
		}

		pos := ray.At(hit.Distance)
		normal := shape.NormalAt(pos)

		if t.config.Mode == scene.ModeNormal {
			visualized = normal.Multiply(0.5).AddScalar(0.5)
			reason = exitVisualized
			break
		}
		if t.config.Mode == scene.ModeNormalAbs {
			visualized = normal.Abs()
			reason = exitVisualized
			break
		}

		mat := shape.Material()
		var color core.Vec3
		dir := ray.Direction
		luminance := 0.0
		next := true

		switch m := mat.(type) {
		case *material.Diffuse:
			color = t.lights(pos, ctx).MultiplyVec(m.Color())
			next = false
			if t.config.DiffuseBounces {
				dir, luminance, next = t.scatterDiffuse(dir, normal, ctx)
			}
		case *material.Glow:
			color = m.Color()
			intensity *= m.Intensity
			next = false
		case *material.Reflective:
			color = m.Color().Multiply(1 - m.Reflectiveness)
			luminance = m.Reflectiveness
			dir = dir.Reflect(normal)
		case *material.Refractive:
			color = m.Color().Multiply(1 - m.Refractiveness).Add(t.refract(ray, hit, pos, normal, m, ctx))
			luminance = m.Refractiveness
			next = false
		case *material.Specular:
			color = t.specularLights(pos, dir, normal, m, ctx)
			next = false
		default:
			panic(fmt.Sprintf("integrator: unhandled material %T", mat))
		}

		// Blend with whatever lies behind a translucent surface
		if opacity := mat.Opacity(); opacity < 1-core.Epsilon {
			behind := ctx.NewRay(pos.Add(ray.Direction.Multiply(core.Epsilon)), ray.Direction, ray.Eta, ray.Inside, ray.Depth+1)
			color = color.Multiply(opacity).Add(t.Trace(behind, ctx).Multiply(1 - opacity))
		}

		result = result.Add(color.Sanitize().Multiply(intensity))
		intensity *= luminance
		dir = dir.Normalize()
		ray = ctx.NewRay(pos.Add(dir.Multiply(core.Epsilon)), dir, ray.Eta, ray.Inside, ray.Depth+1)

		if !next {
			reason = exitTerminated
			break
		}
	}

	if reason == exitVisualized {
		return visualized
	}

	switch t.config.Mode {
	case scene.ModeRayDirection:
		return ray.Direction.Multiply(0.5).AddScalar(0.5)
	case scene.ModeRayDepth:
		return core.Splat(float64(ray.Depth) / float64(t.config.MaxDepth))
	}

	return result
}

// occluded reports whether any object lies strictly between the shadow ray
// origin and the light
func (t *Tracer) occluded(ray core.Ray, distance float64) bool {
	for _, obj := range t.scene.Objects {
		if hit, ok := obj.Intersect(ray); ok && hit.Distance > 0 && hit.Distance < distance {
			return true
		}
	}
	return false
}

// lights returns the ambient term plus the unoccluded contribution of every light
func (t *Tracer) lights(pos core.Vec3, ctx *core.RenderContext) core.Vec3 {
	total := t.config.Ambient

	for _, light := range t.scene.Lights {
		ldir, dist := light.GenerateShadowRay(pos)
		shadow := ctx.NewRay(pos.Add(ldir.Multiply(core.Epsilon)), ldir, core.Vec3{}, false, 0)
		if t.occluded(shadow, dist) {
			continue
		}

		total = total.Add(light.Glow().PremultipliedColor().Multiply(light.GetIntensity(ldir.Negate(), dist)))
	}

	return total
}

// specularLights evaluates a Phong surface: the ambient term, a diffuse part
// weighted by 1-specularity and a white highlight weighted by specularity
func (t *Tracer) specularLights(pos, dir, normal core.Vec3, m *material.Specular, ctx *core.RenderContext) core.Vec3 {
	color := m.Color()
	total := t.config.Ambient.MultiplyVec(color)
	mirrored := dir.Reflect(normal).Normalize()

	for _, light := range t.scene.Lights {
		ldir, dist := light.GenerateShadowRay(pos)
		shadow := ctx.NewRay(pos.Add(ldir.Multiply(core.Epsilon)), ldir, core.Vec3{}, false, 0)
		if t.occluded(shadow, dist) {
			continue
		}

		highlight := 0.0
		if cosAlpha := ldir.Dot(mirrored); cosAlpha > 0 {
			highlight = math.Pow(cosAlpha, m.Shininess)
		}

		surface := color.Multiply(1 - m.Specularity).AddScalar(m.Specularity * highlight)
		weight := light.Glow().PremultipliedColor().Multiply(light.GetIntensity(ldir.Negate(), dist))
		total = total.Add(weight.MultiplyVec(surface))
	}

	return total
}

// scatterDiffuse continues a path off a diffuse surface with probability 1/8
// in a uniformly random direction. Directions below the surface end the path.
func (t *Tracer) scatterDiffuse(dir, normal core.Vec3, ctx *core.RenderContext) (core.Vec3, float64, bool) {
	if ctx.Random.Byte() >= 32 {
		return dir, 0, false
	}

	// Orient the normal toward the side the ray came from
	if dir.Dot(normal) > 0 {
		normal = normal.Negate()
	}

	next := ctx.Random.UnitVector()
	cosTheta := next.Dot(normal)
	if cosTheta < 0 {
		return dir, 0, false
	}

	return next, math.Pow(cosTheta, 5), true
}

// refract traces the transmitted light for the first two color channels. Each
// channel bends with its own refractive index; total internal reflection
// falls back to a mirror bounce on the incoming side.
func (t *Tracer) refract(ray core.Ray, hit geometry.Intersection, pos, normal core.Vec3, m *material.Refractive, ctx *core.RenderContext) core.Vec3 {
	exiting := ray.Inside || hit.Inside

	// Refraction needs the normal facing against the incoming ray
	facing := normal
	if ray.Direction.Dot(normal) > 0 {
		facing = normal.Negate()
	}

	eta := ray.Eta
	newEta := eta.MultiplyVec(m.RefractiveIndex)
	if exiting {
		newEta = eta.DivideVec(m.RefractiveIndex)
	}

	transmitted := core.Vec3{}
	var previous core.Ray
	var previousResult core.Vec3

	for i := 0; i < 2; i++ {
		var next core.Ray
		ratio := eta.Component(i) / newEta.Component(i)

		if dir, ok := ray.Direction.Refract(facing, ratio); ok {
			dir = dir.Normalize()
			next = ctx.NewRay(pos.Add(dir.Multiply(core.Epsilon)), dir, newEta, !exiting, ray.Depth+1)
		} else {
			dir := ray.Direction.Reflect(facing).Normalize()
			next = ctx.NewRay(pos.Add(dir.Multiply(core.Epsilon)), dir, eta, ray.Inside, ray.Depth+1)
		}

		// Channels with the same index follow the same path
		var traced core.Vec3
		if i > 0 && next == previous {
			traced = previousResult
		} else {
			traced = t.Trace(next, ctx)
		}
		previous, previousResult = next, traced

		transmitted = transmitted.WithComponent(i, traced.Component(i)*m.Refractiveness)
	}

	return transmitted
}
