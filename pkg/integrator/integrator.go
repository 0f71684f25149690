package integrator

import (
	"github.com/df07/go-path-tracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace returns the radiance carried back along ray. The result is not
	// gamma corrected and may exceed 1 in any channel.
	Trace(ray core.Ray, ctx *core.RenderContext) core.Vec3
}
