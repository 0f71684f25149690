package core

// RenderContext carries the mutable per-worker state of a render: the random
// source and the number of rays constructed so far. A context must only be used
// by one goroutine at a time; the renderer reduces the counters of all its
// workers after every pass.
type RenderContext struct {
	Random *XorShift
	rays   int64
}

// NewRenderContext creates a context with its own random stream
func NewRenderContext(seed uint64) *RenderContext {
	return &RenderContext{Random: NewXorShift(seed)}
}

// NewRay constructs a ray and counts it
func (c *RenderContext) NewRay(origin, direction, eta Vec3, inside bool, depth int) Ray {
	c.rays++
	return Ray{
		Origin:    origin,
		Direction: direction,
		Eta:       eta,
		Inside:    inside,
		Depth:     depth,
	}
}

// Rays returns the number of rays constructed through this context
func (c *RenderContext) Rays() int64 {
	return c.rays
}

// TakeRays returns the ray count and resets it to zero
func (c *RenderContext) TakeRays() int64 {
	n := c.rays
	c.rays = 0
	return n
}
