package renderer

import "github.com/df07/go-path-tracer/pkg/core"

// stripeStride is the step between pixels visited consecutively by StripedOrder
const stripeStride = 3

// RandomOrder returns a pseudo-random permutation of [0, n)
func RandomOrder(n int, random *core.XorShift) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	random.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// StripedOrder visits [0, n) backwards in interleaved stripes: first
// n-1, n-1-stride, ... then n-2, n-2-stride, ... and so on for every offset
// below stride
func StripedOrder(n, stride int) []int {
	order := make([]int, 0, n)
	for m := 0; m < stride; m++ {
		for i := n - m - 1; i >= 0; i -= stride {
			order = append(order, i)
		}
	}
	return order
}
