package renderer

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-path-tracer/pkg/core"
)

// coversOnce reports whether order is a permutation of [0, n)
func coversOnce(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	sorted := append([]int(nil), order...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i {
			return false
		}
	}
	return true
}

func TestRandomOrder(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 640} {
		order := RandomOrder(n, core.NewXorShift(42))
		if !coversOnce(order, n) {
			t.Errorf("RandomOrder(%d) is not a permutation: %v", n, order)
		}
	}

	a := RandomOrder(100, core.NewXorShift(5))
	b := RandomOrder(100, core.NewXorShift(5))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Same seed should give the same order (-a +b):\n%s", diff)
	}

	identity := true
	for i, v := range a {
		if v != i {
			identity = false
			break
		}
	}
	if identity {
		t.Error("RandomOrder(100) returned the identity permutation")
	}
}

func TestStripedOrder(t *testing.T) {
	got := StripedOrder(7, 3)
	want := []int{6, 3, 0, 5, 2, 4, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("StripedOrder(7, 3) mismatch (-want +got):\n%s", diff)
	}

	for _, n := range []int{0, 1, 2, 3, 4, 100, 101} {
		if order := StripedOrder(n, stripeStride); !coversOnce(order, n) {
			t.Errorf("StripedOrder(%d) is not a permutation: %v", n, order)
		}
	}
}
