package core

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		n        Vec3
		expected Vec3
	}{
		{"straight down onto floor", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees", NewVec3(1, -1, 0).Normalize(), NewVec3(0, 1, 0), NewVec3(1, 1, 0).Normalize()},
		{"parallel to surface", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Reflect(tt.n)
			if !vecNear(result, tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_DoubleReflectionIsIdentity(t *testing.T) {
	// Two parallel, identically oriented mirrors: reflecting twice restores the direction
	normal := NewVec3(0.3, 1, -0.2).Normalize()
	random := NewXorShift(7)

	for i := 0; i < 100; i++ {
		d := random.UnitVector()
		twice := d.Reflect(normal).Reflect(normal)
		if !vecNear(twice, d, 1e-12) {
			t.Fatalf("Double reflection changed %v into %v", d, twice)
		}
	}
}

func TestVec3_Refract(t *testing.T) {
	normal := NewVec3(0, 1, 0)

	t.Run("equal indices is a no-op", func(t *testing.T) {
		random := NewXorShift(3)
		for i := 0; i < 100; i++ {
			d := random.UnitVector()
			if d.Dot(normal) > 0 {
				d = d.Negate()
			}
			out, ok := d.Refract(normal, 1.0)
			if !ok {
				t.Fatalf("Unexpected total internal reflection for %v", d)
			}
			if !vecNear(out, d, 1e-12) {
				t.Fatalf("Expected %v unchanged, got %v", d, out)
			}
		}
	})

	t.Run("bends toward normal entering denser medium", func(t *testing.T) {
		d := NewVec3(1, -1, 0).Normalize()
		out, ok := d.Refract(normal, 1/1.5)
		if !ok {
			t.Fatal("Unexpected total internal reflection")
		}
		sinIn := math.Abs(d.X)
		sinOut := math.Abs(out.X)
		if math.Abs(sinIn-1.5*sinOut) > 1e-9 {
			t.Errorf("Snell's law violated: sinIn=%f sinOut=%f", sinIn, sinOut)
		}
		if math.Abs(out.Length()-1) > 1e-9 {
			t.Errorf("Refracted direction not normalized: %f", out.Length())
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		d := NewVec3(1, -0.2, 0).Normalize()
		if _, ok := d.Refract(normal, 1.5); ok {
			t.Error("Expected total internal reflection at grazing angle leaving glass")
		}
	})
}

func TestVec3_GammaRoundTrip(t *testing.T) {
	const gamma = 2.2
	for c := 0.0; c <= 1.0; c += 0.05 {
		v := Splat(c)
		back := v.GammaCorrect(gamma).GammaCorrect(1 / gamma)
		if !vecNear(back, v, 1e-9) {
			t.Errorf("Gamma round trip of %f gave %v", c, back)
		}
	}
}

func TestVec3_Luminance(t *testing.T) {
	tests := []struct {
		v    Vec3
		want float64
	}{
		{NewVec3(1, 0, 0), 0.2126},
		{NewVec3(0, 1, 0), 0.7152},
		{NewVec3(0, 0, 1), 0.0722},
		{Splat(1), 1},
		{Splat(0), 0},
	}
	for _, tt := range tests {
		if got := tt.v.Luminance(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Luminance(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestVec3_Sanitize(t *testing.T) {
	v := NewVec3(math.NaN(), -2, math.Inf(1)).Sanitize()
	if v.X != 0 || v.Y != 0 {
		t.Errorf("Expected NaN and negative to become 0, got %v", v)
	}
	if math.IsInf(v.Z, 0) {
		t.Errorf("Expected infinity to be replaced, got %v", v.Z)
	}
}

func TestVec3_Components(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for i, expected := range []float64{1, 2, 3} {
		if v.Component(i) != expected {
			t.Errorf("Component(%d) = %f, want %f", i, v.Component(i), expected)
		}
	}
	if w := v.WithComponent(1, 9); w != NewVec3(1, 9, 3) {
		t.Errorf("WithComponent(1, 9) = %v", w)
	}
	if !NewVec3(0, 0, 0).IsZero() || v.IsZero() {
		t.Error("IsZero misreported")
	}
}
