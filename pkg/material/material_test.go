package material

import (
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

func TestMaterial_ColorAndOpacity(t *testing.T) {
	m := NewDiffuse(core.NewColor(0.5, 1, 0.5, 0.25))

	if m.Color() != core.NewVec3(1, 0.5, 0.25) {
		t.Errorf("Color() = %v", m.Color())
	}
	if m.Opacity() != 0.5 {
		t.Errorf("Opacity() = %f, want 0.5", m.Opacity())
	}
	if m.PremultipliedColor() != core.NewVec3(0.5, 0.25, 0.125) {
		t.Errorf("PremultipliedColor() = %v", m.PremultipliedColor())
	}
}

func TestReflective_CopiesUnderlyingColor(t *testing.T) {
	base := NewDiffuseARGB(0xff336699)
	r := NewReflective(0.7, base)

	if r.BaseColor() != base.BaseColor() {
		t.Errorf("Expected reflective to carry %v, got %v", base.BaseColor(), r.BaseColor())
	}
	if r.Underlying != Material(base) {
		t.Error("Expected the underlying material to be kept")
	}
	if r.Reflectiveness != 0.7 {
		t.Errorf("Reflectiveness = %f", r.Reflectiveness)
	}
}

func TestReflective_ClampsReflectiveness(t *testing.T) {
	if r := NewReflective(1.5, NewDiffuseARGB(0xffff)); r.Reflectiveness != 1 {
		t.Errorf("Expected clamp to 1, got %f", r.Reflectiveness)
	}
	if r := NewReflective(-1, NewDiffuseARGB(0xffff)); r.Reflectiveness != 0 {
		t.Errorf("Expected clamp to 0, got %f", r.Reflectiveness)
	}
}

func TestRefractive_CopiesUnderlyingColor(t *testing.T) {
	base := NewSpecular(core.NewColor(1, 0.2, 0.4, 0.6), 0.5, 20)
	r := NewRefractive(0.9, core.NewVec3(1.5, 1.52, 1.54), base)

	if r.Color() != base.Color() {
		t.Errorf("Expected %v, got %v", base.Color(), r.Color())
	}
	if r.RefractiveIndex != core.NewVec3(1.5, 1.52, 1.54) {
		t.Errorf("RefractiveIndex = %v", r.RefractiveIndex)
	}
}

func TestGlow_ClampsNegativeIntensity(t *testing.T) {
	if g := NewGlow(core.ColorFromARGB(0xffff), -3); g.Intensity != 0 {
		t.Errorf("Expected 0, got %f", g.Intensity)
	}
	if g := NewGlow(core.ColorFromARGB(0xffff), 1e9); g.Intensity != 1e9 {
		t.Errorf("Expected intensity to stay unbounded, got %f", g.Intensity)
	}
}

func TestPerfectMirror(t *testing.T) {
	m := PerfectMirror()
	if m.Reflectiveness != 1 {
		t.Errorf("Reflectiveness = %f", m.Reflectiveness)
	}
	if m.Color() != core.NewVec3(0, 0, 0) || m.Opacity() != 1 {
		t.Errorf("Expected opaque black base, got %v", m.BaseColor())
	}
}

func TestMaterial_ClosedSet(t *testing.T) {
	materials := []Material{
		NewDiffuseARGB(0xffff),
		NewSpecular(core.ColorFromARGB(0xffff), 0.5, 10),
		NewGlow(core.ColorFromARGB(0xffff), 1),
		PerfectMirror(),
		NewGlass(1.5),
	}

	for _, m := range materials {
		switch m.(type) {
		case *Diffuse, *Specular, *Glow, *Reflective, *Refractive:
		default:
			t.Errorf("Unexpected material type %T", m)
		}
	}
}
