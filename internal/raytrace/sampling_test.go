package raytrace

import (
	"testing"

	"github.com/zdray-go/lightbake/pkg/math"
)

func TestVanDerCorput_Bounds(t *testing.T) {
	for i := uint32(0); i < 16; i++ {
		v := VanDerCorput(i)
		if v < 0 || v >= 1 {
			t.Errorf("VanDerCorput(%d) = %v, want [0,1)", i, v)
		}
	}
}

func TestVanDerCorput_Deterministic(t *testing.T) {
	a := VanDerCorput(7)
	b := VanDerCorput(7)
	if a != b {
		t.Errorf("expected deterministic output, got %v and %v", a, b)
	}
}

func TestCosineHemisphereSample_StaysInHemisphere(t *testing.T) {
	normal := math.Vec3{X: 0, Y: 0, Z: 1}
	for i := uint32(0); i < 16; i++ {
		u := Hammersley(i, 16)
		dir := CosineHemisphereSample(u, normal)
		if dir.Dot(normal) < -1e-4 {
			t.Errorf("sample %d landed outside the hemisphere: dir=%+v dot=%v", i, dir, dir.Dot(normal))
		}
		if length := dir.Length(); length < 0.99 || length > 1.01 {
			t.Errorf("expected unit-length sample, got length %v", length)
		}
	}
}

func TestDiscSample_WithinRadius(t *testing.T) {
	origin := math.Vec3{X: 1, Y: 2, Z: 3}
	normal := math.Vec3{X: 0, Y: 0, Z: 1}
	for i := uint32(0); i < 16; i++ {
		u := Hammersley(i, 16)
		p := DiscSample(u, origin, normal, 2.0)
		if d := p.Distance(origin); d > 2.0+1e-4 {
			t.Errorf("sample %d distance %v exceeds radius", i, d)
		}
	}
}
