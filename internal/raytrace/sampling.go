package raytrace

import (
	gomath "math"

	"github.com/zdray-go/lightbake/pkg/math"
)

// VanDerCorput returns the base-2 Van der Corput radical inverse of n,
// the low-discrepancy 1D sequence underlying Hammersley sampling.
func VanDerCorput(n uint32) float32 {
	n = (n << 16) | (n >> 16)
	n = ((n & 0x55555555) << 1) | ((n & 0xAAAAAAAA) >> 1)
	n = ((n & 0x33333333) << 2) | ((n & 0xCCCCCCCC) >> 2)
	n = ((n & 0x0F0F0F0F) << 4) | ((n & 0xF0F0F0F0) >> 4)
	n = ((n & 0x00FF00FF) << 8) | ((n & 0xFF00FF00) >> 8)
	return float32(n) * 2.328306437080797e-10 // 1 / 2^32
}

// Hammersley returns the i-th point of an n-sample 2D Hammersley sequence
// in [0,1)^2.
func Hammersley(i, n uint32) math.Vec2 {
	return math.Vec2{X: float32(i) / float32(n), Y: VanDerCorput(i)}
}

// CosineHemisphereSample maps a 2D low-discrepancy sample to a direction
// in the hemisphere around normal, cosine-weighted (equivalent to GGX
// importance sampling with roughness = 1.0, per the spec's first-bounce
// pass).
func CosineHemisphereSample(u math.Vec2, normal math.Vec3) math.Vec3 {
	r := float32(gomath.Sqrt(float64(u.X)))
	theta := 2 * gomath.Pi * float64(u.Y)
	x := r * float32(gomath.Cos(theta))
	y := r * float32(gomath.Sin(theta))
	z := float32(gomath.Sqrt(gomath.Max(0, float64(1-u.X))))

	tangent := arbitraryTangent(normal)
	bitangent := normal.Cross(tangent)
	return tangent.Scale(x).Add(bitangent.Scale(y)).Add(normal.Scale(z)).Normalize()
}

// DiscSample maps a 2D low-discrepancy sample to a point on a disc of the
// given radius lying in the tangent plane of normal, centered at origin,
// used to jitter shadow-ray origins for the direct pass's soft-shadow
// averaging.
func DiscSample(u math.Vec2, origin, normal math.Vec3, radius float32) math.Vec3 {
	r := radius * float32(gomath.Sqrt(float64(u.X)))
	theta := 2 * gomath.Pi * float64(u.Y)
	x := r * float32(gomath.Cos(theta))
	y := r * float32(gomath.Sin(theta))

	tangent := arbitraryTangent(normal)
	bitangent := normal.Cross(tangent)
	return origin.Add(tangent.Scale(x)).Add(bitangent.Scale(y))
}

func arbitraryTangent(normal math.Vec3) math.Vec3 {
	up := math.Vec3{X: 0, Y: 0, Z: 1}
	if math.Abs32(normal.Z) > 0.99 {
		up = math.Vec3{X: 1, Y: 0, Z: 0}
	}
	return up.Cross(normal).Normalize()
}
