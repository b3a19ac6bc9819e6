package raytrace

import (
	gomath "math"

	"github.com/zdray-go/lightbake/internal/levelmesh"
	"github.com/zdray-go/lightbake/pkg/math"
)

// Params bundles the sampling budgets and tunables the pipeline needs,
// generalized from the source's hard-coded AO distance (100) and bounce
// clip distance (2000) into configuration, per the spec's open question.
type Params struct {
	SampleCount        int
	BounceCount        int
	AODistance         float32
	BounceClipDistance float32
	EmissionFraction   float32

	SunEnabled   bool
	SunDirection math.Vec3
	SunColor     math.Vec3
	SunIntensity float32
}

const sunTraceDistance = 32768.0

// Texel is a single sample point on a tile: its world position, surface
// normal, and owning surface index, or -1 if outside any surface (the
// startpositions convention). Exported so the bake driver can build the
// startpositions grid and feed it through the pass methods below.
type Texel struct {
	Position math.Vec3
	Normal   math.Vec3
	Surface  int
}

// Pipeline runs the CPU-executed equivalent of the GPU ray-tracing
// programs described by the spec, reading/writing the same startpositions
// / positions / outputs semantics the GPU interface defines, using
// LevelMesh.Trace for all intersection queries.
type Pipeline struct {
	mesh   *levelmesh.LevelMesh
	params Params
}

// New creates a pipeline bound to a mesh and sampling parameters.
func New(mesh *levelmesh.LevelMesh, params Params) *Pipeline {
	return &Pipeline{mesh: mesh, params: params}
}

// Accum is the per-texel (rgb, w) accumulator mirroring the outputs image.
type Accum struct {
	RGB math.Vec3
	W   float32
}

// DirectPass implements PassType 0: for every light in [lightStart,
// lightEnd), accumulate its contribution at each texel into out.
func (p *Pipeline) DirectPass(texels []Texel, lightStart, lightEnd int, out []Accum) {
	for i, tx := range texels {
		if tx.Surface < 0 {
			continue
		}
		out[i].RGB = out[i].RGB.Add(p.directLightingAt(tx, lightStart, lightEnd))
	}
}

// The sun is not a slot in mesh.Lights — it is evaluated independently of
// [lightStart, lightEnd), which windows only the real point/spot lights,
// so enabling it never shifts or shadows a real light out of range.
func (p *Pipeline) directLightingAt(tx Texel, lightStart, lightEnd int) math.Vec3 {
	var sum math.Vec3

	if p.params.SunEnabled {
		sum = sum.Add(p.sunContribution(tx))
	}

	for li := lightStart; li < lightEnd && li < len(p.mesh.Lights); li++ {
		light := p.mesh.Lights[li]
		sum = sum.Add(p.pointLightContribution(tx, light))
	}
	return sum
}

func (p *Pipeline) sunContribution(tx Texel) math.Vec3 {
	nDotL := tx.Normal.Dot(p.params.SunDirection.Scale(-1))
	if nDotL <= 0 {
		return math.Vec3{}
	}
	shadow := p.averageShadowFactor(tx, p.params.SunDirection.Scale(-1), sunTraceDistance, true)
	return p.params.SunColor.Scale(p.params.SunIntensity * nDotL * shadow)
}

func (p *Pipeline) pointLightContribution(tx Texel, light levelmesh.Light) math.Vec3 {
	toLight := light.Origin.Sub(tx.Position)
	dist := toLight.Length()
	if dist <= 0 || dist >= light.Radius {
		return math.Vec3{}
	}
	dir := toLight.Scale(1.0 / dist)

	distAtten := maxf(1-dist/light.Radius, 0)
	angleAtten := maxf(tx.Normal.Dot(dir), 0)
	if distAtten <= 0 || angleAtten <= 0 {
		return math.Vec3{}
	}

	spotAtten := float32(1.0)
	if !light.IsOmni() {
		cosAngle := dir.Scale(-1).Dot(light.SpotDir)
		spotAtten = smoothstep(light.OuterAngleCos, light.InnerAngleCos, cosAngle)
	}
	if spotAtten <= 0 {
		return math.Vec3{}
	}

	shadow := p.averageShadowFactor(tx, dir, dist, false)
	return light.Color.Scale(light.Intensity * distAtten * angleAtten * spotAtten * shadow)
}

// averageShadowFactor averages a shadow ray's visibility over SampleCount
// jittered origins within a tangent-plane disc of radius
// surface.SamplingDistance/2, per the spec's quasi-Monte-Carlo shadow
// sampling.
func (p *Pipeline) averageShadowFactor(tx Texel, dir math.Vec3, dist float32, isSun bool) float32 {
	surf := p.mesh.Surfaces[tx.Surface]
	radius := surf.SamplingDistance / 2

	n := p.params.SampleCount
	if n < 1 {
		n = 1
	}

	var sum float32
	for i := 0; i < n; i++ {
		u := Hammersley(uint32(i), uint32(n))
		origin := tx.Position
		if radius > 0 {
			origin = DiscSample(u, tx.Position, tx.Normal, radius)
		}
		sum += p.traceShadowRay(origin, dir, dist, isSun)
	}
	return sum / float32(n)
}

// traceShadowRay implements the sun/shadow miss and hit semantics: a miss
// returns full visibility (1.0); a sun ray that hits a sky surface
// returns 1.0 (treated as unoccluded sky), any other hit returns 0.0; a
// non-sun shadow ray always returns 0.0 on any hit.
func (p *Pipeline) traceShadowRay(origin, dir math.Vec3, maxDist float32, isSun bool) float32 {
	hitSurface := p.mesh.Trace(origin, dir, maxDist)
	if hitSurface < 0 {
		return 1.0
	}
	if isSun && p.mesh.Surfaces[hitSurface].IsSky {
		return 1.0
	}
	return 0.0
}

// BouncePass implements PassType 1/2: importance-sample a cosine-weighted
// hemisphere direction per sample, trace up to BounceClipDistance,
// accumulate emissive contribution, advance the path, and decay the
// throughput weight by EmissionFraction.
func (p *Pipeline) BouncePass(texels []Texel, out []Accum) []Texel {
	next := make([]Texel, len(texels))
	n := p.params.SampleCount
	if n < 1 {
		n = 1
	}

	for i, tx := range texels {
		next[i] = tx
		if tx.Surface < 0 {
			out[i].W = 0
			continue
		}
		if out[i].W == 0 {
			out[i].W = 1.0 / float32(n)
		}

		for s := 0; s < n; s++ {
			u := Hammersley(uint32(s), uint32(n))
			dir := CosineHemisphereSample(u, tx.Normal)
			nDotL := maxf(tx.Normal.Dot(dir), 0)
			weight := nDotL / (1.0 / (2 * gomath.Pi))

			end := tx.Position.Add(dir.Scale(p.params.BounceClipDistance))
			hitSurface := p.mesh.Trace(tx.Position, dir, p.params.BounceClipDistance)
			if hitSurface < 0 {
				continue
			}
			hit := p.mesh.Surfaces[hitSurface]
			hitDist := tx.Position.Distance(hitPointOnSurface(tx.Position, end, hit))

			if hit.EmissiveDistance > 0 {
				falloff := maxf(1-hitDist/hit.EmissiveDistance, 0)
				contribution := hit.EmissiveColor.Scale(hit.EmissiveIntensity * falloff * out[i].W * weight)
				out[i].RGB = out[i].RGB.Add(contribution)
			}

			next[i] = Texel{
				Position: hitPointOnSurface(tx.Position, end, hit),
				Normal:   hit.Plane.XYZ(),
				Surface:  hitSurface,
			}
		}
		out[i].W *= p.params.EmissionFraction
	}
	return next
}

// hitPointOnSurface approximates the actual triangle intersection point
// as the surface-plane projection of the traced segment's endpoint, since
// Trace reports only the owning surface, not the barycentric hit point.
func hitPointOnSurface(start, end math.Vec3, hit levelmesh.Surface) math.Vec3 {
	dir := end.Sub(start)
	denom := hit.Plane.XYZ().Dot(dir)
	if denom == 0 {
		return end
	}
	t := -hit.Plane.DistanceToPoint(start) / denom
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return start.Add(dir.Scale(t))
}

// AOPass implements the ambient-occlusion pass: SampleCount
// distance-capped hemisphere rays per texel, averaged into an occlusion
// factor in [0,1] that scales the accumulated outputs.
func (p *Pipeline) AOPass(texels []Texel, out []Accum) {
	n := p.params.SampleCount
	if n < 1 {
		n = 1
	}

	for i, tx := range texels {
		if tx.Surface < 0 {
			continue
		}
		var sum float32
		for s := 0; s < n; s++ {
			u2 := Hammersley(uint32(s), uint32(n))
			u := math.Vec2{X: 2*u2.X - 1, Y: 2*u2.Y - 1}
			dir := CosineHemisphereSample(math.Vec2{X: absf(u.X), Y: absf(u.Y)}, tx.Normal)

			hitSurface := p.mesh.Trace(tx.Position, dir, p.params.AODistance)
			var hitDist float32
			if hitSurface < 0 {
				hitDist = 100000 // miss sentinel, clamps to 1
			} else {
				end := tx.Position.Add(dir.Scale(p.params.AODistance))
				hp := hitPointOnSurface(tx.Position, end, p.mesh.Surfaces[hitSurface])
				hitDist = tx.Position.Distance(hp)
			}
			sum += clamp01(hitDist / p.params.AODistance)
		}
		ao := sum / float32(n)
		out[i].RGB = out[i].RGB.Scale(ao)
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func absf(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
