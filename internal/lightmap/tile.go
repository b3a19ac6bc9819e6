// Package lightmap describes a single baked tile: where it lives in the
// atlas, and the world-to-UV transform used to generate sample points
// across its surface, mirroring the teacher's terrain lightmap bookkeeping
// but generalized to arbitrary baked surfaces instead of ground tiles.
package lightmap

import "github.com/zdray-go/lightbake/pkg/math"

// AtlasLocation places a tile within a specific page of the lightmap atlas.
type AtlasLocation struct {
	ArrayIndex int
	X, Y       int
	Width      int
	Height     int
}

// Area returns the tile's footprint in texels, used for the pixel totals
// in LevelMesh.GatherTilePixelStats.
func (a AtlasLocation) Area() int {
	return a.Width * a.Height
}

// Transform maps a world-space point on a tile's surface plane to its
// local UV coordinates in texel units, relative to Origin.
type Transform struct {
	Origin math.Vec3
	U      math.Vec3 // tangent axis, scaled to texels-per-world-unit
	V      math.Vec3 // bitangent axis, scaled to texels-per-world-unit
}

// ToUV projects p onto the tile plane and returns its texel-space offset
// from Origin.
func (t Transform) ToUV(p math.Vec3) math.Vec2 {
	d := p.Sub(t.Origin)
	return math.Vec2{
		X: d.Dot(t.U),
		Y: d.Dot(t.V),
	}
}

// ToWorld is the inverse of ToUV: given a texel-space offset, return the
// corresponding point on the tile plane.
func (t Transform) ToWorld(uv math.Vec2) math.Vec3 {
	lenU2 := t.U.Dot(t.U)
	lenV2 := t.V.Dot(t.V)
	if lenU2 == 0 || lenV2 == 0 {
		return t.Origin
	}
	uDir := t.U.Scale(1.0 / lenU2)
	vDir := t.V.Scale(1.0 / lenV2)
	return t.Origin.Add(uDir.Scale(uv.X)).Add(vDir.Scale(uv.Y))
}

// Binding carries a tile's type index, an identity used for debugging and
// coloring only; it takes no part in sample gathering.
type Binding struct {
	TypeIndex int
}

// Tile is a single rectangular region of the output atlas, its placement,
// its world transform, and the set of surfaces that share it (coplanar,
// same sector group, within the neighbor-gathering tolerance).
type Tile struct {
	AtlasLocation
	Transform
	Binding

	Surfaces    []int
	NeedsUpdate bool
}

const borderTexels = 1

// SetupTileTransform derives a tile's world-to-UV transform from a
// surface's plane and the requested texel density (world units covered by
// one texel). normal must be unit length. tangentHint is any vector not
// parallel to normal, typically the surface's first edge, used to fix the
// tangent basis orientation deterministically.
func SetupTileTransform(origin, normal, tangentHint math.Vec3, samplingDistance float32, width, height int) Transform {
	tangent := tangentHint.Sub(normal.Scale(normal.Dot(tangentHint)))
	if tangent.Length() < 1e-6 {
		// tangentHint was parallel to normal; fall back to an arbitrary
		// perpendicular axis.
		up := math.Vec3{X: 0, Y: 0, Z: 1}
		if math.Abs32(normal.Z) > 0.99 {
			up = math.Vec3{X: 1, Y: 0, Z: 0}
		}
		tangent = up.Sub(normal.Scale(normal.Dot(up)))
	}
	tangent = tangent.Normalize()
	bitangent := normal.Cross(tangent).Normalize()

	texelsPerUnit := float32(1.0)
	if samplingDistance > 0 {
		texelsPerUnit = 1.0 / samplingDistance
	}

	// Inset the origin by one border texel so the sampled footprint sits
	// entirely inside the tile's padded rectangle.
	borderWorld := float32(borderTexels) / texelsPerUnit
	adjustedOrigin := origin.Sub(tangent.Scale(borderWorld)).Sub(bitangent.Scale(borderWorld))

	return Transform{
		Origin: adjustedOrigin,
		U:      tangent.Scale(texelsPerUnit),
		V:      bitangent.Scale(texelsPerUnit),
	}
}

// TileSize computes the padded texel dimensions (including a 1-texel
// border on each side) needed to cover a world-space footprint of the
// given width/height at the requested sampling distance.
func TileSize(worldWidth, worldHeight, samplingDistance float32) (width, height int) {
	if samplingDistance <= 0 {
		samplingDistance = 1
	}
	w := int(worldWidth/samplingDistance+0.5) + borderTexels*2
	h := int(worldHeight/samplingDistance+0.5) + borderTexels*2
	if w < 1+borderTexels*2 {
		w = 1 + borderTexels*2
	}
	if h < 1+borderTexels*2 {
		h = 1 + borderTexels*2
	}
	return w, h
}
