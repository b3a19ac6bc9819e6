// Package levelmesh holds the baked scene representation: vertices,
// indices, surfaces, portals and lights, together with the plane-grouping
// and tile-registration logic that turns raw geometry into a set of
// lightmap tiles ready for packing. It mirrors the teacher's terrain mesh
// bookkeeping (internal/engine/terrain) generalized from ground chunks to
// arbitrary baked surfaces.
package levelmesh

import "github.com/zdray-go/lightbake/pkg/math"

// Vertex is a single point in the level mesh: world position, base
// texture UVs, a packed normal, and the lightmap UV/array-index assigned
// once its owning surface's tile is packed.
type Vertex struct {
	Position math.Vec3
	U, V     float32 // base texture UVs
	Normal   uint32  // packed signed 2_10_10_10

	LU, LV     float32
	LightIndex float32 // -1 = no lightmap
}

// SetNormal packs and stores a unit normal.
func (vtx *Vertex) SetNormal(n math.Vec3) {
	vtx.Normal = math.PackNormal(n)
}

// UnpackedNormal returns this vertex's decoded normal.
func (vtx Vertex) UnpackedNormal() math.Vec3 {
	return math.UnpackNormal(vtx.Normal)
}
