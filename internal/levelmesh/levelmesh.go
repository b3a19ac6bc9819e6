package levelmesh

import (
	"github.com/zdray-go/lightbake/internal/bvh"
	"github.com/zdray-go/lightbake/internal/lightmap"
	"github.com/zdray-go/lightbake/internal/packer"
	"github.com/zdray-go/lightbake/pkg/math"
)

// Portal hop and bias constants used by Trace, grounded in the source's
// LevelMesh::Trace.
const (
	maxPortalHops    = 16
	portalHitBias    = 2.0
	initialDistTrim  = 10.0
)

// TileStats summarizes atlas usage across all tiles, split into totals and
// the subset still marked dirty.
type TileStats struct {
	TilesTotal, TilesDirty   int
	PixelsTotal, PixelsDirty int
}

// LevelMesh owns the complete baked scene: flat vertex/index arrays,
// surfaces, portals, lights, and the lightmap tiles derived from them.
type LevelMesh struct {
	Vertices []Vertex
	Indices  []uint32
	Surfaces []Surface
	Portals  []Portal
	Lights   []Light
	Sun      *Light

	LightmapTiles  []lightmap.Tile
	LMTextureSize  int
	LMTextureCount int

	collision    *bvh.BVH
	triToSurface []int32
	planeGroups  [][]int
}

// New creates an empty LevelMesh with the identity portal installed at
// index 0, and the degenerate-cube placeholder geometry so acceleration
// structure builds never see a truly empty mesh.
func New(lmTextureSize int) *LevelMesh {
	m := NewRaw(lmTextureSize)
	m.Portals = []Portal{IdentityPortal()}
	m.EnsureNotEmpty()
	m.UpdateCollision()
	return m
}

// NewRaw creates a completely empty LevelMesh: no portals, no placeholder
// geometry. Used by loaders that are about to populate every field
// (including Portals, which must end up with the identity transform at
// index 0) themselves.
func NewRaw(lmTextureSize int) *LevelMesh {
	return &LevelMesh{LMTextureSize: lmTextureSize}
}

// EnsureNotEmpty inserts the degenerate-cube placeholder mesh if this
// LevelMesh currently has no vertices, so acceleration-structure builds
// downstream never see a truly empty mesh.
func (m *LevelMesh) EnsureNotEmpty() {
	if len(m.Vertices) == 0 {
		m.addEmptyMesh()
	}
}

// addEmptyMesh inserts a tiny cube far below the world so an empty scene
// still has triangles to build an acceleration structure from.
func (m *LevelMesh) addEmptyMesh() {
	const minval = -100001.0
	const maxval = -100000.0
	verts := []math.Vec3{
		{X: minval, Y: minval, Z: minval},
		{X: maxval, Y: minval, Z: minval},
		{X: maxval, Y: maxval, Z: minval},
		{X: minval, Y: minval, Z: minval},
		{X: minval, Y: maxval, Z: minval},
		{X: maxval, Y: maxval, Z: minval},
		{X: minval, Y: minval, Z: maxval},
		{X: maxval, Y: minval, Z: maxval},
		{X: maxval, Y: maxval, Z: maxval},
		{X: minval, Y: minval, Z: maxval},
		{X: minval, Y: maxval, Z: maxval},
		{X: maxval, Y: maxval, Z: maxval},
	}
	for _, v := range verts {
		m.Vertices = append(m.Vertices, Vertex{Position: v, LightIndex: -1})
	}
	for i := 0; i < 3*4; i++ {
		m.Indices = append(m.Indices, uint32(i))
	}
}

// UpdateCollision rebuilds the CPU BVH and the triangle-to-surface lookup
// table from the current vertex/index arrays. Call after any edit to
// Vertices, Indices, or Surfaces.
func (m *LevelMesh) UpdateCollision() {
	positions := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Position
	}
	m.collision = bvh.Build(positions, m.Indices)

	triCount := len(m.Indices) / 3
	m.triToSurface = make([]int32, triCount)
	for i := range m.triToSurface {
		m.triToSurface[i] = -1
	}
	for si, s := range m.Surfaces {
		firstTri := s.StartIndex / 3
		numTri := s.NumIndices / 3
		for t := firstTri; t < firstTri+numTri && t < triCount; t++ {
			m.triToSurface[t] = int32(si)
		}
	}
}

// surfaceForTriangle resolves a BVH hit (an index into the BVH's internal
// reordered triangle array) back to the Surface that owns it, or -1 if
// the hit triangle is unowned (e.g. the empty-mesh placeholder).
func (m *LevelMesh) surfaceForTriangle(hitTriangle int) int {
	orig := m.collision.OriginalIndex(hitTriangle)
	if orig < 0 || orig >= len(m.triToSurface) {
		return -1
	}
	return int(m.triToSurface[orig])
}

// Trace casts a ray from start in direction for up to maxDist, following
// portal crossings, and returns the index of the first non-portal surface
// hit, or -1 if nothing was hit or the portal hop cap was exceeded. When a
// portal is hit with too little distance left to cross it, or its portal
// index is out of range, that portal surface's index is returned.
func (m *LevelMesh) Trace(start, direction math.Vec3, maxDist float32) int {
	maxDist -= initialDistTrim
	if maxDist < 0 {
		maxDist = 0
	}

	origin := start
	hitSurfaceIdx := -1

	for hop := 0; hop < maxPortalHops; hop++ {
		end := origin.Add(direction.Scale(maxDist))
		hit := m.collision.FindFirstHit(origin, end)
		if hit.Triangle < 0 {
			return -1
		}

		hitSurfaceIdx = m.surfaceForTriangle(hit.Triangle)
		if hitSurfaceIdx < 0 {
			return -1
		}

		portalIdx := m.Surfaces[hitSurfaceIdx].PortalIndex
		if portalIdx == 0 {
			return hitSurfaceIdx
		}
		if portalIdx < 0 || portalIdx >= len(m.Portals) {
			return hitSurfaceIdx
		}

		portal := m.Portals[portalIdx]
		travelDist := hit.Fraction*maxDist + portalHitBias
		if travelDist >= maxDist {
			return hitSurfaceIdx
		}

		origin = portal.TransformOrigin(origin.Add(direction.Scale(travelDist)))
		direction = portal.TransformDirection(direction)
		maxDist -= travelDist
	}

	return -1
}

// GatherTilePixelStats reports total and dirty tile/pixel counts across
// the atlas.
func (m *LevelMesh) GatherTilePixelStats() TileStats {
	var stats TileStats
	for _, tile := range m.LightmapTiles {
		area := tile.AtlasLocation.Area()
		stats.PixelsTotal += area
		stats.TilesTotal++
		if tile.NeedsUpdate {
			stats.TilesDirty++
			stats.PixelsDirty += area
		}
	}
	return stats
}

// BuildPlaneGroups assigns each surface a PlaneGroup index. Two surfaces
// share a group iff they have equal SectorGroup, aligned normals (dot in
// [0.999, 1.01]), and plane offsets within 0.1 of each other.
func (m *LevelMesh) BuildPlaneGroups() {
	m.planeGroups = nil
	for i := range m.Surfaces {
		m.Surfaces[i].PlaneGroup = -1
	}
	for i := range m.Surfaces {
		if m.Surfaces[i].PlaneGroup >= 0 {
			continue
		}
		groupIdx := len(m.planeGroups)
		group := []int{i}
		m.Surfaces[i].PlaneGroup = groupIdx

		for j := i + 1; j < len(m.Surfaces); j++ {
			if m.Surfaces[j].PlaneGroup >= 0 {
				continue
			}
			if samePlaneGroup(m.Surfaces[i], m.Surfaces[j]) {
				m.Surfaces[j].PlaneGroup = groupIdx
				group = append(group, j)
			}
		}
		m.planeGroups = append(m.planeGroups, group)
	}
}

func samePlaneGroup(a, b Surface) bool {
	if a.SectorGroup != b.SectorGroup {
		return false
	}
	dot := a.Plane.XYZ().Dot(b.Plane.XYZ())
	if dot < 0.999 || dot > 1.01 {
		return false
	}
	if math.Abs32(a.Plane.W-b.Plane.W) > 0.1 {
		return false
	}
	return true
}

// AssignTileNeighbors fills tile.Surfaces for every tile, keeping its
// primary surface (tile.Surfaces[0]) first: the primary surface plus every
// plane-group sibling whose UV-projected bounds intersect [0,w]x[0,h] (the
// tile's texel rectangle) in the tile's own transform space.
func (m *LevelMesh) AssignTileNeighbors() {
	for ti := range m.LightmapTiles {
		tile := &m.LightmapTiles[ti]
		primary := tile.Surfaces
		if len(primary) == 0 {
			continue
		}
		primaryIdx := primary[0]
		group := m.Surfaces[primaryIdx].PlaneGroup
		if group < 0 || group >= len(m.planeGroups) {
			tile.Surfaces = []int{primaryIdx}
			continue
		}

		result := []int{primaryIdx}
		for _, si := range m.planeGroups[group] {
			if si == primaryIdx {
				continue
			}
			if m.surfaceProjectsIntoTile(si, *tile) {
				result = append(result, si)
			}
		}
		tile.Surfaces = result
	}
}

func (m *LevelMesh) surfaceProjectsIntoTile(surfaceIdx int, tile lightmap.Tile) bool {
	s := m.Surfaces[surfaceIdx]
	minU, minV := float32(1e30), float32(1e30)
	maxU, maxV := float32(-1e30), float32(-1e30)
	for i := 0; i < s.NumVerts; i++ {
		p := m.Vertices[s.StartVert+i].Position
		uv := tile.ToUV(p)
		if uv.X < minU {
			minU = uv.X
		}
		if uv.X > maxU {
			maxU = uv.X
		}
		if uv.Y < minV {
			minV = uv.Y
		}
		if uv.Y > maxV {
			maxV = uv.Y
		}
	}
	w := float32(tile.Width)
	h := float32(tile.Height)
	return minU <= w && maxU >= 0 && minV <= h && maxV >= 0
}

// PackLightmapAtlas packs all registered tiles into atlas pages using the
// forward-only shelf packer, and updates each tile's AtlasLocation and
// every vertex's lightmap UV/array index in place.
func (m *LevelMesh) PackLightmapAtlas() {
	rects := make([]packer.Rect, len(m.LightmapTiles))
	for i, t := range m.LightmapTiles {
		rects[i] = packer.Rect{Width: t.Width, Height: t.Height}
	}
	placements := packer.Pack(m.LMTextureSize, rects)

	maxPage := 0
	for i, pl := range placements {
		tile := &m.LightmapTiles[i]
		tile.ArrayIndex = pl.Page
		tile.X = pl.X
		tile.Y = pl.Y
		if pl.Page > maxPage {
			maxPage = pl.Page
		}
		m.writeTileUVs(*tile)
	}
	m.LMTextureCount = maxPage + 1
}

func (m *LevelMesh) writeTileUVs(tile lightmap.Tile) {
	size := float32(m.LMTextureSize)
	for _, si := range tile.Surfaces {
		s := m.Surfaces[si]
		for i := 0; i < s.NumVerts; i++ {
			vtx := &m.Vertices[s.StartVert+i]
			uv := tile.ToUV(vtx.Position)
			vtx.LU = (uv.X + float32(tile.X)) / size
			vtx.LV = (uv.Y + float32(tile.Y)) / size
			vtx.LightIndex = float32(tile.ArrayIndex)
		}
	}
}
