package levelmesh

import "github.com/zdray-go/lightbake/internal/lightmap"

// PrepareTiles runs the full tile-registration pipeline over every
// surface with a positive SamplingDistance (the lit ones; SamplingDistance
// <= 0 marks a surface as unlit, e.g. pure collision geometry): register a
// tile per surface, group coplanar surfaces, gather tile neighbors, and
// pack the result into the atlas. Called once after a level is loaded and
// before a bake runs.
func (m *LevelMesh) PrepareTiles() {
	for i := range m.Surfaces {
		if m.Surfaces[i].SamplingDistance > 0 {
			m.RegisterTile(i)
		}
	}
	m.BuildPlaneGroups()
	m.AssignTileNeighbors()
	m.PackLightmapAtlas()
	m.UpdateCollision()
}

// RegisterTile creates a new lightmap tile owned by the given surface
// (its "primary" surface), sized to cover the surface's vertex footprint
// at its SamplingDistance, and records the tile index on the surface.
// Degenerate surfaces (zero vertices, or a footprint of zero width or
// height) are skipped and left with LightmapTileIndex == -1, per the
// numVerts == 0 invariant. A small but non-zero footprint still gets a
// tile of the minimum size TileSize returns.
func (m *LevelMesh) RegisterTile(surfaceIdx int) int {
	s := &m.Surfaces[surfaceIdx]
	if s.NumVerts == 0 {
		s.LightmapTileIndex = -1
		return -1
	}

	normal := s.Plane.XYZ()
	origin := m.Vertices[s.StartVert].Position
	secondIdx := s.StartVert
	if s.NumVerts > 1 {
		secondIdx = s.StartVert + 1
	}
	hint := m.Vertices[secondIdx].Position.Sub(origin)

	minU, minV := float32(1e30), float32(1e30)
	maxU, maxV := float32(-1e30), float32(-1e30)
	tangent := hint.Sub(normal.Scale(normal.Dot(hint))).Normalize()
	bitangent := normal.Cross(tangent).Normalize()
	for i := 0; i < s.NumVerts; i++ {
		p := m.Vertices[s.StartVert+i].Position.Sub(origin)
		u := p.Dot(tangent)
		v := p.Dot(bitangent)
		if u < minU {
			minU = u
		}
		if u > maxU {
			maxU = u
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	worldWidth := maxU - minU
	worldHeight := maxV - minV
	if worldWidth <= 0 || worldHeight <= 0 {
		s.LightmapTileIndex = -1
		return -1
	}

	width, height := lightmap.TileSize(worldWidth, worldHeight, s.SamplingDistance)
	footprintOrigin := origin.Add(tangent.Scale(minU)).Add(bitangent.Scale(minV))
	transform := lightmap.SetupTileTransform(footprintOrigin, normal, hint, s.SamplingDistance, width, height)

	tile := lightmap.Tile{
		AtlasLocation: lightmap.AtlasLocation{Width: width, Height: height},
		Transform:     transform,
		Surfaces:      []int{surfaceIdx},
		NeedsUpdate:   true,
	}

	tileIdx := len(m.LightmapTiles)
	m.LightmapTiles = append(m.LightmapTiles, tile)
	s.LightmapTileIndex = tileIdx
	return tileIdx
}
