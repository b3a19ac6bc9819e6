package levelmesh

import (
	"testing"

	"github.com/zdray-go/lightbake/pkg/math"
)

func addQuad(m *LevelMesh, center math.Vec3, normal math.Vec3, half float32, sectorGroup int) int {
	tangent := math.Vec3{X: 1, Y: 0, Z: 0}
	if math.Abs32(normal.X) > 0.9 {
		tangent = math.Vec3{X: 0, Y: 1, Z: 0}
	}
	bitangent := normal.Cross(tangent).Normalize()
	tangent = bitangent.Cross(normal).Normalize()

	startVert := len(m.Vertices)
	corners := []math.Vec3{
		center.Sub(tangent.Scale(half)).Sub(bitangent.Scale(half)),
		center.Add(tangent.Scale(half)).Sub(bitangent.Scale(half)),
		center.Add(tangent.Scale(half)).Add(bitangent.Scale(half)),
		center.Sub(tangent.Scale(half)).Add(bitangent.Scale(half)),
	}
	for _, c := range corners {
		v := Vertex{Position: c, LightIndex: -1}
		v.SetNormal(normal)
		m.Vertices = append(m.Vertices, v)
	}
	startIndex := len(m.Indices)
	m.Indices = append(m.Indices, uint32(startVert), uint32(startVert+1), uint32(startVert+2))
	m.Indices = append(m.Indices, uint32(startVert), uint32(startVert+2), uint32(startVert+3))

	plane := math.PlaneFromNormalPoint(normal, center)
	s := Surface{
		MeshLocation: MeshLocation{StartVert: startVert, NumVerts: 4, StartIndex: startIndex, NumIndices: 6},
		Plane:        plane,
		SectorGroup:  sectorGroup,
		PortalIndex:  0,
		LightmapTileIndex: -1,
		SamplingDistance: 4.0,
	}
	m.Surfaces = append(m.Surfaces, s)
	return len(m.Surfaces) - 1
}

func TestTrace_SimpleQuadHit(t *testing.T) {
	m := New(256)
	addQuad(m, math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}, 10, 0)
	m.UpdateCollision()

	idx := m.Trace(math.Vec3{X: 0, Y: 0, Z: 100}, math.Vec3{X: 0, Y: 0, Z: -1}, 200)
	if idx != 0 {
		t.Fatalf("expected to hit surface 0 (the quad), got %d", idx)
	}
}

func TestTrace_Miss(t *testing.T) {
	m := New(256)
	addQuad(m, math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}, 10, 0)
	m.UpdateCollision()

	idx := m.Trace(math.Vec3{X: 1000, Y: 1000, Z: 100}, math.Vec3{X: 0, Y: 0, Z: -1}, 200)
	if idx != -1 {
		t.Errorf("expected miss, got surface %d", idx)
	}
}

func TestTrace_ThroughIdentityPortal(t *testing.T) {
	// A thin identity-portal quad sits above the target quad; crossing it
	// should still reach the target (mod the fixed bias), exercising the
	// portal-hop branch of Trace with a no-op transform.
	m := New(256)
	addQuad(m, math.Vec3{X: 0, Y: 0, Z: 50}, math.Vec3{X: 0, Y: 0, Z: 1}, 10, 0)
	target := addQuad(m, math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}, 10, 0)
	m.Portals = append(m.Portals, IdentityPortal())
	m.Surfaces[0].PortalIndex = 1
	m.UpdateCollision()

	idx := m.Trace(math.Vec3{X: 0, Y: 0, Z: 100}, math.Vec3{X: 0, Y: 0, Z: -1}, 200)
	if idx != target {
		t.Errorf("expected to pass through the portal and hit the target quad %d, got %d", target, idx)
	}
}

func TestBuildPlaneGroups_CoplanarSameSector(t *testing.T) {
	m := New(256)
	addQuad(m, math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}, 10, 1)
	addQuad(m, math.Vec3{X: 30, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}, 10, 1)
	m.BuildPlaneGroups()

	if m.Surfaces[0].PlaneGroup != m.Surfaces[1].PlaneGroup {
		t.Errorf("expected coplanar same-sector surfaces to share a plane group")
	}
}

func TestBuildPlaneGroups_DifferentSectorsSeparate(t *testing.T) {
	m := New(256)
	addQuad(m, math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}, 10, 1)
	addQuad(m, math.Vec3{X: 30, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}, 10, 2)
	m.BuildPlaneGroups()

	if m.Surfaces[0].PlaneGroup == m.Surfaces[1].PlaneGroup {
		t.Errorf("expected different-sector surfaces to stay in separate plane groups")
	}
}

func TestRegisterTileAndPack_UVsInBounds(t *testing.T) {
	m := New(256)
	si := addQuad(m, math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}, 10, 0)
	m.RegisterTile(si)
	if m.Surfaces[si].LightmapTileIndex < 0 {
		t.Fatalf("expected a tile to be registered")
	}
	m.BuildPlaneGroups()
	m.AssignTileNeighbors()
	m.PackLightmapAtlas()

	tile := m.LightmapTiles[m.Surfaces[si].LightmapTileIndex]
	s := m.Surfaces[si]
	for i := 0; i < s.NumVerts; i++ {
		p := m.Vertices[s.StartVert+i].Position
		uv := tile.ToUV(p)
		if uv.X < -0.5 || uv.X > float32(tile.Width)+0.5 || uv.Y < -0.5 || uv.Y > float32(tile.Height)+0.5 {
			t.Errorf("vertex %d UV %+v outside tile bounds (%d,%d)", i, uv, tile.Width, tile.Height)
		}
	}
}

func TestGatherTilePixelStats(t *testing.T) {
	m := New(256)
	si := addQuad(m, math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}, 10, 0)
	m.RegisterTile(si)
	m.LightmapTiles[0].NeedsUpdate = true

	stats := m.GatherTilePixelStats()
	if stats.TilesTotal != 1 || stats.TilesDirty != 1 {
		t.Errorf("got %+v", stats)
	}
}

func TestEmptyMeshGuard_NeverEmpty(t *testing.T) {
	m := New(256)
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		t.Fatalf("expected placeholder geometry in a freshly constructed LevelMesh")
	}
}
