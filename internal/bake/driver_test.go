package bake

import (
	"context"
	"testing"

	"github.com/zdray-go/lightbake/internal/levelmesh"
	"github.com/zdray-go/lightbake/internal/raytrace"
	"github.com/zdray-go/lightbake/pkg/math"
)

func addQuad(m *levelmesh.LevelMesh, center, normal math.Vec3, half float32) int {
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
		v := levelmesh.Vertex{Position: c, LightIndex: -1}
		v.SetNormal(normal)
		m.Vertices = append(m.Vertices, v)
	}
	startIndex := len(m.Indices)
	m.Indices = append(m.Indices, uint32(startVert), uint32(startVert+1), uint32(startVert+2))
	m.Indices = append(m.Indices, uint32(startVert), uint32(startVert+2), uint32(startVert+3))

	s := levelmesh.Surface{
		MeshLocation:      levelmesh.MeshLocation{StartVert: startVert, NumVerts: 4, StartIndex: startIndex, NumIndices: 6},
		Plane:             math.PlaneFromNormalPoint(normal, center),
		LightmapTileIndex: -1,
		SamplingDistance:  4,
	}
	m.Surfaces = append(m.Surfaces, s)
	return len(m.Surfaces) - 1
}

func buildBakeableScene() *levelmesh.LevelMesh {
	m := levelmesh.New(64)
	si := addQuad(m, math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 1}, 10)
	m.Lights = append(m.Lights, levelmesh.Light{
		Origin: math.Vec3{X: 0, Y: 0, Z: 30}, Radius: 60, Intensity: 1.0,
		Color: math.Vec3{X: 1, Y: 1, Z: 1}, OuterAngleCos: -1,
	})
	m.RegisterTile(si)
	m.BuildPlaneGroups()
	m.AssignTileNeighbors()
	m.PackLightmapAtlas()
	m.UpdateCollision()
	return m
}

func TestRun_ProducesLitAtlas(t *testing.T) {
	m := buildBakeableScene()
	params := Params{
		Params:      raytrace.Params{SampleCount: 4, BounceCount: 1, AODistance: 50, BounceClipDistance: 500, EmissionFraction: 0.25},
		TextureSize: 64,
		MaxPages:    4,
	}

	result, err := Run(context.Background(), m, params)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Atlas.Pages) == 0 {
		t.Fatalf("expected at least one atlas page")
	}

	tile := m.LightmapTiles[0]
	page := result.Atlas.Pages[tile.ArrayIndex]
	cx, cy := tile.X+tile.Width/2, tile.Y+tile.Height/2
	idx := (cy*page.Width + cx) * 3
	if page.Pixels[idx] <= 0 {
		t.Errorf("expected positive illumination near tile center, got %v", page.Pixels[idx])
	}
}

func TestRun_TileTooLarge(t *testing.T) {
	m := buildBakeableScene()
	params := Params{
		Params:      raytrace.Params{SampleCount: 1},
		TextureSize: 4, // smaller than the registered tile
		MaxPages:    4,
	}

	if _, err := Run(context.Background(), m, params); err == nil {
		t.Fatalf("expected an error when a tile exceeds the texture size")
	}
}

func TestRun_Cancellation(t *testing.T) {
	m := buildBakeableScene()
	params := Params{
		Params:      raytrace.Params{SampleCount: 1},
		TextureSize: 64,
		MaxPages:    4,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, m, params); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
