package sceneio

import (
	"testing"

	"github.com/zdray-go/lightbake/internal/levelmesh"
	"github.com/zdray-go/lightbake/pkg/math"
)

func buildSampleMesh() *levelmesh.LevelMesh {
	m := levelmesh.New(256)
	m.Vertices = append(m.Vertices,
		levelmesh.Vertex{Position: math.Vec3{X: -10, Y: -10, Z: 0}, U: 0, V: 0, LightIndex: -1},
		levelmesh.Vertex{Position: math.Vec3{X: 10, Y: -10, Z: 0}, U: 1, V: 0, LightIndex: -1},
		levelmesh.Vertex{Position: math.Vec3{X: 10, Y: 10, Z: 0}, U: 1, V: 1, LightIndex: -1},
		levelmesh.Vertex{Position: math.Vec3{X: -10, Y: 10, Z: 0}, U: 0, V: 1, LightIndex: -1},
	)
	base := uint32(len(m.Vertices) - 4)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	m.Surfaces = append(m.Surfaces, levelmesh.Surface{
		MeshLocation: levelmesh.MeshLocation{StartVert: int(base), NumVerts: 4, StartIndex: len(m.Indices) - 6, NumIndices: 6},
		Plane:        math.PlaneFromNormalPoint(math.Vec3{X: 0, Y: 0, Z: 1}, math.Vec3{}),
		SamplingDistance: 4,
		LightmapTileIndex: -1,
	})
	m.Lights = append(m.Lights, levelmesh.Light{
		Origin: math.Vec3{X: 0, Y: 0, Z: 50}, Radius: 100, Intensity: 1, Color: math.Vec3{X: 1, Y: 1, Z: 1},
		OuterAngleCos: -1,
	})
	m.UpdateCollision()
	return m
}

func TestRoundTrip(t *testing.T) {
	orig := buildSampleMesh()
	data, err := WriteLevel(orig)
	if err != nil {
		t.Fatalf("WriteLevel: %v", err)
	}

	loaded, err := ReadLevel(data, 256)
	if err != nil {
		t.Fatalf("ReadLevel: %v", err)
	}

	if len(loaded.Vertices) != len(orig.Vertices) {
		t.Fatalf("vertex count mismatch: got %d want %d", len(loaded.Vertices), len(orig.Vertices))
	}
	for i := range orig.Vertices {
		if loaded.Vertices[i].Position != orig.Vertices[i].Position {
			t.Errorf("vertex %d position mismatch: got %+v want %+v", i, loaded.Vertices[i].Position, orig.Vertices[i].Position)
		}
	}

	if len(loaded.Surfaces) != len(orig.Surfaces) {
		t.Fatalf("surface count mismatch: got %d want %d", len(loaded.Surfaces), len(orig.Surfaces))
	}
	if loaded.Surfaces[0].Plane != orig.Surfaces[0].Plane {
		t.Errorf("surface plane mismatch: got %+v want %+v", loaded.Surfaces[0].Plane, orig.Surfaces[0].Plane)
	}

	if len(loaded.Lights) != 1 || loaded.Lights[0].Radius != 100 {
		t.Errorf("light mismatch: got %+v", loaded.Lights)
	}
}

func TestReadLevel_TruncatedHeader(t *testing.T) {
	_, err := ReadLevel([]byte{1, 2, 3}, 256)
	if err == nil {
		t.Error("expected error for truncated header")
	}
}

func TestReadLevel_TruncatedBlock(t *testing.T) {
	orig := buildSampleMesh()
	data, err := WriteLevel(orig)
	if err != nil {
		t.Fatalf("WriteLevel: %v", err)
	}
	truncated := data[:len(data)-4]
	_, err = ReadLevel(truncated, 256)
	if err == nil {
		t.Error("expected error for truncated trailing block")
	}
}
