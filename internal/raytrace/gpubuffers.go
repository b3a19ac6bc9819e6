package raytrace

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/zdray-go/lightbake/internal/levelmesh"
)

// SceneBuffers mirrors the LevelMesh's CPU arrays as GPU storage buffers,
// grounded in the teacher's framebuffer resource-lifecycle pattern
// (generate/bind/upload/destroy) but shaped as SSBOs instead of render
// targets: vertex positions, triangle indices, per-surface info, and
// per-light info, matching the external GPU interface's descriptor
// bindings 5-7.
type SceneBuffers struct {
	vertexSSBO  uint32
	indexSSBO   uint32
	surfaceSSBO uint32
	lightSSBO   uint32

	vertexCount  int
	indexCount   int
	surfaceCount int
	lightCount   int
}

// UploadScene creates the storage buffers from a LevelMesh's current CPU
// state. Each call allocates a fresh set of buffers; buffers from an
// earlier call are left alone and are released only by their own Destroy.
func UploadScene(m *levelmesh.LevelMesh) (*SceneBuffers, error) {
	b := &SceneBuffers{}

	positions := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = [3]float32{v.Position.X, v.Position.Y, v.Position.Z}
	}
	b.vertexSSBO = makeStorageBuffer(positions)
	b.vertexCount = len(positions)

	b.indexSSBO = makeStorageBuffer(m.Indices)
	b.indexCount = len(m.Indices)

	infos := make([]levelmesh.SurfaceInfo, len(m.Surfaces))
	for i, s := range m.Surfaces {
		infos[i] = s.ToSurfaceInfo()
	}
	b.surfaceSSBO = makeStorageBuffer(infos)
	b.surfaceCount = len(infos)

	b.lightSSBO = makeStorageBuffer(m.Lights)
	b.lightCount = len(m.Lights)

	if err := checkGLError("UploadScene"); err != nil {
		b.Destroy()
		return nil, err
	}
	return b, nil
}

func makeStorageBuffer[T any](data []T) uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	// The teacher's GL binding (v4.1-core) predates SSBOs; these buffers
	// stand in for the spec's storage-buffer bindings (5-7) as generic
	// buffer objects, since the actual ray intersection runs CPU-side.
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	if len(data) > 0 {
		var zero T
		stride := int(unsafe.Sizeof(zero))
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*stride, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return buf
}

// Destroy releases all GPU storage buffers.
func (b *SceneBuffers) Destroy() {
	buffers := []uint32{b.vertexSSBO, b.indexSSBO, b.surfaceSSBO, b.lightSSBO}
	for _, buf := range buffers {
		if buf != 0 {
			gl.DeleteBuffers(1, &buf)
		}
	}
	*b = SceneBuffers{}
}

func checkGLError(where string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%x", where, code)
	}
	return nil
}
