// Package sceneio reads the binary level container handed to the bake
// tool and can write a LevelMesh back into that same container format (the
// baked atlas itself is encoded by internal/atlas), grounded in the
// offset-table-plus-length-prefixed-blocks layout of the teacher's GND/RSW
// parsers (pkg/formats) and the original engine's binfile offset scheme.
package sceneio

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/zdray-go/lightbake/internal/levelmesh"
)

// Block indices into the level file's offset table, in the order the
// header lists them.
const (
	blockVertices = iota
	blockIndices
	blockSurfaces
	blockLights
	blockPortals
	blockCount
)

// ErrTruncated is returned when a block's declared length would run past
// the end of the file.
var ErrTruncated = errors.New("sceneio: truncated level block")

// ErrBadOffsetTable is returned when the header's offset table cannot be
// read in full.
var ErrBadOffsetTable = errors.New("sceneio: bad offset table")

// ReadLevel parses a binary level container into a fresh LevelMesh. The
// mesh's acceleration structure is rebuilt before returning.
func ReadLevel(data []byte, lmTextureSize int) (*levelmesh.LevelMesh, error) {
	if len(data) < blockCount*4 {
		return nil, ErrBadOffsetTable
	}

	offsets := make([]uint32, blockCount)
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint32(data[i*4:])
	}

	m := levelmesh.NewRaw(lmTextureSize)

	verts, err := readVertexBlock(data, offsets[blockVertices])
	if err != nil {
		return nil, errors.Wrap(err, "reading vertex block")
	}
	m.Vertices = append(m.Vertices, verts...)

	indices, err := readIndexBlock(data, offsets[blockIndices])
	if err != nil {
		return nil, errors.Wrap(err, "reading index block")
	}
	m.Indices = append(m.Indices, indices...)

	surfaces, err := readSurfaceBlock(data, offsets[blockSurfaces])
	if err != nil {
		return nil, errors.Wrap(err, "reading surface block")
	}
	m.Surfaces = append(m.Surfaces, surfaces...)

	lights, err := readLightBlock(data, offsets[blockLights])
	if err != nil {
		return nil, errors.Wrap(err, "reading light block")
	}
	m.Lights = append(m.Lights, lights...)

	portals, err := readPortalBlock(data, offsets[blockPortals])
	if err != nil {
		return nil, errors.Wrap(err, "reading portal block")
	}
	if len(portals) == 0 {
		portals = []levelmesh.Portal{levelmesh.IdentityPortal()}
	}
	m.Portals = portals

	m.EnsureNotEmpty()
	m.UpdateCollision()
	return m, nil
}

// block returns the length-prefixed payload starting at offset: a u32 LE
// byte length followed by that many bytes.
func block(data []byte, offset uint32) ([]byte, error) {
	if uint64(offset)+4 > uint64(len(data)) {
		return nil, ErrTruncated
	}
	length := binary.LittleEndian.Uint32(data[offset:])
	start := offset + 4
	end := uint64(start) + uint64(length)
	if end > uint64(len(data)) {
		return nil, ErrTruncated
	}
	return data[start:end], nil
}

func readVertexBlock(data []byte, offset uint32) ([]levelmesh.Vertex, error) {
	payload, err := block(data, offset)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(ErrTruncated, "vertex count")
	}
	out := make([]levelmesh.Vertex, count)
	for i := range out {
		var v levelmesh.Vertex
		fields := []any{&v.Position.X, &v.Position.Y, &v.Position.Z, &v.U, &v.V, &v.Normal, &v.LU, &v.LV, &v.LightIndex}
		for _, f := range fields {
			if err := binary.Read(r, binary.LittleEndian, f); err != nil {
				return nil, errors.Wrapf(ErrTruncated, "vertex %d", i)
			}
		}
		out[i] = v
	}
	return out, nil
}

func readIndexBlock(data []byte, offset uint32) ([]uint32, error) {
	payload, err := block(data, offset)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(ErrTruncated, "index count")
	}
	out := make([]uint32, count)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, errors.Wrap(ErrTruncated, "index data")
	}
	return out, nil
}

func readSurfaceBlock(data []byte, offset uint32) ([]levelmesh.Surface, error) {
	payload, err := block(data, offset)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(ErrTruncated, "surface count")
	}
	out := make([]levelmesh.Surface, count)
	for i := range out {
		var s levelmesh.Surface
		var startVert, numVerts, startIndex, numIndices int32
		var sectorGroup, portalIndex, textureID int32
		var isSky, alwaysUpdate uint8

		fields := []any{
			&startVert, &numVerts, &startIndex, &numIndices,
			&s.Plane.X, &s.Plane.Y, &s.Plane.Z, &s.Plane.W,
			&sectorGroup, &portalIndex,
			&isSky, &s.Alpha, &textureID, &alwaysUpdate,
			&s.SamplingDistance,
			&s.EmissiveColor.X, &s.EmissiveColor.Y, &s.EmissiveColor.Z,
			&s.EmissiveIntensity, &s.EmissiveDistance,
		}
		for _, f := range fields {
			if err := binary.Read(r, binary.LittleEndian, f); err != nil {
				return nil, errors.Wrapf(ErrTruncated, "surface %d", i)
			}
		}

		s.StartVert = int(startVert)
		s.NumVerts = int(numVerts)
		s.StartIndex = int(startIndex)
		s.NumIndices = int(numIndices)
		s.SectorGroup = int(sectorGroup)
		s.PortalIndex = int(portalIndex)
		s.TextureID = int(textureID)
		s.IsSky = isSky != 0
		s.AlwaysUpdate = alwaysUpdate != 0
		s.LightmapTileIndex = -1
		out[i] = s
	}
	return out, nil
}

func readLightBlock(data []byte, offset uint32) ([]levelmesh.Light, error) {
	payload, err := block(data, offset)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(ErrTruncated, "light count")
	}
	out := make([]levelmesh.Light, count)
	for i := range out {
		var l levelmesh.Light
		fields := []any{
			&l.Origin.X, &l.Origin.Y, &l.Origin.Z,
			&l.Radius, &l.Intensity,
			&l.Color.X, &l.Color.Y, &l.Color.Z,
			&l.SpotDir.X, &l.SpotDir.Y, &l.SpotDir.Z,
			&l.InnerAngleCos, &l.OuterAngleCos,
		}
		for _, f := range fields {
			if err := binary.Read(r, binary.LittleEndian, f); err != nil {
				return nil, errors.Wrapf(ErrTruncated, "light %d", i)
			}
		}
		out[i] = l
	}
	return out, nil
}

func readPortalBlock(data []byte, offset uint32) ([]levelmesh.Portal, error) {
	payload, err := block(data, offset)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(payload)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(ErrTruncated, "portal count")
	}
	out := make([]levelmesh.Portal, count)
	for i := range out {
		var p levelmesh.Portal
		fields := []any{
			&p.Rotation.X, &p.Rotation.Y, &p.Rotation.Z, &p.Rotation.W,
			&p.Translation.X, &p.Translation.Y, &p.Translation.Z,
		}
		for _, f := range fields {
			if err := binary.Read(r, binary.LittleEndian, f); err != nil {
				return nil, errors.Wrapf(ErrTruncated, "portal %d", i)
			}
		}
		out[i] = p
	}
	return out, nil
}

// WriteLevel serializes a LevelMesh's raw arrays back into the binary
// container format, primarily for round-trip tests.
func WriteLevel(m *levelmesh.LevelMesh) ([]byte, error) {
	var vertBuf, idxBuf, surfBuf, lightBuf, portalBuf bytes.Buffer

	if err := binary.Write(&vertBuf, binary.LittleEndian, uint32(len(m.Vertices))); err != nil {
		return nil, err
	}
	for _, v := range m.Vertices {
		fields := []any{v.Position.X, v.Position.Y, v.Position.Z, v.U, v.V, v.Normal, v.LU, v.LV, v.LightIndex}
		for _, f := range fields {
			if err := binary.Write(&vertBuf, binary.LittleEndian, f); err != nil {
				return nil, err
			}
		}
	}

	if err := binary.Write(&idxBuf, binary.LittleEndian, uint32(len(m.Indices))); err != nil {
		return nil, err
	}
	if err := binary.Write(&idxBuf, binary.LittleEndian, m.Indices); err != nil {
		return nil, err
	}

	if err := binary.Write(&surfBuf, binary.LittleEndian, uint32(len(m.Surfaces))); err != nil {
		return nil, err
	}
	for _, s := range m.Surfaces {
		isSky := uint8(0)
		if s.IsSky {
			isSky = 1
		}
		alwaysUpdate := uint8(0)
		if s.AlwaysUpdate {
			alwaysUpdate = 1
		}
		fields := []any{
			int32(s.StartVert), int32(s.NumVerts), int32(s.StartIndex), int32(s.NumIndices),
			s.Plane.X, s.Plane.Y, s.Plane.Z, s.Plane.W,
			int32(s.SectorGroup), int32(s.PortalIndex),
			isSky, s.Alpha, int32(s.TextureID), alwaysUpdate,
			s.SamplingDistance,
			s.EmissiveColor.X, s.EmissiveColor.Y, s.EmissiveColor.Z,
			s.EmissiveIntensity, s.EmissiveDistance,
		}
		for _, f := range fields {
			if err := binary.Write(&surfBuf, binary.LittleEndian, f); err != nil {
				return nil, err
			}
		}
	}

	if err := binary.Write(&lightBuf, binary.LittleEndian, uint32(len(m.Lights))); err != nil {
		return nil, err
	}
	for _, l := range m.Lights {
		fields := []any{
			l.Origin.X, l.Origin.Y, l.Origin.Z,
			l.Radius, l.Intensity,
			l.Color.X, l.Color.Y, l.Color.Z,
			l.SpotDir.X, l.SpotDir.Y, l.SpotDir.Z,
			l.InnerAngleCos, l.OuterAngleCos,
		}
		for _, f := range fields {
			if err := binary.Write(&lightBuf, binary.LittleEndian, f); err != nil {
				return nil, err
			}
		}
	}

	if err := binary.Write(&portalBuf, binary.LittleEndian, uint32(len(m.Portals))); err != nil {
		return nil, err
	}
	for _, p := range m.Portals {
		fields := []any{
			p.Rotation.X, p.Rotation.Y, p.Rotation.Z, p.Rotation.W,
			p.Translation.X, p.Translation.Y, p.Translation.Z,
		}
		for _, f := range fields {
			if err := binary.Write(&portalBuf, binary.LittleEndian, f); err != nil {
				return nil, err
			}
		}
	}

	blocks := [][]byte{vertBuf.Bytes(), idxBuf.Bytes(), surfBuf.Bytes(), lightBuf.Bytes(), portalBuf.Bytes()}

	var out bytes.Buffer
	out.Write(make([]byte, blockCount*4)) // placeholder header
	offsets := make([]uint32, blockCount)
	for i, b := range blocks {
		offsets[i] = uint32(out.Len())
		if err := binary.Write(&out, binary.LittleEndian, uint32(len(b))); err != nil {
			return nil, err
		}
		out.Write(b)
	}

	result := out.Bytes()
	for i, off := range offsets {
		binary.LittleEndian.PutUint32(result[i*4:], off)
	}
	return result, nil
}

