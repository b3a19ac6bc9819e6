// Package atlas assembles baked lightmap pages into the on-disk output
// format: a header describing texture size/count and per-tile placement,
// followed by one half-float RGB image per page. The block-oriented
// reader/writer style mirrors pkg/formats/gnd.go and internal/sceneio.
package atlas

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/zdray-go/lightbake/internal/lightmap"
)

// Page holds one atlas page's accumulated pixel data before encoding,
// RGB only (no alpha channel in the output format).
type Page struct {
	Width, Height int
	Pixels        []float32 // len == Width*Height*3, row-major
}

// NewPage allocates a zeroed page of the given square size.
func NewPage(size int) *Page {
	return &Page{Width: size, Height: size, Pixels: make([]float32, size*size*3)}
}

// SetPixel writes an RGB triple at (x,y), used by the bake driver to
// write back a tile's traced texels into its assigned atlas region.
func (pg *Page) SetPixel(x, y int, rgb [3]float32) {
	if x < 0 || y < 0 || x >= pg.Width || y >= pg.Height {
		return
	}
	idx := (y*pg.Width + x) * 3
	pg.Pixels[idx+0] = rgb[0]
	pg.Pixels[idx+1] = rgb[1]
	pg.Pixels[idx+2] = rgb[2]
}

// TileRecord is one entry of the output header, binding a surface to its
// baked rectangle so a renderer can find its lightmap data.
type TileRecord struct {
	SurfaceID  int32
	ArrayIndex int32
	X, Y       int32
	W, H       int32
}

// Atlas is the full baked result: one page per array index plus the
// tile placement table, ready for WriteAtlas.
type Atlas struct {
	TextureSize int
	Pages       []*Page
	Tiles       []TileRecord
}

// NewAtlas builds an Atlas with one empty page per referenced array
// index, sized to textureSize, and a tile table derived from tiles.
func NewAtlas(textureSize int, tiles []lightmap.Tile, surfaceIDs []int) *Atlas {
	pageCount := 0
	for _, t := range tiles {
		if t.ArrayIndex+1 > pageCount {
			pageCount = t.ArrayIndex + 1
		}
	}
	a := &Atlas{TextureSize: textureSize}
	for i := 0; i < pageCount; i++ {
		a.Pages = append(a.Pages, NewPage(textureSize))
	}
	for i, t := range tiles {
		a.Tiles = append(a.Tiles, TileRecord{
			SurfaceID:  int32(surfaceIDs[i]),
			ArrayIndex: int32(t.ArrayIndex),
			X:          int32(t.X),
			Y:          int32(t.Y),
			W:          int32(t.Width),
			H:          int32(t.Height),
		})
	}
	return a
}

// WriteAtlas serializes the header (texture size, page count, tile
// count, tile table) followed by each page's half-float RGB pixels, in
// the little-endian fixed-field style used throughout sceneio.
func WriteAtlas(a *Atlas) ([]byte, error) {
	var buf bytes.Buffer

	if err := binary.Write(&buf, binary.LittleEndian, int32(a.TextureSize)); err != nil {
		return nil, errors.Wrap(err, "write texture size")
	}
	if err := binary.Write(&buf, binary.LittleEndian, int32(len(a.Pages))); err != nil {
		return nil, errors.Wrap(err, "write page count")
	}
	if err := binary.Write(&buf, binary.LittleEndian, int32(len(a.Tiles))); err != nil {
		return nil, errors.Wrap(err, "write tile count")
	}
	for i, t := range a.Tiles {
		if err := binary.Write(&buf, binary.LittleEndian, t); err != nil {
			return nil, errors.Wrapf(err, "write tile record %d", i)
		}
	}

	for pi, pg := range a.Pages {
		halved := make([]uint16, len(pg.Pixels))
		for i, f := range pg.Pixels {
			halved[i] = ToHalfFloat(f)
		}
		if err := binary.Write(&buf, binary.LittleEndian, halved); err != nil {
			return nil, errors.Wrapf(err, "write page %d pixels", pi)
		}
	}

	return buf.Bytes(), nil
}

// ReadAtlas parses the format WriteAtlas produces, used by tests and by
// tools that need to inspect a baked result.
func ReadAtlas(data []byte) (*Atlas, error) {
	r := bytes.NewReader(data)
	a := &Atlas{}

	var textureSize, pageCount, tileCount int32
	if err := binary.Read(r, binary.LittleEndian, &textureSize); err != nil {
		return nil, errors.Wrap(err, "read texture size")
	}
	if err := binary.Read(r, binary.LittleEndian, &pageCount); err != nil {
		return nil, errors.Wrap(err, "read page count")
	}
	if err := binary.Read(r, binary.LittleEndian, &tileCount); err != nil {
		return nil, errors.Wrap(err, "read tile count")
	}
	a.TextureSize = int(textureSize)

	a.Tiles = make([]TileRecord, tileCount)
	for i := range a.Tiles {
		if err := binary.Read(r, binary.LittleEndian, &a.Tiles[i]); err != nil {
			return nil, errors.Wrapf(err, "read tile record %d", i)
		}
	}

	pixelsPerPage := int(textureSize) * int(textureSize) * 3
	for p := 0; p < int(pageCount); p++ {
		halved := make([]uint16, pixelsPerPage)
		if err := binary.Read(r, binary.LittleEndian, &halved); err != nil {
			return nil, errors.Wrapf(err, "read page %d pixels", p)
		}
		pg := &Page{Width: int(textureSize), Height: int(textureSize), Pixels: make([]float32, pixelsPerPage)}
		for i, h := range halved {
			pg.Pixels[i] = FromHalfFloat(h)
		}
		a.Pages = append(a.Pages, pg)
	}

	return a, nil
}
