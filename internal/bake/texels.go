package bake

import (
	"github.com/zdray-go/lightbake/internal/levelmesh"
	"github.com/zdray-go/lightbake/internal/lightmap"
	"github.com/zdray-go/lightbake/internal/raytrace"
	"github.com/zdray-go/lightbake/pkg/math"
)

// buildStartPositions walks a tile's pixel grid and, for each texel,
// finds the surface (among the tile's registered plane-group members)
// whose polygon covers that texel's UV position, producing the
// startpositions image the spec describes: world position and owning
// surface index per texel, or surface index -1 outside any polygon.
func buildStartPositions(m *levelmesh.LevelMesh, tile lightmap.Tile) []raytrace.Texel {
	out := make([]raytrace.Texel, tile.Width*tile.Height)
	for y := 0; y < tile.Height; y++ {
		for x := 0; x < tile.Width; x++ {
			uv := math.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}
			idx := y*tile.Width + x
			out[idx].Surface = -1

			for _, si := range tile.Surfaces {
				if pointInSurfacePolygon(m, si, tile, uv) {
					world := tile.ToWorld(uv)
					out[idx] = raytrace.Texel{
						Position: world,
						Normal:   m.Surfaces[si].Plane.XYZ(),
						Surface:  si,
					}
					break
				}
			}
		}
	}
	return out
}

// pointInSurfacePolygon tests whether a tile-space UV point falls inside
// the convex polygon formed by a surface's vertices, projected into the
// tile's own UV space. Surfaces are assumed convex and wound
// consistently, matching how levelmesh assembles quads/fans.
func pointInSurfacePolygon(m *levelmesh.LevelMesh, surfaceIdx int, tile lightmap.Tile, uv math.Vec2) bool {
	s := m.Surfaces[surfaceIdx]
	if s.NumVerts < 3 {
		return false
	}

	sign := 0
	for i := 0; i < s.NumVerts; i++ {
		a := tile.ToUV(m.Vertices[s.StartVert+i].Position)
		b := tile.ToUV(m.Vertices[s.StartVert+(i+1)%s.NumVerts].Position)
		edge := b.Sub(a)
		toPoint := uv.Sub(a)
		cross := edge.X*toPoint.Y - edge.Y*toPoint.X

		if cross > 1e-4 {
			if sign < 0 {
				return false
			}
			sign = 1
		} else if cross < -1e-4 {
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}
