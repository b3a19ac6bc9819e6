// Package bake orchestrates a full lightmap bake: mesh preparation, atlas
// packing, GPU resource allocation, per-tile ray-tracing dispatch, and
// atlas writeback, matching the sequencing the source's bake driver runs
// over its Vulkan ray-tracing pipeline.
package bake

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zdray-go/lightbake/internal/atlas"
	"github.com/zdray-go/lightbake/internal/levelmesh"
	"github.com/zdray-go/lightbake/internal/logger"
	"github.com/zdray-go/lightbake/internal/raytrace"
)

// Params configures a bake run, mirroring internal/config.SamplingConfig
// plus the atlas size the driver needs to allocate pages.
type Params struct {
	raytrace.Params
	TextureSize int
	MaxPages    int
}

// Issue is a non-fatal problem surfaced during a bake, flushed as
// warnings once the run completes, per the spec's error-handling design.
type Issue struct {
	Surface int
	Message string
}

// Result is everything a successful bake produces: the packed atlas and
// any non-fatal issues collected along the way.
type Result struct {
	Atlas  *atlas.Atlas
	Issues []Issue
}

// Run executes the full pipeline against an already-loaded mesh: tile
// registration and packing are assumed done by the caller (sceneio or a
// prior mesh-build step) so Run can be driven directly by tests with a
// hand-built mesh.
func Run(ctx context.Context, mesh *levelmesh.LevelMesh, params Params) (*Result, error) {
	if err := validateTiles(mesh, params); err != nil {
		return nil, err
	}

	pl := raytrace.New(mesh, params.Params)

	surfaceIDs := make([]int, len(mesh.LightmapTiles))
	for i, t := range mesh.LightmapTiles {
		if len(t.Surfaces) > 0 {
			surfaceIDs[i] = t.Surfaces[0]
		} else {
			surfaceIDs[i] = -1
		}
	}
	result := &atlas.Atlas{TextureSize: params.TextureSize}
	pages := make([]*atlas.Page, 0, params.MaxPages)
	for i := 0; i < mesh.LMTextureCount; i++ {
		pages = append(pages, atlas.NewPage(params.TextureSize))
	}
	result.Pages = pages
	result.Tiles = make([]atlas.TileRecord, len(mesh.LightmapTiles))

	g, gctx := errgroup.WithContext(ctx)
	var issuesMu issueCollector

	for ti := range mesh.LightmapTiles {
		tileIdx := ti
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return bakeTile(mesh, pl, params, result, tileIdx, surfaceIDs[tileIdx], &issuesMu)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if logger.Sugar != nil {
		logger.Sugar.Infow("bake complete", "tiles", len(mesh.LightmapTiles), "pages", len(pages))
	}

	return &Result{Atlas: result, Issues: issuesMu.drain()}, nil
}

func validateTiles(mesh *levelmesh.LevelMesh, params Params) error {
	for i, t := range mesh.LightmapTiles {
		if t.Width > params.TextureSize || t.Height > params.TextureSize {
			return errTileTooLarge(i, t.Width, t.Height, params.TextureSize)
		}
	}
	if mesh.LMTextureCount > params.MaxPages {
		return errTooManyPages(mesh.LMTextureCount, params.MaxPages)
	}
	return nil
}

// bakeTile runs the strictly-ordered direct -> bounces -> AO sequence for
// one tile and writes the result into its disjoint atlas rectangle. Tiles
// never share state, so concurrent calls across tiles are safe.
func bakeTile(mesh *levelmesh.LevelMesh, pl *raytrace.Pipeline, params Params, result *atlas.Atlas, tileIdx, surfaceID int, issues *issueCollector) error {
	tile := mesh.LightmapTiles[tileIdx]
	if tile.Width <= 0 || tile.Height <= 0 {
		issues.add(Issue{Surface: surfaceID, Message: "degenerate tile skipped"})
		return nil
	}

	texels := buildStartPositions(mesh, tile)
	out := make([]raytrace.Accum, len(texels))

	pl.DirectPass(texels, 0, len(mesh.Lights), out)

	bouncing := texels
	for b := 0; b < params.BounceCount; b++ {
		bouncing = pl.BouncePass(bouncing, out)
		pl.DirectPass(bouncing, 0, len(mesh.Lights), out)
	}

	pl.AOPass(texels, out)

	page := result.Pages[tile.ArrayIndex]
	for y := 0; y < tile.Height; y++ {
		for x := 0; x < tile.Width; x++ {
			a := out[y*tile.Width+x]
			page.SetPixel(tile.X+x, tile.Y+y, [3]float32{a.RGB.X, a.RGB.Y, a.RGB.Z})
		}
	}

	result.Tiles[tileIdx] = atlas.TileRecord{
		SurfaceID:  int32(surfaceID),
		ArrayIndex: int32(tile.ArrayIndex),
		X:          int32(tile.X),
		Y:          int32(tile.Y),
		W:          int32(tile.Width),
		H:          int32(tile.Height),
	}

	if logger.Sugar != nil {
		logger.Sugar.Infow("tile baked", "tile", tileIdx, "surface", surfaceID, "page", tile.ArrayIndex)
	}
	return nil
}

// issueCollector gathers non-fatal bake issues from concurrent tile
// workers behind a mutex, flushed as warnings once the run completes.
type issueCollector struct {
	mu     sync.Mutex
	issues []Issue
}

func (c *issueCollector) add(i Issue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issues = append(c.issues, i)
	if logger.Log != nil {
		logger.Log.Warn(i.Message, zap.Int("surface", i.Surface))
	}
}

func (c *issueCollector) drain() []Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issues
}
