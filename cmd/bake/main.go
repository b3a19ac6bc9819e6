// bake reads a binary level container, traces lightmaps for its surfaces,
// and writes the resulting atlas, following the command-dispatch style of
// the teacher pack's asset CLIs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/zdray-go/lightbake/internal/atlas"
	"github.com/zdray-go/lightbake/internal/bake"
	"github.com/zdray-go/lightbake/internal/config"
	"github.com/zdray-go/lightbake/internal/logger"
	"github.com/zdray-go/lightbake/internal/raytrace"
	"github.com/zdray-go/lightbake/internal/sceneio"
	"github.com/zdray-go/lightbake/pkg/math"
)

func main() {
	config.ParseFlags()

	args := flag.Args()
	if len(args) < 2 {
		printUsage()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bake: loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "bake: initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Log.Sync()

	if err := run(inputPath, outputPath, config.PreviewPath(), cfg); err != nil {
		logger.Sugar.Errorw("bake failed", "error", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath, previewPath string, cfg *config.Config) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input level %q: %w", inputPath, err)
	}

	mesh, err := sceneio.ReadLevel(data, cfg.Atlas.TextureSize)
	if err != nil {
		return fmt.Errorf("parsing level %q: %w", inputPath, err)
	}
	mesh.PrepareTiles()

	device, err := raytrace.OpenDevice()
	if err != nil {
		return fmt.Errorf("opening ray-tracing device: %w", err)
	}
	defer device.Close()

	buffers, err := raytrace.UploadScene(mesh)
	if err != nil {
		return fmt.Errorf("uploading scene to device: %w", err)
	}
	defer buffers.Destroy()

	params := bake.Params{
		Params: raytrace.Params{
			SampleCount:        cfg.Sampling.SampleCount,
			BounceCount:        cfg.Sampling.BounceCount,
			AODistance:         cfg.Sampling.AODistance,
			BounceClipDistance: cfg.Sampling.BounceClipDistance,
			EmissionFraction:   cfg.Sampling.EmissionFraction,
			SunEnabled:         cfg.Sun.Enabled,
			SunDirection:       vec3From(cfg.Sun.Direction),
			SunColor:           vec3From(cfg.Sun.Color),
			SunIntensity:       cfg.Sun.Intensity,
		},
		TextureSize: cfg.Atlas.TextureSize,
		MaxPages:    cfg.Atlas.MaxPages,
	}

	result, err := bake.Run(context.Background(), mesh, params)
	if err != nil {
		return fmt.Errorf("baking %q: %w", inputPath, err)
	}
	for _, issue := range result.Issues {
		logger.Sugar.Warnw(issue.Message, "surface", issue.Surface)
	}

	verifyTileImages(result.Atlas)

	if previewPath != "" {
		if err := writePreview(result.Atlas, previewPath); err != nil {
			return fmt.Errorf("writing preview %q: %w", previewPath, err)
		}
	}

	out, err := atlas.WriteAtlas(result.Atlas)
	if err != nil {
		return fmt.Errorf("encoding atlas: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("writing output %q: %w", outputPath, err)
	}

	logger.Sugar.Infow("bake finished", "input", inputPath, "output", outputPath, "tiles", len(mesh.LightmapTiles))
	return nil
}

func vec3From(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// writePreview tone-maps the atlas's first page to a BMP for quick visual
// inspection of a bake without a lightmap-aware viewer.
func writePreview(a *atlas.Atlas, path string) error {
	if len(a.Pages) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return atlas.WritePreviewBMP(a.Pages[0], f)
}

// verifyTileImages round-trips every baked tile's pixels through the real
// outputs texture the external interface describes (GenTextures/TexImage2D/
// TexSubImage2D/GetTexImage) and warns if the readback drifts, catching a
// misconfigured texture format that a pure-CPU bake would otherwise hide.
func verifyTileImages(a *atlas.Atlas) {
	for _, t := range a.Tiles {
		if int(t.ArrayIndex) >= len(a.Pages) {
			continue
		}
		page := a.Pages[t.ArrayIndex]
		w, h := int(t.W), int(t.H)
		rgb := make([]float32, w*h*3)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := ((int(t.Y)+y)*page.Width + int(t.X) + x) * 3
				out := (y*w + x) * 3
				copy(rgb[out:out+3], page.Pixels[idx:idx+3])
			}
		}

		readback := raytrace.RoundTripOutputs(w, h, rgb)
		if !tileImagesMatch(rgb, readback, w*h) {
			logger.Sugar.Warnw("tile image readback mismatch", "surface", t.SurfaceID)
		}
	}
}

func tileImagesMatch(rgb, rgba []float32, texelCount int) bool {
	for i := 0; i < texelCount; i++ {
		for c := 0; c < 3; c++ {
			if rgba[i*4+c] != rgb[i*3+c] {
				return false
			}
		}
	}
	return true
}

func printUsage() {
	fmt.Println(`bake - lightmap baking tool

Usage:
  bake [--samples N] [--bounces K] [--size S] [--config path] [--preview path] [--debug] <inputLevel> <outputLightmaps>

Examples:
  bake level.bin lightmap.atlas
  bake --samples 64 --bounces 3 level.bin lightmap.atlas
  bake --preview preview.bmp level.bin lightmap.atlas`)
}
