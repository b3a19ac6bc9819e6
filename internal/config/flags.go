package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagSamples = flag.Int("samples", 0, "Samples per pixel per pass")
	flagBounces = flag.Int("bounces", 0, "Indirect bounce count")
	flagSize    = flag.Int("size", 0, "Lightmap atlas page size")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagPreview = flag.String("preview", "", "Write a tone-mapped BMP preview of atlas page 0 to this path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// PreviewPath returns the --preview output path, or "" if not requested.
func PreviewPath() string {
	return *flagPreview
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSamples > 0 {
		cfg.Sampling.SampleCount = *flagSamples
	}
	if *flagBounces > 0 {
		cfg.Sampling.BounceCount = *flagBounces
	}
	if *flagSize > 0 {
		cfg.Atlas.TextureSize = *flagSize
	}
}
