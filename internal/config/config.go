// Package config handles bake configuration loading and management.
package config

// Config holds all bake settings.
type Config struct {
	Sampling SamplingConfig `yaml:"sampling"`
	Atlas    AtlasConfig    `yaml:"atlas"`
	Sun      SunConfig      `yaml:"sun"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SamplingConfig holds Monte Carlo sampling budgets for the ray-tracing
// pipeline.
type SamplingConfig struct {
	SampleCount       int     `yaml:"sample_count"`
	BounceCount       int     `yaml:"bounce_count"`
	AODistance        float32 `yaml:"ao_distance"`
	BounceClipDistance float32 `yaml:"bounce_clip_distance"`
	EmissionFraction  float32 `yaml:"emission_fraction"`
}

// AtlasConfig holds lightmap atlas packing settings.
type AtlasConfig struct {
	TextureSize int `yaml:"texture_size"`
	MaxPages    int `yaml:"max_pages"`
}

// SunConfig holds the directional sun light used by the direct pass.
type SunConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Direction [3]float32 `yaml:"direction"`
	Color     [3]float32 `yaml:"color"`
	Intensity float32 `yaml:"intensity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values, grounded in the
// source's hard-coded AO distance (100) and bounce clip distance (2000),
// now promoted to configuration per the spec's open question.
func Default() *Config {
	return &Config{
		Sampling: SamplingConfig{
			SampleCount:        32,
			BounceCount:        2,
			AODistance:         100,
			BounceClipDistance: 2000,
			EmissionFraction:   0.25,
		},
		Atlas: AtlasConfig{
			TextureSize: 1024,
			MaxPages:    64,
		},
		Sun: SunConfig{
			Enabled:   true,
			Direction: [3]float32{0, 0, -1},
			Color:     [3]float32{1, 1, 1},
			Intensity: 1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
