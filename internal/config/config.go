// Package config handles propforge configuration loading and management.
package config

import (
	"github.com/Faultbox/propforge/internal/logger"
	"github.com/Faultbox/propforge/pkg/binpack"
)

// Config holds all tool settings.
type Config struct {
	Atlas   AtlasConfig   `yaml:"atlas"`
	Output  OutputConfig  `yaml:"output"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// AtlasConfig controls the minimal packing search.
type AtlasConfig struct {
	StartSize float64 `yaml:"start_size"`
	Padding   float64 `yaml:"padding"` // fraction of the bin side
	Growth    float64 `yaml:"growth"`
	MaxSize   float64 `yaml:"max_size"` // 0 = 4096 * start_size
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// Report writes <asset>.atlas.yaml next to the OBJ.
	Report bool `yaml:"report"`
	// LayoutImage writes <asset>.atlas.bmp, ImageSize pixels wide.
	LayoutImage bool `yaml:"layout_image"`
	ImageSize   int  `yaml:"image_size"`
}

// ViewerConfig holds preview window settings.
type ViewerConfig struct {
	Width     int        `yaml:"width"`
	Height    int        `yaml:"height"`
	VSync     bool       `yaml:"vsync"`
	FOV       float32    `yaml:"fov"` // degrees
	Wireframe bool       `yaml:"wireframe"`
	Clear     [3]float32 `yaml:"clear_color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Atlas: AtlasConfig{
			StartSize: 1,
			Padding:   binpack.DefaultPadding,
			Growth:    binpack.DefaultGrowth,
		},
		Output: OutputConfig{
			Dir:       "out",
			Report:    true,
			ImageSize: 512,
		},
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			FOV:    45,
			Clear:  [3]float32{0.16, 0.17, 0.2},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// PackOptions converts the atlas settings for binpack.MinimalPacking.
func (a AtlasConfig) PackOptions() binpack.Options {
	return binpack.Options{
		Padding: a.Padding,
		Growth:  a.Growth,
		MaxSize: a.MaxSize,
	}
}

// LoggerOptions returns logger options for these settings.
func (l LoggingConfig) LoggerOptions() logger.Options {
	opts := logger.DefaultOptions()
	if l.Level != "" {
		opts.Level = l.Level
	}
	opts.File = l.LogFile
	return opts
}
