package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/propforge/pkg/binpack"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Atlas.StartSize != 1 {
		t.Errorf("expected start size 1, got %g", cfg.Atlas.StartSize)
	}
	if cfg.Atlas.Padding != binpack.DefaultPadding {
		t.Errorf("expected padding %g, got %g", binpack.DefaultPadding, cfg.Atlas.Padding)
	}
	if cfg.Atlas.Growth != binpack.DefaultGrowth {
		t.Errorf("expected growth %g, got %g", binpack.DefaultGrowth, cfg.Atlas.Growth)
	}
	if cfg.Atlas.MaxSize != 0 {
		t.Errorf("expected unbounded max size, got %g", cfg.Atlas.MaxSize)
	}

	if cfg.Output.Dir != "out" || !cfg.Output.Report || cfg.Output.LayoutImage {
		t.Errorf("unexpected output defaults %+v", cfg.Output)
	}

	if cfg.Viewer.Width != 1280 || cfg.Viewer.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if cfg.Viewer.FOV != 45 {
		t.Errorf("expected fov 45, got %g", cfg.Viewer.FOV)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
atlas:
  start_size: 2
  padding: 0
  growth: 1.25
  max_size: 64

output:
  dir: "build/props"
  report: false
  layout_image: true
  image_size: 1024

viewer:
  width: 800
  height: 600
  fov: 60
  wireframe: true
  clear_color: [0, 0, 0]

logging:
  level: "debug"
  log_file: "propgen.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	want := AtlasConfig{StartSize: 2, Padding: 0, Growth: 1.25, MaxSize: 64}
	if cfg.Atlas != want {
		t.Errorf("atlas = %+v, want %+v", cfg.Atlas, want)
	}
	if got := cfg.Atlas.PackOptions(); got.Padding != 0 || got.Growth != 1.25 || got.MaxSize != 64 {
		t.Errorf("PackOptions() = %+v", got)
	}
	if cfg.Output.Dir != "build/props" || cfg.Output.Report || !cfg.Output.LayoutImage || cfg.Output.ImageSize != 1024 {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Viewer.Width != 800 || cfg.Viewer.FOV != 60 || !cfg.Viewer.Wireframe || cfg.Viewer.Clear != [3]float32{} {
		t.Errorf("viewer = %+v", cfg.Viewer)
	}
	// Keys missing from the file keep their defaults.
	if !cfg.Viewer.VSync {
		t.Error("expected vsync default to survive")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "propgen.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("atlas: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero start size", func(c *Config) { c.Atlas.StartSize = 0 }},
		{"growth of one", func(c *Config) { c.Atlas.Growth = 1 }},
		{"negative padding", func(c *Config) { c.Atlas.Padding = -0.1 }},
		{"zero viewer width", func(c *Config) { c.Viewer.Width = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("atlas:\n  growth: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestBindFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "atlas flags",
			args: []string{"-padding", "0.05", "-growth", "1.5"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Atlas.Padding != 0.05 || cfg.Atlas.Growth != 1.5 {
					t.Errorf("atlas = %+v", cfg.Atlas)
				}
			},
		},
		{
			name: "output flags",
			args: []string{"-out", "/tmp/props", "-no-report"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Dir != "/tmp/props" || cfg.Output.Report {
					t.Errorf("output = %+v", cfg.Output)
				}
			},
		},
		{
			name: "viewer flags",
			args: []string{"-width", "2560", "-height", "1440", "-wireframe"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.Width != 2560 || cfg.Viewer.Height != 1440 || !cfg.Viewer.Wireframe {
					t.Errorf("viewer = %+v", cfg.Viewer)
				}
			},
		},
		{
			name: "no flags",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("config changed without flags: %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet(tt.name, flag.ContinueOnError)
			f := BindFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			cfg := Default()
			f.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
viewer:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	f := BindFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-width", "1920"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Viewer.Height)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("atlas:\n  growth: 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(&Flags{Config: configPath}); err == nil {
		t.Error("expected growth 0.5 to be rejected")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Atlas.Growth = 1.3
	cfg.Output.Dir = "assets"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoggerOptions(t *testing.T) {
	opts := LoggingConfig{Level: "debug", LogFile: "x.log"}.LoggerOptions()
	if opts.Level != "debug" || opts.File != "x.log" || !opts.Console {
		t.Errorf("unexpected options %+v", opts)
	}

	opts = LoggingConfig{}.LoggerOptions()
	if opts.Level != "info" || opts.File != "" {
		t.Errorf("expected info console-only defaults, got %+v", opts)
	}
}
