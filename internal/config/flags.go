package config

import "flag"

// Flags are the command line overrides shared by the propforge commands.
// Zero values leave the loaded config untouched.
type Flags struct {
	Config   string
	Debug    bool
	LogFile  string
	OutDir   string
	Padding  float64
	Growth   float64
	Width    int
	Height   int
	Wire     bool
	NoReport bool
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log", "", "Also log to this file")
	fs.StringVar(&f.OutDir, "out", "", "Output directory")
	fs.Float64Var(&f.Padding, "padding", 0, "Atlas padding as a fraction of the bin side")
	fs.Float64Var(&f.Growth, "growth", 0, "Atlas growth factor per attempt")
	fs.IntVar(&f.Width, "width", 0, "Viewer window width")
	fs.IntVar(&f.Height, "height", 0, "Viewer window height")
	fs.BoolVar(&f.Wire, "wireframe", false, "Start the viewer in wireframe mode")
	fs.BoolVar(&f.NoReport, "no-report", false, "Skip the atlas report")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.OutDir != "" {
		cfg.Output.Dir = f.OutDir
	}
	if f.Padding > 0 {
		cfg.Atlas.Padding = f.Padding
	}
	if f.Growth > 0 {
		cfg.Atlas.Growth = f.Growth
	}
	if f.Width > 0 {
		cfg.Viewer.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Viewer.Height = f.Height
	}
	if f.Wire {
		cfg.Viewer.Wireframe = true
	}
	if f.NoReport {
		cfg.Output.Report = false
	}
}
