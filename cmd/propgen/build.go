package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/propforge/internal/assets"
	"github.com/Faultbox/propforge/internal/config"
	"github.com/Faultbox/propforge/internal/logger"
)

func cmdBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	paramsFile := fs.String("params", "", "YAML or TOML parameter file")
	format := fs.String("format", "obj", "Output format: obj, stl or 3mf")
	name := fs.String("name", "", "Output base name (default: asset name)")
	cfg, rest, err := setup(fs, args)
	if err != nil {
		return err
	}
	k, err := kindArg(fs, rest)
	if err != nil {
		return err
	}

	v := k.Defaults()
	if *paramsFile != "" {
		if v, err = k.LoadParams(*paramsFile); err != nil {
			return err
		}
	}

	base := *name
	if base == "" {
		base = k.Name
	}
	return generate(cfg, k.New(v), base, *format)
}

func cmdRandom(args []string) error {
	fs := flag.NewFlagSet("random", flag.ExitOnError)
	seed := fs.Uint64("seed", 1, "First seed")
	count := fs.Int("count", 1, "Number of variations")
	format := fs.String("format", "obj", "Output format: obj, stl or 3mf")
	save := fs.Bool("save-params", true, "Write the drawn parameters next to each mesh")
	cfg, rest, err := setup(fs, args)
	if err != nil {
		return err
	}
	k, err := kindArg(fs, rest)
	if err != nil {
		return err
	}

	for i := 0; i < *count; i++ {
		s := *seed + uint64(i)
		base := assets.SeedKey(k.Name, s)
		v := k.Random(s)
		if err := generate(cfg, k.New(v), base, *format); err != nil {
			return fmt.Errorf("seed %d: %w", s, err)
		}
		if *save {
			if err := k.SaveParams(outPath(cfg, base+".params.yaml"), v); err != nil {
				return err
			}
		}
	}
	return nil
}

func cmdParams(args []string) error {
	fs := flag.NewFlagSet("params", flag.ExitOnError)
	seed := fs.Uint64("seed", 0, "Random seed (0 = defaults)")
	out := fs.String("o", "", "Write to file; .toml selects TOML")
	_, rest, err := setup(fs, args)
	if err != nil {
		return err
	}
	k, err := kindArg(fs, rest)
	if err != nil {
		return err
	}

	v := k.Defaults()
	if *seed != 0 {
		v = k.Random(*seed)
	}
	if *out != "" {
		return k.SaveParams(*out, v)
	}
	data, err := k.Encode(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func generate(cfg *config.Config, a assets.Asset, base, format string) error {
	log := logger.Named("propgen").With(zap.String("asset", a.Name()), zap.String("file", base))

	parts, err := a.Generate()
	if err != nil {
		return err
	}
	defer a.Release()

	written, err := writeOutputs(cfg, base, format, parts, a.Atlases())
	if err != nil {
		return err
	}
	var tris int
	for _, p := range parts {
		tris += p.Mesh.TriangleCount()
	}
	log.Info("generated", zap.Int("parts", len(parts)), zap.Int("triangles", tris), zap.Strings("files", written))
	return nil
}
