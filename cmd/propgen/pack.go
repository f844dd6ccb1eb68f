package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/propforge/internal/assets"
	"github.com/Faultbox/propforge/internal/export"
	"github.com/Faultbox/propforge/internal/logger"
	"github.com/Faultbox/propforge/pkg/binpack"
)

// packFile is the input of the pack command.
//
//	start: 1
//	rects:
//	  - {owner: lid, width: 0.4, height: 0.4}
//	  - {owner: body, width: 1.2, height: 0.5, face: 1}
type packFile struct {
	Start float64    `yaml:"start"`
	Rects []packRect `yaml:"rects"`
}

type packRect struct {
	Owner  string  `yaml:"owner"`
	Face   int     `yaml:"face"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func readPackFile(r io.Reader) (*packFile, []binpack.Request, error) {
	var pf packFile
	if err := yaml.NewDecoder(r).Decode(&pf); err != nil {
		return nil, nil, fmt.Errorf("decoding rectangles: %w", err)
	}
	if len(pf.Rects) == 0 {
		return nil, nil, fmt.Errorf("no rectangles to pack")
	}
	reqs := make([]binpack.Request, len(pf.Rects))
	for i, r := range pf.Rects {
		owner := r.Owner
		if owner == "" {
			owner = fmt.Sprintf("rect%d", i)
		}
		reqs[i] = binpack.Request{Width: r.Width, Height: r.Height, Owner: owner, Face: r.Face}
	}
	return &pf, reqs, nil
}

func cmdPack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	start := fs.Float64("start", 0, "Start size (default: file start or config start_size)")
	name := fs.String("name", "atlas", "Output base name")
	cfg, rest, err := setup(fs, args)
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		return fmt.Errorf("usage: propgen pack <rects.yaml>")
	}

	var in io.Reader = os.Stdin
	if rest[0] != "-" {
		f, err := os.Open(rest[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	pf, reqs, err := readPackFile(in)
	if err != nil {
		return err
	}

	size := cfg.Atlas.StartSize
	if pf.Start > 0 {
		size = pf.Start
	}
	if *start > 0 {
		size = *start
	}

	res, err := binpack.MinimalPacking(reqs, size, cfg.Atlas.PackOptions())
	if err != nil {
		return err
	}
	side, _ := res.Size()
	logger.Info("packed",
		zap.Int("rects", len(reqs)),
		zap.Float64("size", side),
		zap.Int("attempts", len(res.Attempts)),
		zap.Float64("used", res.Used()),
	)

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return err
	}
	atlases := []assets.Atlas{{Name: *name, Result: res}}
	if err := writeFile(outPath(cfg, *name+".atlas.yaml"), func(w io.Writer) error {
		return export.WriteAtlasReport(w, atlases)
	}); err != nil {
		return err
	}
	px := cfg.Output.ImageSize
	if px <= 0 {
		px = 512
	}
	if err := writeFile(outPath(cfg, *name+".bmp"), func(w io.Writer) error {
		return export.WriteLayoutBMP(w, res, px)
	}); err != nil {
		return err
	}

	fmt.Printf("%s: %d rects in %.4g x %.4g after %d attempts, %.1f%% used\n",
		*name, len(reqs), side, side, len(res.Attempts), 100*res.Used())
	return nil
}
