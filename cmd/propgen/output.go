package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/propforge/internal/assets"
	"github.com/Faultbox/propforge/internal/config"
	"github.com/Faultbox/propforge/internal/export"
)

func outPath(cfg *config.Config, name string) string {
	return filepath.Join(cfg.Output.Dir, name)
}

// writeOutputs writes the mesh file, and the atlas report and layout
// images when enabled. It returns the written paths.
func writeOutputs(cfg *config.Config, base, format string, parts []assets.Part, atlases []assets.Atlas) ([]string, error) {
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return nil, err
	}

	var written []string
	meshPath := outPath(cfg, base+"."+strings.ToLower(format))
	switch strings.ToLower(format) {
	case "obj":
		err := writeFile(meshPath, func(w io.Writer) error { return export.WriteOBJ(w, base, parts) })
		if err != nil {
			return nil, err
		}
	case "stl":
		err := writeFile(meshPath, func(w io.Writer) error { return export.WriteSTL(w, base, parts) })
		if err != nil {
			return nil, err
		}
	case "3mf":
		if err := export.Write3MF(meshPath, parts); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q (want obj, stl or 3mf)", format)
	}
	written = append(written, meshPath)

	if len(atlases) == 0 {
		return written, nil
	}
	if cfg.Output.Report {
		p := outPath(cfg, base+".atlas.yaml")
		if err := writeFile(p, func(w io.Writer) error { return export.WriteAtlasReport(w, atlases) }); err != nil {
			return nil, err
		}
		written = append(written, p)
	}
	if cfg.Output.LayoutImage {
		for _, a := range atlases {
			p := outPath(cfg, fmt.Sprintf("%s.%s.bmp", base, a.Name))
			err := writeFile(p, func(w io.Writer) error { return export.WriteLayoutBMP(w, a.Result, cfg.Output.ImageSize) })
			if err != nil {
				return nil, err
			}
			written = append(written, p)
		}
	}
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
